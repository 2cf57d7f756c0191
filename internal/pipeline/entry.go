package pipeline

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"github.com/notapresent/glommer/internal/extract"
	"github.com/notapresent/glommer/internal/logger"
	"github.com/notapresent/glommer/internal/model"
	"github.com/notapresent/glommer/internal/postprocess"
)

// ProcessEntry downloads one entry's page, extracts and post-processes
// its media items, and mutates entry in place with the outcome
// (spec §4.7). It never returns an error for a download or parse
// failure — those are recorded on entry.Status instead, mirroring
// process_entry's try/except/else shape, so a single bad entry never
// aborts the worker processing the rest of its channel's entries.
func ProcessEntry(ctx context.Context, dl Fetcher, ee *extract.EntryExtractor, entry *model.Entry) {
	if entry.URL == "" {
		entry.Status = model.StatusError
		logger.Error("entry has no URL", "entry", entry.String())
		return
	}

	finalURL, body, err := dl.Get(ctx, entry.URL)
	if err != nil {
		entry.Status = model.StatusError
		logger.Info("entry download failed", "entry", entry.String(), "error", err)
		return
	}

	if finalURL != entry.URL {
		entry.FinalURL = finalURL
	}

	result, doc, err := ee.ExtractDoc(body)
	if err != nil {
		entry.Status = model.StatusError
		logger.Info("entry parse failed", "entry", entry.String(), "error", err)
		return
	}

	entry.Items = postprocess.Process(result, entry.RealURL())

	if entry.Title == "" && !ensureTitle(entry, doc) {
		entry.Status = model.StatusError
		logger.Info("entry title recovery failed", "entry", entry.String())
		return
	}

	numItems := 0
	for _, urls := range entry.Items {
		numItems += len(urls)
	}

	if numItems > 0 {
		entry.Status = model.StatusOK
		logger.Info("entry processed", "entry", entry.String(), "items", numItems)
	} else {
		entry.Status = model.StatusWarning
		logger.Info("entry has no items", "entry", entry.String())
	}
}

// ensureTitle recovers entry.Title from the page's <title> tag when the
// channel row carried none (resolves the spec's title-fallback open
// question: this implementation recovers rather than rejecting the
// entry). It reports whether recovery succeeded; a failure here is a
// ParseError in the original implementation and transitions the entry
// to StatusError (spec §4.7), since an entry without a title violates
// the §3 "non-empty title after processing" invariant.
func ensureTitle(entry *model.Entry, doc *html.Node) bool {
	title, ok, err := extract.TitleFallback(doc)
	if err != nil || !ok {
		return false
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}
	entry.Title = title
	return true
}
