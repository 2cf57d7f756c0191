// Package postprocess turns the raw {category → [url]} mapping an
// extract.Result carries into the normalized, deduplicated ItemSet
// stored on an Entry (spec §4.3). It is grounded on
// webscraper/postprocessing.py and the normalization helpers in
// webscraper/processing.py from the original implementation.
package postprocess

import (
	"net/url"
	"strings"

	"github.com/notapresent/glommer/internal/extract"
	"github.com/notapresent/glommer/internal/model"
)

// normalize strips whitespace from every URL, resolves it against
// baseURL, and drops anything that ends up blank.
func normalize(urls []string, baseURL string) []string {
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		resolved := resolve(trimmed, baseURL)
		if resolved == "" {
			continue
		}
		out = append(out, resolved)
	}
	return out
}

func resolve(ref, baseURL string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

// rawSets returns the extraction result as a category-keyed map in the
// fixed processing order, ready for normalize/collapse/dedup.
func rawSets(r *extract.Result) map[model.Category][]string {
	return map[model.Category][]string{
		model.CategoryImages:    r.Images,
		model.CategoryVideos:    r.Videos,
		model.CategoryStreaming: r.Streaming,
	}
}
