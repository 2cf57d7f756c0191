package pipeline

import "context"

// Fetcher abstracts page fetching so the pipeline can be tested without
// a real download.Downloader (grounded on the teacher's own fetcher
// interface seam). *download.Downloader satisfies this directly.
type Fetcher interface {
	Get(ctx context.Context, target string) (finalURL, body string, err error)
}
