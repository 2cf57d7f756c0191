package pipeline

import "net/url"

// resolve joins ref against base, the same absolutisation the spec
// requires for every URL the extractors hand back relative.
func resolve(ref, base string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(u).String()
}
