package postprocess

import (
	"regexp"
	"strings"
)

// commonResolutions is the quality order, highest first: a URL tagged
// hd_720 beats one tagged sd_480 in the same group.
var commonResolutions = []string{"hd_720", "sd_480", "sd_360", "sd_240"}

var resolutionRx = regexp.MustCompile(`(?i)^(.+)(hd_720|sd_480|sd_360|sd_240)(.+)$`)

type resGroup struct {
	prefix, suffix string
	versions       map[string]string // resolution -> url
	order          int               // first-seen index, for stable re-emit ordering
}

// collapseResolutions groups streaming URLs that share every character
// except a resolution tag and keeps only the highest-quality variant per
// group (spec §4.3 step 2). URLs with no resolution tag, and groups of
// size 1, pass through unchanged. Order is: ungrouped URLs in
// first-seen order, then the members of size-1 groups, followed by one
// representative per multi-variant group, in the order that group
// first appeared.
func collapseResolutions(urls []string) []string {
	groups := map[string]*resGroup{}
	var groupOrder []string
	ungrouped := make([]string, 0, len(urls))

	for _, u := range urls {
		m := resolutionRx.FindStringSubmatch(u)
		if m == nil {
			ungrouped = append(ungrouped, u)
			continue
		}
		prefix, res, suffix := m[1], strings.ToLower(m[2]), m[3]
		key := prefix + "\x00" + suffix
		g, ok := groups[key]
		if !ok {
			g = &resGroup{prefix: prefix, suffix: suffix, versions: map[string]string{}}
			groups[key] = g
			groupOrder = append(groupOrder, key)
		}
		g.versions[res] = u
	}

	out := ungrouped
	var collapsed []string
	for _, key := range groupOrder {
		g := groups[key]
		if len(g.versions) < 2 {
			for _, u := range g.versions {
				out = append(out, u)
			}
			continue
		}
		collapsed = append(collapsed, bestVariant(g.versions))
	}
	return append(out, collapsed...)
}

func bestVariant(versions map[string]string) string {
	for _, res := range commonResolutions {
		if u, ok := versions[res]; ok {
			return u
		}
	}
	// unreachable given versions is only ever populated from
	// resolutionRx matches, which can only produce keys in
	// commonResolutions.
	for _, u := range versions {
		return u
	}
	return ""
}
