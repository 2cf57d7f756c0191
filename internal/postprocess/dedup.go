package postprocess

import "github.com/notapresent/glommer/internal/model"

// dedupeAcrossCategories iterates categories in model.CategoryOrder and
// drops any URL already emitted by an earlier (or the same) category
// (spec §4.3 step 3).
func dedupeAcrossCategories(sets map[model.Category][]string) map[model.Category][]string {
	seen := make(map[string]struct{})
	out := make(map[model.Category][]string, len(sets))

	for _, cat := range model.CategoryOrder {
		urls := sets[cat]
		kept := make([]string, 0, len(urls))
		for _, u := range urls {
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			kept = append(kept, u)
		}
		out[cat] = kept
	}
	return out
}

// pruneEmpty removes categories whose URL sequence is empty (spec §4.3
// step 4), matching model.ItemSet's "absent means empty" convention.
func pruneEmpty(sets map[model.Category][]string) model.ItemSet {
	out := make(model.ItemSet, len(sets))
	for cat, urls := range sets {
		if len(urls) == 0 {
			continue
		}
		out[cat] = urls
	}
	return out
}
