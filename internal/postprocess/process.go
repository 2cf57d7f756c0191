package postprocess

import (
	"github.com/notapresent/glommer/internal/extract"
	"github.com/notapresent/glommer/internal/model"
)

// Process runs the full post-processing pipeline on a raw extraction
// result: normalize each category against baseURL, collapse
// resolution variants within streaming, deduplicate across categories
// in fixed order, then drop empty categories (spec §4.3).
func Process(result *extract.Result, baseURL string) model.ItemSet {
	sets := rawSets(result)

	for cat, urls := range sets {
		sets[cat] = normalize(urls, baseURL)
	}

	sets[model.CategoryStreaming] = collapseResolutions(sets[model.CategoryStreaming])

	sets = dedupeAcrossCategories(sets)

	return pruneEmpty(sets)
}
