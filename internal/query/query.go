package query

import (
	"sort"
	"strings"
)

// FacetAll is the sentinel facet value meaning "do not filter on this facet".
const FacetAll = "all"

// Criteria captures one invocation of the engine. The zero value is the
// no-op criteria: every record survives and lands on page 1.
type Criteria struct {
	// Facets maps a facet name (category, department, ...) to the selected
	// term. A missing facet or the value "all" disables that stage.
	Facets map[string]string
	// Tags keeps a record when at least one of its own tags is selected
	// (inclusive OR). Empty means no tag filtering.
	Tags []string
	// Search is a free-text query matched as a lower-cased substring against
	// the record's search fields and tags. Whitespace-only means no search.
	Search string
	// Page is 1-based; PageSize must be positive. Values below the minimum
	// are clamped to 1 — invalid criteria are a caller bug, not user input.
	Page     int
	PageSize int
}

// Record is the view of a content item the engine filters on.
type Record interface {
	// FacetTerms returns the record's terms for the named facet. Scalar
	// facets return a single-element slice; multi-valued facets (work
	// engagement categories) return all of them.
	FacetTerms(name string) []string
	// Tags returns the record's free-form tags, or nil for untagged types.
	Tags() []string
	// SearchText returns the fields eligible for free-text matching.
	SearchText() []string
}

// Result is one page of filtered records plus pagination totals.
type Result[T Record] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// Run filters, sorts and paginates records according to c. The pipeline is
// facet stages (AND across facets), tag stage (OR within selected tags),
// substring search, stable sort by less (nil keeps authored order), then
// pagination. Records are never mutated and identical inputs always produce
// identical output.
func Run[T Record](records []T, c Criteria, less func(a, b T) bool) Result[T] {
	kept := make([]T, 0, len(records))
	for _, r := range records {
		if matchFacets(r, c.Facets) && matchTags(r, c.Tags) && matchSearch(r, c.Search) {
			kept = append(kept, r)
		}
	}

	if less != nil {
		sort.SliceStable(kept, func(i, j int) bool { return less(kept[i], kept[j]) })
	}

	page := c.Page
	if page < 1 {
		page = 1
	}
	size := c.PageSize
	if size < 1 {
		size = 1
	}

	total := len(kept)
	pages := (total + size - 1) / size

	// A page past the end yields an empty slice on purpose: the caller resets
	// to page 1 whenever criteria change, so silently clamping here would
	// mask that bug.
	start := (page - 1) * size
	if start >= total {
		return Result[T]{Items: []T{}, TotalCount: total, TotalPages: pages}
	}
	end := start + size
	if end > total {
		end = total
	}

	items := make([]T, end-start)
	copy(items, kept[start:end])
	return Result[T]{Items: items, TotalCount: total, TotalPages: pages}
}

func matchFacets(r Record, facets map[string]string) bool {
	for name, want := range facets {
		if want == "" || want == FacetAll {
			continue
		}
		if !containsTerm(r.FacetTerms(name), want) {
			return false
		}
	}
	return true
}

func matchTags(r Record, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, own := range r.Tags() {
		if containsTerm(selected, own) {
			return true
		}
	}
	return false
}

func matchSearch(r Record, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, field := range r.SearchText() {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	for _, tag := range r.Tags() {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func containsTerm(terms []string, want string) bool {
	for _, t := range terms {
		if t == want {
			return true
		}
	}
	return false
}
