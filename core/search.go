package core

import "context"

// SearchQuery describes one search request. Zero fields are left to service
// defaults.
type SearchQuery struct {
	// Query is the text to search for.
	Query string `json:"q,omitempty"`
	// Offset skips the first results, for pagination.
	Offset int64 `json:"offset,omitempty"`
	// Limit caps the number of returned hits. Service default: 20.
	Limit int64 `json:"limit,omitempty"`
	// Filter is a filter expression over filterable attributes.
	Filter string `json:"filter,omitempty"`
	// Sort orders hits by sortable attributes, e.g. "release_date:desc".
	Sort []string `json:"sort,omitempty"`
	// Facets requests a facet distribution for the given attributes.
	Facets []string `json:"facets,omitempty"`
	// AttributesToRetrieve restricts the fields present in each hit.
	AttributesToRetrieve []string `json:"attributesToRetrieve,omitempty"`
	// AttributesToHighlight wraps matched terms in highlight markers.
	AttributesToHighlight []string `json:"attributesToHighlight,omitempty"`
	// AttributesToCrop crops long fields around the matched terms.
	AttributesToCrop []string `json:"attributesToCrop,omitempty"`
	// CropLength is the crop window size, in words.
	CropLength int64 `json:"cropLength,omitempty"`
}

// NewSearchQuery creates an empty search query.
func NewSearchQuery() *SearchQuery {
	return &SearchQuery{}
}

// WithQuery sets the text to search for.
func (q *SearchQuery) WithQuery(text string) *SearchQuery {
	q.Query = text
	return q
}

// WithOffset skips the first results.
func (q *SearchQuery) WithOffset(offset int64) *SearchQuery {
	q.Offset = offset
	return q
}

// WithLimit caps the number of returned hits.
func (q *SearchQuery) WithLimit(limit int64) *SearchQuery {
	q.Limit = limit
	return q
}

// WithFilter sets the filter expression.
func (q *SearchQuery) WithFilter(filter string) *SearchQuery {
	q.Filter = filter
	return q
}

// WithSort orders hits by the given sort expressions.
func (q *SearchQuery) WithSort(sort ...string) *SearchQuery {
	q.Sort = sort
	return q
}

// WithFacets requests a facet distribution for the given attributes.
func (q *SearchQuery) WithFacets(facets ...string) *SearchQuery {
	q.Facets = facets
	return q
}

// WithAttributesToRetrieve restricts the fields present in each hit.
func (q *SearchQuery) WithAttributesToRetrieve(attributes ...string) *SearchQuery {
	q.AttributesToRetrieve = attributes
	return q
}

// WithAttributesToHighlight wraps matched terms in highlight markers.
func (q *SearchQuery) WithAttributesToHighlight(attributes ...string) *SearchQuery {
	q.AttributesToHighlight = attributes
	return q
}

// WithAttributesToCrop crops long fields around the matched terms.
func (q *SearchQuery) WithAttributesToCrop(attributes ...string) *SearchQuery {
	q.AttributesToCrop = attributes
	return q
}

// WithCropLength sets the crop window size, in words.
func (q *SearchQuery) WithCropLength(length int64) *SearchQuery {
	q.CropLength = length
	return q
}

// SearchResults is the answer to one search request, with hits decoded
// into T.
type SearchResults[T any] struct {
	Hits               []T                         `json:"hits"`
	EstimatedTotalHits int64                       `json:"estimatedTotalHits"`
	Offset             int64                       `json:"offset"`
	Limit              int64                       `json:"limit"`
	ProcessingTimeMs   int64                       `json:"processingTimeMs"`
	Query              string                      `json:"query"`
	FacetDistribution  map[string]map[string]int64 `json:"facetDistribution,omitempty"`
}

// Search runs a search against the index and decodes each hit into T. A nil
// query matches every document with service defaults.
func Search[T any](ctx context.Context, i *Index, q *SearchQuery) (*SearchResults[T], error) {
	if q == nil {
		q = NewSearchQuery()
	}
	u := i.client.indexURL(i.UID) + "/search"
	return executeRequest[*SearchResults[T]](ctx, i.client, u, methodPost(nil, q), 200)
}
