package core

import (
	"context"

	json "github.com/goccy/go-json"
)

// PaginationSetting bounds how deep result pages can go.
type PaginationSetting struct {
	MaxTotalHits int64 `json:"maxTotalHits"`
}

// FacetingSettings bounds facet distribution sizes.
type FacetingSettings struct {
	MaxValuesPerFacet int64 `json:"maxValuesPerFacet"`
}

// Settings is the full configuration of an index. Nil fields are left
// untouched on update; use the With* builders or set fields directly.
//
//	settings := core.NewSettings().
//	    WithStopWords("a", "the", "of").
//	    WithFilterableAttributes("genres")
type Settings struct {
	// Synonyms maps a word to the words treated as equivalent to it.
	Synonyms map[string][]string `json:"synonyms,omitempty"`
	// StopWords are ignored when present in search queries.
	StopWords []string `json:"stopWords,omitempty"`
	// RankingRules, sorted by order of importance.
	RankingRules []string `json:"rankingRules,omitempty"`
	// FilterableAttributes can be used in filter expressions and facets.
	FilterableAttributes []string `json:"filterableAttributes,omitempty"`
	// SortableAttributes can be used in sort expressions.
	SortableAttributes []string `json:"sortableAttributes,omitempty"`
	// DistinctAttribute deduplicates results sharing one value of it.
	DistinctAttribute *string `json:"distinctAttribute,omitempty"`
	// SearchableAttributes are matched against query words, by importance.
	SearchableAttributes []string `json:"searchableAttributes,omitempty"`
	// DisplayedAttributes appear in returned documents.
	DisplayedAttributes []string `json:"displayedAttributes,omitempty"`
	// Pagination settings.
	Pagination *PaginationSetting `json:"pagination,omitempty"`
	// Faceting settings.
	Faceting *FacetingSettings `json:"faceting,omitempty"`
}

// NewSettings creates empty settings: nothing set, nothing overridden.
func NewSettings() *Settings {
	return &Settings{}
}

// WithSynonyms sets the synonyms map.
func (s *Settings) WithSynonyms(synonyms map[string][]string) *Settings {
	s.Synonyms = synonyms
	return s
}

// WithStopWords sets the stop-word list.
func (s *Settings) WithStopWords(words ...string) *Settings {
	s.StopWords = nonNil(words)
	return s
}

// WithRankingRules sets the ranking rules, by order of importance.
func (s *Settings) WithRankingRules(rules ...string) *Settings {
	s.RankingRules = nonNil(rules)
	return s
}

// WithFilterableAttributes sets the filterable attributes.
func (s *Settings) WithFilterableAttributes(attributes ...string) *Settings {
	s.FilterableAttributes = nonNil(attributes)
	return s
}

// WithSortableAttributes sets the sortable attributes.
func (s *Settings) WithSortableAttributes(attributes ...string) *Settings {
	s.SortableAttributes = nonNil(attributes)
	return s
}

// WithDistinctAttribute sets the distinct attribute.
func (s *Settings) WithDistinctAttribute(attribute string) *Settings {
	s.DistinctAttribute = &attribute
	return s
}

// WithSearchableAttributes sets the searchable attributes, by importance.
func (s *Settings) WithSearchableAttributes(attributes ...string) *Settings {
	s.SearchableAttributes = nonNil(attributes)
	return s
}

// WithDisplayedAttributes sets the displayed attributes.
func (s *Settings) WithDisplayedAttributes(attributes ...string) *Settings {
	s.DisplayedAttributes = nonNil(attributes)
	return s
}

// WithPagination sets the pagination settings.
func (s *Settings) WithPagination(pagination PaginationSetting) *Settings {
	s.Pagination = &pagination
	return s
}

// WithFaceting sets the faceting settings.
func (s *Settings) WithFaceting(faceting FacetingSettings) *Settings {
	s.Faceting = &faceting
	return s
}

// nonNil pins an explicitly-set empty list to an allocated slice so a
// cleared list serializes as [] instead of vanishing from the payload.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// settingsWire mirrors Settings with pointer lists. omitempty drops any
// zero-length slice, allocated or not, so the lists go through a pointer:
// nil is omitted, an allocated empty list reaches the wire as [].
type settingsWire struct {
	Synonyms             map[string][]string `json:"synonyms,omitempty"`
	StopWords            *[]string           `json:"stopWords,omitempty"`
	RankingRules         *[]string           `json:"rankingRules,omitempty"`
	FilterableAttributes *[]string           `json:"filterableAttributes,omitempty"`
	SortableAttributes   *[]string           `json:"sortableAttributes,omitempty"`
	DistinctAttribute    *string             `json:"distinctAttribute,omitempty"`
	SearchableAttributes *[]string           `json:"searchableAttributes,omitempty"`
	DisplayedAttributes  *[]string           `json:"displayedAttributes,omitempty"`
	Pagination           *PaginationSetting  `json:"pagination,omitempty"`
	Faceting             *FacetingSettings   `json:"faceting,omitempty"`
}

func listRef(values []string) *[]string {
	if values == nil {
		return nil
	}
	return &values
}

// MarshalJSON keeps the cleared-versus-unset distinction on the wire. A
// nil list leaves the setting untouched; an allocated empty list clears it.
func (s Settings) MarshalJSON() ([]byte, error) {
	return json.Marshal(settingsWire{
		Synonyms:             s.Synonyms,
		StopWords:            listRef(s.StopWords),
		RankingRules:         listRef(s.RankingRules),
		FilterableAttributes: listRef(s.FilterableAttributes),
		SortableAttributes:   listRef(s.SortableAttributes),
		DistinctAttribute:    s.DistinctAttribute,
		SearchableAttributes: listRef(s.SearchableAttributes),
		DisplayedAttributes:  listRef(s.DisplayedAttributes),
		Pagination:           s.Pagination,
		Faceting:             s.Faceting,
	})
}

func (i *Index) settingsURL(sub string) string {
	u := i.client.indexURL(i.UID) + "/settings"
	if sub != "" {
		u += "/" + sub
	}
	return u
}

// GetSettings fetches the full settings of the index.
func (i *Index) GetSettings(ctx context.Context) (*Settings, error) {
	return executeRequest[*Settings](ctx, i.client, i.settingsURL(""), methodGet(nil), 200)
}

// UpdateSettings enqueues a partial settings update: only non-nil fields of
// settings are changed.
func (i *Index) UpdateSettings(ctx context.Context, settings *Settings) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL(""), methodPatch(nil, settings), 202)
}

// ResetSettings enqueues a reset of every setting to its default.
func (i *Index) ResetSettings(ctx context.Context) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL(""), methodDelete(nil), 202)
}

// GetSynonyms fetches the synonyms map.
func (i *Index) GetSynonyms(ctx context.Context) (map[string][]string, error) {
	return executeRequest[map[string][]string](ctx, i.client, i.settingsURL("synonyms"), methodGet(nil), 200)
}

// UpdateSynonyms enqueues a replacement of the synonyms map.
func (i *Index) UpdateSynonyms(ctx context.Context, synonyms map[string][]string) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("synonyms"), methodPut(nil, synonyms), 202)
}

// ResetSynonyms enqueues a reset of the synonyms map to its default.
func (i *Index) ResetSynonyms(ctx context.Context) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("synonyms"), methodDelete(nil), 202)
}

// GetStopWords fetches the stop-word list.
func (i *Index) GetStopWords(ctx context.Context) ([]string, error) {
	return executeRequest[[]string](ctx, i.client, i.settingsURL("stop-words"), methodGet(nil), 200)
}

// UpdateStopWords enqueues a replacement of the stop-word list.
func (i *Index) UpdateStopWords(ctx context.Context, words []string) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("stop-words"), methodPut(nil, words), 202)
}

// ResetStopWords enqueues a reset of the stop-word list to its default.
func (i *Index) ResetStopWords(ctx context.Context) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("stop-words"), methodDelete(nil), 202)
}

// GetRankingRules fetches the ranking rules.
func (i *Index) GetRankingRules(ctx context.Context) ([]string, error) {
	return executeRequest[[]string](ctx, i.client, i.settingsURL("ranking-rules"), methodGet(nil), 200)
}

// UpdateRankingRules enqueues a replacement of the ranking rules.
func (i *Index) UpdateRankingRules(ctx context.Context, rules []string) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("ranking-rules"), methodPut(nil, rules), 202)
}

// ResetRankingRules enqueues a reset of the ranking rules to their default.
func (i *Index) ResetRankingRules(ctx context.Context) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("ranking-rules"), methodDelete(nil), 202)
}

// GetFilterableAttributes fetches the filterable attributes.
func (i *Index) GetFilterableAttributes(ctx context.Context) ([]string, error) {
	return executeRequest[[]string](ctx, i.client, i.settingsURL("filterable-attributes"), methodGet(nil), 200)
}

// UpdateFilterableAttributes enqueues a replacement of the filterable
// attributes. The index is rebuilt afterwards, which can take time on large
// datasets.
func (i *Index) UpdateFilterableAttributes(ctx context.Context, attributes []string) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("filterable-attributes"), methodPut(nil, attributes), 202)
}

// ResetFilterableAttributes enqueues a reset of the filterable attributes.
func (i *Index) ResetFilterableAttributes(ctx context.Context) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("filterable-attributes"), methodDelete(nil), 202)
}

// GetSortableAttributes fetches the sortable attributes.
func (i *Index) GetSortableAttributes(ctx context.Context) ([]string, error) {
	return executeRequest[[]string](ctx, i.client, i.settingsURL("sortable-attributes"), methodGet(nil), 200)
}

// UpdateSortableAttributes enqueues a replacement of the sortable attributes.
func (i *Index) UpdateSortableAttributes(ctx context.Context, attributes []string) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("sortable-attributes"), methodPut(nil, attributes), 202)
}

// ResetSortableAttributes enqueues a reset of the sortable attributes.
func (i *Index) ResetSortableAttributes(ctx context.Context) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("sortable-attributes"), methodDelete(nil), 202)
}

// GetDistinctAttribute fetches the distinct attribute, nil when unset.
func (i *Index) GetDistinctAttribute(ctx context.Context) (*string, error) {
	return executeRequest[*string](ctx, i.client, i.settingsURL("distinct-attribute"), methodGet(nil), 200)
}

// UpdateDistinctAttribute enqueues a replacement of the distinct attribute.
func (i *Index) UpdateDistinctAttribute(ctx context.Context, attribute string) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("distinct-attribute"), methodPut(nil, attribute), 202)
}

// ResetDistinctAttribute enqueues a reset of the distinct attribute.
func (i *Index) ResetDistinctAttribute(ctx context.Context) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("distinct-attribute"), methodDelete(nil), 202)
}

// GetSearchableAttributes fetches the searchable attributes.
func (i *Index) GetSearchableAttributes(ctx context.Context) ([]string, error) {
	return executeRequest[[]string](ctx, i.client, i.settingsURL("searchable-attributes"), methodGet(nil), 200)
}

// UpdateSearchableAttributes enqueues a replacement of the searchable
// attributes.
func (i *Index) UpdateSearchableAttributes(ctx context.Context, attributes []string) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("searchable-attributes"), methodPut(nil, attributes), 202)
}

// ResetSearchableAttributes enqueues a reset of the searchable attributes.
func (i *Index) ResetSearchableAttributes(ctx context.Context) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("searchable-attributes"), methodDelete(nil), 202)
}

// GetDisplayedAttributes fetches the displayed attributes.
func (i *Index) GetDisplayedAttributes(ctx context.Context) ([]string, error) {
	return executeRequest[[]string](ctx, i.client, i.settingsURL("displayed-attributes"), methodGet(nil), 200)
}

// UpdateDisplayedAttributes enqueues a replacement of the displayed
// attributes.
func (i *Index) UpdateDisplayedAttributes(ctx context.Context, attributes []string) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("displayed-attributes"), methodPut(nil, attributes), 202)
}

// ResetDisplayedAttributes enqueues a reset of the displayed attributes.
func (i *Index) ResetDisplayedAttributes(ctx context.Context) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("displayed-attributes"), methodDelete(nil), 202)
}

// GetPagination fetches the pagination settings.
func (i *Index) GetPagination(ctx context.Context) (*PaginationSetting, error) {
	return executeRequest[*PaginationSetting](ctx, i.client, i.settingsURL("pagination"), methodGet(nil), 200)
}

// UpdatePagination enqueues a replacement of the pagination settings.
func (i *Index) UpdatePagination(ctx context.Context, pagination PaginationSetting) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("pagination"), methodPatch(nil, pagination), 202)
}

// ResetPagination enqueues a reset of the pagination settings.
func (i *Index) ResetPagination(ctx context.Context) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("pagination"), methodDelete(nil), 202)
}

// GetFaceting fetches the faceting settings.
func (i *Index) GetFaceting(ctx context.Context) (*FacetingSettings, error) {
	return executeRequest[*FacetingSettings](ctx, i.client, i.settingsURL("faceting"), methodGet(nil), 200)
}

// UpdateFaceting enqueues a replacement of the faceting settings.
func (i *Index) UpdateFaceting(ctx context.Context, faceting FacetingSettings) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("faceting"), methodPatch(nil, faceting), 202)
}

// ResetFaceting enqueues a reset of the faceting settings.
func (i *Index) ResetFaceting(ctx context.Context) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.settingsURL("faceting"), methodDelete(nil), 202)
}
