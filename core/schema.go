package core

import (
	"context"
	"fmt"
)

// FieldAttribute classifies one field of a document type for index
// configuration.
type FieldAttribute int

const (
	// PrimaryKey marks the field holding the document identifier. At most
	// one field per schema may carry it.
	PrimaryKey FieldAttribute = iota
	// Distinct marks the field results are deduplicated on. At most one
	// field per schema may carry it.
	Distinct
	// Searchable fields are matched against query words.
	Searchable
	// Displayed fields appear in returned documents.
	Displayed
	// Filterable fields can be used in filter expressions and facets.
	Filterable
	// Sortable fields can be used in sort expressions.
	Sortable
)

func (a FieldAttribute) String() string {
	switch a {
	case PrimaryKey:
		return "primary_key"
	case Distinct:
		return "distinct"
	case Searchable:
		return "searchable"
	case Displayed:
		return "displayed"
	case Filterable:
		return "filterable"
	case Sortable:
		return "sortable"
	default:
		return fmt.Sprintf("FieldAttribute(%d)", int(a))
	}
}

// IndexSchema is a declarative description of how one document type maps to
// an index: the index name, the primary key, and the classification of each
// field. It is written once per document type and replaces hand-maintained
// settings:
//
//	schema := core.NewIndexSchema("movies").
//	    Field("movie_id", core.PrimaryKey).
//	    Field("title", core.Searchable, core.Displayed).
//	    Field("release_date", core.Filterable, core.Sortable, core.Displayed).
//	    Field("genres", core.Filterable, core.Displayed)
//
//	index, err := schema.EnsureIndex(ctx, client)
//
// Field order is preserved: the order of Field calls determines attribute
// precedence (searchable attributes, in particular, are ordered by
// importance).
type IndexSchema struct {
	name       string
	primaryKey string
	distinct   string
	searchable []string
	displayed  []string
	filterable []string
	sortable   []string
	err        error
}

// NewIndexSchema starts a schema for the index with the given name.
func NewIndexSchema(name string) *IndexSchema {
	return &IndexSchema{name: name}
}

// Field classifies one field. Declaring PrimaryKey or Distinct twice across
// the schema, or the same attribute twice on one field, is an error surfaced
// by Validate and EnsureIndex.
func (s *IndexSchema) Field(name string, attributes ...FieldAttribute) *IndexSchema {
	seen := make(map[FieldAttribute]bool, len(attributes))
	for _, attr := range attributes {
		if seen[attr] {
			s.fail(fmt.Errorf("field %q declares %s twice", name, attr))
			continue
		}
		seen[attr] = true

		switch attr {
		case PrimaryKey:
			if s.primaryKey != "" {
				s.fail(fmt.Errorf("primary key already declared on field %q", s.primaryKey))
				continue
			}
			s.primaryKey = name
		case Distinct:
			if s.distinct != "" {
				s.fail(fmt.Errorf("distinct already declared on field %q", s.distinct))
				continue
			}
			s.distinct = name
		case Searchable:
			s.searchable = append(s.searchable, name)
		case Displayed:
			s.displayed = append(s.displayed, name)
		case Filterable:
			s.filterable = append(s.filterable, name)
		case Sortable:
			s.sortable = append(s.sortable, name)
		default:
			s.fail(fmt.Errorf("field %q declares unknown attribute %d", name, int(attr)))
		}
	}
	return s
}

func (s *IndexSchema) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Validate reports the first declaration error, if any.
func (s *IndexSchema) Validate() error {
	if s.name == "" {
		return fmt.Errorf("index schema has no name")
	}
	return s.err
}

// Name returns the index name.
func (s *IndexSchema) Name() string { return s.name }

// PrimaryKey returns the declared primary key field, empty when none.
func (s *IndexSchema) PrimaryKey() string { return s.primaryKey }

// Settings derives the index settings from the field classification. Lists
// are always present, possibly empty: a schema that declares no searchable
// field produces an empty searchable list, restricting the index, rather
// than leaving the service's permissive default in place.
func (s *IndexSchema) Settings() *Settings {
	settings := NewSettings().
		WithDisplayedAttributes(s.displayed...).
		WithSortableAttributes(s.sortable...).
		WithFilterableAttributes(s.filterable...).
		WithSearchableAttributes(s.searchable...)
	if s.distinct != "" {
		settings = settings.WithDistinctAttribute(s.distinct)
	}
	return settings
}

// EnsureIndex creates the index, waits for the creation task to complete,
// pushes the settings derived from the schema, and returns a live handle on
// it. Both waits use the poller defaults unless overridden by opts. A task
// that does not succeed surfaces as an [UnsuccessfulTaskError].
func (s *IndexSchema) EnsureIndex(ctx context.Context, c *Client, opts ...WaitOption) (*Index, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	info, err := c.CreateIndex(ctx, s.name, s.primaryKey)
	if err != nil {
		return nil, err
	}
	task, err := info.WaitForCompletion(ctx, c, opts...)
	if err != nil {
		return nil, err
	}
	index, err := task.TryMakeIndex(c)
	if err != nil {
		return nil, err
	}
	info, err = index.UpdateSettings(ctx, s.Settings())
	if err != nil {
		return nil, err
	}
	task, err = info.WaitForCompletion(ctx, c, opts...)
	if err != nil {
		return nil, err
	}
	if task.Status != TaskSucceeded {
		return nil, &UnsuccessfulTaskError{Task: task}
	}
	return index, nil
}
