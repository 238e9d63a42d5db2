package core

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/indexes/movies/search" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Method = %q, want POST", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		var got map[string]any
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("request body: %v", err)
		}
		if got["q"] != "shazam" {
			t.Errorf("q = %v, want shazam", got["q"])
		}
		if got["limit"] != float64(5) {
			t.Errorf("limit = %v, want 5", got["limit"])
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"hits":[{"id":1,"title":"Shazam!","genres":["comedy"]}],
			"estimatedTotalHits":1,"offset":0,"limit":5,
			"processingTimeMs":2,"query":"shazam"
		}`))
	}))
	defer server.Close()

	c := New(server.URL, "")
	results, err := Search[movie](context.Background(), c.Index("movies"),
		NewSearchQuery().WithQuery("shazam").WithLimit(5))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results.Hits) != 1 {
		t.Fatalf("Hits = %d, want 1", len(results.Hits))
	}
	if results.Hits[0].Title != "Shazam!" {
		t.Errorf("Title = %q, want Shazam!", results.Hits[0].Title)
	}
	if results.EstimatedTotalHits != 1 {
		t.Errorf("EstimatedTotalHits = %d, want 1", results.EstimatedTotalHits)
	}
	if results.Query != "shazam" {
		t.Errorf("Query = %q, want shazam", results.Query)
	}
}

func TestSearchQueryBuilders(t *testing.T) {
	q := NewSearchQuery().
		WithQuery("shazam").
		WithFilter("genres = comedy").
		WithAttributesToCrop("description").
		WithCropLength(10)

	if q.Query != "shazam" {
		t.Errorf("Query = %q", q.Query)
	}
	if q.Filter != "genres = comedy" {
		t.Errorf("Filter = %q", q.Filter)
	}
	if len(q.AttributesToCrop) != 1 || q.AttributesToCrop[0] != "description" {
		t.Errorf("AttributesToCrop = %v", q.AttributesToCrop)
	}
	if q.CropLength != 10 {
		t.Errorf("CropLength = %d, want 10", q.CropLength)
	}
}

func TestSearchNilQueryMatchesAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != "{}" {
			t.Errorf("body = %s, want {}", body)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"hits":[],"estimatedTotalHits":0,"offset":0,"limit":20,"processingTimeMs":0,"query":""}`))
	}))
	defer server.Close()

	c := New(server.URL, "")
	results, err := Search[movie](context.Background(), c.Index("movies"), nil)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results.Hits) != 0 {
		t.Errorf("Hits = %v, want none", results.Hits)
	}
	if results.Limit != 20 {
		t.Errorf("Limit = %d, want 20", results.Limit)
	}
}

func TestSearchFilterAndFacets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var got SearchQuery
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("request body: %v", err)
		}
		if got.Filter != "genres = comedy" {
			t.Errorf("filter = %q", got.Filter)
		}
		if len(got.Facets) != 1 || got.Facets[0] != "genres" {
			t.Errorf("facets = %v", got.Facets)
		}
		if len(got.Sort) != 1 || got.Sort[0] != "title:asc" {
			t.Errorf("sort = %v", got.Sort)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"hits":[],"estimatedTotalHits":0,"offset":0,"limit":20,
			"processingTimeMs":1,"query":"",
			"facetDistribution":{"genres":{"comedy":7,"horror":2}}
		}`))
	}))
	defer server.Close()

	c := New(server.URL, "")
	results, err := Search[movie](context.Background(), c.Index("movies"),
		NewSearchQuery().
			WithFilter("genres = comedy").
			WithFacets("genres").
			WithSort("title:asc"))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if results.FacetDistribution["genres"]["comedy"] != 7 {
		t.Errorf("FacetDistribution = %v", results.FacetDistribution)
	}
}

func TestSearchInvalidFilterError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{
			"message":"attribute genres is not filterable",
			"code":"invalid_search_filter",
			"type":"invalid_request",
			"link":"https://example.com/errors#invalid_search_filter"
		}`))
	}))
	defer server.Close()

	c := New(server.URL, "")
	_, err := Search[movie](context.Background(), c.Index("movies"),
		NewSearchQuery().WithFilter("genres = comedy"))
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error = %T, want *ServiceError", err)
	}
	if svcErr.Code != "invalid_search_filter" {
		t.Errorf("Code = %q, want invalid_search_filter", svcErr.Code)
	}
}

func TestSearchRawDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"hits":[{"anything":true}],"estimatedTotalHits":1,"offset":0,"limit":20,"processingTimeMs":0,"query":""}`))
	}))
	defer server.Close()

	c := New(server.URL, "")
	results, err := Search[map[string]any](context.Background(), c.Index("movies"), nil)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if results.Hits[0]["anything"] != true {
		t.Errorf("hit = %v", results.Hits[0])
	}
}
