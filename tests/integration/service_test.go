//go:build integration

package integration

import (
	"errors"
	"testing"
	"time"

	"github.com/petal-labs/loupe/core"
)

func TestService_Health(t *testing.T) {
	client := newTestClient(t)

	status, err := client.Health(waitCtx(t))
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if status.Status == "" {
		t.Error("Health() returned empty status")
	}
}

func TestService_Version(t *testing.T) {
	client := newTestClient(t)

	version, err := client.ServiceVersion(waitCtx(t))
	if err != nil {
		t.Fatalf("ServiceVersion() error = %v", err)
	}
	if version.PkgVersion == "" {
		t.Error("ServiceVersion() returned empty pkgVersion")
	}
}

func TestService_IndexLifecycle(t *testing.T) {
	client := newTestClient(t)
	ctx := waitCtx(t)
	uid := uniqueIndexUID(t, client)

	info, err := client.CreateIndex(ctx, uid, "id")
	if err != nil {
		t.Fatalf("CreateIndex() error = %v", err)
	}
	task, err := info.WaitForCompletion(ctx, client)
	if err != nil {
		t.Fatalf("WaitForCompletion() error = %v", err)
	}
	if task.Status != core.TaskSucceeded {
		t.Fatalf("creation task status = %q: %+v", task.Status, task.Error)
	}

	index, err := client.GetIndex(ctx, uid)
	if err != nil {
		t.Fatalf("GetIndex() error = %v", err)
	}
	if index.PrimaryKey == nil || *index.PrimaryKey != "id" {
		t.Errorf("PrimaryKey = %v, want id", index.PrimaryKey)
	}
}

func TestService_DocumentsAndSearch(t *testing.T) {
	type movie struct {
		ID     int64    `json:"id"`
		Title  string   `json:"title"`
		Genres []string `json:"genres"`
	}

	client := newTestClient(t)
	ctx := waitCtx(t)
	uid := uniqueIndexUID(t, client)
	index := client.Index(uid)

	movies := []movie{
		{ID: 1, Title: "Shazam!", Genres: []string{"comedy"}},
		{ID: 2, Title: "The Ring", Genres: []string{"horror"}},
	}
	info, err := index.AddDocuments(ctx, movies, "id")
	if err != nil {
		t.Fatalf("AddDocuments() error = %v", err)
	}
	task, err := info.WaitForCompletion(ctx, client, core.WithPollTimeout(20*time.Second))
	if err != nil {
		t.Fatalf("WaitForCompletion() error = %v", err)
	}
	if task.Status != core.TaskSucceeded {
		t.Fatalf("addition task status = %q: %+v", task.Status, task.Error)
	}

	got, err := core.GetDocument[movie](ctx, index, "1")
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if got.Title != "Shazam!" {
		t.Errorf("Title = %q, want Shazam!", got.Title)
	}

	// Typo-tolerant search should still match.
	results, err := core.Search[movie](ctx, index, core.NewSearchQuery().WithQuery("shzam"))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results.Hits) != 1 || results.Hits[0].ID != 1 {
		t.Errorf("Hits = %+v, want Shazam! only", results.Hits)
	}
}

func TestService_SettingsRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := waitCtx(t)
	uid := uniqueIndexUID(t, client)
	index := client.Index(uid)

	info, err := client.CreateIndex(ctx, uid, "")
	if err != nil {
		t.Fatalf("CreateIndex() error = %v", err)
	}
	if _, err := info.WaitForCompletion(ctx, client); err != nil {
		t.Fatalf("WaitForCompletion() error = %v", err)
	}

	info, err = index.UpdateStopWords(ctx, []string{"the", "a"})
	if err != nil {
		t.Fatalf("UpdateStopWords() error = %v", err)
	}
	if _, err := info.WaitForCompletion(ctx, client); err != nil {
		t.Fatalf("WaitForCompletion() error = %v", err)
	}

	words, err := index.GetStopWords(ctx)
	if err != nil {
		t.Fatalf("GetStopWords() error = %v", err)
	}
	if len(words) != 2 {
		t.Errorf("GetStopWords() = %v, want 2 entries", words)
	}

	info, err = index.ResetStopWords(ctx)
	if err != nil {
		t.Fatalf("ResetStopWords() error = %v", err)
	}
	if _, err := info.WaitForCompletion(ctx, client); err != nil {
		t.Fatalf("WaitForCompletion() error = %v", err)
	}

	words, err = index.GetStopWords(ctx)
	if err != nil {
		t.Fatalf("GetStopWords() error = %v", err)
	}
	if len(words) != 0 {
		t.Errorf("GetStopWords() after reset = %v, want empty", words)
	}
}

func TestService_SchemaEnsureIndex(t *testing.T) {
	client := newTestClient(t)
	ctx := waitCtx(t)
	uid := uniqueIndexUID(t, client)

	schema := core.NewIndexSchema(uid).
		Field("id", core.PrimaryKey).
		Field("title", core.Searchable, core.Displayed).
		Field("genres", core.Filterable, core.Displayed)

	index, err := schema.EnsureIndex(ctx, client)
	if err != nil {
		t.Fatalf("EnsureIndex() error = %v", err)
	}
	if index.UID != uid {
		t.Errorf("UID = %q, want %q", index.UID, uid)
	}

	// A second EnsureIndex on the same name must surface the
	// already-exists failure, not mask it.
	if _, err := schema.EnsureIndex(ctx, client); err == nil {
		t.Error("EnsureIndex() on existing index should fail")
	}
}

func TestService_UnknownIndexError(t *testing.T) {
	client := newTestClient(t)

	_, err := client.GetIndex(waitCtx(t), "does_not_exist_anywhere")
	if err == nil {
		t.Fatal("GetIndex() on missing index should fail")
	}

	var svcErr *core.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error type = %T, want *core.ServiceError", err)
	}
	if svcErr.Code != core.ErrCodeIndexNotFound {
		t.Errorf("Code = %q, want %q", svcErr.Code, core.ErrCodeIndexNotFound)
	}
}
