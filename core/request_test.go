package core

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
)

func TestMethodVerbAndBodyPairing(t *testing.T) {
	query := struct{}{}
	body := map[string]string{"k": "v"}

	tests := []struct {
		name     string
		method   method
		wantVerb string
		wantBody bool
	}{
		{"get", methodGet(query), http.MethodGet, false},
		{"post", methodPost(query, body), http.MethodPost, true},
		{"put", methodPut(query, body), http.MethodPut, true},
		{"patch", methodPatch(query, body), http.MethodPatch, true},
		{"delete", methodDelete(query), http.MethodDelete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.method.verb(); got != tt.wantVerb {
				t.Errorf("verb() = %q, want %q", got, tt.wantVerb)
			}
			if got := tt.method.hasBody(); got != tt.wantBody {
				t.Errorf("hasBody() = %v, want %v", got, tt.wantBody)
			}
		})
	}
}

func TestAddQueryParameters(t *testing.T) {
	type listQuery struct {
		Offset int64    `url:"offset,omitempty"`
		Limit  int64    `url:"limit,omitempty"`
		Fields []string `url:"fields,omitempty,comma"`
	}

	tests := []struct {
		name  string
		query any
		want  string
	}{
		{"nil query", nil, "http://host/indexes"},
		{"empty struct", &listQuery{}, "http://host/indexes"},
		{"all fields omitted", &listQuery{Offset: 0, Limit: 0}, "http://host/indexes"},
		{"offset and limit", &listQuery{Offset: 1, Limit: 2}, "http://host/indexes?limit=2&offset=1"},
		{"comma list encoded", &listQuery{Fields: []string{"id", "kind"}}, "http://host/indexes?fields=id%2Ckind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := addQueryParameters("http://host/indexes", tt.query)
			if err != nil {
				t.Fatalf("addQueryParameters() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("addQueryParameters() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseResponseClassification(t *testing.T) {
	c := New("http://host", "")

	t.Run("expected status decodes body", func(t *testing.T) {
		got, err := parseResponse[map[string]string](c, 200, 200, `{"a":"b"}`, "http://host/x")
		if err != nil {
			t.Fatalf("parseResponse() error = %v", err)
		}
		if got["a"] != "b" {
			t.Errorf("got[a] = %q, want %q", got["a"], "b")
		}
	})

	t.Run("empty body decodes as null", func(t *testing.T) {
		got, err := parseResponse[*HealthStatus](c, 200, 200, "", "http://host/x")
		if err != nil {
			t.Fatalf("parseResponse() error = %v", err)
		}
		if got != nil {
			t.Errorf("got = %v, want nil", got)
		}
	})

	t.Run("expected status with unparseable body is ParseError", func(t *testing.T) {
		_, err := parseResponse[map[string]string](c, 200, 200, "not json", "http://host/x")
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("error = %T, want *ParseError", err)
		}
	})

	t.Run("unexpected status with service error body is ServiceError", func(t *testing.T) {
		body := `{"message":"Index movies not found.","code":"index_not_found","type":"invalid_request","link":"https://docs.example.com/errors#index_not_found"}`
		_, err := parseResponse[*Task](c, 404, 200, body, "http://host/x")
		var svcErr *ServiceError
		if !errors.As(err, &svcErr) {
			t.Fatalf("error = %T, want *ServiceError", err)
		}
		if svcErr.Code != ErrCodeIndexNotFound {
			t.Errorf("Code = %q, want %q", svcErr.Code, ErrCodeIndexNotFound)
		}
		if svcErr.Message != "Index movies not found." {
			t.Errorf("Message = %q", svcErr.Message)
		}
	})

	t.Run("unexpected 4xx with unparseable body is CommunicationError", func(t *testing.T) {
		_, err := parseResponse[*Task](c, 502, 200, "<html>bad gateway</html>", "http://host/x")
		var commErr *CommunicationError
		if !errors.As(err, &commErr) {
			t.Fatalf("error = %T, want *CommunicationError", err)
		}
		if commErr.StatusCode != 502 {
			t.Errorf("StatusCode = %d, want 502", commErr.StatusCode)
		}
		if commErr.URL != "http://host/x" {
			t.Errorf("URL = %q, want %q", commErr.URL, "http://host/x")
		}
	})

	t.Run("unexpected non-error status with unparseable body is ParseError", func(t *testing.T) {
		_, err := parseResponse[*Task](c, 204, 200, "", "http://host/x")
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("error = %T, want *ParseError", err)
		}
	})
}

func TestParseResponseRoundTrip(t *testing.T) {
	c := New("http://host", "")

	want := TaskInfo{TaskUID: 7, IndexUID: "movies", Status: TaskEnqueued, Type: "indexCreation"}
	encoded, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got, err := parseResponse[TaskInfo](c, 202, 202, string(encoded), "http://host/indexes")
	if err != nil {
		t.Fatalf("parseResponse() error = %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestExecuteRequestHeaders(t *testing.T) {
	t.Run("authorization present iff api key supplied", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"available"}`))
		}))
		defer server.Close()

		c := New(server.URL, "masterKey")
		if _, err := c.Health(context.Background()); err != nil {
			t.Fatalf("Health() error = %v", err)
		}
		if gotAuth != "Bearer masterKey" {
			t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer masterKey")
		}

		c = New(server.URL, "")
		if _, err := c.Health(context.Background()); err != nil {
			t.Fatalf("Health() error = %v", err)
		}
		if gotAuth != "" {
			t.Errorf("Authorization = %q, want absent", gotAuth)
		}
	})

	t.Run("fixed user agent", func(t *testing.T) {
		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"available"}`))
		}))
		defer server.Close()

		c := New(server.URL, "")
		if _, err := c.Health(context.Background()); err != nil {
			t.Fatalf("Health() error = %v", err)
		}
		if gotUA != "Loupe Go (v"+Version+")" {
			t.Errorf("User-Agent = %q, want %q", gotUA, "Loupe Go (v"+Version+")")
		}
	})
}

func TestExecuteRequestBodyAttachment(t *testing.T) {
	type recorded struct {
		verb        string
		contentType string
		body        string
	}
	var got recorded

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		got = recorded{
			verb:        r.Method,
			contentType: r.Header.Get("Content-Type"),
			body:        string(buf),
		}
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"taskUid":1,"status":"enqueued"}`))
	}))
	defer server.Close()

	c := New(server.URL, "")
	idx := c.Index("movies")

	if _, err := idx.DeleteAllDocuments(context.Background()); err != nil {
		t.Fatalf("DeleteAllDocuments() error = %v", err)
	}
	if got.verb != http.MethodDelete {
		t.Errorf("verb = %q, want DELETE", got.verb)
	}
	if got.body != "" {
		t.Errorf("DELETE carried a body: %q", got.body)
	}

	docs := []map[string]any{{"id": 1}}
	if _, err := idx.AddDocuments(context.Background(), docs, ""); err != nil {
		t.Fatalf("AddDocuments() error = %v", err)
	}
	if got.verb != http.MethodPost {
		t.Errorf("verb = %q, want POST", got.verb)
	}
	if got.contentType != contentTypeJSON {
		t.Errorf("Content-Type = %q, want %q", got.contentType, contentTypeJSON)
	}
	if got.body != `[{"id":1}]` {
		t.Errorf("body = %q, want %q", got.body, `[{"id":1}]`)
	}
}

func TestExecuteRequestTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	c := New(server.URL, "")
	_, err := c.Health(context.Background())

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error = %T, want *TransportError", err)
	}
}
