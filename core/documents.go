package core

import (
	"context"
	"net/url"
)

// DocumentsResults is one page of documents.
type DocumentsResults[T any] struct {
	Results []T   `json:"results"`
	Offset  int64 `json:"offset"`
	Limit   int64 `json:"limit"`
	Total   int64 `json:"total"`
}

// DocumentQuery narrows the fields returned for a single document.
type DocumentQuery struct {
	Fields []string `url:"fields,omitempty,comma"`
}

// NewDocumentQuery creates an empty single-document query.
func NewDocumentQuery() *DocumentQuery {
	return &DocumentQuery{}
}

// WithFields restricts the returned document to the given fields.
func (q *DocumentQuery) WithFields(fields ...string) *DocumentQuery {
	q.Fields = fields
	return q
}

// DocumentsQuery pages and narrows a document listing.
type DocumentsQuery struct {
	// Offset is the number of documents to skip, for pagination.
	Offset int64 `url:"offset,omitempty"`
	// Limit caps the number of returned documents. Service default: 20.
	Limit int64 `url:"limit,omitempty"`
	// Fields restricts which fields appear in each document. All by default.
	Fields []string `url:"fields,omitempty,comma"`
}

// NewDocumentsQuery creates an empty document listing query.
func NewDocumentsQuery() *DocumentsQuery {
	return &DocumentsQuery{}
}

// WithOffset sets the number of documents to skip.
func (q *DocumentsQuery) WithOffset(offset int64) *DocumentsQuery {
	q.Offset = offset
	return q
}

// WithLimit caps the number of returned documents.
func (q *DocumentsQuery) WithLimit(limit int64) *DocumentsQuery {
	q.Limit = limit
	return q
}

// WithFields restricts which fields appear in each document.
func (q *DocumentsQuery) WithFields(fields ...string) *DocumentsQuery {
	q.Fields = fields
	return q
}

// DocumentDeletionQuery deletes every document matching a filter expression.
// The filtered attributes must be declared filterable in the index settings.
type DocumentDeletionQuery struct {
	Filter string `json:"filter"`
}

// NewDocumentDeletionQuery creates an empty deletion query.
func NewDocumentDeletionQuery() *DocumentDeletionQuery {
	return &DocumentDeletionQuery{}
}

// WithFilter sets the filter expression.
func (q *DocumentDeletionQuery) WithFilter(filter string) *DocumentDeletionQuery {
	q.Filter = filter
	return q
}

func (i *Index) documentsURL() string {
	return i.client.indexURL(i.UID) + "/documents"
}

func (i *Index) documentURL(documentID string) string {
	return i.documentsURL() + "/" + url.PathEscape(documentID)
}

// GetDocument fetches one document by its primary key value and decodes it
// into T.
func GetDocument[T any](ctx context.Context, i *Index, documentID string) (T, error) {
	return GetDocumentWith[T](ctx, i, documentID, nil)
}

// GetDocumentWith fetches one document, narrowed by q.
func GetDocumentWith[T any](ctx context.Context, i *Index, documentID string, q *DocumentQuery) (T, error) {
	return executeRequest[T](ctx, i.client, i.documentURL(documentID), methodGet(q), 200)
}

// GetDocuments fetches a page of documents with service defaults.
func GetDocuments[T any](ctx context.Context, i *Index) (*DocumentsResults[T], error) {
	return GetDocumentsWith[T](ctx, i, nil)
}

// GetDocumentsWith fetches a page of documents, paged and narrowed by q.
func GetDocumentsWith[T any](ctx context.Context, i *Index, q *DocumentsQuery) (*DocumentsResults[T], error) {
	return executeRequest[*DocumentsResults[T]](ctx, i.client, i.documentsURL(), methodGet(q), 200)
}

type primaryKeyQuery struct {
	PrimaryKey string `url:"primaryKey,omitempty"`
}

// AddDocuments enqueues an add-or-replace of the given documents: an existing
// document with the same primary key value is replaced wholesale.
// documents must serialize to a JSON array of objects. primaryKey may be
// empty when the index already knows its key.
func (i *Index) AddDocuments(ctx context.Context, documents any, primaryKey string) (*TaskInfo, error) {
	q := primaryKeyQuery{PrimaryKey: primaryKey}
	return executeRequest[*TaskInfo](ctx, i.client, i.documentsURL(), methodPost(q, documents), 202)
}

// UpdateDocuments enqueues an add-or-update of the given documents: fields of
// an existing document that the payload does not mention are kept.
func (i *Index) UpdateDocuments(ctx context.Context, documents any, primaryKey string) (*TaskInfo, error) {
	q := primaryKeyQuery{PrimaryKey: primaryKey}
	return executeRequest[*TaskInfo](ctx, i.client, i.documentsURL(), methodPut(q, documents), 202)
}

// DeleteDocument enqueues the deletion of one document by its primary key
// value.
func (i *Index) DeleteDocument(ctx context.Context, documentID string) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.documentURL(documentID), methodDelete(nil), 202)
}

// DeleteAllDocuments enqueues the deletion of every document in the index.
// The index itself and its settings are kept.
func (i *Index) DeleteAllDocuments(ctx context.Context) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.documentsURL(), methodDelete(nil), 202)
}

// DeleteDocuments enqueues the deletion of the documents with the given
// primary key values.
func (i *Index) DeleteDocuments(ctx context.Context, documentIDs []string) (*TaskInfo, error) {
	u := i.documentsURL() + "/delete-batch"
	return executeRequest[*TaskInfo](ctx, i.client, u, methodPost(nil, documentIDs), 202)
}

// DeleteDocumentsWith enqueues the deletion of every document matching the
// query's filter.
func (i *Index) DeleteDocumentsWith(ctx context.Context, q *DocumentDeletionQuery) (*TaskInfo, error) {
	u := i.documentsURL() + "/delete"
	return executeRequest[*TaskInfo](ctx, i.client, u, methodPost(nil, q), 202)
}
