package core

import (
	"context"
	"net/url"
	"time"
)

// Index is a handle on one index of the service. It carries no document data;
// every operation goes back to the service through the client that created
// it.
type Index struct {
	client *Client

	UID        string     `json:"uid"`
	PrimaryKey *string    `json:"primaryKey"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// Index returns a handle on the index with the given uid. No request is
// performed; the index may or may not exist on the service yet.
func (c *Client) Index(uid string) *Index {
	return &Index{client: c, UID: uid}
}

func (c *Client) indexURL(uid string) string {
	return c.host + "/indexes/" + url.PathEscape(uid)
}

type createIndexBody struct {
	UID        string `json:"uid"`
	PrimaryKey string `json:"primaryKey,omitempty"`
}

// CreateIndex enqueues the creation of an index. primaryKey may be empty, in
// which case the service infers one from the first documents.
func (c *Client) CreateIndex(ctx context.Context, uid, primaryKey string) (*TaskInfo, error) {
	body := createIndexBody{UID: uid, PrimaryKey: primaryKey}
	return executeRequest[*TaskInfo](ctx, c, c.host+"/indexes", methodPost(nil, body), 202)
}

// GetIndex fetches an index and returns a live handle on it.
func (c *Client) GetIndex(ctx context.Context, uid string) (*Index, error) {
	idx, err := executeRequest[*Index](ctx, c, c.indexURL(uid), methodGet(nil), 200)
	if err != nil {
		return nil, err
	}
	idx.client = c
	return idx, nil
}

// IndexesQuery narrows an index listing.
type IndexesQuery struct {
	Offset int64 `url:"offset,omitempty"`
	Limit  int64 `url:"limit,omitempty"`
}

// IndexesResults is one page of an index listing.
type IndexesResults struct {
	Results []Index `json:"results"`
	Offset  int64   `json:"offset"`
	Limit   int64   `json:"limit"`
	Total   int64   `json:"total"`
}

// ListIndexes lists the indexes of the service. A nil query uses service
// defaults.
func (c *Client) ListIndexes(ctx context.Context, q *IndexesQuery) (*IndexesResults, error) {
	results, err := executeRequest[*IndexesResults](ctx, c, c.host+"/indexes", methodGet(q), 200)
	if err != nil {
		return nil, err
	}
	for i := range results.Results {
		results.Results[i].client = c
	}
	return results, nil
}

// FetchInfo refreshes the handle's uid, primary key and timestamps from the
// service.
func (i *Index) FetchInfo(ctx context.Context) error {
	fresh, err := executeRequest[*Index](ctx, i.client, i.client.indexURL(i.UID), methodGet(nil), 200)
	if err != nil {
		return err
	}
	i.PrimaryKey = fresh.PrimaryKey
	i.CreatedAt = fresh.CreatedAt
	i.UpdatedAt = fresh.UpdatedAt
	return nil
}

type updateIndexBody struct {
	PrimaryKey string `json:"primaryKey"`
}

// UpdatePrimaryKey enqueues a primary key change. The service rejects the
// task if the index already contains documents.
func (i *Index) UpdatePrimaryKey(ctx context.Context, primaryKey string) (*TaskInfo, error) {
	body := updateIndexBody{PrimaryKey: primaryKey}
	return executeRequest[*TaskInfo](ctx, i.client, i.client.indexURL(i.UID), methodPatch(nil, body), 202)
}

// Delete enqueues the deletion of the index and everything in it.
func (i *Index) Delete(ctx context.Context) (*TaskInfo, error) {
	return executeRequest[*TaskInfo](ctx, i.client, i.client.indexURL(i.UID), methodDelete(nil), 202)
}

// WaitForTask polls a task through the index's client. See
// [Client.WaitForTask].
func (i *Index) WaitForTask(ctx context.Context, taskUID int64, opts ...WaitOption) (*Task, error) {
	return i.client.WaitForTask(ctx, taskUID, opts...)
}
