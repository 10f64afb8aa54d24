package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httag-cli/internal/tagl"
)

type recorded struct {
	Method      string
	EscapedPath string
	Path        string
	ContentType string
	Body        string
}

type recorder struct {
	mu     sync.Mutex
	reqs   []recorded
	status int
	reply  string
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	rec.mu.Lock()
	rec.reqs = append(rec.reqs, recorded{
		Method:      r.Method,
		EscapedPath: r.URL.EscapedPath(),
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		Body:        string(b),
	})
	status, reply := rec.status, rec.reply
	rec.mu.Unlock()
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply)
}

func newTestClient(t *testing.T, rec *recorder) *Client {
	t.Helper()
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL + "/some/page?view=tree")
	require.NoError(t, err)
	return c
}

func TestOrigin(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://localhost:2112", "http://localhost:2112"},
		{"http://localhost:2112/fruit?q=1#x", "http://localhost:2112"},
		{"https://tags.example", "https://tags.example"},
		{"localhost:2112", "http://localhost:2112"},
	}
	for _, tt := range tests {
		got, err := Origin(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := Origin("")
	assert.Error(t, err)
	_, err = Origin("http://")
	assert.Error(t, err)
}

func TestPut_SendsStatementToEscapedPath(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(t, rec)

	resp, err := c.Put(context.Background(), "apple", tagl.EncodePutTag("apple", tagl.SubRelation, "fruit"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)

	require.Len(t, rec.reqs, 1)
	got := rec.reqs[0]
	assert.Equal(t, http.MethodPut, got.Method)
	assert.Equal(t, "/apple", got.EscapedPath)
	assert.Equal(t, "text/plain; charset=utf-8", got.ContentType)
	assert.Equal(t, ">> apple _sub fruit", got.Body)
}

func TestPost_AppendsPredicate(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(t, rec)

	_, err := c.Post(context.Background(), "apple", tagl.EncodePutPredicate("apple", "_color red"))
	require.NoError(t, err)

	require.Len(t, rec.reqs, 1)
	assert.Equal(t, http.MethodPost, rec.reqs[0].Method)
	assert.Equal(t, "/apple", rec.reqs[0].EscapedPath)
	assert.Equal(t, ">> apple _color red", rec.reqs[0].Body)
}

func TestTagPath_RoundTripsThroughServerDecoding(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(t, rec)

	ids := []string{
		"new york",
		"a/b",
		"what?",
		"50%",
		"semi;colon,comma",
		"ünïcode ✓",
		"hash#tag",
	}
	for _, id := range ids {
		_, err := c.Put(context.Background(), id, tagl.EncodePutTag(id, tagl.SubRelation, "thing"))
		require.NoError(t, err, id)
	}

	require.Len(t, rec.reqs, len(ids))
	for i, id := range ids {
		got := rec.reqs[i]
		assert.Equal(t, "/"+url.PathEscape(id), got.EscapedPath, id)
		// The server's decoding step must recover the exact id, as one segment.
		assert.Equal(t, "/"+id, got.Path, id)
		unescaped, err := url.PathUnescape(got.EscapedPath[1:])
		require.NoError(t, err)
		assert.Equal(t, id, unescaped)
	}
}

func TestServerError_CarriesStatusAndDiagnostic(t *testing.T) {
	rec := &recorder{status: http.StatusConflict, reply: "conflict\n"}
	c := newTestClient(t, rec)

	_, err := c.Put(context.Background(), "apple", ">> apple _sub fruit")
	require.Error(t, err)

	var se *ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusConflict, se.Status)
	assert.Equal(t, "conflict", se.Message)
	assert.Contains(t, se.Error(), "conflict")
	assert.True(t, IsServerError(err, http.StatusConflict))
	assert.True(t, IsServerError(err, 0))
	assert.False(t, IsNetworkError(err))
	// A failed request is not retried.
	assert.Len(t, rec.reqs, 1)
}

func TestNetworkError_OnTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(base)
	require.NoError(t, err)

	_, err = c.Post(context.Background(), "apple", ">> apple _color red")
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.False(t, IsServerError(err, 0))
}

func TestEmptyTagIDIssuesNoRequest(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(t, rec)

	_, err := c.Put(context.Background(), "", ">>  _sub fruit")
	assert.ErrorIs(t, err, tagl.ErrEmptyTagID)
	_, err = c.Post(context.Background(), "  ", ">>    _color red")
	assert.ErrorIs(t, err, tagl.ErrEmptyTagID)
	assert.Empty(t, rec.reqs)
}

func TestGet_ReturnsPageBody(t *testing.T) {
	rec := &recorder{reply: "<html><title>fruit</title></html>"}
	c := newTestClient(t, rec)

	resp, err := c.Get(context.Background(), c.TagURL("fruit"))
	require.NoError(t, err)
	assert.Contains(t, string(resp.Body), "<title>fruit</title>")
	require.Len(t, rec.reqs, 1)
	assert.Equal(t, http.MethodGet, rec.reqs[0].Method)
	assert.Equal(t, "/fruit", rec.reqs[0].Path)
}
