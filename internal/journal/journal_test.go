package journal

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httag-cli/internal/mutate"
	"httag-cli/internal/tagl"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "journal.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRecordAndList(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()
	t0 := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, j.Record(ctx, mutate.Result{
		Kind:      mutate.KindCreateChild,
		Method:    http.MethodPut,
		TagID:     "apple",
		Statement: tagl.EncodePutTag("apple", tagl.SubRelation, "fruit"),
		Status:    http.StatusOK,
		At:        t0,
	}))
	require.NoError(t, j.Record(ctx, mutate.Result{
		Kind:      mutate.KindAddPredicate,
		Method:    http.MethodPost,
		TagID:     "apple",
		Statement: tagl.EncodePutPredicate("apple", "_color red"),
		Status:    http.StatusInternalServerError,
		Err:       errors.New("conflict"),
		At:        t0.Add(time.Minute),
	}))

	all, err := j.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)

	latest := all[0]
	assert.Equal(t, "add-predicate", latest.Kind)
	assert.Equal(t, http.MethodPost, latest.Method)
	assert.Equal(t, ">> apple _color red", latest.Statement)
	assert.Equal(t, "conflict", latest.Error)
	assert.Equal(t, http.StatusInternalServerError, latest.Status)
	assert.True(t, latest.At.Equal(t0.Add(time.Minute)))
	assert.True(t, strings.HasPrefix(latest.ID, "sub-"))

	assert.Equal(t, ">> apple _sub fruit", all[1].Statement)
	assert.Empty(t, all[1].Error)

	one, err := j.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, latest.ID, one[0].ID)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(context.Background(), " ")
	assert.Error(t, err)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "j.sqlite")
	ctx := context.Background()

	j, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, mutate.Result{Kind: mutate.KindCreateChild, Method: http.MethodPut, TagID: "a", Statement: ">> a _sub b"}))
	require.NoError(t, j.Close())

	j, err = Open(ctx, path)
	require.NoError(t, err)
	defer j.Close()
	got, err := j.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
