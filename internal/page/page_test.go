package page

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"httag-cli/internal/api"
	"httag-cli/internal/tagl"
)

const fruitPage = `<html><head><title>fruit</title></head><body>
<span id="tag-id">fruit</span>
<ul class="tree"><li class="super"><a href="/_entity">_entity</a><ul>
	<li class="id"><a href="/fruit">fruit</a><ul><li class="child"><a href="/apple">apple</a></li></ul></li>
</ul></li></ul>
</body></html>`

func TestLoadTag(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, fruitPage)
	}))
	defer srv.Close()

	c, err := api.New(srv.URL)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	p, err := Loader{Client: c}.LoadTag(context.Background(), "fruit")
	if err != nil {
		t.Fatalf("LoadTag: %v", err)
	}
	if gotPath != "/fruit" {
		t.Fatalf("path = %q", gotPath)
	}
	if p.TagID != "fruit" || p.URL != srv.URL+"/fruit" {
		t.Fatalf("unexpected page: %+v", p)
	}
	if p.Snapshot.Child == nil || p.Snapshot.Child.Target != srv.URL+"/apple" {
		t.Fatalf("child link = %+v", p.Snapshot.Child)
	}
	if p.Snapshot.Parent == nil || p.Snapshot.Parent.Label != "_entity" {
		t.Fatalf("parent link = %+v", p.Snapshot.Parent)
	}
}

func TestLoad_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such tag", http.StatusNotFound)
	}))
	defer srv.Close()

	c, _ := api.New(srv.URL)
	_, err := Loader{Client: c}.LoadTag(context.Background(), "ghost")
	if !api.IsServerError(err, http.StatusNotFound) {
		t.Fatalf("expected 404 server error; got %v", err)
	}
}

func TestLoadTag_EmptyID(t *testing.T) {
	c, _ := api.New("http://localhost:1")
	_, err := Loader{Client: c}.LoadTag(context.Background(), "")
	if !errors.Is(err, tagl.ErrEmptyTagID) {
		t.Fatalf("expected ErrEmptyTagID; got %v", err)
	}
}
