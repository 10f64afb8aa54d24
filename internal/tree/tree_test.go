package tree

import (
	"os"
	"strings"
	"testing"
)

const pageURL = "http://localhost:2112/apple"

func scanString(t *testing.T, html string) Page {
	t.Helper()
	p, err := Scan(strings.NewReader(html), pageURL)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return p
}

func wantLink(t *testing.T, name string, got *Link, target, label string) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: expected link to %s; got nil", name, target)
	}
	if got.Target != target || got.Label != label {
		t.Fatalf("%s: got %+v; want target=%s label=%s", name, *got, target, label)
	}
}

func TestScan_FullTree(t *testing.T) {
	f, err := os.Open("testdata/apple.html")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	p, err := Scan(f, pageURL)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if p.TagID != "apple" {
		t.Fatalf("TagID = %q; want apple", p.TagID)
	}
	if p.Title != "apple - tagd" {
		t.Fatalf("Title = %q", p.Title)
	}
	s := p.Snapshot
	wantLink(t, "self", s.Self, "http://localhost:2112/apple", "apple")
	wantLink(t, "parent", s.Parent, "http://localhost:2112/fruit", "fruit")
	wantLink(t, "prev", s.Prev, "http://localhost:2112/banana", "banana")
	wantLink(t, "next", s.Next, "http://localhost:2112/cherry", "cherry")
	wantLink(t, "child", s.Child, "http://localhost:2112/gala", "gala")

	var labels []string
	for _, n := range p.Nodes {
		labels = append(labels, n.Label)
	}
	if got := strings.Join(labels, ","); got != "fruit,banana,apple,gala,fuji,cherry,date" {
		t.Fatalf("node order = %s", got)
	}
	if p.Nodes[0].Depth != 0 || p.Nodes[2].Depth != 1 || p.Nodes[3].Depth != 2 {
		t.Fatalf("unexpected depths: %+v", p.Nodes)
	}
	if p.Nodes[2].Relation != RelationID || p.Nodes[3].Relation != RelationChild {
		t.Fatalf("unexpected relations: %+v", p.Nodes)
	}
}

func TestScan_RootHasNoParent(t *testing.T) {
	p := scanString(t, `<ul class="tree">
		<li class="id"><a href="/_entity">_entity</a>
			<ul><li class="child"><a href="/fruit">fruit</a></li></ul>
		</li>
	</ul>`)
	s := p.Snapshot
	if s.Parent != nil || s.Prev != nil || s.Next != nil {
		t.Fatalf("expected only a child link; got %+v", s)
	}
	wantLink(t, "child", s.Child, "http://localhost:2112/fruit", "fruit")
	// Without #tag-id the own anchor names the tag.
	if p.TagID != "_entity" {
		t.Fatalf("TagID = %q", p.TagID)
	}
}

func TestScan_LeafHasNoChild(t *testing.T) {
	p := scanString(t, `<ul class="tree">
		<li class="super"><a href="/fruit">fruit</a>
			<ul><li class="id"><a href="/apple">apple</a></li></ul>
		</li>
	</ul>`)
	if p.Snapshot.Child != nil || p.Snapshot.Prev != nil || p.Snapshot.Next != nil {
		t.Fatalf("unexpected links: %+v", p.Snapshot)
	}
	wantLink(t, "parent", p.Snapshot.Parent, "http://localhost:2112/fruit", "fruit")
}

func TestScan_NearestSuperIsParent(t *testing.T) {
	p := scanString(t, `<ul class="tree">
		<li class="super"><a href="/_entity">_entity</a><ul>
			<li class="super"><a href="/fruit">fruit</a><ul>
				<li class="id"><a href="/apple">apple</a></li>
			</ul></li>
		</ul></li>
	</ul>`)
	wantLink(t, "parent", p.Snapshot.Parent, "http://localhost:2112/fruit", "fruit")
}

func TestScan_NextSkipsNonSiblingNodes(t *testing.T) {
	p := scanString(t, `<ul class="tree"><li class="super"><a href="/fruit">fruit</a><ul>
		<li class="id"><a href="/apple">apple</a></li>
		<li class="note"><a href="/x">x</a></li>
		<li class="sibling"><a href="/cherry">cherry</a></li>
	</ul></li></ul>`)
	wantLink(t, "next", p.Snapshot.Next, "http://localhost:2112/cherry", "cherry")
}

func TestScan_WrappedAnchorAndEscapedHref(t *testing.T) {
	p := scanString(t, `<ul class="tree"><li class="super"><span class="add-child-wrapper"><a href="/new%20york">new york</a></span><ul>
		<li class="id"><a href="http://other.example/apple">apple</a></li>
	</ul></li></ul>`)
	wantLink(t, "parent", p.Snapshot.Parent, "http://localhost:2112/new%20york", "new york")
	wantLink(t, "self", p.Snapshot.Self, "http://other.example/apple", "apple")
}

func TestScan_NoTree(t *testing.T) {
	p := scanString(t, `<html><body><p>nothing here</p></body></html>`)
	if !p.Snapshot.Empty() || p.Snapshot.Self != nil || len(p.Nodes) != 0 {
		t.Fatalf("expected empty page; got %+v", p)
	}
}

func TestScan_BadURL(t *testing.T) {
	if _, err := Scan(strings.NewReader(""), "://bad"); err == nil {
		t.Fatalf("expected url error")
	}
}
