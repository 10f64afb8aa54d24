// Package tree reads the server-rendered tag tree into navigation links.
//
// The rendered page is a read-only input. Its contract:
//
//	<ul class="tree">
//	  <li class="super"><a href="/fruit">fruit</a>
//	    <ul>
//	      <li class="sibling"><a href="/banana">banana</a></li>
//	      <li class="id"><a href="/apple">apple</a>
//	        <ul><li class="child"><a href="/gala">gala</a></li></ul>
//	      </li>
//	      <li class="sibling"><a href="/cherry">cherry</a></li>
//	    </ul>
//	  </li>
//	</ul>
//
// plus an element with id "tag-id" holding the current tag id.
package tree

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Relation names a node's position relative to the current tag.
type Relation string

const (
	RelationSuper   Relation = "super"
	RelationID      Relation = "id"
	RelationSibling Relation = "sibling"
	RelationChild   Relation = "child"
	RelationOther   Relation = ""
)

// Link points at a tag page.
type Link struct {
	// Target is the absolute page URL.
	Target string `json:"target"`
	// Label is the anchor text, normally the tag id.
	Label string `json:"label"`
}

// Snapshot holds the links resolved for one page view. A nil link means the
// relation is absent from the rendered tree (the root has no parent, a leaf
// has no child).
type Snapshot struct {
	Parent *Link `json:"parent,omitempty"`
	Self   *Link `json:"self,omitempty"`
	Prev   *Link `json:"prev,omitempty"`
	Next   *Link `json:"next,omitempty"`
	Child  *Link `json:"child,omitempty"`
}

// Empty reports whether no navigation link is present.
func (s Snapshot) Empty() bool {
	return s.Parent == nil && s.Prev == nil && s.Next == nil && s.Child == nil
}

// Node is one anchored entry of the rendered tree, in document order.
type Node struct {
	Label    string   `json:"label"`
	Target   string   `json:"target"`
	Relation Relation `json:"relation,omitempty"`
	Depth    int      `json:"depth"`
}

// Page is everything read from one rendered tag page.
type Page struct {
	URL      string   `json:"url"`
	TagID    string   `json:"tagId"`
	Title    string   `json:"title,omitempty"`
	Snapshot Snapshot `json:"snapshot"`
	Nodes    []Node   `json:"nodes"`
}

// Scan parses an HTML page fetched from pageURL.
func Scan(r io.Reader, pageURL string) (Page, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return Page{}, fmt.Errorf("parse page url: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Page{}, fmt.Errorf("parse page: %w", err)
	}
	return ScanDocument(doc, base), nil
}

// ScanDocument reads an already parsed page. base resolves relative hrefs.
func ScanDocument(doc *goquery.Document, base *url.URL) Page {
	p := Page{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if base != nil {
		p.URL = base.String()
	}

	root := doc.Find(".tree").First()
	p.Snapshot = scanSnapshot(root, base)
	p.Nodes = scanNodes(root, base)

	p.TagID = strings.TrimSpace(doc.Find("#tag-id").First().Text())
	if p.TagID == "" && p.Snapshot.Self != nil {
		p.TagID = p.Snapshot.Self.Label
	}
	return p
}

func scanSnapshot(root *goquery.Selection, base *url.URL) Snapshot {
	var s Snapshot
	if root.Length() == 0 {
		return s
	}

	idLi := root.Find("li.id").First()
	if idLi.Length() == 0 {
		// No own node: fall back to the first marked nodes in the fragment.
		s.Parent = anchorLink(root.Find("li.super").First(), base)
		s.Child = anchorLink(root.Find("li.child").First(), base)
		return s
	}

	s.Self = anchorLink(idLi, base)
	s.Parent = anchorLink(idLi.ParentsFiltered("li.super").First(), base)
	s.Prev = anchorLink(idLi.Prev(), base)
	s.Next = anchorLink(idLi.NextAllFiltered("li.sibling").First(), base)

	child := idLi.Find("li.child").First()
	if child.Length() == 0 {
		child = root.Find("li.child").First()
	}
	s.Child = anchorLink(child, base)
	return s
}

func scanNodes(root *goquery.Selection, base *url.URL) []Node {
	var out []Node
	root.Find("li").Each(func(_ int, li *goquery.Selection) {
		l := anchorLink(li, base)
		if l == nil {
			return
		}
		out = append(out, Node{
			Label:    l.Label,
			Target:   l.Target,
			Relation: relationOf(li),
			Depth:    li.ParentsUntilSelection(root).Filter("li").Length(),
		})
	})
	return out
}

func relationOf(li *goquery.Selection) Relation {
	for _, r := range []Relation{RelationID, RelationSuper, RelationSibling, RelationChild} {
		if li.HasClass(string(r)) {
			return r
		}
	}
	return RelationOther
}

// anchorLink returns the node's own anchor: the first <a> that is not inside
// a nested list item.
func anchorLink(li *goquery.Selection, base *url.URL) *Link {
	if li.Length() == 0 {
		return nil
	}
	a := li.ChildrenFiltered("a").First()
	if a.Length() == 0 {
		a = li.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.Closest("li").IsSelection(li)
		}).First()
	}
	if a.Length() == 0 {
		return nil
	}
	href, ok := a.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return nil
	}
	return &Link{
		Target: resolve(base, strings.TrimSpace(href)),
		Label:  strings.TrimSpace(a.Text()),
	}
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
