package services

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"

	"photo-portfolio/pkg/config"
	"photo-portfolio/pkg/models"
)

// ErrSlugCollision is returned when two galleries would share one page
var ErrSlugCollision = errors.New("slug collision")

// NavNode is one path segment of the navigation tree. Slug is set when the
// segment completes a gallery path; a node may also have children.
type NavNode struct {
	Children map[string]*NavNode
	Slug     string
}

// NewNavNode returns an empty node
func NewNavNode() *NavNode {
	return &NavNode{Children: map[string]*NavNode{}}
}

// Keys returns the child segments in lexicographic order
func (n *NavNode) Keys() []string {
	keys := make([]string, 0, len(n.Children))
	for k := range n.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Insert walks or creates the chain for segments and marks its end with slug
func (n *NavNode) Insert(segments []string, slug string) {
	node := n
	for _, seg := range segments {
		child, ok := node.Children[seg]
		if !ok {
			child = NewNavNode()
			node.Children[seg] = child
		}
		node = child
	}
	node.Slug = slug
}

// BuildTree folds the galleries' path segments into a navigation tree. Two
// galleries whose paths join to the same slug are rejected.
func BuildTree(galleries []models.Gallery) (*NavNode, error) {
	root := NewNavNode()
	owners := map[string]string{}

	for _, g := range galleries {
		if prev, ok := owners[g.Slug]; ok && prev != g.RelativePath {
			return nil, fmt.Errorf("%w: %q and %q both map to %q", ErrSlugCollision, prev, g.RelativePath, g.Slug)
		}
		owners[g.Slug] = g.RelativePath
		root.Insert(g.Segments, g.Slug)
	}

	return root, nil
}

// navItem is a rendered menu entry
type navItem struct {
	Label    string
	URL      string
	Children []navItem
}

func navItems(n *NavNode, pageURL func(string) string) []navItem {
	var items []navItem
	for _, key := range n.Keys() {
		child := n.Children[key]
		item := navItem{Label: Title(key)}
		if child.Slug != "" {
			item.URL = pageURL(child.Slug)
		}
		item.Children = navItems(child, pageURL)
		items = append(items, item)
	}
	return items
}

// A folder that is both a gallery and a parent keeps its link on the
// dropdown label; plain intermediate folders link to "#".
const navTemplate = `{{define "items"}}{{range .}}{{if .Children}}<li class="dropdown"><a href="{{if .URL}}{{.URL}}{{else}}#{{end}}">{{.Label}}</a>
<ul class="dropdown-menu">
{{template "items" .Children}}</ul>
</li>
{{else}}<li><a href="{{.URL}}">{{.Label}}</a></li>
{{end}}{{end}}{{end}}<div class="navbar">
  <ul class="menu">
{{range .Left}}<li><a href="{{.URL}}">{{.Title}}</a></li>
{{end}}{{template "items" .Tree}}{{range .Right}}<li class="nav-right"><a href="{{.URL}}">{{.Title}}</a></li>
{{end}}  </ul>
</div>
`

var navTmpl = template.Must(template.New("nav").Parse(navTemplate))

// RenderNav renders the menu: manual entries first, the gallery tree, then
// the manual entries pinned right
func RenderNav(w io.Writer, manual []config.NavEntry, tree *NavNode, pageURL func(string) string) error {
	data := struct {
		Left  []config.NavEntry
		Right []config.NavEntry
		Tree  []navItem
	}{
		Tree: navItems(tree, pageURL),
	}
	for _, e := range manual {
		if e.Right {
			data.Right = append(data.Right, e)
		} else {
			data.Left = append(data.Left, e)
		}
	}

	if err := navTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render nav: %w", err)
	}
	return nil
}

// NavHTML renders the site menu for tree using the configured manual entries
func (s *Service) NavHTML(tree *NavNode) (template.HTML, error) {
	var buf bytes.Buffer
	if err := RenderNav(&buf, s.config.ManualNav, tree, s.config.PageURL); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// WriteTree prints the tree as indented text
func WriteTree(w io.Writer, n *NavNode) {
	writeTree(w, n, 0)
}

func writeTree(w io.Writer, n *NavNode, depth int) {
	for _, key := range n.Keys() {
		child := n.Children[key]
		line := strings.Repeat("  ", depth) + Title(key)
		if child.Slug != "" {
			line += fmt.Sprintf(" [%s]", child.Slug)
		}
		fmt.Fprintln(w, line)
		writeTree(w, child, depth+1)
	}
}
