// Package gir loads GObject-introspection XML documents into a generic
// element tree. The parser needs ordered children filtered by local name
// and attribute lookup scoped by the auxiliary "c" namespace, so the tree
// is built from the token stream rather than struct tags.
package gir

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CNamespace is the URI of the auxiliary namespace carrying C-specific
// decorations (c:type, c:identifier).
const CNamespace = "http://www.gtk.org/introspection/c/1.0"

// GLibNamespace is the URI of the auxiliary namespace carrying
// dynamic-type decorations (glib:get-type, glib:error-domain).
const GLibNamespace = "http://www.gtk.org/introspection/glib/1.0"

// Attr is one attribute of an element, with its namespace URI preserved.
type Attr struct {
	Space string
	Name  string
	Value string
}

// Element is one node of the document tree.
type Element struct {
	Name  string     // local name
	Attrs []Attr
	Nodes []*Element
	Text  string     // concatenated character data
}

// Children returns the direct children with the given local name, in
// document order.
func (e *Element) Children(name string) []*Element {
	var out []*Element
	for _, c := range e.Nodes {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first direct child with the given local name, or nil.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Nodes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Attr returns the value of the named un-namespaced attribute, or "".
func (e *Element) Attr(name string) string {
	v, _ := e.LookupAttr(name)
	return v
}

// LookupAttr returns the named un-namespaced attribute and whether it was
// present.
func (e *Element) LookupAttr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name && (a.Space == "" || strings.Contains(a.Space, "introspection/core")) {
			return a.Value, true
		}
	}
	return "", false
}

// AttrC returns the value of the named attribute in the auxiliary C
// namespace, or "".
func (e *Element) AttrC(name string) string {
	for _, a := range e.Attrs {
		if a.Name == name && a.Space == CNamespace {
			return a.Value
		}
	}
	return ""
}

// AttrGLib returns the value of the named attribute in the auxiliary
// glib namespace, or "".
func (e *Element) AttrGLib(name string) string {
	for _, a := range e.Attrs {
		if a.Name == name && a.Space == GLibNamespace {
			return a.Value
		}
	}
	return ""
}

// Include names one dependency repository of a namespace.
type Include struct {
	Name    string
	Version string
}

// Repository is one loaded GIR document.
type Repository struct {
	Namespace string
	Version   string
	Includes  []Include
	Root      *Element // the <namespace> element
}

// Load reads a full GIR document from r. The whole input is consumed
// before any parsing of entities begins.
func Load(r io.Reader) (*Repository, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	dec := xml.NewDecoder(strings.NewReader(string(data)))

	var stack []*Element
	root := &Element{Name: "#document"}
	stack = append(stack, root)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding schema: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				el.Attrs = append(el.Attrs, Attr{Space: a.Name.Space, Name: a.Name.Local, Value: a.Value})
			}
			top := stack[len(stack)-1]
			top.Nodes = append(top.Nodes, el)
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			top := stack[len(stack)-1]
			top.Text += string(t)
		}
	}

	repo := stack[0].Child("repository")
	if repo == nil {
		return nil, fmt.Errorf("schema has no repository element")
	}
	ns := repo.Child("namespace")
	if ns == nil {
		return nil, fmt.Errorf("repository has no namespace element")
	}
	out := &Repository{
		Namespace: ns.Attr("name"),
		Version:   ns.Attr("version"),
		Root:      ns,
	}
	for _, inc := range repo.Children("include") {
		out.Includes = append(out.Includes, Include{
			Name:    inc.Attr("name"),
			Version: inc.Attr("version"),
		})
	}
	return out, nil
}

// LoadPath locates <name>-<version>.gir on the search path and loads it.
func LoadPath(searchPath []string, name, version string) (*Repository, error) {
	file := name + "-" + version + ".gir"
	for _, dir := range searchPath {
		path := filepath.Join(dir, file)
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		defer f.Close()
		repo, err := Load(f)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		return repo, nil
	}
	return nil, fmt.Errorf("no %s found on search path", file)
}
