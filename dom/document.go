package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is the root of a node tree. It is itself a Node (DocumentNode)
// so that logical-parent traversal can treat "no stylable ancestor" and
// "reached the document" uniformly.
type Document struct {
	Node
	documentElement *Node
	listeners       []MutationListener
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	d := &Document{Node: Node{nodeType: DocumentNode}}
	d.Node.ownerDoc = d
	return d
}

// DocumentElement returns the document's root element, or nil.
func (d *Document) DocumentElement() *Node { return d.documentElement }

// Root returns the document as a *Node, useful for tree walks that start
// from the top.
func (d *Document) Root() *Node { return &d.Node }

// AppendChild attaches child as a top-level child of the document
// (normally the single document element).
func (d *Document) AppendChild(child *Node) {
	d.Node.AppendChild(child)
	if child.nodeType == ElementNode && d.documentElement == nil {
		d.documentElement = child
	}
}

// GetElementsByTagName returns every descendant element (in document
// order) whose local name matches, case-insensitively.
func (d *Document) GetElementsByTagName(name string) []*Element {
	var out []*Element
	name = strings.ToLower(name)
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.nodeType == ElementNode && strings.ToLower(n.element.localName) == name {
			out = append(out, (*Element)(n))
		}
		for c := n.firstChild; c != nil; c = c.nextSibling {
			walk(c)
		}
	}
	walk(&d.Node)
	return out
}

// ParseFragment parses an HTML fragment into a detached tree of dom
// Nodes, using golang.org/x/net/html the same way the teacher's
// dom.Element.SetInnerHTML does. <style> elements are marked as
// stylesheet carriers. The returned Document owns every node so that
// mutation notifications work once further mutations are driven through
// it.
func ParseFragment(markup string) (*Document, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, err
	}

	doc := NewDocument()
	for _, n := range nodes {
		converted := convertHTMLNode(n, doc)
		if converted != nil {
			doc.AppendChild(converted)
		}
	}
	return doc, nil
}

func convertHTMLNode(n *html.Node, doc *Document) *Node {
	switch n.Type {
	case html.ElementNode:
		el := NewElement(n.Data, "")
		el.ownerDoc = doc
		for _, a := range n.Attr {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + ":" + a.Key
			}
			el.element.attrs.set(&Attr{name: strings.ToLower(name), value: a.Val})
		}
		if strings.EqualFold(n.Data, "style") {
			el.element.stylesheetCarrier = true
		}
		el.element.style = newCSSStyleDeclaration(el)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convertHTMLNode(c, doc); child != nil {
				el.AppendChild(child)
			}
		}
		return el
	case html.TextNode:
		return NewText(n.Data)
	case html.CommentNode:
		return NewComment(n.Data)
	default:
		return nil
	}
}
