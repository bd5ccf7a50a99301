package dom

// Node is the base type shared by every node in the tree: elements,
// text, comments, documents, and import boundaries. Element-only state
// lives in elementData so that non-element nodes stay cheap.
type Node struct {
	nodeType NodeType
	data     string // text/comment character data
	ownerDoc *Document

	parent      *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	element *elementData

	// importRoot is set on nodes of type ImportNodeType: the root of
	// the logically-imported subtree. The import host is the *Node*
	// this field is attached to; importRoot.importHost points back
	// at the host so logical-parent lookups can reach the host's
	// physical parent.
	importRoot *Node
	importHost *Node
}

// elementData holds the state that only element nodes carry.
type elementData struct {
	localName    string
	namespaceURI string
	attrs        *NamedNodeMap
	style        *CSSStyleDeclaration
	stylable     bool

	// stylesheetCarrier marks elements whose character-data content
	// (or, once loaded, whose href) is itself a stylesheet — e.g. a
	// <style> element. Set by whoever builds the tree.
	stylesheetCarrier bool
}

func newNode(t NodeType) *Node {
	return &Node{nodeType: t}
}

// NewElement creates a detached, stylable-by-default element node.
func NewElement(localName, namespaceURI string) *Node {
	n := newNode(ElementNode)
	n.element = &elementData{
		localName:    localName,
		namespaceURI: namespaceURI,
		attrs:        newNamedNodeMap(),
		stylable:     true,
	}
	n.element.style = newCSSStyleDeclaration(n)
	return n
}

// NewText creates a detached text node.
func NewText(data string) *Node {
	n := newNode(TextNode)
	n.data = data
	return n
}

// NewComment creates a detached comment node.
func NewComment(data string) *Node {
	n := newNode(CommentNode)
	n.data = data
	return n
}

// NewImportNode wraps root as a logically-imported subtree. root must
// be the document element of a separate, self-contained tree; it is
// not itself inserted as a child — ImportedChild(host) reaches into it.
func NewImportNode(root *Node) *Node {
	n := newNode(ImportNodeType)
	n.importRoot = root
	return n
}

func (n *Node) NodeType() NodeType { return n.nodeType }

func (n *Node) Data() string { return n.data }

func (n *Node) SetData(data string) {
	old := n.data
	n.data = data
	if n.ownerDoc != nil {
		n.ownerDoc.notifyCharacterData(n, old, data)
	}
}

func (n *Node) OwnerDocument() *Document { return n.ownerDoc }

func (n *Node) ParentNode() *Node { return n.parent }

// ParentElement returns the nearest physical-parent element, or nil.
func (n *Node) ParentElement() *Element {
	for p := n.parent; p != nil; p = p.parent {
		if p.nodeType == ElementNode {
			return (*Element)(p)
		}
	}
	return nil
}

func (n *Node) FirstChild() *Node      { return n.firstChild }
func (n *Node) LastChild() *Node       { return n.lastChild }
func (n *Node) NextSibling() *Node     { return n.nextSibling }
func (n *Node) PreviousSibling() *Node { return n.prevSibling }

func (n *Node) IsElement() bool { return n.nodeType == ElementNode }

// IsStylable reports whether this node participates in cascade (spec's
// "Stylable element"). Only elements can be stylable, and only if their
// elementData.stylable flag is set (always true for elements created via
// NewElement, matching the teacher's assumption that every HTML/SVG
// element is cascade-eligible).
func (n *Node) IsStylable() bool {
	return n.nodeType == ElementNode && n.element != nil && n.element.stylable
}

// IsStylesheetCarrier reports whether this node's character-data content
// is itself a stylesheet (e.g. a <style> element).
func (n *Node) IsStylesheetCarrier() bool {
	return n.nodeType == ElementNode && n.element != nil && n.element.stylesheetCarrier
}

// SetStylesheetCarrier marks or unmarks this element as a stylesheet
// carrier. Document tree builders call this for <style> elements.
func (n *Node) SetStylesheetCarrier(v bool) {
	if n.nodeType == ElementNode && n.element != nil {
		n.element.stylesheetCarrier = v
	}
}

// IsImportHost reports whether this node has an imported subtree
// attached via SetImportRoot.
func (n *Node) IsImportHost() bool {
	return n.importRoot != nil && n.nodeType != ImportNodeType
}

// SetImportRoot attaches root as this node's imported subtree. The host
// remains a normal element; ImportedChild(host) reaches into root.
func (n *Node) SetImportRoot(root *Node) {
	n.importRoot = root
	root.importHost = n
}

// ImportRoot returns the root of the node's attached imported subtree,
// or nil.
func (n *Node) ImportRoot() *Node {
	return n.importRoot
}

// ImportHost returns the node that imported n as its subtree root via
// SetImportRoot, or nil if n is not an imported root.
func (n *Node) ImportHost() *Node {
	return n.importHost
}

// AppendChild appends child to n's children and fires a node-inserted
// mutation if n is attached to a document.
func (n *Node) AppendChild(child *Node) {
	n.InsertBefore(child, nil)
}

// InsertBefore inserts child before ref (or at the end if ref is nil).
func (n *Node) InsertBefore(child, ref *Node) {
	if child == nil || child.parent != nil {
		return
	}
	child.parent = n
	child.ownerDoc = n.ownerDoc

	if ref == nil {
		child.prevSibling = n.lastChild
		if n.lastChild != nil {
			n.lastChild.nextSibling = child
		} else {
			n.firstChild = child
		}
		n.lastChild = child
	} else {
		child.nextSibling = ref
		child.prevSibling = ref.prevSibling
		if ref.prevSibling != nil {
			ref.prevSibling.nextSibling = child
		} else {
			n.firstChild = child
		}
		ref.prevSibling = child
	}

	assignOwnerDoc(child, n.ownerDoc)

	if n.ownerDoc != nil {
		n.ownerDoc.notifyNodeInserted(child)
	}
}

// RemoveChild detaches child from n's children and fires a node-removed
// mutation before unlinking it.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		return
	}

	if n.ownerDoc != nil {
		n.ownerDoc.notifyNodeRemoved(child)
	}

	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parent = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

func assignOwnerDoc(n *Node, doc *Document) {
	n.ownerDoc = doc
	for c := n.firstChild; c != nil; c = c.nextSibling {
		assignOwnerDoc(c, doc)
	}
}

// TextContent returns the concatenated character data of this node's
// text descendants (shallow for Text/Comment nodes).
func (n *Node) TextContent() string {
	switch n.nodeType {
	case TextNode, CommentNode:
		return n.data
	default:
		var sb []byte
		for c := n.firstChild; c != nil; c = c.nextSibling {
			sb = append(sb, c.TextContent()...)
		}
		return string(sb)
	}
}
