package cascade

import "github.com/keskinen/cascade/dom"

// logicalParent returns n's cascade-logical parent: if n is the root of
// an imported subtree, that is the import host's physical parent;
// otherwise it is n's physical parent (spec §4.2).
func logicalParent(n *dom.Node) *dom.Node {
	if host := n.ImportHost(); host != nil {
		return host.ParentNode()
	}
	return n.ParentNode()
}

// importedChild returns the first child of n's imported subtree if n is
// an import host, else nil (spec §4.2).
func importedChild(n *dom.Node) *dom.Node {
	if root := n.ImportRoot(); root != nil {
		return root.FirstChild()
	}
	return nil
}

// logicalChildren returns n's cascade-logical children: if n is an
// import host, the children of its imported subtree's root (the host's
// own physical children are not cascaded); otherwise n's physical
// children.
func logicalChildren(n *dom.Node) []*dom.Node {
	if n.IsImportHost() {
		var out []*dom.Node
		for c := importedChild(n); c != nil; c = c.NextSibling() {
			out = append(out, c)
		}
		return out
	}
	var out []*dom.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, c)
	}
	return out
}

// NearestStylableAncestor exposes nearestStylableAncestor to value
// managers that need an element's inheritance parent directly (e.g. to
// resolve a currentcolor or an em-relative length against it).
func (e *Engine) NearestStylableAncestor(el *dom.Element) *dom.Element {
	return nearestStylableAncestor(el)
}

// nearestStylableAncestor ascends logical parents from el, substituting
// logical parents for physical ones at import boundaries, stopping at
// the first stylable ancestor (spec §4.2).
func nearestStylableAncestor(el *dom.Element) *dom.Element {
	n := logicalParent(el.AsNode())
	for n != nil {
		if n.IsStylable() {
			return (*dom.Element)(n)
		}
		n = logicalParent(n)
	}
	return nil
}

// logicalStylableDescendants walks the logical tree rooted at n
// (following imported subtrees) and returns every stylable descendant
// element reachable without crossing back out, in logical document
// order.
func logicalStylableDescendants(n *dom.Node, visit func(el *dom.Element)) {
	for _, c := range logicalChildren(n) {
		if c.IsStylable() {
			visit((*dom.Element)(c))
		}
		logicalStylableDescendants(c, visit)
	}
}
