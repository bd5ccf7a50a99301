package dom

import "testing"

type recordingListener struct {
	attrs      []AttrMutation
	inserted   []NodeMutation
	removed    []NodeMutation
	subtrees   []*Node
	charEvents []CharacterDataMutation
}

func (r *recordingListener) AttributeChanged(e AttrMutation)         { r.attrs = append(r.attrs, e) }
func (r *recordingListener) NodeInserted(e NodeMutation)             { r.inserted = append(r.inserted, e) }
func (r *recordingListener) NodeRemoved(e NodeMutation)              { r.removed = append(r.removed, e) }
func (r *recordingListener) SubtreeModified(parent *Node)            { r.subtrees = append(r.subtrees, parent) }
func (r *recordingListener) CharacterDataChanged(e CharacterDataMutation) {
	r.charEvents = append(r.charEvents, e)
}

func TestSetAttributeFiresAdditionThenModification(t *testing.T) {
	doc := NewDocument()
	el := NewElement("p", "")
	doc.AppendChild(el)

	rec := &recordingListener{}
	doc.AddMutationListener(rec)

	(*Element)(el).SetAttribute("class", "a")
	(*Element)(el).SetAttribute("class", "b")

	if len(rec.attrs) != 2 {
		t.Fatalf("got %d attribute events, want 2", len(rec.attrs))
	}
	if rec.attrs[0].Kind != MutationAddition {
		t.Errorf("first event kind = %v, want Addition", rec.attrs[0].Kind)
	}
	if rec.attrs[1].Kind != MutationModification || rec.attrs[1].PrevValue != "a" || rec.attrs[1].NewValue != "b" {
		t.Errorf("second event = %+v, want Modification a->b", rec.attrs[1])
	}
}

func TestSetAttributeSameValueNoEvent(t *testing.T) {
	doc := NewDocument()
	el := NewElement("p", "")
	doc.AppendChild(el)
	(*Element)(el).SetAttribute("id", "x")

	rec := &recordingListener{}
	doc.AddMutationListener(rec)
	(*Element)(el).SetAttribute("id", "x")

	if len(rec.attrs) != 0 {
		t.Errorf("expected no event for unchanged value, got %d", len(rec.attrs))
	}
}

func TestRemoveAttributeFiresRemoval(t *testing.T) {
	doc := NewDocument()
	el := NewElement("p", "")
	doc.AppendChild(el)
	(*Element)(el).SetAttribute("title", "hi")

	rec := &recordingListener{}
	doc.AddMutationListener(rec)
	(*Element)(el).RemoveAttribute("title")

	if len(rec.attrs) != 1 || rec.attrs[0].Kind != MutationRemoval || rec.attrs[0].PrevValue != "hi" {
		t.Errorf("unexpected removal event: %+v", rec.attrs)
	}
}

func TestInsertAndRemoveChildFireNotifications(t *testing.T) {
	doc := NewDocument()
	root := NewElement("div", "")
	doc.AppendChild(root)

	rec := &recordingListener{}
	doc.AddMutationListener(rec)

	child := NewElement("span", "")
	(*Element)(root).AsNode().AppendChild(child)
	if len(rec.inserted) != 1 || rec.inserted[0].Target != child {
		t.Fatalf("expected one insert notification for child, got %+v", rec.inserted)
	}

	(*Element)(root).AsNode().RemoveChild(child)
	if len(rec.removed) != 1 || rec.removed[0].Target != child {
		t.Fatalf("expected one remove notification, got %+v", rec.removed)
	}
	if len(rec.subtrees) != 1 || rec.subtrees[0] != root {
		t.Fatalf("expected subtree-modified on parent after removal, got %+v", rec.subtrees)
	}
}

func TestCharacterDataMutationNotifies(t *testing.T) {
	doc := NewDocument()
	style := NewElement("style", "")
	style.SetStylesheetCarrier(true)
	doc.AppendChild(style)
	text := NewText("p{color:red}")
	style.AppendChild(text)

	rec := &recordingListener{}
	doc.AddMutationListener(rec)
	text.SetData("p{color:blue}")

	if len(rec.charEvents) != 1 || rec.charEvents[0].NewValue != "p{color:blue}" {
		t.Fatalf("unexpected char data events: %+v", rec.charEvents)
	}
}

func TestParseFragmentMarksStyleElementAsCarrier(t *testing.T) {
	doc, err := ParseFragment(`<div><style>p{color:red}</style><p class="x">hi</p></div>`)
	if err != nil {
		t.Fatalf("ParseFragment error: %v", err)
	}
	styles := doc.GetElementsByTagName("style")
	if len(styles) != 1 || !styles[0].AsNode().IsStylesheetCarrier() {
		t.Fatalf("expected a single stylesheet-carrier <style> element")
	}
	ps := doc.GetElementsByTagName("p")
	if len(ps) != 1 || ps[0].GetAttribute("class") != "x" {
		t.Fatalf("expected <p class=x>, got %+v", ps)
	}
}

func TestImportedChildTraversal(t *testing.T) {
	importedRoot := NewElement("section", "")
	host := NewElement("div", "")
	host.SetImportRoot(importedRoot)

	if !host.IsImportHost() {
		t.Fatal("expected host.IsImportHost() to be true")
	}
	if host.ImportRoot() != importedRoot {
		t.Fatal("expected ImportRoot() to return the attached root")
	}
	if importedRoot.ImportHost() != host {
		t.Fatal("expected ImportRoot().ImportHost() to point back at host")
	}
}
