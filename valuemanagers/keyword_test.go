package valuemanagers

import (
	"testing"

	"github.com/keskinen/cascade/cascade"
	"github.com/keskinen/cascade/dom"
)

func newTestEngine(t *testing.T) (*cascade.Engine, *dom.Document) {
	t.Helper()
	doc := dom.NewDocument()
	vms, shs := Defaults()
	e := cascade.NewEngine(doc, cascade.Config{
		ValueManagers:     vms,
		ShorthandManagers: shs,
		StyleAttrLocal:    "style",
	})
	return e, doc
}

func TestKeywordManagerRoundTrips(t *testing.T) {
	m := NewKeywordManager("display", false, "inline")
	if m.PropertyName() != "display" {
		t.Fatalf("PropertyName() = %q", m.PropertyName())
	}
	if m.IsInheritedProperty() {
		t.Fatal("display should not be inherited")
	}
	if m.DefaultValue() != Keyword("inline") {
		t.Fatalf("DefaultValue() = %v", m.DefaultValue())
	}

	v, err := m.CreateValue("  BLOCK  ", nil)
	if err != nil {
		t.Fatalf("CreateValue error: %v", err)
	}
	if v != Keyword("block") {
		t.Fatalf("CreateValue() = %v, want block", v)
	}
}

func TestDisplayComputesToCascadedValue(t *testing.T) {
	e, doc := newTestEngine(t)
	el := dom.NewElement("div", "")
	doc.AppendChild(el)
	element := (*dom.Element)(el)
	element.SetAttribute("style", "display: block")

	got := e.GetComputedStyle(element, "", e.Registry().IndexOf("display"))
	if got != Keyword("block") {
		t.Fatalf("computed display = %v, want block", got)
	}
}

func TestFontFamilyInheritsFromParentByDefault(t *testing.T) {
	e, doc := newTestEngine(t)
	parent := dom.NewElement("div", "")
	doc.AppendChild(parent)
	parentEl := (*dom.Element)(parent)
	parentEl.SetAttribute("style", "font-family: serif")

	child := dom.NewElement("span", "")
	parent.AppendChild(child)
	childEl := (*dom.Element)(child)

	idx := e.Registry().IndexOf("font-family")
	got := e.GetComputedStyle(childEl, "", idx)
	if got != Keyword("serif") {
		t.Fatalf("computed font-family = %v, want serif (inherited)", got)
	}
}
