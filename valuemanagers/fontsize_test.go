package valuemanagers

import (
	"testing"

	"github.com/keskinen/cascade/dom"
)

func TestFontSizeKeywordResolvesToPixelTable(t *testing.T) {
	e, doc := newTestEngine(t)
	el := dom.NewElement("div", "")
	doc.AppendChild(el)
	element := (*dom.Element)(el)
	element.SetAttribute("style", "font-size: large")

	idx := e.Registry().FontSizeIndex()
	got := e.GetComputedStyle(element, "", idx)
	if got != PxValue(18) {
		t.Fatalf("computed font-size = %v, want 18px", got)
	}
}

func TestFontSizeEmIsRelativeToParent(t *testing.T) {
	e, doc := newTestEngine(t)
	parent := dom.NewElement("div", "")
	doc.AppendChild(parent)
	parentEl := (*dom.Element)(parent)
	parentEl.SetAttribute("style", "font-size: 20px")

	child := dom.NewElement("span", "")
	parent.AppendChild(child)
	childEl := (*dom.Element)(child)
	childEl.SetAttribute("style", "font-size: 1.5em")

	idx := e.Registry().FontSizeIndex()
	got := e.GetComputedStyle(childEl, "", idx)
	if got != PxValue(30) {
		t.Fatalf("computed font-size = %v, want 30px", got)
	}
}

func TestFontSizePercentIsRelativeToParent(t *testing.T) {
	e, doc := newTestEngine(t)
	parent := dom.NewElement("div", "")
	doc.AppendChild(parent)
	parentEl := (*dom.Element)(parent)
	parentEl.SetAttribute("style", "font-size: 10px")

	child := dom.NewElement("span", "")
	parent.AppendChild(child)
	childEl := (*dom.Element)(child)
	childEl.SetAttribute("style", "font-size: 200%")

	idx := e.Registry().FontSizeIndex()
	got := e.GetComputedStyle(childEl, "", idx)
	if got != PxValue(20) {
		t.Fatalf("computed font-size = %v, want 20px", got)
	}
}

func TestFontSizeDefaultsTo16pxWithNoCascadedValueOrParent(t *testing.T) {
	e, doc := newTestEngine(t)
	el := dom.NewElement("div", "")
	doc.AppendChild(el)
	element := (*dom.Element)(el)

	idx := e.Registry().FontSizeIndex()
	got := e.GetComputedStyle(element, "", idx)
	if got != PxValue(16) {
		t.Fatalf("computed font-size = %v, want 16px default", got)
	}
}
