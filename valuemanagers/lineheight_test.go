package valuemanagers

import (
	"testing"

	"github.com/keskinen/cascade/dom"
)

func TestLineHeightNormalIsOnePointTwoTimesFontSize(t *testing.T) {
	e, doc := newTestEngine(t)
	el := dom.NewElement("div", "")
	doc.AppendChild(el)
	element := (*dom.Element)(el)
	element.SetAttribute("style", "font-size: 10px; line-height: normal")

	idx := e.Registry().LineHeightIndex()
	got := e.GetComputedStyle(element, "", idx)
	if got != PxValue(12) {
		t.Fatalf("computed line-height = %v, want 12px", got)
	}
}

func TestLineHeightUnitlessMultiplierUsesOwnFontSize(t *testing.T) {
	e, doc := newTestEngine(t)
	el := dom.NewElement("div", "")
	doc.AppendChild(el)
	element := (*dom.Element)(el)
	element.SetAttribute("style", "font-size: 10px; line-height: 2")

	idx := e.Registry().LineHeightIndex()
	got := e.GetComputedStyle(element, "", idx)
	if got != PxValue(20) {
		t.Fatalf("computed line-height = %v, want 20px", got)
	}
}

func TestLineHeightAbsoluteLengthIsUnchanged(t *testing.T) {
	e, doc := newTestEngine(t)
	el := dom.NewElement("div", "")
	doc.AppendChild(el)
	element := (*dom.Element)(el)
	element.SetAttribute("style", "font-size: 10px; line-height: 24px")

	idx := e.Registry().LineHeightIndex()
	got := e.GetComputedStyle(element, "", idx)
	if got != PxValue(24) {
		t.Fatalf("computed line-height = %v, want 24px", got)
	}
}

// TestLineHeightRecomputesWhenFontSizeChanges exercises the
// FontSizeRelative flag set by lineHeightManager.ComputeValue: an
// inline font-size change must invalidate the already-computed
// line-height slot on the same element.
func TestLineHeightRecomputesWhenFontSizeChanges(t *testing.T) {
	e, doc := newTestEngine(t)
	el := dom.NewElement("div", "")
	doc.AppendChild(el)
	element := (*dom.Element)(el)
	element.SetAttribute("style", "font-size: 10px; line-height: 2")

	lhIdx := e.Registry().LineHeightIndex()
	if got := e.GetComputedStyle(element, "", lhIdx); got != PxValue(20) {
		t.Fatalf("computed line-height = %v, want 20px", got)
	}

	element.SetAttribute("style", "font-size: 20px; line-height: 2")

	if got := e.GetComputedStyle(element, "", lhIdx); got != PxValue(40) {
		t.Fatalf("after font-size change, computed line-height = %v, want 40px", got)
	}
}
