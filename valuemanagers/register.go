package valuemanagers

import "github.com/keskinen/cascade/cascade"

// Defaults returns the value and shorthand managers for a representative
// CSS property set: the standard keyword longhands, color-valued
// properties, font-size, line-height, and the font shorthand. Callers
// pass these in cascade.Config to build an Engine with broad,
// out-of-the-box property coverage.
func Defaults() ([]cascade.ValueManager, []cascade.ShorthandManager) {
	vms := NewStandardKeywordManagers()
	vms = append(vms,
		NewColorManager("color", true, "black"),
		NewColorManager("background-color", false, "transparent"),
		NewColorManager("border-color", false, "currentcolor"),
		NewFontSizeManager(),
		NewLineHeightManager(),
	)

	shorthands := []cascade.ShorthandManager{
		NewFontShorthandManager(),
	}

	return vms, shorthands
}
