package ui2d

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Overlay palette, dark and slightly blue so it sits quietly over space.
var (
	ColorPanelBg      = Color{0.04, 0.05, 0.09, 0.85}
	ColorPanelBorder  = Color{0.25, 0.3, 0.45, 1}
	ColorButtonNormal = Color{0.1, 0.12, 0.2, 1}
	ColorButtonHover  = Color{0.18, 0.22, 0.34, 1}
	ColorButtonActive = Color{0.35, 0.28, 0.08, 1}
	ColorInputBg      = Color{0.02, 0.03, 0.06, 1}
	ColorText         = Color{0.92, 0.92, 0.88, 1}
	ColorTextDim      = Color{0.55, 0.58, 0.68, 1}
	ColorHighlight    = Color{0.95, 0.7, 0.25, 1} // Sunlight
)

