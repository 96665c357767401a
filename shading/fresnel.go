package shading

import "github.com/go-gl/mathgl/mgl32"

// FresnelPreset is a named normal-incidence reflectance (F0) for a material.
type FresnelPreset struct {
	Name  string
	Value mgl32.Vec3
}

// FresnelPalette is ordered; key bindings and config files refer to presets
// by index.
var FresnelPalette = [...]FresnelPreset{
	{"water", mgl32.Vec3{0.15, 0.15, 0.15}},
	{"plastic/glass (low)", mgl32.Vec3{0.21, 0.21, 0.21}},
	{"plastic (high)", mgl32.Vec3{0.24, 0.24, 0.24}},
	{"glass (high)/ruby", mgl32.Vec3{0.31, 0.31, 0.31}},
	{"diamond", mgl32.Vec3{0.45, 0.45, 0.45}},
	{"iron", mgl32.Vec3{0.77, 0.78, 0.78}},
	{"copper", mgl32.Vec3{0.98, 0.82, 0.76}},
	{"gold", mgl32.Vec3{1.00, 0.86, 0.57}},
	{"aluminium", mgl32.Vec3{0.96, 0.96, 0.97}},
	{"silver", mgl32.Vec3{0.98, 0.97, 0.95}},
}

// Palette indices referenced by defaults.
const (
	FresnelCopper = 6
	FresnelLast   = len(FresnelPalette) - 1
)

// ValidFresnelIndex reports whether i addresses a palette entry.
func ValidFresnelIndex(i int) bool {
	return i >= 0 && i < len(FresnelPalette)
}
