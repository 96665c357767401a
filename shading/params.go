package shading

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Distribution selects the microfacet normal distribution function.
// Beckmann and GGX are mutually exclusive by construction.
type Distribution int

const (
	DistributionNone Distribution = iota
	DistributionBeckmann
	DistributionGGX
)

func (d Distribution) String() string {
	switch d {
	case DistributionBeckmann:
		return "Beckmann"
	case DistributionGGX:
		return "GGX"
	default:
		return "none"
	}
}

// Field names a clamped scalar coefficient of Params.
type Field int

const (
	FieldRoughness Field = iota
	FieldAmbient
	FieldDiffuse
	FieldSpecular
	FieldColorR
	FieldColorG
	FieldColorB
)

func (f Field) String() string {
	switch f {
	case FieldRoughness:
		return "roughness"
	case FieldAmbient:
		return "ambient"
	case FieldDiffuse:
		return "diffuse"
	case FieldSpecular:
		return "specular"
	case FieldColorR:
		return "color.r"
	case FieldColorG:
		return "color.g"
	case FieldColorB:
		return "color.b"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Term names one of the boolean reflectance terms.
type Term int

const (
	TermGeometric Term = iota
	TermFresnel
	TermNormalizationPi
	TermDenominator
)

func (t Term) String() string {
	switch t {
	case TermGeometric:
		return "geometric"
	case TermFresnel:
		return "fresnel"
	case TermNormalizationPi:
		return "pi"
	case TermDenominator:
		return "denominator"
	}
	return fmt.Sprintf("Term(%d)", int(t))
}

// Params is the microfacet reflectance configuration applied when shading an
// object. Scalar coefficients and SurfaceColor channels stay within [0, 1].
type Params struct {
	Distribution Distribution

	UseGeometric   bool
	UseFresnel     bool
	UseDenominator bool
	UsePi          bool

	Roughness float32
	Ambient   float32
	Diffuse   float32
	Specular  float32

	SurfaceColor mgl32.Vec3

	// Fresnel always equals FresnelPalette[FresnelIndex].Value.
	FresnelIndex int
	Fresnel      mgl32.Vec3
}

// DefaultParams returns Beckmann with every term enabled on a copper-like
// surface.
func DefaultParams() Params {
	return Params{
		Distribution:   DistributionBeckmann,
		UseGeometric:   true,
		UseFresnel:     true,
		UseDenominator: true,
		UsePi:          true,
		Roughness:      0.0,
		Ambient:        0.15,
		Diffuse:        1.0,
		Specular:       0.7,
		SurfaceColor:   mgl32.Vec3{0.722, 0.451, 0.2},
		FresnelIndex:   FresnelCopper,
		Fresnel:        FresnelPalette[FresnelCopper].Value,
	}
}

func (p *Params) UseBeckmann() bool { return p.Distribution == DistributionBeckmann }
func (p *Params) UseGGX() bool      { return p.Distribution == DistributionGGX }

// Get returns the current value of a scalar field.
func (p *Params) Get(f Field) float32 {
	return *p.field(f)
}

// ClampAdd adds delta to the field and saturates the result into [0, 1].
func (p *Params) ClampAdd(f Field, delta float32) {
	v := p.field(f)
	*v = mgl32.Clamp(snap(*v+delta), 0, 1)
}

// snap rounds x to a 1e-6 grid.
func snap(x float32) float32 {
	return float32(math.Round(float64(x)*1e6) / 1e6)
}

func (p *Params) field(f Field) *float32 {
	switch f {
	case FieldRoughness:
		return &p.Roughness
	case FieldAmbient:
		return &p.Ambient
	case FieldDiffuse:
		return &p.Diffuse
	case FieldSpecular:
		return &p.Specular
	case FieldColorR:
		return &p.SurfaceColor[0]
	case FieldColorG:
		return &p.SurfaceColor[1]
	case FieldColorB:
		return &p.SurfaceColor[2]
	}
	panic(fmt.Sprintf("shading: unknown field %d", int(f)))
}

// SelectDistribution makes d the active distribution, deselecting the other.
func (p *Params) SelectDistribution(d Distribution) {
	p.Distribution = d
}

// ToggleDistribution disables the distribution term when one is selected and
// falls back to Beckmann when none is.
func (p *Params) ToggleDistribution() {
	if p.Distribution == DistributionNone {
		p.Distribution = DistributionBeckmann
		return
	}
	p.Distribution = DistributionNone
}

// FlipDistribution swaps Beckmann and GGX. With no distribution selected it
// selects Beckmann.
func (p *Params) FlipDistribution() {
	if p.Distribution == DistributionBeckmann {
		p.Distribution = DistributionGGX
		return
	}
	p.Distribution = DistributionBeckmann
}

// Toggle flips one of the boolean reflectance terms.
func (p *Params) Toggle(t Term) {
	switch t {
	case TermGeometric:
		p.UseGeometric = !p.UseGeometric
	case TermFresnel:
		p.UseFresnel = !p.UseFresnel
	case TermNormalizationPi:
		p.UsePi = !p.UsePi
	case TermDenominator:
		p.UseDenominator = !p.UseDenominator
	default:
		panic(fmt.Sprintf("shading: unknown term %d", int(t)))
	}
}

// Enabled reports the state of a boolean term.
func (p *Params) Enabled(t Term) bool {
	switch t {
	case TermGeometric:
		return p.UseGeometric
	case TermFresnel:
		return p.UseFresnel
	case TermNormalizationPi:
		return p.UsePi
	case TermDenominator:
		return p.UseDenominator
	}
	return false
}

// SelectFresnelPreset copies palette entry i into Fresnel. Callers bound their
// index mappings to the palette size; an out-of-range index panics.
func (p *Params) SelectFresnelPreset(i int) {
	if !ValidFresnelIndex(i) {
		panic(fmt.Sprintf("shading: fresnel preset %d out of range [0, %d]", i, FresnelLast))
	}
	p.FresnelIndex = i
	p.Fresnel = FresnelPalette[i].Value
}

// FresnelName returns the palette name of the selected preset.
func (p *Params) FresnelName() string {
	if !ValidFresnelIndex(p.FresnelIndex) {
		return "custom"
	}
	return FresnelPalette[p.FresnelIndex].Name
}
