package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Light is a point light forwarded to the shading program.
type Light struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// DefaultLights is the white key light in front of the model and a dimmer
// fill light below-left of it.
func DefaultLights() []Light {
	return []Light{
		{Position: mgl32.Vec3{0, 0, 2}, Color: mgl32.Vec3{1, 1, 1}},
		{Position: mgl32.Vec3{-2, -1, 2}, Color: mgl32.Vec3{0.5, 0.5, 0.5}},
	}
}

// MinRoughness keeps the distribution terms finite at roughness 0. The
// fragment shader applies the same floor.
const MinRoughness = 0.01

const minDenominator = 1e-4

// DistributionTerm evaluates the normal distribution term for cos(theta_h) = nh.
// The 1/pi factor is only applied when UsePi is set. With no distribution
// selected the term is 1.
func (p *Params) DistributionTerm(nh float32) float32 {
	if nh <= 0 {
		if p.Distribution == DistributionNone {
			return 1
		}
		return 0
	}

	m := float64(mgl32.Clamp(p.Roughness, MinRoughness, 1))
	nh64 := float64(nh)
	nh2 := nh64 * nh64

	var d float64
	switch p.Distribution {
	case DistributionBeckmann:
		m2 := m * m
		tan2 := (1 - nh2) / nh2
		d = math.Exp(-tan2/m2) / (m2 * nh2 * nh2)
	case DistributionGGX:
		a2 := m * m * m * m
		k := nh2*(a2-1) + 1
		d = a2 / (k * k)
	default:
		return 1
	}

	if p.UsePi {
		d /= math.Pi
	}
	return float32(d)
}

// GeometricTerm is the Cook-Torrance masking/shadowing term, or 1 when
// disabled.
func (p *Params) GeometricTerm(nh, nv, nl, vh float32) float32 {
	if !p.UseGeometric {
		return 1
	}
	if vh <= 0 {
		return 0
	}
	g := min(2*nh*nv/vh, 2*nh*nl/vh)
	return mgl32.Clamp(g, 0, 1)
}

// FresnelTerm is Schlick's approximation around the selected F0, or 1 when
// disabled.
func (p *Params) FresnelTerm(vh float32) mgl32.Vec3 {
	if !p.UseFresnel {
		return mgl32.Vec3{1, 1, 1}
	}
	c := float32(math.Pow(float64(1-mgl32.Clamp(vh, 0, 1)), 5))
	one := mgl32.Vec3{1, 1, 1}
	return p.Fresnel.Add(one.Sub(p.Fresnel).Mul(c))
}

// Denominator is 4(n.l)(n.v) when enabled, otherwise 1.
func (p *Params) Denominator(nl, nv float32) float32 {
	if !p.UseDenominator {
		return 1
	}
	return max(4*nl*nv, minDenominator)
}

// Shade evaluates the reflected color at a surface point the way the fragment
// shader does: an ambient term plus, per light, a Lambertian diffuse lobe and
// a microfacet specular lobe.
func Shade(p Params, position, normal, eye mgl32.Vec3, lights []Light) mgl32.Vec3 {
	n := normal.Normalize()
	v := eye.Sub(position).Normalize()

	color := p.SurfaceColor.Mul(p.Ambient)
	for _, light := range lights {
		l := light.Position.Sub(position).Normalize()
		nl := n.Dot(l)
		if nl <= 0 {
			continue
		}
		h := v.Add(l).Normalize()
		nv := max(n.Dot(v), 0)
		nh := max(n.Dot(h), 0)
		vh := max(v.Dot(h), 0)

		d := p.DistributionTerm(nh)
		g := p.GeometricTerm(nh, nv, nl, vh)
		f := p.FresnelTerm(vh)
		spec := f.Mul(d * g / p.Denominator(nl, nv))

		diffuse := p.SurfaceColor.Mul(p.Diffuse * nl)
		specular := spec.Mul(p.Specular * nl)
		color = color.Add(mul3(diffuse.Add(specular), light.Color))
	}
	return color
}

func mul3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
