package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"brdf-viewer/shading"
)

// CreateSphere generates a UV-sphere mesh
func CreateSphere(radius float32, segments, rings int) *Mesh {
	segments = max(segments, 3)
	rings = max(rings, 2)

	var vertices []Vertex
	var indices []uint32

	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * math.Pi / float64(rings)
		sinPhi := float32(math.Sin(phi))
		cosPhi := float32(math.Cos(phi))

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2.0 * math.Pi / float64(segments)
			sinTheta := float32(math.Sin(theta))
			cosTheta := float32(math.Cos(theta))

			normal := mgl32.Vec3{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
			vertices = append(vertices, Vertex{
				Position: normal.Mul(radius),
				Normal:   normal,
				UV:       mgl32.Vec2{float32(seg) / float32(segments), float32(ring) / float32(rings)},
			})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)

			indices = append(indices, current, current+1, next)
			indices = append(indices, current+1, next+1, next)
		}
	}

	return CreateMeshFromData("Sphere", vertices, indices)
}

// CreateTorus generates a torus lying in the XZ plane.
func CreateTorus(majorRadius, minorRadius float32, majorSegments, minorSegments int) *Mesh {
	majorSegments = max(majorSegments, 3)
	minorSegments = max(minorSegments, 3)

	var vertices []Vertex
	var indices []uint32

	for i := 0; i <= majorSegments; i++ {
		theta := float64(i) * 2.0 * math.Pi / float64(majorSegments)
		cosTheta := float32(math.Cos(theta))
		sinTheta := float32(math.Sin(theta))

		for j := 0; j <= minorSegments; j++ {
			phi := float64(j) * 2.0 * math.Pi / float64(minorSegments)
			cosPhi := float32(math.Cos(phi))
			sinPhi := float32(math.Sin(phi))

			ring := majorRadius + minorRadius*cosPhi
			vertices = append(vertices, Vertex{
				Position: mgl32.Vec3{ring * cosTheta, minorRadius * sinPhi, ring * sinTheta},
				Normal:   mgl32.Vec3{cosPhi * cosTheta, sinPhi, cosPhi * sinTheta}.Normalize(),
				UV:       mgl32.Vec2{float32(i) / float32(majorSegments), float32(j) / float32(minorSegments)},
			})
		}
	}

	for i := 0; i < majorSegments; i++ {
		for j := 0; j < minorSegments; j++ {
			current := uint32(i*(minorSegments+1) + j)
			next := uint32((i+1)*(minorSegments+1) + j)

			indices = append(indices, current, next, current+1)
			indices = append(indices, current+1, next, next+1)
		}
	}

	return CreateMeshFromData("Torus", vertices, indices)
}

var primitives = map[string]func() *Mesh{
	"sphere": func() *Mesh { return CreateSphere(1, 64, 32) },
	"torus":  func() *Mesh { return CreateTorus(1, 0.35, 64, 32) },
}

// PrimitiveNames lists the built-in shapes accepted by NewPrimitive.
func PrimitiveNames() []string {
	names := make([]string, 0, len(primitives))
	for name := range primitives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewPrimitive returns a built-in shape as an object. Built-in objects have
// no path.
func NewPrimitive(name string, params shading.Params) (*Object, error) {
	create, ok := primitives[name]
	if !ok {
		return nil, fmt.Errorf("unknown primitive %q (have %v)", name, PrimitiveNames())
	}
	return NewObject(name, "", []*Mesh{create()}, params), nil
}
