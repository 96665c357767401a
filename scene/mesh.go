package scene

import "github.com/go-gl/mathgl/mgl32"

// Vertex is the interleaved layout uploaded to the GPU.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Extents returns the box size along each axis.
func (b AABB) Extents() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Union returns the smallest box containing both b and other.
func (b AABB) Union(other AABB) AABB {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], other.Min[i])
		b.Max[i] = max(b.Max[i], other.Max[i])
	}
	return b
}

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32

	// Cached local-space AABB (computed by CreateMeshFromData).
	LocalAABB    AABB
	HasLocalAABB bool

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	// Do not access directly; use the renderer's API.
	GPUData interface{}
}

// CreateMeshFromData builds a Mesh and pre-computes its local-space AABB.
func CreateMeshFromData(name string, vertices []Vertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	if len(vertices) > 0 {
		m.LocalAABB = computeLocalAABB(vertices)
		m.HasLocalAABB = true
	}
	return m
}

// computeLocalAABB returns the tight AABB of the given vertex positions.
func computeLocalAABB(vertices []Vertex) AABB {
	box := AABB{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		box = box.Union(AABB{Min: v.Position, Max: v.Position})
	}
	return box
}

// meshBounds returns the union of the local AABBs of every non-empty mesh.
func meshBounds(meshes []*Mesh) (AABB, bool) {
	var (
		box AABB
		ok  bool
	)
	for _, m := range meshes {
		if !m.HasLocalAABB {
			continue
		}
		if !ok {
			box, ok = m.LocalAABB, true
			continue
		}
		box = box.Union(m.LocalAABB)
	}
	return box, ok
}

// generateNormals computes area-weighted vertex normals and writes them to
// the vertex slice.
func generateNormals(vertices []Vertex, indices []uint32) {
	accum := make([]mgl32.Vec3, len(vertices))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0 := vertices[i0].Position
		v1 := vertices[i1].Position
		v2 := vertices[i2].Position
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i := range vertices {
		if accum[i].Len() > 0 {
			vertices[i].Normal = accum[i].Normalize()
		}
	}
}
