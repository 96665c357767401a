package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF opens a .glb or .gltf file and returns one Mesh per primitive with
// node transforms baked into the vertex data. Materials and textures are
// ignored.
func LoadGLTF(path string) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	var meshes []*Mesh
	var visit func(idx int, parent mgl32.Mat4, depth int)
	visit = func(idx int, parent mgl32.Mat4, depth int) {
		if idx < 0 || idx >= len(doc.Nodes) || depth > len(doc.Nodes) {
			return
		}
		n := doc.Nodes[idx]
		world := parent.Mul4(nodeLocalMatrix(n))

		if n.Mesh != nil && *n.Mesh < len(doc.Meshes) {
			gm := doc.Meshes[*n.Mesh]
			for pi, prim := range gm.Primitives {
				m, err := loadGLTFPrimitive(doc, gm.Name, pi, prim, world)
				if err != nil {
					logger.Warningf("gltf %s: mesh %d prim %d: %v", path, *n.Mesh, pi, err)
					continue
				}
				meshes = append(meshes, m)
			}
		}
		for _, child := range n.Children {
			visit(child, world, depth+1)
		}
	}

	for _, root := range gltfRoots(doc) {
		visit(root, mgl32.Ident4(), 0)
	}

	if len(meshes) == 0 {
		return nil, fmt.Errorf("no geometry found in %q", path)
	}
	return meshes, nil
}

// gltfRoots returns the nodes of the default scene, or every parentless node
// when the document has no default scene.
func gltfRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) == 1 {
		return doc.Scenes[0].Nodes
	}

	hasParent := make([]bool, len(doc.Nodes))
	for _, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

var identity16 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// nodeLocalMatrix returns the node's explicit matrix when one is set, and its
// TRS composition otherwise. glTF matrices are column-major like mgl32.
func nodeLocalMatrix(n *gltf.Node) mgl32.Mat4 {
	if n.Matrix != identity16 && n.Matrix != [16]float64{} {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault() // [x, y, z, w]
	s := n.ScaleOrDefault()

	rot := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rot.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

// loadGLTFPrimitive converts one glTF mesh primitive into a Mesh in the
// space described by world.
func loadGLTFPrimitive(doc *gltf.Document, meshName string, primIdx int, prim *gltf.Primitive, world mgl32.Mat4) (*Mesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	posAcc, err := accessor(doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	positions, err := modeler.ReadPosition(doc, posAcc, nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if acc, err := accessor(doc, idx); err == nil {
			normals, _ = modeler.ReadNormal(doc, acc, nil)
		}
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if acc, err := accessor(doc, idx); err == nil {
			uvs, _ = modeler.ReadTextureCoord(doc, acc, nil)
		}
	}

	normalMat := world.Mat3().Inv().Transpose()

	verts := make([]Vertex, len(positions))
	for i, p := range positions {
		v := Vertex{
			Position: world.Mul4x1(mgl32.Vec3(p).Vec4(1)).Vec3(),
			Normal:   mgl32.Vec3{0, 1, 0},
		}
		if i < len(normals) {
			v.Normal = normalMat.Mul3x1(mgl32.Vec3(normals[i])).Normalize()
		}
		if i < len(uvs) {
			v.UV = mgl32.Vec2(uvs[i])
		}
		verts[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		idxAcc, err := accessor(doc, *prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		indices, err = modeler.ReadIndices(doc, idxAcc, nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		for _, i := range indices {
			if int(i) >= len(verts) {
				return nil, fmt.Errorf("index %d out of range for %d vertices", i, len(verts))
			}
		}
	} else {
		indices = make([]uint32, len(verts))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	if len(normals) == 0 {
		generateNormals(verts, indices)
	}

	return CreateMeshFromData(name, verts, indices), nil
}

func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range (%d accessors)", idx, len(doc.Accessors))
	}
	return doc.Accessors[idx], nil
}
