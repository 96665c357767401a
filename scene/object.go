package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"brdf-viewer/shading"
)

// UniformSetter is the shading-program surface an Object writes to before it
// draws.
type UniformSetter interface {
	Use()
	SetBool(name string, v bool)
	SetFloat(name string, v float32)
	SetInt(name string, v int32)
	SetVec3(name string, v mgl32.Vec3)
	SetVec3Array(name string, v []mgl32.Vec3)
	SetMat4(name string, m mgl32.Mat4)
}

// MeshDrawer submits the draw calls for one mesh.
type MeshDrawer interface {
	DrawMesh(mesh *Mesh)
}

// Environment is the per-frame state shared by every object: camera matrices,
// camera position and the lights.
type Environment struct {
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	CameraPosition mgl32.Vec3
	Lights         []shading.Light
}

// Object is one loaded model instance. Rotation and Scale accumulate over the
// object's lifetime.
type Object struct {
	Name   string
	Path   string
	Meshes []*Mesh
	Bounds AABB

	Rotation    mgl32.Vec3 // Euler angles in radians, applied X then Y then Z
	Scale       float32
	Translation mgl32.Vec3

	Params shading.Params

	fit   mgl32.Mat4
	model mgl32.Mat4
}

// NewObject wraps meshes in an object with identity transform. The bounding
// box is used to center the model on the origin and fit it into a unit cube.
func NewObject(name, path string, meshes []*Mesh, params shading.Params) *Object {
	o := &Object{
		Name:   name,
		Path:   path,
		Meshes: meshes,
		Scale:  1,
		Params: params,
		fit:    mgl32.Ident4(),
	}
	if box, ok := meshBounds(meshes); ok {
		o.Bounds = box
		o.fit = fitMatrix(box)
	}
	o.update()
	return o
}

func fitMatrix(box AABB) mgl32.Mat4 {
	ext := box.Extents()
	size := max(ext[0], ext[1], ext[2])
	k := float32(1)
	if size > 0 {
		k = 1 / size
	}
	c := box.Center()
	return mgl32.Scale3D(k, k, k).Mul4(mgl32.Translate3D(-c[0], -c[1], -c[2]))
}

// ApplyRotationDelta adds delta (radians per axis) to the accumulated rotation.
func (o *Object) ApplyRotationDelta(delta mgl32.Vec3) {
	o.Rotation = o.Rotation.Add(delta)
	o.update()
}

// ApplyScaleDelta multiplies the accumulated scale by multiplier.
func (o *Object) ApplyScaleDelta(multiplier float32) {
	o.Scale *= multiplier
	o.update()
}

// SetTranslation moves the object's center to t.
func (o *Object) SetTranslation(t mgl32.Vec3) {
	o.Translation = t
	o.update()
}

// SetParameters replaces the object's shading state.
func (o *Object) SetParameters(p shading.Params) {
	o.Params = p
}

// Model returns Translation * Rotation * Scale * fit, so rotation and scale
// act about the model's own center.
func (o *Object) Model() mgl32.Mat4 {
	return o.model
}

func (o *Object) update() {
	rot := mgl32.HomogRotate3DX(o.Rotation[0]).
		Mul4(mgl32.HomogRotate3DY(o.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(o.Rotation[2]))
	o.model = mgl32.Translate3D(o.Translation[0], o.Translation[1], o.Translation[2]).
		Mul4(rot).
		Mul4(mgl32.Scale3D(o.Scale, o.Scale, o.Scale)).
		Mul4(o.fit)
}

// Draw forwards the transform, shading parameters and environment to the
// program and then draws every mesh.
func (o *Object) Draw(prog UniformSetter, drawer MeshDrawer, env Environment) {
	prog.Use()

	prog.SetMat4(shading.UniformModel, o.model)
	prog.SetMat4(shading.UniformView, env.View)
	prog.SetMat4(shading.UniformPerspective, env.Projection)
	prog.SetVec3(shading.UniformCamera, env.CameraPosition)

	lights := env.Lights
	if len(lights) > shading.MaxLights {
		lights = lights[:shading.MaxLights]
	}
	positions := make([]mgl32.Vec3, len(lights))
	colors := make([]mgl32.Vec3, len(lights))
	for i, l := range lights {
		positions[i] = l.Position
		colors[i] = l.Color
	}
	prog.SetInt(shading.UniformLightCount, int32(len(lights)))
	prog.SetVec3Array(shading.UniformLightPositions, positions)
	prog.SetVec3Array(shading.UniformLightColors, colors)

	p := &o.Params
	prog.SetBool(shading.UniformUseBeckmann, p.UseBeckmann())
	prog.SetBool(shading.UniformUseGGX, p.UseGGX())
	prog.SetBool(shading.UniformUseGeometric, p.UseGeometric)
	prog.SetBool(shading.UniformUseFresnel, p.UseFresnel)
	prog.SetBool(shading.UniformUseDenominator, p.UseDenominator)
	prog.SetBool(shading.UniformUsePi, p.UsePi)

	prog.SetFloat(shading.UniformRoughness, p.Roughness)
	prog.SetFloat(shading.UniformAmbient, p.Ambient)
	prog.SetFloat(shading.UniformDiffuse, p.Diffuse)
	prog.SetFloat(shading.UniformSpecular, p.Specular)
	prog.SetVec3(shading.UniformSurfaceColor, p.SurfaceColor)
	prog.SetVec3(shading.UniformFresnel, p.Fresnel)

	for _, m := range o.Meshes {
		drawer.DrawMesh(m)
	}
}
