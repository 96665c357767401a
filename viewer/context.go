package viewer

import (
	"github.com/go-gl/mathgl/mgl32"

	"brdf-viewer/input"
	"brdf-viewer/log"
	"brdf-viewer/scene"
	"brdf-viewer/shading"
)

var logger = log.New("viewer")

// Context is the state shared by the input controller and the frame loop.
// It is only touched from the thread that runs the loop.
type Context struct {
	Objects []*scene.Object
	Active  int

	// Params is the parameter set edited by the controller unless PerObject
	// is set, in which case the active object's own parameters are edited.
	Params    shading.Params
	PerObject bool

	// DrawAll draws and transforms every object each frame instead of only
	// the active one. Objects are spread along X, see Arrange.
	DrawAll bool

	Camera *scene.Camera
	Lights []shading.Light

	pending input.Pending
	quit    bool
}

// NewContext returns a context for objects with the given default
// parameters. Each object starts with its own copy of params.
func NewContext(objects []*scene.Object, params shading.Params, camera *scene.Camera, lights []shading.Light) *Context {
	for _, obj := range objects {
		obj.SetParameters(params)
	}
	return &Context{
		Objects: objects,
		Params:  params,
		Camera:  camera,
		Lights:  lights,
		pending: input.NewPending(),
	}
}

func (c *Context) Pending() *input.Pending {
	return &c.pending
}

// SelectObject makes the object at index active. Indices without a loaded
// object are ignored.
func (c *Context) SelectObject(index int) {
	if index < 0 || index >= len(c.Objects) {
		logger.Debugf("no model at index %d (%d loaded)", index+1, len(c.Objects))
		return
	}
	c.Active = index
	logger.Infof("active model: %s", c.Objects[index].Name)
}

// Parameters returns the parameter set edits should go to.
func (c *Context) Parameters() *shading.Params {
	if c.PerObject {
		if obj := c.ActiveObject(); obj != nil {
			return &obj.Params
		}
	}
	return &c.Params
}

func (c *Context) RequestQuit() {
	c.quit = true
}

// QuitRequested reports whether the quit key was pressed.
func (c *Context) QuitRequested() bool {
	return c.quit
}

// ActiveObject returns the active object or nil when nothing is loaded.
func (c *Context) ActiveObject() *scene.Object {
	if c.Active < 0 || c.Active >= len(c.Objects) {
		return nil
	}
	return c.Objects[c.Active]
}

// paramsFor returns the parameters obj should be drawn with.
func (c *Context) paramsFor(obj *scene.Object) shading.Params {
	if c.PerObject {
		return obj.Params
	}
	return c.Params
}

func (c *Context) indexOf(path string) int {
	for i, obj := range c.Objects {
		if obj.Path == path {
			return i
		}
	}
	return -1
}

// replaceOrAdd swaps in obj for the object loaded from the same path,
// keeping its transform and parameters, or appends it. The replaced object
// is returned.
func (c *Context) replaceOrAdd(obj *scene.Object) *scene.Object {
	if i := c.indexOf(obj.Path); i >= 0 {
		old := c.Objects[i]
		obj.Params = old.Params
		obj.SetTranslation(old.Translation)
		obj.ApplyRotationDelta(old.Rotation)
		obj.ApplyScaleDelta(old.Scale)
		c.Objects[i] = obj
		logger.Noticef("reloaded %s (index %d)", obj.Path, i+1)
		return old
	}
	c.Objects = append(c.Objects, obj)
	c.Arrange()
	logger.Noticef("loaded %s (index %d)", obj.Path, len(c.Objects))
	return nil
}

// remove drops and returns the object loaded from path. The active
// selection stays on the same object when possible.
func (c *Context) remove(path string) *scene.Object {
	i := c.indexOf(path)
	if i < 0 {
		return nil
	}
	obj := c.Objects[i]
	c.Objects = append(c.Objects[:i], c.Objects[i+1:]...)
	if i < c.Active || c.Active >= len(c.Objects) {
		c.Active = max(c.Active-1, 0)
	}
	c.Arrange()
	logger.Noticef("removed %s", path)
	return obj
}

// objectSpacing is the distance between object centers in DrawAll mode.
// Fitted objects are at most one unit wide.
const objectSpacing = 1.25

// Arrange places objects in a row centered on the origin when DrawAll is
// set, and back at the origin otherwise.
func (c *Context) Arrange() {
	n := len(c.Objects)
	for i, obj := range c.Objects {
		var x float32
		if c.DrawAll {
			x = (float32(i) - float32(n-1)/2) * objectSpacing
		}
		obj.SetTranslation(mgl32.Vec3{x, 0, 0})
	}
}
