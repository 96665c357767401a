package viewer

import (
	"github.com/go-gl/mathgl/mgl32"

	"brdf-viewer/input"
	"brdf-viewer/scene"
	"brdf-viewer/shading"
)

// State is the frame loop state. The only transition is Running to
// Terminating.
type State int

const (
	Running State = iota
	Terminating
)

func (s State) String() string {
	if s == Terminating {
		return "terminating"
	}
	return "running"
}

// Surface is the window the loop presents to.
type Surface interface {
	ShouldClose() bool
	SetShouldClose(bool)
	PollEvents()
	SwapBuffers()
	// Aspect is the width/height ratio of the drawable area.
	Aspect() float32
}

// Renderer clears the frame and draws objects. Release frees whatever the
// renderer holds for an object that is no longer drawn.
type Renderer interface {
	BeginFrame(clear mgl32.Vec3)
	Draw(obj *scene.Object, env scene.Environment)
	Release(obj *scene.Object)
}

// LoadFunc loads one model file as an object.
type LoadFunc func(path string, params shading.Params) (*scene.Object, error)

// FrameLoop drives the per-frame clear, drain, apply, reset, present cycle.
type FrameLoop struct {
	Controller *input.Controller
	ClearColor mgl32.Vec3

	// Load is used for models reported by the watcher.
	Load LoadFunc

	ctx      *Context
	surface  Surface
	renderer Renderer
	models   <-chan ModelEvent

	state           State
	frames          uint64
	settingsChanged bool
}

func NewFrameLoop(ctx *Context, surface Surface, renderer Renderer) *FrameLoop {
	return &FrameLoop{
		Controller: input.NewController(ctx),
		ClearColor: mgl32.Vec3{0.2, 0.3, 0.3},
		Load:       scene.LoadObject,
		ctx:        ctx,
		surface:    surface,
		renderer:   renderer,
	}
}

// HandleKey is the window's key handler. It must be called on the loop's
// thread, which is the case for events dispatched from PollEvents.
func (l *FrameLoop) HandleKey(ev input.Event) {
	if cmd := l.Controller.Handle(ev); cmd.EditsParameters() {
		l.settingsChanged = true
	}
}

// WatchModels makes the loop apply model events at the start of each frame.
func (l *FrameLoop) WatchModels(events <-chan ModelEvent) {
	l.models = events
}

func (l *FrameLoop) State() State {
	return l.state
}

// Frames returns the number of frames presented so far.
func (l *FrameLoop) Frames() uint64 {
	return l.frames
}

// Run steps the loop until it terminates.
func (l *FrameLoop) Run() {
	logger.Infof("entering frame loop with %d model(s)", len(l.ctx.Objects))
	for l.Step() {
	}
	logger.Infof("frame loop terminated after %d frames", l.frames)
}

// Step runs one frame and reports whether the loop is still running.
func (l *FrameLoop) Step() bool {
	if l.state == Terminating {
		return false
	}

	l.renderer.BeginFrame(l.ClearColor)

	l.surface.PollEvents()
	l.drainModelEvents()
	if l.ctx.QuitRequested() {
		l.surface.SetShouldClose(true)
	}
	if l.settingsChanged {
		l.settingsChanged = false
		logger.Noticef("settings\n%s", FormatSettings(*l.ctx.Parameters()))
	}

	env := l.ctx.Camera.Environment(l.surface.Aspect(), l.ctx.Lights)
	pending := l.ctx.Pending()
	for _, obj := range l.drawList() {
		obj.ApplyRotationDelta(pending.Rotation)
		obj.ApplyScaleDelta(pending.Scale)
		obj.SetParameters(l.ctx.paramsFor(obj))
		l.renderer.Draw(obj, env)
	}
	pending.Reset()

	l.surface.SwapBuffers()
	l.frames++

	if l.surface.ShouldClose() {
		l.state = Terminating
	}
	return l.state == Running
}

func (l *FrameLoop) drawList() []*scene.Object {
	if l.ctx.DrawAll {
		return l.ctx.Objects
	}
	if obj := l.ctx.ActiveObject(); obj != nil {
		return []*scene.Object{obj}
	}
	return nil
}

func (l *FrameLoop) drainModelEvents() {
	if l.models == nil {
		return
	}
	for {
		select {
		case ev, ok := <-l.models:
			if !ok {
				l.models = nil
				return
			}
			l.applyModelEvent(ev)
		default:
			return
		}
	}
}

func (l *FrameLoop) applyModelEvent(ev ModelEvent) {
	switch ev.Kind {
	case ModelRemoved:
		if old := l.ctx.remove(ev.Path); old != nil {
			l.renderer.Release(old)
		}
	case ModelChanged:
		obj, err := l.Load(ev.Path, l.ctx.Params)
		if err != nil {
			logger.Warningf("skipping %s: %v", ev.Path, err)
			return
		}
		if old := l.ctx.replaceOrAdd(obj); old != nil {
			l.renderer.Release(old)
		}
	}
}
