package viewer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brdf-viewer/input"
	"brdf-viewer/log"
	"brdf-viewer/scene"
	"brdf-viewer/shading"
)

// fakeSurface delivers one batch of key events per PollEvents call.
type fakeSurface struct {
	batches     [][]input.Event
	handler     func(input.Event)
	polls       int
	swaps       int
	shouldClose bool
}

func (s *fakeSurface) ShouldClose() bool     { return s.shouldClose }
func (s *fakeSurface) SetShouldClose(v bool) { s.shouldClose = v }
func (s *fakeSurface) SwapBuffers()          { s.swaps++ }
func (s *fakeSurface) Aspect() float32       { return 1 }

func (s *fakeSurface) PollEvents() {
	if s.polls < len(s.batches) {
		for _, ev := range s.batches[s.polls] {
			s.handler(ev)
		}
	}
	s.polls++
}

type drawCall struct {
	name   string
	params shading.Params
}

type fakeRenderer struct {
	clears   int
	clear    mgl32.Vec3
	draws    [][]drawCall
	released []string
}

func (r *fakeRenderer) Release(obj *scene.Object) {
	r.released = append(r.released, obj.Name)
}

func (r *fakeRenderer) BeginFrame(clear mgl32.Vec3) {
	r.clears++
	r.clear = clear
	r.draws = append(r.draws, nil)
}

func (r *fakeRenderer) Draw(obj *scene.Object, env scene.Environment) {
	last := len(r.draws) - 1
	r.draws[last] = append(r.draws[last], drawCall{name: obj.Name, params: obj.Params})
}

func (r *fakeRenderer) lastFrame() []drawCall {
	return r.draws[len(r.draws)-1]
}

func press(k input.Key) input.Event {
	return input.Event{Key: k, Action: input.Press}
}

func newTestLoop(t *testing.T, names ...string) (*FrameLoop, *Context, *fakeSurface, *fakeRenderer) {
	t.Helper()
	var objects []*scene.Object
	for _, name := range names {
		objects = append(objects, scene.NewObject(name, name+".obj", nil, shading.DefaultParams()))
	}
	camera := scene.NewCamera(mgl32.Vec3{0, 0.5, 2}, mgl32.Vec3{}, 45, 0.1, 100)
	ctx := NewContext(objects, shading.DefaultParams(), camera, shading.DefaultLights())

	surface := &fakeSurface{}
	renderer := &fakeRenderer{}
	loop := NewFrameLoop(ctx, surface, renderer)
	surface.handler = loop.HandleKey
	return loop, ctx, surface, renderer
}

func TestStepDrawsActiveObject(t *testing.T) {
	loop, ctx, surface, renderer := newTestLoop(t, "A", "B", "C", "D")
	surface.batches = [][]input.Event{nil, {press(input.Key3)}}

	require.True(t, loop.Step())
	assert.Equal(t, []drawCall{{"A", ctx.Params}}, renderer.lastFrame())
	assert.Equal(t, mgl32.Vec3{0.2, 0.3, 0.3}, renderer.clear)

	require.True(t, loop.Step())
	assert.Equal(t, "C", ctx.ActiveObject().Name)
	require.Len(t, renderer.lastFrame(), 1)
	assert.Equal(t, "C", renderer.lastFrame()[0].name)

	assert.Equal(t, 2, renderer.clears)
	assert.Equal(t, 2, surface.swaps)
	assert.Equal(t, uint64(2), loop.Frames())
}

func TestSelectMissingModelIsIgnored(t *testing.T) {
	loop, ctx, surface, _ := newTestLoop(t, "A", "B")
	surface.batches = [][]input.Event{{press(input.Key2), press(input.Key5)}}

	loop.Step()
	assert.Equal(t, 1, ctx.Active)
}

func TestPendingEditsApplyOnce(t *testing.T) {
	loop, ctx, surface, _ := newTestLoop(t, "A")
	var batch []input.Event
	for i := 0; i < 18; i++ {
		batch = append(batch, press(input.KeyS))
	}
	batch = append(batch, press(input.KeyZ))
	surface.batches = [][]input.Event{batch}

	loop.Step()
	obj := ctx.ActiveObject()
	assert.InDelta(t, mgl32.DegToRad(90), obj.Rotation[0], 1e-5)
	assert.InDelta(t, 1.1, obj.Scale, 1e-6)
	assert.True(t, ctx.Pending().IsNeutral())

	rotation, scale, model := obj.Rotation, obj.Scale, obj.Model()
	for i := 0; i < 10; i++ {
		loop.Step()
	}
	assert.Equal(t, rotation, obj.Rotation)
	assert.Equal(t, scale, obj.Scale)
	assert.Equal(t, model, obj.Model())
}

func TestRotationSpansFrames(t *testing.T) {
	loop, ctx, surface, _ := newTestLoop(t, "A")
	for i := 0; i < 18; i++ {
		surface.batches = append(surface.batches, []input.Event{press(input.KeyS)})
	}
	for i := 0; i < 18; i++ {
		loop.Step()
	}
	assert.InDelta(t, mgl32.DegToRad(90), ctx.ActiveObject().Rotation[0], 1e-5)
}

func TestPendingDiscardedWithoutObjects(t *testing.T) {
	loop, ctx, surface, renderer := newTestLoop(t)
	surface.batches = [][]input.Event{{press(input.KeyS), press(input.KeyZ)}}

	require.True(t, loop.Step())
	assert.Empty(t, renderer.lastFrame())
	assert.True(t, ctx.Pending().IsNeutral())
}

func TestToggleEditsPersist(t *testing.T) {
	loop, ctx, surface, renderer := newTestLoop(t, "A")
	surface.batches = [][]input.Event{{press(input.KeyK)}}

	loop.Step()
	loop.Step()
	loop.Step()
	assert.False(t, ctx.Params.UseFresnel)
	assert.False(t, renderer.lastFrame()[0].params.UseFresnel)
}

func TestSharedParameters(t *testing.T) {
	loop, _, surface, renderer := newTestLoop(t, "A", "B")
	surface.batches = [][]input.Event{{press(input.KeyJ)}, {press(input.Key2)}}

	loop.Step()
	assert.False(t, renderer.lastFrame()[0].params.UseGeometric)
	loop.Step()
	assert.Equal(t, "B", renderer.lastFrame()[0].name)
	assert.False(t, renderer.lastFrame()[0].params.UseGeometric)
}

func TestPerObjectParameters(t *testing.T) {
	loop, ctx, surface, renderer := newTestLoop(t, "A", "B")
	ctx.PerObject = true
	surface.batches = [][]input.Event{{press(input.KeyJ)}, {press(input.Key2)}}

	loop.Step()
	assert.False(t, renderer.lastFrame()[0].params.UseGeometric)
	loop.Step()
	assert.Equal(t, "B", renderer.lastFrame()[0].name)
	assert.True(t, renderer.lastFrame()[0].params.UseGeometric)
	assert.False(t, ctx.Objects[0].Params.UseGeometric)
	assert.True(t, ctx.Params.UseGeometric)
}

func TestDrawAll(t *testing.T) {
	loop, ctx, surface, renderer := newTestLoop(t, "A", "B", "C")
	ctx.DrawAll = true
	ctx.Arrange()
	surface.batches = [][]input.Event{{press(input.KeyE)}}

	loop.Step()
	require.Len(t, renderer.lastFrame(), 3)
	for _, obj := range ctx.Objects {
		assert.InDelta(t, mgl32.DegToRad(5), obj.Rotation[1], 1e-6)
	}
	assert.InDelta(t, -1.25, ctx.Objects[0].Translation[0], 1e-6)
	assert.InDelta(t, 0, ctx.Objects[1].Translation[0], 1e-6)
	assert.InDelta(t, 1.25, ctx.Objects[2].Translation[0], 1e-6)
}

func TestEscapeTerminates(t *testing.T) {
	loop, _, surface, renderer := newTestLoop(t, "A")
	surface.batches = [][]input.Event{nil, {press(input.KeyEscape)}}

	assert.True(t, loop.Step())
	assert.Equal(t, Running, loop.State())
	assert.False(t, loop.Step())
	assert.Equal(t, Terminating, loop.State())
	assert.True(t, surface.shouldClose)

	assert.False(t, loop.Step())
	assert.Equal(t, 2, renderer.clears)
	assert.Equal(t, 2, surface.swaps)
}

func TestRunStopsWhenWindowCloses(t *testing.T) {
	loop, _, surface, _ := newTestLoop(t, "A")
	surface.batches = make([][]input.Event, 5)
	surface.batches[4] = []input.Event{press(input.KeyEscape)}

	loop.Run()
	assert.Equal(t, uint64(5), loop.Frames())
	assert.Equal(t, Terminating, loop.State())
}

func TestSettingsLoggedAfterEdit(t *testing.T) {
	var buf bytes.Buffer
	log.SetSink(&buf)
	log.SetLevel(log.Notice)
	defer log.SetSink(os.Stdout)

	loop, _, surface, _ := newTestLoop(t, "A")
	surface.batches = [][]input.Event{{press(input.KeyS)}, {press(input.KeyT)}}

	loop.Step()
	assert.NotContains(t, buf.String(), "Roughness")
	loop.Step()
	assert.Contains(t, buf.String(), "Roughness")
	assert.Contains(t, buf.String(), "0.025")
	assert.Contains(t, buf.String(), "NOTICE")
}

func TestModelEvents(t *testing.T) {
	loop, ctx, _, renderer := newTestLoop(t, "A", "B")
	events := make(chan ModelEvent, 4)
	loop.WatchModels(events)

	var loaded []string
	loop.Load = func(path string, params shading.Params) (*scene.Object, error) {
		loaded = append(loaded, path)
		if path == "broken.obj" {
			return nil, errors.New("bad file")
		}
		return scene.NewObject(path, path, nil, params), nil
	}

	ctx.SelectObject(1)
	events <- ModelEvent{Kind: ModelChanged, Path: "C.obj"}
	events <- ModelEvent{Kind: ModelChanged, Path: "broken.obj"}
	events <- ModelEvent{Kind: ModelRemoved, Path: "A.obj"}
	loop.Step()

	assert.Equal(t, []string{"C.obj", "broken.obj"}, loaded)
	require.Len(t, ctx.Objects, 2)
	assert.Equal(t, "B", ctx.Objects[0].Name)
	assert.Equal(t, "C.obj", ctx.Objects[1].Name)
	assert.Equal(t, 0, ctx.Active)
	assert.Equal(t, "B", renderer.lastFrame()[0].name)
	assert.Equal(t, []string{"A"}, renderer.released)

	close(events)
	assert.True(t, loop.Step())
}

func TestModelReloadKeepsState(t *testing.T) {
	loop, ctx, surface, renderer := newTestLoop(t, "A")
	ctx.PerObject = true
	events := make(chan ModelEvent, 1)
	loop.WatchModels(events)
	loop.Load = func(path string, params shading.Params) (*scene.Object, error) {
		return scene.NewObject("A2", path, nil, params), nil
	}
	surface.batches = [][]input.Event{{press(input.KeyS), press(input.KeyZ), press(input.KeyJ)}}
	loop.Step()

	events <- ModelEvent{Kind: ModelChanged, Path: "A.obj"}
	loop.Step()

	require.Len(t, ctx.Objects, 1)
	obj := ctx.Objects[0]
	assert.Equal(t, "A2", obj.Name)
	assert.InDelta(t, mgl32.DegToRad(5), obj.Rotation[0], 1e-6)
	assert.InDelta(t, 1.1, obj.Scale, 1e-6)
	assert.False(t, obj.Params.UseGeometric)
	assert.Equal(t, []string{"A"}, renderer.released)
}

func TestModelEventsLoadFromDisk(t *testing.T) {
	loop, ctx, _, _ := newTestLoop(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644))

	events := make(chan ModelEvent, 1)
	events <- ModelEvent{Kind: ModelChanged, Path: path}
	loop.WatchModels(events)
	loop.Step()

	require.Len(t, ctx.Objects, 1)
	assert.Equal(t, "tri", ctx.Objects[0].Name)
	assert.Equal(t, ctx.Params, ctx.Objects[0].Params)
}
