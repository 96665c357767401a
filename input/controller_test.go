package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brdf-viewer/shading"
)

type fakeTarget struct {
	pending  Pending
	params   shading.Params
	selected []int
	quit     bool
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{pending: NewPending(), params: shading.DefaultParams()}
}

func (f *fakeTarget) Pending() *Pending           { return &f.pending }
func (f *fakeTarget) SelectObject(i int)          { f.selected = append(f.selected, i) }
func (f *fakeTarget) Parameters() *shading.Params { return &f.params }
func (f *fakeTarget) RequestQuit()                { f.quit = true }

func press(k Key) Event      { return Event{Key: k, Action: Press} }
func shiftPress(k Key) Event { return Event{Key: k, Action: Press, Mods: ModShift} }
func repeat(k Key) Event     { return Event{Key: k, Action: Repeat} }

func TestSelectModelKeys(t *testing.T) {
	target := newFakeTarget()
	c := NewController(target)

	cmd := c.Handle(press(Key3))
	assert.Equal(t, Command{Op: OpSelectModel, Index: 2}, cmd)
	c.Handle(press(Key1))
	c.Handle(press(Key7))
	c.Handle(press(Key8))
	assert.Equal(t, []int{2, 0, 6}, target.selected)
}

func TestRotationAccumulatesAcrossEvents(t *testing.T) {
	target := newFakeTarget()
	c := NewController(target)

	for i := 0; i < 18; i++ {
		c.Handle(repeat(KeyS))
	}
	assert.InDelta(t, mgl32.DegToRad(90), target.pending.Rotation[0], 1e-5)

	c.Handle(press(KeyW))
	c.Handle(press(KeyE))
	c.Handle(press(KeyA))
	assert.InDelta(t, mgl32.DegToRad(85), target.pending.Rotation[0], 1e-5)
	assert.InDelta(t, mgl32.DegToRad(5), target.pending.Rotation[1], 1e-6)
	assert.InDelta(t, mgl32.DegToRad(5), target.pending.Rotation[2], 1e-6)

	c.Handle(press(KeyQ))
	c.Handle(press(KeyD))
	c.Handle(press(KeyD))
	assert.InDelta(t, 0, target.pending.Rotation[1], 1e-6)
	assert.InDelta(t, mgl32.DegToRad(-5), target.pending.Rotation[2], 1e-6)
}

func TestScaleKeys(t *testing.T) {
	target := newFakeTarget()
	c := NewController(target)

	c.Handle(press(KeyZ))
	c.Handle(press(KeyZ))
	assert.InDelta(t, 1.21, target.pending.Scale, 1e-6)
	c.Handle(press(KeyX))
	assert.InDelta(t, 1.1, target.pending.Scale, 1e-6)
}

func TestReleaseIsIgnored(t *testing.T) {
	target := newFakeTarget()
	c := NewController(target)

	for _, k := range []Key{KeyS, KeyZ, KeyH, KeyT, Key2} {
		cmd := c.Handle(Event{Key: k, Action: Release})
		assert.Equal(t, OpNone, cmd.Op)
	}
	assert.True(t, target.pending.IsNeutral())
	assert.Equal(t, shading.DefaultParams(), target.params)
	assert.Empty(t, target.selected)
}

func TestUnboundKeysAreNoOps(t *testing.T) {
	target := newFakeTarget()
	c := NewController(target)

	for _, ev := range []Event{press(KeyN), press(KeyLeftShift), shiftPress(KeyS), shiftPress(KeyH), press(Key9), press(Key0)} {
		assert.Equal(t, OpNone, c.Handle(ev).Op, "%v", ev.Key)
	}
	assert.True(t, target.pending.IsNeutral())
	assert.Equal(t, shading.DefaultParams(), target.params)
}

func TestEscapeQuits(t *testing.T) {
	target := newFakeTarget()
	c := NewController(target)

	c.Handle(Event{Key: KeyEscape, Action: Release})
	assert.False(t, target.quit)
	c.Handle(shiftPress(KeyEscape))
	assert.True(t, target.quit)
}

func TestRoughnessUsesHalfStep(t *testing.T) {
	target := newFakeTarget()
	c := NewController(target)
	require.Equal(t, float32(0), target.params.Roughness)

	for i := 0; i < 20; i++ {
		c.Handle(press(KeyT))
	}
	assert.InDelta(t, 0.5, target.params.Roughness, 1e-5)

	for i := 0; i < 20; i++ {
		c.Handle(repeat(KeyT))
	}
	assert.Equal(t, float32(1), target.params.Roughness)

	c.Handle(shiftPress(KeyT))
	assert.InDelta(t, 0.975, target.params.Roughness, 1e-6)
}

func TestCoefficientKeys(t *testing.T) {
	target := newFakeTarget()
	c := NewController(target)
	before := target.params

	c.Handle(press(KeyY))
	c.Handle(shiftPress(KeyU))
	c.Handle(shiftPress(KeyI))
	c.Handle(press(KeyR))
	c.Handle(shiftPress(KeyG))
	c.Handle(press(KeyB))

	p := target.params
	assert.InDelta(t, before.Ambient+0.05, p.Ambient, 1e-6)
	assert.InDelta(t, before.Specular-0.05, p.Specular, 1e-6)
	assert.InDelta(t, before.Diffuse-0.05, p.Diffuse, 1e-6)
	assert.InDelta(t, before.SurfaceColor[0]+0.05, p.SurfaceColor[0], 1e-6)
	assert.InDelta(t, before.SurfaceColor[1]-0.05, p.SurfaceColor[1], 1e-6)
	assert.InDelta(t, before.SurfaceColor[2]+0.05, p.SurfaceColor[2], 1e-6)
	assert.Equal(t, before.Fresnel, p.Fresnel)
}

func TestDistributionKeys(t *testing.T) {
	target := newFakeTarget()
	c := NewController(target)
	require.Equal(t, shading.DistributionBeckmann, target.params.Distribution)

	c.Handle(press(KeyM))
	assert.Equal(t, shading.DistributionGGX, target.params.Distribution)
	c.Handle(press(KeyH))
	assert.Equal(t, shading.DistributionNone, target.params.Distribution)
	c.Handle(press(KeyH))
	assert.Equal(t, shading.DistributionBeckmann, target.params.Distribution)
	c.Handle(press(KeyH))
	c.Handle(press(KeyM))
	assert.Equal(t, shading.DistributionBeckmann, target.params.Distribution)
}

func TestTermKeys(t *testing.T) {
	target := newFakeTarget()
	c := NewController(target)

	c.Handle(press(KeyJ))
	c.Handle(press(KeyK))
	c.Handle(press(KeyP))
	c.Handle(press(KeyO))
	p := target.params
	assert.False(t, p.UseGeometric)
	assert.False(t, p.UseFresnel)
	assert.False(t, p.UsePi)
	assert.False(t, p.UseDenominator)

	c.Handle(press(KeyK))
	assert.True(t, target.params.UseFresnel)
}

func TestFresnelPresetKeys(t *testing.T) {
	target := newFakeTarget()
	c := NewController(target)

	c.Handle(shiftPress(Key0))
	assert.Equal(t, shading.FresnelPalette[len(shading.FresnelPalette)-1].Value, target.params.Fresnel)

	for d := 1; d <= 9; d++ {
		cmd := c.Handle(shiftPress(Key0 + Key(d)))
		require.Equal(t, OpSelectFresnel, cmd.Op)
		assert.Equal(t, shading.FresnelPalette[d-1].Value, target.params.Fresnel)
		assert.True(t, shading.ValidFresnelIndex(cmd.Index))
	}

	before := target.params.SurfaceColor
	c.Handle(shiftPress(Key2))
	c.Handle(shiftPress(Key2))
	assert.Equal(t, shading.FresnelPalette[1].Value, target.params.Fresnel)
	assert.Equal(t, before, target.params.SurfaceColor)
}

func TestCustomSpeeds(t *testing.T) {
	target := newFakeTarget()
	c := NewController(target)
	c.RotationSpeed = mgl32.DegToRad(10)
	c.ScaleSpeed = 2
	c.Step = 0.1

	c.Handle(press(KeyS))
	c.Handle(press(KeyZ))
	c.Handle(press(KeyT))
	assert.InDelta(t, mgl32.DegToRad(10), target.pending.Rotation[0], 1e-6)
	assert.Equal(t, float32(2), target.pending.Scale)
	assert.InDelta(t, 0.05, target.params.Roughness, 1e-6)
}

func TestEditsParameters(t *testing.T) {
	assert.True(t, Decode(press(KeyT)).EditsParameters())
	assert.True(t, Decode(press(KeyH)).EditsParameters())
	assert.True(t, Decode(shiftPress(Key5)).EditsParameters())
	assert.False(t, Decode(press(KeyS)).EditsParameters())
	assert.False(t, Decode(press(Key1)).EditsParameters())
	assert.False(t, Decode(press(KeyEscape)).EditsParameters())
}

func TestPendingReset(t *testing.T) {
	p := NewPending()
	assert.True(t, p.IsNeutral())
	p.Rotation[1] = 0.3
	p.Scale = 1.1
	assert.False(t, p.IsNeutral())
	p.Reset()
	assert.True(t, p.IsNeutral())
}

func TestHelpCoversBindings(t *testing.T) {
	help := Help()
	require.NotEmpty(t, help)
	for _, h := range help {
		assert.NotEmpty(t, h.Keys)
		assert.NotEmpty(t, h.Action)
	}
	assert.Equal(t, "Esc", KeyEscape.String())
	assert.Equal(t, "T", KeyT.String())
	assert.Equal(t, "7", Key7.String())
}
