package input

import "brdf-viewer/shading"

// Op identifies what a decoded key event asks for.
type Op int

const (
	OpNone Op = iota
	OpQuit
	OpSelectModel
	OpRotate
	OpScale
	OpToggleDistribution
	OpFlipDistribution
	OpToggleTerm
	OpAdjust
	OpSelectFresnel
)

// Axis indexes the rotation axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Command is the decoded intent of one key event. Only the fields relevant
// to Op are set. Sign is +1 or -1 for OpRotate, OpScale and OpAdjust.
type Command struct {
	Op    Op
	Index int
	Axis  Axis
	Sign  float32
	Field shading.Field
	Term  shading.Term
}

// EditsParameters reports whether the command changes shading parameters.
func (c Command) EditsParameters() bool {
	switch c.Op {
	case OpToggleDistribution, OpFlipDistribution, OpToggleTerm, OpAdjust, OpSelectFresnel:
		return true
	}
	return false
}

// ModelSlots is the number of model-select keys (1 through 7).
const ModelSlots = 7

type chord struct {
	key     Key
	shifted bool
}

var bindings = map[chord]Command{
	{KeyW, false}: {Op: OpRotate, Axis: AxisX, Sign: -1},
	{KeyS, false}: {Op: OpRotate, Axis: AxisX, Sign: +1},
	{KeyE, false}: {Op: OpRotate, Axis: AxisY, Sign: +1},
	{KeyQ, false}: {Op: OpRotate, Axis: AxisY, Sign: -1},
	{KeyD, false}: {Op: OpRotate, Axis: AxisZ, Sign: -1},
	{KeyA, false}: {Op: OpRotate, Axis: AxisZ, Sign: +1},

	{KeyZ, false}: {Op: OpScale, Sign: +1},
	{KeyX, false}: {Op: OpScale, Sign: -1},

	{KeyH, false}: {Op: OpToggleDistribution},
	{KeyM, false}: {Op: OpFlipDistribution},
	{KeyJ, false}: {Op: OpToggleTerm, Term: shading.TermGeometric},
	{KeyK, false}: {Op: OpToggleTerm, Term: shading.TermFresnel},
	{KeyP, false}: {Op: OpToggleTerm, Term: shading.TermNormalizationPi},
	{KeyO, false}: {Op: OpToggleTerm, Term: shading.TermDenominator},
}

var adjustKeys = map[Key]shading.Field{
	KeyT: shading.FieldRoughness,
	KeyY: shading.FieldAmbient,
	KeyU: shading.FieldSpecular,
	KeyI: shading.FieldDiffuse,
	KeyR: shading.FieldColorR,
	KeyG: shading.FieldColorG,
	KeyB: shading.FieldColorB,
}

func init() {
	for k, f := range adjustKeys {
		bindings[chord{k, false}] = Command{Op: OpAdjust, Field: f, Sign: +1}
		bindings[chord{k, true}] = Command{Op: OpAdjust, Field: f, Sign: -1}
	}
	for i := 0; i < ModelSlots; i++ {
		bindings[chord{Key1 + Key(i), false}] = Command{Op: OpSelectModel, Index: i}
	}
	bindings[chord{Key0, true}] = Command{Op: OpSelectFresnel, Index: shading.FresnelLast}
	for d := 1; d <= 9 && d-1 <= shading.FresnelLast; d++ {
		bindings[chord{Key0 + Key(d), true}] = Command{Op: OpSelectFresnel, Index: d - 1}
	}
}

// Decode maps an event to a command. Releases and unbound keys decode to
// OpNone. Escape quits on press regardless of modifiers.
func Decode(ev Event) Command {
	if ev.Key == KeyEscape {
		if ev.Action == Press {
			return Command{Op: OpQuit}
		}
		return Command{}
	}
	if ev.Action != Press && ev.Action != Repeat {
		return Command{}
	}
	return bindings[chord{ev.Key, ev.Shifted()}]
}

// HelpEntry is one row of the controls banner.
type HelpEntry struct {
	Keys   string
	Action string
}

// Help lists the key bindings in display order.
func Help() []HelpEntry {
	return []HelpEntry{
		{"1-7", "select model"},
		{"W / S", "rotate about X (-/+)"},
		{"Q / E", "rotate about Y (-/+)"},
		{"D / A", "rotate about Z (-/+)"},
		{"Z / X", "scale up / down"},
		{"H", "toggle distribution term (enables Beckmann)"},
		{"M", "switch Beckmann / GGX"},
		{"J", "toggle geometric term"},
		{"K", "toggle Fresnel term"},
		{"P", "toggle 1/pi normalization"},
		{"O", "toggle 4(n.l)(n.v) denominator"},
		{"T / Shift+T", "roughness +/-"},
		{"Y / Shift+Y", "ambient +/-"},
		{"U / Shift+U", "specular +/-"},
		{"I / Shift+I", "diffuse +/-"},
		{"R G B / Shift+R G B", "surface color channel +/-"},
		{"Shift+1-9, Shift+0", "Fresnel preset 1-9, last preset"},
		{"Esc", "quit"},
	}
}
