// Package config holds the viewer settings: built-in defaults, an optional
// TOML overlay and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"

	"brdf-viewer/input"
	"brdf-viewer/scene"
	"brdf-viewer/shading"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	ModelDir   string   `toml:"model_dir"`
	Extensions []string `toml:"extensions"`
	Watch      bool     `toml:"watch"`

	// Primitives are built-in shapes added after the directory models.
	Primitives []string `toml:"primitives"`

	// SharedParameters edits one parameter set used by every model. When
	// false each model keeps its own.
	SharedParameters bool `toml:"shared_parameters"`
	DrawAll          bool `toml:"draw_all"`

	ClearColor [3]float32 `toml:"clear_color"`

	Window   Window   `toml:"window"`
	Controls Controls `toml:"controls"`
	Shading  Shading  `toml:"shading"`
	Camera   Camera   `toml:"camera"`
	Lights   []Light  `toml:"lights"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type Controls struct {
	Step          float32 `toml:"step"`
	RotationSpeed float32 `toml:"rotation_speed_deg"`
	ScaleSpeed    float32 `toml:"scale_speed"`
}

type Shading struct {
	Distribution  string     `toml:"distribution"`
	Geometric     bool       `toml:"geometric"`
	Fresnel       bool       `toml:"fresnel"`
	Pi            bool       `toml:"pi"`
	Denominator   bool       `toml:"denominator"`
	Roughness     float32    `toml:"roughness"`
	Ambient       float32    `toml:"ambient"`
	Diffuse       float32    `toml:"diffuse"`
	Specular      float32    `toml:"specular"`
	SurfaceColor  [3]float32 `toml:"surface_color"`
	FresnelPreset int        `toml:"fresnel_preset"`
}

type Camera struct {
	Eye    [3]float32 `toml:"eye"`
	Target [3]float32 `toml:"target"`
	FOV    float32    `toml:"fov_deg"`
	Near   float32    `toml:"near"`
	Far    float32    `toml:"far"`
}

type Light struct {
	Position [3]float32 `toml:"position"`
	Color    [3]float32 `toml:"color"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := shading.DefaultParams()
	cfg := Config{
		ModelDir:         "models",
		Extensions:       []string{".obj", ".gltf", ".glb"},
		SharedParameters: true,
		ClearColor:       [3]float32{0.2, 0.3, 0.3},
		Window: Window{
			Width:  800,
			Height: 800,
			Title:  "BRDF Viewer",
			VSync:  true,
		},
		Controls: Controls{
			Step:          input.DefaultStep,
			RotationSpeed: 5,
			ScaleSpeed:    input.DefaultScaleSpeed,
		},
		Shading: Shading{
			Distribution:  strings.ToLower(p.Distribution.String()),
			Geometric:     p.UseGeometric,
			Fresnel:       p.UseFresnel,
			Pi:            p.UsePi,
			Denominator:   p.UseDenominator,
			Roughness:     p.Roughness,
			Ambient:       p.Ambient,
			Diffuse:       p.Diffuse,
			Specular:      p.Specular,
			SurfaceColor:  p.SurfaceColor,
			FresnelPreset: p.FresnelIndex,
		},
		Camera: Camera{
			Eye:  [3]float32{0, 0.5, 2},
			FOV:  45,
			Near: 0.1,
			Far:  100,
		},
	}
	for _, l := range shading.DefaultLights() {
		cfg.Lights = append(cfg.Lights, Light{Position: l.Position, Color: l.Color})
	}
	return cfg
}

// Load reads the TOML file at path on top of the defaults. Keys the file
// does not set keep their default value; unknown keys are an error. Lists
// given in the file replace the default lists.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	exts, lights := cfg.Extensions, cfg.Lights
	cfg.Extensions, cfg.Lights = nil, nil

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	if cfg.Extensions == nil {
		cfg.Extensions = exts
	}
	if cfg.Lights == nil {
		cfg.Lights = lights
	}
	return cfg, nil
}

// ParseDistribution maps a config name to a distribution.
func ParseDistribution(name string) (shading.Distribution, error) {
	switch strings.ToLower(name) {
	case "beckmann":
		return shading.DistributionBeckmann, nil
	case "ggx":
		return shading.DistributionGGX, nil
	case "none", "off":
		return shading.DistributionNone, nil
	}
	return shading.DistributionNone, fmt.Errorf("%w: unknown distribution %q", ErrInvalid, name)
}

// Validate checks ranges the viewer relies on.
func (c *Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
	}

	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	case c.ModelDir == "":
		return invalid("empty model_dir")
	case len(c.Extensions) == 0:
		return invalid("no model extensions")
	case c.Controls.Step <= 0 || c.Controls.Step > 1:
		return invalid("step %v outside (0, 1]", c.Controls.Step)
	case c.Controls.RotationSpeed <= 0:
		return invalid("rotation speed %v must be positive", c.Controls.RotationSpeed)
	case c.Controls.ScaleSpeed <= 1:
		return invalid("scale speed %v must be greater than 1", c.Controls.ScaleSpeed)
	case !shading.ValidFresnelIndex(c.Shading.FresnelPreset):
		return invalid("fresnel preset %d outside [0, %d]", c.Shading.FresnelPreset, shading.FresnelLast)
	case len(c.Lights) > shading.MaxLights:
		return invalid("%d lights, at most %d supported", len(c.Lights), shading.MaxLights)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return invalid("field of view %v", c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return invalid("clip planes near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return invalid("extension %q must start with a dot", ext)
		}
	}

	for _, name := range c.Primitives {
		if !slices.Contains(scene.PrimitiveNames(), name) {
			return invalid("unknown primitive %q", name)
		}
	}

	if _, err := ParseDistribution(c.Shading.Distribution); err != nil {
		return err
	}

	s := c.Shading
	coefficients := map[string]float32{
		"roughness":       s.Roughness,
		"ambient":         s.Ambient,
		"diffuse":         s.Diffuse,
		"specular":        s.Specular,
		"surface_color.r": s.SurfaceColor[0],
		"surface_color.g": s.SurfaceColor[1],
		"surface_color.b": s.SurfaceColor[2],
	}
	for name, v := range coefficients {
		if v < 0 || v > 1 {
			return invalid("%s %v outside [0, 1]", name, v)
		}
	}
	return nil
}

// Params returns the initial shading parameters. The config must be valid.
func (c *Config) Params() shading.Params {
	d, _ := ParseDistribution(c.Shading.Distribution)
	s := c.Shading

	p := shading.DefaultParams()
	p.Distribution = d
	p.UseGeometric = s.Geometric
	p.UseFresnel = s.Fresnel
	p.UsePi = s.Pi
	p.UseDenominator = s.Denominator
	p.Roughness = s.Roughness
	p.Ambient = s.Ambient
	p.Diffuse = s.Diffuse
	p.Specular = s.Specular
	p.SurfaceColor = s.SurfaceColor
	p.SelectFresnelPreset(s.FresnelPreset)
	return p
}

// ShadingLights converts the configured lights.
func (c *Config) ShadingLights() []shading.Light {
	lights := make([]shading.Light, len(c.Lights))
	for i, l := range c.Lights {
		lights[i] = shading.Light{Position: l.Position, Color: l.Color}
	}
	return lights
}

// NewCamera builds the configured camera.
func (c *Config) NewCamera() *scene.Camera {
	return scene.NewCamera(c.Camera.Eye, c.Camera.Target, c.Camera.FOV, c.Camera.Near, c.Camera.Far)
}

// ApplyControls copies the control speeds to ctrl.
func (c *Config) ApplyControls(ctrl *input.Controller) {
	ctrl.Step = c.Controls.Step
	ctrl.RotationSpeed = mgl32.DegToRad(c.Controls.RotationSpeed)
	ctrl.ScaleSpeed = c.Controls.ScaleSpeed
}

// Overrides are command-line settings applied on top of a loaded config.
// Nil or false fields leave the config untouched.
type Overrides struct {
	ModelDir  *string
	Width     *int
	Height    *int
	PerObject bool
	DrawAll   bool
	Watch     bool

	Primitives []string
}

// Apply writes the set overrides into c.
func (o Overrides) Apply(c *Config) {
	if o.ModelDir != nil {
		c.ModelDir = *o.ModelDir
	}
	if o.Width != nil {
		c.Window.Width = *o.Width
	}
	if o.Height != nil {
		c.Window.Height = *o.Height
	}
	if o.PerObject {
		c.SharedParameters = false
	}
	if o.DrawAll {
		c.DrawAll = true
	}
	if o.Watch {
		c.Watch = true
	}
	c.Primitives = append(c.Primitives, o.Primitives...)
}
