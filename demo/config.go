package demo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/dist"
	"github.com/soypat/shaderart/vm"
)

// Config holds per-demo parameters decoded from TOML. Every section and
// field is optional; absent fields keep the demo defaults.
//
//	[sdf2d]
//	shape = "rounded_rectangle"
//	[sdf2d.params.rounded_rectangle]
//	dim = [0.8, 0.4]
//	onion = 0.02
type Config struct {
	Mandelbrot  *MandelbrotConfig  `toml:"mandelbrot"`
	SDF2D       *SDF2DConfig       `toml:"sdf2d"`
	SDF3D       *SDF3DConfig       `toml:"sdf3d"`
	RayMarching *RayMarchingConfig `toml:"ray_marching"`
	Harmonics   *HarmonicsConfig   `toml:"spherical_harmonics"`
	Hydrogen    *HydrogenConfig    `toml:"hydrogen"`
	Koch        *KochConfig        `toml:"koch"`
	Interpreter *InterpreterConfig `toml:"interpreter"`
	PGAMotor    *PGAMotorConfig    `toml:"pga_motor"`
}

type MandelbrotConfig struct {
	Zoom       *float32    `toml:"zoom"`
	Center     *[2]float32 `toml:"center"`
	Iterations *int        `toml:"iterations"`
}

type SDF2DConfig struct {
	Shape  string                   `toml:"shape"`
	Scale  *float32                 `toml:"scale"`
	Params map[string]Shape2DConfig `toml:"params"`
}

// Shape2DConfig is the host side form of [ShapeParams2D]. Unset optional
// fields keep their current value.
type Shape2DConfig struct {
	Radius        *float32     `toml:"radius"`
	Dim           *[2]float32  `toml:"dim"`
	Angle         *float32     `toml:"angle"`
	Points        [][2]float32 `toml:"points"`
	Sides         *int32       `toml:"sides"`
	Onion         *float32     `toml:"onion"`
	Pad           *float32     `toml:"pad"`
	Repeat        *float32     `toml:"repeat"`
	AngularCount  *int32       `toml:"angular_count"`
	AngularRadius *float32     `toml:"angular_radius"`
}

type SDF3DConfig struct {
	Shape    string                   `toml:"shape"`
	Eye      *[3]float32              `toml:"eye"`
	Ambient  *float32                 `toml:"ambient"`
	Softness *float32                 `toml:"softness"`
	MaxSteps *int                     `toml:"max_steps"`
	Params   map[string]Shape3DConfig `toml:"params"`
}

type Shape3DConfig struct {
	Radius *float32    `toml:"radius"`
	Minor  *float32    `toml:"minor"`
	Dim    *[3]float32 `toml:"dim"`
	A      *[3]float32 `toml:"a"`
	B      *[3]float32 `toml:"b"`
	Normal *[3]float32 `toml:"normal"`
	Offset *float32    `toml:"offset"`
	Onion  *float32    `toml:"onion"`
	Pad    *float32    `toml:"pad"`
}

type RayMarchingConfig struct {
	Bounces     *int         `toml:"bounces"`
	Radius      *float32     `toml:"radius"`
	Reflectance *float32     `toml:"reflectance"`
	Spheres     [][3]float32 `toml:"spheres"`
}

type HarmonicsConfig struct {
	L         *int     `toml:"l"`
	M         *int     `toml:"m"`
	Size      *float32 `toml:"size"`
	StepScale *float32 `toml:"step_scale"`
}

type HydrogenConfig struct {
	N        *int     `toml:"n"`
	L        *int     `toml:"l"`
	M        *int     `toml:"m"`
	Extent   *float32 `toml:"extent"`
	Exposure *float32 `toml:"exposure"`
}

type KochConfig struct {
	Iterations *int     `toml:"iterations"`
	Scale      *float32 `toml:"scale"`
}

type InterpreterConfig struct {
	// Program is assembly text as accepted by [vm.Parse].
	Program string   `toml:"program"`
	Scale   *float32 `toml:"scale"`
}

type PGAMotorConfig struct {
	Dim   *[2]float32 `toml:"dim"`
	Orbit *float32    `toml:"orbit"`
	Spin  *float32    `toml:"spin"`
}

// DecodeConfig decodes a TOML configuration. Keys that do not match any
// configuration field are reported with an error wrapping [ErrUnknownKey].
func DecodeConfig(r io.Reader) (*Config, error) {
	var cfg Config
	err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w:\n%s", ErrUnknownKey, strict.String())
		}
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// LoadConfig decodes the TOML configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Apply sets the fields of d present in the section of c matching d.
// Demos without a section are left unchanged.
func (c *Config) Apply(d Demo) error {
	switch d := d.(type) {
	case *Mandelbrot:
		return c.Mandelbrot.apply(d)
	case *SDF2D:
		return c.SDF2D.apply(d)
	case *SDF3D:
		return c.SDF3D.apply(d)
	case *RayMarching:
		return c.RayMarching.apply(d)
	case *Harmonics:
		return c.Harmonics.apply(d)
	case *Hydrogen:
		return c.Hydrogen.apply(d)
	case *Koch:
		return c.Koch.apply(d)
	case *Interpreter:
		return c.Interpreter.apply(d)
	case *PGAMotor:
		return c.PGAMotor.apply(d)
	}
	return fmt.Errorf("%w %q has no configuration", ErrUnknownDemo, d.Name())
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// setOptional stores src in dst. The unset sentinel is rejected since it
// can not be told apart from an absent value.
func setOptional(key string, dst *dist.Optional, src *float32) error {
	if src == nil {
		return nil
	}
	if dist.Optional(*src) == dist.Unset {
		return fmt.Errorf("%s: value %g is reserved for unset", key, *src)
	}
	*dst = dist.Some(*src)
	return nil
}

func vec2(v [2]float32) ms2.Vec { return ms2.Vec{X: v[0], Y: v[1]} }

func vec3(v [3]float32) ms3.Vec { return ms3.Vec{X: v[0], Y: v[1], Z: v[2]} }

func setVec2(dst *ms2.Vec, src *[2]float32) {
	if src != nil {
		*dst = vec2(*src)
	}
}

func setVec3(dst *ms3.Vec, src *[3]float32) {
	if src != nil {
		*dst = vec3(*src)
	}
}

func (c *MandelbrotConfig) apply(d *Mandelbrot) error {
	if c == nil {
		return nil
	}
	set(&d.Zoom, c.Zoom)
	setVec2(&d.Center, c.Center)
	set(&d.Iterations, c.Iterations)
	if d.Iterations < 1 || d.Iterations > MaxIterations {
		return fmt.Errorf("mandelbrot iterations %d out of range [1,%d]", d.Iterations, MaxIterations)
	}
	return nil
}

func (c *SDF2DConfig) apply(d *SDF2D) error {
	if c == nil {
		return nil
	}
	if c.Shape != "" {
		s, err := ParseShape2D(c.Shape)
		if err != nil {
			return err
		}
		d.Shape = s
	}
	set(&d.Scale, c.Scale)
	for name, pc := range c.Params {
		s, err := ParseShape2D(name)
		if err != nil {
			return fmt.Errorf("sdf2d params: %w", err)
		}
		if len(pc.Points) > len(d.Params[s].Points) {
			return fmt.Errorf("sdf2d params %s: at most %d points", name, len(d.Params[s].Points))
		}
		if err = pc.applyTo(&d.Params[s]); err != nil {
			return fmt.Errorf("sdf2d params %s: %w", name, err)
		}
	}
	return nil
}

func (c *Shape2DConfig) applyTo(p *ShapeParams2D) error {
	set(&p.Radius, c.Radius)
	setVec2(&p.Dim, c.Dim)
	set(&p.Angle, c.Angle)
	for i, pt := range c.Points {
		p.Points[i] = vec2(pt)
	}
	set(&p.Sides, c.Sides)
	set(&p.AngularCount, c.AngularCount)
	set(&p.AngularRadius, c.AngularRadius)
	return errors.Join(
		setOptional("onion", &p.Onion, c.Onion),
		setOptional("pad", &p.Pad, c.Pad),
		setOptional("repeat", &p.Repeat, c.Repeat),
	)
}

func (c *SDF3DConfig) apply(d *SDF3D) error {
	if c == nil {
		return nil
	}
	if c.Shape != "" {
		s, err := ParseShape3D(c.Shape)
		if err != nil {
			return err
		}
		d.Shape = s
	}
	setVec3(&d.Camera.Eye, c.Eye)
	set(&d.Ambient, c.Ambient)
	set(&d.Softness, c.Softness)
	set(&d.Marcher.MaxSteps, c.MaxSteps)
	for name, pc := range c.Params {
		s, err := ParseShape3D(name)
		if err != nil {
			return fmt.Errorf("sdf3d params: %w", err)
		}
		p := &d.Params[s]
		set(&p.Radius, pc.Radius)
		set(&p.Minor, pc.Minor)
		setVec3(&p.Dim, pc.Dim)
		setVec3(&p.A, pc.A)
		setVec3(&p.B, pc.B)
		setVec3(&p.Normal, pc.Normal)
		set(&p.Offset, pc.Offset)
		err = errors.Join(
			setOptional("onion", &p.Onion, pc.Onion),
			setOptional("pad", &p.Pad, pc.Pad),
		)
		if err != nil {
			return fmt.Errorf("sdf3d params %s: %w", name, err)
		}
	}
	return d.Marcher.Validate()
}

func (c *RayMarchingConfig) apply(d *RayMarching) error {
	if c == nil {
		return nil
	}
	set(&d.Bounces, c.Bounces)
	set(&d.Radius, c.Radius)
	set(&d.Reflectance, c.Reflectance)
	if c.Spheres != nil {
		d.Spheres = d.Spheres[:0]
		for _, s := range c.Spheres {
			d.Spheres = append(d.Spheres, vec3(s))
		}
	}
	return nil
}

func (c *HarmonicsConfig) apply(d *Harmonics) error {
	if c == nil {
		return nil
	}
	set(&d.L, c.L)
	set(&d.M, c.M)
	set(&d.Size, c.Size)
	set(&d.StepScale, c.StepScale)
	if d.L < 0 || d.M < -d.L || d.M > d.L {
		return fmt.Errorf("spherical harmonic l=%d m=%d: need l >= 0 and |m| <= l", d.L, d.M)
	}
	return nil
}

func (c *HydrogenConfig) apply(d *Hydrogen) error {
	if c == nil {
		return nil
	}
	set(&d.N, c.N)
	set(&d.L, c.L)
	set(&d.M, c.M)
	set(&d.Extent, c.Extent)
	set(&d.Exposure, c.Exposure)
	if !d.Valid() {
		return fmt.Errorf("bad hydrogen quantum numbers n=%d l=%d m=%d", d.N, d.L, d.M)
	}
	return nil
}

func (c *KochConfig) apply(d *Koch) error {
	if c == nil {
		return nil
	}
	set(&d.Iterations, c.Iterations)
	set(&d.Scale, c.Scale)
	if d.Iterations < 0 || d.Iterations > MaxKochIterations {
		return fmt.Errorf("koch iterations %d out of range [0,%d]", d.Iterations, MaxKochIterations)
	}
	return nil
}

func (c *InterpreterConfig) apply(d *Interpreter) error {
	if c == nil {
		return nil
	}
	set(&d.Scale, c.Scale)
	if c.Program == "" {
		return nil
	}
	prog, err := vm.Parse(c.Program)
	if err != nil {
		return err
	}
	return d.SetProgram(prog)
}

func (c *PGAMotorConfig) apply(d *PGAMotor) error {
	if c == nil {
		return nil
	}
	setVec2(&d.Dim, c.Dim)
	set(&d.Orbit, c.Orbit)
	set(&d.Spin, c.Spin)
	return nil
}
