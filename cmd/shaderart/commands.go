package main

import (
	"bufio"
	"cmp"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart"
	"github.com/soypat/shaderart/demo"
	"github.com/soypat/shaderart/glbuild"
	"github.com/soypat/shaderart/gleval"
	"github.com/soypat/shaderart/glrender"
	"github.com/soypat/shaderart/raymarch"
	"github.com/soypat/shaderart/vm"
)

func runList(ctx context.Context, log *slog.Logger, args []string) error {
	fs := newFlagSet("list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, name := range demo.Names() {
		fmt.Println(name)
	}
	return nil
}

// loadDemo looks up the named demo and applies the configuration file if any.
func loadDemo(name, configPath string) (demo.Demo, error) {
	d, err := demo.Lookup(name)
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		return d, nil
	}
	cfg, err := demo.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	err = cfg.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("configuring %s: %w", name, err)
	}
	return d, nil
}

func runRender(ctx context.Context, log *slog.Logger, args []string) error {
	fs := newFlagSet("render")
	var (
		name    = fs.String("demo", demo.NameMandelbrot, "demo to render, see list command")
		output  = fs.String("o", "out.png", "output PNG file")
		width   = fs.Int("w", 800, "image width in pixels")
		height  = fs.Int("h", 600, "image height in pixels")
		t       = fs.Float64("t", 0, "frame time in seconds")
		cursorX = fs.Float64("cx", 0, "cursor x in centered coordinates")
		cursorY = fs.Float64("cy", 0, "cursor y in centered coordinates")
		ss      = fs.Int("ss", 1, "supersampling factor")
		workers = fs.Int("workers", 0, "rendering goroutines, 0 uses one per CPU")
		config  = fs.String("config", "", "TOML configuration file")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *width <= 0 || *height <= 0 {
		return fmt.Errorf("bad image size %dx%d", *width, *height)
	}
	d, err := loadDemo(*name, *config)
	if err != nil {
		return err
	}
	frame := demo.NewFrame(*width, *height, float32(*t))
	frame.Cursor = ms2.Vec{X: float32(*cursorX), Y: float32(*cursorY)}
	img := image.NewRGBA(image.Rect(0, 0, *width, *height))
	start := time.Now()
	err = glrender.Renderer{Workers: *workers, Supersample: *ss}.Render(ctx, d, frame, img)
	if err != nil {
		return err
	}
	log.Info("rendered", "demo", d.Name(), "width", *width, "height", *height, "elapsed", time.Since(start))
	return writePNG(*output, img, log)
}

func runGallery(ctx context.Context, log *slog.Logger, args []string) error {
	fs := newFlagSet("gallery")
	var (
		output = fs.String("o", "gallery.png", "output PNG file")
		tile   = fs.Int("tile", 256, "tile size in pixels")
		cols   = fs.Int("cols", 3, "tiles per row")
		t      = fs.Float64("t", 1, "frame time in seconds")
		ss     = fs.Int("ss", 1, "supersampling factor")
		config = fs.String("config", "", "TOML configuration file")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tile <= 0 {
		return errors.New("tile size must be positive")
	}
	names := demo.Names()
	tiles := make([]image.Image, len(names))
	renderer := glrender.Renderer{Supersample: *ss}
	for i, name := range names {
		d, err := loadDemo(name, *config)
		if err != nil {
			return err
		}
		img := image.NewRGBA(image.Rect(0, 0, *tile, *tile))
		start := time.Now()
		err = renderer.Render(ctx, d, demo.NewFrame(*tile, *tile, float32(*t)), img)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", name, err)
		}
		log.Debug("rendered tile", "demo", name, "elapsed", time.Since(start))
		tiles[i] = img
	}
	sheet, err := glrender.ContactSheet(tiles, names, *cols)
	if err != nil {
		return err
	}
	return writePNG(*output, sheet, log)
}

func runGLSL(ctx context.Context, log *slog.Logger, args []string) error {
	fs := newFlagSet("glsl")
	var (
		name    = fs.String("demo", demo.NameSDF2D, "sdf2d or sdf3d")
		output  = fs.String("o", "", "output GLSL file, standard output if empty")
		config  = fs.String("config", "", "TOML configuration file")
		shorten = fs.Int("shorten", 0, "shorten node function names longer than this, 0 keeps them")
		preview = fs.String("preview", "", "also evaluate the sdf2d scene on the CPU into this PNG file")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	d, err := loadDemo(*name, *config)
	if err != nil {
		return err
	}
	var bld shaderart.Builder
	bld.SetFlags(shaderart.FlagNoDimensionPanic)
	prog := glbuild.NewDefaultProgrammer()
	w, closeOutput, err := openOutput(*output)
	if err != nil {
		return err
	}
	defer closeOutput()

	switch d := d.(type) {
	case *demo.SDF2D:
		s, err := d.Scene2D(&bld)
		if err != nil {
			return err
		}
		if *shorten > 0 {
			if err = glbuild.ShortenNames2D(&s, *shorten); err != nil {
				return err
			}
		}
		log.Debug("scene", "tree", glbuild.FormatShader(s))
		if _, err = prog.WriteFragSDF2(w, s); err != nil {
			return err
		}
		if *preview != "" {
			img, err := glrender.RenderShader2D(s, 512, nil)
			if err != nil {
				return err
			}
			if err = writePNG(*preview, img, log); err != nil {
				return err
			}
		}
	case *demo.SDF3D:
		s, err := d.Scene3D(&bld)
		if err != nil {
			return err
		}
		if *shorten > 0 {
			if err = glbuild.ShortenNames3D(&s, *shorten); err != nil {
				return err
			}
		}
		log.Debug("scene", "tree", glbuild.FormatShader(s))
		m := d.Marcher
		def := raymarch.DefaultMarcher()
		// Zero limits select the defaults, as they do for CPU marching.
		prog.SetMarchLimits(cmp.Or(m.MaxSteps, def.MaxSteps), cmp.Or(m.MaxDist, def.MaxDist), cmp.Or(m.SurfaceEpsilon, def.SurfaceEpsilon))
		if _, err = prog.WriteFragRaymarchSDF3(w, s); err != nil {
			return err
		}
	default:
		return fmt.Errorf("demo %s has no GLSL scene, use %s or %s", d.Name(), demo.NameSDF2D, demo.NameSDF3D)
	}
	return closeOutput()
}

func runSPIRV(ctx context.Context, log *slog.Logger, args []string) error {
	fs := newFlagSet("spirv")
	var (
		output = fs.String("o", "interpret.spv", "output SPIR-V file")
		wgsl   = fs.String("wgsl", "", "also write the WGSL source to this file")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *wgsl != "" {
		if err := os.WriteFile(*wgsl, []byte(vm.WGSL()), 0o644); err != nil {
			return err
		}
	}
	start := time.Now()
	words, err := vm.CompileSPIRV()
	if err != nil {
		return err
	}
	buf := make([]byte, 0, 4*len(words))
	for _, word := range words {
		buf = binary.LittleEndian.AppendUint32(buf, word)
	}
	err = os.WriteFile(*output, buf, 0o644)
	if err != nil {
		return err
	}
	log.Info("compiled interpreter kernel", "file", *output, "words", len(words), "elapsed", time.Since(start))
	return nil
}

func runStats(ctx context.Context, log *slog.Logger, args []string) error {
	fs := newFlagSet("stats")
	var (
		shapeName = fs.String("shape", "sphere", "3D shape: sphere, cuboid, capsule, torus or plane")
		res       = fs.Int("res", 128, "camera grid resolution per side")
		maxSteps  = fs.Int("steps", raymarch.DefaultMaxSteps, "march step budget")
		eps       = fs.Float64("eps", raymarch.DefaultSurfaceEpsilon, "surface epsilon")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *res <= 0 {
		return errors.New("resolution must be positive")
	}
	shape, err := demo.ParseShape3D(*shapeName)
	if err != nil {
		return err
	}
	var bld shaderart.Builder
	bld.SetFlags(shaderart.FlagNoDimensionPanic)
	params := demo.DefaultShapeParams3D()
	node, err := shape.Scene3D(&bld, &params[shape])
	if err != nil {
		return err
	}
	sdf, err := gleval.NewCPUSDF3(node)
	if err != nil {
		return err
	}
	cam := raymarch.Camera{Eye: ms3.Vec{X: 3, Y: 2, Z: 5}, FOV: math32.Pi / 3}
	n := *res * *res
	ro := make([]ms3.Vec, n)
	rd := make([]ms3.Vec, n)
	grid := demo.NewFrame(*res, *res, 0)
	for j := 0; j < *res; j++ {
		for i := 0; i < *res; i++ {
			uv := grid.UV(ms2.Vec{X: float32(i) + 0.5, Y: float32(j) + 0.5})
			ro[j**res+i], rd[j**res+i] = cam.Ray(uv)
		}
	}
	marcher := raymarch.Marcher{MaxSteps: *maxSteps, SurfaceEpsilon: float32(*eps)}
	if err = marcher.Validate(); err != nil {
		return err
	}
	results := make([]raymarch.Result, n)
	start := time.Now()
	// The evaluator's own pool is shared by the marcher and the node tree.
	err = marcher.MarchBatch(sdf, ro, rd, results, sdf)
	if err != nil {
		return err
	}
	if err = sdf.VecPool().AssertAllReleased(); err != nil {
		return err
	}
	elapsed := time.Since(start)
	steps, hits := raymarch.StepCounts(nil, results)
	sum := raymarch.Summarize(steps)
	log.Info("march statistics", "shape", shape, "rays", n, "hits", hits, "elapsed", elapsed,
		"mean", sum.Mean, "stddev", sum.StdDev, "median", sum.Median, "p95", sum.P95, "min", sum.Min, "max", sum.Max)
	return nil
}

func writePNG(filename string, img image.Image, log *slog.Logger) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	bw := bufio.NewWriter(fp)
	err = png.Encode(bw, img)
	if err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	log.Info("wrote image", "file", filename, "size", img.Bounds().Size())
	return fp.Close()
}

// openOutput returns a writer to filename or standard output if filename is
// empty. The returned close function is safe to call more than once.
func openOutput(filename string) (io.Writer, func() error, error) {
	if filename == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	fp, err := os.Create(filename)
	if err != nil {
		return nil, nil, err
	}
	bw := bufio.NewWriter(fp)
	closed := false
	return bw, func() error {
		if closed {
			return nil
		}
		closed = true
		if err := bw.Flush(); err != nil {
			fp.Close()
			return err
		}
		return fp.Close()
	}, nil
}
