// Command shaderart renders the shader demos on the CPU and generates the
// GPU sources of the Builder scenes and the bytecode interpreter.
//
// Usage:
//
//	shaderart [-v] <command> [flags]
//
// Commands are list, render, gallery, glsl, spirv and stats. Run
// shaderart <command> -h for the flags of each command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"

	"github.com/soypat/shaderart/glrender"
)

type command struct {
	name  string
	short string
	run   func(ctx context.Context, log *slog.Logger, args []string) error
}

var commands = []command{
	{name: "list", short: "list registered demos", run: runList},
	{name: "render", short: "render a demo frame to PNG", run: runRender},
	{name: "gallery", short: "render every demo into a labelled contact sheet", run: runGallery},
	{name: "glsl", short: "write the GLSL fragment shader of the sdf2d or sdf3d scene", run: runGLSL},
	{name: "spirv", short: "compile the interpreter compute kernel to SPIR-V", run: runSPIRV},
	{name: "stats", short: "sphere trace a 3D shape and report step statistics", run: runStats},
}

var errUsage = errors.New("usage")

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := run(ctx, log, flag.Args())
	if errors.Is(err, errUsage) {
		usage()
		os.Exit(2)
	} else if err != nil {
		log.Error("command failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	glrender.SetLogger(log)
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(ctx, log.With("cmd", cmd.name), args[1:])
		}
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: shaderart [-v] <command> [flags]\n\ncommands:\n")
	sorted := append([]command(nil), commands...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })
	for _, cmd := range sorted {
		fmt.Fprintf(out, "  %-8s %s\n", cmd.name, cmd.short)
	}
	fmt.Fprintln(out)
	flag.PrintDefaults()
}

// newFlagSet returns a flag set whose errors are returned instead of exiting.
func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet("shaderart "+name, flag.ContinueOnError)
}
