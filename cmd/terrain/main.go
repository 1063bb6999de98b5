// terrain builds procedural terrain meshes from a pipeline document.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/terrain-constructor/internal/config"
	"github.com/Faultbox/terrain-constructor/internal/export"
	"github.com/Faultbox/terrain-constructor/internal/logger"
	"github.com/Faultbox/terrain-constructor/internal/operation"
	"github.com/Faultbox/terrain-constructor/internal/pipeline"
	"github.com/Faultbox/terrain-constructor/internal/preview"
	"github.com/Faultbox/terrain-constructor/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build", "b":
		cmdBuild(args)
	case "ops":
		cmdOps()
	case "init":
		cmdInit(args)
	case "serve":
		cmdServe(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terrain - procedural terrain mesh builder

Usage:
  terrain <command> [options]

Commands:
  build              Run the pipeline, export OBJ and a preview image
  ops                List operations and their default parameters
  init [path]        Write a starter pipeline document and config
  serve              Serve the pipeline over a websocket at /ws

Options:
  -config <file>     Config file (default ./config.yaml, then user config dir)
  -pipeline <file>   Pipeline document (default pipeline.yaml)
  -seed <n>          Seed to build with, -1 draws a fresh one
  -upto <n>          Build only up to stage n (1-based)
  -retrieve          Write the used seed back to the pipeline document
  -out <dir>         Output directory
  -mode <mode>       Preview mode: wireframe, flat, smooth
  -format <fmt>      Preview format: png, webp, tga
  -no-preview        Skip the preview image
  -addr <addr>       Server listen address
  -global            With init, write the config to the user config directory
  -debug             Enable debug logging

Examples:
  terrain init
  terrain build -seed 1234 -mode flat
  terrain build -upto 2 -format webp -out renders
  terrain serve -addr :8080`)
}

// setup parses flags, loads config and starts the logger.
func setup(args []string) *config.Config {
	if err := config.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	return cfg
}

func fatal(msg string, err error) {
	logger.Error(msg, zap.Error(err))
	logger.Sync()
	os.Exit(1)
}

func loadSession(cfg *config.Config) (*pipeline.Session, error) {
	doc, err := pipeline.LoadDocument(cfg.Pipeline.Path)
	if err != nil {
		return nil, fmt.Errorf("loading pipeline: %w", err)
	}
	session, err := doc.Session()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Pipeline.Path, err)
	}
	if cfg.Build.Seed != nil {
		session.SetSeed(*cfg.Build.Seed)
	}
	return session, nil
}

func cmdBuild(args []string) {
	cfg := setup(args)
	defer logger.Sync()

	session, err := loadSession(cfg)
	if err != nil {
		fatal("failed to load pipeline", err)
	}

	if cfg.Build.UpTo > 0 {
		err = session.BuildUpTo(cfg.Build.UpTo - 1)
	} else {
		err = session.Build()
	}
	if err != nil {
		fatal("build failed", err)
	}

	for i, st := range session.Stages() {
		fmt.Printf("%2d. %-26s %8.3fs\n", i+1, st.Op.Kind(), st.Elapsed.Seconds())
	}
	m := session.Mesh()
	fmt.Printf("normals calculation time: %.3fs\n", session.NormalsTime().Seconds())
	fmt.Printf("seed: %d  vertices: %d  triangles: %d\n", session.LastSeed(), len(m.Vertices), m.TriangleCount())

	if cfg.Export.OBJ {
		path, err := export.SaveOBJ(cfg.Export.Dir, session.LastSeed(), m)
		if err != nil {
			fatal("export failed", err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	if cfg.Preview.Enabled {
		path, err := renderPreview(cfg, session)
		if err != nil {
			fatal("preview failed", err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	if cfg.Build.RetrieveSeed {
		session.Retrieve()
		if err := pipeline.DocumentOf(session).Save(cfg.Pipeline.Path); err != nil {
			fatal("failed to save pipeline", err)
		}
		fmt.Printf("pinned seed %d in %s\n", session.Seed(), cfg.Pipeline.Path)
	}
}

func renderPreview(cfg *config.Config, session *pipeline.Session) (string, error) {
	mode, err := preview.ParseMode(cfg.Preview.Mode)
	if err != nil {
		return "", err
	}
	format, err := preview.ParseFormat(cfg.Preview.Format)
	if err != nil {
		return "", err
	}

	img, err := preview.Render(session.Mesh(), preview.Options{
		Size:        cfg.Preview.Size,
		Supersample: cfg.Preview.Supersample,
		Mode:        mode,
		Yaw:         cfg.Preview.Yaw,
		Pitch:       cfg.Preview.Pitch,
		Material: preview.Material{
			Threshold:  cfg.Preview.MaterialThreshold,
			Smoothness: cfg.Preview.MaterialSmoothness,
		},
	})
	if err != nil {
		return "", err
	}
	return preview.Save(cfg.Export.Dir, session.LastSeed(), img, format)
}

func cmdOps() {
	for _, op := range operation.Defaults() {
		fmt.Printf("%-20s %-26s %s\n", op.Kind().Name(), op.Kind(), describe(operation.SpecOf(op)))
	}
}

// describe renders the parameters of spec as "key: value, ...".
func describe(spec operation.Spec) string {
	spec.Op = ""
	data, err := yaml.Marshal(spec)
	if err != nil {
		return ""
	}
	var params []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line != "" && !strings.HasPrefix(line, "op:") {
			params = append(params, line)
		}
	}
	return strings.Join(params, ", ")
}

func cmdInit(args []string) {
	cfg := setup(args)
	defer logger.Sync()

	path := cfg.Pipeline.Path
	if rest := config.Args(); len(rest) > 0 {
		path = rest[0]
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "%s already exists, leaving it alone\n", path)
	} else if err := pipeline.DefaultDocument().Save(path); err != nil {
		fatal("failed to write pipeline", err)
	} else {
		fmt.Printf("wrote %s\n", path)
	}

	configPath := "config.yaml"
	if config.Global() {
		configPath = config.DefaultPath()
	}
	switch err := config.Default().SaveTo(configPath, false); {
	case errors.Is(err, os.ErrExist):
		fmt.Fprintf(os.Stderr, "%s already exists, leaving it alone\n", configPath)
	case err != nil:
		fatal("failed to write config", err)
	default:
		fmt.Printf("wrote %s\n", configPath)
	}
}

func cmdServe(args []string) {
	cfg := setup(args)
	defer logger.Sync()

	session, err := loadSession(cfg)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("pipeline document not found, starting empty", zap.String("path", cfg.Pipeline.Path))
		session, err = pipeline.NewSession(), nil
	}
	if err != nil {
		fatal("failed to load pipeline", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(session).ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		fatal("server error", err)
	}
	logger.Info("server stopped")
}
