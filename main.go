package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneType string
	samples   int
	depth     int
	width     int
	workers   int
	format    string
	output    string
	seed      int64
}

func main() {
	var opts options
	flag.StringVar(&opts.sceneType, "scene", "default", "Scene type: 'default', 'simple' or 'random'")
	flag.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&opts.depth, "depth", -1, "Maximum bounces per path (-1 = scene default)")
	flag.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&opts.workers, "workers", 0, "Rows rendered in parallel (0 = all CPUs)")
	flag.StringVar(&opts.format, "format", "png", "Output format: 'png' or 'ppm'")
	flag.StringVar(&opts.output, "output", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	flag.Int64Var(&opts.seed, "seed", 0, "Seed for procedural scenes")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if err := run(opts, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene_type>/render_<timestamp>.<format>")
}

// createScene builds the named scene
func createScene(sceneType string, seed int64) (*scene.Scene, error) {
	return scene.Create(sceneType, seed)
}

// run renders the selected scene and writes it to disk
func run(opts options, logger core.Logger) error {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	selectedScene, err := createScene(opts.sceneType, opts.seed)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene (%d objects)...\n", opts.sceneType, selectedScene.GetPrimitiveCount())

	cameraConfig := renderer.MergeCameraConfig(selectedScene.CameraConfig, renderer.CameraConfig{Width: opts.width})
	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return fmt.Errorf("creating camera: %w", err)
	}

	samplingConfig := renderer.MergeSamplingConfig(selectedScene.SamplingConfig, renderer.SamplingConfig{
		SamplesPerPixel: opts.samples,
		NumWorkers:      opts.workers,
	})
	if opts.depth >= 0 {
		samplingConfig.MaxDepth = opts.depth
	}

	raytracer, err := renderer.NewRaytracer(selectedScene.World, camera, samplingConfig, logger)
	if err != nil {
		return fmt.Errorf("creating raytracer: %w", err)
	}

	grid, _, err := raytracer.Render()
	if err != nil {
		return err
	}

	filename := opts.output
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", opts.sceneType, "render_"+timestamp+format.Extension())
	}

	if err := output.SaveFile(filename, grid, format); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}
