package renderer

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// ErrInvalidConfig is wrapped by every configuration validation error
var ErrInvalidConfig = errors.New("invalid render configuration")

// colorScale maps [0,1] onto the 256 byte values without letting 1.0 overflow
const colorScale = 255.9999

// Pixel is an 8-bit RGB triple
type Pixel [3]uint8

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum number of bounces after the camera ray
	NumWorkers      int // Rows rendered concurrently (0 = GOMAXPROCS)
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      0,
	}
}

// MergeSamplingConfig returns base with every non-zero field of override applied.
// Zero means unset here, so a MaxDepth of 0 must be assigned directly.
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.NumWorkers != 0 {
		result.NumWorkers = override.NumWorkers
	}
	return result
}

// Validate checks the sampling configuration
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// SamplerFactory returns the sampler that renders row y.
// Every call must return an independent sampler.
type SamplerFactory func(row int) core.Sampler

// NewSeededSamplerFactory returns a factory whose row samplers are seeded from seed + row.
// The same seed always yields the same streams.
func NewSeededSamplerFactory(seed int64) SamplerFactory {
	return func(row int) core.Sampler {
		return core.NewSeededSampler(seed + int64(row))
	}
}

// Raytracer renders a world through a camera into a pixel grid
type Raytracer struct {
	world      geometry.Hittable
	camera     *Camera
	config     SamplingConfig
	integrator integrator.Integrator
	samplers   SamplerFactory
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. The world, camera and materials must not be
// modified while rendering.
func NewRaytracer(world geometry.Hittable, camera *Camera, config SamplingConfig, logger core.Logger) (*Raytracer, error) {
	if world == nil {
		return nil, fmt.Errorf("%w: world is nil", ErrInvalidConfig)
	}
	if camera == nil {
		return nil, fmt.Errorf("%w: camera is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Raytracer{
		world:      world,
		camera:     camera,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(),
		logger:     logger,
	}, nil
}

// SetSamplerFactory replaces the per-row sampler source. Nil restores the default,
// which seeds every render differently.
func (rt *Raytracer) SetSamplerFactory(factory SamplerFactory) {
	rt.samplers = factory
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// Render traces every pixel and returns the filled grid
func (rt *Raytracer) Render() (*Grid[Pixel], RenderStats, error) {
	width, height := rt.camera.Width(), rt.camera.Height()

	grid, err := NewGrid[Pixel](width, height)
	if err != nil {
		return nil, RenderStats{}, err
	}

	workers := rt.config.NumWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	samplers := rt.samplers
	if samplers == nil {
		samplers = NewSeededSamplerFactory(time.Now().UnixNano())
	}

	rt.logger.Printf("Rendering %dx%d, %d samples per pixel, max depth %d (using %d workers)...\n",
		width, height, rt.config.SamplesPerPixel, rt.config.MaxDepth, workers)

	startTime := time.Now()
	err = grid.FillRows(workers, func(y int, row []Pixel) {
		sampler := samplers(y)
		for x := range row {
			row[x] = rt.RenderPixel(x, y, sampler)
		}
	})
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render failed: %w", err)
	}

	stats := RenderStats{
		TotalPixels:     grid.Size(),
		TotalSamples:    grid.Size() * rt.config.SamplesPerPixel,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		MaxDepth:        rt.config.MaxDepth,
		Workers:         workers,
		Elapsed:         time.Since(startTime),
	}

	rt.logger.Printf("Render completed in %v (%d samples)\n", stats.Elapsed, stats.TotalSamples)

	return grid, stats, nil
}

// RenderPixel estimates pixel (x, y) and converts it to bytes
func (rt *Raytracer) RenderPixel(x, y int, sampler core.Sampler) Pixel {
	return ToPixel(rt.EstimatePixel(x, y, sampler))
}

// EstimatePixel averages SamplesPerPixel independent path samples through pixel (x, y)
func (rt *Raytracer) EstimatePixel(x, y int, sampler core.Sampler) core.Color {
	var ps PixelStats
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		ray := rt.camera.GetRay(x, y, sampler)
		ps.AddSample(rt.integrator.RayColor(ray, rt.world, rt.traceDepth(), sampler))
	}
	return ps.GetColor()
}

// traceDepth is the recursion budget handed to the integrator: the camera ray plus MaxDepth bounces
func (rt *Raytracer) traceDepth() int {
	return rt.config.MaxDepth + 1
}

// ToPixel gamma-corrects a linear color (gamma 2) and quantizes it to 8 bits per channel
func ToPixel(color core.Color) Pixel {
	return Pixel{
		quantize(color.X),
		quantize(color.Y),
		quantize(color.Z),
	}
}

func quantize(channel float64) uint8 {
	if math.IsNaN(channel) {
		channel = 0
	}
	channel = max(0, min(1, channel))
	return uint8(math.Sqrt(channel) * colorScale)
}
