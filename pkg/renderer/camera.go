package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	AspectRatio   float64    // Width / height, used when Height is zero
	Width         int        // Image width in pixels
	Height        int        // Image height in pixels (0 = derive from Width and AspectRatio)
	VFov          float64    // Vertical field of view in degrees
	LookFrom      core.Point // Camera position
	LookAt        core.Point // Point the camera looks at
	Up            core.Vec3  // Up direction
	DefocusAngle  float64    // Cone angle in degrees of rays through each pixel (<= 0 disables depth of field)
	FocusDistance float64    // Distance from LookFrom to the plane of perfect focus
}

// DefaultCameraConfig returns a 16:9 camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:   16.0 / 9.0,
		Width:         400,
		VFov:          90,
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		DefocusAngle:  0,
		FocusDistance: 1,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Width != 0 {
		result.Width = override.Width
		// A new width invalidates a height derived for the old one
		result.Height = 0
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.LookFrom != (core.Vec3{}) {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// ImageHeight returns the configured height, or derives it from the width and aspect ratio
func (c CameraConfig) ImageHeight() int {
	if c.Height > 0 {
		return c.Height
	}
	if c.AspectRatio <= 0 {
		return 0
	}
	return max(1, int(float64(c.Width)/c.AspectRatio))
}

// Validate checks that the configuration describes a usable camera
func (c CameraConfig) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("%w: camera width must be positive, got %d", ErrInvalidConfig, c.Width)
	}
	if c.Height < 0 {
		return fmt.Errorf("%w: camera height must not be negative, got %d", ErrInvalidConfig, c.Height)
	}
	if c.Height == 0 && c.AspectRatio <= 0 {
		return fmt.Errorf("%w: aspect ratio must be positive when height is derived, got %g", ErrInvalidConfig, c.AspectRatio)
	}
	if c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("%w: vertical field of view must be in (0, 180) degrees, got %g", ErrInvalidConfig, c.VFov)
	}
	if c.FocusDistance <= 0 {
		return fmt.Errorf("%w: focus distance must be positive, got %g", ErrInvalidConfig, c.FocusDistance)
	}
	forward := c.LookFrom.Subtract(c.LookAt)
	if forward.NearZero() {
		return fmt.Errorf("%w: look-from and look-at are the same point %v", ErrInvalidConfig, c.LookFrom)
	}
	if c.Up.Cross(forward).NearZero() {
		return fmt.Errorf("%w: up vector %v is parallel to the view direction", ErrInvalidConfig, c.Up)
	}
	return nil
}

// Camera generates rays for rendering. It is immutable after construction.
type Camera struct {
	config       CameraConfig
	width        int
	height       int
	center       core.Point // Camera center
	pixel00Loc   core.Point // Location of pixel 0, 0
	pixelDeltaU  core.Vec3  // Offset to pixel to the right
	pixelDeltaV  core.Vec3  // Offset to pixel below
	u, v, w      core.Vec3  // Camera frame basis vectors
	defocusDiskU core.Vec3  // Defocus disk horizontal radius
	defocusDiskV core.Vec3  // Defocus disk vertical radius
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	width := config.Width
	height := config.ImageHeight()
	center := config.LookFrom

	// Determine viewport dimensions
	theta := degreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * (float64(width) / float64(height))

	// Calculate the u,v,w unit basis vectors for the camera coordinate frame
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	// Horizontal and vertical delta vectors from pixel to pixel
	pixelDeltaU := viewportU.Divide(float64(width))
	pixelDeltaV := viewportV.Divide(float64(height))

	// Location of the upper left pixel center
	viewportUpperLeft := center.
		Subtract(w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	// Camera defocus disk basis vectors
	defocusRadius := config.FocusDistance * math.Tan(degreesToRadians(config.DefocusAngle/2))

	return &Camera{
		config:       config,
		width:        width,
		height:       height,
		center:       center,
		pixel00Loc:   pixel00Loc,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		u:            u,
		v:            v,
		w:            w,
		defocusDiskU: u.Multiply(defocusRadius),
		defocusDiskV: v.Multiply(defocusRadius),
	}, nil
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.height
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetCameraForward returns the direction the camera is looking
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// GetRay returns a ray for pixel (x, y), jittered within the pixel square and
// originating from the defocus disk when depth of field is enabled
func (c *Camera) GetRay(x, y int, sampler core.Sampler) core.Ray {
	offset := sampleSquare(sampler)
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(x) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(y) + offset.Y))

	rayOrigin := c.center
	if c.config.DefocusAngle > 0 {
		rayOrigin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(rayOrigin, pixelSample.Subtract(rayOrigin))
}

// PixelCenter returns the world-space location of the center of pixel (x, y)
func (c *Camera) PixelCenter(x, y int) core.Point {
	return c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(x))).
		Add(c.pixelDeltaV.Multiply(float64(y)))
}

// sampleSquare returns a random offset in the [-0.5,-0.5]-[+0.5,+0.5) unit square
func sampleSquare(sampler core.Sampler) core.Vec2 {
	s := sampler.Get2D()
	return core.NewVec2(s.X-0.5, s.Y-0.5)
}

// defocusDiskSample returns a random point on the camera defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Point {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
