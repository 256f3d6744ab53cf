package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var defaultInterval = core.NewInterval(0.001, math.Inf(1))

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, defaultInterval)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, defaultInterval)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_Properties(t *testing.T) {
	sampler := core.NewSeededSampler(11)
	sphere := NewSphere(core.NewVec3(0.3, -0.2, -2), 0.75, nil)
	interval := core.NewInterval(0.001, 100)

	hits := 0
	for i := 0; i < 5000; i++ {
		origin := core.RandomVec3(sampler, -3, 3)
		// Strictly inside the ball: 0.7 < radius
		target := sphere.Center.Add(core.RandomUnitVector(sampler).Multiply(0.7 * sampler.Get1D()))
		ray := core.NewRay(origin, target.Subtract(origin))

		hit, isHit := sphere.Hit(ray, interval)
		if !isHit {
			continue
		}
		hits++

		if !interval.Surrounds(hit.T) {
			t.Fatalf("t=%f outside interval %v", hit.T, interval)
		}
		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit normal, got length %f", hit.Normal.Length())
		}
		if hit.Normal.Dot(ray.Direction) > 0 {
			t.Fatalf("Normal %v not facing against ray %v", hit.Normal, ray.Direction)
		}
		if hit.FrontFace && hit.Normal.Dot(ray.Direction) >= 0 {
			t.Fatalf("Front face hit with normal %v along ray %v", hit.Normal, ray.Direction)
		}
		if math.Abs(hit.Point.Subtract(sphere.Center).Length()-sphere.Radius) > 1e-9 {
			t.Fatalf("Hit point %v not on sphere surface", hit.Point)
		}
	}

	// Targets inside the sphere always intersect
	if hits != 5000 {
		t.Errorf("Expected every ray aimed inside the sphere to hit, got %d of 5000", hits)
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, defaultInterval)
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}

	expectedPoint := core.NewVec3(1, 0, 0)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Upper bound before the sphere
	hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, 0.5))
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Lower bound past the sphere
	hit, isHit = sphere.Hit(ray, core.NewInterval(3.5, 1000.0))
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Lower bound between the roots falls back to the far root
	hit, isHit = sphere.Hit(ray, core.NewInterval(1.5, 1000.0))
	if !isHit {
		t.Fatal("Expected far root hit")
	}
	if math.Abs(hit.T-3.0) > 1e-9 || hit.FrontFace {
		t.Errorf("Expected back face hit at t=3, got t=%f front=%t", hit.T, hit.FrontFace)
	}

	// Open interval: a root exactly at the bound is rejected
	_, isHit = sphere.Hit(ray, core.NewInterval(0.001, 1.0))
	if isHit {
		t.Error("Expected root at the interval bound to be rejected")
	}
}

func TestSphere_NegativeRadiusClamps(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), -2, nil)
	if sphere.Radius != 0 {
		t.Errorf("Expected radius clamped to 0, got %f", sphere.Radius)
	}

	// Straight through the center of a zero-radius sphere must not produce NaN normals
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))
	if _, isHit := sphere.Hit(ray, defaultInterval); isHit {
		t.Error("Expected zero-radius sphere never to be hit")
	}
}

func TestSphere_ZeroDirection(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.Vec3{})

	if _, isHit := sphere.Hit(ray, defaultInterval); isHit {
		t.Error("Expected zero-length direction to miss")
	}
}

func TestSphere_CarriesMaterial(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, mat)

	hit, isHit := sphere.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), defaultInterval)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != mat {
		t.Errorf("Expected hit record to reference the shared material")
	}
}
