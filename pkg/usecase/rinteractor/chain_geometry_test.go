// 指示: miu200521358
package rinteractor

import (
	"errors"
	"math"
	"testing"

	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
	"github.com/ironopen/maya-rig-tools/pkg/domain/model/rerrors"
	"github.com/ironopen/maya-rig-tools/pkg/domain/rmath"
)

func TestComputeChainGeometryDerivesSegmentsAndPlane(t *testing.T) {
	positions := []rmath.Vec3{
		rmath.NewVec3(0, 0, 0),
		rmath.NewVec3(2, 0, -0.5),
		rmath.NewVec3(4, 0, 0),
	}

	geometry, warnings, err := computeChainGeometry(positions)
	if err != nil {
		t.Fatalf("geometry should succeed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("planar chain should not warn, got %v", warnings)
	}
	if len(geometry.Segments) != 2 {
		t.Fatalf("segment count should be 2, got %d", len(geometry.Segments))
	}

	expectedSegment := math.Sqrt(4 + 0.25)
	if math.Abs(geometry.Segments[0].Length-expectedSegment) > 1e-9 {
		t.Fatalf("segment length mismatch: %f", geometry.Segments[0].Length)
	}
	if math.Abs(geometry.TotalLength-2*expectedSegment) > 1e-9 {
		t.Fatalf("total length mismatch: %f", geometry.TotalLength)
	}
	if math.Abs(geometry.MeanSegmentLength-expectedSegment) > 1e-9 {
		t.Fatalf("mean segment length mismatch: %f", geometry.MeanSegmentLength)
	}

	if !geometry.PlaneValid {
		t.Fatalf("bent chain should have a valid plane")
	}
	if !geometry.PlaneNormal.NearEquals(rmath.NewVec3(0, -1, 0), 1e-9) {
		t.Fatalf("plane normal should follow cross(toMid, toTip), got %v", geometry.PlaneNormal)
	}
}

func TestComputeChainGeometryCollinearChainWarnsWithoutPlane(t *testing.T) {
	positions := []rmath.Vec3{
		rmath.NewVec3(0, 0, 0),
		rmath.NewVec3(1, 0, 0),
		rmath.NewVec3(2, 0, 0),
	}

	geometry, warnings, err := computeChainGeometry(positions)
	if err != nil {
		t.Fatalf("collinear chain should not error: %v", err)
	}
	if geometry.PlaneValid {
		t.Fatalf("collinear chain should have no plane")
	}
	if len(warnings) != 1 || warnings[0].ID != model.RigWarningCollinearChainPlane {
		t.Fatalf("collinear chain should warn once, got %v", warnings)
	}
}

func TestComputeChainGeometryRejectsSingleJoint(t *testing.T) {
	_, _, err := computeChainGeometry([]rmath.Vec3{rmath.NewVec3(1, 1, 1)})
	if err == nil {
		t.Fatalf("single joint should be rejected")
	}
	var validationErr *rerrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("error should be a validation error, got %v", err)
	}
}

func TestResolveControlSizeScalesLinearlyWithMultiplier(t *testing.T) {
	positions := []rmath.Vec3{
		rmath.NewVec3(0, 0, 0),
		rmath.NewVec3(0, 3, 0),
		rmath.NewVec3(0, 3, 2),
	}
	geometry, _, err := computeChainGeometry(positions)
	if err != nil {
		t.Fatalf("geometry should succeed: %v", err)
	}

	unit, err := resolveControlSize(geometry, 1.0)
	if err != nil {
		t.Fatalf("size should resolve: %v", err)
	}
	scaled, err := resolveControlSize(geometry, 2.5)
	if err != nil {
		t.Fatalf("size should resolve: %v", err)
	}
	if math.Abs(scaled-2.5*unit) > 1e-9 {
		t.Fatalf("size should scale linearly: unit=%f scaled=%f", unit, scaled)
	}
	if math.Abs(unit-2.5) > 1e-9 {
		t.Fatalf("unit size should equal mean segment length, got %f", unit)
	}
}

func TestResolveControlSizeRejectsDegenerateChain(t *testing.T) {
	positions := []rmath.Vec3{
		rmath.NewVec3(1, 1, 1),
		rmath.NewVec3(1, 1, 1),
		rmath.NewVec3(1, 1, 1),
	}
	geometry, _, err := computeChainGeometry(positions)
	if err != nil {
		t.Fatalf("geometry should succeed even when degenerate: %v", err)
	}

	_, err = resolveControlSize(geometry, 1.0)
	var degenerateErr *rerrors.DegenerateChainError
	if !errors.As(err, &degenerateErr) {
		t.Fatalf("degenerate chain should fail sizing, got %v", err)
	}
}
