// 指示: miu200521358
package rinteractor

import (
	"testing"

	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
	"github.com/ironopen/maya-rig-tools/pkg/domain/rmath"
)

func mustResolveConfig(t *testing.T, config BuildConfig) *resolvedConfig {
	t.Helper()
	resolved, err := resolveBuildConfig(config)
	if err != nil {
		t.Fatalf("config should resolve: %v", err)
	}
	return resolved
}

func TestSolvePoleVectorRightAngleLimb(t *testing.T) {
	geometry := mustGeometry(t,
		rmath.NewVec3(0, 0, 0),
		rmath.NewVec3(1, 0, 0),
		rmath.NewVec3(1, -1, 0),
	)
	config := mustResolveConfig(t, DefaultBuildConfig())

	position, warnings, err := solvePoleVector(geometry, config)
	if err != nil {
		t.Fatalf("pole vector should resolve: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("bent limb should not warn, got %v", warnings)
	}

	// cross(toMid, toTip) = cross((1,0,0), (1,-1,0)) = (0,0,-1)、距離は総長2の半分。
	expected := rmath.NewVec3(0.5, -0.5, 0).Added(rmath.NewVec3(0, 0, -1).MuledScalar(1.0))
	if !position.NearEquals(expected, 1e-9) {
		t.Fatalf("pole position mismatch: got %v want %v", position, expected)
	}
}

func TestSolvePoleVectorCollinearChainFallsBack(t *testing.T) {
	geometry := mustGeometry(t,
		rmath.NewVec3(0, 0, 0),
		rmath.NewVec3(1, 0, 0),
		rmath.NewVec3(2, 0, 0),
	)
	config := mustResolveConfig(t, DefaultBuildConfig())

	position, warnings, err := solvePoleVector(geometry, config)
	if err != nil {
		t.Fatalf("pole vector should resolve: %v", err)
	}
	if len(warnings) != 1 || warnings[0].ID != model.RigWarningPoleVectorFallback {
		t.Fatalf("collinear chain should warn once, got %v", warnings)
	}

	expected := rmath.NewVec3(1, 1, 0)
	if !position.NearEquals(expected, 1e-9) {
		t.Fatalf("fallback pole should use the world up component, got %v", position)
	}
}

func TestSolvePoleVectorHonorsCustomOffsetExpression(t *testing.T) {
	geometry := mustGeometry(t,
		rmath.NewVec3(0, 0, 0),
		rmath.NewVec3(1, 0, 0),
		rmath.NewVec3(1, -1, 0),
	)
	config := DefaultBuildConfig()
	config.PoleOffsetExpression = "meanSegment * 3"
	resolved := mustResolveConfig(t, config)

	position, _, err := solvePoleVector(geometry, resolved)
	if err != nil {
		t.Fatalf("pole vector should resolve: %v", err)
	}
	expected := rmath.NewVec3(0.5, -0.5, 0).Added(rmath.NewVec3(0, 0, -1).MuledScalar(3.0))
	if !position.NearEquals(expected, 1e-9) {
		t.Fatalf("custom offset expression should drive the distance, got %v", position)
	}
}
