// 指示: miu200521358
package rinteractor

import (
	"errors"
	"math"
	"testing"

	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
	"github.com/ironopen/maya-rig-tools/pkg/domain/model/rerrors"
)

func TestResolveBuildConfigAppliesDefaults(t *testing.T) {
	resolved := mustResolveConfig(t, BuildConfig{GlobalMultiplier: 1.0})

	if resolved.SideMode != model.SIDE_MODE_AUTO {
		t.Fatalf("empty side mode should default to auto, got %s", resolved.SideMode)
	}
	offset, err := resolved.evalPoleOffset(4.0, 2.0)
	if err != nil {
		t.Fatalf("default pole offset should evaluate: %v", err)
	}
	if math.Abs(offset-2.0) > 1e-9 {
		t.Fatalf("default pole offset should be half the chain length, got %f", offset)
	}
}

func TestResolveBuildConfigRejectsNonPositiveMultiplier(t *testing.T) {
	_, err := resolveBuildConfig(BuildConfig{GlobalMultiplier: 0})
	var validationErr *rerrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("zero multiplier should be a validation error, got %v", err)
	}
}

func TestResolveBuildConfigRejectsBrokenExpression(t *testing.T) {
	config := DefaultBuildConfig()
	config.PoleOffsetExpression = "chainLength *"
	_, err := resolveBuildConfig(config)
	var validationErr *rerrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("broken expression should be a validation error, got %v", err)
	}
}

func TestResolveBuildConfigSnapshotIgnoresLaterChanges(t *testing.T) {
	config := DefaultBuildConfig()
	config.GlobalMultiplier = 2.0
	resolved := mustResolveConfig(t, config)

	config.GlobalMultiplier = 9.0
	if resolved.GlobalMultiplier != 2.0 {
		t.Fatalf("resolved config should be a snapshot, got %f", resolved.GlobalMultiplier)
	}
}

func TestEvalStretchRatioClampsBelowOne(t *testing.T) {
	resolved := mustResolveConfig(t, DefaultBuildConfig())

	ratio, err := resolved.evalStretchRatio(1.0, 2.0)
	if err != nil {
		t.Fatalf("stretch ratio should evaluate: %v", err)
	}
	if ratio != 1.0 {
		t.Fatalf("compressed chain should clamp to 1.0, got %f", ratio)
	}

	ratio, err = resolved.evalStretchRatio(3.0, 2.0)
	if err != nil {
		t.Fatalf("stretch ratio should evaluate: %v", err)
	}
	if math.Abs(ratio-1.5) > 1e-9 {
		t.Fatalf("stretched chain should keep the raw ratio, got %f", ratio)
	}
}
