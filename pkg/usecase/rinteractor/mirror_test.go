// 指示: miu200521358
package rinteractor

import (
	"errors"
	"testing"

	"github.com/ironopen/maya-rig-tools/pkg/adapter/scene/memory"
	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
	"github.com/ironopen/maya-rig-tools/pkg/domain/model/rerrors"
	"github.com/ironopen/maya-rig-tools/pkg/domain/rmath"
)

func TestResolveMirrorChainSwapsSideTokens(t *testing.T) {
	scene := memory.NewSceneService()
	scene.AddJoint("L_arm_01_jnt", rmath.ZERO_VEC3)
	scene.AddJoint("L_arm_02_jnt", rmath.NewVec3(1, 0, 0))
	scene.AddJoint("R_arm_01_jnt", rmath.NewVec3(-1, 0, 0))
	scene.AddJoint("R_arm_02_jnt", rmath.NewVec3(-2, 0, 0))

	chain := model.Chain{"L_arm_01_jnt", "L_arm_02_jnt"}
	mirrored, err := resolveMirrorChain(scene, chain)
	if err != nil {
		t.Fatalf("mirror resolve should succeed: %v", err)
	}
	if mirrored[0] != "R_arm_01_jnt" || mirrored[1] != "R_arm_02_jnt" {
		t.Fatalf("side tokens should be swapped, got %v", mirrored)
	}
}

func TestResolveMirrorChainRejectsTokenlessJoints(t *testing.T) {
	scene := memory.NewSceneService()
	scene.AddJoint("L_arm_01_jnt", rmath.ZERO_VEC3)
	scene.AddJoint("arm_mid_jnt", rmath.NewVec3(1, 0, 0))
	scene.AddJoint("R_arm_01_jnt", rmath.NewVec3(-1, 0, 0))

	// 左右トークンを持たないジョイントは対応名が定義できないため不足扱いにする。
	chain := model.Chain{"L_arm_01_jnt", "arm_mid_jnt"}
	_, err := resolveMirrorChain(scene, chain)

	var mirrorErr *rerrors.MirrorValidationError
	if !errors.As(err, &mirrorErr) {
		t.Fatalf("tokenless joint should fail mirror validation, got %v", err)
	}
	if len(mirrorErr.MissingJoints) != 1 || mirrorErr.MissingJoints[0] != "arm_mid_jnt" {
		t.Fatalf("missing joint names mismatch: %v", mirrorErr.MissingJoints)
	}
}

func TestResolveMirrorChainReportsAllMissingJoints(t *testing.T) {
	scene := memory.NewSceneService()
	scene.AddJoint("L_leg_01_jnt", rmath.ZERO_VEC3)
	scene.AddJoint("L_leg_02_jnt", rmath.NewVec3(0, -1, 0))

	chain := model.Chain{"L_leg_01_jnt", "L_leg_02_jnt"}
	_, err := resolveMirrorChain(scene, chain)

	var mirrorErr *rerrors.MirrorValidationError
	if !errors.As(err, &mirrorErr) {
		t.Fatalf("missing mirror joints should fail, got %v", err)
	}
	if len(mirrorErr.MissingJoints) != 2 {
		t.Fatalf("all missing joints should be listed, got %v", mirrorErr.MissingJoints)
	}
	if mirrorErr.MissingJoints[0] != "R_leg_01_jnt" || mirrorErr.MissingJoints[1] != "R_leg_02_jnt" {
		t.Fatalf("missing joint names mismatch: %v", mirrorErr.MissingJoints)
	}
}
