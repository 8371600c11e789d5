// 指示: miu200521358
package model

import (
	"errors"
	"testing"

	"github.com/ironopen/maya-rig-tools/pkg/domain/model/rerrors"
)

func TestModuleTypeBehaviorTableIsClosed(t *testing.T) {
	types := []ModuleType{MODULE_TYPE_FK, MODULE_TYPE_IK, MODULE_TYPE_FKIK, MODULE_TYPE_SPINE}
	for _, moduleType := range types {
		behavior, exists := moduleType.Behavior()
		if !exists {
			t.Fatalf("behavior should exist for %s", moduleType)
		}
		if behavior.MinJointCount < 3 {
			t.Fatalf("%s should require at least 3 joints", moduleType)
		}
	}
	if _, exists := ModuleType("TWIST").Behavior(); exists {
		t.Fatalf("unknown module type should have no behavior")
	}
}

func TestModuleTypeValidateJointCount(t *testing.T) {
	if err := MODULE_TYPE_FKIK.ValidateJointCount(3); err != nil {
		t.Fatalf("3 joints should satisfy FKIK: %v", err)
	}
	if err := MODULE_TYPE_FKIK.ValidateJointCount(4); err == nil {
		t.Fatalf("limb module should reject 4 joints")
	}
	if err := MODULE_TYPE_SPINE.ValidateJointCount(5); err != nil {
		t.Fatalf("spine should accept 5 joints: %v", err)
	}
	if err := MODULE_TYPE_SPINE.ValidateJointCount(2); err == nil {
		t.Fatalf("spine should reject 2 joints")
	}

	err := MODULE_TYPE_IK.ValidateJointCount(2)
	var validationErr *rerrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("joint count failure should be a validation error: %v", err)
	}
}

func TestChainValidate(t *testing.T) {
	chain := Chain{"L_arm_shoulder_jnt", "L_arm_elbow_jnt", "L_arm_wrist_jnt"}
	if err := chain.Validate(3); err != nil {
		t.Fatalf("clean chain should validate: %v", err)
	}
	if chain.Root() != "L_arm_shoulder_jnt" || chain.Tip() != "L_arm_wrist_jnt" {
		t.Fatalf("root/tip mismatch: %s %s", chain.Root(), chain.Tip())
	}

	if err := (Chain{"a", "b"}).Validate(3); err == nil {
		t.Fatalf("short chain should fail")
	}
	if err := (Chain{"a", "b", "a"}).Validate(3); err == nil {
		t.Fatalf("duplicate joints should fail")
	}
	if err := (Chain{"a", "", "c"}).Validate(3); err == nil {
		t.Fatalf("empty joint ref should fail")
	}
}

func TestModuleTagRoundTrip(t *testing.T) {
	metadata := ModuleMetadata{
		ModuleID:      "L_arm_FKIK_001",
		Side:          SIDE_LEFT,
		Type:          MODULE_TYPE_FKIK,
		RootJoint:     "L_arm_shoulder_jnt",
		ControlRoot:   "L_arm_MODULE_GRP",
		CreationOrder: 1,
	}
	blob, err := EncodeModuleTag(metadata)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := DecodeModuleTag(blob)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != metadata {
		t.Fatalf("round trip mismatch: got=%+v want=%+v", decoded, metadata)
	}
}

func TestDecodeModuleTagRejectsBrokenBlobs(t *testing.T) {
	if _, err := DecodeModuleTag("not json"); err == nil {
		t.Fatalf("broken blob should fail")
	}
	if _, err := DecodeModuleTag(`{"side":"L"}`); err == nil {
		t.Fatalf("blob without moduleId should fail")
	}
}
