// 指示: miu200521358
package rinteractor

import (
	"testing"

	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
)

func TestFormatNameOmitsMissingSide(t *testing.T) {
	if got := formatName(model.SIDE_LEFT, "arm", nameRoleModuleGroup); got != "L_arm_MODULE_GRP" {
		t.Fatalf("sided name mismatch: %s", got)
	}
	if got := formatName(model.SIDE_NONE, "spine", nameRoleFKGroup); got != "spine_FK_GRP" {
		t.Fatalf("sideless name mismatch: %s", got)
	}
}

func TestDerivePartName(t *testing.T) {
	tests := []struct {
		baseName string
		want     string
	}{
		{baseName: "arm_01_jnt", want: "arm"},
		{baseName: "leg_upper_jnt", want: "leg"},
		{baseName: "spine_jnt", want: "spine"},
		{baseName: "tail", want: "tail"},
		{baseName: "_jnt", want: "limb"},
		{baseName: "", want: "limb"},
	}
	for _, tt := range tests {
		if got := derivePartName(tt.baseName); got != tt.want {
			t.Fatalf("derivePartName(%q) = %q, want %q", tt.baseName, got, tt.want)
		}
	}
}

func TestJointControlNameTrimsJointSuffix(t *testing.T) {
	if got := jointControlName("L_arm_01_jnt", nameRoleFKControl); got != "L_arm_01_FK_CTRL" {
		t.Fatalf("control name mismatch: %s", got)
	}
	if got := zeroGroupName("L_arm_01_FK_CTRL"); got != "L_arm_01_FK_CTRL_ZRO" {
		t.Fatalf("zero group name mismatch: %s", got)
	}
	if got := driverJointName("L_arm_01_jnt", fkDriverChainSuffix); got != "L_arm_01_jnt_FKDRV" {
		t.Fatalf("driver joint name mismatch: %s", got)
	}
}
