// 指示: miu200521358
package rinteractor

import (
	"strings"

	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
)

// 生成ノードの役割サフィックス一覧。
const (
	nameRoleFKControl       = "FK_CTRL"
	nameRoleIKControl       = "IK_CTRL"
	nameRolePoleControl     = "PV_CTRL"
	nameRoleSettingsControl = "SETTINGS_CTRL"
	nameRoleIKHandle        = "IK_HDL"
	nameRoleFKGroup         = "FK_GRP"
	nameRoleIKGroup         = "IK_GRP"
	nameRoleModuleGroup     = "MODULE_GRP"

	zeroGroupSuffix     = "_ZRO"
	fkDriverChainSuffix = "FKDRV"
	ikDriverChainSuffix = "IKDRV"

	defaultPartName = "limb"
	jointNameSuffix = "_jnt"
)

// formatName は側面・部位・役割からノード名を組み立てる。側面なしは部位から始める。
func formatName(side model.Side, part string, role string) string {
	if side == model.SIDE_NONE {
		return part + "_" + role
	}
	return side.String() + "_" + part + "_" + role
}

// zeroGroupName はゼログループ名を返す。
func zeroGroupName(name string) string {
	return name + zeroGroupSuffix
}

// driverJointName はドライバチェーン用ジョイント名を返す。
func driverJointName(joint model.NodeRef, suffix string) string {
	return string(joint) + "_" + suffix
}

// jointControlName はジョイント名から役割付きノード名を組み立てる。
func jointControlName(joint model.NodeRef, role string) string {
	return strings.TrimSuffix(string(joint), jointNameSuffix) + "_" + role
}

// derivePartName は基底名から部位名を導出する。先頭トークンを部位とみなす。
func derivePartName(baseName string) string {
	trimmed := strings.TrimSuffix(baseName, jointNameSuffix)
	if separator := strings.Index(trimmed, "_"); separator > 0 {
		trimmed = trimmed[:separator]
	}
	if strings.TrimSpace(trimmed) == "" {
		return defaultPartName
	}
	return trimmed
}
