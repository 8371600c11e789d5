// 指示: miu200521358
package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ironopen/maya-rig-tools/pkg/domain/model/rerrors"
)

// ModuleType はリグモジュール種別を表す。閉じたバリアント集合として扱う。
type ModuleType string

const (
	// MODULE_TYPE_FK はFKリムモジュールを表す。
	MODULE_TYPE_FK ModuleType = "FK"
	// MODULE_TYPE_IK はIKリムモジュールを表す。
	MODULE_TYPE_IK ModuleType = "IK"
	// MODULE_TYPE_FKIK はFK/IK切替リムモジュールを表す。
	MODULE_TYPE_FKIK ModuleType = "FKIK"
	// MODULE_TYPE_SPINE はスパインモジュールを表す。
	MODULE_TYPE_SPINE ModuleType = "SPINE"
)

// ModuleTypeBehavior はモジュール種別ごとの構築仕様を表す。
type ModuleTypeBehavior struct {
	// ExactJointCount は要求ジョイント数(0なら下限のみ)。
	ExactJointCount int
	// MinJointCount は下限ジョイント数。
	MinJointCount int
	// BuildsIKChain はIKドライバチェーンを生成するか。
	BuildsIKChain bool
	// BuildsFKChain はFKドライバチェーンを生成するか。
	BuildsFKChain bool
	// BuildsBlend は切替ブレンドを構築するか。
	BuildsBlend bool
}

// moduleTypeBehaviors は種別ごとの構築仕様テーブルを保持する。
var moduleTypeBehaviors = map[ModuleType]ModuleTypeBehavior{
	MODULE_TYPE_FK:    {ExactJointCount: 3, MinJointCount: 3, BuildsFKChain: true},
	MODULE_TYPE_IK:    {ExactJointCount: 3, MinJointCount: 3, BuildsIKChain: true},
	MODULE_TYPE_FKIK:  {ExactJointCount: 3, MinJointCount: 3, BuildsFKChain: true, BuildsIKChain: true, BuildsBlend: true},
	MODULE_TYPE_SPINE: {MinJointCount: 3, BuildsFKChain: true},
}

// String はモジュール種別の文字列表現を返す。
func (t ModuleType) String() string {
	return string(t)
}

// Behavior は種別の構築仕様を返す。未知の種別は false を返す。
func (t ModuleType) Behavior() (ModuleTypeBehavior, bool) {
	behavior, exists := moduleTypeBehaviors[t]
	return behavior, exists
}

// ValidateJointCount は種別要件に対するジョイント数を検証する。
func (t ModuleType) ValidateJointCount(count int) error {
	behavior, exists := moduleTypeBehaviors[t]
	if !exists {
		return rerrors.NewValidationError("未知のモジュール種別です: %s", t)
	}
	if behavior.ExactJointCount > 0 && count != behavior.ExactJointCount {
		return rerrors.NewValidationError(
			"%sモジュールはジョイント%d個が必要です(現在%d個)", t, behavior.ExactJointCount, count)
	}
	if count < behavior.MinJointCount {
		return rerrors.NewValidationError(
			"%sモジュールはジョイント%d個以上が必要です(現在%d個)", t, behavior.MinJointCount, count)
	}
	return nil
}

// ModuleMetadata は構築済みモジュールのメタデータを表す。
// 登録後は親リンク記録以外で変更しない。
type ModuleMetadata struct {
	ModuleID       string     `json:"moduleId"`
	Side           Side       `json:"side"`
	Type           ModuleType `json:"type"`
	RootJoint      NodeRef    `json:"rootJoint"`
	ControlRoot    NodeRef    `json:"controlRoot"`
	CreationOrder  int        `json:"creationOrder"`
	ParentModuleID string     `json:"parentModuleId,omitempty"`
}

// ModuleLink は子モジュールから親モジュールへの有向リンクを表す。
type ModuleLink struct {
	ChildModuleID  string
	ParentModuleID string
}

const (
	// ModuleTagAttributeName はモジュールタグを保持するシーン属性名。
	ModuleTagAttributeName = "MU_RIG_module_tag"
	// ModuleContainerName は全モジュールのコントロールルートを束ねるグループ名。
	ModuleContainerName = "RIG_MODULES_GRP"
)

// EncodeModuleTag はメタデータをシーン保存用タグ文字列へ変換する。
func EncodeModuleTag(metadata ModuleMetadata) (string, error) {
	blob, err := json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("モジュールタグの生成に失敗しました: %w", err)
	}
	return string(blob), nil
}

// DecodeModuleTag はタグ文字列からメタデータを復元する。
func DecodeModuleTag(blob string) (ModuleMetadata, error) {
	var metadata ModuleMetadata
	if err := json.Unmarshal([]byte(blob), &metadata); err != nil {
		return ModuleMetadata{}, fmt.Errorf("モジュールタグの解析に失敗しました: %w", err)
	}
	if strings.TrimSpace(metadata.ModuleID) == "" {
		return ModuleMetadata{}, fmt.Errorf("モジュールタグにmoduleIdがありません")
	}
	return metadata, nil
}
