// 指示: miu200521358
// Package rigscene はホスト3Dシーンへの出力契約を提供する。
// エンジンはシーンノードを所有せず、この契約経由でのみ生成・変更を依頼する。
package rigscene

import (
	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
	"github.com/ironopen/maya-rig-tools/pkg/domain/rmath"
)

// NodeKind は生成依頼するノード種別を表す。
type NodeKind string

const (
	// NODE_KIND_JOINT はジョイントノードを表す。
	NODE_KIND_JOINT NodeKind = "joint"
	// NODE_KIND_TRANSFORM はグループ用トランスフォームノードを表す。
	NODE_KIND_TRANSFORM NodeKind = "transform"
	// NODE_KIND_CONTROL_CURVE はコントロールカーブノードを表す。
	NODE_KIND_CONTROL_CURVE NodeKind = "controlCurve"
)

// ConstraintKind はコンストレイント種別を表す。
type ConstraintKind string

const (
	// CONSTRAINT_KIND_PARENT はペアレントコンストレイントを表す。
	CONSTRAINT_KIND_PARENT ConstraintKind = "parent"
	// CONSTRAINT_KIND_POLE_VECTOR はポールベクタコンストレイントを表す。
	CONSTRAINT_KIND_POLE_VECTOR ConstraintKind = "poleVector"
)

// ISceneService はホストシーン操作の契約を表す。
// 全操作は同期実行され、1ビルド中の呼び出しは単一スレッドから行われる。
type ISceneService interface {
	// SelectedJointsOrdered は選択順のジョイント列を返す。
	SelectedJointsOrdered() ([]model.NodeRef, error)
	// NodeExists はノードの存在を判定する。
	NodeExists(node model.NodeRef) bool
	// WorldPosition はワールド位置を返す。
	WorldPosition(node model.NodeRef) (rmath.Vec3, error)
	// WorldOrientation はワールド回転を返す。
	WorldOrientation(node model.NodeRef) (rmath.Quaternion, error)
	// SetWorldTransform はワールド位置・回転を設定する。
	SetWorldTransform(node model.NodeRef, position rmath.Vec3, orientation rmath.Quaternion) error
	// SetLocalScale はローカル一様スケールを設定する。
	SetLocalScale(node model.NodeRef, scale float64) error
	// CreateNode は指定親の下へノードを生成する。
	CreateNode(kind NodeKind, name string, parent model.NodeRef) (model.NodeRef, error)
	// CreateIKHandle は開始・終端ジョイント間のIKハンドルを生成する。
	CreateIKHandle(name string, startJoint model.NodeRef, endJoint model.NodeRef) (model.NodeRef, error)
	// ParentNode は親子関係を付け替える。
	ParentNode(child model.NodeRef, parent model.NodeRef) error
	// Constrain はdriverからdrivenへのコンストレイントを追加する。
	Constrain(driver model.NodeRef, driven model.NodeRef, kind ConstraintKind, weight float64) error
	// AddAttribute はノードへ数値属性を追加する。
	AddAttribute(node model.NodeRef, name string, value float64) error
	// SetAttribute は既存属性へ値を設定する。
	SetAttribute(node model.NodeRef, name string, value float64) error
	// GetAttribute は属性値を返す。接続がある場合は接続元を解決する。
	GetAttribute(node model.NodeRef, name string) (float64, error)
	// ConnectAttribute は属性接続を張る。reversed時は(1-値)で駆動する。
	ConnectAttribute(srcNode model.NodeRef, srcAttr string, dstNode model.NodeRef, dstAttr string, reversed bool) error
	// TagNode はノードへメタデータタグを書き込む。
	TagNode(node model.NodeRef, blob string) error
	// QueryTag はノードのメタデータタグを返す。
	QueryTag(node model.NodeRef) (string, bool)
	// Ancestors は近い順の祖先ノード列を返す。
	Ancestors(node model.NodeRef) ([]model.NodeRef, error)
	// Children は直下の子ノード列を返す。
	Children(node model.NodeRef) ([]model.NodeRef, error)
}

// ConstraintWeightAttribute はコンストレイントのウェイト属性名を返す。
// ホスト側のペアレントコンストレイントのターゲットウェイトに対応する。
func ConstraintWeightAttribute(driver model.NodeRef) string {
	return string(driver) + "_W"
}
