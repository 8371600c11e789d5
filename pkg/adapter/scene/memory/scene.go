// 指示: miu200521358
// Package memory はホストシーン契約のインメモリ実装を提供する。
// ドライラン・テスト用で、実ホストのIKソルバは持たない。
package memory

import (
	"fmt"

	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
	"github.com/ironopen/maya-rig-tools/pkg/domain/rmath"
	"github.com/ironopen/maya-rig-tools/pkg/usecase/port/rigscene"
)

// nodeKindIKHandle はIKハンドルノードの内部種別を表す。
const nodeKindIKHandle rigscene.NodeKind = "ikHandle"

// Constraint はノードへ張られたコンストレイント1本を表す。
type Constraint struct {
	Driver model.NodeRef
	Kind   rigscene.ConstraintKind
	Weight float64
}

// attributeConnection は属性1個分の接続元を表す。
type attributeConnection struct {
	SrcNode  model.NodeRef
	SrcAttr  string
	Reversed bool
}

// sceneNode はインメモリシーンのノード1個を表す。
type sceneNode struct {
	kind        rigscene.NodeKind
	parent      model.NodeRef
	children    []model.NodeRef
	position    rmath.Vec3
	orientation rmath.Quaternion
	scale       float64
	attributes  map[string]float64
	connections map[string]attributeConnection
	constraints []Constraint
	tag         string
	hasTag      bool
	ikStart     model.NodeRef
	ikEnd       model.NodeRef
}

// SceneService はホストシーン契約のインメモリ実装を表す。
type SceneService struct {
	nodes     map[model.NodeRef]*sceneNode
	selection []model.NodeRef

	failAfter   int
	failEnabled bool
	mutations   int
}

// NewSceneService は空のインメモリシーンを生成する。
func NewSceneService() *SceneService {
	return &SceneService{nodes: map[model.NodeRef]*sceneNode{}}
}

// AddJoint はテスト用にジョイントをシーン直下へ追加する。
func (s *SceneService) AddJoint(name string, position rmath.Vec3) model.NodeRef {
	node := &sceneNode{
		kind:        rigscene.NODE_KIND_JOINT,
		position:    position,
		orientation: rmath.NewQuaternionIdent(),
		scale:       1.0,
		attributes:  map[string]float64{},
		connections: map[string]attributeConnection{},
	}
	ref := model.NodeRef(name)
	s.nodes[ref] = node
	return ref
}

// AddJointUnder はテスト用に指定親の下へジョイントを追加する。親が空参照ならシーン直下に置く。
func (s *SceneService) AddJointUnder(name string, parent model.NodeRef, position rmath.Vec3) model.NodeRef {
	ref := s.AddJoint(name, position)
	if parent != "" {
		if entry, exists := s.nodes[parent]; exists {
			s.nodes[ref].parent = parent
			entry.children = append(entry.children, ref)
		}
	}
	return ref
}

// SetSelection はテスト用に選択ジョイント列を設定する。
func (s *SceneService) SetSelection(names ...string) {
	s.selection = s.selection[:0]
	for _, name := range names {
		s.selection = append(s.selection, model.NodeRef(name))
	}
}

// FailAfterMutations は指定回数のシーン変更後に全変更操作を失敗させる。
func (s *SceneService) FailAfterMutations(count int) {
	s.failAfter = count
	s.failEnabled = true
	s.mutations = 0
}

// MutationCount は実行済みシーン変更操作数を返す。
func (s *SceneService) MutationCount() int {
	return s.mutations
}

// Constraints はノードへ張られたコンストレイント一覧を返す。
func (s *SceneService) Constraints(node model.NodeRef) []Constraint {
	entry, exists := s.nodes[node]
	if !exists {
		return nil
	}
	constraints := make([]Constraint, len(entry.constraints))
	copy(constraints, entry.constraints)
	return constraints
}

// Kind はノード種別を返す。
func (s *SceneService) Kind(node model.NodeRef) (rigscene.NodeKind, bool) {
	entry, exists := s.nodes[node]
	if !exists {
		return "", false
	}
	return entry.kind, true
}

// Parent は親ノードを返す。シーン直下は空参照を返す。
func (s *SceneService) Parent(node model.NodeRef) model.NodeRef {
	entry, exists := s.nodes[node]
	if !exists {
		return ""
	}
	return entry.parent
}

// LocalScale はノードのローカル一様スケールを返す。
func (s *SceneService) LocalScale(node model.NodeRef) float64 {
	entry, exists := s.nodes[node]
	if !exists {
		return 0
	}
	return entry.scale
}

// beginMutation は変更操作の失敗注入を判定する。
func (s *SceneService) beginMutation(operation string) error {
	if s.failEnabled && s.mutations >= s.failAfter {
		return fmt.Errorf("シーン変更操作が失敗しました: %s", operation)
	}
	s.mutations++
	return nil
}

// node は存在検証付きでノードを返す。
func (s *SceneService) node(ref model.NodeRef) (*sceneNode, error) {
	entry, exists := s.nodes[ref]
	if !exists {
		return nil, fmt.Errorf("ノードが見つかりません: %s", ref)
	}
	return entry, nil
}

// SelectedJointsOrdered は選択順のジョイント列を返す。
func (s *SceneService) SelectedJointsOrdered() ([]model.NodeRef, error) {
	selected := make([]model.NodeRef, len(s.selection))
	copy(selected, s.selection)
	return selected, nil
}

// NodeExists はノードの存在を判定する。
func (s *SceneService) NodeExists(node model.NodeRef) bool {
	_, exists := s.nodes[node]
	return exists
}

// WorldPosition はワールド位置を返す。
func (s *SceneService) WorldPosition(node model.NodeRef) (rmath.Vec3, error) {
	entry, err := s.node(node)
	if err != nil {
		return rmath.ZERO_VEC3, err
	}
	return entry.position, nil
}

// WorldOrientation はワールド回転を返す。
func (s *SceneService) WorldOrientation(node model.NodeRef) (rmath.Quaternion, error) {
	entry, err := s.node(node)
	if err != nil {
		return rmath.NewQuaternionIdent(), err
	}
	return entry.orientation, nil
}

// SetWorldTransform はワールド位置・回転を設定する。
func (s *SceneService) SetWorldTransform(
	node model.NodeRef, position rmath.Vec3, orientation rmath.Quaternion,
) error {
	if err := s.beginMutation("SetWorldTransform"); err != nil {
		return err
	}
	entry, err := s.node(node)
	if err != nil {
		return err
	}
	entry.position = position
	entry.orientation = orientation
	return nil
}

// SetLocalScale はローカル一様スケールを設定する。
func (s *SceneService) SetLocalScale(node model.NodeRef, scale float64) error {
	if err := s.beginMutation("SetLocalScale"); err != nil {
		return err
	}
	entry, err := s.node(node)
	if err != nil {
		return err
	}
	entry.scale = scale
	return nil
}

// CreateNode は指定親の下へノードを生成する。親が空参照ならシーン直下に置く。
func (s *SceneService) CreateNode(
	kind rigscene.NodeKind, name string, parent model.NodeRef,
) (model.NodeRef, error) {
	if err := s.beginMutation("CreateNode"); err != nil {
		return "", err
	}
	ref := model.NodeRef(name)
	if _, exists := s.nodes[ref]; exists {
		return "", fmt.Errorf("同名ノードが既に存在します: %s", name)
	}
	if parent != "" {
		if _, exists := s.nodes[parent]; !exists {
			return "", fmt.Errorf("親ノードが見つかりません: %s", parent)
		}
	}
	s.nodes[ref] = &sceneNode{
		kind:        kind,
		parent:      parent,
		orientation: rmath.NewQuaternionIdent(),
		scale:       1.0,
		attributes:  map[string]float64{},
		connections: map[string]attributeConnection{},
	}
	if parent != "" {
		s.nodes[parent].children = append(s.nodes[parent].children, ref)
	}
	return ref, nil
}

// CreateIKHandle は開始・終端ジョイント間のIKハンドルを生成する。
// 実IKソルバは持たず、終端位置に置いた印付きノードとして記録する。
func (s *SceneService) CreateIKHandle(
	name string, startJoint model.NodeRef, endJoint model.NodeRef,
) (model.NodeRef, error) {
	if err := s.beginMutation("CreateIKHandle"); err != nil {
		return "", err
	}
	if _, err := s.node(startJoint); err != nil {
		return "", err
	}
	end, err := s.node(endJoint)
	if err != nil {
		return "", err
	}
	ref := model.NodeRef(name)
	if _, exists := s.nodes[ref]; exists {
		return "", fmt.Errorf("同名ノードが既に存在します: %s", name)
	}
	s.nodes[ref] = &sceneNode{
		kind:        nodeKindIKHandle,
		position:    end.position,
		orientation: rmath.NewQuaternionIdent(),
		scale:       1.0,
		attributes:  map[string]float64{},
		connections: map[string]attributeConnection{},
		ikStart:     startJoint,
		ikEnd:       endJoint,
	}
	return ref, nil
}

// ParentNode は親子関係を付け替える。
func (s *SceneService) ParentNode(child model.NodeRef, parent model.NodeRef) error {
	if err := s.beginMutation("ParentNode"); err != nil {
		return err
	}
	entry, err := s.node(child)
	if err != nil {
		return err
	}
	newParent, err := s.node(parent)
	if err != nil {
		return err
	}
	if entry.parent != "" {
		if previous, exists := s.nodes[entry.parent]; exists {
			previous.children = removeChild(previous.children, child)
		}
	}
	entry.parent = parent
	newParent.children = append(newParent.children, child)
	return nil
}

// Constrain はdriverからdrivenへのコンストレイントを追加する。
func (s *SceneService) Constrain(
	driver model.NodeRef, driven model.NodeRef, kind rigscene.ConstraintKind, weight float64,
) error {
	if err := s.beginMutation("Constrain"); err != nil {
		return err
	}
	if _, err := s.node(driver); err != nil {
		return err
	}
	entry, err := s.node(driven)
	if err != nil {
		return err
	}
	entry.constraints = append(entry.constraints, Constraint{Driver: driver, Kind: kind, Weight: weight})
	return nil
}

// AddAttribute はノードへ数値属性を追加する。
func (s *SceneService) AddAttribute(node model.NodeRef, name string, value float64) error {
	if err := s.beginMutation("AddAttribute"); err != nil {
		return err
	}
	entry, err := s.node(node)
	if err != nil {
		return err
	}
	if _, exists := entry.attributes[name]; exists {
		return fmt.Errorf("属性が既に存在します: %s.%s", node, name)
	}
	entry.attributes[name] = value
	return nil
}

// SetAttribute は既存属性へ値を設定する。
func (s *SceneService) SetAttribute(node model.NodeRef, name string, value float64) error {
	if err := s.beginMutation("SetAttribute"); err != nil {
		return err
	}
	entry, err := s.node(node)
	if err != nil {
		return err
	}
	if _, exists := entry.attributes[name]; !exists {
		return fmt.Errorf("属性が見つかりません: %s.%s", node, name)
	}
	entry.attributes[name] = value
	return nil
}

// GetAttribute は属性値を返す。接続がある場合は接続元を解決し、反転接続は(1-値)を返す。
func (s *SceneService) GetAttribute(node model.NodeRef, name string) (float64, error) {
	entry, err := s.node(node)
	if err != nil {
		return 0, err
	}
	if connection, exists := entry.connections[name]; exists {
		value, err := s.GetAttribute(connection.SrcNode, connection.SrcAttr)
		if err != nil {
			return 0, err
		}
		if connection.Reversed {
			return 1.0 - value, nil
		}
		return value, nil
	}
	value, exists := entry.attributes[name]
	if !exists {
		return 0, fmt.Errorf("属性が見つかりません: %s.%s", node, name)
	}
	return value, nil
}

// ConnectAttribute は属性接続を張る。接続先の既存値は接続が優先する。
func (s *SceneService) ConnectAttribute(
	srcNode model.NodeRef, srcAttr string, dstNode model.NodeRef, dstAttr string, reversed bool,
) error {
	if err := s.beginMutation("ConnectAttribute"); err != nil {
		return err
	}
	source, err := s.node(srcNode)
	if err != nil {
		return err
	}
	if _, exists := source.attributes[srcAttr]; !exists {
		return fmt.Errorf("接続元属性が見つかりません: %s.%s", srcNode, srcAttr)
	}
	entry, err := s.node(dstNode)
	if err != nil {
		return err
	}
	entry.connections[dstAttr] = attributeConnection{
		SrcNode:  srcNode,
		SrcAttr:  srcAttr,
		Reversed: reversed,
	}
	return nil
}

// TagNode はノードへメタデータタグを書き込む。
func (s *SceneService) TagNode(node model.NodeRef, blob string) error {
	if err := s.beginMutation("TagNode"); err != nil {
		return err
	}
	entry, err := s.node(node)
	if err != nil {
		return err
	}
	entry.tag = blob
	entry.hasTag = true
	return nil
}

// QueryTag はノードのメタデータタグを返す。
func (s *SceneService) QueryTag(node model.NodeRef) (string, bool) {
	entry, exists := s.nodes[node]
	if !exists || !entry.hasTag {
		return "", false
	}
	return entry.tag, true
}

// Ancestors は近い順の祖先ノード列を返す。
func (s *SceneService) Ancestors(node model.NodeRef) ([]model.NodeRef, error) {
	entry, err := s.node(node)
	if err != nil {
		return nil, err
	}
	var ancestors []model.NodeRef
	for current := entry.parent; current != ""; {
		ancestors = append(ancestors, current)
		parent, exists := s.nodes[current]
		if !exists {
			break
		}
		current = parent.parent
	}
	return ancestors, nil
}

// Children は直下の子ノード列を返す。
func (s *SceneService) Children(node model.NodeRef) ([]model.NodeRef, error) {
	entry, err := s.node(node)
	if err != nil {
		return nil, err
	}
	children := make([]model.NodeRef, len(entry.children))
	copy(children, entry.children)
	return children, nil
}

// EvaluateWorldPosition はコンストレイントを解決したワールド位置を返す。
// ペアレントコンストレイントはウェイト属性接続を解決した加重平均として評価する。
func (s *SceneService) EvaluateWorldPosition(node model.NodeRef) (rmath.Vec3, error) {
	entry, err := s.node(node)
	if err != nil {
		return rmath.ZERO_VEC3, err
	}

	sum := rmath.ZERO_VEC3
	totalWeight := 0.0
	for _, constraint := range entry.constraints {
		if constraint.Kind != rigscene.CONSTRAINT_KIND_PARENT {
			continue
		}
		weight := constraint.Weight
		attribute := rigscene.ConstraintWeightAttribute(constraint.Driver)
		if _, connected := entry.connections[attribute]; connected {
			resolved, err := s.GetAttribute(node, attribute)
			if err != nil {
				return rmath.ZERO_VEC3, err
			}
			weight = resolved
		}
		if weight <= 0 {
			continue
		}
		driverPosition, err := s.EvaluateWorldPosition(constraint.Driver)
		if err != nil {
			return rmath.ZERO_VEC3, err
		}
		sum = sum.Added(driverPosition.MuledScalar(weight))
		totalWeight += weight
	}
	if totalWeight <= 0 {
		return entry.position, nil
	}
	return sum.MuledScalar(1.0 / totalWeight), nil
}

// removeChild は子ノード列から指定ノードを取り除く。
func removeChild(children []model.NodeRef, target model.NodeRef) []model.NodeRef {
	filtered := children[:0]
	for _, child := range children {
		if child != target {
			filtered = append(filtered, child)
		}
	}
	return filtered
}
