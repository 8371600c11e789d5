// 指示: miu200521358
package rinteractor

import (
	"fmt"
	"sort"

	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
	"github.com/ironopen/maya-rig-tools/pkg/domain/model/rerrors"
	"github.com/ironopen/maya-rig-tools/pkg/usecase/port/rigscene"
)

// ModuleRegistry は構築済みモジュールのセッション内登録簿を表す。
// 永続化はシーンノードのタグが担い、登録簿はタグから何度でも復元できる。
type ModuleRegistry struct {
	modules       []model.ModuleMetadata
	byRootJoint   map[model.NodeRef]string
	byControlRoot map[model.NodeRef]string
	byModuleID    map[string]int
	nextOrder     int
}

// NewModuleRegistry は空のモジュール登録簿を生成する。
func NewModuleRegistry() *ModuleRegistry {
	return &ModuleRegistry{
		byRootJoint:   map[model.NodeRef]string{},
		byControlRoot: map[model.NodeRef]string{},
		byModuleID:    map[string]int{},
	}
}

// Register はメタデータへID・作成順を採番して登録する。
// 同一ルートジョイントが登録済みの場合は DuplicateModuleError を返す。
func (r *ModuleRegistry) Register(metadata model.ModuleMetadata) (model.ModuleMetadata, error) {
	if existingID, exists := r.byRootJoint[metadata.RootJoint]; exists {
		return model.ModuleMetadata{}, rerrors.NewDuplicateModuleError(string(metadata.RootJoint), existingID)
	}

	metadata.CreationOrder = r.nextOrder
	metadata.ModuleID = formatModuleID(metadata.Side, metadata.Type, metadata.CreationOrder)
	r.nextOrder++

	r.insert(metadata)
	return metadata, nil
}

// FindByRootJoint はルートジョイントに対応するモジュールを返す。
func (r *ModuleRegistry) FindByRootJoint(rootJoint model.NodeRef) (model.ModuleMetadata, bool) {
	moduleID, exists := r.byRootJoint[rootJoint]
	if !exists {
		return model.ModuleMetadata{}, false
	}
	return r.FindByID(moduleID)
}

// FindByID はモジュールIDに対応するモジュールを返す。
func (r *ModuleRegistry) FindByID(moduleID string) (model.ModuleMetadata, bool) {
	index, exists := r.byModuleID[moduleID]
	if !exists {
		return model.ModuleMetadata{}, false
	}
	return r.modules[index], true
}

// Modules は作成順のモジュール一覧の複製を返す。
func (r *ModuleRegistry) Modules() []model.ModuleMetadata {
	modules := make([]model.ModuleMetadata, len(r.modules))
	copy(modules, r.modules)
	return modules
}

// FindParentCandidate はルートジョイントの祖先から親モジュール候補を探す。
// 祖先は近い順に走査し、ルートジョイント・コントロールルートの双方と照合する。
// 同一祖先に複数一致した場合は作成順の新しい方を採用する。
func (r *ModuleRegistry) FindParentCandidate(
	scene rigscene.ISceneService, rootJoint model.NodeRef,
) (model.ModuleMetadata, bool, error) {
	ancestors, err := scene.Ancestors(rootJoint)
	if err != nil {
		return model.ModuleMetadata{}, false, fmt.Errorf("祖先ノードの取得に失敗しました: %w", err)
	}

	for _, ancestor := range ancestors {
		var candidates []model.ModuleMetadata
		if moduleID, exists := r.byRootJoint[ancestor]; exists {
			if metadata, found := r.FindByID(moduleID); found {
				candidates = append(candidates, metadata)
			}
		}
		if moduleID, exists := r.byControlRoot[ancestor]; exists {
			if metadata, found := r.FindByID(moduleID); found {
				candidates = append(candidates, metadata)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		best := candidates[0]
		for _, candidate := range candidates[1:] {
			if candidate.CreationOrder > best.CreationOrder {
				best = candidate
			}
		}
		return best, true, nil
	}
	return model.ModuleMetadata{}, false, nil
}

// Link は子モジュールから親モジュールへのリンクを記録する。
// 自己リンクと、子より後に作成された親へのリンクは循環防止のため拒否する。
func (r *ModuleRegistry) Link(link model.ModuleLink) error {
	childIndex, exists := r.byModuleID[link.ChildModuleID]
	if !exists {
		return rerrors.NewValidationError("未登録の子モジュールです: %s", link.ChildModuleID)
	}
	parentIndex, exists := r.byModuleID[link.ParentModuleID]
	if !exists {
		return rerrors.NewValidationError("未登録の親モジュールです: %s", link.ParentModuleID)
	}
	if link.ChildModuleID == link.ParentModuleID {
		return rerrors.NewValidationError("自己リンクはできません: %s", link.ChildModuleID)
	}
	if r.modules[parentIndex].CreationOrder >= r.modules[childIndex].CreationOrder {
		return rerrors.NewValidationError(
			"作成順が後の親へはリンクできません: child=%s parent=%s", link.ChildModuleID, link.ParentModuleID)
	}
	r.modules[childIndex].ParentModuleID = link.ParentModuleID
	return nil
}

// Restore はコンテナ直下ノードのタグから登録簿を再構築する。
// 解析不能なタグは警告として読み飛ばし、残りを作成順で復元する。
func (r *ModuleRegistry) Restore(scene rigscene.ISceneService) ([]BuildWarning, error) {
	r.modules = nil
	r.byRootJoint = map[model.NodeRef]string{}
	r.byControlRoot = map[model.NodeRef]string{}
	r.byModuleID = map[string]int{}
	r.nextOrder = 0

	container := model.NodeRef(model.ModuleContainerName)
	if !scene.NodeExists(container) {
		return nil, nil
	}
	children, err := scene.Children(container)
	if err != nil {
		return nil, fmt.Errorf("コンテナ直下ノードの取得に失敗しました: %w", err)
	}

	var warnings []BuildWarning
	var restored []model.ModuleMetadata
	for _, child := range children {
		blob, exists := scene.QueryTag(child)
		if !exists {
			continue
		}
		metadata, err := model.DecodeModuleTag(blob)
		if err != nil {
			warnings = append(warnings, BuildWarning{
				ID:     model.RigWarningTagRestoreSkipped,
				Detail: fmt.Sprintf("%s: %v", child, err),
			})
			continue
		}
		restored = append(restored, metadata)
	}

	sort.SliceStable(restored, func(i, j int) bool {
		return restored[i].CreationOrder < restored[j].CreationOrder
	})
	for _, metadata := range restored {
		if _, exists := r.byRootJoint[metadata.RootJoint]; exists {
			warnings = append(warnings, BuildWarning{
				ID:     model.RigWarningTagRestoreSkipped,
				Detail: fmt.Sprintf("ルートジョイント重複のため読み飛ばしました: %s", metadata.ModuleID),
			})
			continue
		}
		r.insert(metadata)
		if metadata.CreationOrder >= r.nextOrder {
			r.nextOrder = metadata.CreationOrder + 1
		}
	}
	return warnings, nil
}

// insert はメタデータを索引へ登録する。
func (r *ModuleRegistry) insert(metadata model.ModuleMetadata) {
	index := len(r.modules)
	r.modules = append(r.modules, metadata)
	r.byRootJoint[metadata.RootJoint] = metadata.ModuleID
	r.byControlRoot[metadata.ControlRoot] = metadata.ModuleID
	r.byModuleID[metadata.ModuleID] = index
}

// formatModuleID はモジュールIDを採番する。区分なしは N で表す。
func formatModuleID(side model.Side, moduleType model.ModuleType, order int) string {
	sideToken := side.String()
	if side == model.SIDE_NONE {
		sideToken = "N"
	}
	return fmt.Sprintf("%s_%s_%03d", sideToken, moduleType, order)
}
