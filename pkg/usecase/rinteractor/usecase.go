// 指示: miu200521358
package rinteractor

import (
	"github.com/ironopen/maya-rig-tools/pkg/usecase/port/rigscene"
)

// RigBuildUsecaseDeps はリグ構築ユースケースの依存を表す。
type RigBuildUsecaseDeps struct {
	Scene    rigscene.ISceneService
	Registry *ModuleRegistry
}

// RigBuildUsecase はジョイント選択からのリグモジュール構築処理をまとめたユースケースを表す。
type RigBuildUsecase struct {
	scene    rigscene.ISceneService
	registry *ModuleRegistry
}

// NewRigBuildUsecase はリグ構築ユースケースを生成する。登録簿未指定時は空で始める。
func NewRigBuildUsecase(deps RigBuildUsecaseDeps) *RigBuildUsecase {
	registry := deps.Registry
	if registry == nil {
		registry = NewModuleRegistry()
	}
	return &RigBuildUsecase{
		scene:    deps.Scene,
		registry: registry,
	}
}

// Registry はモジュール登録簿を返す。
func (u *RigBuildUsecase) Registry() *ModuleRegistry {
	return u.registry
}

// RestoreRegistry はシーンのタグから登録簿を再構築する。シーン再オープン後に使う。
func (u *RigBuildUsecase) RestoreRegistry() ([]BuildWarning, error) {
	return u.registry.Restore(u.scene)
}
