// 指示: miu200521358
package rinteractor

import (
	"errors"
	"fmt"

	"github.com/ironopen/maya-rig-tools/pkg/adapter/mpresenter/messages"
	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
	"github.com/ironopen/maya-rig-tools/pkg/domain/model/rerrors"
)

// Build はリクエストからモジュールを構築し、有効時はミラー側も続けて構築する。
// 重複モジュールとミラー解決失敗は警告としてスキップし、エラーにはしない。
func (u *RigBuildUsecase) Build(request BuildRequest) (BuildReport, error) {
	config, err := resolveBuildConfig(request.Config)
	if err != nil {
		return BuildReport{}, err
	}

	chain, err := u.resolveChain(request.Chain)
	if err != nil {
		return BuildReport{}, err
	}

	side, base := model.ResolveSideToken(string(chain.Root()))
	if forced, fixed := config.SideMode.ForcedSide(); fixed {
		side = forced
	} else if side == model.SIDE_NONE && request.ModuleType == model.MODULE_TYPE_SPINE {
		// 背骨はトークンなしでも中央側として構築する。
		side = model.SIDE_CENTER
	}
	part := derivePartName(base)

	report := BuildReport{}
	built, err := u.buildOne(&report, config, request, chain, side, part)
	if err != nil {
		return report, err
	}

	if built && config.AutoMirror && (side == model.SIDE_LEFT || side == model.SIDE_RIGHT) {
		if err := u.buildMirror(&report, config, request, chain, side, part); err != nil {
			return report, err
		}
	}
	return report, nil
}

// resolveChain は要求チェーンを返す。未指定ならシーン選択から取得する。
func (u *RigBuildUsecase) resolveChain(chain model.Chain) (model.Chain, error) {
	if len(chain) > 0 {
		return chain, nil
	}
	selected, err := u.scene.SelectedJointsOrdered()
	if err != nil {
		return nil, fmt.Errorf("選択ジョイントの取得に失敗しました: %w", err)
	}
	if len(selected) == 0 {
		return nil, rerrors.NewValidationError(messages.MessageSelectionRequired)
	}
	return model.Chain(selected), nil
}

// buildOne は1チェーン分を構築して結果を集計へ追加する。
// 重複モジュールは警告としてスキップし、構築有無を返す。
func (u *RigBuildUsecase) buildOne(
	report *BuildReport,
	config *resolvedConfig,
	request BuildRequest,
	chain model.Chain,
	side model.Side,
	part string,
) (bool, error) {
	result, err := buildModule(
		u.scene, u.registry, config, request.ProgressReporter, chain, request.ModuleType, side, part)
	if err != nil {
		var duplicateErr *rerrors.DuplicateModuleError
		if errors.As(err, &duplicateErr) {
			report.Warnings = append(report.Warnings, BuildWarning{
				ID:     model.RigWarningDuplicateModuleSkipped,
				Detail: duplicateErr.Error(),
			})
			return false, nil
		}
		return false, err
	}

	result.StatusLine = fmt.Sprintf(
		messages.StatusModuleBuilt, request.ModuleType, side, len(chain))
	report.Results = append(report.Results, result)
	report.StatusLines = append(report.StatusLines, result.StatusLine)
	report.Warnings = append(report.Warnings, result.Warnings...)
	return true, nil
}

// buildMirror は対称チェーンを解決して反対側モジュールを構築する。
// 対称ジョイント不足はミラー側のみの中断として警告に落とす。
func (u *RigBuildUsecase) buildMirror(
	report *BuildReport,
	config *resolvedConfig,
	request BuildRequest,
	chain model.Chain,
	side model.Side,
	part string,
) error {
	mirrorChain, err := resolveMirrorChain(u.scene, chain)
	if err != nil {
		var mirrorErr *rerrors.MirrorValidationError
		if errors.As(err, &mirrorErr) {
			report.Warnings = append(report.Warnings, BuildWarning{
				ID:     model.RigWarningMirrorSkipped,
				Detail: mirrorErr.Error(),
			})
			return nil
		}
		return err
	}
	reportBuildProgress(request.ProgressReporter, BuildProgressEvent{
		Type:       BuildProgressEventTypeMirrorResolved,
		ModuleType: request.ModuleType,
		Side:       side.Opposite(),
		JointCount: len(mirrorChain),
	})

	_, err = u.buildOne(report, config, request, mirrorChain, side.Opposite(), part)
	return err
}
