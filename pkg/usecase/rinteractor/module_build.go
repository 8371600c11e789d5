// 指示: miu200521358
package rinteractor

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"

	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
	"github.com/ironopen/maya-rig-tools/pkg/domain/model/rerrors"
	"github.com/ironopen/maya-rig-tools/pkg/domain/rmath"
	"github.com/ironopen/maya-rig-tools/pkg/usecase/port/rigscene"
)

// ビルド段階名一覧。FatalBuildError の stage に使う。
const (
	buildStageContainer = "container"
	buildStageChains    = "chains"
	buildStageControls  = "controls"
	buildStageBind      = "bind"
	buildStageRegister  = "register"
)

// コントロール・ドライバに付与する属性名一覧。
const (
	attrFKIKSwitch       = "fkIk"
	attrVisibility       = "visibility"
	attrScaleX           = "scaleX"
	attrStretchRestValue = "stretchRestLength"
	attrStretchRatio     = "stretchRatio"
)

// footPartName はフット属性を付与する部位名。
const footPartName = "leg"

// footAttributeNames はフット用IKコントロールへ追加する属性名一覧。
var footAttributeNames = []string{"footRoll", "toeTap", "heelPivot", "bankIn", "bankOut"}

// restPose はジョイント1個分のビルド時ワールド姿勢スナップショットを表す。
type restPose struct {
	Position    rmath.Vec3
	Orientation rmath.Quaternion
}

// moduleBuilder は1モジュール分の段階的構築の状態を保持する。
// 検証段階を通過するまでシーンへの変更は一切行わない。
type moduleBuilder struct {
	scene    rigscene.ISceneService
	registry *ModuleRegistry
	config   *resolvedConfig
	reporter IBuildProgressReporter

	chain      model.Chain
	moduleType model.ModuleType
	behavior   model.ModuleTypeBehavior
	side       model.Side
	part       string

	restPoses    []restPose
	geometry     ChainGeometry
	controlSize  float64
	orientations []rmath.Quaternion
	polePosition rmath.Vec3
	warnings     []BuildWarning

	moduleGroup     model.NodeRef
	fkGroup         model.NodeRef
	ikGroup         model.NodeRef
	fkDrivers       []model.NodeRef
	ikDrivers       []model.NodeRef
	fkControls      []model.NodeRef
	ikControl       model.NodeRef
	poleControl     model.NodeRef
	settingsControl model.NodeRef
	ikHandle        model.NodeRef
	controls        []model.NodeRef
}

// buildModule はチェーン1本からモジュールを段階的に構築する。
// 検証→チェーン複製→コントロール構築→バインド→登録の順で進み、
// シーン変更開始後のホスト失敗は FatalBuildError として返す。
func buildModule(
	scene rigscene.ISceneService,
	registry *ModuleRegistry,
	config *resolvedConfig,
	reporter IBuildProgressReporter,
	chain model.Chain,
	moduleType model.ModuleType,
	side model.Side,
	part string,
) (ModuleBuildResult, error) {
	builder := &moduleBuilder{
		scene:      scene,
		registry:   registry,
		config:     config,
		reporter:   reporter,
		chain:      chain,
		moduleType: moduleType,
		side:       side,
		part:       part,
	}

	stages := []struct {
		run   func() error
		event BuildProgressEventType
	}{
		{run: builder.validate, event: BuildProgressEventTypeValidated},
		{run: builder.duplicateDriverChains, event: BuildProgressEventTypeChainsDuplicated},
		{run: builder.buildControls, event: BuildProgressEventTypeControlsBuilt},
		{run: builder.bindChain, event: BuildProgressEventTypeBound},
	}
	for _, stage := range stages {
		if err := stage.run(); err != nil {
			return ModuleBuildResult{}, err
		}
		builder.reportProgress(stage.event)
	}

	metadata, err := builder.tagAndRegister()
	if err != nil {
		return ModuleBuildResult{}, err
	}
	builder.reportProgress(BuildProgressEventTypeRegistered)

	return ModuleBuildResult{
		Metadata: metadata,
		Controls: builder.controls,
		Warnings: builder.warnings,
	}, nil
}

// reportProgress は進捗通知先へ現在のモジュール情報付きイベントを送る。
func (b *moduleBuilder) reportProgress(eventType BuildProgressEventType) {
	reportBuildProgress(b.reporter, BuildProgressEvent{
		Type:       eventType,
		ModuleType: b.moduleType,
		Side:       b.side,
		JointCount: len(b.chain),
	})
}

// validate は選択チェーンと設定を検証し、配置に必要な導出値をすべて先に計算する。
// この段階で返るエラーはシーンを一切変更していないことを保証する。
func (b *moduleBuilder) validate() error {
	behavior, exists := b.moduleType.Behavior()
	if !exists {
		return rerrors.NewValidationError("未知のモジュール種別です: %s", b.moduleType)
	}
	b.behavior = behavior

	if err := b.moduleType.ValidateJointCount(len(b.chain)); err != nil {
		return err
	}
	if err := b.chain.Validate(behavior.MinJointCount); err != nil {
		return err
	}
	for _, joint := range b.chain {
		if !b.scene.NodeExists(joint) {
			return rerrors.NewValidationError("ジョイントが見つかりません: %s", joint)
		}
	}
	if existing, exists := b.registry.FindByRootJoint(b.chain.Root()); exists {
		return rerrors.NewDuplicateModuleError(string(b.chain.Root()), existing.ModuleID)
	}

	poses := make([]restPose, 0, len(b.chain))
	positions := make([]rmath.Vec3, 0, len(b.chain))
	for _, joint := range b.chain {
		position, err := b.scene.WorldPosition(joint)
		if err != nil {
			return fmt.Errorf("ジョイント位置の取得に失敗しました(%s): %w", joint, err)
		}
		orientation, err := b.scene.WorldOrientation(joint)
		if err != nil {
			return fmt.Errorf("ジョイント回転の取得に失敗しました(%s): %w", joint, err)
		}
		poses = append(poses, restPose{Position: position, Orientation: orientation})
		positions = append(positions, position)
	}
	// バインド先ジョイントが後から動いてもビルド時姿勢を参照できるよう複製して保持する。
	if err := deepcopy.Copy(&b.restPoses, &poses); err != nil {
		return fmt.Errorf("ビルド時姿勢の複製に失敗しました: %w", err)
	}

	geometry, warnings, err := computeChainGeometry(positions)
	if err != nil {
		return err
	}
	b.geometry = geometry
	b.warnings = append(b.warnings, warnings...)

	size, err := resolveControlSize(geometry, b.config.GlobalMultiplier)
	if err != nil {
		return err
	}
	b.controlSize = size

	orientations, orientationWarnings := solveOrientations(geometry)
	b.orientations = orientations
	b.warnings = append(b.warnings, orientationWarnings...)

	if behavior.BuildsIKChain {
		polePosition, poleWarnings, err := solvePoleVector(geometry, b.config)
		if err != nil {
			return err
		}
		b.polePosition = polePosition
		b.warnings = append(b.warnings, poleWarnings...)
	}
	return nil
}

// duplicateDriverChains はコンテナ・モジュールグループを用意し、ドライバチェーンを複製する。
func (b *moduleBuilder) duplicateDriverChains() error {
	container := model.NodeRef(model.ModuleContainerName)
	if !b.scene.NodeExists(container) {
		created, err := b.scene.CreateNode(rigscene.NODE_KIND_TRANSFORM, model.ModuleContainerName, "")
		if err != nil {
			return rerrors.NewFatalBuildError(buildStageContainer, err)
		}
		container = created
	}

	moduleGroup, err := b.scene.CreateNode(
		rigscene.NODE_KIND_TRANSFORM, formatName(b.side, b.part, nameRoleModuleGroup), container)
	if err != nil {
		return rerrors.NewFatalBuildError(buildStageContainer, err)
	}
	b.moduleGroup = moduleGroup

	if b.behavior.BuildsFKChain {
		drivers, err := b.duplicateChain(fkDriverChainSuffix)
		if err != nil {
			return err
		}
		b.fkDrivers = drivers
	}
	if b.behavior.BuildsIKChain {
		drivers, err := b.duplicateChain(ikDriverChainSuffix)
		if err != nil {
			return err
		}
		b.ikDrivers = drivers
	}
	return nil
}

// duplicateChain はビルド時姿勢のドライバジョイント列を複製する。児は順に親へ連結する。
func (b *moduleBuilder) duplicateChain(suffix string) ([]model.NodeRef, error) {
	drivers := make([]model.NodeRef, 0, len(b.chain))
	for i, joint := range b.chain {
		parent := b.moduleGroup
		if i > 0 {
			parent = drivers[i-1]
		}
		driver, err := b.scene.CreateNode(rigscene.NODE_KIND_JOINT, driverJointName(joint, suffix), parent)
		if err != nil {
			return nil, rerrors.NewFatalBuildError(buildStageChains, err)
		}
		if err := b.scene.SetWorldTransform(driver, b.restPoses[i].Position, b.restPoses[i].Orientation); err != nil {
			return nil, rerrors.NewFatalBuildError(buildStageChains, err)
		}
		drivers = append(drivers, driver)
	}
	return drivers, nil
}

// buildControls は種別仕様に従いFK・IK・切替コントロールを構築する。
func (b *moduleBuilder) buildControls() error {
	if b.behavior.BuildsFKChain {
		if err := b.buildFKControls(); err != nil {
			return err
		}
	}
	if b.behavior.BuildsIKChain {
		if err := b.buildIKControls(); err != nil {
			return err
		}
	}
	if b.behavior.BuildsBlend {
		if err := b.buildSettingsControl(); err != nil {
			return err
		}
	}
	return nil
}

// buildFKControls はジョイントごとのFKコントロールをゼログループ付きで階層構築する。
func (b *moduleBuilder) buildFKControls() error {
	fkGroup, err := b.scene.CreateNode(
		rigscene.NODE_KIND_TRANSFORM, formatName(b.side, b.part, nameRoleFKGroup), b.moduleGroup)
	if err != nil {
		return rerrors.NewFatalBuildError(buildStageControls, err)
	}
	b.fkGroup = fkGroup

	parent := fkGroup
	for i, joint := range b.chain {
		controlName := jointControlName(joint, nameRoleFKControl)
		control, err := b.createAlignedControl(
			controlName, parent, b.restPoses[i].Position, b.orientations[i])
		if err != nil {
			return err
		}
		if err := b.scene.Constrain(control, b.fkDrivers[i], rigscene.CONSTRAINT_KIND_PARENT, 1.0); err != nil {
			return rerrors.NewFatalBuildError(buildStageControls, err)
		}
		b.fkControls = append(b.fkControls, control)
		parent = control
	}
	return nil
}

// buildIKControls はIKコントロール・IKハンドル・ポールベクタコントロールを構築する。
func (b *moduleBuilder) buildIKControls() error {
	ikGroup, err := b.scene.CreateNode(
		rigscene.NODE_KIND_TRANSFORM, formatName(b.side, b.part, nameRoleIKGroup), b.moduleGroup)
	if err != nil {
		return rerrors.NewFatalBuildError(buildStageControls, err)
	}
	b.ikGroup = ikGroup

	tipIndex := len(b.chain) - 1
	ikControl, err := b.createAlignedControl(
		formatName(b.side, b.part, nameRoleIKControl), ikGroup,
		b.restPoses[tipIndex].Position, b.orientations[tipIndex])
	if err != nil {
		return err
	}
	b.ikControl = ikControl

	ikHandle, err := b.scene.CreateIKHandle(
		formatName(b.side, b.part, nameRoleIKHandle), b.ikDrivers[0], b.ikDrivers[tipIndex])
	if err != nil {
		return rerrors.NewFatalBuildError(buildStageControls, err)
	}
	if err := b.scene.ParentNode(ikHandle, ikControl); err != nil {
		return rerrors.NewFatalBuildError(buildStageControls, err)
	}
	b.ikHandle = ikHandle

	poleControl, err := b.createAlignedControl(
		formatName(b.side, b.part, nameRolePoleControl), ikGroup,
		b.polePosition, rmath.NewQuaternionIdent())
	if err != nil {
		return err
	}
	if err := b.scene.Constrain(poleControl, ikHandle, rigscene.CONSTRAINT_KIND_POLE_VECTOR, 1.0); err != nil {
		return rerrors.NewFatalBuildError(buildStageControls, err)
	}
	b.poleControl = poleControl

	if b.part == footPartName {
		for _, attribute := range footAttributeNames {
			if err := b.scene.AddAttribute(ikControl, attribute, 0.0); err != nil {
				return rerrors.NewFatalBuildError(buildStageControls, err)
			}
		}
	}
	if b.config.StretchEnabled {
		if err := b.buildStretch(); err != nil {
			return err
		}
	}
	return nil
}

// buildStretch はIKコントロールのストレッチ属性をドライバチェーンのX軸スケールへ接続する。
func (b *moduleBuilder) buildStretch() error {
	if err := b.scene.AddAttribute(b.ikControl, attrStretchRestValue, b.geometry.TotalLength); err != nil {
		return rerrors.NewFatalBuildError(buildStageControls, err)
	}
	ratio, err := b.config.evalStretchRatio(b.geometry.TotalLength, b.geometry.TotalLength)
	if err != nil {
		return err
	}
	if err := b.scene.AddAttribute(b.ikControl, attrStretchRatio, ratio); err != nil {
		return rerrors.NewFatalBuildError(buildStageControls, err)
	}
	for i := 0; i < len(b.ikDrivers)-1; i++ {
		if err := b.scene.ConnectAttribute(
			b.ikControl, attrStretchRatio, b.ikDrivers[i], attrScaleX, false); err != nil {
			return rerrors.NewFatalBuildError(buildStageControls, err)
		}
	}
	return nil
}

// buildSettingsControl はFK/IK切替属性を持つ設定コントロールを構築する。
func (b *moduleBuilder) buildSettingsControl() error {
	tipIndex := len(b.chain) - 1
	control, err := b.createAlignedControl(
		formatName(b.side, b.part, nameRoleSettingsControl), b.moduleGroup,
		b.restPoses[tipIndex].Position, rmath.NewQuaternionIdent())
	if err != nil {
		return err
	}
	if err := b.scene.AddAttribute(control, attrFKIKSwitch, 0.0); err != nil {
		return rerrors.NewFatalBuildError(buildStageControls, err)
	}
	b.settingsControl = control
	return nil
}

// createAlignedControl はゼログループ付きコントロールを指定姿勢で生成する。
// 姿勢はゼログループ側が担い、コントロール自体は無変換で生まれる。
func (b *moduleBuilder) createAlignedControl(
	name string, parent model.NodeRef, position rmath.Vec3, orientation rmath.Quaternion,
) (model.NodeRef, error) {
	zeroGroup, err := b.scene.CreateNode(rigscene.NODE_KIND_TRANSFORM, zeroGroupName(name), parent)
	if err != nil {
		return "", rerrors.NewFatalBuildError(buildStageControls, err)
	}
	if err := b.scene.SetWorldTransform(zeroGroup, position, orientation); err != nil {
		return "", rerrors.NewFatalBuildError(buildStageControls, err)
	}
	control, err := b.scene.CreateNode(rigscene.NODE_KIND_CONTROL_CURVE, name, zeroGroup)
	if err != nil {
		return "", rerrors.NewFatalBuildError(buildStageControls, err)
	}
	if err := b.scene.SetLocalScale(control, b.controlSize); err != nil {
		return "", rerrors.NewFatalBuildError(buildStageControls, err)
	}
	b.controls = append(b.controls, control)
	return control, nil
}

// bindChain はドライバチェーンをバインド先ジョイントへ接続する。
// 切替ありはFK・IK双方のコンストレイントを張り、ウェイトを切替属性で駆動する。
func (b *moduleBuilder) bindChain() error {
	if b.behavior.BuildsBlend {
		return b.bindBlendChain()
	}

	drivers := b.fkDrivers
	if b.behavior.BuildsIKChain {
		drivers = b.ikDrivers
	}
	for i, joint := range b.chain {
		if err := b.scene.Constrain(drivers[i], joint, rigscene.CONSTRAINT_KIND_PARENT, 1.0); err != nil {
			return rerrors.NewFatalBuildError(buildStageBind, err)
		}
	}
	return nil
}

// bindBlendChain はFK・IK両ドライバをバインドし、切替属性でウェイトと可視性を駆動する。
// 切替属性は0でFK、1でIKを採用する。
func (b *moduleBuilder) bindBlendChain() error {
	for i, joint := range b.chain {
		if err := b.scene.Constrain(b.fkDrivers[i], joint, rigscene.CONSTRAINT_KIND_PARENT, 1.0); err != nil {
			return rerrors.NewFatalBuildError(buildStageBind, err)
		}
		if err := b.scene.Constrain(b.ikDrivers[i], joint, rigscene.CONSTRAINT_KIND_PARENT, 1.0); err != nil {
			return rerrors.NewFatalBuildError(buildStageBind, err)
		}
		if err := b.scene.ConnectAttribute(
			b.settingsControl, attrFKIKSwitch,
			joint, rigscene.ConstraintWeightAttribute(b.ikDrivers[i]), false); err != nil {
			return rerrors.NewFatalBuildError(buildStageBind, err)
		}
		if err := b.scene.ConnectAttribute(
			b.settingsControl, attrFKIKSwitch,
			joint, rigscene.ConstraintWeightAttribute(b.fkDrivers[i]), true); err != nil {
			return rerrors.NewFatalBuildError(buildStageBind, err)
		}
	}

	if err := b.scene.ConnectAttribute(
		b.settingsControl, attrFKIKSwitch, b.fkGroup, attrVisibility, true); err != nil {
		return rerrors.NewFatalBuildError(buildStageBind, err)
	}
	if err := b.scene.ConnectAttribute(
		b.settingsControl, attrFKIKSwitch, b.ikGroup, attrVisibility, false); err != nil {
		return rerrors.NewFatalBuildError(buildStageBind, err)
	}
	return nil
}

// tagAndRegister はモジュールグループへタグを書き込み、登録簿へ登録する。
// 祖先に既存モジュールがあれば親リンクを記録し、モジュールグループを追従させる。
func (b *moduleBuilder) tagAndRegister() (model.ModuleMetadata, error) {
	metadata, err := b.registry.Register(model.ModuleMetadata{
		Side:        b.side,
		Type:        b.moduleType,
		RootJoint:   b.chain.Root(),
		ControlRoot: b.moduleGroup,
	})
	if err != nil {
		return model.ModuleMetadata{}, rerrors.NewFatalBuildError(buildStageRegister, err)
	}

	parent, found, err := b.registry.FindParentCandidate(b.scene, b.chain.Root())
	if err != nil {
		return model.ModuleMetadata{}, rerrors.NewFatalBuildError(buildStageRegister, err)
	}
	if found {
		link := model.ModuleLink{ChildModuleID: metadata.ModuleID, ParentModuleID: parent.ModuleID}
		if err := b.registry.Link(link); err != nil {
			return model.ModuleMetadata{}, rerrors.NewFatalBuildError(buildStageRegister, err)
		}
		metadata.ParentModuleID = parent.ModuleID
		if err := b.scene.Constrain(
			parent.ControlRoot, b.moduleGroup, rigscene.CONSTRAINT_KIND_PARENT, 1.0); err != nil {
			return model.ModuleMetadata{}, rerrors.NewFatalBuildError(buildStageRegister, err)
		}
	}

	blob, err := model.EncodeModuleTag(metadata)
	if err != nil {
		return model.ModuleMetadata{}, rerrors.NewFatalBuildError(buildStageRegister, err)
	}
	if err := b.scene.TagNode(b.moduleGroup, blob); err != nil {
		return model.ModuleMetadata{}, rerrors.NewFatalBuildError(buildStageRegister, err)
	}
	return metadata, nil
}
