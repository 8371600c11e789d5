// 指示: miu200521358
package rinteractor

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
	"gopkg.in/Knetic/govaluate.v3"

	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
	"github.com/ironopen/maya-rig-tools/pkg/domain/model/rerrors"
)

// 計算式の既定値一覧。数値を直接埋め込まず式として持ち、UI側から差し替え可能にする。
const (
	defaultPoleOffsetExpression   = "chainLength * 0.5"
	defaultStretchRatioExpression = "currentLength / restLength"
)

// BuildConfig はUI層から渡されるビルド設定を表す。
// エンジンはこの値渡し設定以外の外部状態を参照しない。
type BuildConfig struct {
	// GlobalMultiplier はコントロールサイズ倍率(>0)。
	GlobalMultiplier float64
	// SideMode は側面の指定方法。
	SideMode model.SideMode
	// AutoMirror は反対側モジュールの自動構築有無。
	AutoMirror bool
	// StretchEnabled はIK系モジュールのストレッチ構築有無。
	StretchEnabled bool
	// PoleOffsetExpression はポールベクタオフセット距離の計算式(空なら既定式)。
	// 変数: chainLength, meanSegment
	PoleOffsetExpression string
	// StretchRatioExpression はストレッチ比率の計算式(空なら既定式)。
	// 変数: currentLength, restLength
	StretchRatioExpression string
}

// DefaultBuildConfig は既定のビルド設定を返す。
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		GlobalMultiplier: 1.0,
		SideMode:         model.SIDE_MODE_AUTO,
	}
}

// resolvedConfig は式の事前コンパイル済みビルド設定を表す。
type resolvedConfig struct {
	BuildConfig

	poleOffsetExpression   *govaluate.EvaluableExpression
	stretchRatioExpression *govaluate.EvaluableExpression
}

// resolveBuildConfig は設定値を検証し、計算式をコンパイルした設定を返す。
// 設定不備はシーン変更前の検証エラーとして返す。
func resolveBuildConfig(config BuildConfig) (*resolvedConfig, error) {
	var snapshot BuildConfig
	if err := deepcopy.Copy(&snapshot, &config); err != nil {
		return nil, fmt.Errorf("ビルド設定の複製に失敗しました: %w", err)
	}

	if snapshot.GlobalMultiplier <= 0 {
		return nil, rerrors.NewValidationError("コントロールサイズ倍率は正の値が必要です: %f", snapshot.GlobalMultiplier)
	}
	if snapshot.SideMode == "" {
		snapshot.SideMode = model.SIDE_MODE_AUTO
	}

	poleExpression, err := compileExpression(snapshot.PoleOffsetExpression, defaultPoleOffsetExpression)
	if err != nil {
		return nil, rerrors.NewValidationError("ポールベクタオフセット式が不正です: %v", err)
	}
	stretchExpression, err := compileExpression(snapshot.StretchRatioExpression, defaultStretchRatioExpression)
	if err != nil {
		return nil, rerrors.NewValidationError("ストレッチ比率式が不正です: %v", err)
	}

	return &resolvedConfig{
		BuildConfig:            snapshot,
		poleOffsetExpression:   poleExpression,
		stretchRatioExpression: stretchExpression,
	}, nil
}

// compileExpression は計算式をコンパイルする。空なら既定式を使う。
func compileExpression(expression string, fallback string) (*govaluate.EvaluableExpression, error) {
	source := expression
	if source == "" {
		source = fallback
	}
	return govaluate.NewEvaluableExpression(source)
}

// evalPoleOffset はポールベクタオフセット距離を評価する。
func (c *resolvedConfig) evalPoleOffset(chainLength float64, meanSegment float64) (float64, error) {
	return evalNumericExpression(c.poleOffsetExpression, map[string]interface{}{
		"chainLength": chainLength,
		"meanSegment": meanSegment,
	})
}

// evalStretchRatio はストレッチ比率を評価する。比率は1.0未満にならない。
func (c *resolvedConfig) evalStretchRatio(currentLength float64, restLength float64) (float64, error) {
	ratio, err := evalNumericExpression(c.stretchRatioExpression, map[string]interface{}{
		"currentLength": currentLength,
		"restLength":    restLength,
	})
	if err != nil {
		return 0, err
	}
	if ratio < 1.0 {
		return 1.0, nil
	}
	return ratio, nil
}

// evalNumericExpression は計算式を数値として評価する。
func evalNumericExpression(expression *govaluate.EvaluableExpression, parameters map[string]interface{}) (float64, error) {
	result, err := expression.Evaluate(parameters)
	if err != nil {
		return 0, fmt.Errorf("計算式の評価に失敗しました: %w", err)
	}
	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("計算式の結果が数値ではありません: %v", result)
	}
	return value, nil
}
