// 指示: miu200521358
// Package rerrors はリグ構築のエラー分類を提供する。
package rerrors

import (
	"fmt"
	"strings"
)

// ValidationError は選択・構成の検証失敗を表す。シーン変更前に返る。
type ValidationError struct {
	Message string
}

// NewValidationError は検証エラーを生成する。
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Error はエラー文言を返す。
func (e *ValidationError) Error() string {
	return e.Message
}

// DegenerateChainError は退化チェーン(全セグメント長0など)を表す。
type DegenerateChainError struct {
	Message string
}

// NewDegenerateChainError は退化チェーンエラーを生成する。
func NewDegenerateChainError(format string, args ...any) *DegenerateChainError {
	return &DegenerateChainError{Message: fmt.Sprintf(format, args...)}
}

// Error はエラー文言を返す。
func (e *DegenerateChainError) Error() string {
	return e.Message
}

// MirrorValidationError はミラー対象ジョイント不足を表す。ミラー側のみ中断する。
type MirrorValidationError struct {
	MissingJoints []string
}

// NewMirrorValidationError はミラー検証エラーを生成する。
func NewMirrorValidationError(missingJoints []string) *MirrorValidationError {
	return &MirrorValidationError{MissingJoints: missingJoints}
}

// Error はエラー文言を返す。
func (e *MirrorValidationError) Error() string {
	return fmt.Sprintf("ミラー対象ジョイントが見つかりません: %s", strings.Join(e.MissingJoints, ", "))
}

// DuplicateModuleError は同一ルートジョイントへの再構築を表す。ビルドはスキップされる。
type DuplicateModuleError struct {
	RootJoint string
	ModuleID  string
}

// NewDuplicateModuleError は重複モジュールエラーを生成する。
func NewDuplicateModuleError(rootJoint string, moduleID string) *DuplicateModuleError {
	return &DuplicateModuleError{RootJoint: rootJoint, ModuleID: moduleID}
}

// Error はエラー文言を返す。
func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("ルートジョイント %s には既にモジュール %s が登録されています", e.RootJoint, e.ModuleID)
}

// FatalBuildError はノード生成開始後のホスト側失敗を表す。
// 部分生成ノードが残るため、呼び出し側は手動クリーンアップを案内する。
type FatalBuildError struct {
	Stage string
	Err   error
}

// NewFatalBuildError は致命的ビルドエラーを生成する。
func NewFatalBuildError(stage string, err error) *FatalBuildError {
	return &FatalBuildError{Stage: stage, Err: err}
}

// Error はエラー文言を返す。
func (e *FatalBuildError) Error() string {
	return fmt.Sprintf("ホスト側の操作に失敗しました(stage=%s)。シーンを確認して手動でクリーンアップしてください: %v", e.Stage, e.Err)
}

// Unwrap は原因エラーを返す。
func (e *FatalBuildError) Unwrap() error {
	return e.Err
}
