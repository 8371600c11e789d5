// 指示: miu200521358
// Package rinteractor はジョイント選択からリグモジュールを構築するユースケースを提供する。
package rinteractor

import (
	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
)

// BuildProgressEventType はモジュール構築の進捗イベント種別を表す。
type BuildProgressEventType string

const (
	// BuildProgressEventTypeValidated は検証完了イベントを表す。以降はシーン変更が始まる。
	BuildProgressEventTypeValidated BuildProgressEventType = "validated"
	// BuildProgressEventTypeChainsDuplicated はドライバチェーン複製完了イベントを表す。
	BuildProgressEventTypeChainsDuplicated BuildProgressEventType = "chains_duplicated"
	// BuildProgressEventTypeControlsBuilt はコントロール構築完了イベントを表す。
	BuildProgressEventTypeControlsBuilt BuildProgressEventType = "controls_built"
	// BuildProgressEventTypeBound はバインド接続完了イベントを表す。
	BuildProgressEventTypeBound BuildProgressEventType = "bound"
	// BuildProgressEventTypeRegistered はタグ書き込み・登録完了イベントを表す。
	BuildProgressEventTypeRegistered BuildProgressEventType = "registered"
	// BuildProgressEventTypeMirrorResolved はミラー対象チェーン解決完了イベントを表す。
	BuildProgressEventTypeMirrorResolved BuildProgressEventType = "mirror_resolved"
)

// BuildProgressEvent はモジュール構築の進捗イベントを表す。
type BuildProgressEvent struct {
	Type       BuildProgressEventType
	ModuleType model.ModuleType
	Side       model.Side
	JointCount int
}

// IBuildProgressReporter はモジュール構築の進捗通知契約を表す。
type IBuildProgressReporter interface {
	// ReportBuildProgress は構築進捗を通知する。
	ReportBuildProgress(event BuildProgressEvent)
}

// BuildWarning は構築中の非致命的な事象を表す。
type BuildWarning struct {
	ID     string
	Detail string
}

// BuildRequest はモジュール構築要求を表す。
type BuildRequest struct {
	// Chain は構築対象のジョイント列。空の場合はシーン選択から取得する。
	Chain model.Chain
	// ModuleType は構築するモジュール種別。
	ModuleType model.ModuleType
	// Config はUI層から渡されるビルド設定。
	Config BuildConfig
	// ProgressReporter は進捗通知先(省略可)。
	ProgressReporter IBuildProgressReporter
}

// ModuleBuildResult は1モジュール分の構築結果を表す。
type ModuleBuildResult struct {
	Metadata   model.ModuleMetadata
	Controls   []model.NodeRef
	StatusLine string
	Warnings   []BuildWarning
}

// BuildReport はビルド全体(ミラー側含む)の結果を表す。
type BuildReport struct {
	Results     []ModuleBuildResult
	StatusLines []string
	Warnings    []BuildWarning
}

// reportBuildProgress は進捗通知先が設定されている場合のみ通知する。
func reportBuildProgress(reporter IBuildProgressReporter, event BuildProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportBuildProgress(event)
}
