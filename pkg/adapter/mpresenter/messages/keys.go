// 指示: miu200521358
// Package messages はUI表示に使うメッセージキーを提供する。
package messages

// メッセージキー一覧。
const (
	LabelMultiplier    = "コントロールサイズ倍率"
	LabelMultiplierTip = "コントロールサイズ倍率説明"
	LabelSideMode      = "左右区分"
	LabelSideModeTip   = "左右区分説明"
	LabelAutoMirror    = "ミラー自動構築"
	LabelAutoMirrorTip = "ミラー自動構築説明"
	LabelStretch       = "ストレッチ有効化"
	LabelStretchTip    = "ストレッチ有効化説明"
	LabelBuildFK       = "FK構築"
	LabelBuildIK       = "IK構築"
	LabelBuildFKIK     = "FK/IK構築"
	LabelBuildSpine    = "スパイン構築"

	MessageSelectionRequired = "ジョイントチェーンを選択してください"
	MessageBuildFailed       = "モジュール構築失敗"
	MessageMirrorSkipped     = "ミラー側の構築をスキップしました"
	MessageDuplicateSkipped  = "同一チェーンのモジュールが既にあるため構築をスキップしました"

	StatusModuleBuilt = "%sモジュール構築完了: side=%s joints=%d"
)
