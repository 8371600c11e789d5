// 指示: miu200521358
package model

const (
	// RigWarningCollinearChainPlane はチェーン3点がほぼ一直線で平面法線が未定義になった警告。
	RigWarningCollinearChainPlane = "RigWarningCollinearChainPlane"
	// RigWarningPoleVectorFallback はポールベクタ配置が既定アップ軸フォールバックになった警告。
	RigWarningPoleVectorFallback = "RigWarningPoleVectorFallback"
	// RigWarningOrientationUpFallback はエイム軸とアップ軸が平行で代替アップ軸を採用した警告。
	RigWarningOrientationUpFallback = "RigWarningOrientationUpFallback"
	// RigWarningMirrorSkipped はミラー側ビルドのみ中断した警告。
	RigWarningMirrorSkipped = "RigWarningMirrorSkipped"
	// RigWarningDuplicateModuleSkipped は重複モジュール検出でビルドをスキップした警告。
	RigWarningDuplicateModuleSkipped = "RigWarningDuplicateModuleSkipped"
	// RigWarningTagRestoreSkipped はタグ復元時に解析不能タグを読み飛ばした警告。
	RigWarningTagRestoreSkipped = "RigWarningTagRestoreSkipped"
)
