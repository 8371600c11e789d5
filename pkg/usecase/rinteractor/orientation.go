// 指示: miu200521358
package rinteractor

import (
	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
	"github.com/ironopen/maya-rig-tools/pkg/domain/rmath"
)

// parallelUpEpsilon はエイム軸とアップ軸を平行とみなすしきい値。
const parallelUpEpsilon = 1e-8

// solveOrientations は各ジョイントのコントロール用回転を導出する。
// 前方軸(X)は次ジョイントへのエイム、アップ軸(Y)は平面法線から解決する。
// 先端は直前ジョイントの回転を継承する。結果の基底は常に正規直交になる。
func solveOrientations(geometry ChainGeometry) ([]rmath.Quaternion, []BuildWarning) {
	jointCount := len(geometry.Positions)
	orientations := make([]rmath.Quaternion, jointCount)
	var warnings []BuildWarning

	upSource := rmath.UNIT_Y_VEC3
	if geometry.PlaneValid {
		upSource = geometry.PlaneNormal
	}

	previousAim := rmath.UNIT_X_VEC3
	for i := 0; i < jointCount-1; i++ {
		aim := geometry.Segments[i].Direction
		if aim.Length() <= zeroLengthEpsilon {
			// 長さ0セグメントは直前のエイム方向を引き継ぐ。
			aim = previousAim
		}
		orientation, fellBack := solveAimOrientation(aim, upSource)
		if fellBack {
			warnings = append(warnings, BuildWarning{
				ID:     model.RigWarningOrientationUpFallback,
				Detail: "エイム軸とアップ軸が平行のため代替アップ軸を採用しました",
			})
		}
		orientations[i] = orientation
		previousAim = aim
	}
	if jointCount >= 2 {
		orientations[jointCount-1] = orientations[jointCount-2]
	}
	return orientations, warnings
}

// solveAimOrientation はエイム軸とアップ候補から正規直交基底の回転を返す。
// アップ候補がエイムと平行な場合はワールドY、次いでワールドXへ決定的に切り替える。
func solveAimOrientation(aim rmath.Vec3, upCandidate rmath.Vec3) (rmath.Quaternion, bool) {
	axisX := aim.Normalized()
	fellBack := false

	axisY, ok := orthogonalUpAxis(axisX, upCandidate)
	if !ok {
		fellBack = true
		axisY, ok = orthogonalUpAxis(axisX, rmath.UNIT_Y_VEC3)
	}
	if !ok {
		axisY, _ = orthogonalUpAxis(axisX, rmath.UNIT_X_VEC3)
	}

	axisZ := axisX.Cross(axisY)
	return rmath.NewQuaternionFromAxes(axisX, axisY, axisZ).Normalized(), fellBack
}

// orthogonalUpAxis はアップ候補をエイム軸に直交化して返す。平行なら false を返す。
func orthogonalUpAxis(axisX rmath.Vec3, upCandidate rmath.Vec3) (rmath.Vec3, bool) {
	projected := rmath.ProjectOnPlane(upCandidate, axisX)
	if projected.Length() <= parallelUpEpsilon {
		return rmath.ZERO_VEC3, false
	}
	return projected.Normalized(), true
}
