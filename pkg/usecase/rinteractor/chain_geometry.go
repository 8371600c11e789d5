// 指示: miu200521358
package rinteractor

import (
	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
	"github.com/ironopen/maya-rig-tools/pkg/domain/model/rerrors"
	"github.com/ironopen/maya-rig-tools/pkg/domain/rmath"
)

const (
	// collinearSinEpsilon は3点を一直線とみなす外積比のしきい値。
	collinearSinEpsilon = 1e-6
	// zeroLengthEpsilon はセグメント長を0とみなすしきい値。
	zeroLengthEpsilon = 1e-10
)

// SegmentGeometry は隣接ジョイント1区間の導出値を表す。ビルドごとに再計算する。
type SegmentGeometry struct {
	Length    float64
	Direction rmath.Vec3
}

// ChainGeometry はチェーン全体の導出値を表す。
type ChainGeometry struct {
	Positions         []rmath.Vec3
	Segments          []SegmentGeometry
	TotalLength       float64
	MeanSegmentLength float64
	// PlaneNormal はルート・中間・先端3点の最適平面法線。PlaneValidがfalseなら未定義。
	PlaneNormal rmath.Vec3
	PlaneValid  bool
}

// computeChainGeometry はジョイント位置列からチェーン幾何を導出する。
// 3点がほぼ一直線の場合は平面法線を未定義として警告を返す(エラーにはしない)。
func computeChainGeometry(positions []rmath.Vec3) (ChainGeometry, []BuildWarning, error) {
	if len(positions) < 2 {
		return ChainGeometry{}, nil, rerrors.NewValidationError(
			"チェーン幾何の計算にはジョイント2個以上が必要です(現在%d個)", len(positions))
	}

	geometry := ChainGeometry{
		Positions: positions,
		Segments:  make([]SegmentGeometry, 0, len(positions)-1),
	}
	for i := 0; i < len(positions)-1; i++ {
		delta := positions[i+1].Subed(positions[i])
		length := delta.Length()
		segment := SegmentGeometry{Length: length}
		if length > zeroLengthEpsilon {
			segment.Direction = delta.MuledScalar(1.0 / length)
		}
		geometry.Segments = append(geometry.Segments, segment)
		geometry.TotalLength += length
	}
	geometry.MeanSegmentLength = geometry.TotalLength / float64(len(geometry.Segments))

	var warnings []BuildWarning
	if len(positions) >= 3 {
		normal, valid := chainPlaneNormal(positions)
		geometry.PlaneNormal = normal
		geometry.PlaneValid = valid
		if !valid {
			warnings = append(warnings, BuildWarning{
				ID:     model.RigWarningCollinearChainPlane,
				Detail: "チェーン3点がほぼ一直線のため平面法線を定義できません",
			})
		}
	}
	return geometry, warnings, nil
}

// chainPlaneNormal はルート・中間・先端3点の平面法線を返す。
// 外積の大きさが辺長に対して小さすぎる場合は未定義として false を返す。
func chainPlaneNormal(positions []rmath.Vec3) (rmath.Vec3, bool) {
	root := positions[0]
	mid := positions[len(positions)/2]
	tip := positions[len(positions)-1]

	toMid := mid.Subed(root)
	toTip := tip.Subed(root)
	cross := toMid.Cross(toTip)

	scale := toMid.Length() * toTip.Length()
	if scale <= zeroLengthEpsilon || cross.Length() <= collinearSinEpsilon*scale {
		return rmath.ZERO_VEC3, false
	}
	return cross.Normalized(), true
}

// resolveControlSize はチェーン幾何と倍率からコントロールサイズを導出する。
// 全セグメント長が0の退化チェーンではシーン変更前にエラーを返す。
func resolveControlSize(geometry ChainGeometry, multiplier float64) (float64, error) {
	if multiplier <= 0 {
		return 0, rerrors.NewValidationError("コントロールサイズ倍率は正の値が必要です: %f", multiplier)
	}
	if geometry.MeanSegmentLength <= zeroLengthEpsilon {
		return 0, rerrors.NewDegenerateChainError("全セグメント長が0のためコントロールサイズを決定できません")
	}
	return geometry.MeanSegmentLength * multiplier, nil
}
