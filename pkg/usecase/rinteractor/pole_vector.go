// 指示: miu200521358
package rinteractor

import (
	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
	"github.com/ironopen/maya-rig-tools/pkg/domain/rmath"
)

// solvePoleVector はIKポールベクタコントロールの配置位置を求める。
// 基点はルートと先端の中点、方向はチェーン平面の法線とする。
// 平面が縮退している場合はワールドアップの直交成分へ切り替え、警告を添える。
func solvePoleVector(geometry ChainGeometry, config *resolvedConfig) (rmath.Vec3, []BuildWarning, error) {
	root := geometry.Positions[0]
	tip := geometry.Positions[len(geometry.Positions)-1]
	base := rmath.MeanVec3(root, tip)

	var warnings []BuildWarning
	direction := geometry.PlaneNormal
	if !geometry.PlaneValid || direction.Length() <= zeroLengthEpsilon {
		direction = fallbackPoleDirection(root, tip)
		warnings = append(warnings, BuildWarning{
			ID:     model.RigWarningPoleVectorFallback,
			Detail: "チェーン平面が縮退しているため代替ポール方向を採用しました",
		})
	}

	offset, err := config.evalPoleOffset(geometry.TotalLength, geometry.MeanSegmentLength)
	if err != nil {
		return rmath.ZERO_VEC3, warnings, err
	}

	position := base.Added(direction.Normalized().MuledScalar(offset))
	return position, warnings, nil
}

// fallbackPoleDirection はルートから先端への軸に直交するワールドアップ成分を返す。
// 軸がワールドYと平行な場合はワールドXの直交成分を使う。
func fallbackPoleDirection(root rmath.Vec3, tip rmath.Vec3) rmath.Vec3 {
	axis := tip.Subed(root).Normalized()
	if axis.Length() <= zeroLengthEpsilon {
		return rmath.UNIT_Y_VEC3
	}
	projected := rmath.ProjectOnPlane(rmath.UNIT_Y_VEC3, axis)
	if projected.Length() <= parallelUpEpsilon {
		projected = rmath.ProjectOnPlane(rmath.UNIT_X_VEC3, axis)
	}
	return projected.Normalized()
}
