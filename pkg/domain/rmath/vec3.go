// 指示: miu200521358
// Package rmath はリグ構築に使うベクトル・回転計算を提供する。
package rmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 は3次元ベクトルを表す。
type Vec3 struct {
	r3.Vec
}

// 基本ベクトル定数一覧。
var (
	ZERO_VEC3   = Vec3{Vec: r3.Vec{X: 0, Y: 0, Z: 0}}
	UNIT_X_VEC3 = Vec3{Vec: r3.Vec{X: 1, Y: 0, Z: 0}}
	UNIT_Y_VEC3 = Vec3{Vec: r3.Vec{X: 0, Y: 1, Z: 0}}
	UNIT_Z_VEC3 = Vec3{Vec: r3.Vec{X: 0, Y: 0, Z: 1}}
)

// NewVec3 は成分指定でベクトルを生成する。
func NewVec3(x float64, y float64, z float64) Vec3 {
	return Vec3{Vec: r3.Vec{X: x, Y: y, Z: z}}
}

// Added は加算結果を返す。
func (v Vec3) Added(other Vec3) Vec3 {
	return Vec3{Vec: r3.Add(v.Vec, other.Vec)}
}

// Subed は減算結果を返す。
func (v Vec3) Subed(other Vec3) Vec3 {
	return Vec3{Vec: r3.Sub(v.Vec, other.Vec)}
}

// MuledScalar はスカラー倍結果を返す。
func (v Vec3) MuledScalar(scale float64) Vec3 {
	return Vec3{Vec: r3.Scale(scale, v.Vec)}
}

// Dot は内積を返す。
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(v.Vec, other.Vec)
}

// Cross は外積を返す。
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{Vec: r3.Cross(v.Vec, other.Vec)}
}

// Length はベクトル長を返す。
func (v Vec3) Length() float64 {
	return r3.Norm(v.Vec)
}

// Normalized は正規化結果を返す。長さ0の場合は零ベクトルを返す。
func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length <= 0 {
		return ZERO_VEC3
	}
	return Vec3{Vec: r3.Scale(1.0/length, v.Vec)}
}

// NearEquals は許容誤差内で一致するか判定する。
func (v Vec3) NearEquals(other Vec3, epsilon float64) bool {
	return math.Abs(v.X-other.X) <= epsilon &&
		math.Abs(v.Y-other.Y) <= epsilon &&
		math.Abs(v.Z-other.Z) <= epsilon
}

// MeanVec3 は複数ベクトルの平均を返す。
func MeanVec3(values ...Vec3) Vec3 {
	if len(values) == 0 {
		return ZERO_VEC3
	}
	sum := ZERO_VEC3
	for _, value := range values {
		sum = sum.Added(value)
	}
	return sum.MuledScalar(1.0 / float64(len(values)))
}

// ProjectOnPlane は法線に直交する平面へ射影した結果を返す。
func ProjectOnPlane(v Vec3, normal Vec3) Vec3 {
	unit := normal.Normalized()
	if unit.Length() <= 0 {
		return v
	}
	return v.Subed(unit.MuledScalar(v.Dot(unit)))
}

// DegToRad は度をラジアンへ変換する。
func DegToRad(degree float64) float64 {
	return degree * math.Pi / 180.0
}
