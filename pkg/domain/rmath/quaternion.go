// 指示: miu200521358
package rmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quaternion は回転を表す。
type Quaternion struct {
	mgl64.Quat
}

// NewQuaternionIdent は単位回転を生成する。
func NewQuaternionIdent() Quaternion {
	return Quaternion{Quat: mgl64.QuatIdent()}
}

// NewQuaternionFromDegrees はXYZ順のオイラー角(度)から回転を生成する。
func NewQuaternionFromDegrees(degreeX float64, degreeY float64, degreeZ float64) Quaternion {
	return Quaternion{Quat: mgl64.AnglesToQuat(
		DegToRad(degreeX), DegToRad(degreeY), DegToRad(degreeZ), mgl64.XYZ)}
}

// NewQuaternionFromAxes は正規直交基底(X/Y/Z軸)から回転を生成する。
func NewQuaternionFromAxes(axisX Vec3, axisY Vec3, axisZ Vec3) Quaternion {
	basis := mgl64.Mat3FromCols(
		mgl64.Vec3{axisX.X, axisX.Y, axisX.Z},
		mgl64.Vec3{axisY.X, axisY.Y, axisY.Z},
		mgl64.Vec3{axisZ.X, axisZ.Y, axisZ.Z},
	)
	return Quaternion{Quat: mgl64.Mat4ToQuat(basis.Mat4())}
}

// MulVec3 はベクトルへ回転を適用した結果を返す。
func (q Quaternion) MulVec3(v Vec3) Vec3 {
	rotated := q.Quat.Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
	return NewVec3(rotated.X(), rotated.Y(), rotated.Z())
}

// Inverted は逆回転を返す。
func (q Quaternion) Inverted() Quaternion {
	return Quaternion{Quat: q.Quat.Inverse()}
}

// Normalized は正規化した回転を返す。
func (q Quaternion) Normalized() Quaternion {
	return Quaternion{Quat: q.Quat.Normalize()}
}

// AxisX は回転後のX軸を返す。
func (q Quaternion) AxisX() Vec3 {
	return q.MulVec3(UNIT_X_VEC3)
}

// AxisY は回転後のY軸を返す。
func (q Quaternion) AxisY() Vec3 {
	return q.MulVec3(UNIT_Y_VEC3)
}

// AxisZ は回転後のZ軸を返す。
func (q Quaternion) AxisZ() Vec3 {
	return q.MulVec3(UNIT_Z_VEC3)
}

// NearEquals は符号反転を同一視した上で許容誤差内の一致を判定する。
func (q Quaternion) NearEquals(other Quaternion, epsilon float64) bool {
	dot := q.Quat.W*other.Quat.W + q.Quat.V.Dot(other.Quat.V)
	return math.Abs(math.Abs(dot)-1.0) <= epsilon
}
