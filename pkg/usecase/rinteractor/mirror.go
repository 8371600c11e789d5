// 指示: miu200521358
package rinteractor

import (
	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
	"github.com/ironopen/maya-rig-tools/pkg/domain/model/rerrors"
	"github.com/ironopen/maya-rig-tools/pkg/usecase/port/rigscene"
)

// resolveMirrorChain はチェーン各ジョイント名の側面トークンを反転した対称チェーンを返す。
// 反転可能な対応名がシーンに存在しないジョイント、および左右トークンを持たない
// ジョイントは不足分としてまとめて MirrorValidationError で返す。部分構築はしない。
func resolveMirrorChain(scene rigscene.ISceneService, chain model.Chain) (model.Chain, error) {
	mirrored := make(model.Chain, 0, len(chain))
	var missing []string
	for _, joint := range chain {
		name, swapped := model.MirroredName(string(joint))
		target := model.NodeRef(name)
		if !swapped || !scene.NodeExists(target) {
			missing = append(missing, name)
		}
		mirrored = append(mirrored, target)
	}
	if len(missing) > 0 {
		return nil, rerrors.NewMirrorValidationError(missing)
	}
	return mirrored, nil
}
