// 指示: miu200521358
package model

import (
	"github.com/ironopen/maya-rig-tools/pkg/domain/model/rerrors"
)

// NodeRef はホストシーン内ノードへの不透明ハンドルを表す。
// エンジンはこの値を変更せず、ホスト呼び出しにそのまま渡す。
type NodeRef string

// String はノード参照の文字列表現を返す。
func (n NodeRef) String() string {
	return string(n)
}

// Chain はルートから先端へ並んだジョイント列を表す。順序は変更しない。
type Chain []NodeRef

// Root はルートジョイントを返す。
func (c Chain) Root() NodeRef {
	if len(c) == 0 {
		return NodeRef("")
	}
	return c[0]
}

// Tip は先端ジョイントを返す。
func (c Chain) Tip() NodeRef {
	if len(c) == 0 {
		return NodeRef("")
	}
	return c[len(c)-1]
}

// Validate はジョイント数と重複有無を検証する。
func (c Chain) Validate(minCount int) error {
	if len(c) < minCount {
		return rerrors.NewValidationError("ジョイントを%d個以上選択してください(現在%d個)", minCount, len(c))
	}
	seen := map[NodeRef]struct{}{}
	for _, joint := range c {
		if joint == "" {
			return rerrors.NewValidationError("空のジョイント参照が含まれています")
		}
		if _, exists := seen[joint]; exists {
			return rerrors.NewValidationError("ジョイントが重複しています: %s", joint)
		}
		seen[joint] = struct{}{}
	}
	return nil
}
