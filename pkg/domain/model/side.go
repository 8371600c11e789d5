// 指示: miu200521358
// Package model はリグモジュール構築のドメインモデルを提供する。
package model

import (
	"strings"
	"unicode"
)

// Side はジョイント・モジュールの左右区分を表す。
type Side string

const (
	// SIDE_LEFT は左側を表す。
	SIDE_LEFT Side = "L"
	// SIDE_RIGHT は右側を表す。
	SIDE_RIGHT Side = "R"
	// SIDE_CENTER は中央を表す。
	SIDE_CENTER Side = "C"
	// SIDE_NONE は区分なしを表す。
	SIDE_NONE Side = ""
)

// SideMode はビルド時の左右区分指定方法を表す。
type SideMode string

const (
	// SIDE_MODE_AUTO は名前からの自動判定を表す。
	SIDE_MODE_AUTO SideMode = "AUTO"
	// SIDE_MODE_LEFT は左側固定を表す。
	SIDE_MODE_LEFT SideMode = "L"
	// SIDE_MODE_RIGHT は右側固定を表す。
	SIDE_MODE_RIGHT SideMode = "R"
	// SIDE_MODE_CENTER は中央固定を表す。
	SIDE_MODE_CENTER SideMode = "C"
)

// sideTokenPlacement は側面トークンの出現位置種別を表す。
type sideTokenPlacement int

const (
	// sideTokenPlacementNone はトークン不一致を表す。
	sideTokenPlacementNone sideTokenPlacement = iota
	// sideTokenPlacementLeading は先頭トークン("L_〜")を表す。
	sideTokenPlacementLeading
	// sideTokenPlacementEmbedded は埋め込みトークン("〜_L_〜")を表す。
	sideTokenPlacementEmbedded
	// sideTokenPlacementWord は単語トークン("left〜")を表す。
	sideTokenPlacementWord
)

// sideWordTokens は単語形トークンと側面の対応を保持する。長いトークン優先で並べる。
var sideWordTokens = []struct {
	Word string
	Side Side
}{
	{Word: "center", Side: SIDE_CENTER},
	{Word: "right", Side: SIDE_RIGHT},
	{Word: "left", Side: SIDE_LEFT},
}

// sideLetterTokens は1文字トークンと側面の対応を保持する。
var sideLetterTokens = []struct {
	Letter string
	Side   Side
}{
	{Letter: "L", Side: SIDE_LEFT},
	{Letter: "R", Side: SIDE_RIGHT},
	{Letter: "C", Side: SIDE_CENTER},
}

// sideTokenMatch は側面トークン判定結果を表す。
type sideTokenMatch struct {
	Side      Side
	Placement sideTokenPlacement
	TokenLen  int
	Position  int
}

// String は側面の文字列表現を返す。
func (s Side) String() string {
	return string(s)
}

// Opposite は左右反転した側面を返す。中央・区分なしはそのまま返す。
func (s Side) Opposite() Side {
	switch s {
	case SIDE_LEFT:
		return SIDE_RIGHT
	case SIDE_RIGHT:
		return SIDE_LEFT
	default:
		return s
	}
}

// ForcedSide はモード固定時の側面を返す。自動判定時は false を返す。
func (m SideMode) ForcedSide() (Side, bool) {
	switch m {
	case SIDE_MODE_LEFT:
		return SIDE_LEFT, true
	case SIDE_MODE_RIGHT:
		return SIDE_RIGHT, true
	case SIDE_MODE_CENTER:
		return SIDE_CENTER, true
	default:
		return SIDE_NONE, false
	}
}

// ResolveSideToken はジョイント名から側面と基底名を解決する。
// 一致パターンが複数ある場合は最長トークンを優先し、同長なら先頭寄りを採用する。
// どのパターンにも一致しない場合は SIDE_NONE と元の名前を返す。
func ResolveSideToken(name string) (Side, string) {
	match := findSideTokenMatch(name)
	if match.Placement == sideTokenPlacementNone {
		return SIDE_NONE, name
	}
	return match.Side, stripSideToken(name, match)
}

// findSideTokenMatch は側面トークンの最良一致を探す。
func findSideTokenMatch(name string) sideTokenMatch {
	best := sideTokenMatch{Placement: sideTokenPlacementNone, TokenLen: 0, Position: len(name)}

	lower := strings.ToLower(name)
	for _, word := range sideWordTokens {
		if !strings.HasPrefix(lower, word.Word) {
			continue
		}
		best = betterSideTokenMatch(best, sideTokenMatch{
			Side:      word.Side,
			Placement: sideTokenPlacementWord,
			TokenLen:  len(word.Word),
			Position:  0,
		})
	}
	for _, letter := range sideLetterTokens {
		if strings.HasPrefix(name, letter.Letter+"_") {
			best = betterSideTokenMatch(best, sideTokenMatch{
				Side:      letter.Side,
				Placement: sideTokenPlacementLeading,
				TokenLen:  len(letter.Letter) + 1,
				Position:  0,
			})
		}
		embedded := "_" + letter.Letter + "_"
		if position := strings.Index(name, embedded); position >= 0 {
			best = betterSideTokenMatch(best, sideTokenMatch{
				Side:      letter.Side,
				Placement: sideTokenPlacementEmbedded,
				TokenLen:  len(embedded),
				Position:  position,
			})
		}
	}
	return best
}

// betterSideTokenMatch は2つの一致候補から採用すべき方を返す。
func betterSideTokenMatch(current sideTokenMatch, candidate sideTokenMatch) sideTokenMatch {
	if current.Placement == sideTokenPlacementNone {
		return candidate
	}
	if candidate.TokenLen != current.TokenLen {
		if candidate.TokenLen > current.TokenLen {
			return candidate
		}
		return current
	}
	if candidate.Position < current.Position {
		return candidate
	}
	return current
}

// stripSideToken は一致したトークンを取り除いた基底名を返す。
func stripSideToken(name string, match sideTokenMatch) string {
	switch match.Placement {
	case sideTokenPlacementLeading:
		return name[match.TokenLen:]
	case sideTokenPlacementEmbedded:
		return name[:match.Position+1] + name[match.Position+match.TokenLen:]
	case sideTokenPlacementWord:
		return strings.TrimPrefix(name[match.TokenLen:], "_")
	default:
		return name
	}
}

// MirroredName は側面トークンを左右反転した名前を返す。
// 反転対象トークンがない場合は false を返す。
func MirroredName(name string) (string, bool) {
	match := findSideTokenMatch(name)
	if match.Placement == sideTokenPlacementNone {
		return name, false
	}
	opposite := match.Side.Opposite()
	if opposite == match.Side {
		return name, false
	}

	switch match.Placement {
	case sideTokenPlacementLeading:
		return string(opposite) + "_" + name[match.TokenLen:], true
	case sideTokenPlacementEmbedded:
		return name[:match.Position] + "_" + string(opposite) + "_" + name[match.Position+match.TokenLen:], true
	case sideTokenPlacementWord:
		replacement := oppositeWordToken(match.Side)
		original := name[:match.TokenLen]
		if len(original) > 0 && unicode.IsUpper(rune(original[0])) {
			replacement = strings.ToUpper(replacement[:1]) + replacement[1:]
		}
		return replacement + name[match.TokenLen:], true
	default:
		return name, false
	}
}

// oppositeWordToken は単語形トークンの左右反転表現を返す。
func oppositeWordToken(side Side) string {
	if side == SIDE_LEFT {
		return "right"
	}
	return "left"
}
