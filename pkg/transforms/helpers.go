// Package transforms implements every instruction kind of the ATP language:
// the context-free string transformations, the block instructions (blk,
// cblk), the conditional (ifdc) and the variable definitions (val, vali).
//
// All indexes are rune positions, not byte offsets. Word operations split on
// Unicode whitespace and rejoin with a single space.
package transforms

import (
	"strings"
	"unicode"

	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/token"
)

// capitalize upper-cases the first rune and leaves the rest untouched.
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}

// checkRuneIndex fails with IndexOutOfRange unless idx addresses a rune of
// input.
func checkRuneIndex(op string, idx uint64, input string) error {
	total := uint64(len([]rune(input)))
	if idx >= total {
		return atperr.Newf(atperr.CodeIndexOutOfRange, op,
			"index %d does not exist, supported indexes 0-%d", idx, saturatingLast(total))
	}
	return nil
}

// checkWordIndex fails with IndexOutOfRange unless idx addresses a
// whitespace-separated word of input.
func checkWordIndex(op string, idx uint64, input string) error {
	total := uint64(len(strings.Fields(input)))
	if idx >= total {
		return atperr.Newf(atperr.CodeIndexOutOfRange, op,
			"word index %d does not exist, input has %d words", idx, total)
	}
	return nil
}

// checkChunkBounds enforces start < end, the structural rule shared by all
// chunk instructions.
func checkChunkBounds(op string, start, end uint64) error {
	if start >= end {
		return atperr.Newf(atperr.CodeInvalidIndex, op,
			"start index %d must be smaller than end index %d", start, end)
	}
	return nil
}

func saturatingLast(total uint64) uint64 {
	if total == 0 {
		return 0
	}
	return total - 1
}

// extendText repeats text cyclically until it is exactly n runes long.
func extendText(text string, n uint64) string {
	if n == 0 || text == "" {
		return ""
	}
	runes := []rune(text)
	out := make([]rune, 0, n)
	for uint64(len(out)) < n {
		out = append(out, runes[uint64(len(out))%uint64(len(runes))])
	}
	return string(out)
}

// trimLeftSpace and trimRightSpace trim Unicode whitespace from one side.
func trimLeftSpace(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

func trimRightSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// textLine renders the canonical text line of a leaf instruction.
func textLine(in token.Instruction) string {
	return token.FormatLine(in.Mnemonic(), in.Params())
}
