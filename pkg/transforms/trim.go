package transforms

import (
	"strings"
	"unicode"

	"github.com/atplang/atp/pkg/token"
)

// Tbs trims whitespace from both sides.
type Tbs struct{}

func (t *Tbs) Mnemonic() string { return "tbs" }
func (t *Tbs) Opcode() uint32 { return 0x05 }
func (t *Tbs) Params() []token.ParamValue { return nil }
func (t *Tbs) TextLine() string { return textLine(t) }
func (t *Tbs) Clone() token.Instruction { c := *t; return &c }
func (t *Tbs) FromParams(params []token.ParamValue) error {
	return token.CheckArity("tbs", params, 0)
}

func (t *Tbs) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return strings.TrimSpace(input), nil
}

// Tls trims whitespace from the left side.
type Tls struct{}

func (t *Tls) Mnemonic() string { return "tls" }
func (t *Tls) Opcode() uint32 { return 0x06 }
func (t *Tls) Params() []token.ParamValue { return nil }
func (t *Tls) TextLine() string { return textLine(t) }
func (t *Tls) Clone() token.Instruction { c := *t; return &c }
func (t *Tls) FromParams(params []token.ParamValue) error {
	return token.CheckArity("tls", params, 0)
}

func (t *Tls) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return trimLeftSpace(input), nil
}

// Trs trims whitespace from the right side.
type Trs struct{}

func (t *Trs) Mnemonic() string { return "trs" }
func (t *Trs) Opcode() uint32 { return 0x07 }
func (t *Trs) Params() []token.ParamValue { return nil }
func (t *Trs) TextLine() string { return textLine(t) }
func (t *Trs) Clone() token.Instruction { c := *t; return &c }
func (t *Trs) FromParams(params []token.ParamValue) error {
	return token.CheckArity("trs", params, 0)
}

func (t *Trs) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return trimRightSpace(input), nil
}

// Rmws removes every whitespace rune.
type Rmws struct{}

func (r *Rmws) Mnemonic() string { return "rmws" }
func (r *Rmws) Opcode() uint32 { return 0x31 }
func (r *Rmws) Params() []token.ParamValue { return nil }
func (r *Rmws) TextLine() string { return textLine(r) }
func (r *Rmws) Clone() token.Instruction { c := *r; return &c }
func (r *Rmws) FromParams(params []token.ParamValue) error {
	return token.CheckArity("rmws", params, 0)
}

func (r *Rmws) Transform(input string, _ *token.ExecutionContext) (string, error) {
	var b strings.Builder
	b.Grow(len(input))
	for _, ch := range input {
		if !unicode.IsSpace(ch) {
			b.WriteRune(ch)
		}
	}
	return b.String(), nil
}
