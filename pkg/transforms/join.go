package transforms

import (
	"strings"

	"github.com/atplang/atp/pkg/token"
)

// Jkbc joins the words into lower-cased kebab-case.
type Jkbc struct{}

func (j *Jkbc) Mnemonic() string { return "jkbc" }
func (j *Jkbc) Opcode() uint32 { return 0x2b }
func (j *Jkbc) Params() []token.ParamValue { return nil }
func (j *Jkbc) TextLine() string { return textLine(j) }
func (j *Jkbc) Clone() token.Instruction { c := *j; return &c }
func (j *Jkbc) FromParams(params []token.ParamValue) error {
	return token.CheckArity("jkbc", params, 0)
}

func (j *Jkbc) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return strings.ToLower(strings.Join(strings.Fields(input), "-")), nil
}

// Jsnc joins the words into lower-cased snake_case.
type Jsnc struct{}

func (j *Jsnc) Mnemonic() string { return "jsnc" }
func (j *Jsnc) Opcode() uint32 { return 0x2c }
func (j *Jsnc) Params() []token.ParamValue { return nil }
func (j *Jsnc) TextLine() string { return textLine(j) }
func (j *Jsnc) Clone() token.Instruction { c := *j; return &c }
func (j *Jsnc) FromParams(params []token.ParamValue) error {
	return token.CheckArity("jsnc", params, 0)
}

func (j *Jsnc) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return strings.ToLower(strings.Join(strings.Fields(input), "_")), nil
}

// Jcmc joins the words into camelCase. The first word keeps its casing,
// every later word is capitalized.
type Jcmc struct{}

func (j *Jcmc) Mnemonic() string { return "jcmc" }
func (j *Jcmc) Opcode() uint32 { return 0x2d }
func (j *Jcmc) Params() []token.ParamValue { return nil }
func (j *Jcmc) TextLine() string { return textLine(j) }
func (j *Jcmc) Clone() token.Instruction { c := *j; return &c }
func (j *Jcmc) FromParams(params []token.ParamValue) error {
	return token.CheckArity("jcmc", params, 0)
}

func (j *Jcmc) Transform(input string, _ *token.ExecutionContext) (string, error) {
	words := strings.Fields(input)
	for i := 1; i < len(words); i++ {
		words[i] = capitalize(words[i])
	}
	return strings.Join(words, ""), nil
}

// Jpsc joins the words into PascalCase.
type Jpsc struct{}

func (j *Jpsc) Mnemonic() string { return "jpsc" }
func (j *Jpsc) Opcode() uint32 { return 0x2e }
func (j *Jpsc) Params() []token.ParamValue { return nil }
func (j *Jpsc) TextLine() string { return textLine(j) }
func (j *Jpsc) Clone() token.Instruction { c := *j; return &c }
func (j *Jpsc) FromParams(params []token.ParamValue) error {
	return token.CheckArity("jpsc", params, 0)
}

func (j *Jpsc) Transform(input string, _ *token.ExecutionContext) (string, error) {
	words := strings.Fields(input)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, ""), nil
}
