package transforms

import (
	"strings"

	"github.com/atplang/atp/pkg/token"
)

// Ifdc runs its nested instruction only when the input contains Needle,
// otherwise the input passes through untouched.
type Ifdc struct {
	Needle string
	Inner  token.Instruction
}

func (i *Ifdc) Mnemonic() string { return "ifdc" }
func (i *Ifdc) Opcode() uint32 { return 0x33 }
func (i *Ifdc) Params() []token.ParamValue {
	return []token.ParamValue{token.Text(i.Needle), token.Instr(i.Inner)}
}

func (i *Ifdc) TextLine() string {
	return "ifdc " + token.QuoteWord(i.Needle) + " do " + i.Inner.TextLine()
}

func (i *Ifdc) Clone() token.Instruction {
	c := &Ifdc{Needle: i.Needle}
	if i.Inner != nil {
		c.Inner = i.Inner.Clone()
	}
	return c
}

func (i *Ifdc) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("ifdc", params, 2); err != nil {
		return err
	}
	needle, err := token.TextArg("ifdc", params, 0)
	if err != nil {
		return err
	}
	inner, err := token.InstrArg("ifdc", params, 1)
	if err != nil {
		return err
	}
	i.Needle, i.Inner = needle, inner
	return nil
}

func (i *Ifdc) Transform(input string, ctx *token.ExecutionContext) (string, error) {
	if !strings.Contains(input, i.Needle) {
		return input, nil
	}
	return i.Inner.Transform(input, ctx)
}
