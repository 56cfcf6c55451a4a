package transforms

import (
	"github.com/atplang/atp/pkg/token"
)

// Padl left-pads the input with Text repeated cyclically until the result is
// MaxLen runes long. Inputs already at or past MaxLen pass through.
type Padl struct {
	Text   string
	MaxLen uint64
}

func (p *Padl) Mnemonic() string { return "padl" }
func (p *Padl) Opcode() uint32 { return 0x2f }
func (p *Padl) Params() []token.ParamValue {
	return []token.ParamValue{token.Text(p.Text), token.Uint(p.MaxLen)}
}
func (p *Padl) TextLine() string { return textLine(p) }
func (p *Padl) Clone() token.Instruction { c := *p; return &c }

func (p *Padl) FromParams(params []token.ParamValue) error {
	return padFromParams("padl", params, &p.Text, &p.MaxLen)
}

func (p *Padl) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return pad(input, p.Text, p.MaxLen, true), nil
}

// Padr right-pads the input the same way Padl left-pads it.
type Padr struct {
	Text   string
	MaxLen uint64
}

func (p *Padr) Mnemonic() string { return "padr" }
func (p *Padr) Opcode() uint32 { return 0x30 }
func (p *Padr) Params() []token.ParamValue {
	return []token.ParamValue{token.Text(p.Text), token.Uint(p.MaxLen)}
}
func (p *Padr) TextLine() string { return textLine(p) }
func (p *Padr) Clone() token.Instruction { c := *p; return &c }

func (p *Padr) FromParams(params []token.ParamValue) error {
	return padFromParams("padr", params, &p.Text, &p.MaxLen)
}

func (p *Padr) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return pad(input, p.Text, p.MaxLen, false), nil
}

func padFromParams(op string, params []token.ParamValue, text *string, maxLen *uint64) error {
	if err := token.CheckArity(op, params, 2); err != nil {
		return err
	}
	t, err := token.TextArg(op, params, 0)
	if err != nil {
		return err
	}
	n, err := token.UintArg(op, params, 1)
	if err != nil {
		return err
	}
	*text, *maxLen = t, n
	return nil
}

func pad(input, text string, maxLen uint64, left bool) string {
	count := uint64(len([]rune(input)))
	if count >= maxLen {
		return input
	}
	filler := extendText(text, maxLen-count)
	if left {
		return filler + input
	}
	return input + filler
}
