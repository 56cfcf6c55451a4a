package transforms

import (
	"github.com/atplang/atp/pkg/token"
)

// Atb prepends text to the input.
type Atb struct {
	Text string
}

func (a *Atb) Mnemonic() string { return "atb" }
func (a *Atb) Opcode() uint32 { return 0x01 }
func (a *Atb) Params() []token.ParamValue {
	return []token.ParamValue{token.Text(a.Text)}
}
func (a *Atb) TextLine() string { return textLine(a) }
func (a *Atb) Clone() token.Instruction {
	c := *a
	return &c
}

func (a *Atb) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("atb", params, 1); err != nil {
		return err
	}
	text, err := token.TextArg("atb", params, 0)
	if err != nil {
		return err
	}
	a.Text = text
	return nil
}

func (a *Atb) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return a.Text + input, nil
}

// Ate appends text to the input.
type Ate struct {
	Text string
}

func (a *Ate) Mnemonic() string { return "ate" }
func (a *Ate) Opcode() uint32 { return 0x02 }
func (a *Ate) Params() []token.ParamValue {
	return []token.ParamValue{token.Text(a.Text)}
}
func (a *Ate) TextLine() string { return textLine(a) }
func (a *Ate) Clone() token.Instruction {
	c := *a
	return &c
}

func (a *Ate) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("ate", params, 1); err != nil {
		return err
	}
	text, err := token.TextArg("ate", params, 0)
	if err != nil {
		return err
	}
	a.Text = text
	return nil
}

func (a *Ate) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return input + a.Text, nil
}

// Ins inserts text after the rune at Index. Index equal to the last rune
// appends at the end.
type Ins struct {
	Index uint64
	Text  string
}

func (i *Ins) Mnemonic() string { return "ins" }
func (i *Ins) Opcode() uint32 { return 0x28 }
func (i *Ins) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(i.Index), token.Text(i.Text)}
}
func (i *Ins) TextLine() string { return textLine(i) }
func (i *Ins) Clone() token.Instruction {
	c := *i
	return &c
}

func (i *Ins) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("ins", params, 2); err != nil {
		return err
	}
	idx, err := token.UintArg("ins", params, 0)
	if err != nil {
		return err
	}
	text, err := token.TextArg("ins", params, 1)
	if err != nil {
		return err
	}
	i.Index, i.Text = idx, text
	return nil
}

func (i *Ins) Transform(input string, _ *token.ExecutionContext) (string, error) {
	if err := checkRuneIndex("ins", i.Index, input); err != nil {
		return "", err
	}
	runes := []rune(input)
	pos := i.Index + 1
	if pos > uint64(len(runes)) {
		pos = uint64(len(runes))
	}
	return string(runes[:pos]) + i.Text + string(runes[pos:]), nil
}
