package transforms

import (
	"github.com/atplang/atp/pkg/token"
)

// Val sets a text variable in the execution context and passes the input
// through untouched. Later instructions reference it as {{name}}.
type Val struct {
	Name  string
	Value string
}

func (v *Val) Mnemonic() string { return "val" }
func (v *Val) Opcode() uint32 { return 0x36 }
func (v *Val) Params() []token.ParamValue {
	return []token.ParamValue{token.Text(v.Name), token.Text(v.Value)}
}
func (v *Val) TextLine() string { return textLine(v) }
func (v *Val) Clone() token.Instruction { c := *v; return &c }

func (v *Val) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("val", params, 2); err != nil {
		return err
	}
	name, err := token.TextArg("val", params, 0)
	if err != nil {
		return err
	}
	value, err := token.TextArg("val", params, 1)
	if err != nil {
		return err
	}
	v.Name, v.Value = name, value
	return nil
}

func (v *Val) Transform(input string, ctx *token.ExecutionContext) (string, error) {
	ctx.SetVar(v.Name, token.Text(v.Value))
	return input, nil
}

// Vali sets an unsigned-integer variable in the execution context.
type Vali struct {
	Name  string
	Value uint64
}

func (v *Vali) Mnemonic() string { return "vali" }
func (v *Vali) Opcode() uint32 { return 0x37 }
func (v *Vali) Params() []token.ParamValue {
	return []token.ParamValue{token.Text(v.Name), token.Uint(v.Value)}
}
func (v *Vali) TextLine() string { return textLine(v) }
func (v *Vali) Clone() token.Instruction { c := *v; return &c }

func (v *Vali) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("vali", params, 2); err != nil {
		return err
	}
	name, err := token.TextArg("vali", params, 0)
	if err != nil {
		return err
	}
	value, err := token.UintArg("vali", params, 1)
	if err != nil {
		return err
	}
	v.Name, v.Value = name, value
	return nil
}

func (v *Vali) Transform(input string, ctx *token.ExecutionContext) (string, error) {
	ctx.SetVar(v.Name, token.Uint(v.Value))
	return input, nil
}
