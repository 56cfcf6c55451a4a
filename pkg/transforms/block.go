package transforms

import (
	"github.com/atplang/atp/pkg/token"
)

// Blk appends its nested instruction to the named block in the execution
// context and passes the input through untouched. Defining the same name
// repeatedly accumulates a multi-step subroutine.
type Blk struct {
	Name  string
	Inner token.Instruction
}

func (b *Blk) Mnemonic() string { return "blk" }
func (b *Blk) Opcode() uint32 { return 0x34 }
func (b *Blk) Params() []token.ParamValue {
	return []token.ParamValue{token.Text(b.Name), token.Instr(b.Inner)}
}

func (b *Blk) TextLine() string {
	return "blk " + token.QuoteWord(b.Name) + " assoc " + b.Inner.TextLine()
}

func (b *Blk) Clone() token.Instruction {
	c := &Blk{Name: b.Name}
	if b.Inner != nil {
		c.Inner = b.Inner.Clone()
	}
	return c
}

func (b *Blk) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("blk", params, 2); err != nil {
		return err
	}
	name, err := token.TextArg("blk", params, 0)
	if err != nil {
		return err
	}
	inner, err := token.InstrArg("blk", params, 1)
	if err != nil {
		return err
	}
	b.Name, b.Inner = name, inner
	return nil
}

func (b *Blk) Transform(input string, ctx *token.ExecutionContext) (string, error) {
	ctx.DefineBlock(b.Name, b.Inner.Clone())
	return input, nil
}

// Cblk folds the named block's instructions over the input in definition
// order. Fails with BlockNotFound when the name was never defined earlier in
// the run.
type Cblk struct {
	Name string
}

func (c *Cblk) Mnemonic() string { return "cblk" }
func (c *Cblk) Opcode() uint32 { return 0x35 }
func (c *Cblk) Params() []token.ParamValue {
	return []token.ParamValue{token.Text(c.Name)}
}
func (c *Cblk) TextLine() string { return textLine(c) }
func (c *Cblk) Clone() token.Instruction { n := *c; return &n }

func (c *Cblk) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("cblk", params, 1); err != nil {
		return err
	}
	name, err := token.TextArg("cblk", params, 0)
	if err != nil {
		return err
	}
	c.Name = name
	return nil
}

func (c *Cblk) Transform(input string, ctx *token.ExecutionContext) (string, error) {
	tokens, err := ctx.Block(c.Name)
	if err != nil {
		return "", err
	}
	out := input
	for _, in := range tokens {
		out, err = in.Transform(out, ctx)
		if err != nil {
			return "", err
		}
	}
	return out, nil
}
