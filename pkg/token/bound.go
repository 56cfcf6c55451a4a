package token

import (
	"strings"

	"github.com/atplang/atp/pkg/atperr"
)

// Bound wraps an instruction prototype together with a slot list whose
// entries are either literal values or variable references. Slots are
// resolved against the execution context immediately before the wrapped
// instruction runs; resolution type-checks every slot against the kind's
// signature and never coerces.
type Bound struct {
	proto Instruction
	sig   Signature
	slots []ParamValue
}

// NewBound wraps proto with its signature and unresolved slots.
func NewBound(proto Instruction, sig Signature, slots []ParamValue) *Bound {
	return &Bound{proto: proto, sig: sig, slots: CloneParams(slots)}
}

// Mnemonic delegates to the wrapped kind.
func (b *Bound) Mnemonic() string { return b.proto.Mnemonic() }

// Opcode delegates to the wrapped kind.
func (b *Bound) Opcode() uint32 { return b.proto.Opcode() }

// Params returns the unresolved slot list.
func (b *Bound) Params() []ParamValue { return CloneParams(b.slots) }

// FromParams replaces the slot list. Arity is checked against the
// signature's effective parameter count.
func (b *Bound) FromParams(params []ParamValue) error {
	if len(params) != len(b.sig.Effective()) {
		return atperr.Newf(atperr.CodeParamCountMismatch, b.proto.Mnemonic(),
			"expected %d slots, got %d", len(b.sig.Effective()), len(params))
	}
	b.slots = CloneParams(params)
	return nil
}

// Resolve produces a fully concrete instruction: literal slots pass through
// after a type check, variable references are looked up in ctx and must
// match the expected slot kind exactly. The resolved list is fed into a
// clone of the prototype.
func (b *Bound) Resolve(ctx *ExecutionContext) (Instruction, error) {
	expected := b.sig.Effective()
	if len(b.slots) != len(expected) {
		return nil, atperr.Newf(atperr.CodeParamCountMismatch, b.proto.Mnemonic(),
			"expected %d slots, got %d", len(expected), len(b.slots))
	}

	resolved := make([]ParamValue, len(b.slots))
	for i, slot := range b.slots {
		v := slot
		if slot.Kind() == KindVarRef {
			var err error
			v, err = ctx.Var(slot.Text())
			if err != nil {
				return nil, err
			}
		}
		if v.Kind() != expected[i] {
			return nil, atperr.Newf(atperr.CodeIncompatibleType, b.proto.Mnemonic(),
				"slot %d resolves to %s, expected %s", i, v.Kind(), expected[i])
		}
		resolved[i] = v.Clone()
	}

	in := b.proto.Clone()
	if err := in.FromParams(resolved); err != nil {
		return nil, err
	}
	return in, nil
}

// Transform resolves the slots and runs the concrete instruction.
func (b *Bound) Transform(input string, ctx *ExecutionContext) (string, error) {
	in, err := b.Resolve(ctx)
	if err != nil {
		return "", err
	}
	return in.Transform(input, ctx)
}

// TextLine renders the signature's literal words interleaved with the
// slots; variable references render as {{name}}.
func (b *Bound) TextLine() string {
	var w strings.Builder
	w.WriteString(b.proto.Mnemonic())
	next := 0
	for _, slot := range b.sig {
		w.WriteByte(' ')
		if slot.Literal != "" {
			w.WriteString(slot.Literal)
			continue
		}
		if next < len(b.slots) {
			p := b.slots[next]
			if p.Kind() == KindText {
				w.WriteString(QuoteWord(p.Text()))
			} else {
				w.WriteString(p.String())
			}
			next++
		}
	}
	w.WriteString(";\n")
	return w.String()
}

// Clone returns an independent deep copy.
func (b *Bound) Clone() Instruction {
	return &Bound{proto: b.proto.Clone(), sig: b.sig, slots: CloneParams(b.slots)}
}
