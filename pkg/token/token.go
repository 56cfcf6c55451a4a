// Package token defines the instruction contract every ATP transformation
// implements, the tagged parameter values used to construct instructions and
// to carry bytecode payloads, and the per-run execution context.
package token

import (
	"fmt"

	"github.com/atplang/atp/pkg/atperr"
)

// Instruction is the capability contract implemented by every instruction
// kind. Implementations are small value types selected at parse/decode time
// through the registry.
type Instruction interface {
	// Mnemonic returns the stable string identifier used in the text form.
	Mnemonic() string

	// Opcode returns the stable numeric identifier used in bytecode.
	Opcode() uint32

	// TextLine returns the canonical single-line rendering, terminated by
	// ";" and a newline.
	TextLine() string

	// FromParams validates arity and per-slot types against the kind's
	// fixed signature and mutates the instruction in place.
	FromParams(params []ParamValue) error

	// Transform applies the instruction to input. Context-free kinds
	// ignore ctx.
	Transform(input string, ctx *ExecutionContext) (string, error)

	// Params returns the instruction's current parameter list in
	// signature order.
	Params() []ParamValue

	// Clone returns an independent deep copy.
	Clone() Instruction
}

// Kind tags a ParamValue variant. The numeric values double as the bytecode
// param_type codes.
type Kind uint32

const (
	// KindText is a UTF-8 text parameter.
	KindText Kind = 1

	// KindUint is an unsigned 64-bit integer parameter.
	KindUint Kind = 2

	// KindInstruction is a nested instruction parameter.
	KindInstruction Kind = 3

	// KindVarRef names a context variable to be resolved before use. It
	// only appears in the slots of a Bound instruction, never in a fully
	// constructed parameter list.
	KindVarRef Kind = 4
)

// String returns a human-readable name for a Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindUint:
		return "uint"
	case KindInstruction:
		return "instruction"
	case KindVarRef:
		return "varref"
	default:
		return fmt.Sprintf("Kind(%d)", uint32(k))
	}
}

// ParamValue is a tagged value used both to construct instructions and as
// bytecode payload.
type ParamValue struct {
	kind  Kind
	text  string
	n     uint64
	instr Instruction
}

// Text builds a text parameter.
func Text(s string) ParamValue {
	return ParamValue{kind: KindText, text: s}
}

// Uint builds an unsigned-integer parameter.
func Uint(n uint64) ParamValue {
	return ParamValue{kind: KindUint, n: n}
}

// Instr builds a nested-instruction parameter.
func Instr(in Instruction) ParamValue {
	return ParamValue{kind: KindInstruction, instr: in}
}

// VarRef builds a variable-reference slot.
func VarRef(name string) ParamValue {
	return ParamValue{kind: KindVarRef, text: name}
}

// Kind returns the variant tag.
func (p ParamValue) Kind() Kind { return p.kind }

// Text returns the text payload. Valid for KindText and KindVarRef.
func (p ParamValue) Text() string { return p.text }

// Uint returns the integer payload. Valid for KindUint.
func (p ParamValue) Uint() uint64 { return p.n }

// Instruction returns the nested instruction. Valid for KindInstruction.
func (p ParamValue) Instruction() Instruction { return p.instr }

// Clone returns a deep copy. Nested instructions are cloned so the copy
// shares no mutable state with the original.
func (p ParamValue) Clone() ParamValue {
	if p.kind == KindInstruction && p.instr != nil {
		return ParamValue{kind: KindInstruction, instr: p.instr.Clone()}
	}
	return p
}

// String renders the parameter the way the text form does: text and
// integers verbatim, variable references as {{name}}, nested instructions
// as their unterminated line.
func (p ParamValue) String() string {
	switch p.kind {
	case KindText:
		return p.text
	case KindUint:
		return fmt.Sprintf("%d", p.n)
	case KindVarRef:
		return "{{" + p.text + "}}"
	case KindInstruction:
		if p.instr == nil {
			return ""
		}
		return TrimLine(p.instr.TextLine())
	default:
		return ""
	}
}

// CloneParams deep-copies a parameter list.
func CloneParams(params []ParamValue) []ParamValue {
	if params == nil {
		return nil
	}
	out := make([]ParamValue, len(params))
	for i, p := range params {
		out[i] = p.Clone()
	}
	return out
}

// CheckArity fails with InvalidArgumentNumber unless params has exactly want
// entries.
func CheckArity(mnemonic string, params []ParamValue, want int) error {
	if len(params) != want {
		return atperr.Newf(atperr.CodeInvalidArgumentNumber, mnemonic,
			"expected %d parameters, got %d", want, len(params))
	}
	return nil
}

// TextArg extracts a text parameter at idx, failing with InvalidParameters
// on a kind mismatch.
func TextArg(mnemonic string, params []ParamValue, idx int) (string, error) {
	if params[idx].Kind() != KindText {
		return "", atperr.Newf(atperr.CodeInvalidParameters, mnemonic,
			"parameter %d should be text, got %s", idx, params[idx].Kind())
	}
	return params[idx].Text(), nil
}

// UintArg extracts an unsigned-integer parameter at idx.
func UintArg(mnemonic string, params []ParamValue, idx int) (uint64, error) {
	if params[idx].Kind() != KindUint {
		return 0, atperr.Newf(atperr.CodeInvalidParameters, mnemonic,
			"parameter %d should be an unsigned integer, got %s", idx, params[idx].Kind())
	}
	return params[idx].Uint(), nil
}

// InstrArg extracts a nested-instruction parameter at idx. The instruction
// is cloned so the caller owns it.
func InstrArg(mnemonic string, params []ParamValue, idx int) (Instruction, error) {
	if params[idx].Kind() != KindInstruction || params[idx].Instruction() == nil {
		return nil, atperr.Newf(atperr.CodeInvalidParameters, mnemonic,
			"parameter %d should be an instruction, got %s", idx, params[idx].Kind())
	}
	return params[idx].Instruction().Clone(), nil
}
