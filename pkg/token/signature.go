package token

// Slot describes one position in an instruction's text-form signature. A
// slot is either a typed parameter (Kind set) or a fixed literal word
// (Literal set) such as the "assoc" in "blk name assoc <instruction>".
type Slot struct {
	Kind    Kind
	Literal string
}

// Lit builds a fixed literal slot.
func Lit(word string) Slot { return Slot{Literal: word} }

// P builds a typed parameter slot.
func P(kind Kind) Slot { return Slot{Kind: kind} }

// Signature is the ordered slot list of an instruction kind.
type Signature []Slot

// Effective returns the expected parameter kinds with literal slots
// excluded. This is the list FromParams and the bytecode form see.
func (s Signature) Effective() []Kind {
	out := make([]Kind, 0, len(s))
	for _, slot := range s {
		if slot.Literal != "" {
			continue
		}
		out = append(out, slot.Kind)
	}
	return out
}

// BlockLike reports whether the signature has the shape of a block-defining
// instruction: a name, the "assoc" literal, and a nested instruction. Inside
// such a payload, deeper nesting is allowed but another block is not.
func (s Signature) BlockLike() bool {
	return len(s) == 3 &&
		s[0].Literal == "" && s[0].Kind == KindText &&
		s[1].Literal == "assoc" &&
		s[2].Literal == "" && s[2].Kind == KindInstruction
}
