package transforms

import (
	"math"
	"strings"

	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/token"
)

// Rtl rotates the runes left by Times positions, modulo the rune count.
type Rtl struct {
	Times uint64
}

func (r *Rtl) Mnemonic() string { return "rtl" }
func (r *Rtl) Opcode() uint32 { return 0x0e }
func (r *Rtl) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(r.Times)}
}
func (r *Rtl) TextLine() string { return textLine(r) }
func (r *Rtl) Clone() token.Instruction { c := *r; return &c }

func (r *Rtl) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("rtl", params, 1); err != nil {
		return err
	}
	times, err := token.UintArg("rtl", params, 0)
	if err != nil {
		return err
	}
	r.Times = times
	return nil
}

func (r *Rtl) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return rotate("rtl", input, r.Times, false)
}

// Rtr rotates the runes right by Times positions, modulo the rune count.
type Rtr struct {
	Times uint64
}

func (r *Rtr) Mnemonic() string { return "rtr" }
func (r *Rtr) Opcode() uint32 { return 0x0f }
func (r *Rtr) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(r.Times)}
}
func (r *Rtr) TextLine() string { return textLine(r) }
func (r *Rtr) Clone() token.Instruction { c := *r; return &c }

func (r *Rtr) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("rtr", params, 1); err != nil {
		return err
	}
	times, err := token.UintArg("rtr", params, 0)
	if err != nil {
		return err
	}
	r.Times = times
	return nil
}

func (r *Rtr) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return rotate("rtr", input, r.Times, true)
}

func rotate(op, input string, times uint64, right bool) (string, error) {
	runes := []rune(input)
	if len(runes) == 0 {
		return "", atperr.New(atperr.CodeInvalidParameters, op, "input is empty")
	}
	n := times % uint64(len(runes))
	if n == 0 {
		return input, nil
	}
	if right {
		n = uint64(len(runes)) - n
	}
	return string(runes[n:]) + string(runes[:n]), nil
}

// Rpt repeats the whole input Times times.
type Rpt struct {
	Times uint64
}

func (r *Rpt) Mnemonic() string { return "rpt" }
func (r *Rpt) Opcode() uint32 { return 0x0d }
func (r *Rpt) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(r.Times)}
}
func (r *Rpt) TextLine() string { return textLine(r) }
func (r *Rpt) Clone() token.Instruction { c := *r; return &c }

func (r *Rpt) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("rpt", params, 1); err != nil {
		return err
	}
	times, err := token.UintArg("rpt", params, 0)
	if err != nil {
		return err
	}
	r.Times = times
	return nil
}

func (r *Rpt) Transform(input string, _ *token.ExecutionContext) (string, error) {
	limit := uint64(math.MaxInt)
	if len(input) > 0 {
		limit /= uint64(len(input))
	}
	if r.Times > limit {
		return "", atperr.Newf(atperr.CodeInvalidParameters, "rpt",
			"repeat count %d overflows the output length", r.Times)
	}
	return strings.Repeat(input, int(r.Times)), nil
}

// Rev reverses the runes.
type Rev struct{}

func (r *Rev) Mnemonic() string { return "rev" }
func (r *Rev) Opcode() uint32 { return 0x22 }
func (r *Rev) Params() []token.ParamValue { return nil }
func (r *Rev) TextLine() string { return textLine(r) }
func (r *Rev) Clone() token.Instruction { c := *r; return &c }
func (r *Rev) FromParams(params []token.ParamValue) error {
	return token.CheckArity("rev", params, 0)
}

func (r *Rev) Transform(input string, _ *token.ExecutionContext) (string, error) {
	runes := []rune(input)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes), nil
}

// Splc spaces out the input, joining every rune with a single space.
type Splc struct{}

func (s *Splc) Mnemonic() string { return "splc" }
func (s *Splc) Opcode() uint32 { return 0x23 }
func (s *Splc) Params() []token.ParamValue { return nil }
func (s *Splc) TextLine() string { return textLine(s) }
func (s *Splc) Clone() token.Instruction { c := *s; return &c }
func (s *Splc) FromParams(params []token.ParamValue) error {
	return token.CheckArity("splc", params, 0)
}

func (s *Splc) Transform(input string, _ *token.ExecutionContext) (string, error) {
	runes := []rune(input)
	parts := make([]string, len(runes))
	for i, ch := range runes {
		parts[i] = string(ch)
	}
	return strings.Join(parts, " "), nil
}
