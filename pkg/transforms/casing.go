package transforms

import (
	"strings"

	"github.com/atplang/atp/pkg/token"
)

// Tua upper-cases the whole input.
type Tua struct{}

func (t *Tua) Mnemonic() string { return "tua" }
func (t *Tua) Opcode() uint32 { return 0x12 }
func (t *Tua) Params() []token.ParamValue { return nil }
func (t *Tua) TextLine() string { return textLine(t) }
func (t *Tua) Clone() token.Instruction { c := *t; return &c }
func (t *Tua) FromParams(params []token.ParamValue) error {
	return token.CheckArity("tua", params, 0)
}

func (t *Tua) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return strings.ToUpper(input), nil
}

// Tla lower-cases the whole input.
type Tla struct{}

func (t *Tla) Mnemonic() string { return "tla" }
func (t *Tla) Opcode() uint32 { return 0x13 }
func (t *Tla) Params() []token.ParamValue { return nil }
func (t *Tla) TextLine() string { return textLine(t) }
func (t *Tla) Clone() token.Instruction { c := *t; return &c }
func (t *Tla) FromParams(params []token.ParamValue) error {
	return token.CheckArity("tla", params, 0)
}

func (t *Tla) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return strings.ToLower(input), nil
}

// Tucs upper-cases the single rune at Index.
type Tucs struct {
	Index uint64
}

func (t *Tucs) Mnemonic() string { return "tucs" }
func (t *Tucs) Opcode() uint32 { return 0x14 }
func (t *Tucs) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(t.Index)}
}
func (t *Tucs) TextLine() string { return textLine(t) }
func (t *Tucs) Clone() token.Instruction { c := *t; return &c }

func (t *Tucs) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("tucs", params, 1); err != nil {
		return err
	}
	idx, err := token.UintArg("tucs", params, 0)
	if err != nil {
		return err
	}
	t.Index = idx
	return nil
}

func (t *Tucs) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return caseSingle(t.Index, input, "tucs", strings.ToUpper)
}

// Tlcs lower-cases the single rune at Index.
type Tlcs struct {
	Index uint64
}

func (t *Tlcs) Mnemonic() string { return "tlcs" }
func (t *Tlcs) Opcode() uint32 { return 0x15 }
func (t *Tlcs) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(t.Index)}
}
func (t *Tlcs) TextLine() string { return textLine(t) }
func (t *Tlcs) Clone() token.Instruction { c := *t; return &c }

func (t *Tlcs) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("tlcs", params, 1); err != nil {
		return err
	}
	idx, err := token.UintArg("tlcs", params, 0)
	if err != nil {
		return err
	}
	t.Index = idx
	return nil
}

func (t *Tlcs) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return caseSingle(t.Index, input, "tlcs", strings.ToLower)
}

func caseSingle(idx uint64, input, op string, convert func(string) string) (string, error) {
	if err := checkRuneIndex(op, idx, input); err != nil {
		return "", err
	}
	runes := []rune(input)
	return string(runes[:idx]) + convert(string(runes[idx])) + string(runes[idx+1:]), nil
}

// Tucc upper-cases the inclusive rune chunk [Start..End]. End past the last
// rune is clamped to it.
type Tucc struct {
	Start uint64
	End   uint64
}

func (t *Tucc) Mnemonic() string { return "tucc" }
func (t *Tucc) Opcode() uint32 { return 0x16 }
func (t *Tucc) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(t.Start), token.Uint(t.End)}
}
func (t *Tucc) TextLine() string { return textLine(t) }
func (t *Tucc) Clone() token.Instruction { c := *t; return &c }

func (t *Tucc) FromParams(params []token.ParamValue) error {
	return chunkFromParams("tucc", params, &t.Start, &t.End)
}

func (t *Tucc) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return caseChunk(t.Start, t.End, input, "tucc", strings.ToUpper)
}

// Tlcc lower-cases the inclusive rune chunk [Start..End].
type Tlcc struct {
	Start uint64
	End   uint64
}

func (t *Tlcc) Mnemonic() string { return "tlcc" }
func (t *Tlcc) Opcode() uint32 { return 0x17 }
func (t *Tlcc) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(t.Start), token.Uint(t.End)}
}
func (t *Tlcc) TextLine() string { return textLine(t) }
func (t *Tlcc) Clone() token.Instruction { c := *t; return &c }

func (t *Tlcc) FromParams(params []token.ParamValue) error {
	return chunkFromParams("tlcc", params, &t.Start, &t.End)
}

func (t *Tlcc) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return caseChunk(t.Start, t.End, input, "tlcc", strings.ToLower)
}

func chunkFromParams(op string, params []token.ParamValue, start, end *uint64) error {
	if err := token.CheckArity(op, params, 2); err != nil {
		return err
	}
	s, err := token.UintArg(op, params, 0)
	if err != nil {
		return err
	}
	e, err := token.UintArg(op, params, 1)
	if err != nil {
		return err
	}
	*start, *end = s, e
	return nil
}

func caseChunk(start, end uint64, input, op string, convert func(string) string) (string, error) {
	if err := checkChunkBounds(op, start, end); err != nil {
		return "", err
	}
	if err := checkRuneIndex(op, start, input); err != nil {
		return "", err
	}
	runes := []rune(input)
	if end >= uint64(len(runes)) {
		end = uint64(len(runes)) - 1
	}
	return string(runes[:start]) + convert(string(runes[start:end+1])) + string(runes[end+1:]), nil
}

// Tucw upper-cases the whitespace-separated word at Index.
type Tucw struct {
	Index uint64
}

func (t *Tucw) Mnemonic() string { return "tucw" }
func (t *Tucw) Opcode() uint32 { return 0x2a }
func (t *Tucw) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(t.Index)}
}
func (t *Tucw) TextLine() string { return textLine(t) }
func (t *Tucw) Clone() token.Instruction { c := *t; return &c }

func (t *Tucw) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("tucw", params, 1); err != nil {
		return err
	}
	idx, err := token.UintArg("tucw", params, 0)
	if err != nil {
		return err
	}
	t.Index = idx
	return nil
}

func (t *Tucw) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return caseWord(t.Index, input, "tucw", strings.ToUpper)
}

// Tlcw lower-cases the whitespace-separated word at Index.
type Tlcw struct {
	Index uint64
}

func (t *Tlcw) Mnemonic() string { return "tlcw" }
func (t *Tlcw) Opcode() uint32 { return 0x29 }
func (t *Tlcw) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(t.Index)}
}
func (t *Tlcw) TextLine() string { return textLine(t) }
func (t *Tlcw) Clone() token.Instruction { c := *t; return &c }

func (t *Tlcw) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("tlcw", params, 1); err != nil {
		return err
	}
	idx, err := token.UintArg("tlcw", params, 0)
	if err != nil {
		return err
	}
	t.Index = idx
	return nil
}

func (t *Tlcw) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return caseWord(t.Index, input, "tlcw", strings.ToLower)
}

func caseWord(idx uint64, input, op string, convert func(string) string) (string, error) {
	if err := checkWordIndex(op, idx, input); err != nil {
		return "", err
	}
	words := strings.Fields(input)
	words[idx] = convert(words[idx])
	return strings.Join(words, " "), nil
}
