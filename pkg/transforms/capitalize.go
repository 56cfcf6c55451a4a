package transforms

import (
	"strings"

	"github.com/atplang/atp/pkg/token"
)

// Cfw capitalizes the first rune of the input.
type Cfw struct{}

func (c *Cfw) Mnemonic() string { return "cfw" }
func (c *Cfw) Opcode() uint32 { return 0x18 }
func (c *Cfw) Params() []token.ParamValue { return nil }
func (c *Cfw) TextLine() string { return textLine(c) }
func (c *Cfw) Clone() token.Instruction { n := *c; return &n }
func (c *Cfw) FromParams(params []token.ParamValue) error {
	return token.CheckArity("cfw", params, 0)
}

func (c *Cfw) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return capitalize(input), nil
}

// Clw capitalizes the last space-separated word. Splitting is on single
// spaces so other spacing survives unchanged.
type Clw struct{}

func (c *Clw) Mnemonic() string { return "clw" }
func (c *Clw) Opcode() uint32 { return 0x19 }
func (c *Clw) Params() []token.ParamValue { return nil }
func (c *Clw) TextLine() string { return textLine(c) }
func (c *Clw) Clone() token.Instruction { n := *c; return &n }
func (c *Clw) FromParams(params []token.ParamValue) error {
	return token.CheckArity("clw", params, 0)
}

func (c *Clw) Transform(input string, _ *token.ExecutionContext) (string, error) {
	parts := strings.Split(input, " ")
	parts[len(parts)-1] = capitalize(parts[len(parts)-1])
	return strings.Join(parts, " "), nil
}

// Ctc capitalizes every word that starts inside the rune chunk
// [Start..End). The chunk is rebuilt with single spaces between its words.
type Ctc struct {
	Start uint64
	End   uint64
}

func (c *Ctc) Mnemonic() string { return "ctc" }
func (c *Ctc) Opcode() uint32 { return 0x1b }
func (c *Ctc) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(c.Start), token.Uint(c.End)}
}
func (c *Ctc) TextLine() string { return textLine(c) }
func (c *Ctc) Clone() token.Instruction { n := *c; return &n }

func (c *Ctc) FromParams(params []token.ParamValue) error {
	return chunkFromParams("ctc", params, &c.Start, &c.End)
}

func (c *Ctc) Transform(input string, _ *token.ExecutionContext) (string, error) {
	if err := checkChunkBounds("ctc", c.Start, c.End); err != nil {
		return "", err
	}
	if err := checkRuneIndex("ctc", c.Start, input); err != nil {
		return "", err
	}
	runes := []rune(input)
	end := c.End
	if end > uint64(len(runes)) {
		end = uint64(len(runes))
	}
	chunk := strings.Fields(string(runes[c.Start:end]))
	for i, w := range chunk {
		chunk[i] = capitalize(w)
	}
	return string(runes[:c.Start]) + strings.Join(chunk, " ") + string(runes[end:]), nil
}

// Ctr capitalizes the inclusive word range [Start..End]. End past the last
// word is clamped to it.
type Ctr struct {
	Start uint64
	End   uint64
}

func (c *Ctr) Mnemonic() string { return "ctr" }
func (c *Ctr) Opcode() uint32 { return 0x1c }
func (c *Ctr) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(c.Start), token.Uint(c.End)}
}
func (c *Ctr) TextLine() string { return textLine(c) }
func (c *Ctr) Clone() token.Instruction { n := *c; return &n }

func (c *Ctr) FromParams(params []token.ParamValue) error {
	return chunkFromParams("ctr", params, &c.Start, &c.End)
}

func (c *Ctr) Transform(input string, _ *token.ExecutionContext) (string, error) {
	if err := checkChunkBounds("ctr", c.Start, c.End); err != nil {
		return "", err
	}
	if err := checkWordIndex("ctr", c.Start, input); err != nil {
		return "", err
	}
	words := strings.Fields(input)
	end := c.End
	if end >= uint64(len(words)) {
		end = uint64(len(words)) - 1
	}
	for i := c.Start; i <= end; i++ {
		words[i] = capitalize(words[i])
	}
	return strings.Join(words, " "), nil
}

// Cts capitalizes the single word at Index.
type Cts struct {
	Index uint64
}

func (c *Cts) Mnemonic() string { return "cts" }
func (c *Cts) Opcode() uint32 { return 0x1d }
func (c *Cts) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(c.Index)}
}
func (c *Cts) TextLine() string { return textLine(c) }
func (c *Cts) Clone() token.Instruction { n := *c; return &n }

func (c *Cts) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("cts", params, 1); err != nil {
		return err
	}
	idx, err := token.UintArg("cts", params, 0)
	if err != nil {
		return err
	}
	c.Index = idx
	return nil
}

func (c *Cts) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return caseWord(c.Index, input, "cts", capitalize)
}
