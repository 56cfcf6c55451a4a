package transforms

import (
	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/token"
)

// Dlf deletes the first rune.
type Dlf struct{}

func (d *Dlf) Mnemonic() string { return "dlf" }
func (d *Dlf) Opcode() uint32 { return 0x03 }
func (d *Dlf) Params() []token.ParamValue { return nil }
func (d *Dlf) TextLine() string { return textLine(d) }
func (d *Dlf) Clone() token.Instruction { c := *d; return &c }
func (d *Dlf) FromParams(params []token.ParamValue) error {
	return token.CheckArity("dlf", params, 0)
}

func (d *Dlf) Transform(input string, _ *token.ExecutionContext) (string, error) {
	runes := []rune(input)
	if len(runes) == 0 {
		return input, nil
	}
	return string(runes[1:]), nil
}

// Dll deletes the last rune.
type Dll struct{}

func (d *Dll) Mnemonic() string { return "dll" }
func (d *Dll) Opcode() uint32 { return 0x04 }
func (d *Dll) Params() []token.ParamValue { return nil }
func (d *Dll) TextLine() string { return textLine(d) }
func (d *Dll) Clone() token.Instruction { c := *d; return &c }
func (d *Dll) FromParams(params []token.ParamValue) error {
	return token.CheckArity("dll", params, 0)
}

func (d *Dll) Transform(input string, _ *token.ExecutionContext) (string, error) {
	runes := []rune(input)
	if len(runes) == 0 {
		return input, nil
	}
	return string(runes[:len(runes)-1]), nil
}

// Dla deletes everything after the rune at Index. The index must not be the
// last rune, matching the rule that the instruction always removes at least
// one rune.
type Dla struct {
	Index uint64
}

func (d *Dla) Mnemonic() string { return "dla" }
func (d *Dla) Opcode() uint32 { return 0x09 }
func (d *Dla) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(d.Index)}
}
func (d *Dla) TextLine() string { return textLine(d) }
func (d *Dla) Clone() token.Instruction { c := *d; return &c }

func (d *Dla) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("dla", params, 1); err != nil {
		return err
	}
	idx, err := token.UintArg("dla", params, 0)
	if err != nil {
		return err
	}
	d.Index = idx
	return nil
}

func (d *Dla) Transform(input string, _ *token.ExecutionContext) (string, error) {
	if err := checkRuneIndex("dla", d.Index, input); err != nil {
		return "", err
	}
	runes := []rune(input)
	if d.Index+1 >= uint64(len(runes)) {
		return "", atperr.Newf(atperr.CodeIndexOutOfRange, "dla",
			"no character exists after index %d", d.Index)
	}
	return string(runes[:d.Index+1]), nil
}

// Dlb deletes everything before the rune at Index.
type Dlb struct {
	Index uint64
}

func (d *Dlb) Mnemonic() string { return "dlb" }
func (d *Dlb) Opcode() uint32 { return 0x0a }
func (d *Dlb) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(d.Index)}
}
func (d *Dlb) TextLine() string { return textLine(d) }
func (d *Dlb) Clone() token.Instruction { c := *d; return &c }

func (d *Dlb) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("dlb", params, 1); err != nil {
		return err
	}
	idx, err := token.UintArg("dlb", params, 0)
	if err != nil {
		return err
	}
	d.Index = idx
	return nil
}

func (d *Dlb) Transform(input string, _ *token.ExecutionContext) (string, error) {
	if err := checkRuneIndex("dlb", d.Index, input); err != nil {
		return "", err
	}
	runes := []rune(input)
	return string(runes[d.Index:]), nil
}

// Dlc deletes the inclusive rune chunk [Start..End]. End past the last rune
// is clamped to it.
type Dlc struct {
	Start uint64
	End   uint64
}

func (d *Dlc) Mnemonic() string { return "dlc" }
func (d *Dlc) Opcode() uint32 { return 0x08 }
func (d *Dlc) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(d.Start), token.Uint(d.End)}
}
func (d *Dlc) TextLine() string { return textLine(d) }
func (d *Dlc) Clone() token.Instruction { c := *d; return &c }

func (d *Dlc) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("dlc", params, 2); err != nil {
		return err
	}
	start, err := token.UintArg("dlc", params, 0)
	if err != nil {
		return err
	}
	end, err := token.UintArg("dlc", params, 1)
	if err != nil {
		return err
	}
	d.Start, d.End = start, end
	return nil
}

func (d *Dlc) Transform(input string, _ *token.ExecutionContext) (string, error) {
	if input == "" {
		return input, nil
	}
	if err := checkChunkBounds("dlc", d.Start, d.End); err != nil {
		return "", err
	}
	if err := checkRuneIndex("dlc", d.Start, input); err != nil {
		return "", err
	}
	runes := []rune(input)
	end := d.End
	if end >= uint64(len(runes)) {
		end = uint64(len(runes)) - 1
	}
	return string(runes[:d.Start]) + string(runes[end+1:]), nil
}

// Dls deletes the single rune at Index.
type Dls struct {
	Index uint64
}

func (d *Dls) Mnemonic() string { return "dls" }
func (d *Dls) Opcode() uint32 { return 0x32 }
func (d *Dls) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(d.Index)}
}
func (d *Dls) TextLine() string { return textLine(d) }
func (d *Dls) Clone() token.Instruction { c := *d; return &c }

func (d *Dls) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("dls", params, 1); err != nil {
		return err
	}
	idx, err := token.UintArg("dls", params, 0)
	if err != nil {
		return err
	}
	d.Index = idx
	return nil
}

func (d *Dls) Transform(input string, _ *token.ExecutionContext) (string, error) {
	if err := checkRuneIndex("dls", d.Index, input); err != nil {
		return "", err
	}
	runes := []rune(input)
	return string(runes[:d.Index]) + string(runes[d.Index+1:]), nil
}
