package transforms

import (
	"regexp"

	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/token"
)

// Slt keeps only the inclusive rune slice [Start..End]. End past the last
// rune is clamped to it.
type Slt struct {
	Start uint64
	End   uint64
}

func (s *Slt) Mnemonic() string { return "slt" }
func (s *Slt) Opcode() uint32 { return 0x11 }
func (s *Slt) Params() []token.ParamValue {
	return []token.ParamValue{token.Uint(s.Start), token.Uint(s.End)}
}
func (s *Slt) TextLine() string { return textLine(s) }
func (s *Slt) Clone() token.Instruction { c := *s; return &c }

func (s *Slt) FromParams(params []token.ParamValue) error {
	return chunkFromParams("slt", params, &s.Start, &s.End)
}

func (s *Slt) Transform(input string, _ *token.ExecutionContext) (string, error) {
	if err := checkChunkBounds("slt", s.Start, s.End); err != nil {
		return "", err
	}
	if err := checkRuneIndex("slt", s.Start, input); err != nil {
		return "", err
	}
	runes := []rune(input)
	end := s.End
	if end >= uint64(len(runes)) {
		end = uint64(len(runes)) - 1
	}
	return string(runes[s.Start : end+1]), nil
}

// Sslt splits the input on a regex pattern and keeps the element at Index.
type Sslt struct {
	Pattern string
	Index   uint64

	re *regexp.Regexp
}

func (s *Sslt) Mnemonic() string { return "sslt" }
func (s *Sslt) Opcode() uint32 { return 0x1a }
func (s *Sslt) Params() []token.ParamValue {
	return []token.ParamValue{token.Text(s.Pattern), token.Uint(s.Index)}
}
func (s *Sslt) TextLine() string { return textLine(s) }
func (s *Sslt) Clone() token.Instruction { c := *s; return &c }

func (s *Sslt) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("sslt", params, 2); err != nil {
		return err
	}
	pattern, err := token.TextArg("sslt", params, 0)
	if err != nil {
		return err
	}
	idx, err := token.UintArg("sslt", params, 1)
	if err != nil {
		return err
	}
	re, err := compilePattern("sslt", pattern)
	if err != nil {
		return err
	}
	s.Pattern, s.Index, s.re = pattern, idx, re
	return nil
}

func (s *Sslt) Transform(input string, _ *token.ExecutionContext) (string, error) {
	re, err := regex("sslt", s.Pattern, s.re)
	if err != nil {
		return "", err
	}
	parts := re.Split(input, -1)
	if s.Index >= uint64(len(parts)) {
		return "", atperr.Newf(atperr.CodeIndexOutOfRange, "sslt",
			"split element %d does not exist, split produced %d elements", s.Index, len(parts))
	}
	return parts[s.Index], nil
}
