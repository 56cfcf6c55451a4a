package transforms

import (
	"regexp"

	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/token"
)

func compilePattern(op, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, atperr.Newf(atperr.CodeInvalidParameters, op,
			"invalid pattern %q: %v", pattern, err)
	}
	return re, nil
}

// regex returns the compiled form of pattern, reusing the cached one built
// by FromParams when present.
func regex(op, pattern string, cached *regexp.Regexp) (*regexp.Regexp, error) {
	if cached != nil {
		return cached, nil
	}
	return compilePattern(op, pattern)
}

// Rfw replaces the first regex match with Text.
type Rfw struct {
	Pattern string
	Text    string

	re *regexp.Regexp
}

func (r *Rfw) Mnemonic() string { return "rfw" }
func (r *Rfw) Opcode() uint32 { return 0x0b }
func (r *Rfw) Params() []token.ParamValue {
	return []token.ParamValue{token.Text(r.Pattern), token.Text(r.Text)}
}
func (r *Rfw) TextLine() string { return textLine(r) }
func (r *Rfw) Clone() token.Instruction { c := *r; return &c }

func (r *Rfw) FromParams(params []token.ParamValue) error {
	pattern, text, re, err := patternTextFromParams("rfw", params)
	if err != nil {
		return err
	}
	r.Pattern, r.Text, r.re = pattern, text, re
	return nil
}

func (r *Rfw) Transform(input string, _ *token.ExecutionContext) (string, error) {
	re, err := regex("rfw", r.Pattern, r.re)
	if err != nil {
		return "", err
	}
	loc := re.FindStringIndex(input)
	if loc == nil {
		return input, nil
	}
	return input[:loc[0]] + r.Text + input[loc[1]:], nil
}

// Raw replaces every regex match with Text.
type Raw struct {
	Pattern string
	Text    string

	re *regexp.Regexp
}

func (r *Raw) Mnemonic() string { return "raw" }
func (r *Raw) Opcode() uint32 { return 0x0c }
func (r *Raw) Params() []token.ParamValue {
	return []token.ParamValue{token.Text(r.Pattern), token.Text(r.Text)}
}
func (r *Raw) TextLine() string { return textLine(r) }
func (r *Raw) Clone() token.Instruction { c := *r; return &c }

func (r *Raw) FromParams(params []token.ParamValue) error {
	pattern, text, re, err := patternTextFromParams("raw", params)
	if err != nil {
		return err
	}
	r.Pattern, r.Text, r.re = pattern, text, re
	return nil
}

func (r *Raw) Transform(input string, _ *token.ExecutionContext) (string, error) {
	re, err := regex("raw", r.Pattern, r.re)
	if err != nil {
		return "", err
	}
	return re.ReplaceAllLiteralString(input, r.Text), nil
}

// Rcw replaces the first Count regex matches with Text. Count zero leaves
// the input untouched.
type Rcw struct {
	Pattern string
	Text    string
	Count   uint64

	re *regexp.Regexp
}

func (r *Rcw) Mnemonic() string { return "rcw" }
func (r *Rcw) Opcode() uint32 { return 0x10 }
func (r *Rcw) Params() []token.ParamValue {
	return []token.ParamValue{token.Text(r.Pattern), token.Text(r.Text), token.Uint(r.Count)}
}
func (r *Rcw) TextLine() string { return textLine(r) }
func (r *Rcw) Clone() token.Instruction { c := *r; return &c }

func (r *Rcw) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("rcw", params, 3); err != nil {
		return err
	}
	pattern, err := token.TextArg("rcw", params, 0)
	if err != nil {
		return err
	}
	text, err := token.TextArg("rcw", params, 1)
	if err != nil {
		return err
	}
	count, err := token.UintArg("rcw", params, 2)
	if err != nil {
		return err
	}
	re, err := compilePattern("rcw", pattern)
	if err != nil {
		return err
	}
	r.Pattern, r.Text, r.Count, r.re = pattern, text, count, re
	return nil
}

func (r *Rcw) Transform(input string, _ *token.ExecutionContext) (string, error) {
	if r.Count == 0 {
		return input, nil
	}
	re, err := regex("rcw", r.Pattern, r.re)
	if err != nil {
		return "", err
	}
	replaced := uint64(0)
	return re.ReplaceAllStringFunc(input, func(m string) string {
		if replaced >= r.Count {
			return m
		}
		replaced++
		return r.Text
	}), nil
}

// Rlw replaces the last regex match with Text.
type Rlw struct {
	Pattern string
	Text    string

	re *regexp.Regexp
}

func (r *Rlw) Mnemonic() string { return "rlw" }
func (r *Rlw) Opcode() uint32 { return 0x1e }
func (r *Rlw) Params() []token.ParamValue {
	return []token.ParamValue{token.Text(r.Pattern), token.Text(r.Text)}
}
func (r *Rlw) TextLine() string { return textLine(r) }
func (r *Rlw) Clone() token.Instruction { c := *r; return &c }

func (r *Rlw) FromParams(params []token.ParamValue) error {
	pattern, text, re, err := patternTextFromParams("rlw", params)
	if err != nil {
		return err
	}
	r.Pattern, r.Text, r.re = pattern, text, re
	return nil
}

func (r *Rlw) Transform(input string, _ *token.ExecutionContext) (string, error) {
	re, err := regex("rlw", r.Pattern, r.re)
	if err != nil {
		return "", err
	}
	locs := re.FindAllStringIndex(input, -1)
	if len(locs) == 0 {
		return input, nil
	}
	last := locs[len(locs)-1]
	return input[:last[0]] + r.Text + input[last[1]:], nil
}

// Rnw replaces the Index-th regex match with Text. An absent match leaves
// the input untouched.
type Rnw struct {
	Pattern string
	Text    string
	Index   uint64

	re *regexp.Regexp
}

func (r *Rnw) Mnemonic() string { return "rnw" }
func (r *Rnw) Opcode() uint32 { return 0x1f }
func (r *Rnw) Params() []token.ParamValue {
	return []token.ParamValue{token.Text(r.Pattern), token.Text(r.Text), token.Uint(r.Index)}
}
func (r *Rnw) TextLine() string { return textLine(r) }
func (r *Rnw) Clone() token.Instruction { c := *r; return &c }

func (r *Rnw) FromParams(params []token.ParamValue) error {
	if err := token.CheckArity("rnw", params, 3); err != nil {
		return err
	}
	pattern, err := token.TextArg("rnw", params, 0)
	if err != nil {
		return err
	}
	text, err := token.TextArg("rnw", params, 1)
	if err != nil {
		return err
	}
	idx, err := token.UintArg("rnw", params, 2)
	if err != nil {
		return err
	}
	re, err := compilePattern("rnw", pattern)
	if err != nil {
		return err
	}
	r.Pattern, r.Text, r.Index, r.re = pattern, text, idx, re
	return nil
}

func (r *Rnw) Transform(input string, _ *token.ExecutionContext) (string, error) {
	re, err := regex("rnw", r.Pattern, r.re)
	if err != nil {
		return "", err
	}
	locs := re.FindAllStringIndex(input, -1)
	if r.Index >= uint64(len(locs)) {
		return input, nil
	}
	loc := locs[r.Index]
	return input[:loc[0]] + r.Text + input[loc[1]:], nil
}

func patternTextFromParams(op string, params []token.ParamValue) (string, string, *regexp.Regexp, error) {
	if err := token.CheckArity(op, params, 2); err != nil {
		return "", "", nil, err
	}
	pattern, err := token.TextArg(op, params, 0)
	if err != nil {
		return "", "", nil, err
	}
	text, err := token.TextArg(op, params, 1)
	if err != nil {
		return "", "", nil, err
	}
	re, err := compilePattern(op, pattern)
	if err != nil {
		return "", "", nil, err
	}
	return pattern, text, re, nil
}
