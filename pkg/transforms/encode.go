package transforms

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/token"
)

const upperhex = "0123456789ABCDEF"

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.' || c == '~':
		return true
	}
	return false
}

// Urle percent-encodes every byte outside the unreserved set.
type Urle struct{}

func (u *Urle) Mnemonic() string { return "urle" }
func (u *Urle) Opcode() uint32 { return 0x20 }
func (u *Urle) Params() []token.ParamValue { return nil }
func (u *Urle) TextLine() string { return textLine(u) }
func (u *Urle) Clone() token.Instruction { c := *u; return &c }
func (u *Urle) FromParams(params []token.ParamValue) error {
	return token.CheckArity("urle", params, 0)
}

func (u *Urle) Transform(input string, _ *token.ExecutionContext) (string, error) {
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String(), nil
}

// Urld decodes percent escapes. Unlike query unescaping, "+" stays a plus.
type Urld struct{}

func (u *Urld) Mnemonic() string { return "urld" }
func (u *Urld) Opcode() uint32 { return 0x21 }
func (u *Urld) Params() []token.ParamValue { return nil }
func (u *Urld) TextLine() string { return textLine(u) }
func (u *Urld) Clone() token.Instruction { c := *u; return &c }
func (u *Urld) FromParams(params []token.ParamValue) error {
	return token.CheckArity("urld", params, 0)
}

func (u *Urld) Transform(input string, _ *token.ExecutionContext) (string, error) {
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); {
		if input[i] != '%' {
			b.WriteByte(input[i])
			i++
			continue
		}
		if i+3 > len(input) {
			return "", atperr.New(atperr.CodeInvalidParameters, "urld",
				"truncated percent escape")
		}
		hi, ok1 := unhex(input[i+1])
		lo, ok2 := unhex(input[i+2])
		if !ok1 || !ok2 {
			return "", atperr.Newf(atperr.CodeInvalidParameters, "urld",
				"invalid percent escape %q", input[i:i+3])
		}
		b.WriteByte(hi<<4 | lo)
		i += 3
	}
	return b.String(), nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Htmle escapes the HTML special characters.
type Htmle struct{}

func (h *Htmle) Mnemonic() string { return "htmle" }
func (h *Htmle) Opcode() uint32 { return 0x24 }
func (h *Htmle) Params() []token.ParamValue { return nil }
func (h *Htmle) TextLine() string { return textLine(h) }
func (h *Htmle) Clone() token.Instruction { c := *h; return &c }
func (h *Htmle) FromParams(params []token.ParamValue) error {
	return token.CheckArity("htmle", params, 0)
}

func (h *Htmle) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return html.EscapeString(input), nil
}

// Htmlu unescapes HTML entities.
type Htmlu struct{}

func (h *Htmlu) Mnemonic() string { return "htmlu" }
func (h *Htmlu) Opcode() uint32 { return 0x25 }
func (h *Htmlu) Params() []token.ParamValue { return nil }
func (h *Htmlu) TextLine() string { return textLine(h) }
func (h *Htmlu) Clone() token.Instruction { c := *h; return &c }
func (h *Htmlu) FromParams(params []token.ParamValue) error {
	return token.CheckArity("htmlu", params, 0)
}

func (h *Htmlu) Transform(input string, _ *token.ExecutionContext) (string, error) {
	return html.UnescapeString(input), nil
}

// Jsone encodes the input as a JSON string literal, quotes included.
type Jsone struct{}

func (j *Jsone) Mnemonic() string { return "jsone" }
func (j *Jsone) Opcode() uint32 { return 0x26 }
func (j *Jsone) Params() []token.ParamValue { return nil }
func (j *Jsone) TextLine() string { return textLine(j) }
func (j *Jsone) Clone() token.Instruction { c := *j; return &c }
func (j *Jsone) FromParams(params []token.ParamValue) error {
	return token.CheckArity("jsone", params, 0)
}

func (j *Jsone) Transform(input string, _ *token.ExecutionContext) (string, error) {
	out, err := json.Marshal(input)
	if err != nil {
		return "", atperr.Newf(atperr.CodeTextParsing, "jsone", "%v", err)
	}
	return string(out), nil
}

// Jsonu decodes a JSON string literal back to its text.
type Jsonu struct{}

func (j *Jsonu) Mnemonic() string { return "jsonu" }
func (j *Jsonu) Opcode() uint32 { return 0x27 }
func (j *Jsonu) Params() []token.ParamValue { return nil }
func (j *Jsonu) TextLine() string { return textLine(j) }
func (j *Jsonu) Clone() token.Instruction { c := *j; return &c }
func (j *Jsonu) FromParams(params []token.ParamValue) error {
	return token.CheckArity("jsonu", params, 0)
}

func (j *Jsonu) Transform(input string, _ *token.ExecutionContext) (string, error) {
	var out string
	if err := json.Unmarshal([]byte(input), &out); err != nil {
		return "", atperr.Newf(atperr.CodeTextParsing, "jsonu",
			"input is not a JSON string literal: %v", err)
	}
	return out, nil
}
