package token

import "strings"

// QuoteWord quotes a parameter for the text form when it contains
// characters the shell-word splitter treats as delimiters. The text parser
// un-quotes with the same rules, so quoted parameters round-trip.
func QuoteWord(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'\\") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// FormatLine renders the canonical text line for a leaf instruction:
// mnemonic, space-separated quoted parameters, ";", newline.
func FormatLine(mnemonic string, params []ParamValue) string {
	var b strings.Builder
	b.WriteString(mnemonic)
	for _, p := range params {
		b.WriteByte(' ')
		switch p.Kind() {
		case KindText:
			b.WriteString(QuoteWord(p.Text()))
		default:
			b.WriteString(p.String())
		}
	}
	b.WriteString(";\n")
	return b.String()
}

// TrimLine strips the ";" terminator and trailing newline from a rendered
// text line, for embedding an instruction inside another's line.
func TrimLine(line string) string {
	line = strings.TrimRight(line, "\n")
	return strings.TrimSuffix(line, ";")
}
