// Package text implements the human-readable pipeline form: one instruction
// per line, shell-word quoting for parameters, ";" terminators. Parsing is
// signature driven, so nested instructions and literal keywords like the
// "assoc" of blk come straight from the registry's slot lists.
package text

import (
	"strconv"
	"strings"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/registry"
	"github.com/atplang/atp/pkg/token"
)

const (
	// plainNestingLimit bounds instruction parameters outside a block
	// payload. assocNestingLimit applies inside one.
	plainNestingLimit = 1
	assocNestingLimit = 3
)

// ParsePipeline parses a full text-form document. Blank lines are skipped.
// Newlines inside quoted parameters belong to the parameter, not the line
// structure, so quoted text round-trips through RenderPipeline.
func ParsePipeline(src string) ([]token.Instruction, error) {
	var tokens []token.Instruction
	for _, line := range splitLines(src) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		in, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, in)
	}
	return tokens, nil
}

// splitLines splits the document at newlines that are not quoted or escaped,
// following the same quoting rules the shell-word splitter applies.
func splitLines(src string) []string {
	var (
		lines []string
		b     strings.Builder
		quote rune
		esc   bool
	)
	for _, ch := range src {
		switch {
		case esc:
			esc = false
		case quote == '\'':
			if ch == '\'' {
				quote = 0
			}
		case quote == '"':
			if ch == '\\' {
				esc = true
			} else if ch == '"' {
				quote = 0
			}
		case ch == '\\':
			esc = true
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '\n':
			lines = append(lines, b.String())
			b.Reset()
			continue
		}
		b.WriteRune(ch)
	}
	if b.Len() > 0 {
		lines = append(lines, b.String())
	}
	return lines
}

// ParseLine parses a single instruction line. The trailing ";" is optional.
func ParseLine(line string) (token.Instruction, error) {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimSuffix(trimmed, ";")
	words, err := shellwords.Parse(trimmed)
	if err != nil {
		return nil, atperr.Newf(atperr.CodeTextParsing, "text.ParseLine",
			"cannot split %q: %v", line, err)
	}
	if len(words) == 0 {
		return nil, atperr.New(atperr.CodeTextParsing, "text.ParseLine", "empty line")
	}
	in, used, err := parseWords(words, 0, plainNestingLimit, false)
	if err != nil {
		return nil, err
	}
	if used != len(words) {
		return nil, atperr.Newf(atperr.CodeTextParsing, "text.ParseLine",
			"%d trailing words after %q", len(words)-used, words[0])
	}
	return in, nil
}

// parseWords consumes one instruction from the front of words and returns
// how many words it used. depth counts nested-instruction hops from the top
// of the line; limit is the depth budget in force, which widens inside a
// block's assoc payload.
func parseWords(words []string, depth, limit int, inAssoc bool) (token.Instruction, int, error) {
	mnemonic := words[0]
	entry, err := registry.ByMnemonic(mnemonic)
	if err != nil {
		return nil, 0, err
	}

	params := make([]token.ParamValue, 0, len(entry.Sig))
	hasVarRef := false
	pos := 1
	for _, slot := range entry.Sig {
		if slot.Literal != "" {
			if pos >= len(words) || words[pos] != slot.Literal {
				return nil, 0, atperr.Newf(atperr.CodeTextParsing, mnemonic,
					"expected keyword %q at word %d", slot.Literal, pos)
			}
			pos++
			continue
		}
		if pos >= len(words) {
			return nil, 0, atperr.Newf(atperr.CodeTextParsing, mnemonic,
				"missing parameter at word %d", pos)
		}

		switch slot.Kind {
		case token.KindText:
			if name, ok := varRefName(words[pos]); ok {
				params = append(params, token.VarRef(name))
				hasVarRef = true
			} else {
				params = append(params, token.Text(words[pos]))
			}
			pos++
		case token.KindUint:
			if name, ok := varRefName(words[pos]); ok {
				params = append(params, token.VarRef(name))
				hasVarRef = true
				pos++
				break
			}
			n, err := strconv.ParseUint(words[pos], 10, 64)
			if err != nil {
				return nil, 0, atperr.Newf(atperr.CodeTextParsing, mnemonic,
					"%q is not an unsigned integer", words[pos])
			}
			params = append(params, token.Uint(n))
			pos++
		case token.KindInstruction:
			nestedLimit := limit
			nestedAssoc := inAssoc
			if entry.Sig.BlockLike() {
				nestedLimit = assocNestingLimit
				nestedAssoc = true
			}
			if depth+1 > nestedLimit {
				return nil, 0, atperr.Newf(atperr.CodeTextParsing, mnemonic,
					"instruction nesting exceeds depth %d", nestedLimit)
			}
			if nestedAssoc {
				if nestedEntry, err := registry.ByMnemonic(words[pos]); err == nil && nestedEntry.Sig.BlockLike() {
					return nil, 0, atperr.New(atperr.CodeTextParsing, mnemonic,
						"a block cannot contain another block")
				}
			}
			nested, used, err := parseWords(words[pos:], depth+1, nestedLimit, nestedAssoc)
			if err != nil {
				return nil, 0, err
			}
			params = append(params, token.Instr(nested))
			pos += used
		}
	}

	if hasVarRef {
		bound := token.NewBound(entry.New(), entry.Sig, params)
		return bound, pos, nil
	}
	in := entry.New()
	if err := in.FromParams(params); err != nil {
		return nil, 0, err
	}
	return in, pos, nil
}

func varRefName(word string) (string, bool) {
	if strings.HasPrefix(word, "{{") && strings.HasSuffix(word, "}}") && len(word) > 4 {
		return word[2 : len(word)-2], true
	}
	return "", false
}
