package text

import (
	"os"
	"strings"

	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/token"
)

// RenderPipeline renders a pipeline as its canonical text form, one
// terminated line per instruction.
func RenderPipeline(tokens []token.Instruction) string {
	var b strings.Builder
	for _, in := range tokens {
		b.WriteString(in.TextLine())
	}
	return b.String()
}

// WriteFile saves a pipeline to an .atp text file.
func WriteFile(path string, tokens []token.Instruction) error {
	if err := os.WriteFile(path, []byte(RenderPipeline(tokens)), 0o644); err != nil {
		return atperr.Newf(atperr.CodeFileWritingError, "text.WriteFile", "%s: %v", path, err)
	}
	return nil
}

// ReadFile loads a pipeline from an .atp text file.
func ReadFile(path string) ([]token.Instruction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, atperr.Newf(atperr.CodeFileNotFound, "text.ReadFile", "%s", path)
		}
		return nil, atperr.Newf(atperr.CodeFileReadingError, "text.ReadFile", "%s: %v", path, err)
	}
	return ParsePipeline(string(data))
}
