package processor

import (
	"path/filepath"

	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/bytecode"
	"github.com/atplang/atp/pkg/text"
)

const (
	// TextExtension and BytecodeExtension are the pipeline file suffixes.
	TextExtension     = ".atp"
	BytecodeExtension = ".atpbc"
)

func checkExtension(op, path, want string) error {
	if filepath.Ext(path) != want {
		return atperr.Newf(atperr.CodeValidation, op,
			"%s does not have the %s extension", path, want)
	}
	return nil
}

// ReadTextFile loads an .atp file and registers its pipeline.
func (p *Processor) ReadTextFile(path string) (string, error) {
	if err := checkExtension("processor.ReadTextFile", path, TextExtension); err != nil {
		return "", p.fail(err)
	}
	tokens, err := text.ReadFile(path)
	if err != nil {
		return "", p.fail(err)
	}
	return p.Register(tokens), nil
}

// WriteTextFile saves a registered pipeline to an .atp file.
func (p *Processor) WriteTextFile(id, path string) error {
	if err := checkExtension("processor.WriteTextFile", path, TextExtension); err != nil {
		return p.fail(err)
	}
	tokens, ok := p.pipelines[id]
	if !ok {
		return p.fail(atperr.Newf(atperr.CodeTokenArrayNotFound, "processor.WriteTextFile",
			"no pipeline with id %s", id))
	}
	if err := text.WriteFile(path, tokens); err != nil {
		return p.fail(err)
	}
	return nil
}

// ReadBytecodeFile loads an .atpbc file and registers its pipeline.
func (p *Processor) ReadBytecodeFile(path string) (string, error) {
	if err := checkExtension("processor.ReadBytecodeFile", path, BytecodeExtension); err != nil {
		return "", p.fail(err)
	}
	tokens, err := bytecode.ReadFile(path)
	if err != nil {
		return "", p.fail(err)
	}
	return p.Register(tokens), nil
}

// WriteBytecodeFile saves a registered pipeline to an .atpbc file.
func (p *Processor) WriteBytecodeFile(id, path string) error {
	if err := checkExtension("processor.WriteBytecodeFile", path, BytecodeExtension); err != nil {
		return p.fail(err)
	}
	tokens, ok := p.pipelines[id]
	if !ok {
		return p.fail(atperr.Newf(atperr.CodeTokenArrayNotFound, "processor.WriteBytecodeFile",
			"no pipeline with id %s", id))
	}
	if err := bytecode.WriteFile(path, tokens); err != nil {
		return p.fail(err)
	}
	return nil
}
