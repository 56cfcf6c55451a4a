// Package processor manages registered pipelines and runs them. A Processor
// is single-threaded and deterministic: every execution builds a fresh
// context, folds the pipeline left to right and stops on the first error.
// Every failure is appended to an internal error log before it is returned.
package processor

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/bytecode"
	"github.com/atplang/atp/pkg/text"
	"github.com/atplang/atp/pkg/token"
)

// Processor owns the id-to-pipeline table and the append-only error log.
type Processor struct {
	pipelines map[string][]token.Instruction
	errorLog  []error
	lastTrace *Trace

	log commonlog.Logger
}

// New returns an empty Processor.
func New() *Processor {
	return &Processor{
		pipelines: make(map[string][]token.Instruction),
		log:       commonlog.GetLogger("atp.processor"),
	}
}

// Register stores a pipeline and returns its fresh UUID id.
func (p *Processor) Register(tokens []token.Instruction) string {
	id := uuid.NewString()
	owned := make([]token.Instruction, len(tokens))
	for i, in := range tokens {
		owned[i] = in.Clone()
	}
	p.pipelines[id] = owned
	return id
}

// Unregister removes a pipeline. Fails with TokenNotFound for unknown ids.
func (p *Processor) Unregister(id string) error {
	if _, ok := p.pipelines[id]; !ok {
		return p.fail(atperr.Newf(atperr.CodeTokenNotFound, "processor.Unregister",
			"no pipeline with id %s", id))
	}
	delete(p.pipelines, id)
	return nil
}

// Exists reports whether a pipeline is registered under id.
func (p *Processor) Exists(id string) bool {
	_, ok := p.pipelines[id]
	return ok
}

// ListIDs returns the registered pipeline ids in unspecified order.
func (p *Processor) ListIDs() []string {
	ids := make([]string, 0, len(p.pipelines))
	for id := range p.pipelines {
		ids = append(ids, id)
	}
	return ids
}

// Execute runs the pipeline registered under id over input. Unknown ids fail
// with TokenArrayNotFound.
func (p *Processor) Execute(id, input string) (string, error) {
	tokens, ok := p.pipelines[id]
	if !ok {
		return "", p.fail(atperr.Newf(atperr.CodeTokenArrayNotFound, "processor.Execute",
			"no pipeline with id %s", id))
	}
	out, err := p.fold(tokens, input, nil)
	if err != nil {
		return "", p.fail(err)
	}
	return out, nil
}

// ExecuteTraced runs like Execute but records every step and logs it. The
// trace of the most recent traced run stays available through LastTrace.
func (p *Processor) ExecuteTraced(id, input string) (string, error) {
	tokens, ok := p.pipelines[id]
	if !ok {
		return "", p.fail(atperr.Newf(atperr.CodeTokenArrayNotFound, "processor.ExecuteTraced",
			"no pipeline with id %s", id))
	}
	trace := &Trace{PipelineID: id, Input: input}
	out, err := p.fold(tokens, input, trace)
	trace.Output = out
	if err != nil {
		trace.Error = err.Error()
	}
	p.lastTrace = trace
	if err != nil {
		return "", p.fail(err)
	}
	return out, nil
}

// ExecuteOnce runs a single ad hoc instruction with its own fresh context.
func (p *Processor) ExecuteOnce(in token.Instruction, input string) (string, error) {
	out, err := in.Transform(input, token.NewExecutionContext())
	if err != nil {
		return "", p.fail(err)
	}
	return out, nil
}

func (p *Processor) fold(tokens []token.Instruction, input string, trace *Trace) (string, error) {
	ctx := token.NewExecutionContext()
	out := input
	for i, in := range tokens {
		next, err := in.Transform(out, ctx)
		if trace != nil {
			step := Step{
				Ordinal: i,
				Line:    strings.TrimRight(in.TextLine(), "\n"),
				Before:  out,
			}
			if err != nil {
				step.Failed = true
				p.log.Errorf("step %d %s: %v", i, step.Line, err)
			} else {
				step.After = next
				p.log.Debugf("step %d %s: %q -> %q", i, step.Line, out, next)
			}
			trace.Steps = append(trace.Steps, step)
		}
		if err != nil {
			return "", err
		}
		out = next
	}
	return out, nil
}

// ExportText renders a registered pipeline as its text-form lines.
func (p *Processor) ExportText(id string) ([]string, error) {
	tokens, ok := p.pipelines[id]
	if !ok {
		return nil, p.fail(atperr.Newf(atperr.CodeTokenArrayNotFound, "processor.ExportText",
			"no pipeline with id %s", id))
	}
	lines := make([]string, len(tokens))
	for i, in := range tokens {
		lines[i] = in.TextLine()
	}
	return lines, nil
}

// ExportBytecode renders a registered pipeline as concatenated bytecode
// records, without the file header.
func (p *Processor) ExportBytecode(id string) ([]byte, error) {
	tokens, ok := p.pipelines[id]
	if !ok {
		return nil, p.fail(atperr.Newf(atperr.CodeTokenArrayNotFound, "processor.ExportBytecode",
			"no pipeline with id %s", id))
	}
	var out []byte
	for _, in := range tokens {
		record, err := bytecode.EncodeInstruction(in)
		if err != nil {
			return nil, p.fail(err)
		}
		out = append(out, record...)
	}
	return out, nil
}

// ImportText parses text-form lines and registers the result.
func (p *Processor) ImportText(lines []string) (string, error) {
	tokens, err := text.ParsePipeline(strings.Join(lines, "\n"))
	if err != nil {
		return "", p.fail(err)
	}
	return p.Register(tokens), nil
}

// ImportBytecode decodes concatenated bytecode records and registers the
// result.
func (p *Processor) ImportBytecode(data []byte) (string, error) {
	var tokens []token.Instruction
	for pos := 0; pos < len(data); {
		in, n, err := bytecode.DecodeInstruction(data[pos:])
		if err != nil {
			return "", p.fail(err)
		}
		tokens = append(tokens, in)
		pos += n
	}
	return p.Register(tokens), nil
}

// Errors returns the append-only error log.
func (p *Processor) Errors() []error {
	return p.errorLog
}

// ErrorCount returns the error log length.
func (p *Processor) ErrorCount() int {
	return len(p.errorLog)
}

func (p *Processor) fail(err error) error {
	p.errorLog = append(p.errorLog, err)
	return err
}
