package processor

import (
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/atplang/atp/pkg/atperr"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	cborEncMode = em
}

// Step is one instruction application inside a traced run.
type Step struct {
	Ordinal int    `cbor:"ordinal"`
	Line    string `cbor:"line"`
	Before  string `cbor:"before"`
	After   string `cbor:"after"`
	Failed  bool   `cbor:"failed,omitempty"`
}

// Trace is the full record of one traced run.
type Trace struct {
	PipelineID string `cbor:"pipeline_id"`
	Input      string `cbor:"input"`
	Output     string `cbor:"output"`
	Error      string `cbor:"error,omitempty"`
	Steps      []Step `cbor:"steps"`
}

// Marshal renders the trace as canonical CBOR.
func (t *Trace) Marshal() ([]byte, error) {
	return cborEncMode.Marshal(t)
}

// UnmarshalTrace parses a CBOR trace.
func UnmarshalTrace(data []byte) (*Trace, error) {
	var t Trace
	if err := cbor.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// LastTrace returns the trace of the most recent ExecuteTraced call, or nil
// when no traced run happened yet.
func (p *Processor) LastTrace() *Trace {
	return p.lastTrace
}

// WriteLastTrace saves the most recent trace as CBOR.
func (p *Processor) WriteLastTrace(path string) error {
	if p.lastTrace == nil {
		return p.fail(atperr.New(atperr.CodeValidation, "processor.WriteLastTrace",
			"no traced run happened yet"))
	}
	data, err := p.lastTrace.Marshal()
	if err != nil {
		return p.fail(atperr.Newf(atperr.CodeValidation, "processor.WriteLastTrace", "%v", err))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return p.fail(atperr.Newf(atperr.CodeFileWritingError, "processor.WriteLastTrace",
			"%s: %v", path, err))
	}
	return nil
}
