package text

import (
	"path/filepath"
	"testing"

	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/token"
	"github.com/atplang/atp/pkg/transforms"
)

func TestParseLeaf(t *testing.T) {
	in, err := ParseLine("atb 'pre fix';")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	atb, ok := in.(*transforms.Atb)
	if !ok {
		t.Fatalf("parsed to %T", in)
	}
	if atb.Text != "pre fix" {
		t.Errorf("text = %q", atb.Text)
	}
}

func TestParseUintParams(t *testing.T) {
	in, err := ParseLine("dlc 1 3;")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	dlc := in.(*transforms.Dlc)
	if dlc.Start != 1 || dlc.End != 3 {
		t.Errorf("dlc = %+v", dlc)
	}

	if _, err := ParseLine("dlc one 3;"); atperr.CodeOf(err) != atperr.CodeTextParsing {
		t.Errorf("non-numeric index error = %v", err)
	}
}

func TestParseNested(t *testing.T) {
	in, err := ParseLine("ifdc x do ate '!';")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	ifdc := in.(*transforms.Ifdc)
	if ifdc.Needle != "x" {
		t.Errorf("needle = %q", ifdc.Needle)
	}
	if inner, ok := ifdc.Inner.(*transforms.Ate); !ok || inner.Text != "!" {
		t.Errorf("inner = %#v", ifdc.Inner)
	}
}

func TestParseBlockPayloadDepth(t *testing.T) {
	// Depth 2 inside an assoc payload is allowed.
	in, err := ParseLine("blk b assoc ifdc x do tua;")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if _, ok := in.(*transforms.Blk); !ok {
		t.Fatalf("parsed to %T", in)
	}

	// Plain nesting stops at depth 1.
	_, err = ParseLine("ifdc x do ifdc y do tua;")
	if atperr.CodeOf(err) != atperr.CodeTextParsing {
		t.Errorf("deep plain nesting error = %v", err)
	}
}

func TestBlockCannotContainBlock(t *testing.T) {
	_, err := ParseLine("blk outer assoc blk inner assoc tua;")
	if atperr.CodeOf(err) != atperr.CodeTextParsing {
		t.Fatalf("error = %v, want TextParsing", err)
	}
}

func TestParseVarRef(t *testing.T) {
	in, err := ParseLine("ate {{suffix}};")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	bound, ok := in.(*token.Bound)
	if !ok {
		t.Fatalf("parsed to %T, want *token.Bound", in)
	}

	ctx := token.NewExecutionContext()
	ctx.SetVar("suffix", token.Text("!"))
	got, err := bound.Transform("hi", ctx)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got != "hi!" {
		t.Errorf("Transform = %q", got)
	}
}

func TestParseVarRefTypeMismatch(t *testing.T) {
	in, err := ParseLine("rpt {{n}};")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	ctx := token.NewExecutionContext()
	ctx.SetVar("n", token.Text("three"))
	_, err = in.Transform("ab", ctx)
	if atperr.CodeOf(err) != atperr.CodeIncompatibleType {
		t.Fatalf("error = %v, want IncompatibleType", err)
	}
}

func TestParseUnknownMnemonic(t *testing.T) {
	_, err := ParseLine("frobnicate 1;")
	if atperr.CodeOf(err) != atperr.CodeTokenNotFound {
		t.Fatalf("error = %v, want TokenNotFound", err)
	}
}

func TestParseTrailingWords(t *testing.T) {
	_, err := ParseLine("tua extra;")
	if atperr.CodeOf(err) != atperr.CodeTextParsing {
		t.Fatalf("error = %v, want TextParsing", err)
	}
}

func TestPipelineRoundTrip(t *testing.T) {
	src := "tbs;\natb 'pre ';\nblk b assoc tua;\ncblk b;\nvali n 2;\n"
	tokens, err := ParsePipeline(src)
	if err != nil {
		t.Fatalf("ParsePipeline: %v", err)
	}
	if len(tokens) != 5 {
		t.Fatalf("parsed %d instructions", len(tokens))
	}
	if got := RenderPipeline(tokens); got != src {
		t.Errorf("render = %q, want %q", got, src)
	}
}

func TestQuotedRoundTrip(t *testing.T) {
	in := &transforms.Raw{Pattern: `\s+`, Text: "a b"}
	if err := in.FromParams(in.Params()); err != nil {
		t.Fatalf("FromParams: %v", err)
	}
	line := in.TextLine()
	back, err := ParseLine(line)
	if err != nil {
		t.Fatalf("ParseLine(%q): %v", line, err)
	}
	raw := back.(*transforms.Raw)
	if raw.Pattern != in.Pattern || raw.Text != in.Text {
		t.Errorf("round trip = %+v", raw)
	}
}

func TestQuotedNewlineRoundTrip(t *testing.T) {
	tokens := []token.Instruction{
		&transforms.Atb{Text: "first\nsecond"},
		&transforms.Tua{},
	}
	src := RenderPipeline(tokens)
	back, err := ParsePipeline(src)
	if err != nil {
		t.Fatalf("ParsePipeline(%q): %v", src, err)
	}
	if len(back) != 2 {
		t.Fatalf("parsed %d instructions", len(back))
	}
	atb := back[0].(*transforms.Atb)
	if atb.Text != "first\nsecond" {
		t.Errorf("atb text = %q", atb.Text)
	}
	if back[1].Mnemonic() != "tua" {
		t.Errorf("second instruction = %q", back[1].Mnemonic())
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipe.atp")
	tokens := []token.Instruction{&transforms.Rev{}, &transforms.Cfw{}}
	if err := WriteFile(path, tokens); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(out) != 2 || out[0].Mnemonic() != "rev" || out[1].Mnemonic() != "cfw" {
		t.Errorf("read back %v instructions", len(out))
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.atp"))
	if atperr.CodeOf(err) != atperr.CodeFileNotFound {
		t.Fatalf("error = %v, want FileNotFound", err)
	}
}
