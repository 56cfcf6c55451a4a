package bytecode

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/token"
	"github.com/atplang/atp/pkg/transforms"
)

func roundTrip(t *testing.T, in token.Instruction) token.Instruction {
	t.Helper()
	data, err := EncodeInstruction(in)
	if err != nil {
		t.Fatalf("EncodeInstruction(%s): %v", in.Mnemonic(), err)
	}
	out, n, err := DecodeInstruction(data)
	if err != nil {
		t.Fatalf("DecodeInstruction(%s): %v", in.Mnemonic(), err)
	}
	if n != len(data) {
		t.Fatalf("decode consumed %d of %d bytes", n, len(data))
	}
	return out
}

func TestRoundTripLeaf(t *testing.T) {
	in := &transforms.Atb{Text: "héllo world"}
	out := roundTrip(t, in)
	if out.TextLine() != in.TextLine() {
		t.Errorf("round trip = %q, want %q", out.TextLine(), in.TextLine())
	}
}

func TestRoundTripUintParams(t *testing.T) {
	in := &transforms.Dlc{Start: 2, End: 1 << 40}
	out := roundTrip(t, in).(*transforms.Dlc)
	if out.Start != 2 || out.End != 1<<40 {
		t.Errorf("round trip = %+v", out)
	}
}

func TestRoundTripNested(t *testing.T) {
	in := &transforms.Blk{Name: "shout", Inner: &transforms.Ate{Text: "!"}}
	out := roundTrip(t, in).(*transforms.Blk)
	if out.Name != "shout" {
		t.Errorf("name = %q", out.Name)
	}
	inner, ok := out.Inner.(*transforms.Ate)
	if !ok || inner.Text != "!" {
		t.Errorf("inner = %#v", out.Inner)
	}
}

func TestRoundTripDeepNested(t *testing.T) {
	in := &transforms.Blk{
		Name: "cond",
		Inner: &transforms.Ifdc{
			Needle: "x",
			Inner:  &transforms.Ins{Index: 1, Text: "y"},
		},
	}
	out := roundTrip(t, in)
	if out.TextLine() != in.TextLine() {
		t.Errorf("round trip = %q, want %q", out.TextLine(), in.TextLine())
	}
}

func TestRoundTripVarRef(t *testing.T) {
	in := roundTripVarRef(t)
	ctx := token.NewExecutionContext()
	ctx.SetVar("suffix", token.Text("!"))
	got, err := in.Transform("hi", ctx)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got != "hi!" {
		t.Errorf("Transform = %q", got)
	}
}

func roundTripVarRef(t *testing.T) token.Instruction {
	t.Helper()
	bound := makeBoundAte(t)
	out := roundTrip(t, bound)
	if _, ok := out.(*token.Bound); !ok {
		t.Fatalf("decoded to %T, want *token.Bound", out)
	}
	return out
}

func makeBoundAte(t *testing.T) token.Instruction {
	t.Helper()
	sig := token.Signature{token.P(token.KindText)}
	return token.NewBound(&transforms.Ate{}, sig, []token.ParamValue{token.VarRef("suffix")})
}

func TestVarRefInInstructionSlot(t *testing.T) {
	// Hand-build a blk record whose nested-instruction param is a varref.
	body := binary.BigEndian.AppendUint32(nil, 0x34)
	body = append(body, 2)
	for _, p := range [][]byte{[]byte("name"), []byte("ref")} {
		ptype := uint32(token.KindText)
		if string(p) == "ref" {
			ptype = uint32(token.KindVarRef)
		}
		body = binary.BigEndian.AppendUint64(body, uint64(8+len(p)))
		body = binary.BigEndian.AppendUint32(body, ptype)
		body = binary.BigEndian.AppendUint32(body, uint32(len(p)))
		body = append(body, p...)
	}
	record := binary.BigEndian.AppendUint64(nil, uint64(len(body)))
	record = append(record, body...)

	_, _, err := DecodeInstruction(record)
	if atperr.CodeOf(err) != atperr.CodeBytecodeParamParsing {
		t.Fatalf("error = %v, want BytecodeParamParsing", err)
	}
}

func TestDecodeUnknownOpcode(t *testing.T) {
	body := binary.BigEndian.AppendUint32(nil, 0xdead)
	body = append(body, 0)
	record := binary.BigEndian.AppendUint64(nil, uint64(len(body)))
	record = append(record, body...)

	_, _, err := DecodeInstruction(record)
	if atperr.CodeOf(err) != atperr.CodeTokenNotFound {
		t.Fatalf("error = %v, want TokenNotFound", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	data, err := EncodeInstruction(&transforms.Atb{Text: "hello"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, cut := range []int{3, 9, len(data) - 1} {
		_, _, err := DecodeInstruction(data[:cut])
		if err == nil {
			t.Errorf("decode of %d-byte prefix succeeded", cut)
		}
	}
}

func TestPipelineRoundTrip(t *testing.T) {
	tokens := []token.Instruction{
		&transforms.Tbs{},
		&transforms.Atb{Text: "x "},
		&transforms.Blk{Name: "b", Inner: &transforms.Tua{}},
		&transforms.Cblk{Name: "b"},
	}
	data, err := EncodePipeline(tokens)
	if err != nil {
		t.Fatalf("EncodePipeline: %v", err)
	}
	if !bytes.Equal(data[:8], Magic[:]) {
		t.Error("stream does not start with magic")
	}
	out, err := DecodePipeline(data)
	if err != nil {
		t.Fatalf("DecodePipeline: %v", err)
	}
	if len(out) != len(tokens) {
		t.Fatalf("decoded %d instructions, want %d", len(out), len(tokens))
	}
	for i := range tokens {
		if out[i].TextLine() != tokens[i].TextLine() {
			t.Errorf("instruction %d = %q, want %q", i, out[i].TextLine(), tokens[i].TextLine())
		}
	}
}

func TestPipelineBadMagic(t *testing.T) {
	data, err := EncodePipeline(nil)
	if err != nil {
		t.Fatalf("EncodePipeline: %v", err)
	}
	data[0] ^= 0xff
	if _, err := DecodePipeline(data); atperr.CodeOf(err) != atperr.CodeBytecodeParsing {
		t.Fatalf("error = %v, want BytecodeParsing", err)
	}
}

func TestPipelineVersionMismatch(t *testing.T) {
	data, err := EncodePipeline(nil)
	if err != nil {
		t.Fatalf("EncodePipeline: %v", err)
	}
	binary.BigEndian.PutUint64(data[8:], 99)
	if _, err := DecodePipeline(data); atperr.CodeOf(err) != atperr.CodeBytecodeParsing {
		t.Fatalf("error = %v, want BytecodeParsing", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipe.atpbc")
	tokens := []token.Instruction{&transforms.Rev{}, &transforms.Ate{Text: "."}}
	if err := WriteFile(path, tokens); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(out) != 2 || out[0].Mnemonic() != "rev" || out[1].Mnemonic() != "ate" {
		t.Errorf("read back %d instructions", len(out))
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.atpbc"))
	if atperr.CodeOf(err) != atperr.CodeFileNotFound {
		t.Fatalf("error = %v, want FileNotFound", err)
	}
}
