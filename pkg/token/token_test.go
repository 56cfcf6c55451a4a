package token

import (
	"strings"
	"testing"

	"github.com/atplang/atp/pkg/atperr"
)

// echoInstr is a minimal Instruction for exercising Bound without importing
// the transforms package.
type echoInstr struct {
	text string
	n    uint64
}

func (e *echoInstr) Mnemonic() string { return "echo" }
func (e *echoInstr) Opcode() uint32   { return 0xff }
func (e *echoInstr) Params() []ParamValue {
	return []ParamValue{Text(e.text), Uint(e.n)}
}
func (e *echoInstr) TextLine() string { return FormatLine("echo", e.Params()) }
func (e *echoInstr) Clone() Instruction {
	c := *e
	return &c
}

func (e *echoInstr) FromParams(params []ParamValue) error {
	if err := CheckArity("echo", params, 2); err != nil {
		return err
	}
	text, err := TextArg("echo", params, 0)
	if err != nil {
		return err
	}
	n, err := UintArg("echo", params, 1)
	if err != nil {
		return err
	}
	e.text, e.n = text, n
	return nil
}

func (e *echoInstr) Transform(input string, _ *ExecutionContext) (string, error) {
	return e.text + strings.Repeat(input, int(e.n)), nil
}

func echoSig() Signature {
	return Signature{P(KindText), P(KindUint)}
}

func TestQuoteWord(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain", "plain"},
		{"", "''"},
		{"two words", "'two words'"},
		{"it's", `'it'\''s'`},
	}
	for _, tc := range cases {
		if got := QuoteWord(tc.in); got != tc.want {
			t.Errorf("QuoteWord(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatAndTrimLine(t *testing.T) {
	line := FormatLine("echo", []ParamValue{Text("a b"), Uint(2)})
	if line != "echo 'a b' 2;\n" {
		t.Errorf("FormatLine = %q", line)
	}
	if got := TrimLine(line); got != "echo 'a b' 2" {
		t.Errorf("TrimLine = %q", got)
	}
}

func TestContextBlocksAccumulate(t *testing.T) {
	ctx := NewExecutionContext()
	ctx.DefineBlock("b", &echoInstr{text: "x", n: 1})
	ctx.DefineBlock("b", &echoInstr{text: "y", n: 1})
	tokens, err := ctx.Block("b")
	if err != nil {
		t.Fatalf("Block: %v", err)
	}
	if len(tokens) != 2 {
		t.Errorf("block has %d entries", len(tokens))
	}
	if _, err := ctx.Block("missing"); atperr.CodeOf(err) != atperr.CodeBlockNotFound {
		t.Errorf("missing block error = %v", err)
	}
}

func TestContextVars(t *testing.T) {
	ctx := NewExecutionContext()
	ctx.SetVar("n", Uint(7))
	v, err := ctx.Var("n")
	if err != nil || v.Uint() != 7 {
		t.Fatalf("Var = %v, %v", v, err)
	}
	ctx.SetVar("n", Uint(8))
	v, _ = ctx.Var("n")
	if v.Uint() != 8 {
		t.Errorf("redefined var = %d", v.Uint())
	}
	if _, err := ctx.Var("missing"); atperr.CodeOf(err) != atperr.CodeVariableNotFound {
		t.Errorf("missing var error = %v", err)
	}
}

func TestBoundResolves(t *testing.T) {
	bound := NewBound(&echoInstr{}, echoSig(), []ParamValue{VarRef("t"), Uint(2)})
	ctx := NewExecutionContext()
	ctx.SetVar("t", Text("go"))
	got, err := bound.Transform("x", ctx)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got != "goxx" {
		t.Errorf("Transform = %q", got)
	}
}

func TestBoundUndefinedVariable(t *testing.T) {
	bound := NewBound(&echoInstr{}, echoSig(), []ParamValue{VarRef("t"), Uint(1)})
	_, err := bound.Transform("x", NewExecutionContext())
	if atperr.CodeOf(err) != atperr.CodeVariableNotFound {
		t.Fatalf("error = %v, want VariableNotFound", err)
	}
}

func TestBoundTypeMismatch(t *testing.T) {
	bound := NewBound(&echoInstr{}, echoSig(), []ParamValue{Text("a"), VarRef("n")})
	ctx := NewExecutionContext()
	ctx.SetVar("n", Text("not a number"))
	_, err := bound.Transform("x", ctx)
	if atperr.CodeOf(err) != atperr.CodeIncompatibleType {
		t.Fatalf("error = %v, want IncompatibleType", err)
	}
}

func TestBoundTextLine(t *testing.T) {
	bound := NewBound(&echoInstr{}, echoSig(), []ParamValue{VarRef("t"), Uint(2)})
	if got := bound.TextLine(); got != "echo {{t}} 2;\n" {
		t.Errorf("TextLine = %q", got)
	}
}

func TestBoundResolutionDoesNotMutate(t *testing.T) {
	bound := NewBound(&echoInstr{}, echoSig(), []ParamValue{VarRef("t"), Uint(1)})
	ctx := NewExecutionContext()
	ctx.SetVar("t", Text("a"))
	if _, err := bound.Transform("x", ctx); err != nil {
		t.Fatalf("Transform: %v", err)
	}
	// Re-resolving against a different value must see the new value, not a
	// leftover from the first run.
	ctx.SetVar("t", Text("b"))
	got, err := bound.Transform("x", ctx)
	if err != nil {
		t.Fatalf("second Transform: %v", err)
	}
	if got != "bx" {
		t.Errorf("second Transform = %q", got)
	}
}

func TestCloneParamsDeep(t *testing.T) {
	inner := &echoInstr{text: "a", n: 1}
	params := []ParamValue{Instr(inner)}
	cloned := CloneParams(params)
	inner.text = "changed"
	got := cloned[0].Instruction().(*echoInstr)
	if got.text != "a" {
		t.Errorf("clone shares state: %q", got.text)
	}
}
