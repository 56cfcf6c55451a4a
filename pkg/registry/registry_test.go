package registry

import (
	"testing"

	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/token"
)

func TestMnemonicOpcodeBijection(t *testing.T) {
	seenMnemonic := make(map[string]bool)
	seenOpcode := make(map[uint32]bool)
	for _, e := range All() {
		if seenMnemonic[e.Mnemonic] {
			t.Errorf("duplicate mnemonic %q", e.Mnemonic)
		}
		if seenOpcode[e.Opcode] {
			t.Errorf("duplicate opcode 0x%02x", e.Opcode)
		}
		seenMnemonic[e.Mnemonic] = true
		seenOpcode[e.Opcode] = true
	}
}

func TestEntryMatchesKind(t *testing.T) {
	for _, e := range All() {
		in := e.New()
		if in.Mnemonic() != e.Mnemonic {
			t.Errorf("entry %q: kind reports mnemonic %q", e.Mnemonic, in.Mnemonic())
		}
		if in.Opcode() != e.Opcode {
			t.Errorf("entry %q: kind reports opcode 0x%02x, want 0x%02x",
				e.Mnemonic, in.Opcode(), e.Opcode)
		}
	}
}

func TestLookups(t *testing.T) {
	e, err := ByMnemonic("tua")
	if err != nil {
		t.Fatalf("ByMnemonic: %v", err)
	}
	if e.Opcode != 0x12 {
		t.Errorf("tua opcode = 0x%02x", e.Opcode)
	}
	e2, err := ByOpcode(0x12)
	if err != nil {
		t.Fatalf("ByOpcode: %v", err)
	}
	if e2 != e {
		t.Error("ByOpcode and ByMnemonic disagree")
	}
}

func TestUnknownLookups(t *testing.T) {
	if _, err := ByMnemonic("nope"); atperr.CodeOf(err) != atperr.CodeTokenNotFound {
		t.Errorf("unknown mnemonic error = %v", err)
	}
	if _, err := ByOpcode(0xffff); atperr.CodeOf(err) != atperr.CodeTokenNotFound {
		t.Errorf("unknown opcode error = %v", err)
	}
}

func TestNewIsIndependent(t *testing.T) {
	e, err := ByMnemonic("atb")
	if err != nil {
		t.Fatalf("ByMnemonic: %v", err)
	}
	a := e.New()
	if err := a.FromParams([]token.ParamValue{token.Text("x")}); err != nil {
		t.Fatalf("FromParams: %v", err)
	}
	b := e.New()
	if len(b.Params()) != 1 || b.Params()[0].Text() != "" {
		t.Error("configuring one instance leaked into the prototype")
	}
}
