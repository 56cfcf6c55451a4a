// Package registry holds the closed table of instruction kinds. It is the
// single place where mnemonics, opcodes, text-form signatures and prototype
// values meet; the text parser and the bytecode decoder both select kinds
// through it.
package registry

import (
	"sort"
	"sync"

	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/token"
	"github.com/atplang/atp/pkg/transforms"
)

// Entry describes one instruction kind.
type Entry struct {
	Mnemonic string
	Opcode   uint32
	Sig      token.Signature

	proto token.Instruction
}

// New returns a fresh, unconfigured instance of the kind. The caller feeds
// it parameters through FromParams.
func (e *Entry) New() token.Instruction {
	return e.proto.Clone()
}

var (
	once       sync.Once
	byMnemonic map[string]*Entry
	byOpcode   map[uint32]*Entry
	ordered    []*Entry
)

func text() token.Signature  { return token.Signature{token.P(token.KindText)} }
func index() token.Signature { return token.Signature{token.P(token.KindUint)} }
func chunk() token.Signature {
	return token.Signature{token.P(token.KindUint), token.P(token.KindUint)}
}
func pattern2() token.Signature {
	return token.Signature{token.P(token.KindText), token.P(token.KindText)}
}

func entries() []*Entry {
	return []*Entry{
		{Mnemonic: "atb", Opcode: 0x01, Sig: text(), proto: &transforms.Atb{}},
		{Mnemonic: "ate", Opcode: 0x02, Sig: text(), proto: &transforms.Ate{}},
		{Mnemonic: "dlf", Opcode: 0x03, proto: &transforms.Dlf{}},
		{Mnemonic: "dll", Opcode: 0x04, proto: &transforms.Dll{}},
		{Mnemonic: "tbs", Opcode: 0x05, proto: &transforms.Tbs{}},
		{Mnemonic: "tls", Opcode: 0x06, proto: &transforms.Tls{}},
		{Mnemonic: "trs", Opcode: 0x07, proto: &transforms.Trs{}},
		{Mnemonic: "dlc", Opcode: 0x08, Sig: chunk(), proto: &transforms.Dlc{}},
		{Mnemonic: "dla", Opcode: 0x09, Sig: index(), proto: &transforms.Dla{}},
		{Mnemonic: "dlb", Opcode: 0x0a, Sig: index(), proto: &transforms.Dlb{}},
		{Mnemonic: "rfw", Opcode: 0x0b, Sig: pattern2(), proto: &transforms.Rfw{}},
		{Mnemonic: "raw", Opcode: 0x0c, Sig: pattern2(), proto: &transforms.Raw{}},
		{Mnemonic: "rpt", Opcode: 0x0d, Sig: index(), proto: &transforms.Rpt{}},
		{Mnemonic: "rtl", Opcode: 0x0e, Sig: index(), proto: &transforms.Rtl{}},
		{Mnemonic: "rtr", Opcode: 0x0f, Sig: index(), proto: &transforms.Rtr{}},
		{Mnemonic: "rcw", Opcode: 0x10, Sig: token.Signature{
			token.P(token.KindText), token.P(token.KindText), token.P(token.KindUint),
		}, proto: &transforms.Rcw{}},
		{Mnemonic: "slt", Opcode: 0x11, Sig: chunk(), proto: &transforms.Slt{}},
		{Mnemonic: "tua", Opcode: 0x12, proto: &transforms.Tua{}},
		{Mnemonic: "tla", Opcode: 0x13, proto: &transforms.Tla{}},
		{Mnemonic: "tucs", Opcode: 0x14, Sig: index(), proto: &transforms.Tucs{}},
		{Mnemonic: "tlcs", Opcode: 0x15, Sig: index(), proto: &transforms.Tlcs{}},
		{Mnemonic: "tucc", Opcode: 0x16, Sig: chunk(), proto: &transforms.Tucc{}},
		{Mnemonic: "tlcc", Opcode: 0x17, Sig: chunk(), proto: &transforms.Tlcc{}},
		{Mnemonic: "cfw", Opcode: 0x18, proto: &transforms.Cfw{}},
		{Mnemonic: "clw", Opcode: 0x19, proto: &transforms.Clw{}},
		{Mnemonic: "sslt", Opcode: 0x1a, Sig: token.Signature{
			token.P(token.KindText), token.P(token.KindUint),
		}, proto: &transforms.Sslt{}},
		{Mnemonic: "ctc", Opcode: 0x1b, Sig: chunk(), proto: &transforms.Ctc{}},
		{Mnemonic: "ctr", Opcode: 0x1c, Sig: chunk(), proto: &transforms.Ctr{}},
		{Mnemonic: "cts", Opcode: 0x1d, Sig: index(), proto: &transforms.Cts{}},
		{Mnemonic: "rlw", Opcode: 0x1e, Sig: pattern2(), proto: &transforms.Rlw{}},
		{Mnemonic: "rnw", Opcode: 0x1f, Sig: token.Signature{
			token.P(token.KindText), token.P(token.KindText), token.P(token.KindUint),
		}, proto: &transforms.Rnw{}},
		{Mnemonic: "urle", Opcode: 0x20, proto: &transforms.Urle{}},
		{Mnemonic: "urld", Opcode: 0x21, proto: &transforms.Urld{}},
		{Mnemonic: "rev", Opcode: 0x22, proto: &transforms.Rev{}},
		{Mnemonic: "splc", Opcode: 0x23, proto: &transforms.Splc{}},
		{Mnemonic: "htmle", Opcode: 0x24, proto: &transforms.Htmle{}},
		{Mnemonic: "htmlu", Opcode: 0x25, proto: &transforms.Htmlu{}},
		{Mnemonic: "jsone", Opcode: 0x26, proto: &transforms.Jsone{}},
		{Mnemonic: "jsonu", Opcode: 0x27, proto: &transforms.Jsonu{}},
		{Mnemonic: "ins", Opcode: 0x28, Sig: token.Signature{
			token.P(token.KindUint), token.P(token.KindText),
		}, proto: &transforms.Ins{}},
		{Mnemonic: "tlcw", Opcode: 0x29, Sig: index(), proto: &transforms.Tlcw{}},
		{Mnemonic: "tucw", Opcode: 0x2a, Sig: index(), proto: &transforms.Tucw{}},
		{Mnemonic: "jkbc", Opcode: 0x2b, proto: &transforms.Jkbc{}},
		{Mnemonic: "jsnc", Opcode: 0x2c, proto: &transforms.Jsnc{}},
		{Mnemonic: "jcmc", Opcode: 0x2d, proto: &transforms.Jcmc{}},
		{Mnemonic: "jpsc", Opcode: 0x2e, proto: &transforms.Jpsc{}},
		{Mnemonic: "padl", Opcode: 0x2f, Sig: token.Signature{
			token.P(token.KindText), token.P(token.KindUint),
		}, proto: &transforms.Padl{}},
		{Mnemonic: "padr", Opcode: 0x30, Sig: token.Signature{
			token.P(token.KindText), token.P(token.KindUint),
		}, proto: &transforms.Padr{}},
		{Mnemonic: "rmws", Opcode: 0x31, proto: &transforms.Rmws{}},
		{Mnemonic: "dls", Opcode: 0x32, Sig: index(), proto: &transforms.Dls{}},
		{Mnemonic: "ifdc", Opcode: 0x33, Sig: token.Signature{
			token.P(token.KindText), token.Lit("do"), token.P(token.KindInstruction),
		}, proto: &transforms.Ifdc{}},
		{Mnemonic: "blk", Opcode: 0x34, Sig: token.Signature{
			token.P(token.KindText), token.Lit("assoc"), token.P(token.KindInstruction),
		}, proto: &transforms.Blk{}},
		{Mnemonic: "cblk", Opcode: 0x35, Sig: text(), proto: &transforms.Cblk{}},
		{Mnemonic: "val", Opcode: 0x36, Sig: pattern2(), proto: &transforms.Val{}},
		{Mnemonic: "vali", Opcode: 0x37, Sig: token.Signature{
			token.P(token.KindText), token.P(token.KindUint),
		}, proto: &transforms.Vali{}},
	}
}

func build() {
	all := entries()
	byMnemonic = make(map[string]*Entry, len(all))
	byOpcode = make(map[uint32]*Entry, len(all))
	for _, e := range all {
		byMnemonic[e.Mnemonic] = e
		byOpcode[e.Opcode] = e
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Opcode < all[j].Opcode })
	ordered = all
}

// ByMnemonic looks up an instruction kind by its text-form mnemonic. Fails
// with TokenNotFound for unknown mnemonics.
func ByMnemonic(mnemonic string) (*Entry, error) {
	once.Do(build)
	e, ok := byMnemonic[mnemonic]
	if !ok {
		return nil, atperr.Newf(atperr.CodeTokenNotFound, "registry.ByMnemonic",
			"unknown mnemonic %q", mnemonic)
	}
	return e, nil
}

// ByOpcode looks up an instruction kind by its bytecode opcode. Fails with
// TokenNotFound for unknown opcodes.
func ByOpcode(opcode uint32) (*Entry, error) {
	once.Do(build)
	e, ok := byOpcode[opcode]
	if !ok {
		return nil, atperr.Newf(atperr.CodeTokenNotFound, "registry.ByOpcode",
			"unknown opcode 0x%02x", opcode)
	}
	return e, nil
}

// All returns every entry in opcode order.
func All() []*Entry {
	once.Do(build)
	return ordered
}
