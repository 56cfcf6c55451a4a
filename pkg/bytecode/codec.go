// Package bytecode implements the binary wire format for ATP instructions:
// single-record encoding and decoding, plus the framed .atpbc file layout.
//
// Record layout, big-endian throughout:
//
//	record := total_size:u64  opcode:u32  param_count:u8  param*
//	param  := param_size:u64  param_type:u32  payload_size:u32  payload
//
// total_size covers everything after its own 8 bytes. param_size covers the
// type tag, the payload size and the payload. A nested-instruction payload
// (type 3) is a complete record including its own total_size prefix, so the
// same decoder handles every nesting level.
package bytecode

import (
	"encoding/binary"

	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/registry"
	"github.com/atplang/atp/pkg/token"
)

const (
	recordHeaderSize = 8 + 4 + 1
	paramHeaderSize  = 8 + 4 + 4
)

// EncodeInstruction renders one instruction as a self-framing record.
func EncodeInstruction(in token.Instruction) ([]byte, error) {
	params := in.Params()
	body := make([]byte, 0, 64)
	body = binary.BigEndian.AppendUint32(body, in.Opcode())
	if len(params) > 0xff {
		return nil, atperr.Newf(atperr.CodeBytecodeParsing, in.Mnemonic(),
			"%d parameters do not fit the count byte", len(params))
	}
	body = append(body, byte(len(params)))

	for i, p := range params {
		var payload []byte
		var ptype uint32
		switch p.Kind() {
		case token.KindText:
			ptype = uint32(token.KindText)
			payload = []byte(p.Text())
		case token.KindUint:
			ptype = uint32(token.KindUint)
			payload = binary.BigEndian.AppendUint64(nil, p.Uint())
		case token.KindInstruction:
			nested, err := EncodeInstruction(p.Instruction())
			if err != nil {
				return nil, err
			}
			ptype = uint32(token.KindInstruction)
			payload = nested
		case token.KindVarRef:
			ptype = uint32(token.KindVarRef)
			payload = []byte(p.Text())
		default:
			return nil, atperr.Newf(atperr.CodeBytecodeParamParsing, in.Mnemonic(),
				"parameter %d has unsupported kind %d", i, p.Kind())
		}

		body = binary.BigEndian.AppendUint64(body, uint64(8+len(payload)))
		body = binary.BigEndian.AppendUint32(body, ptype)
		body = binary.BigEndian.AppendUint32(body, uint32(len(payload)))
		body = append(body, payload...)
	}

	out := binary.BigEndian.AppendUint64(nil, uint64(len(body)))
	return append(out, body...), nil
}

// DecodeInstruction decodes one record from the front of data and returns
// the instruction together with the number of bytes consumed. Records whose
// params contain variable references decode to a Bound wrapper.
func DecodeInstruction(data []byte) (token.Instruction, int, error) {
	if len(data) < 8 {
		return nil, 0, atperr.Newf(atperr.CodeBytecodeParsing, "decode",
			"record too short: need 8 bytes for total_size, got %d", len(data))
	}
	total := binary.BigEndian.Uint64(data)
	if total < recordHeaderSize-8 || uint64(len(data)-8) < total {
		return nil, 0, atperr.Newf(atperr.CodeBytecodeParsing, "decode",
			"record claims %d bytes, %d available", total, len(data)-8)
	}
	body := data[8 : 8+total]
	consumed := 8 + int(total)

	opcode := binary.BigEndian.Uint32(body)
	count := int(body[4])
	entry, err := registry.ByOpcode(opcode)
	if err != nil {
		return nil, 0, err
	}

	params := make([]token.ParamValue, 0, count)
	hasVarRef := false
	pos := 5
	for i := 0; i < count; i++ {
		if pos+paramHeaderSize > len(body) {
			return nil, 0, atperr.Newf(atperr.CodeBytecodeParamParsing, entry.Mnemonic,
				"unexpected end of record reading parameter %d header", i)
		}
		psize := binary.BigEndian.Uint64(body[pos:])
		ptype := binary.BigEndian.Uint32(body[pos+8:])
		plen := binary.BigEndian.Uint32(body[pos+12:])
		if psize != uint64(8+plen) {
			return nil, 0, atperr.Newf(atperr.CodeBytecodeParamParsing, entry.Mnemonic,
				"parameter %d size %d disagrees with payload size %d", i, psize, plen)
		}
		pos += paramHeaderSize
		if pos+int(plen) > len(body) {
			return nil, 0, atperr.Newf(atperr.CodeBytecodeParamParsing, entry.Mnemonic,
				"unexpected end of record reading parameter %d payload", i)
		}
		payload := body[pos : pos+int(plen)]
		pos += int(plen)

		switch token.Kind(ptype) {
		case token.KindText:
			params = append(params, token.Text(string(payload)))
		case token.KindUint:
			if plen != 8 {
				return nil, 0, atperr.Newf(atperr.CodeBytecodeParamParsing, entry.Mnemonic,
					"uint parameter %d has payload size %d, want 8", i, plen)
			}
			params = append(params, token.Uint(binary.BigEndian.Uint64(payload)))
		case token.KindInstruction:
			nested, n, err := DecodeInstruction(payload)
			if err != nil {
				return nil, 0, err
			}
			if n != len(payload) {
				return nil, 0, atperr.Newf(atperr.CodeBytecodeParamParsing, entry.Mnemonic,
					"nested record of parameter %d leaves %d trailing bytes", i, len(payload)-n)
			}
			params = append(params, token.Instr(nested))
		case token.KindVarRef:
			params = append(params, token.VarRef(string(payload)))
			hasVarRef = true
		default:
			return nil, 0, atperr.Newf(atperr.CodeBytecodeParamParsing, entry.Mnemonic,
				"parameter %d has unknown type %d", i, ptype)
		}
	}
	if pos != len(body) {
		return nil, 0, atperr.Newf(atperr.CodeBytecodeParsing, entry.Mnemonic,
			"record has %d trailing bytes", len(body)-pos)
	}

	if hasVarRef {
		// Variable references are only resolvable in slots that expect a
		// scalar; an instruction slot can never hold one.
		for i, p := range params {
			expected := entry.Sig.Effective()
			if p.Kind() == token.KindVarRef && i < len(expected) && expected[i] == token.KindInstruction {
				return nil, 0, atperr.Newf(atperr.CodeBytecodeParamParsing, entry.Mnemonic,
					"parameter %d is a variable reference in an instruction slot", i)
			}
		}
		bound := token.NewBound(entry.New(), entry.Sig, params)
		if err := bound.FromParams(params); err != nil {
			return nil, 0, err
		}
		return bound, consumed, nil
	}

	in := entry.New()
	if err := in.FromParams(params); err != nil {
		return nil, 0, err
	}
	return in, consumed, nil
}
