package bytecode

import (
	"encoding/binary"
	"os"

	"github.com/atplang/atp/pkg/atperr"
	"github.com/atplang/atp/pkg/token"
)

// Magic identifies an .atpbc file.
var Magic = [8]byte{38, 235, 245, 8, 244, 137, 1, 179}

// ProtocolVersion is the only wire version this build reads or writes.
const ProtocolVersion uint64 = 1

// EncodePipeline frames a full instruction list as an .atpbc byte stream:
// magic, protocol version, instruction count, then concatenated records.
func EncodePipeline(tokens []token.Instruction) ([]byte, error) {
	out := make([]byte, 0, 64)
	out = append(out, Magic[:]...)
	out = binary.BigEndian.AppendUint64(out, ProtocolVersion)
	out = binary.BigEndian.AppendUint32(out, uint32(len(tokens)))
	for _, in := range tokens {
		record, err := EncodeInstruction(in)
		if err != nil {
			return nil, err
		}
		out = append(out, record...)
	}
	return out, nil
}

// DecodePipeline parses an .atpbc byte stream back into its instruction
// list.
func DecodePipeline(data []byte) ([]token.Instruction, error) {
	if len(data) < len(Magic)+12 {
		return nil, atperr.Newf(atperr.CodeBytecodeParsing, "decode",
			"stream too short: %d bytes", len(data))
	}
	for i, b := range Magic {
		if data[i] != b {
			return nil, atperr.New(atperr.CodeBytecodeParsing, "decode",
				"bad magic bytes")
		}
	}
	pos := len(Magic)
	version := binary.BigEndian.Uint64(data[pos:])
	pos += 8
	if version != ProtocolVersion {
		return nil, atperr.Newf(atperr.CodeBytecodeParsing, "decode",
			"protocol version %d, this build supports %d", version, ProtocolVersion)
	}
	count := binary.BigEndian.Uint32(data[pos:])
	pos += 4

	tokens := make([]token.Instruction, 0, count)
	for i := uint32(0); i < count; i++ {
		in, n, err := DecodeInstruction(data[pos:])
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, in)
		pos += n
	}
	if pos != len(data) {
		return nil, atperr.Newf(atperr.CodeBytecodeParsing, "decode",
			"stream has %d trailing bytes after %d instructions", len(data)-pos, count)
	}
	return tokens, nil
}

// WriteFile saves a pipeline to an .atpbc file.
func WriteFile(path string, tokens []token.Instruction) error {
	data, err := EncodePipeline(tokens)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return atperr.Newf(atperr.CodeFileWritingError, "bytecode.WriteFile", "%s: %v", path, err)
	}
	return nil
}

// ReadFile loads a pipeline from an .atpbc file.
func ReadFile(path string) ([]token.Instruction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, atperr.Newf(atperr.CodeFileNotFound, "bytecode.ReadFile", "%s", path)
		}
		return nil, atperr.Newf(atperr.CodeFileReadingError, "bytecode.ReadFile", "%s: %v", path, err)
	}
	return DecodePipeline(data)
}
