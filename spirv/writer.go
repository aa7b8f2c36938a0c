package spirv

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// maxWordCount is the largest word count an instruction can encode.
const maxWordCount = 0xFFFF

// Instruction represents a SPIR-V instruction.
type Instruction struct {
	Opcode   OpCode
	ResultID ID
	TypeID   ID
	Operands []uint32
}

// NewInstruction creates an instruction with the given result and type ids.
func NewInstruction(resultID, typeID ID, opcode OpCode) *Instruction {
	return &Instruction{
		Opcode:   opcode,
		ResultID: resultID,
		TypeID:   typeID,
		Operands: make([]uint32, 0, 4),
	}
}

// AddIDOperand appends an id operand.
func (i *Instruction) AddIDOperand(id ID) {
	i.Operands = append(i.Operands, id)
}

// AddIDOperands appends several id operands.
func (i *Instruction) AddIDOperands(ids []ID) {
	i.Operands = append(i.Operands, ids...)
}

// AddImmediateOperand appends a literal word.
func (i *Instruction) AddImmediateOperand(word uint32) {
	i.Operands = append(i.Operands, word)
}

// AddImmediateOperands appends several literal words.
func (i *Instruction) AddImmediateOperands(words []uint32) {
	i.Operands = append(i.Operands, words...)
}

// AddStringOperand appends a null-terminated UTF-8 literal string.
func (i *Instruction) AddStringOperand(s string) {
	i.Operands = append(i.Operands, StringWords(s)...)
}

// Operand returns operand n, counting immediates and ids alike.
func (i *Instruction) Operand(n int) uint32 {
	return i.Operands[n]
}

// NumOperands returns the operand count.
func (i *Instruction) NumOperands() int {
	return len(i.Operands)
}

// WordCount returns the encoded size, including the opcode word.
func (i *Instruction) WordCount() int {
	count := 1 + len(i.Operands)
	if i.TypeID != NoType {
		count++
	}
	if i.ResultID != NoResult {
		count++
	}
	return count
}

// AppendTo encodes the instruction onto out.
func (i *Instruction) AppendTo(out []uint32) []uint32 {
	wordCount := i.WordCount()
	if wordCount > maxWordCount {
		panic(fmt.Sprintf("spirv: instruction %d has %d words", i.Opcode, wordCount))
	}
	out = append(out, uint32(wordCount)<<16|uint32(i.Opcode))
	if i.TypeID != NoType {
		out = append(out, i.TypeID)
	}
	if i.ResultID != NoResult {
		out = append(out, i.ResultID)
	}
	return append(out, i.Operands...)
}

// Encode encodes the instruction to words.
func (i *Instruction) Encode() []uint32 {
	return i.AppendTo(make([]uint32, 0, i.WordCount()))
}

// StringWords encodes s as a SPIR-V literal string: NFC normalized,
// null terminated and padded to a word boundary, little-endian within
// each word.
func StringWords(s string) []uint32 {
	return rawStringWords(norm.NFC.String(s))
}

func rawStringWords(s string) []uint32 {
	bytes := append([]byte(s), 0)

	// Pad to word boundary
	for len(bytes)%4 != 0 {
		bytes = append(bytes, 0)
	}

	words := make([]uint32, 0, len(bytes)/4)
	for i := 0; i < len(bytes); i += 4 {
		words = append(words, binary.LittleEndian.Uint32(bytes[i:]))
	}
	return words
}

// DecodeString reads a literal string starting at words[0]. It returns the
// string and the number of words consumed.
func DecodeString(words []uint32) (string, int) {
	var buf []byte
	for n, word := range words {
		for shift := 0; shift < 32; shift += 8 {
			c := byte(word >> shift)
			if c == 0 {
				return string(buf), n + 1
			}
			buf = append(buf, c)
		}
	}
	return string(buf), len(words)
}

// WordsToBytes converts a word stream to little-endian bytes.
func WordsToBytes(words []uint32) []byte {
	buffer := make([]byte, len(words)*4)
	for i, word := range words {
		binary.LittleEndian.PutUint32(buffer[i*4:], word)
	}
	return buffer
}

// BytesToWords converts little-endian bytes to a word stream.
func BytesToWords(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("spirv: binary length %d is not a multiple of 4", len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return words, nil
}

// versionToWord converts Version to SPIR-V word format.
func versionToWord(v Version) uint32 {
	return (uint32(v.Major) << 16) | (uint32(v.Minor) << 8)
}

// wordToVersion converts a header version word to Version.
func wordToVersion(word uint32) Version {
	return Version{Major: uint8(word >> 16), Minor: uint8(word >> 8)}
}
