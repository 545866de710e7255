// Package abi decodes typed eth_call return payloads. Only the two return
// shapes the pipeline needs are supported: a fixed-width uint32 and a
// dynamically-sized string.
package abi

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

const wordSize = 32

// ReadUint32 decodes a uint32 return payload: the low-order four bytes of
// the first 32-byte word, big-endian.
func ReadUint32(raw []byte) (uint32, error) {
	if len(raw) < wordSize {
		return 0, fmt.Errorf("uint32 return data too short: %d bytes", len(raw))
	}
	return binary.BigEndian.Uint32(raw[wordSize-4 : wordSize]), nil
}

// ReadString decodes a string return payload: a leading word holding the
// byte offset of the data section, a word at that offset holding the
// string's byte length, then the bytes themselves padded out to a word
// boundary. Padding is ignored. Fails if the offset or length point
// outside the payload or the bytes are not valid UTF-8.
func ReadString(raw []byte) (string, error) {
	if len(raw) < wordSize {
		return "", fmt.Errorf("string return data too short: %d bytes", len(raw))
	}
	offset, err := wordToUint64(raw[:wordSize])
	if err != nil {
		return "", fmt.Errorf("invalid string offset: %v", err)
	}
	if offset > uint64(len(raw))-wordSize {
		return "", fmt.Errorf("string offset %d out of range for %d byte payload", offset, len(raw))
	}
	length, err := wordToUint64(raw[offset : offset+wordSize])
	if err != nil {
		return "", fmt.Errorf("invalid string length: %v", err)
	}
	if length > uint64(len(raw))-offset-wordSize {
		return "", fmt.Errorf("string length %d out of range for %d byte payload", length, len(raw))
	}
	data := raw[offset+wordSize : offset+wordSize+length]
	if !utf8.Valid(data) {
		return "", fmt.Errorf("string return data is not valid UTF-8")
	}
	return string(data), nil
}

// wordToUint64 narrows a 32-byte word to uint64, rejecting values with
// any of the high 24 bytes set.
func wordToUint64(word []byte) (uint64, error) {
	for _, b := range word[:wordSize-8] {
		if b != 0 {
			return 0, fmt.Errorf("value exceeds uint64 range")
		}
	}
	return binary.BigEndian.Uint64(word[wordSize-8:]), nil
}
