// Package blockheader implements the fixed 80-byte little endian block
// header layout hashed during mining. The byte layout is stable for
// cross-implementation verification.
package blockheader

import (
	"encoding/binary"
	"errors"

	"git.gammaspectra.live/P2Pool/blockhash/types"
)

// Size Total serialized size in bytes.
const Size = 4 + types.HashSize + types.HashSize + 4 + 4 + 4

// ErrHeaderSize a buffer of the wrong length was handed to UnmarshalBinary.
var ErrHeaderSize = errors.New("wrong block header size")

// Header field order and widths match the wire layout:
// version:4 | prevHash:32 | merkleRoot:32 | timestamp:4 | bits:4 | nonce:4,
// integer fields little endian.
type Header struct {
	Version    int32      `json:"version"`
	PrevHash   types.Hash `json:"prev_hash"`
	MerkleRoot types.Hash `json:"merkle_root"`
	Timestamp  uint32     `json:"timestamp"`
	Bits       uint32     `json:"bits"`
	Nonce      uint32     `json:"nonce"`
}

func (h *Header) BufferLength() int {
	return Size
}

func (h *Header) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, Size))
}

func (h *Header) AppendBinary(preAllocatedBuf []byte) ([]byte, error) {
	buf := preAllocatedBuf
	buf = binary.LittleEndian.AppendUint32(buf, uint32(h.Version))
	buf = append(buf, h.PrevHash[:]...)
	buf = append(buf, h.MerkleRoot[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, h.Timestamp)
	buf = binary.LittleEndian.AppendUint32(buf, h.Bits)
	buf = binary.LittleEndian.AppendUint32(buf, h.Nonce)
	return buf, nil
}

func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) != Size {
		return ErrHeaderSize
	}

	h.Version = int32(binary.LittleEndian.Uint32(data))
	copy(h.PrevHash[:], data[4:])
	copy(h.MerkleRoot[:], data[4+types.HashSize:])
	h.Timestamp = binary.LittleEndian.Uint32(data[4+types.HashSize*2:])
	h.Bits = binary.LittleEndian.Uint32(data[8+types.HashSize*2:])
	h.Nonce = binary.LittleEndian.Uint32(data[12+types.HashSize*2:])
	return nil
}

// WithNonce returns the serialized header with the nonce field replaced,
// without touching h.
func (h *Header) WithNonce(nonce uint32) []byte {
	buf, _ := h.MarshalBinary()
	binary.LittleEndian.PutUint32(buf[Size-4:], nonce)
	return buf
}
