// Package protocol implements the chunk-on-the-wire packet from spec §6:
// the only piece of the original engine's network protocol this module
// specifies. Everything else about transport — connection setup, entity
// packets, chat — is an explicit Non-goal; only the shape used to ship a
// chunk is pinned down here, grounded on Leterax's pkg/network/client.go
// io.ReadFull/binary.Read style.
package protocol

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/voxelstack/blocks/internal/chunk"
	"github.com/voxelstack/blocks/internal/coord"
)

// rlePairSize is the wire size of one chunk.RLEPair: a u8 id followed by
// a u16 count, three bytes tight. This resolves SPEC_FULL's open
// question on RLEPair layout: little-endian, no platform padding.
const rlePairSize = 1 + 2

// headerSize is the fixed portion of a ChunkData packet: x, y, z, and
// dataSize as little-endian i32, followed by highestPoint as a single
// signed byte. Like rlePairSize, this is packed tight with no padding.
const headerSize = 4 + 4 + 4 + 4 + 1

// ChunkPacket is the in-memory form of spec §6's ChunkData message.
type ChunkPacket struct {
	X, Y, Z      int32
	HighestPoint int8
	Pairs        []chunk.RLEPair
}

// MalformedPacketError reports the spec §7 MalformedChunkPacket kind: a
// packet whose payload length doesn't match dataSize*sizeof(RLEPair).
type MalformedPacketError struct {
	DataSize   int32
	PayloadLen int
}

func (e *MalformedPacketError) Error() string {
	return fmt.Sprintf("protocol: chunk packet payload is %d bytes, want %d for dataSize=%d",
		e.PayloadLen, int(e.DataSize)*rlePairSize, e.DataSize)
}

// Encode serialises a ChunkPacket to its wire form.
func Encode(p ChunkPacket) []byte {
	buf := make([]byte, headerSize+len(p.Pairs)*rlePairSize)
	writeHeader(buf, p.X, p.Y, p.Z, int32(len(p.Pairs)), p.HighestPoint)

	off := headerSize
	for _, pair := range p.Pairs {
		buf[off] = pair.ID
		binary.LittleEndian.PutUint16(buf[off+1:], pair.Count)
		off += rlePairSize
	}
	return buf
}

func writeHeader(buf []byte, x, y, z, dataSize int32, highestPoint int8) {
	binary.LittleEndian.PutUint32(buf[0:], uint32(x))
	binary.LittleEndian.PutUint32(buf[4:], uint32(y))
	binary.LittleEndian.PutUint32(buf[8:], uint32(z))
	binary.LittleEndian.PutUint32(buf[12:], uint32(dataSize))
	buf[16] = byte(highestPoint)
}

// EncodeChunk builds the wire packet a server sends to deposit c at pos,
// compressing its voxels in storage order.
func EncodeChunk(pos coord.ChunkPos, c *chunk.Chunk) []byte {
	pairs := chunk.Compress(c.Voxels)
	return Encode(ChunkPacket{X: pos.X, Y: pos.Y, Z: pos.Z, HighestPoint: c.HighestPoint, Pairs: pairs})
}

// Decode parses a complete wire-form chunk packet already read into
// memory. It refuses packets whose payload bytes after the header do not
// equal dataSize*sizeof(RLEPair) rather than guessing at intent.
func Decode(data []byte) (ChunkPacket, error) {
	if len(data) < headerSize {
		return ChunkPacket{}, fmt.Errorf("protocol: chunk packet shorter than header (%d bytes)", len(data))
	}

	var p ChunkPacket
	p.X = int32(binary.LittleEndian.Uint32(data[0:]))
	p.Y = int32(binary.LittleEndian.Uint32(data[4:]))
	p.Z = int32(binary.LittleEndian.Uint32(data[8:]))
	dataSize := int32(binary.LittleEndian.Uint32(data[12:]))
	p.HighestPoint = int8(data[16])

	payload := data[headerSize:]
	if want := int(dataSize) * rlePairSize; len(payload) != want {
		return ChunkPacket{}, &MalformedPacketError{DataSize: dataSize, PayloadLen: len(payload)}
	}

	pairs := make([]chunk.RLEPair, dataSize)
	for i := range pairs {
		off := i * rlePairSize
		pairs[i] = chunk.RLEPair{ID: payload[off], Count: binary.LittleEndian.Uint16(payload[off+1:])}
	}
	p.Pairs = pairs
	return p, nil
}

// DecodeFrom reads one chunk packet off a stream: the fixed header first,
// then exactly dataSize RLE pairs, matching the read-the-header-then-the-
// body shape Leterax's ProcessPackets uses for every other packet kind in
// the original protocol.
func DecodeFrom(r io.Reader) (ChunkPacket, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return ChunkPacket{}, fmt.Errorf("protocol: read chunk header: %w", err)
	}
	dataSize := int32(binary.LittleEndian.Uint32(header[12:]))

	payload := make([]byte, int(dataSize)*rlePairSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return ChunkPacket{}, fmt.Errorf("protocol: read chunk payload: %w", err)
	}

	return Decode(append(header, payload...))
}

// Apply deposits a decoded packet into grid: inserted only if the chunk
// is not already present, contents decompressed in place, highestPoint
// set from the header. A chunk already present is left untouched, per
// spec §6 — the source's assumption is that the server only re-sends a
// chunk the client hasn't already got.
func Apply(p ChunkPacket, grid *chunk.Grid) error {
	pos := coord.ChunkPos{X: p.X, Y: p.Y, Z: p.Z}
	if grid.IsPresent(pos) {
		return nil
	}

	voxels, err := chunk.Decompress(p.Pairs)
	if err != nil {
		return err
	}
	grid.ReplaceChunk(pos, voxels, p.HighestPoint)
	return nil
}
