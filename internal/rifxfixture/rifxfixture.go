// Package rifxfixture builds synthetic RIFX byte layouts for tests across
// the decoder's packages. It exists purely to keep every _test.go file from
// hand-rolling the same imap/mmap byte arithmetic; nothing in the decoder
// itself imports it.
package rifxfixture

import "encoding/binary"

// Chunk prepends a big-endian tag+size header to body, giving a complete
// on-disk chunk.
func Chunk(tag string, body []byte) []byte {
	out := make([]byte, 8+len(body))
	copy(out[0:4], tag)
	binary.BigEndian.PutUint32(out[4:8], uint32(len(body)))
	copy(out[8:], body)
	return out
}

// ReverseTag reverses a 4-byte tag string, for building little-endian
// fixtures.
func ReverseTag(tag string) string {
	b := []byte(tag)
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	return string(b)
}

// MMapEntry builds one 20-byte mmap entry slot.
func MMapEntry(tag string, size uint32, position uint32) []byte {
	out := make([]byte, 20)
	copy(out[0:4], tag)
	binary.BigEndian.PutUint32(out[4:8], size)
	binary.BigEndian.PutUint32(out[8:12], position)
	return out
}

// IMapBody builds the 16-byte imap body.
func IMapBody(mmapPosition uint32, version uint16) []byte {
	out := make([]byte, 16)
	binary.BigEndian.PutUint32(out[0:4], 1)
	binary.BigEndian.PutUint32(out[4:8], mmapPosition)
	binary.BigEndian.PutUint32(out[8:12], uint32(version))
	binary.BigEndian.PutUint32(out[12:16], 0)
	return out
}

// MMapBody builds a full mmap body: fixed header plus the concatenated
// entries (each already built by MMapEntry).
func MMapBody(junk1, junk2, free int32, entries ...[]byte) []byte {
	out := make([]byte, 0, 24+20*len(entries))
	var head [24]byte
	binary.BigEndian.PutUint16(head[0:2], 0x18)
	binary.BigEndian.PutUint16(head[2:4], 0x14)
	binary.BigEndian.PutUint32(head[4:8], uint32(len(entries)))
	binary.BigEndian.PutUint32(head[8:12], uint32(len(entries)))
	binary.BigEndian.PutUint32(head[12:16], uint32(junk1))
	binary.BigEndian.PutUint32(head[16:20], uint32(junk2))
	binary.BigEndian.PutUint32(head[20:24], uint32(free))
	out = append(out, head[:]...)
	for _, e := range entries {
		out = append(out, e...)
	}
	return out
}

// DictBody builds a Dict/BadD body out of (key -> value) pairs, preserving
// iteration order for the pair table and laying out the value heap
// cursor-relative immediately after the pair table, matching ParseDict's
// expected layout: offset/size, an 8-byte gap, length/allocated_length, two
// fixed u16 fields, another 8-byte gap, the offset/key pair table, then the
// length-prefixed value heap.
func DictBody(pairs []DictPair) []byte {
	preValuesSize := 36 + len(pairs)*8 // everything before the value heap
	valuesChunkOffset := uint32(preValuesSize - 8)

	var values []byte
	offsets := make([]uint32, len(pairs))
	for i, p := range pairs {
		offsets[i] = uint32(len(values))
		values = append(values, lengthPrefixed(p.Value)...)
	}

	out := make([]byte, preValuesSize, preValuesSize+len(values))
	binary.BigEndian.PutUint32(out[0:4], valuesChunkOffset)
	binary.BigEndian.PutUint32(out[4:8], uint32(len(values)))
	// out[8:16] left zero (skipped by the parser)
	binary.BigEndian.PutUint32(out[16:20], uint32(len(pairs)))
	binary.BigEndian.PutUint32(out[20:24], uint32(len(pairs)))
	binary.BigEndian.PutUint16(out[24:26], 0x1c)
	binary.BigEndian.PutUint16(out[26:28], 0x08)
	// out[28:36] left zero (skipped by the parser)

	for i, p := range pairs {
		base := 36 + i*8
		binary.BigEndian.PutUint32(out[base:base+4], offsets[i])
		binary.BigEndian.PutUint32(out[base+4:base+8], p.Key)
	}

	out = append(out, values...)
	return out
}

type DictPair struct {
	Key   uint32
	Value string
}

func lengthPrefixed(s string) []byte {
	out := make([]byte, 4+len(s))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(s)))
	copy(out[4:], s)
	return out
}

// Archive lays out a complete self-contained big-endian RIFX archive:
// outer RIFX header, inner type tag, imap, mmap, and the caller's trailing
// entries placed back to back in order. Each element of entries is a
// complete chunk (tag+size+body, e.g. built by Chunk) already carrying its
// own tag; Archive fills in the fixed RIFX/imap/mmap prologue and computes
// every position.
func Archive(typeTag string, version uint16, entries ...[]byte) []byte {
	const imapChunkLen = 24 // 8-byte header + 16-byte body, always
	const mmapPos = 12 + imapChunkLen

	mmapBodyLen := 24 + 20*(3+len(entries))
	mmapChunkLen := 8 + mmapBodyLen

	totalEntriesLen := 0
	for _, e := range entries {
		totalEntriesLen += len(e)
	}
	selfSize := uint32(4 + imapChunkLen + mmapChunkLen + totalEntriesLen)

	mmapEntries := make([][]byte, 0, 3+len(entries))
	mmapEntries = append(mmapEntries,
		MMapEntry("RIFX", selfSize, 0),
		MMapEntry("imap", 16, 12),
		MMapEntry("mmap", uint32(mmapBodyLen), mmapPos),
	)
	pos := mmapPos + mmapChunkLen
	for _, e := range entries {
		tag := string(e[0:4])
		size := binary.BigEndian.Uint32(e[4:8])
		mmapEntries = append(mmapEntries, MMapEntry(tag, size, uint32(pos)))
		pos += len(e)
	}

	imapChunk := Chunk("imap", IMapBody(mmapPos, version))
	mmapChunk := Chunk("mmap", MMapBody(-1, -1, -1, mmapEntries...))

	rifxBody := make([]byte, 0, selfSize)
	rifxBody = append(rifxBody, []byte(typeTag)...)
	rifxBody = append(rifxBody, imapChunk...)
	rifxBody = append(rifxBody, mmapChunk...)
	for _, e := range entries {
		rifxBody = append(rifxBody, e...)
	}

	return Chunk("RIFX", rifxBody)
}

// ChunkLE is Chunk's little-endian counterpart: the on-disk tag bytes are
// reversed and the size field is little-endian, mirroring how
// endian.Reader.ReadTag/ReadU32 interpret a little-endian-framed archive.
func ChunkLE(tag string, body []byte) []byte {
	out := make([]byte, 8+len(body))
	copy(out[0:4], reverseBytes(tag))
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(body)))
	copy(out[8:], body)
	return out
}

func reverseBytes(tag string) string {
	b := []byte(tag)
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	return string(b)
}

// MMapEntryLE is MMapEntry's little-endian counterpart.
func MMapEntryLE(tag string, size uint32, position uint32) []byte {
	out := make([]byte, 20)
	copy(out[0:4], reverseBytes(tag))
	binary.LittleEndian.PutUint32(out[4:8], size)
	binary.LittleEndian.PutUint32(out[8:12], position)
	return out
}

// IMapBodyLE is IMapBody's little-endian counterpart.
func IMapBodyLE(mmapPosition uint32, version uint16) []byte {
	out := make([]byte, 16)
	binary.LittleEndian.PutUint32(out[0:4], 1)
	binary.LittleEndian.PutUint32(out[4:8], mmapPosition)
	binary.LittleEndian.PutUint32(out[8:12], uint32(version))
	binary.LittleEndian.PutUint32(out[12:16], 0)
	return out
}

// MMapBodyLE is MMapBody's little-endian counterpart; entries must already
// be little-endian (built by MMapEntryLE).
func MMapBodyLE(junk1, junk2, free int32, entries ...[]byte) []byte {
	out := make([]byte, 0, 24+20*len(entries))
	var head [24]byte
	binary.LittleEndian.PutUint16(head[0:2], 0x18)
	binary.LittleEndian.PutUint16(head[2:4], 0x14)
	binary.LittleEndian.PutUint32(head[4:8], uint32(len(entries)))
	binary.LittleEndian.PutUint32(head[8:12], uint32(len(entries)))
	binary.LittleEndian.PutUint32(head[12:16], uint32(junk1))
	binary.LittleEndian.PutUint32(head[16:20], uint32(junk2))
	binary.LittleEndian.PutUint32(head[20:24], uint32(free))
	out = append(out, head[:]...)
	for _, e := range entries {
		out = append(out, e...)
	}
	return out
}

// ArchiveLE is Archive's little-endian counterpart: the outer tag is stored
// as "XFIR", every tag everywhere in the archive is byte-reversed, and
// every multi-byte integer is little-endian. entries must already be
// little-endian chunks (built by ChunkLE).
func ArchiveLE(typeTag string, version uint16, entries ...[]byte) []byte {
	const imapChunkLen = 24
	const mmapPos = 12 + imapChunkLen

	mmapBodyLen := 24 + 20*(3+len(entries))
	mmapChunkLen := 8 + mmapBodyLen

	totalEntriesLen := 0
	for _, e := range entries {
		totalEntriesLen += len(e)
	}
	selfSize := uint32(4 + imapChunkLen + mmapChunkLen + totalEntriesLen)

	mmapEntries := make([][]byte, 0, 3+len(entries))
	mmapEntries = append(mmapEntries,
		MMapEntryLE("RIFX", selfSize, 0),
		MMapEntryLE("imap", 16, 12),
		MMapEntryLE("mmap", uint32(mmapBodyLen), mmapPos),
	)
	pos := mmapPos + mmapChunkLen
	for _, e := range entries {
		tag := reverseBytes(string(e[0:4]))
		size := binary.LittleEndian.Uint32(e[4:8])
		mmapEntries = append(mmapEntries, MMapEntryLE(tag, size, uint32(pos)))
		pos += len(e)
	}

	imapChunk := ChunkLE("imap", IMapBodyLE(mmapPos, version))
	mmapChunk := ChunkLE("mmap", MMapBodyLE(-1, -1, -1, mmapEntries...))

	rifxBody := make([]byte, 0, selfSize)
	rifxBody = append(rifxBody, []byte(reverseBytes(typeTag))...)
	rifxBody = append(rifxBody, imapChunk...)
	rifxBody = append(rifxBody, mmapChunk...)
	for _, e := range entries {
		rifxBody = append(rifxBody, e...)
	}

	return ChunkLE("RIFX", rifxBody)
}

// ListBody builds a List body out of (entry_index, file_type) members.
func ListBody(members [][2]uint32) []byte {
	out := make([]byte, 20, 20+len(members)*8)
	// out[0:8] left zero (skipped by the parser)
	binary.BigEndian.PutUint32(out[8:12], uint32(len(members)))
	binary.BigEndian.PutUint32(out[12:16], uint32(len(members)))
	binary.BigEndian.PutUint16(out[16:18], 0x0014)
	binary.BigEndian.PutUint16(out[18:20], 0x0008)
	for _, m := range members {
		var pair [8]byte
		binary.BigEndian.PutUint32(pair[0:4], m[0])
		binary.BigEndian.PutUint32(pair[4:8], m[1])
		out = append(out, pair[:]...)
	}
	return out
}
