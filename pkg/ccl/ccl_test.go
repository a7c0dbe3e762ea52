package ccl

import (
	"bytes"
	"encoding/binary"
	"testing"

	"pgregory.net/rapid"

	"ccengine/pkg/tile"
)

func TestDecompressRLELiteralRun(t *testing.T) {
	got, err := decompressRLE([]byte{0xFF, 0x04, 0x2A}, 4)
	if err != nil {
		t.Fatalf("decompressRLE: %v", err)
	}
	want := []byte{0x2A, 0x2A, 0x2A, 0x2A}
	if !bytes.Equal(got, want) {
		t.Fatalf("decompressRLE = %v, want %v", got, want)
	}
}

func TestDecompressRLEMixedLiteralsAndRuns(t *testing.T) {
	src := []byte{0x00, 0x01, 0xFF, 0x03, 0x07, 0x02}
	got, err := decompressRLE(src, 6)
	if err != nil {
		t.Fatalf("decompressRLE: %v", err)
	}
	want := []byte{0x00, 0x01, 0x07, 0x07, 0x07, 0x02}
	if !bytes.Equal(got, want) {
		t.Fatalf("decompressRLE = %v, want %v", got, want)
	}
}

func TestDecompressRLETruncatedRun(t *testing.T) {
	if _, err := decompressRLE([]byte{0xFF, 0x02}, 2); err == nil {
		t.Fatal("expected error for truncated RLE run")
	}
}

func TestDecompressRLERoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		want := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(t, "bytes")
		var compressed []byte
		for i := 0; i < len(want); {
			run := 1
			for i+run < len(want) && want[i+run] == want[i] && run < 255 {
				run++
			}
			if run >= 3 || want[i] == 0xFF {
				compressed = append(compressed, 0xFF, byte(run), want[i])
			} else {
				for n := 0; n < run; n++ {
					compressed = append(compressed, want[i])
				}
			}
			i += run
		}
		got, err := decompressRLE(compressed, len(want))
		if err != nil {
			t.Fatalf("decompressRLE: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("round trip mismatch: got %v, want %v", got, want)
		}
	})
}

func TestMapTileBytesRejectsReservedByte(t *testing.T) {
	raw := make([]byte, tile.Size)
	raw[0] = 0x20
	if _, err := mapTileBytes(raw); err == nil {
		t.Fatal("expected error for reserved tile byte 0x20")
	}
}

func TestMapTileBytesPlayerStartCarriesFacing(t *testing.T) {
	raw := make([]byte, tile.Size)
	raw[0] = 0x6E // south(Chip)
	ids, err := mapTileBytes(raw)
	if err != nil {
		t.Fatalf("mapTileBytes: %v", err)
	}
	if tile.GetID(ids[0]) != tile.Chip {
		t.Fatalf("GetID = %v, want Chip", tile.GetID(ids[0]))
	}
	if tile.GetDir(ids[0]) != tile.DirSouth {
		t.Fatalf("GetDir = %v, want DirSouth", tile.GetDir(ids[0]))
	}
}

func TestMapTileBytesCollectibleChipDiffersFromPlayerStart(t *testing.T) {
	raw := make([]byte, tile.Size)
	raw[0] = 0x02
	ids, err := mapTileBytes(raw)
	if err != nil {
		t.Fatalf("mapTileBytes: %v", err)
	}
	if ids[0] != tile.ICChip {
		t.Fatalf("mapTileBytes(0x02) = %v, want ICChip", ids[0])
	}
}

// buildMinimalCCL assembles a one-level archive with an all-dirt top
// layer, an all-empty bottom layer, and a title chunk, to exercise Parse
// without a real archive fixture.
func buildMinimalCCL(t *testing.T, title string) []byte {
	t.Helper()
	var buf bytes.Buffer
	u16 := func(v uint16) { binary.Write(&buf, binary.LittleEndian, v) }
	u32 := func(v uint32) { binary.Write(&buf, binary.LittleEndian, v) }

	u32(magic)
	u16(1) // levels_n

	// RLE-encode tile.Size bytes of dirt (0x0B) and empty (0x00) using runs
	// capped at 255 per the format's single-byte count field.
	encodeRun := func(b byte, n int) []byte {
		var out []byte
		for n > 0 {
			chunk := n
			if chunk > 255 {
				chunk = 255
			}
			out = append(out, 0xFF, byte(chunk), b)
			n -= chunk
		}
		return out
	}
	topLayer := encodeRun(0x0B, tile.Size)
	bottomLayer := encodeRun(0x00, tile.Size)

	u16(0)            // record_size (unused)
	u16(1)            // level_number
	u16(0)            // time_limit
	u16(0)            // chips_required
	u16(0)            // unused
	u16(uint16(len(topLayer)))
	buf.Write(topLayer)
	u16(uint16(len(bottomLayer)))
	buf.Write(bottomLayer)

	var chunks bytes.Buffer
	chunks.WriteByte(chunkTitle)
	chunks.WriteByte(byte(len(title)))
	chunks.WriteString(title)

	u16(uint16(chunks.Len()))
	buf.Write(chunks.Bytes())

	return buf.Bytes()
}

func TestParseMinimalArchive(t *testing.T) {
	data := buildMinimalCCL(t, "short")
	levels, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(levels) != 1 {
		t.Fatalf("len(levels) = %d, want 1", len(levels))
	}
	meta := levels[0]
	if meta.LevelNumber != 1 {
		t.Fatalf("LevelNumber = %d, want 1", meta.LevelNumber)
	}
	for _, id := range meta.LayerBottom {
		if id != tile.Empty {
			t.Fatalf("expected all-empty bottom layer, found %v", id)
		}
	}
	for _, id := range meta.LayerTop {
		if id != tile.Dirt {
			t.Fatalf("expected all-dirt top layer, found %v", id)
		}
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	data := buildMinimalCCL(t, "x")
	data[0] ^= 0xFF
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for corrupted magic")
	}
}

func TestParseTrapsChunkAlwaysEmpty(t *testing.T) {
	data := buildMinimalCCL(t, "x")
	// Append a traps chunk holding one 10-byte record after the 3-byte
	// title chunk, and grow the level's chunks_size field to cover it; the
	// decoded metadata must still carry no trap links.
	trapsChunk := []byte{chunkTraps, 10, 1, 0, 1, 0, 2, 0, 2, 0, 0, 0}
	sizeOff := len(data) - 3 - 2
	binary.LittleEndian.PutUint16(data[sizeOff:], binary.LittleEndian.Uint16(data[sizeOff:])+uint16(len(trapsChunk)))
	data = append(data, trapsChunk...)
	levels, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if levels[0].TrapLinks.Len() != 0 {
		t.Fatal("expected no trap links to be recorded")
	}
}
