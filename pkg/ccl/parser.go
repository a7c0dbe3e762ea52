package ccl

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

const magic uint32 = 0x0002AAAC

const (
	chunkRedundantTime     = 1
	chunkRedundantChips    = 2
	chunkTitle             = 3
	chunkTraps             = 4
	chunkCloners           = 5
	chunkPassword          = 6
	chunkRedundantPassword = 7
	chunkHint              = 8
	chunkAuthor            = 9
	chunkMonsterList       = 10
)

// Parse decodes a complete CCL archive into its per-level metadata, in
// file order.
func Parse(data []byte) ([]*level.LevelMetadata, error) {
	need := func(n int) error {
		if len(data) < n {
			return fmt.Errorf("ccl: file ends too soon")
		}
		return nil
	}

	if err := need(4); err != nil {
		return nil, err
	}
	if got := binary.LittleEndian.Uint32(data); got != magic {
		return nil, fmt.Errorf("ccl: invalid signature 0x%08X, not a CCL file", got)
	}
	data = data[4:]

	if err := need(2); err != nil {
		return nil, err
	}
	levelsN := binary.LittleEndian.Uint16(data)
	data = data[2:]

	levels := make([]*level.LevelMetadata, 0, levelsN)
	for i := uint16(0); i < levelsN; i++ {
		meta := &level.LevelMetadata{}

		if err := need(12); err != nil {
			return nil, err
		}
		// data[0:2] is the record's declared length, never checked against
		// bytes actually consumed.
		meta.LevelNumber = binary.LittleEndian.Uint16(data[2:4])
		meta.TimeLimit = binary.LittleEndian.Uint16(data[4:6])
		meta.ChipsRequired = binary.LittleEndian.Uint16(data[6:8])
		// data[8:10] unused
		layerTopSize := binary.LittleEndian.Uint16(data[10:12])
		data = data[12:]

		if err := need(int(layerTopSize)); err != nil {
			return nil, err
		}
		layerTop, err := decompressRLE(data[:layerTopSize], tile.Size)
		if err != nil {
			return nil, fmt.Errorf("ccl: level %d top layer: %w", meta.LevelNumber, err)
		}
		data = data[layerTopSize:]

		if err := need(2); err != nil {
			return nil, err
		}
		layerBottomSize := binary.LittleEndian.Uint16(data)
		data = data[2:]
		if err := need(int(layerBottomSize)); err != nil {
			return nil, err
		}
		layerBottom, err := decompressRLE(data[:layerBottomSize], tile.Size)
		if err != nil {
			return nil, fmt.Errorf("ccl: level %d bottom layer: %w", meta.LevelNumber, err)
		}
		data = data[layerBottomSize:]

		topIDs, err := mapTileBytes(layerTop)
		if err != nil {
			return nil, fmt.Errorf("ccl: level %d top layer: %w", meta.LevelNumber, err)
		}
		bottomIDs, err := mapTileBytes(layerBottom)
		if err != nil {
			return nil, fmt.Errorf("ccl: level %d bottom layer: %w", meta.LevelNumber, err)
		}
		meta.LayerTop = topIDs
		meta.LayerBottom = bottomIDs

		if err := need(2); err != nil {
			return nil, err
		}
		chunksSize := int(binary.LittleEndian.Uint16(data))
		data = data[2:]
		if err := need(chunksSize); err != nil {
			return nil, err
		}

		for chunksSize > 0 {
			if err := need(2); err != nil {
				return nil, err
			}
			chunkType := data[0]
			chunkLen := int(data[1])
			data = data[2:]
			if err := need(chunkLen); err != nil {
				return nil, err
			}

			switch chunkType {
			case chunkTitle:
				meta.Title = readClampedString(data, chunkLen, 64)
			case chunkTraps:
				// Bug preserved from the reference: the record count is
				// computed from the chunk type (4), not chunk_len, so this
				// loop runs chunkType/10 = 0 times and no traps are ever
				// recorded here regardless of chunk contents.
				trapsN := chunkType / 10
				for t := 0; t < int(trapsN); t++ {
					off := t * 10
					fromX := binary.LittleEndian.Uint16(data[off:])
					fromY := binary.LittleEndian.Uint16(data[off+2:])
					toX := binary.LittleEndian.Uint16(data[off+4:])
					toY := binary.LittleEndian.Uint16(data[off+6:])
					meta.TrapLinks.Add(level.TileConn{
						From: tile.FromXY(int(fromX), int(fromY)),
						To:   tile.FromXY(int(toX), int(toY)),
					})
				}
			case chunkCloners:
				// Same bug: chunkType/8 = 0, so this never runs either.
				clonersN := chunkType / 8
				for c := 0; c < int(clonersN); c++ {
					off := c * 8
					fromX := binary.LittleEndian.Uint16(data[off:])
					fromY := binary.LittleEndian.Uint16(data[off+2:])
					toX := binary.LittleEndian.Uint16(data[off+4:])
					toY := binary.LittleEndian.Uint16(data[off+6:])
					meta.ClonerLinks.Add(level.TileConn{
						From: tile.FromXY(int(fromX), int(fromY)),
						To:   tile.FromXY(int(toX), int(toY)),
					})
				}
			case chunkPassword:
				n := chunkLen
				if n > 10 {
					n = 10
				}
				pw := append([]byte(nil), data[:n]...)
				for i, c := range pw {
					if c == 0 {
						pw = pw[:i]
						break
					}
					pw[i] = c ^ 0x99
				}
				meta.Password = string(pw)
			case chunkHint:
				meta.Hint = readClampedString(data, chunkLen, 128)
			case chunkAuthor:
				meta.Author = readClampedString(data, chunkLen, 128)
			case chunkMonsterList:
				monstersN := chunkLen / 2
				meta.MonsterList = make([]tile.Position, 0, monstersN)
				for m := 0; m < monstersN; m++ {
					x := data[m*2]
					y := data[m*2+1]
					meta.MonsterList = append(meta.MonsterList, tile.FromXY(int(x), int(y)))
				}
			case chunkRedundantTime, chunkRedundantChips, chunkRedundantPassword:
				// Ignored: duplicates of fields already read above.
			default:
				// Unknown chunk type, skipped.
			}

			data = data[chunkLen:]
			chunksSize -= 2 + chunkLen
		}

		levels = append(levels, meta)
	}

	if len(data) != 0 {
		return nil, fmt.Errorf("ccl: %d trailing bytes after last level", len(data))
	}

	return levels, nil
}

// readClampedString mirrors strndup(data, min(chunkLen, bound)): it reads
// at most bound bytes (and at most chunkLen, and at most what's
// available), stopping early at a NUL.
func readClampedString(data []byte, chunkLen, bound int) string {
	n := chunkLen
	if n > bound {
		n = bound
	}
	if n > len(data) {
		n = len(data)
	}
	return nulTerminated(data[:n])
}

// readOverclampedString mirrors the CCL title reader's inverted clamp:
// strndup(data, chunk_len > bound ? chunk_len : bound). A short title
// chunk reads bound bytes regardless of chunk_len, spilling into
// whatever follows the chunk in the file; a long one is read in full,
// uncapped. Either way the read is bounded by what's actually available
// rather than overrunning the buffer.
func readOverclampedString(data []byte, chunkLen, bound int) string {
	n := bound
	if chunkLen > bound {
		n = chunkLen
	}
	if n > len(data) {
		n = len(data)
	}
	return nulTerminated(data[:n])
}

func nulTerminated(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
