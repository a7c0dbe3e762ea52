package tws

import (
	"fmt"

	"ccengine/pkg/tile"
)

var inputLookup = [8]tile.Direction{
	tile.DirNorth,
	tile.DirWest,
	tile.DirSouth,
	tile.DirEast,
	tile.DirNorth | tile.DirWest,
	tile.DirSouth | tile.DirWest,
	tile.DirNorth | tile.DirEast,
	tile.DirSouth | tile.DirEast,
}

// decodeInputStream expands a TWS record's compressed input stream into
// one tile.Direction per tick. size bounds how many stream bytes belong
// to this record; numTicks sizes the output but is not trusted as a hard
// bound, since a malformed or edge-case record can walk past it before
// the stream is exhausted.
func decodeInputStream(data []byte, size uint32, numTicks uint32) ([]tile.Direction, error) {
	inputs := make([]tile.Direction, numTicks)
	ensure := func(idx uint32) {
		if idx >= uint32(len(inputs)) {
			grown := make([]tile.Direction, idx+1)
			copy(grown, inputs)
			inputs = grown
		}
	}
	set := func(idx uint32, dir tile.Direction) {
		ensure(idx)
		inputs[idx] = dir
	}

	var tick uint32
	pos := 0
	need := func(n int) error {
		if pos+n > len(data) {
			return fmt.Errorf("tws: input stream ends too soon")
		}
		return nil
	}

	for size > 0 {
		if err := need(1); err != nil {
			return nil, err
		}
		firstByte := data[pos]
		pos++
		size--

		switch {
		case firstByte&0b11 == 0b00:
			in1 := inputLookup[(firstByte>>2)&0b11]
			in2 := inputLookup[(firstByte>>4)&0b11]
			in3 := inputLookup[(firstByte>>6)&0b11]
			for _, in := range [3]tile.Direction{in1, in2, in3} {
				set(tick, in)
				set(tick+1, tile.DirNil)
				set(tick+2, tile.DirNil)
				set(tick+3, tile.DirNil)
				tick += 4
			}

		case firstByte&0b11 == 0b01:
			time := uint32(firstByte >> 5)
			input := inputLookup[(firstByte>>2)&0b111]
			for i := uint32(0); i < time; i++ {
				set(tick+i, tile.DirNil)
			}
			set(tick+time, input)
			tick += time

		case firstByte&0b11 == 0b10:
			if err := need(1); err != nil {
				return nil, err
			}
			secondByte := data[pos]
			pos++
			size--
			time := uint32(secondByte)<<3 | uint32(firstByte)>>5
			input := inputLookup[(firstByte>>2)&0b111]
			for i := uint32(0); i < time; i++ {
				set(tick+i, tile.DirNil)
			}
			set(tick+time, input)
			tick += time

		default: // firstByte & 0b11 == 0b11
			if firstByte&0b10000 == 0 {
				if err := need(3); err != nil {
					return nil, err
				}
				second, third, fourth := data[pos], data[pos+1], data[pos+2]
				pos += 3
				size -= 3
				input := inputLookup[(firstByte>>2)&0b11]
				time := uint32(fourth&0b00001111)<<19 | uint32(third)<<11 | uint32(second)<<3 | uint32(firstByte)>>5
				for i := uint32(0); i < time; i++ {
					set(tick+i, tile.DirNil)
				}
				set(tick+time, input)
				tick += time
			} else {
				numBytes := int((firstByte>>2)&0b11) + 1
				if err := need(numBytes); err != nil {
					return nil, err
				}
				var bytes [5]byte
				bytes[0] = firstByte
				copy(bytes[1:], data[pos:pos+numBytes])
				pos += numBytes
				size -= uint32(numBytes)

				input := tile.Direction(bytes[1]&0b00111111 | bytes[0]>>5)
				time := uint32(bytes[4]&0b00011111)<<26 | uint32(bytes[3])<<18 | uint32(bytes[2])<<10 | uint32(bytes[1])>>6
				for i := uint32(0); i < time; i++ {
					set(tick+i, tile.DirNil)
				}
				set(tick+time, input)
				tick += time
			}
		}
	}

	return inputs, nil
}
