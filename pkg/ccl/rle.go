package ccl

import "fmt"

// decompressRLE expands a CCL layer byte string. A 0xFF byte introduces a
// run: the following byte is a repeat count, the byte after that is the
// value to repeat. Any other byte is a literal. Decompression stops once
// exactly want bytes have been produced; trailing input is ignored, as
// the reference only ever asks for tile.Size bytes per layer.
func decompressRLE(src []byte, want int) ([]byte, error) {
	out := make([]byte, 0, want)
	for i := 0; i < len(src) && len(out) < want; {
		b := src[i]
		if b == 0xFF {
			if i+2 >= len(src) {
				return nil, fmt.Errorf("ccl: truncated RLE run at offset %d", i)
			}
			count := int(src[i+1])
			val := src[i+2]
			for n := 0; n < count && len(out) < want; n++ {
				out = append(out, val)
			}
			i += 3
			continue
		}
		out = append(out, b)
		i++
	}
	if len(out) != want {
		return nil, fmt.Errorf("ccl: layer decompressed to %d bytes, want %d", len(out), want)
	}
	return out, nil
}
