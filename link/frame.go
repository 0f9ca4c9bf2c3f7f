// Package link implements the primary half's side of the inter-half
// serial protocol: reading newline-terminated ASCII frames from the
// secondary half and decoding them into a row-major down/up matrix.
package link

import "fmt"

// FrameSize is the wire size of one remote-half frame: 24 matrix bytes
// ('0'/'1') plus a trailing '\n'.
const FrameSize = 25

// MatrixBytes is the number of matrix bytes in a frame (24 = 4 rows * 6
// cols, row-major).
const MatrixBytes = FrameSize - 1

// DecodeFrame parses a 25-byte frame into a row-major 4x6 down/up
// matrix. It rejects a line whose length is not FrameSize, any non
// '0'/'1' byte in the matrix portion, and a missing trailing newline.
func DecodeFrame(line []byte, rows, cols int) ([][]bool, error) {
	if len(line) != FrameSize {
		return nil, fmt.Errorf("link: bad frame length %d, want %d", len(line), FrameSize)
	}
	if line[FrameSize-1] != '\n' {
		return nil, fmt.Errorf("link: frame missing trailing newline")
	}
	if rows*cols != MatrixBytes {
		return nil, fmt.Errorf("link: %dx%d matrix does not match %d-byte frame", rows, cols, MatrixBytes)
	}
	out := make([][]bool, rows)
	i := 0
	for r := 0; r < rows; r++ {
		out[r] = make([]bool, cols)
		for c := 0; c < cols; c++ {
			switch line[i] {
			case '0':
				out[r][c] = false
			case '1':
				out[r][c] = true
			default:
				return nil, fmt.Errorf("link: invalid byte %q at offset %d", line[i], i)
			}
			i++
		}
	}
	return out, nil
}
