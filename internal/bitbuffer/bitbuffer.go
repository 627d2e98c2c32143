package bitbuffer

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Buffer holds the demodulated rows of one capture. Bits are packed MSB
// first; the trailing bits of the last byte in a row are zero.
type Buffer struct {
	Rows       [][]byte
	BitsPerRow []int
}

// NumRows returns the number of captured rows.
func (b *Buffer) NumRows() int {
	return len(b.Rows)
}

// Bits returns the bit length of the given row, or 0 when the row is absent.
func (b *Buffer) Bits(row int) int {
	if row < 0 || row >= len(b.BitsPerRow) {
		return 0
	}
	return b.BitsPerRow[row]
}

// Row returns the bytes of a row. The slice always covers every bit of the
// row: missing bytes and bits past the row length read as zero. Bytes stored
// beyond the row length are returned untouched.
func (b *Buffer) Row(row int) []byte {
	if row < 0 || row >= max(len(b.Rows), len(b.BitsPerRow)) {
		return nil
	}
	var data []byte
	if row < len(b.Rows) {
		data = b.Rows[row]
	}
	bits := b.Bits(row)
	need := (bits + 7) / 8
	rem := bits % 8
	if len(data) >= need && (rem == 0 || data[need-1]&^tailMask(rem) == 0) {
		return data
	}
	out := make([]byte, max(need, len(data)))
	copy(out, data)
	if rem != 0 {
		out[need-1] &= tailMask(rem)
	}
	return out
}

// tailMask keeps the top n bits of a byte.
func tailMask(n int) byte {
	return byte(0xFF << (8 - n))
}

// AddRow appends a copy of data as a new row of the given bit length.
func (b *Buffer) AddRow(data []byte, bits int) {
	n := (bits + 7) / 8
	row := make([]byte, n)
	copy(row, data)
	if rem := bits % 8; rem != 0 && n > 0 {
		row[n-1] &= tailMask(rem)
	}
	b.Rows = append(b.Rows, row)
	b.BitsPerRow = append(b.BitsPerRow, bits)
}

// Invert flips every bit of every row in place. Padding bits stay zero.
func (b *Buffer) Invert() {
	for i, row := range b.Rows {
		bits := b.Bits(i)
		for j := range row {
			row[j] = ^row[j]
		}
		if rem := bits % 8; rem != 0 && len(row) >= (bits+7)/8 {
			row[(bits+7)/8-1] &= tailMask(rem)
		}
		for j := (bits + 7) / 8; j < len(row); j++ {
			row[j] = 0
		}
	}
}

// String renders the buffer in the {N}hex row notation accepted by Parse.
func (b *Buffer) String() string {
	parts := make([]string, 0, len(b.Rows))
	for i := range b.Rows {
		bits := b.Bits(i)
		data := b.Row(i)[:(bits+7)/8]
		parts = append(parts, fmt.Sprintf("{%d}%s", bits, hex.EncodeToString(data)))
	}
	return strings.Join(parts, "/")
}

// Parse reads one or more rows separated by '/'. A row is either "{N}hex",
// taking the first N bits of the hex digits, or bare hex at 4 bits a digit.
func Parse(input string) (*Buffer, error) {
	clean := stripNoise(input)
	if clean == "" {
		return nil, fmt.Errorf("empty bit row input")
	}
	b := &Buffer{}
	for i, part := range strings.Split(clean, "/") {
		data, bits, err := parseRow(part)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		b.AddRow(data, bits)
	}
	return b, nil
}

func parseRow(s string) ([]byte, int, error) {
	bits := -1
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return nil, 0, fmt.Errorf("unterminated bit count in %q", s)
		}
		n, err := strconv.Atoi(s[1:end])
		if err != nil || n < 0 {
			return nil, 0, fmt.Errorf("invalid bit count %q", s[1:end])
		}
		bits = n
		s = s[end+1:]
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	digits := len(s)
	if bits < 0 {
		bits = digits * 4
	}
	if bits > digits*4 {
		return nil, 0, fmt.Errorf("bit count %d exceeds %d supplied bits", bits, digits*4)
	}
	if digits%2 != 0 {
		s += "0"
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, 0, fmt.Errorf("decode hex: %w", err)
	}
	return data, bits, nil
}

func stripNoise(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
