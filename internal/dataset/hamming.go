package dataset

import (
	"io"
	"strconv"
)

// HammingBits is the codeword length of the Hamming(12,8) code.
const HammingBits = 12

// parity lists, for each check bit at positions 1, 2, 4 and 8, the
// zero-based indices of the bits it covers.
var parity = [4][]int{
	{0, 2, 4, 6, 8, 10},
	{1, 2, 5, 6, 9, 10},
	{3, 4, 5, 6, 11},
	{7, 8, 9, 10, 11},
}

// Bits expands the low n bits of v, most significant first.
func Bits(v, n int) []int {
	bits := make([]int, n)
	for i := 0; i < n; i++ {
		bits[n-1-i] = (v >> i) & 1
	}
	return bits
}

// Syndrome evaluates the four parity checks of a 12-bit word. Bit c of
// the result is set when check c fails; a zero syndrome means no error
// was detected. For a single flipped bit the syndrome is its 1-based
// position.
func Syndrome(bits []int) int {
	syndrome := 0
	for c, covered := range parity {
		p := 0
		for _, idx := range covered {
			p ^= bits[idx]
		}
		syndrome |= p << c
	}
	return syndrome
}

// HammingRows enumerates all 4096 twelve-bit words. Each row holds the
// bits followed by a label that is 1 when the syndrome is zero.
func HammingRows() [][]float64 {
	rows := make([][]float64, 1<<HammingBits)
	for code := range rows {
		bits := Bits(code, HammingBits)
		row := make([]float64, HammingBits+1)
		for i, b := range bits {
			row[i] = float64(b)
		}
		if Syndrome(bits) == 0 {
			row[HammingBits] = 1
		}
		rows[code] = row
	}
	return rows
}

// HammingHeader is the CSV header written by WriteHammingCSV.
func HammingHeader() []string {
	header := make([]string, 0, HammingBits+1)
	for i := 1; i <= HammingBits; i++ {
		header = append(header, "b"+strconv.Itoa(i))
	}
	return append(header, "correct")
}

// WriteHammingCSV writes HammingRows with a header line.
func WriteHammingCSV(w io.Writer) error {
	return WriteCSV(w, HammingHeader(), HammingRows())
}

// HammingDataset returns HammingRows split into bits and labels.
func HammingDataset() *Dataset {
	ds, err := SplitXY(HammingRows(), LabelLast)
	if err != nil {
		panic(err)
	}
	return ds
}
