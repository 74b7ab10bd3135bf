package lzw

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/danmuck/midcrack/internal/chaincode"
)

var (
	ErrEmptyInput        = errors.New("lzw: empty input")
	ErrCodeWidthOverflow = errors.New("lzw: code does not fit code width")
	ErrInvalidCode       = errors.New("lzw: invalid code")
	ErrDictionaryFull    = errors.New("lzw: dictionary full")

	// ErrMalformedDigit is shared with the chain code text form.
	ErrMalformedDigit = chaincode.ErrMalformedDigit
)

// AlphabetSize is the number of seed entries, one per chain code digit.
const AlphabetSize = 8

const maxCode = 1<<32 - 1

// WidthPolicy selects how many bytes each emitted code occupies.
type WidthPolicy int

const (
	// WidthMaxCode sizes codes from the largest emitted value.
	WidthMaxCode WidthPolicy = iota
	// WidthLegacy sizes codes from the number of emitted codes,
	// ceil(log2(n)/8), and fails when a code does not fit.
	WidthLegacy
)

func (p WidthPolicy) String() string {
	switch p {
	case WidthMaxCode:
		return "max-code"
	case WidthLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("width-policy(%d)", int(p))
	}
}

// ParseWidthPolicy accepts the String forms.
func ParseWidthPolicy(raw string) (WidthPolicy, error) {
	switch raw {
	case "max-code", "":
		return WidthMaxCode, nil
	case "legacy":
		return WidthLegacy, nil
	default:
		return WidthMaxCode, fmt.Errorf("lzw: unknown width policy %q", raw)
	}
}

// Result is one compressed symbol sequence.
type Result struct {
	Width    int
	Codes    []uint32
	DictSize int
}

type link struct {
	prefix uint32
	symbol byte
}

func symbolIndex(offset int, ch byte) (byte, error) {
	if ch < '0' || ch > '7' {
		return 0, &chaincode.DigitError{Offset: offset, Byte: ch}
	}
	return ch - '0', nil
}

// Compress encodes ASCII chain code digits.
func Compress(symbols []byte, policy WidthPolicy) (Result, error) {
	if len(symbols) == 0 {
		return Result{}, ErrEmptyInput
	}
	first, err := symbolIndex(0, symbols[0])
	if err != nil {
		return Result{}, err
	}

	entries := make(map[link]uint32, len(symbols))
	next := uint32(AlphabetSize)
	codes := make([]uint32, 0, len(symbols)/2+1)
	prefix := uint32(first)
	for i := 1; i < len(symbols); i++ {
		c, err := symbolIndex(i, symbols[i])
		if err != nil {
			return Result{}, err
		}
		key := link{prefix: prefix, symbol: c}
		if code, ok := entries[key]; ok {
			prefix = code
			continue
		}
		codes = append(codes, prefix)
		if next == maxCode {
			return Result{}, fmt.Errorf("%w at offset %d", ErrDictionaryFull, i)
		}
		entries[key] = next
		next++
		prefix = uint32(c)
	}
	codes = append(codes, prefix)

	res := Result{Codes: codes, DictSize: int(next)}
	switch policy {
	case WidthLegacy:
		res.Width = legacyWidth(len(codes))
		if err := checkWidth(res); err != nil {
			return Result{}, err
		}
	default:
		res.Width = widthFor(maxOf(codes))
	}
	return res, nil
}

// legacyWidth is ceil(log2(n)/8) in integer arithmetic.
func legacyWidth(n int) int {
	return (bits.Len(uint(n-1)) + 7) / 8
}

// widthFor returns the bytes needed to hold v, at least one.
func widthFor(v uint32) int {
	return max(1, (bits.Len32(v)+7)/8)
}

func maxOf(codes []uint32) uint32 {
	var m uint32
	for _, c := range codes {
		m = max(m, c)
	}
	return m
}

func checkWidth(res Result) error {
	if res.Width < 1 {
		return fmt.Errorf("%w: width 0 for %d codes", ErrCodeWidthOverflow, len(res.Codes))
	}
	for i, c := range res.Codes {
		if widthFor(c) > res.Width {
			return fmt.Errorf("%w: code %d at index %d needs %d bytes, width is %d",
				ErrCodeWidthOverflow, c, i, widthFor(c), res.Width)
		}
	}
	return nil
}

// Decompress rebuilds the digit sequence from codes.
func Decompress(codes []uint32) ([]byte, error) {
	if len(codes) == 0 {
		return nil, ErrEmptyInput
	}
	if codes[0] >= AlphabetSize {
		return nil, fmt.Errorf("%w: first code %d", ErrInvalidCode, codes[0])
	}

	d := newDictionary(len(codes))
	out := make([]byte, 0, 2*len(codes))
	out = d.appendEntry(out, codes[0])
	prev := codes[0]
	for i := 1; i < len(codes); i++ {
		code := codes[i]
		size := d.size()
		var first byte
		switch {
		case code < size:
			start := len(out)
			out = d.appendEntry(out, code)
			first = out[start]
		case code == size:
			// the entry being defined: prev + first(prev)
			start := len(out)
			out = d.appendEntry(out, prev)
			first = out[start]
			out = append(out, first)
		default:
			return nil, fmt.Errorf("%w: %d at index %d, dictionary size %d", ErrInvalidCode, code, i, size)
		}
		d.add(prev, first-'0')
		prev = code
	}
	return out, nil
}

// dictionary stores entries as prefix links so every entry costs O(1).
type dictionary struct {
	links  []link
	length []int
}

func newDictionary(hint int) *dictionary {
	d := &dictionary{
		links:  make([]link, AlphabetSize, AlphabetSize+hint),
		length: make([]int, AlphabetSize, AlphabetSize+hint),
	}
	for i := 0; i < AlphabetSize; i++ {
		d.links[i] = link{prefix: uint32(i), symbol: byte(i)}
		d.length[i] = 1
	}
	return d
}

func (d *dictionary) size() uint32 {
	return uint32(len(d.links))
}

func (d *dictionary) add(prefix uint32, symbol byte) {
	d.links = append(d.links, link{prefix: prefix, symbol: symbol})
	d.length = append(d.length, d.length[prefix]+1)
}

// appendEntry writes the digits of code to dst.
func (d *dictionary) appendEntry(dst []byte, code uint32) []byte {
	n := d.length[code]
	start := len(dst)
	for i := 0; i < n; i++ {
		dst = append(dst, 0)
	}
	for i := start + n - 1; i >= start; i-- {
		l := d.links[code]
		dst[i] = '0' + l.symbol
		code = l.prefix
	}
	return dst
}
