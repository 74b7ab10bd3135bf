package lzw

import (
	"errors"
	"fmt"
)

const MaxCodeWidth = 4

var (
	ErrInvalidCodeWidth = errors.New("lzw: invalid code width")
	ErrTruncated        = errors.New("lzw: truncated data")
)

// Marshal writes the width byte followed by every code as Width
// little-endian bytes.
func Marshal(res Result) ([]byte, error) {
	if res.Width < 1 || res.Width > MaxCodeWidth {
		if res.Width == 0 {
			return nil, fmt.Errorf("%w: width 0", ErrCodeWidthOverflow)
		}
		return nil, fmt.Errorf("%w: %d", ErrInvalidCodeWidth, res.Width)
	}
	if err := checkWidth(res); err != nil {
		return nil, err
	}
	out := make([]byte, 1+res.Width*len(res.Codes))
	out[0] = byte(res.Width)
	p := 1
	for _, c := range res.Codes {
		for b := 0; b < res.Width; b++ {
			out[p] = byte(c >> (8 * b))
			p++
		}
	}
	return out, nil
}

// Unmarshal splits a compressed artifact into its width and codes.
func Unmarshal(b []byte) (Result, error) {
	if len(b) == 0 {
		return Result{}, fmt.Errorf("%w: missing width byte", ErrTruncated)
	}
	width := int(b[0])
	if width < 1 || width > MaxCodeWidth {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidCodeWidth, width)
	}
	body := b[1:]
	if len(body) == 0 {
		return Result{}, fmt.Errorf("%w: no codes", ErrTruncated)
	}
	if len(body)%width != 0 {
		return Result{}, fmt.Errorf("%w: %d trailing bytes for width %d", ErrTruncated, len(body)%width, width)
	}
	codes := make([]uint32, len(body)/width)
	for i := range codes {
		var c uint32
		for j := width - 1; j >= 0; j-- {
			c = c<<8 | uint32(body[i*width+j])
		}
		codes[i] = c
	}
	return Result{Width: width, Codes: codes}, nil
}

// Encode compresses digits straight to the wire form.
func Encode(symbols []byte, policy WidthPolicy) ([]byte, error) {
	res, err := Compress(symbols, policy)
	if err != nil {
		return nil, err
	}
	return Marshal(res)
}

// Decode reverses Encode.
func Decode(b []byte) ([]byte, error) {
	res, err := Unmarshal(b)
	if err != nil {
		return nil, err
	}
	return Decompress(res.Codes)
}
