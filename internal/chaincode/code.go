package chaincode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoForegroundPixel = errors.New("chaincode: no foreground pixel")
	ErrNegativeYBound    = errors.New("chaincode: negative y bound")
	ErrMalformedDigit    = errors.New("chaincode: malformed digit")
	ErrEmptyCode         = errors.New("chaincode: empty code")
	ErrDiscontinuousCode = errors.New("chaincode: discontinuous code")
	ErrCodeOutOfBounds   = errors.New("chaincode: code leaves reconstructed grid")
	ErrTraceDiverged     = errors.New("chaincode: trace did not return to start")
)

// Direction is one of the eight compass octants. Even values are axis
// aligned, odd values are diagonal half-steps on the crack lattice.
type Direction uint8

const (
	Right Direction = iota
	UpRight
	Up
	UpLeft
	Left
	DownLeft
	Down
	DownRight
)

const numDirections = 8

func (d Direction) Valid() bool {
	return d < numDirections
}

// Axis reports whether d is one of the four axis-aligned directions.
func (d Direction) Axis() bool {
	return d%2 == 0
}

func (d Direction) Digit() byte {
	return '0' + byte(d)
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case UpRight:
		return "up-right"
	case Up:
		return "up"
	case UpLeft:
		return "up-left"
	case Left:
		return "left"
	case DownLeft:
		return "down-left"
	case Down:
		return "down"
	case DownRight:
		return "down-right"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// DigitError reports a byte outside '0'..'7'.
type DigitError struct {
	Offset int
	Byte   byte
}

func (e *DigitError) Error() string {
	return fmt.Sprintf("%v: %q at offset %d", ErrMalformedDigit, e.Byte, e.Offset)
}

func (e *DigitError) Unwrap() error {
	return ErrMalformedDigit
}

// Code is one closed boundary loop.
type Code []Direction

// ParseCode reads the ASCII digit form. A single trailing newline is
// tolerated.
func ParseCode(b []byte) (Code, error) {
	b = trimNewline(b)
	out := make(Code, len(b))
	for i, ch := range b {
		if ch < '0' || ch > '7' {
			return nil, &DigitError{Offset: i, Byte: ch}
		}
		out[i] = Direction(ch - '0')
	}
	return out, nil
}

// MustParse is ParseCode for literals.
func MustParse(s string) Code {
	c, err := ParseCode([]byte(s))
	if err != nil {
		panic(err)
	}
	return c
}

func trimNewline(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
		if n := len(b); n > 0 && b[n-1] == '\r' {
			b = b[:n-1]
		}
	}
	return b
}

// Bytes returns the ASCII digit form.
func (c Code) Bytes() []byte {
	out := make([]byte, len(c))
	for i, d := range c {
		out[i] = d.Digit()
	}
	return out
}

func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(len(c))
	for _, d := range c {
		sb.WriteByte(d.Digit())
	}
	return sb.String()
}

func (c Code) MarshalText() ([]byte, error) {
	for i, d := range c {
		if !d.Valid() {
			return nil, &DigitError{Offset: i, Byte: byte(d)}
		}
	}
	return c.Bytes(), nil
}

func (c *Code) UnmarshalText(b []byte) error {
	parsed, err := ParseCode(b)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
