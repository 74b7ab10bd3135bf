package chaincode

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/danmuck/midcrack/internal/grid"
	"github.com/danmuck/midcrack/internal/testutil/testlog"
	"github.com/google/go-cmp/cmp"
)

func mustGrid(t *testing.T, rows ...string) *grid.Grid {
	t.Helper()
	g, err := grid.FromRows(rows...)
	if err != nil {
		t.Fatalf("from rows: %v", err)
	}
	return g
}

func TestEncodeSinglePixelInCenter(t *testing.T) {
	testlog.Start(t)
	g := mustGrid(t,
		"...",
		".#.",
		"...",
	)
	code, err := Encode(g)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// the scan skips down-right, down-left and up-left without moving and the
	// trace ends on the top edge, so no closing digits follow
	if got := code.String(); got != "753" {
		t.Fatalf("unexpected code: %q", got)
	}
}

func TestEncodeKnownShapes(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name string
		rows []string
		want string
	}{
		{name: "horizontal pair", rows: []string{"##"}, want: "075431"},
		{name: "vertical pair", rows: []string{"#", "#"}, want: "765321"},
		{name: "square", rows: []string{"##", "##"}, want: "07654321"},
		{name: "diagonal pair", rows: []string{"#.", ".#"}, want: "77753331"},
		{name: "corner", rows: []string{"##", "#."}, want: "07555321"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, err := Encode(mustGrid(t, tc.rows...))
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if got := code.String(); got != tc.want {
				t.Fatalf("code mismatch: got=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestEncodeIgnoresSurroundingBackground(t *testing.T) {
	tight, err := Encode(mustGrid(t, "##", "#."))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	padded, err := Encode(mustGrid(t,
		".....",
		"..##.",
		"..#..",
		".....",
	))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if tight.String() != padded.String() {
		t.Fatalf("padding changed the code: %q vs %q", tight, padded)
	}
}

func TestEncodeNoForeground(t *testing.T) {
	if _, err := Encode(mustGrid(t, "...", "...")); !errors.Is(err, ErrNoForegroundPixel) {
		t.Fatalf("expected ErrNoForegroundPixel, got %v", err)
	}
	if _, err := Encode(grid.MustNew(0, 0)); !errors.Is(err, ErrNoForegroundPixel) {
		t.Fatalf("expected ErrNoForegroundPixel, got %v", err)
	}
}

func TestClosingSuffixFollowsEdgeRotation(t *testing.T) {
	// each closing digit turns the edge a quarter counter-clockwise until the
	// top edge is reached
	for _, start := range []Direction{Right, Up, Left, Down} {
		var want Code
		d := start
		for d != Up {
			want = append(want, (d+5)%numDirections)
			d = (d + 6) % numDirections
		}
		if diff := cmp.Diff(want, closing[start]); diff != "" {
			t.Fatalf("closing[%s] mismatch (-want +got):\n%s", start, diff)
		}
	}
}

func TestDecodeSinglePixel(t *testing.T) {
	g, err := Decode(MustParse("753"), Options{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]string{"#"}, g.Rows()); diff != "" {
		t.Fatalf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestMeasureExtent(t *testing.T) {
	ext, err := Measure(MustParse("77753331"))
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	want := Extent{Height: 2, Width: 2, Start: grid.Point{Y: 0, X: 0}}
	if ext != want {
		t.Fatalf("extent mismatch: got=%+v want=%+v", ext, want)
	}
}

var roundTripShapes = map[string][]string{
	"filled square": {
		"###",
		"###",
		"###",
	},
	"plus": {
		".#.",
		"###",
		".#.",
	},
	"ell": {
		"#..",
		"#..",
		"###",
	},
	"tee": {
		"###",
		".#.",
		".#.",
	},
	"left leaning triangle": {
		"...#",
		"..##",
		".###",
		"####",
	},
	"diamond": {
		"..#..",
		".###.",
		"#####",
		".###.",
		"..#..",
	},
	"staircase": {
		"#...",
		".#..",
		"..#.",
		"...#",
	},
	"blob": {
		"..###...",
		".#####..",
		"########",
		"..####..",
		"...##...",
	},
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	testlog.Start(t)
	for name, rows := range roundTripShapes {
		t.Run(name, func(t *testing.T) {
			g := mustGrid(t, rows...)
			code, err := Encode(g)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := Decode(code, Options{})
			if err != nil {
				t.Fatalf("decode %q: %v", code, err)
			}
			if diff := cmp.Diff(g.Crop().Rows(), got.Rows()); diff != "" {
				t.Fatalf("round trip mismatch for %q (-want +got):\n%s", code, diff)
			}
		})
	}
}

func TestDecodeOutlineOnlyLeavesInteriorEmpty(t *testing.T) {
	g := mustGrid(t,
		"###",
		"###",
		"###",
	)
	code, err := Encode(g)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(code, Options{OutlineOnly: true})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"###", "#.#", "###"}
	if diff := cmp.Diff(want, got.Rows()); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
}

// randomRowConvex builds a region with one run per row where consecutive
// runs share at least one column.
func randomRowConvex(r *rand.Rand) []string {
	const width = 9
	height := 1 + r.IntN(7)
	rows := make([]string, height)
	lo := r.IntN(width)
	hi := lo + r.IntN(width-lo)
	for y := 0; y < height; y++ {
		if y > 0 {
			nlo := r.IntN(hi + 1)
			nhi := max(lo, nlo) + r.IntN(width-max(lo, nlo))
			lo, hi = nlo, nhi
		}
		row := []byte(strings.Repeat(".", width))
		for x := lo; x <= hi; x++ {
			row[x] = '#'
		}
		rows[y] = string(row)
	}
	return rows
}

func TestDecodeEncodeRoundTripRandomRegions(t *testing.T) {
	testlog.Start(t)
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 300; i++ {
		rows := randomRowConvex(r)
		g := mustGrid(t, rows...)
		code, err := Encode(g)
		if err != nil {
			t.Fatalf("case %d encode: %v\n%s", i, err, strings.Join(rows, "\n"))
		}
		got, err := Decode(code, Options{})
		if err != nil {
			t.Fatalf("case %d decode %q: %v\n%s", i, code, err, strings.Join(rows, "\n"))
		}
		if diff := cmp.Diff(g.Crop().Rows(), got.Rows()); diff != "" {
			t.Fatalf("case %d mismatch for %q (-want +got):\n%s", i, code, diff)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		code Code
		want error
	}{
		{name: "empty", code: Code{}, want: ErrEmptyCode},
		{name: "rises above start", code: MustParse("2"), want: ErrNegativeYBound},
		{name: "half step above start", code: MustParse("1"), want: ErrNegativeYBound},
		{name: "flat code", code: MustParse("0"), want: ErrCodeOutOfBounds},
		{name: "reversal", code: MustParse("46"), want: ErrDiscontinuousCode},
		{name: "invalid direction", code: Code{9}, want: ErrMalformedDigit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.code, Options{}); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseCode(t *testing.T) {
	c, err := ParseCode([]byte("0754\r\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(Code{Right, DownRight, DownLeft, Left}, c); diff != "" {
		t.Fatalf("parse mismatch (-want +got):\n%s", diff)
	}

	_, err = ParseCode([]byte("0758"))
	if !errors.Is(err, ErrMalformedDigit) {
		t.Fatalf("expected ErrMalformedDigit, got %v", err)
	}
	var de *DigitError
	if !errors.As(err, &de) || de.Offset != 3 || de.Byte != '8' {
		t.Fatalf("unexpected digit error: %+v", de)
	}

	if _, err := ParseCode([]byte("07\n\n")); !errors.Is(err, ErrMalformedDigit) {
		t.Fatalf("only one trailing newline is tolerated, got %v", err)
	}
}

func TestCodeTextRoundTrip(t *testing.T) {
	in := MustParse("07654321")
	b, err := in.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Code
	if err := out.UnmarshalText(b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("text mismatch (-want +got):\n%s", diff)
	}
	if _, err := (Code{8}).MarshalText(); !errors.Is(err, ErrMalformedDigit) {
		t.Fatalf("expected ErrMalformedDigit, got %v", err)
	}
}
