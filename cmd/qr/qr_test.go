package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/unixdj/qrenc"
)

func dump(t *testing.T, f func(*qrenc.Code, io.Writer) error, c *qrenc.Code) string {
	t.Helper()
	var b bytes.Buffer
	if err := f(c, &b); err != nil {
		t.Fatal(err)
	}
	return b.String()
}

func TestRandr(t *testing.T) {
	c, err := qrenc.Encode("randr", qrenc.M)
	if err != nil {
		t.Fatal(err)
	}
	orig := dump(t, bits, c)
	lines := strings.Split(strings.TrimSuffix(orig, "\n"), "\n")

	g.cx, g.inc = 0, [2]int{1, 1}
	flip()
	flipped := dump(t, bits, randr(c))
	for i, s := range strings.Split(strings.TrimSuffix(flipped, "\n"), "\n") {
		for j := range s {
			if s[j] != lines[i][len(s)-1-j] {
				t.Fatalf("flip: line %d is %s, want mirror of %s",
					i, s, lines[i])
			}
		}
	}
	flip()
	if s := dump(t, bits, randr(c)); s != orig {
		t.Error("flipping twice changed the code")
	}

	for i := 0; i < 3; i++ {
		rotate()
		if s := dump(t, bits, randr(c)); s == orig {
			t.Errorf("rotated %d times: unchanged", i+1)
		}
	}
	rotate()
	if s := dump(t, bits, randr(c)); s != orig {
		t.Error("rotating 4 times changed the code")
	}
}

func TestWriters(t *testing.T) {
	c, err := qrenc.Encode("writers", qrenc.L)
	if err != nil {
		t.Fatal(err)
	}
	g.cx, g.inc, g.border, g.rev = 0, [2]int{1, 1}, 4, false

	b := dump(t, bits, c)
	if n := strings.Count(b, "\n"); n != c.Size {
		t.Errorf("bits: %d lines", n)
	}
	if !strings.HasPrefix(b, "1111111") {
		t.Errorf("bits: first line %q", b[:c.Size])
	}

	a := dump(t, ascii, c)
	if n := strings.Count(a, "\n"); n != c.Size+8 {
		t.Errorf("ascii: %d lines", n)
	}
	// first row of the top left position box after the quiet zone
	row := strings.Split(a, "\n")[4]
	if want := strings.Repeat(" ", 8) + strings.Repeat("#", 14); !strings.HasPrefix(row, want) {
		t.Errorf("ascii: position box row %q", row)
	}

	u := dump(t, utf8, c)
	if n := strings.Count(u, "\n"); n != (c.Size+9)/2 {
		t.Errorf("utf8: %d lines", n)
	}
	if u != c.String() {
		t.Error("utf8 differs from Code.String")
	}

	g.rev = true
	if bi := dump(t, bits, c); !strings.HasPrefix(bi, "0000000") {
		t.Errorf("bitsi: first line %q", bi[:c.Size])
	}
	g.rev = false
}
