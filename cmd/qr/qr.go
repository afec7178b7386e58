package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/unixdj/qrenc"
	"github.com/unixdj/qrenc/coding"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
)

var g = struct {
	border   int            // quiet zone
	rev      bool           // reverse colours
	fn       string         // filename
	lev      qrenc.Level    // QR correction level
	ver      coding.Version // QR version, 0 for smallest
	format   int            // output format
	cx       int            // randr source X coordinate index in inc
	inc      [2]int         // randr source X,Y coordinate increments
	eightBit bool           // 8 bit input
	debug    bool           // print diagnostics
}{
	border: 4,
	inc:    [2]int{1, 1},
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [string ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:max(n, 0)]
		ml = 60
	}
	fmt.Fprint(w, "QR code generator\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
If no string is given, data is read from standard input and the final
newline is stripped.  Text is converted from UTF-8 to ISO 8859-1 and
encoded in byte mode in the smallest version that holds it.

`)
	cl.PrintOptions(w)
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qr version 0.9.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2024 Vadim Vygonets`)
	os.Exit(0)
}

func flip() {
	g.inc[0] = -g.inc[0]
}

func rotate() {
	g.cx ^= 1
	m := g.inc[0] * g.inc[1]
	g.inc[0] *= m
	g.inc[1] *= -m
}

var formats = []string{
	"utf8", "utf8i", "ascii", "asciii", "bits", "bitsi",
}

var encoders = [...]func(*qrenc.Code, io.Writer) error{
	utf8,
	ascii,
	bits,
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.Flag(opt(flip), 'f', `flip code horizontally; `+
		`to flip vertically, use "-frr"`).SetFlag()
	getopt.Flag(opt(rotate), 'r', `rotate code 90° counterclockwise; `+
		`-r and -f may be given multiple times, `+
		`order matters: "-fr" = "-rfrr" = "-rrrf"`).SetFlag()
	getopt.Flag(&g.eightBit, '8', "8 bit input, no conversion to Latin-1")
	getopt.Flag(&g.border, 'm', `quiet zone modules`, "margin")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	getopt.Flag(&g.debug, 'd', "print version, level, mask and "+
		"penalty to standard error")
	ver := getopt.Unsigned('v', 0, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 0, Max: 40},
		"QR code version, 0 for the smallest that fits", "ver")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"},
		qrenc.DefaultLevel.String(),
		"error correction level, lowest to highest", "l|m|q|h")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise bits`, "type")

	getopt.Parse()
	if g.border < 0 {
		fmt.Fprintln(os.Stderr, "-m must not be negative")
		usage()
	}
	g.ver = coding.Version(*ver)
	var err error
	if g.lev, err = qrenc.ParseLevel(*lev); err != nil {
		log.Fatalln(err)
	}
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			*ff = "utf8"
		} else {
			*ff = "bits"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i >> 1
			g.rev = i&1 != 0
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
}

func main() {
	log.SetFlags(0)
	parseFlags()

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}

	var (
		c   *qrenc.Code
		err error
	)
	switch {
	case g.ver != 0:
		data := []byte(s)
		if !g.eightBit {
			if data, err = qrenc.Latin1(s); err != nil {
				log.Fatalln(err)
			}
		}
		c, err = qrenc.EncodeVersion(data, g.ver, g.lev)
	case g.eightBit:
		c, err = qrenc.EncodeBytes([]byte(s), g.lev)
	default:
		c, err = qrenc.Encode(s, g.lev)
	}
	if err != nil {
		log.Fatalln(err)
	}
	if g.debug {
		log.Printf("version %v-%v, %d modules, mask %v, penalty %d",
			c.Version, c.Level, c.Size, c.Mask, c.Penalty)
	}
	write(c)
}

func write(c *qrenc.Code) {
	var w = os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatalln(err)
		}
	}
	var b bytes.Buffer
	err := encoders[g.format](randr(c), &b)
	if err == nil {
		_, err = b.WriteTo(w)
	}
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

// randr rotates and reflects c.
func randr(c *qrenc.Code) *qrenc.Code {
	cx, inc := g.cx, g.inc
	if cx == 0 && inc == [2]int{1, 1} {
		return c
	}
	m := make([]bool, 0, len(c.Modules))
	var coord [2]int
	siz := c.Size
	coord[cx^1] = (siz - 1) & inc[1]
	for y := 0; y < siz; y++ {
		coord[cx] = (siz - 1) & inc[0]
		for x := 0; x < siz; x++ {
			m = append(m, c.Black(coord[0], coord[1]))
			coord[cx] += inc[0]
		}
		coord[cx^1] += inc[1]
	}
	cc := *c
	cc.Modules = m
	return &cc
}

// utf8 draws two rows per line with block characters.  Light modules
// are drawn as blocks unless colours are reversed.
func utf8(c *qrenc.Code, w io.Writer) error {
	siz := c.Size
	bord := g.border
	blocks := [4]string{"█", "▀", "▄", " "}
	if g.rev {
		blocks = [4]string{" ", "▄", "▀", "█"}
	}
	var b strings.Builder
	for y := -bord; y < siz+bord; y += 2 {
		for x := -bord; x < siz+bord; x++ {
			n := 0
			if c.Black(x, y) {
				n = 2
			}
			if c.Black(x, y+1) {
				n++
			}
			b.WriteString(blocks[n])
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func ascii(c *qrenc.Code, w io.Writer) error {
	siz := c.Size
	bord := g.border
	pix := siz + 2*bord
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := -bord; y < siz+bord; y++ {
		for x := -bord; x < siz+bord; x++ {
			var p byte = ' '
			if c.Black(x, y) != g.rev {
				p = '#'
			}
			_ = b[i+1]
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}

// bits writes a line of 0 and 1 per row, 1 for dark, without quiet
// zone.
func bits(c *qrenc.Code, w io.Writer) error {
	siz := c.Size
	b := make([]byte, 0, (siz+1)*siz)
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			p := byte('0')
			if c.Black(x, y) != g.rev {
				p = '1'
			}
			b = append(b, p)
		}
		b = append(b, '\n')
	}
	_, err := w.Write(b)
	return err
}
