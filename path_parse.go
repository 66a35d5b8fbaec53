package flatten

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

func skipWhitespace(b []byte) int {
	i := 0
	for i < len(b) && isWhitespace(b[i]) {
		i++
	}
	return i
}

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ',' || isWhitespace(path[i])) {
		i++
	}
	return i
}

func parseNum(path []byte) (float64, int) {
	i := skipCommaWhitespace(path)
	f, n := strconv.ParseFloat(path[i:])
	if n == 0 {
		return 0.0, 0
	}
	return f, i + n
}

// parseFlag parses the single-character large-arc and sweep flags, which may be directly followed by a number as in "a5 5 0 1050 50".
func parseFlag(path []byte) (float64, int) {
	i := skipCommaWhitespace(path)
	if i < len(path) && (path[i] == '0' || path[i] == '1') {
		return float64(path[i] - '0'), i + 1
	}
	return 0.0, 0
}

// argCount returns the number of arguments of one coordinate group of cmd, or -1 for unknown commands.
func argCount(cmd byte) int {
	switch cmd {
	case 'Z', 'z':
		return 0
	case 'H', 'h', 'V', 'v':
		return 1
	case 'M', 'm', 'L', 'l', 'T', 't':
		return 2
	case 'S', 's', 'Q', 'q':
		return 4
	case 'C', 'c':
		return 6
	case 'A', 'a':
		return 7
	}
	return -1
}

func isLetter(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z'
}

// ParsePath parses path data. Every coordinate group becomes its own command, so that "M0 0 10 0 10 10" yields a moveto followed by two linetos. A relative command at the start of a subpath, that is the first command or the one following a closepath, is resolved to its absolute form.
func ParsePath(d string) (*Path, error) {
	path := []byte(d)
	p := &Path{abs: indexSet{}}

	var prevCmd byte
	i := skipWhitespace(path)
	for i < len(path) {
		cmd := prevCmd
		if isLetter(path[i]) {
			cmd = path[i]
			i++
		} else if prevCmd == 0 {
			return nil, &ParseError{Attr: "d", Value: d, Err: fmt.Errorf("expected command at position %d", i)}
		} else if prevCmd == 'Z' || prevCmd == 'z' {
			return nil, &ParseError{Attr: "d", Value: d, Err: fmt.Errorf("unexpected number after closepath at position %d", i)}
		}

		n := argCount(cmd)
		if n == -1 {
			return nil, &ParseError{Attr: "d", Value: d, Err: fmt.Errorf("unknown command %c", cmd)}
		}
		args := make([]float64, n)
		for k := 0; k < n; k++ {
			var m int
			if (cmd == 'A' || cmd == 'a') && (k == 3 || k == 4) {
				args[k], m = parseFlag(path[i:])
			} else {
				args[k], m = parseNum(path[i:])
			}
			if m == 0 {
				return nil, &ParseError{Attr: "d", Value: d, Err: fmt.Errorf("expected %d arguments for command %c at position %d", n, cmd, i)}
			}
			i += m
		}
		p.Cmds = append(p.Cmds, PathCmd{cmd, args})

		// implicit repetition of a moveto is a lineto
		if cmd == 'M' {
			cmd = 'L'
		} else if cmd == 'm' {
			cmd = 'l'
		}
		prevCmd = cmd

		i += skipWhitespace(path[i:])
		if i < len(path) && path[i] == ',' {
			i++
			i += skipWhitespace(path[i:])
			if i == len(path) || isLetter(path[i]) {
				return nil, &ParseError{Attr: "d", Value: d, Err: fmt.Errorf("unexpected comma at position %d", i)}
			}
		}
	}
	p.resolveAnchors()
	return p, nil
}

// MustParsePath is like ParsePath but panics on error.
func MustParsePath(d string) *Path {
	p, err := ParsePath(d)
	if err != nil {
		panic(err)
	}
	return p
}

// resolveAnchors rewrites relative commands that open a subpath into absolute ones and fills the absolute index set.
func (p *Path) resolveAnchors() {
	var cur, start Point
	atStart := true
	for i := range p.Cmds {
		c := p.Cmds[i]
		if c.Cmd == 'Z' || c.Cmd == 'z' {
			cur = start
			atStart = true
			continue
		}

		if atStart && isRelative(c.Cmd) {
			c = c.toAbsolute(cur)
			p.Cmds[i] = c
		}
		if !isRelative(c.Cmd) {
			p.abs[i] = struct{}{}
		}
		cur = c.end(cur)
		if c.Cmd == 'M' || c.Cmd == 'm' {
			start = cur
		}
		atStart = false
	}
}
