// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

var (
	errUnterminatedSingle = errors.New("unterminated single-quoted value")
	errUnterminatedDouble = errors.New("unterminated double-quoted value")
	errMalformedLine      = errors.New("line is not an assignment, comment or blank")
	errTrailingGarbage    = errors.New("unexpected text after quoted value")
)

// ParseError occurs when a source does not conform to the ".env" syntax.
//
// Unterminated quoting is always fatal. Lines which simply fail to parse
// as an assignment are skipped unless [FailOnMalformed] is set.
type ParseError struct {
	// Path of the file being parsed. Empty when the
	// source is not file backed.
	Path string

	// Line on which the offending construct began, 1-based.
	Line int

	Cause error
}

// Error implements the error interface.
func (e ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse: line %d: %s", e.Line, e.Cause)
	}
	return fmt.Sprintf("parse %s: line %d: %s", e.Path, e.Line, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e ParseError) Unwrap() error {
	return e.Cause
}

// Option configures parsing and source behavior.
type Option func(*options)

type options struct {
	optional        bool
	failOnMalformed bool
	fsys            fs.FS
}

// FailOnMalformed turns lines which cannot be parsed as an assignment,
// comment or blank line into fatal [ParseError]s instead of skipping them.
func FailOnMalformed() Option {
	return func(o *options) {
		o.failOnMalformed = true
	}
}

// Parse reads ".env" syntax from r into a flat mapping.
//
// Duplicate keys resolve to the last occurrence. Variable references in
// double quoted values resolve against assignments made earlier in r;
// unresolved references become the empty string. To interpolate against
// previously resolved sources, compose sources with [Resolve] instead.
func Parse(r io.Reader, opts ...Option) (Map, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseBytes(b, "", nil, o)
}

type lookupFunc func(name string) (string, bool)

func parseBytes(src []byte, path string, known lookupFunc, o options) (Map, error) {
	p := &parser{
		src:    bytes.TrimPrefix(src, []byte("\ufeff")),
		line:   1,
		path:   path,
		strict: o.failOnMalformed,
		known:  known,
		out:    make(Map),
	}
	err := p.run()
	if err != nil {
		return nil, err
	}
	return p.out, nil
}

type parser struct {
	src    []byte
	pos    int
	line   int
	path   string
	strict bool
	known  lookupFunc
	out    Map
}

func (p *parser) run() error {
	for {
		p.skipBlank()
		if p.eof() {
			return nil
		}
		if p.src[p.pos] == '#' {
			p.skipToLineEnd()
			continue
		}

		err := p.assignment()
		if err != nil {
			return err
		}
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

// skipBlank consumes whitespace, including newlines.
func (p *parser) skipBlank() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\r':
			p.pos++
		case '\n':
			p.pos++
			p.line++
		default:
			return
		}
	}
}

// skipSpace consumes whitespace within a line and reports
// whether anything was consumed.
func (p *parser) skipSpace() bool {
	skipped := false
	for !p.eof() {
		c := p.src[p.pos]
		if c != ' ' && c != '\t' && c != '\r' {
			return skipped
		}
		p.pos++
		skipped = true
	}
	return skipped
}

// skipToLineEnd consumes up to and including the next newline.
func (p *parser) skipToLineEnd() {
	for !p.eof() {
		c := p.src[p.pos]
		p.pos++
		if c == '\n' {
			p.line++
			return
		}
	}
}

// malformed reports cause as a fatal error under [FailOnMalformed] and
// otherwise recovers by discarding the remainder of the current line.
func (p *parser) malformed(line int, cause error) error {
	if p.strict {
		return ParseError{Path: p.path, Line: line, Cause: cause}
	}
	p.skipToLineEnd()
	return nil
}

func (p *parser) assignment() error {
	startLine := p.line

	key := p.scanKey()
	if key == "" {
		return p.malformed(startLine, errMalformedLine)
	}
	if key == "export" && !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		mark := p.pos
		p.skipSpace()
		k := p.scanKey()
		if k != "" {
			key = k
		} else {
			p.pos = mark
		}
	}

	p.skipSpace()
	if p.eof() || p.src[p.pos] != '=' {
		return p.malformed(startLine, errMalformedLine)
	}
	p.pos++

	value, err := p.scanValue()
	if err != nil {
		var pe ParseError
		if errors.As(err, &pe) {
			return err
		}
		return p.malformed(p.line, err)
	}

	p.out[key] = value
	return nil
}

func (p *parser) scanKey() string {
	start := p.pos
	if p.eof() || !isKeyStart(p.src[p.pos]) {
		return ""
	}
	p.pos++
	for !p.eof() && isKeyChar(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func isKeyStart(c byte) bool {
	return c == '_' || ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

func isKeyChar(c byte) bool {
	return isKeyStart(c) || ('0' <= c && c <= '9')
}

func (p *parser) scanValue() (string, error) {
	spaceBefore := p.skipSpace()
	if p.eof() {
		return "", nil
	}

	switch p.src[p.pos] {
	case '\n':
		return "", nil
	case '\'':
		return p.scanSingleQuoted()
	case '"':
		return p.scanDoubleQuoted()
	default:
		return p.scanUnquoted(spaceBefore), nil
	}
}

// scanUnquoted consumes the remainder of the line, strips any inline
// comment and trims surrounding whitespace. A '#' only begins a comment
// when preceded by whitespace.
func (p *parser) scanUnquoted(spaceBefore bool) string {
	start := p.pos
	for !p.eof() && p.src[p.pos] != '\n' {
		p.pos++
	}
	seg := p.src[start:p.pos]

	cut := len(seg)
	for i := range seg {
		if seg[i] != '#' {
			continue
		}
		if (i == 0 && spaceBefore) || (i > 0 && (seg[i-1] == ' ' || seg[i-1] == '\t')) {
			cut = i
			break
		}
	}
	return string(bytes.TrimRight(seg[:cut], " \t\r"))
}

func (p *parser) scanSingleQuoted() (string, error) {
	openLine := p.line
	p.pos++
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if c == '\'' {
			val := string(p.src[start:p.pos])
			p.pos++
			return p.afterQuote(val)
		}
		if c == '\n' {
			p.line++
		}
		p.pos++
	}
	return "", ParseError{Path: p.path, Line: openLine, Cause: errUnterminatedSingle}
}

func (p *parser) scanDoubleQuoted() (string, error) {
	openLine := p.line
	p.pos++

	var b strings.Builder
	for !p.eof() {
		switch c := p.src[p.pos]; c {
		case '"':
			p.pos++
			return p.afterQuote(b.String())
		case '\\':
			if p.pos+1 >= len(p.src) {
				p.pos++
				continue
			}
			switch esc := p.src[p.pos+1]; esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case '$':
				b.WriteByte('$')
			default:
				// unrecognized escapes pass through untouched
				b.WriteByte('\\')
				b.WriteByte(esc)
				if esc == '\n' {
					p.line++
				}
			}
			p.pos += 2
		case '$':
			p.interpolate(&b)
		case '\n':
			b.WriteByte('\n')
			p.line++
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", ParseError{Path: p.path, Line: openLine, Cause: errUnterminatedDouble}
}

// afterQuote validates that only whitespace or an inline comment follows
// a closing quote on its line.
func (p *parser) afterQuote(val string) (string, error) {
	p.skipSpace()
	if p.eof() || p.src[p.pos] == '\n' {
		return val, nil
	}
	if p.src[p.pos] == '#' {
		p.skipToLineEnd()
		return val, nil
	}
	return "", errTrailingGarbage
}

// interpolate substitutes a ${NAME} or $NAME reference. Malformed
// references are kept literally; well formed references to unknown
// names substitute the empty string.
func (p *parser) interpolate(b *strings.Builder) {
	if p.pos+1 < len(p.src) && p.src[p.pos+1] == '{' {
		i := p.pos + 2
		j := i
		for j < len(p.src) && isKeyChar(p.src[j]) {
			j++
		}
		if j > i && isKeyStart(p.src[i]) && j < len(p.src) && p.src[j] == '}' {
			b.WriteString(p.lookup(string(p.src[i:j])))
			p.pos = j + 1
			return
		}
		b.WriteByte('$')
		p.pos++
		return
	}

	i := p.pos + 1
	if i < len(p.src) && isKeyStart(p.src[i]) {
		j := i + 1
		for j < len(p.src) && isKeyChar(p.src[j]) {
			j++
		}
		b.WriteString(p.lookup(string(p.src[i:j])))
		p.pos = j
		return
	}

	b.WriteByte('$')
	p.pos++
}

// lookup resolves a reference against assignments made earlier in this
// source before falling back to values from strictly earlier sources.
func (p *parser) lookup(name string) string {
	v, ok := p.out[name]
	if ok {
		return v
	}
	if p.known != nil {
		v, ok = p.known(name)
		if ok {
			return v
		}
	}
	return ""
}
