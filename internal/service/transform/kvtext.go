package transform

import (
	"fmt"
	"strings"
)

// Lenient parser for loosely formatted key/value text, the semi-structured
// encoding the source services embed in single columns. The grammar:
//
//	top    := object | array | pairs
//	object := '{' pairs? '}'
//	array  := '[' (value (',' value)*)? ']'
//	pairs  := pair (',' pair)*
//	pair   := key ('=' | ':') value
//	key    := ident | quoted
//	value  := object | array | quoted | bare
//
// Quoted values accept single or double quotes; bare values run to the next
// comma or closing bracket and are kept as strings. Failure modes are
// explicit parse errors, not incidental rewrite side effects.

type kvParser struct {
	s string
	i int
}

// parseLenient parses s and returns a map[string]any or []any.
func parseLenient(s string) (any, error) {
	p := &kvParser{s: s}
	p.skipSpace()

	var v any
	var err error
	switch p.peek() {
	case '{':
		v, err = p.parseObject()
	case '[':
		v, err = p.parseArray()
	default:
		v, err = p.parsePairs()
	}
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if !p.eof() {
		return nil, fmt.Errorf("trailing input at offset %d", p.i)
	}
	return v, nil
}

func (p *kvParser) parseObject() (map[string]any, error) {
	p.i++ // consume '{'
	p.skipSpace()
	if p.peek() == '}' {
		p.i++
		return map[string]any{}, nil
	}
	obj, err := p.parsePairs()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != '}' {
		return nil, fmt.Errorf("expected '}' at offset %d", p.i)
	}
	p.i++
	return obj, nil
}

func (p *kvParser) parsePairs() (map[string]any, error) {
	obj := map[string]any{}
	for {
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if c := p.peek(); c != '=' && c != ':' {
			return nil, fmt.Errorf("expected '=' or ':' after key %q at offset %d", key, p.i)
		}
		p.i++
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj[key] = value

		p.skipSpace()
		if p.peek() != ',' {
			return obj, nil
		}
		p.i++
		p.skipSpace()
	}
}

func (p *kvParser) parseKey() (string, error) {
	p.skipSpace()
	if c := p.peek(); c == '\'' || c == '"' {
		return p.parseQuoted()
	}
	start := p.i
	for !p.eof() && isIdentChar(p.s[p.i]) {
		p.i++
	}
	if p.i == start {
		return "", fmt.Errorf("expected key at offset %d", start)
	}
	return p.s[start:p.i], nil
}

func (p *kvParser) parseValue() (any, error) {
	p.skipSpace()
	switch p.peek() {
	case '{':
		return p.parseObject()
	case '[':
		return p.parseArray()
	case '\'', '"':
		return p.parseQuoted()
	default:
		return p.parseBare()
	}
}

func (p *kvParser) parseArray() ([]any, error) {
	p.i++ // consume '['
	p.skipSpace()
	list := []any{}
	if p.peek() == ']' {
		p.i++
		return list, nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		list = append(list, v)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.i++
		case ']':
			p.i++
			return list, nil
		default:
			return nil, fmt.Errorf("expected ',' or ']' at offset %d", p.i)
		}
	}
}

func (p *kvParser) parseQuoted() (string, error) {
	quote := p.s[p.i]
	p.i++
	start := p.i
	for !p.eof() && p.s[p.i] != quote {
		p.i++
	}
	if p.eof() {
		return "", fmt.Errorf("unterminated string starting at offset %d", start-1)
	}
	s := p.s[start:p.i]
	p.i++ // consume closing quote
	return s, nil
}

// parseBare reads an unquoted scalar up to the next delimiter. The token is
// kept as a string; typing left looser than that belongs to the consumer.
func (p *kvParser) parseBare() (string, error) {
	start := p.i
	for !p.eof() {
		c := p.s[p.i]
		if c == ',' || c == '}' || c == ']' {
			break
		}
		p.i++
	}
	token := strings.TrimSpace(p.s[start:p.i])
	if token == "" {
		return "", fmt.Errorf("expected value at offset %d", start)
	}
	return token, nil
}

func (p *kvParser) skipSpace() {
	for !p.eof() && (p.s[p.i] == ' ' || p.s[p.i] == '\t' || p.s[p.i] == '\n' || p.s[p.i] == '\r') {
		p.i++
	}
}

// peek returns the next byte, or 0 at end of input.
func (p *kvParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.s[p.i]
}

func (p *kvParser) eof() bool { return p.i >= len(p.s) }

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
