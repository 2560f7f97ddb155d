package rules

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// The expression language is deliberately tiny: dotted identifiers, single-
// quoted strings, numbers, booleans, comparisons, && and ||, ! and parens.
// Anything else fails the scan and the owning rule is skipped.

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokNumber
	tokOp // == != < <= > >= && || ! ( )
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

// SafeExpression reports whether every character of the raw expression is on
// the allow-list. The scan runs before any parsing; a disallowed character
// (backticks, double quotes, semicolons, ...) means the rule fails closed.
func SafeExpression(expr string) bool {
	for _, r := range expr {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == ' ' || r == '\t' || r == '\r' || r == '\n':
		case strings.ContainsRune("().!<>=&|'.:-", r):
		default:
			return false
		}
	}
	return true
}

type lexer struct {
	input string
	pos   int
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token{kind: tokEOF}, nil
	}

	c := l.input[l.pos]
	switch {
	case c == '(' || c == ')':
		l.pos++
		return token{kind: tokOp, text: string(c)}, nil
	case c == '\'':
		return l.lexString()
	case c == '&' || c == '|':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == c {
			l.pos += 2
			return token{kind: tokOp, text: string(c) + string(c)}, nil
		}
		return token{}, fmt.Errorf("unexpected %q at %d", c, l.pos)
	case c == '=':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '=' {
			l.pos += 2
			return token{kind: tokOp, text: "=="}, nil
		}
		return token{}, fmt.Errorf("assignment is not supported")
	case c == '!':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '=' {
			l.pos += 2
			return token{kind: tokOp, text: "!="}, nil
		}
		l.pos++
		return token{kind: tokOp, text: "!"}, nil
	case c == '<' || c == '>':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '=' {
			op := string(c) + "="
			l.pos += 2
			return token{kind: tokOp, text: op}, nil
		}
		l.pos++
		return token{kind: tokOp, text: string(c)}, nil
	case c == '-' || (c >= '0' && c <= '9'):
		return l.lexNumber()
	case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		return l.lexIdent()
	default:
		return token{}, fmt.Errorf("unexpected %q at %d", c, l.pos)
	}
}

func (l *lexer) lexString() (token, error) {
	start := l.pos + 1
	end := strings.IndexByte(l.input[start:], '\'')
	if end < 0 {
		return token{}, fmt.Errorf("unterminated string literal")
	}
	l.pos = start + end + 1
	return token{kind: tokString, text: l.input[start : start+end]}, nil
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	if l.input[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			l.pos++
			continue
		}
		break
	}
	text := l.input[start:l.pos]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, fmt.Errorf("bad number %q", text)
	}
	return token{kind: tokNumber, text: text, num: n}, nil
}

func (l *lexer) lexIdent() (token, error) {
	start := l.pos
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '_' || c == '.' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			l.pos++
			continue
		}
		break
	}
	text := l.input[start:l.pos]
	if strings.HasSuffix(text, ".") || strings.Contains(text, "..") {
		return token{}, fmt.Errorf("bad identifier %q", text)
	}
	return token{kind: tokIdent, text: text}, nil
}
