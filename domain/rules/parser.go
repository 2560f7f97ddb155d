package rules

import (
	"fmt"
)

// Grammar, lowest precedence first:
//
//	or    := and ('||' and)*
//	and   := cmp ('&&' cmp)*
//	cmp   := unary (('==' | '!=' | '<' | '<=' | '>' | '>=') unary)?
//	unary := '!' unary | primary
//	primary := '(' or ')' | number | string | 'true' | 'false' | ident
//
// There are no function calls, no assignment, no concatenation. Evaluation
// touches nothing outside the supplied context.

type node interface{}

type binaryNode struct {
	op    string
	left  node
	right node
}

type notNode struct {
	operand node
}

type literalNode struct {
	value any
}

type identNode struct {
	path string
}

type parser struct {
	lex *lexer
	tok token
	err error
}

// Parse compiles a rule expression into its AST. The expression must already
// have passed SafeExpression.
func Parse(expr string) (node, error) {
	p := &parser{lex: &lexer{input: expr}}
	p.advance()
	n := p.parseOr()
	if p.err != nil {
		return nil, p.err
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("unexpected trailing %q", p.tok.text)
	}
	return n, nil
}

func (p *parser) advance() {
	if p.err != nil {
		return
	}
	tok, err := p.lex.next()
	if err != nil {
		p.err = err
		p.tok = token{kind: tokEOF}
		return
	}
	p.tok = tok
}

func (p *parser) parseOr() node {
	left := p.parseAnd()
	for p.err == nil && p.tok.kind == tokOp && p.tok.text == "||" {
		p.advance()
		right := p.parseAnd()
		left = &binaryNode{op: "||", left: left, right: right}
	}
	return left
}

func (p *parser) parseAnd() node {
	left := p.parseCmp()
	for p.err == nil && p.tok.kind == tokOp && p.tok.text == "&&" {
		p.advance()
		right := p.parseCmp()
		left = &binaryNode{op: "&&", left: left, right: right}
	}
	return left
}

func (p *parser) parseCmp() node {
	left := p.parseUnary()
	if p.err == nil && p.tok.kind == tokOp {
		switch p.tok.text {
		case "==", "!=", "<", "<=", ">", ">=":
			op := p.tok.text
			p.advance()
			right := p.parseUnary()
			return &binaryNode{op: op, left: left, right: right}
		}
	}
	return left
}

func (p *parser) parseUnary() node {
	if p.tok.kind == tokOp && p.tok.text == "!" {
		p.advance()
		return &notNode{operand: p.parseUnary()}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() node {
	switch p.tok.kind {
	case tokOp:
		if p.tok.text == "(" {
			p.advance()
			n := p.parseOr()
			if p.err != nil {
				return nil
			}
			if p.tok.kind != tokOp || p.tok.text != ")" {
				p.err = fmt.Errorf("missing closing parenthesis")
				return nil
			}
			p.advance()
			return n
		}
		p.err = fmt.Errorf("unexpected operator %q", p.tok.text)
		return nil
	case tokNumber:
		n := &literalNode{value: p.tok.num}
		p.advance()
		return n
	case tokString:
		n := &literalNode{value: p.tok.text}
		p.advance()
		return n
	case tokIdent:
		var n node
		switch p.tok.text {
		case "true":
			n = &literalNode{value: true}
		case "false":
			n = &literalNode{value: false}
		case "null":
			n = &literalNode{value: nil}
		default:
			n = &identNode{path: p.tok.text}
		}
		p.advance()
		return n
	default:
		p.err = fmt.Errorf("unexpected end of expression")
		return nil
	}
}
