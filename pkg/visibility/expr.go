package visibility

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dealdocs/termsheet/pkg/snapshot"
)

// The rule language is a small boolean expression grammar over
// snapshot fields:
//
//   - truthy checks: `escrowRequired`
//   - comparisons:   `exclusivityRequired == "yes"`, `depositAmount != 0`
//   - composition:   `a != "" && b == "yes"`, `!(a || b)`
//
// Snapshot values are text; comparisons against number or bool
// literals coerce the field value first.

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenEq
	tokenNeq
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	raw  string
}

type node interface {
	eval(snap snapshot.Snapshot) bool
}

// compile parses a rule into an evaluable tree. An empty rule compiles
// to nil, which callers treat as always-true.
func compile(rule string) (node, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return nil, nil
	}
	tokens, err := scan(trimmed)
	if err != nil {
		return nil, err
	}
	stream := &tokenStream{tokens: tokens}
	expr, err := parseOr(stream)
	if err != nil {
		return nil, err
	}
	if stream.pos < len(stream.tokens) {
		return nil, fmt.Errorf("unexpected token %q", stream.tokens[stream.pos].raw)
	}
	return expr, nil
}

func scan(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			tokens = append(tokens, token{kind: tokenLParen, raw: "("})
			i++
		case ch == ')':
			tokens = append(tokens, token{kind: tokenRParen, raw: ")"})
			i++
		case ch == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, token{kind: tokenNeq, raw: "!="})
				i += 2
			} else {
				tokens = append(tokens, token{kind: tokenNot, raw: "!"})
				i++
			}
		case ch == '=':
			if i+1 >= len(input) || input[i+1] != '=' {
				return nil, errors.New("unexpected '='; use '=='")
			}
			tokens = append(tokens, token{kind: tokenEq, raw: "=="})
			i += 2
		case ch == '&':
			if i+1 >= len(input) || input[i+1] != '&' {
				return nil, errors.New("unexpected '&'; use '&&'")
			}
			tokens = append(tokens, token{kind: tokenAnd, raw: "&&"})
			i += 2
		case ch == '|':
			if i+1 >= len(input) || input[i+1] != '|' {
				return nil, errors.New("unexpected '|'; use '||'")
			}
			tokens = append(tokens, token{kind: tokenOr, raw: "||"})
			i += 2
		case ch == '"' || ch == '\'':
			lit, next, err := scanString(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenString, raw: lit})
			i = next
		default:
			start := i
			for i < len(input) && !strings.ContainsRune(" \t\n\r()!=&|", rune(input[i])) {
				i++
			}
			raw := input[start:i]
			switch strings.ToLower(raw) {
			case "true", "false":
				tokens = append(tokens, token{kind: tokenBool, raw: strings.ToLower(raw)})
			default:
				if _, err := strconv.ParseFloat(raw, 64); err == nil {
					tokens = append(tokens, token{kind: tokenNumber, raw: raw})
				} else {
					tokens = append(tokens, token{kind: tokenIdent, raw: raw})
				}
			}
		}
	}
	return tokens, nil
}

func scanString(input string, start int) (string, int, error) {
	quote := input[start]
	var b strings.Builder
	i := start + 1
	for i < len(input) {
		ch := input[i]
		if ch == '\\' && i+1 < len(input) {
			b.WriteByte(input[i+1])
			i += 2
			continue
		}
		if ch == quote {
			return b.String(), i + 1, nil
		}
		b.WriteByte(ch)
		i++
	}
	return "", 0, errors.New("unterminated string literal")
}

type tokenStream struct {
	tokens []token
	pos    int
}

func (s *tokenStream) match(kind tokenKind) bool {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return false
	}
	s.pos++
	return true
}

func (s *tokenStream) consume(kind tokenKind) (token, bool) {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return token{}, false
	}
	out := s.tokens[s.pos]
	s.pos++
	return out, true
}

func parseOr(s *tokenStream) (node, error) {
	left, err := parseAnd(s)
	if err != nil {
		return nil, err
	}
	for s.match(tokenOr) {
		right, err := parseAnd(s)
		if err != nil {
			return nil, err
		}
		left = orNode{left, right}
	}
	return left, nil
}

func parseAnd(s *tokenStream) (node, error) {
	left, err := parseUnary(s)
	if err != nil {
		return nil, err
	}
	for s.match(tokenAnd) {
		right, err := parseUnary(s)
		if err != nil {
			return nil, err
		}
		left = andNode{left, right}
	}
	return left, nil
}

func parseUnary(s *tokenStream) (node, error) {
	if s.match(tokenNot) {
		inner, err := parseUnary(s)
		if err != nil {
			return nil, err
		}
		return notNode{inner}, nil
	}
	return parsePrimary(s)
}

func parsePrimary(s *tokenStream) (node, error) {
	if s.match(tokenLParen) {
		inner, err := parseOr(s)
		if err != nil {
			return nil, err
		}
		if !s.match(tokenRParen) {
			return nil, errors.New("missing closing ')'")
		}
		return inner, nil
	}

	ident, ok := s.consume(tokenIdent)
	if !ok {
		if s.pos >= len(s.tokens) {
			return nil, errors.New("empty expression")
		}
		return nil, fmt.Errorf("expected field name, got %q", s.tokens[s.pos].raw)
	}

	negate := false
	switch {
	case s.match(tokenEq):
	case s.match(tokenNeq):
		negate = true
	default:
		return truthyNode{field: ident.raw}, nil
	}

	if s.pos >= len(s.tokens) {
		return nil, errors.New("missing literal after comparison")
	}
	lit := s.tokens[s.pos]
	s.pos++
	switch lit.kind {
	case tokenString, tokenIdent:
		return compareNode{field: ident.raw, want: lit.raw, negate: negate, kind: litString}, nil
	case tokenNumber:
		return compareNode{field: ident.raw, want: lit.raw, negate: negate, kind: litNumber}, nil
	case tokenBool:
		return compareNode{field: ident.raw, want: lit.raw, negate: negate, kind: litBool}, nil
	default:
		return nil, fmt.Errorf("expected literal, got %q", lit.raw)
	}
}

type orNode struct{ left, right node }

func (n orNode) eval(snap snapshot.Snapshot) bool {
	return n.left.eval(snap) || n.right.eval(snap)
}

type andNode struct{ left, right node }

func (n andNode) eval(snap snapshot.Snapshot) bool {
	return n.left.eval(snap) && n.right.eval(snap)
}

type notNode struct{ inner node }

func (n notNode) eval(snap snapshot.Snapshot) bool {
	return !n.inner.eval(snap)
}

type truthyNode struct{ field string }

func (n truthyNode) eval(snap snapshot.Snapshot) bool {
	value := strings.TrimSpace(snap.Get(n.field))
	switch value {
	case "", "false", "no", "0":
		return false
	default:
		return true
	}
}

type litKind int

const (
	litString litKind = iota
	litNumber
	litBool
)

type compareNode struct {
	field  string
	want   string
	kind   litKind
	negate bool
}

func (n compareNode) eval(snap snapshot.Snapshot) bool {
	value := strings.TrimSpace(snap.Get(n.field))

	var equal bool
	switch n.kind {
	case litNumber:
		want, _ := strconv.ParseFloat(n.want, 64)
		got, _ := strconv.ParseFloat(value, 64)
		equal = got == want
	case litBool:
		want := n.want == "true"
		got, err := strconv.ParseBool(value)
		if err != nil {
			got = value != ""
		}
		equal = got == want
	default:
		equal = value == n.want
	}

	if n.negate {
		return !equal
	}
	return equal
}
