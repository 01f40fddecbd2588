// SPDX-License-Identifier: MIT

package technique

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Expr is a parsed s-expression: either an atom or a list.
type Expr struct {
	Atom   string
	List   []Expr
	IsList bool
}

// String renders e back to text with single spaces.
func (e Expr) String() string {
	if !e.IsList {
		return e.Atom
	}
	parts := make([]string, len(e.List))
	for i, c := range e.List {
		parts[i] = c.String()
	}

	return "(" + strings.Join(parts, " ") + ")"
}

// Tokenize splits text on whitespace, with parentheses as standalone tokens.
func Tokenize(s string) []string {
	s = strings.ReplaceAll(s, "(", " ( ")
	s = strings.ReplaceAll(s, ")", " ) ")

	return strings.Fields(s)
}

// ReadString tokenizes and reads exactly one expression.
// Trailing tokens after the first complete expression are rejected.
func ReadString(s string) (Expr, error) {
	tokens := Tokenize(s)
	e, rest, err := read(tokens)
	if err != nil {
		return Expr{}, err
	}
	if len(rest) > 0 {
		return Expr{}, errors.Wrapf(ErrSyntax, "unexpected trailing tokens %q", strings.Join(rest, " "))
	}

	return e, nil
}

// read is a recursive-descent reader returning the unread remainder.
func read(tokens []string) (Expr, []string, error) {
	if len(tokens) == 0 {
		return Expr{}, nil, errors.Wrap(ErrSyntax, "unexpected EOF")
	}
	tok, rest := tokens[0], tokens[1:]
	switch tok {
	case "(":
		list := Expr{IsList: true, List: []Expr{}}
		for {
			if len(rest) == 0 {
				return Expr{}, nil, errors.Wrap(ErrSyntax, "unexpected EOF: unterminated list")
			}
			if rest[0] == ")" {
				return list, rest[1:], nil
			}
			var (
				child Expr
				err   error
			)
			if child, rest, err = read(rest); err != nil {
				return Expr{}, nil, err
			}
			list.List = append(list.List, child)
		}
	case ")":
		return Expr{}, nil, errors.Wrap(ErrSyntax, "unexpected )")
	default:
		return Expr{Atom: tok}, rest, nil
	}
}
