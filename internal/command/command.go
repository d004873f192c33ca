// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/fox/blob/master/LICENSE.txt.

// Package command parses and evaluates the phfwd command language: the
// seven statement shapes built on NEW/DEL, the redirect operator '>', and
// the query operators '?' and '@'. Evaluation drives a
// [registry.Registry] through exactly the five public engine operations
// plus the result-sequence accessors.
package command

import (
	"fmt"

	"github.com/mdudzinski/phfwd/internal/lexer"
	"github.com/mdudzinski/phfwd/internal/registry"
)

// Kind identifies which of the seven statement shapes a Statement holds.
type Kind int

const (
	// SelectDatabase is "NEW id".
	SelectDatabase Kind = iota
	// DeleteDatabase is "DEL id".
	DeleteDatabase
	// RemovePrefix is "DEL num".
	RemovePrefix
	// Redirect is "num > num".
	Redirect
	// Get is "num ?".
	Get
	// Reverse is "? num".
	Reverse
	// NonTrivialCount is "@ num".
	NonTrivialCount
)

// Statement is one parsed command-language statement, ready for
// evaluation against a [registry.Registry].
type Statement struct {
	Kind Kind
	// Operator is the operator symbol used in operation-error reporting:
	// "NEW", "DEL", ">", "?", or "@".
	Operator string
	// OperatorIndex is the 1-based index of the operator's first
	// character in the source, used in operation-error reporting.
	OperatorIndex int

	Ident string // SelectDatabase, DeleteDatabase
	A, B  string // Redirect: A > B. RemovePrefix/Get/Reverse/NonTrivialCount: A only.
}

// OperationError reports that a syntactically valid statement failed to
// evaluate: the caller formats it as "ERROR <op> <operator-index>".
type OperationError struct {
	Operator string
	Index    int
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("command: operation error at %s (index %d)", e.Operator, e.Index)
}

// Parser reads statements one at a time from a command-language source.
type Parser struct {
	lex *lexer.Lexer
}

// NewParser returns a Parser reading statements from src.
func NewParser(src string) *Parser {
	return &Parser{lex: lexer.NewLexer(src)}
}

// Feedback mirrors the three-way outcome of reading one statement: an
// lexical or syntax error (LexError), a clean end of input (EOF), or
// success (OK).
type Feedback int

const (
	OK Feedback = iota
	EOF
	LexError
)

// Next reads and parses the next statement. On LexError the returned
// error is the underlying *lexer.Error.
func (p *Parser) Next() (Statement, Feedback, error) {
	first, err := p.lex.Next()
	if err != nil {
		return Statement{}, LexError, err
	}
	if first.Kind == lexer.EOF {
		return Statement{}, EOF, nil
	}

	switch first.Kind {
	case lexer.New:
		id, err := p.expectIdent()
		if err != nil {
			return Statement{}, LexError, err
		}
		return Statement{Kind: SelectDatabase, Operator: "NEW", OperatorIndex: first.Index, Ident: id}, OK, nil
	case lexer.Del:
		tok, err := p.lex.Next()
		if err != nil {
			return Statement{}, LexError, err
		}
		switch tok.Kind {
		case lexer.Ident:
			return Statement{Kind: DeleteDatabase, Operator: "DEL", OperatorIndex: first.Index, Ident: tok.Text}, OK, nil
		case lexer.Number:
			return Statement{Kind: RemovePrefix, Operator: "DEL", OperatorIndex: first.Index, A: tok.Text}, OK, nil
		case lexer.EOF:
			return Statement{}, LexError, &lexer.Error{EOF: true}
		default:
			return Statement{}, LexError, &lexer.Error{Index: tok.Index}
		}
	case lexer.Question:
		num, err := p.expectNumber()
		if err != nil {
			return Statement{}, LexError, err
		}
		return Statement{Kind: Reverse, Operator: "?", OperatorIndex: first.Index, A: num}, OK, nil
	case lexer.At:
		num, err := p.expectNumber()
		if err != nil {
			return Statement{}, LexError, err
		}
		return Statement{Kind: NonTrivialCount, Operator: "@", OperatorIndex: first.Index, A: num}, OK, nil
	case lexer.Number:
		tok, err := p.lex.Next()
		if err != nil {
			return Statement{}, LexError, err
		}
		switch tok.Kind {
		case lexer.Question:
			return Statement{Kind: Get, Operator: "?", OperatorIndex: tok.Index, A: first.Text}, OK, nil
		case lexer.Gt:
			target, err := p.expectNumber()
			if err != nil {
				return Statement{}, LexError, err
			}
			return Statement{Kind: Redirect, Operator: ">", OperatorIndex: tok.Index, A: first.Text, B: target}, OK, nil
		case lexer.EOF:
			return Statement{}, LexError, &lexer.Error{EOF: true}
		default:
			return Statement{}, LexError, &lexer.Error{Index: tok.Index}
		}
	default:
		return Statement{}, LexError, &lexer.Error{Index: first.Index}
	}
}

func (p *Parser) expectIdent() (string, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return "", err
	}
	if tok.Kind != lexer.Ident {
		if tok.Kind == lexer.EOF {
			return "", &lexer.Error{EOF: true}
		}
		return "", &lexer.Error{Index: tok.Index}
	}
	return tok.Text, nil
}

func (p *Parser) expectNumber() (string, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return "", err
	}
	if tok.Kind != lexer.Number {
		if tok.Kind == lexer.EOF {
			return "", &lexer.Error{EOF: true}
		}
		return "", &lexer.Error{Index: tok.Index}
	}
	return tok.Text, nil
}

// Eval executes s against reg, writing query output (from Get, Reverse,
// and NonTrivialCount) to emit. It returns an *OperationError if s cannot
// be performed: an invalid number, identical source/target on a
// redirect, or no database selected when one is required.
func Eval(reg *registry.Registry, s Statement, emit func(string)) error {
	switch s.Kind {
	case SelectDatabase:
		reg.Select(s.Ident)
		return nil
	case DeleteDatabase:
		reg.Delete(s.Ident)
		return nil
	case RemovePrefix:
		eng, ok := reg.Current()
		if !ok {
			return &OperationError{Operator: s.Operator, Index: s.OperatorIndex}
		}
		eng.Remove(s.A)
		return nil
	case Redirect:
		eng, ok := reg.Current()
		if !ok {
			return &OperationError{Operator: s.Operator, Index: s.OperatorIndex}
		}
		if !eng.Add(s.A, s.B) {
			return &OperationError{Operator: s.Operator, Index: s.OperatorIndex}
		}
		return nil
	case Get:
		eng, ok := reg.Current()
		if !ok {
			return &OperationError{Operator: s.Operator, Index: s.OperatorIndex}
		}
		result := eng.Get(s.A)
		text, _ := result.At(0)
		emit(text)
		return nil
	case Reverse:
		eng, ok := reg.Current()
		if !ok {
			return &OperationError{Operator: s.Operator, Index: s.OperatorIndex}
		}
		for v := range eng.Reverse(s.A).All() {
			emit(v)
		}
		return nil
	case NonTrivialCount:
		eng, ok := reg.Current()
		if !ok {
			return &OperationError{Operator: s.Operator, Index: s.OperatorIndex}
		}
		length := len(s.A) - 12
		if length < 0 {
			length = 0
		}
		emit(fmt.Sprintf("%d", eng.NonTrivialCount(s.A, length)))
		return nil
	default:
		return fmt.Errorf("command: unknown statement kind %d", s.Kind)
	}
}
