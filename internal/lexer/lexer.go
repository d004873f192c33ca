// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/fox/blob/master/LICENSE.txt.

// Package lexer tokenizes the phfwd command stream: identifiers, phone
// numbers, the single-character operators, and the NEW/DEL keywords,
// skipping whitespace and non-nesting $$ ... $$ comments.
package lexer

import (
	"fmt"
	"strings"
)

// Kind identifies the category of a Token.
type Kind int

const (
	EOF Kind = iota
	Ident
	Number
	New
	Del
	Gt
	Question
	At
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case New:
		return "NEW"
	case Del:
		return "DEL"
	case Gt:
		return ">"
	case Question:
		return "?"
	case At:
		return "@"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit. Index is the 1-based offset of the
// token's first byte in the original input, used by the command layer to
// report operation errors against the operator's position.
type Token struct {
	Kind  Kind
	Text  string
	Index int
}

// Error is a lexical error: either a malformed token at a known 1-based
// index, or an end-of-input encountered where a token (or the closing
// delimiter of a comment) was required.
type Error struct {
	Index int // 1-based; zero means EOF
	EOF   bool
}

func (e *Error) Error() string {
	if e.EOF {
		return "lexer: unexpected EOF"
	}
	return fmt.Sprintf("lexer: unexpected character at index %d", e.Index)
}

// isAlphabetSymbol reports whether c is one of the 12 phfwd alphabet
// symbols, mirroring the rules phfwd.ValidNumber applies to a whole string.
func isAlphabetSymbol(c byte) bool {
	return c >= '0' && c <= ';'
}

func isLetter(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

func isAlnum(c byte) bool {
	return isLetter(c) || c >= '0' && c <= '9'
}

// Lexer tokenizes src one statement token at a time.
type Lexer struct {
	src string
	pos int // 0-based byte offset of the next unread byte
}

// NewLexer returns a Lexer reading from src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next token, skipping whitespace and comments. At the
// end of the input it returns a Token of Kind EOF and a nil error. A
// malformed token, a lone '$', or an unterminated comment yields a non-nil
// *Error.
func (l *Lexer) Next() (Token, error) {
	if err := l.skipIgnorable(); err != nil {
		return Token{}, err
	}
	if l.pos >= len(l.src) {
		return Token{Kind: EOF, Index: l.pos + 1}, nil
	}

	start := l.pos
	c := l.src[l.pos]

	switch {
	case c == '>':
		l.pos++
		return Token{Kind: Gt, Text: ">", Index: start + 1}, nil
	case c == '?':
		l.pos++
		return Token{Kind: Question, Text: "?", Index: start + 1}, nil
	case c == '@':
		l.pos++
		return Token{Kind: At, Text: "@", Index: start + 1}, nil
	case isAlphabetSymbol(c):
		for l.pos < len(l.src) && isAlphabetSymbol(l.src[l.pos]) {
			l.pos++
		}
		return Token{Kind: Number, Text: l.src[start:l.pos], Index: start + 1}, nil
	case isLetter(c):
		for l.pos < len(l.src) && isAlnum(l.src[l.pos]) {
			l.pos++
		}
		text := l.src[start:l.pos]
		switch strings.ToUpper(text) {
		case "NEW":
			return Token{Kind: New, Text: text, Index: start + 1}, nil
		case "DEL":
			return Token{Kind: Del, Text: text, Index: start + 1}, nil
		}
		return Token{Kind: Ident, Text: text, Index: start + 1}, nil
	default:
		return Token{}, &Error{Index: start + 1}
	}
}

// skipIgnorable advances past whitespace and $$ ... $$ comments.
func (l *Lexer) skipIgnorable() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.pos++
		case c == '$':
			if err := l.skipComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// skipComment consumes one $$ ... $$ block, starting at the first '$'.
// Comments do not nest; the opening '$' must be immediately followed by a
// second '$' or it's a lexical error. Inside the body, any character --
// including an unpaired '$' -- is ordinary comment text; only a true "$$"
// pair or EOF ends the scan.
func (l *Lexer) skipComment() error {
	openIdx := l.pos + 1
	if l.pos+1 >= len(l.src) || l.src[l.pos+1] != '$' {
		return &Error{Index: openIdx}
	}
	l.pos += 2

	readNext := func() (byte, bool) {
		if l.pos >= len(l.src) {
			return 0, false
		}
		c := l.src[l.pos]
		l.pos++
		return c, true
	}

	current, ok := readNext()
	for {
		if !ok {
			return &Error{EOF: true}
		}
		prev := current
		current, ok = readNext()
		if prev == '$' && current == '$' {
			return nil
		}
	}
}
