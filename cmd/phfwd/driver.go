// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/fox/blob/master/LICENSE.txt.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mdudzinski/phfwd/internal/command"
	"github.com/mdudzinski/phfwd/internal/lexer"
	"github.com/mdudzinski/phfwd/internal/registry"
)

// Keys for the attributes the driver's logger attaches to each record.
const (
	// LoggerOperatorKey is the key used for the statement operator symbol
	// currently being evaluated. The associated [slog.Value] is a string.
	LoggerOperatorKey = "op"
	// LoggerIndexKey is the key used for a statement operator's 1-based
	// source index. The associated [slog.Value] is an int.
	LoggerIndexKey = "index"
)

// Driver reads statements from an input stream, evaluates them against a
// [registry.Registry], and reports results and errors per the command
// language's exit-code contract.
type Driver struct {
	in   io.Reader
	out  io.Writer
	diag io.Writer
	log  *slog.Logger
}

// Option configures a Driver at construction time.
type Option func(*Driver)

// WithOutput sets the stream query results are written to. Defaults to
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(d *Driver) {
		if w != nil {
			d.out = w
		}
	}
}

// WithDiagnostics sets the stream ERROR lines are written to. Defaults to
// os.Stderr.
func WithDiagnostics(w io.Writer) Option {
	return func(d *Driver) {
		if w != nil {
			d.diag = w
		}
	}
}

// WithLogger sets the [slog.Handler] the Driver logs parse and evaluation
// diagnostics through. Defaults to a no-op handler.
func WithLogger(h slog.Handler) Option {
	return func(d *Driver) {
		if h != nil {
			d.log = slog.New(h)
		}
	}
}

// NewDriver returns a Driver reading from r, writing query results to
// os.Stdout and ERROR lines to os.Stderr unless overridden by opts.
func NewDriver(r io.Reader, opts ...Option) *Driver {
	d := &Driver{
		in:   r,
		out:  os.Stdout,
		diag: os.Stderr,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run reads and evaluates every statement in the input stream until EOF
// or the first error, reporting exactly as spec'd: 0 on clean EOF, 1 on
// any reported lexical or operation error.
func (d *Driver) Run() int {
	raw, err := io.ReadAll(d.in)
	if err != nil {
		fmt.Fprintf(d.diag, "ERROR EOF\n")
		return 1
	}

	reg := registry.New()
	p := command.NewParser(string(raw))

	for {
		stmt, fb, err := p.Next()
		switch fb {
		case command.EOF:
			d.log.Debug("clean end of input")
			return 0
		case command.LexError:
			d.reportLexError(err)
			return 1
		}

		d.log.Debug("evaluating statement",
			slog.String(LoggerOperatorKey, stmt.Operator),
			slog.Int(LoggerIndexKey, stmt.OperatorIndex))

		if err := command.Eval(reg, stmt, func(line string) {
			fmt.Fprintln(d.out, line)
		}); err != nil {
			var opErr *command.OperationError
			if ok := asOperationError(err, &opErr); ok {
				d.log.Warn("operation failed",
					slog.String(LoggerOperatorKey, opErr.Operator),
					slog.Int(LoggerIndexKey, opErr.Index))
				fmt.Fprintf(d.diag, "ERROR %s %d\n", opErr.Operator, opErr.Index)
				return 1
			}
			fmt.Fprintf(d.diag, "ERROR EOF\n")
			return 1
		}
	}
}

func asOperationError(err error, target **command.OperationError) bool {
	if opErr, ok := err.(*command.OperationError); ok {
		*target = opErr
		return true
	}
	return false
}

func (d *Driver) reportLexError(err error) {
	var lexErr *lexer.Error
	if e, ok := err.(*lexer.Error); ok {
		lexErr = e
	}
	if lexErr == nil || lexErr.EOF {
		fmt.Fprintf(d.diag, "ERROR EOF\n")
		return
	}
	fmt.Fprintf(d.diag, "ERROR %d\n", lexErr.Index)
}
