// The code in this package is derivative of https://gitlab.com/greyxor/slogor.
// Mount of this source code is governed by a MIT license that can be found
// at https://gitlab.com/greyxor/slogor/-/blob/main/LICENSE?ref_type=heads.

// Package prettylog implements a colorized, human-readable [slog.Handler]
// for the phfwd command-line driver's diagnostic stream.
package prettylog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/mdudzinski/phfwd/internal/ansi"
)

const (
	maxBufferSize     = 16 << 10 // 16384
	initialBufferSize = 1024
)

var _ slog.Handler = (*Handler)(nil)

var logBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, initialBufferSize)
		return &b
	},
}

var timeFormat = fmt.Sprintf("%s %s", time.DateOnly, time.TimeOnly)

func freeBuf(b *[]byte) {
	if cap(*b) <= maxBufferSize {
		*b = (*b)[:0]
		logBufPool.Put(b)
	}
}

type groupOrAttrs struct {
	attr  slog.Attr
	group string
}

// Handler is a [slog.Handler] that writes compact, colorized records:
// Error-level and higher records go to we, everything else to wo.
type Handler struct {
	we  io.Writer
	wo  io.Writer
	lvl slog.Leveler
	goa []groupOrAttrs
}

// Option configures a Handler at construction time.
type Option func(*Handler)

// WithLevel sets the minimum level the Handler reports. level must parse
// via [slog.Level.UnmarshalText] ("DEBUG", "INFO", "WARN", "ERROR"); an
// empty or unrecognized value leaves the default (Info) in place.
func WithLevel(level string) Option {
	return func(h *Handler) {
		if level == "" {
			return
		}
		var l slog.Level
		if err := l.UnmarshalText([]byte(level)); err == nil {
			h.lvl = l
		}
	}
}

// WithOutputWriter overrides the writer used for records below
// [slog.LevelError]. Defaults to the same writer passed to NewHandler.
func WithOutputWriter(w io.Writer) Option {
	return func(h *Handler) {
		if w != nil {
			h.wo = w
		}
	}
}

// NewHandler returns a Handler writing Error-and-above records to w and
// everything else to w as well unless overridden by [WithOutputWriter].
func NewHandler(w io.Writer, opts ...Option) *Handler {
	h := &Handler{
		we:  w,
		wo:  w,
		lvl: slog.LevelInfo,
		goa: make([]groupOrAttrs, 0),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	bufp := logBufPool.Get().(*[]byte)
	buf := *bufp

	defer func() {
		*bufp = buf
		freeBuf(bufp)
	}()

	buf = append(buf, "[PHFWD] "...)

	if !record.Time.IsZero() {
		buf = append(buf, ansi.Faint...)
		buf = append(buf, record.Time.Format(timeFormat)...)
		buf = append(buf, ansi.NormalIntensity...)
		buf = append(buf, " "...)
	}

	buf = append(buf, "| "...)
	switch record.Level {
	case slog.LevelInfo:
		buf = append(buf, ansi.FgGreen...)
		buf = append(buf, record.Level.String()...)
		buf = append(buf, " "...)
	case slog.LevelError:
		buf = append(buf, ansi.FgRed...)
		buf = append(buf, record.Level.String()...)
	case slog.LevelWarn:
		buf = append(buf, ansi.FgYellow...)
		buf = append(buf, record.Level.String()...)
		buf = append(buf, " "...)
	case slog.LevelDebug:
		buf = append(buf, ansi.FgMagenta...)
		buf = append(buf, record.Level.String()...)
	}

	buf = append(buf, ansi.Reset...)
	buf = append(buf, " | "...)
	buf = append(buf, record.Message...)
	buf = append(buf, " | "...)

	lastGroup := ""
	for _, goa := range h.goa {
		switch {
		case goa.group != "":
			lastGroup += goa.group + "."
		default:
			attr := goa.attr
			if lastGroup != "" {
				attr.Key = lastGroup + attr.Key
			}
			buf = appendAttr(record.Level, buf, attr)
		}
	}

	if record.NumAttrs() > 0 {
		record.Attrs(func(attr slog.Attr) bool {
			if lastGroup != "" {
				attr.Key = lastGroup + attr.Key
			}
			buf = appendAttr(record.Level, buf, attr)
			return true
		})
	}

	buf[len(buf)-1] = '\n'

	if record.Level >= slog.LevelError {
		if _, err := h.we.Write(buf); err != nil {
			return fmt.Errorf("failed to write buffer: %w", err)
		}
	} else {
		if _, err := h.wo.Write(buf); err != nil {
			return fmt.Errorf("failed to write buffer: %w", err)
		}
	}

	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]groupOrAttrs, len(attrs))
	for i, attr := range attrs {
		newAttrs[i] = groupOrAttrs{attr: attr}
	}

	return &Handler{
		we:  h.we,
		wo:  h.wo,
		lvl: h.lvl,
		goa: append(h.goa, newAttrs...),
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		we:  h.we,
		wo:  h.wo,
		lvl: h.lvl,
		goa: append(h.goa, groupOrAttrs{group: name}),
	}
}

// appendAttr appends the attribute to the buffer, picking a dedicated color
// for the keys op, index, database and error, and cyan for any other key.
func appendAttr(level slog.Level, buf []byte, attr slog.Attr) []byte {
	attr.Value = attr.Value.Resolve()

	if attr.Equal(slog.Attr{}) {
		return buf
	}

	buf = append(buf, ansi.Faint...)
	buf = append(buf, ansi.Bold...)

	buf = append(buf, attr.Key...)
	buf = append(buf, "="...)
	buf = append(buf, ansi.NormalIntensity...)

	var addWhitespace bool
	switch attr.Key {
	case "op":
		buf = append(buf, ansi.BgBlue...)
		addWhitespace = true
	case "index":
		buf = append(buf, levelColor(level)...)
		addWhitespace = true
	case "database":
		buf = append(buf, ansi.FgYellow...)
	case "error":
		buf = append(buf, ansi.FgRed...)
	default:
		buf = append(buf, ansi.FgCyan...)
	}

	if addWhitespace {
		buf = append(buf, " "+attr.Value.String()+" "...)
	} else {
		buf = append(buf, attr.Value.String()...)
	}
	buf = append(buf, ansi.Reset...)
	buf = append(buf, " "...)

	return buf
}

func levelColor(level slog.Level) string {
	switch level {
	case slog.LevelInfo:
		return ansi.BgBlue
	case slog.LevelWarn:
		return ansi.BgYellow
	case slog.LevelError:
		return ansi.BgRed
	default:
		return ansi.BgMagenta
	}
}
