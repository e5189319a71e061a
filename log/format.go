// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/big"
	"reflect"
	"strconv"
	"time"
	"unicode/utf8"
)

const (
	timeFormat     = "2006-01-02T15:04:05-0700"
	termTimeFormat = "01-02|15:04:05.000"
	termMsgJust    = 40
)

var spaces = bytes.Repeat([]byte{' '}, termMsgJust)

func levelColor(l slog.Level) string {
	switch {
	case l >= LevelCrit:
		return "\x1b[35m"
	case l >= LevelError:
		return "\x1b[31m"
	case l >= LevelWarn:
		return "\x1b[33m"
	case l >= LevelInfo:
		return "\x1b[32m"
	case l >= LevelDebug:
		return "\x1b[36m"
	default:
		return "\x1b[34m"
	}
}

func (h *TerminalHandler) format(buf []byte, r slog.Record, usecolor bool) []byte {
	b := bytes.NewBuffer(buf)

	color := ""
	if usecolor {
		color = levelColor(r.Level)
		b.WriteString(color)
		b.WriteString(LevelAlignedString(r.Level))
		b.WriteString("\x1b[0m")
	} else {
		b.WriteString(LevelAlignedString(r.Level))
	}
	b.WriteByte('[')
	b.WriteString(r.Time.Format(termTimeFormat))
	b.WriteString("] ")

	msg := escapeMessage(r.Message)
	b.WriteString(msg)
	if (r.NumAttrs()+len(h.attrs)) > 0 && len(msg) < termMsgJust {
		b.Write(spaces[:termMsgJust-len(msg)])
	}

	h.formatAttributes(b, r, color)
	return b.Bytes()
}

func (h *TerminalHandler) formatAttributes(b *bytes.Buffer, r slog.Record, color string) {
	write := func(attr slog.Attr, last bool) {
		b.WriteByte(' ')
		if color != "" {
			b.WriteString(color)
			b.WriteString(escapeString(attr.Key))
			b.WriteString("\x1b[0m=")
		} else {
			b.WriteString(escapeString(attr.Key))
			b.WriteByte('=')
		}
		val := formatValue(attr.Value)
		b.WriteString(val)

		// align columns except for the last attribute
		padding := h.fieldPadding[attr.Key]
		length := utf8.RuneCountInString(val)
		if padding < length && length <= termMsgJust {
			padding = length
			h.fieldPadding[attr.Key] = padding
		}
		if !last && padding > length {
			b.Write(spaces[:padding-length])
		}
	}

	n := 0
	total := r.NumAttrs() + len(h.attrs)
	for _, attr := range h.attrs {
		n++
		write(attr, n == total)
	}
	r.Attrs(func(attr slog.Attr) bool {
		n++
		write(attr, n == total)
		return true
	})
	b.WriteByte('\n')
}

func formatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return escapeString(v.String())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(timeFormat)
	}

	switch val := v.Any().(type) {
	case nil:
		return "<nil>"
	case *big.Int:
		if val == nil {
			return "<nil>"
		}
		return val.String()
	case error:
		return escapeString(val.Error())
	case fmt.Stringer:
		if rv := reflect.ValueOf(val); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "<nil>"
		}
		return escapeString(val.String())
	case time.Time:
		return val.Format(timeFormat)
	}
	return escapeString(fmt.Sprintf("%+v", v.Any()))
}

// escapeString quotes s when it contains characters that would break key=value parsing.
func escapeString(s string) string {
	if s == "" {
		return `""`
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' || r > '~' {
			return strconv.Quote(s)
		}
	}
	return s
}

// escapeMessage quotes messages that contain control characters.
func escapeMessage(s string) string {
	for _, r := range s {
		if r < ' ' && r != '\t' {
			return strconv.Quote(s)
		}
	}
	return s
}
