// Package scratch is a reusable byte buffer for text that lives for one
// frame. Strings handed out are views into the buffer and stay valid until
// the next Reset.
package scratch

import (
	"strconv"
	"unicode/utf8"
	"unsafe"
)

// Buffer is single-threaded. The zero value is ready to use.
type Buffer struct {
	buf []byte
}

func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// Reset forgets the contents without freeing memory, invalidating every
// view handed out since the last Reset.
func (b *Buffer) Reset() { b.buf = b.buf[:0] }

func (b *Buffer) Len() int { return len(b.buf) }
func (b *Buffer) Cap() int { return cap(b.buf) }

// Mark returns a bookmark to later slice the output.
func (b *Buffer) Mark() int { return len(b.buf) }

// ViewFrom returns the text written since mark without copying.
//
// Growing the buffer moves later writes to a new array, so earlier views
// never change before Reset.
func (b *Buffer) ViewFrom(mark int) string {
	s := b.buf[mark:]
	if len(s) == 0 {
		return ""
	}
	return unsafe.String(&s[0], len(s))
}

// StringFrom copies the text written since mark.
func (b *Buffer) StringFrom(mark int) string { return string(b.buf[mark:]) }

// ----- Append primitives (chainable) -----

func (b *Buffer) S(s string) *Buffer { b.buf = append(b.buf, s...); return b }
func (b *Buffer) C(c byte) *Buffer   { b.buf = append(b.buf, c); return b }
func (b *Buffer) R(r rune) *Buffer   { b.buf = utf8.AppendRune(b.buf, r); return b }
func (b *Buffer) I(v int) *Buffer    { b.buf = strconv.AppendInt(b.buf, int64(v), 10); return b }

// F appends v with prec digits after the decimal point.
func (b *Buffer) F(v float64, prec int) *Buffer {
	b.buf = strconv.AppendFloat(b.buf, v, 'f', prec, 64)
	return b
}

// Pad appends n copies of c.
func (b *Buffer) Pad(n int, c byte) *Buffer {
	for range n {
		b.buf = append(b.buf, c)
	}
	return b
}

// Sprintf formats a small subset of fmt verbs into the buffer and returns
// a view of the result: %s, %d, %f with an optional .precision, and %%.
// Unknown verbs are written literally; missing arguments end the output.
func (b *Buffer) Sprintf(format string, args ...any) string {
	mark := len(b.buf)
	ai := 0
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' {
			b.buf = append(b.buf, ch)
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			b.buf = append(b.buf, '%')
			i++
			continue
		}
		i++
		prec := -1
		if i < len(format) && format[i] == '.' {
			i++
			start := i
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				i++
			}
			prec, _ = strconv.Atoi(format[start:i])
		}
		if i >= len(format) || ai >= len(args) {
			break
		}
		switch format[i] {
		case 's':
			b.appendString(args[ai])
		case 'd':
			b.buf = strconv.AppendInt(b.buf, toInt64(args[ai]), 10)
		case 'f':
			if prec < 0 {
				prec = 6
			}
			b.buf = strconv.AppendFloat(b.buf, toFloat64(args[ai]), 'f', prec, 64)
		default:
			b.buf = append(b.buf, '%', format[i])
		}
		ai++
	}
	return b.ViewFrom(mark)
}

func (b *Buffer) appendString(v any) {
	switch x := v.(type) {
	case string:
		b.buf = append(b.buf, x...)
	case []byte:
		b.buf = append(b.buf, x...)
	default:
		b.buf = append(b.buf, "%!s"...)
	}
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	}
	return 0
}

func toFloat64(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	}
	return 0
}
