// Package strings provides pooled string building for coltable. Error messages,
// canonical cell text and table rendering all go through these helpers so that
// hot paths reuse buffers instead of allocating a fresh one per call.
package strings

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"
)

// Builder is a growable byte buffer that implements io.Writer.
type Builder struct {
	buf []byte
}

// NewBuilder creates a new builder with the given initial capacity
func NewBuilder(capacity int) *Builder {
	return &Builder{buf: make([]byte, 0, capacity)}
}

// WriteString appends a string to the builder
func (b *Builder) WriteString(s string) {
	b.buf = append(b.buf, s...)
}

// WriteByte appends a single byte
func (b *Builder) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

// WriteRune appends the UTF-8 encoding of r
func (b *Builder) WriteRune(r rune) {
	b.buf = utf8.AppendRune(b.buf, r)
}

// Write implements io.Writer
func (b *Builder) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// String returns a copy of the accumulated bytes as a string.
func (b *Builder) String() string {
	return string(b.buf)
}

// Bytes returns the accumulated bytes. The slice is only valid until the
// next write or Reset.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Len returns the number of accumulated bytes
func (b *Builder) Len() int {
	return len(b.buf)
}

// Cap returns the capacity of the underlying buffer
func (b *Builder) Cap() int {
	return cap(b.buf)
}

// Reset empties the builder, keeping its buffer
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

// Grow ensures room for at least n more bytes
func (b *Builder) Grow(n int) {
	if cap(b.buf)-len(b.buf) < n {
		grown := make([]byte, len(b.buf), 2*cap(b.buf)+n)
		copy(grown, b.buf)
		b.buf = grown
	}
}

// BuilderSize selects one of the builder pools
type BuilderSize int

const (
	Small  BuilderSize = iota // < 1KB
	Medium                    // 1KB - 16KB
	Large                     // 16KB+
)

var pools = [...]*sync.Pool{
	Small:  {New: func() interface{} { return NewBuilder(1024) }},
	Medium: {New: func() interface{} { return NewBuilder(16 * 1024) }},
	Large:  {New: func() interface{} { return NewBuilder(64 * 1024) }},
}

func poolFor(size BuilderSize) *sync.Pool {
	if size < Small || size > Large {
		return pools[Small]
	}
	return pools[size]
}

// SizeFor picks the pool class for an estimated output length
func SizeFor(estimated int) BuilderSize {
	switch {
	case estimated > 16*1024:
		return Large
	case estimated > 1024:
		return Medium
	default:
		return Small
	}
}

// GetBuilder retrieves an empty pooled builder of the given size class
func GetBuilder(size BuilderSize) *Builder {
	b := poolFor(size).Get().(*Builder)
	b.Reset()
	return b
}

// PutBuilder returns a builder to its pool
func PutBuilder(b *Builder, size BuilderSize) {
	if b == nil {
		return
	}
	b.Reset()
	poolFor(size).Put(b)
}

// Sprintf is fmt.Sprintf backed by a pooled buffer
func Sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	size := SizeFor(len(format) + len(args)*16)
	b := GetBuilder(size)
	defer PutBuilder(b, size)

	fmt.Fprintf(b, format, args...)
	return b.String()
}

// JoinPooled joins parts with sep using a pooled buffer
func JoinPooled(parts []string, sep string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	total := len(sep) * (len(parts) - 1)
	for _, p := range parts {
		total += len(p)
	}
	size := SizeFor(total)
	b := GetBuilder(size)
	defer PutBuilder(b, size)

	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		b.WriteString(sep)
		b.WriteString(p)
	}
	return b.String()
}

// PadRight pads s with spaces to width runes. Longer strings are returned as is.
func PadRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
