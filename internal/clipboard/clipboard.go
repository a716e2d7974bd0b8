// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported indicates a platform with no usable clipboard utility.
var ErrUnsupported = errors.New("clipboard: unsupported platform")

// WriteFunc places text on the clipboard.
type WriteFunc func(text string) error

// Clipboard copies text through a WriteFunc.
type Clipboard struct {
	write       WriteFunc
	unsupported func() bool
}

// Option configures a Clipboard.
type Option func(*Clipboard)

// WithWriter replaces the clipboard write. Nil is ignored.
func WithWriter(write WriteFunc) Option {
	return func(c *Clipboard) {
		if write != nil {
			c.write = write
		}
	}
}

// WithUnsupported replaces platform support detection. Nil is ignored.
func WithUnsupported(unsupported func() bool) Option {
	return func(c *Clipboard) {
		if unsupported != nil {
			c.unsupported = unsupported
		}
	}
}

// New returns a Clipboard backed by the platform clipboard. Windows is
// written through the Win32 API as UTF-16; elsewhere pbcopy, wl-copy,
// xclip or xsel is used, whichever is installed.
func New(opts ...Option) *Clipboard {
	c := &Clipboard{
		write:       clipboard.WriteAll,
		unsupported: func() bool { return clipboard.Unsupported },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Copy places text on the clipboard. It returns ErrUnsupported when no
// clipboard utility was found.
func (c *Clipboard) Copy(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.unsupported() {
		return ErrUnsupported
	}
	if err := c.write(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// Copy places text on the clipboard of the running platform.
func Copy(ctx context.Context, text string) error {
	return New().Copy(ctx, text)
}
