package kapten

import (
	"log/slog"

	"github.com/0xalexb/kapten/handler"
)

// Options holds construction settings for a Store.
type Options struct {
	Format *handler.Format
	Logger *slog.Logger
}

// Option defines a function type for applying Store options.
type Option func(*Options)

// WithFormat pre-selects the handler format. A pre-selected handler is
// used for raw text imports and for files regardless of their
// extension.
func WithFormat(format handler.Format) Option {
	return func(opts *Options) {
		opts.Format = &format
	}
}

// WithLogger sets the logger used for debug output. Defaults to
// slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}
