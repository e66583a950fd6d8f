package kapten

import (
	"errors"
	"fmt"
	"log/slog"

	"go.uber.org/fx"
)

// ErrEmptyName is returned when an Fx module is created without a name.
var ErrEmptyName = errors.New("module name cannot be empty")

// NewModule creates an Fx module that loads a configuration source and
// supplies the resulting *Store to DI under the module name.
// The source is anything Store.Import accepts: a file path, raw text
// (with WithFormat), or a native mapping.
//
// Call multiple times with different names to load multiple
// configuration sources side by side.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, source any, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	return fx.Module(name,
		fx.Provide(
			fx.Annotate(
				func(logger *slog.Logger) (*Store, error) {
					storeOpts := opts
					if logger != nil {
						storeOpts = append(storeOpts, WithLogger(logger))
					}

					store := New(storeOpts...)

					err := store.Import(source)
					if err != nil {
						return nil, fmt.Errorf("loading configuration for module %q: %w", name, err)
					}

					return store, nil
				},
				fx.ParamTags(`optional:"true"`),
				fx.ResultTags(fmt.Sprintf(`name:"%s"`, name)),
			),
		),
	)
}
