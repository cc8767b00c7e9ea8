//go:build wireinject

// Package wireset declares the compile-time dependency-injection provider
// set (C11) composing configuration, catalog loading, the decoration
// combination cache, the data manager, and the calculator for cmd/mhrcalc.
//
// This file is never compiled into the binary (the wireinject build tag
// excludes it); it exists so that `wire` can regenerate wire_gen.go from the
// provider set above if the graph ever changes. No step of this module's
// build invokes the wire binary.
package wireset

import "github.com/google/wire"

// InitializeApp wires together one App from a config file path. wire_gen.go
// carries the hand-authored equivalent of what `wire` would emit for this
// call.
func InitializeApp(configPath string) (*App, error) {
	wire.Build(
		ProvideConfig,
		ProvideLogger,
		ProvideCatalog,
		ProvideDecoCache,
		ProvideManager,
		ProvideCalculator,
		wire.Struct(new(App), "*"),
	)
	return nil, nil
}
