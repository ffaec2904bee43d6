package app

import (
	"context"

	"go.trai.ch/xmlres/internal/adapters/httpserver"
)

// DefaultAddr is the address serve listens on when none is given.
const DefaultAddr = "127.0.0.1:8080"

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	SettingsOptions
	Addr    string
	Origins []string
}

// Serve exposes validation and the resource cache over HTTP until ctx is done.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	settings, err := a.LoadSettings(opts.SettingsOptions)
	if err != nil {
		return err
	}
	engine, err := a.NewEngine(settings)
	if err != nil {
		return err
	}
	defer a.closeEngine(engine)

	var serverOpts []httpserver.Option
	if len(opts.Origins) > 0 {
		serverOpts = append(serverOpts, httpserver.WithAllowedOrigins(opts.Origins...))
	}
	addr := opts.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	return httpserver.New(engine.Coordinator, engine.Cache, a.logger, serverOpts...).ListenAndServe(ctx, addr)
}
