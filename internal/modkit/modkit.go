// Package modkit assembles API modules from shared deps and functional options
package modkit

import (
	"chatlens/internal/modkit/module"
	"chatlens/internal/platform/config"
	"chatlens/internal/platform/logger"
)

// Module is the surface the API mounts. It aliases module.Module so packages
// that only need the contract can avoid importing modkit
type Module = module.Module

// Deps are handed to every module constructor.
// Analyses live in memory for the duration of a run so there are no store handles here
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
}

// Named returns the deps logger tagged with a component name.
// A zero Deps yields a logger that drops everything
func (d Deps) Named(component string) *logger.Logger {
	l := d.Log.With().Str("component", component).Logger()
	return &l
}
