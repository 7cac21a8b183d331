package engine

import "errors"

// Domain errors for the simulation library.
var (
	// ErrNoSurface indicates Init was called without a usable drawing surface.
	// This is the one fatal lifecycle condition: the simulation cannot proceed.
	ErrNoSurface = errors.New("engine: no drawing surface")

	// ErrUnknownSim indicates a slug with no registered simulation.
	ErrUnknownSim = errors.New("engine: unknown simulation")
)
