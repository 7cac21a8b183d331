// Package engine defines the lifecycle contract every simulation implements
// and the small set of primitives they share:
//
//   - [Simulation]: the Init/Update/Render/Reset/Destroy contract a host
//     drives once per animation frame
//   - [Surface]: the 2D drawing target a simulation is bound to at Init
//   - [Params]: the per-frame numeric parameter bag supplied by the host
//   - [History]: a fixed-capacity ring buffer for trailing graphs
//   - [Registry]: slug-to-factory lookup for the simulation library
//
// # Frame protocol
//
//	sim := entry.New()
//	sim.Init(surface)
//	for each frame:
//	    sim.Update(dt, params)
//	    sim.Render()
//
// Update mutates simulation state; Render only reads it. No method is safe
// for concurrent use; the host calls them sequentially on one goroutine.
package engine
