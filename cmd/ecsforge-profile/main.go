// Command ecsforge-profile spawns entities, inserts a bundle into each,
// and despawns them in a loop under a memory-allocation profile
// captured with github.com/pkg/profile.
package main

import (
	"github.com/kastelyn/ecsforge"
	"github.com/pkg/profile"
)

type position struct{ X, Y float64 }
type velocity struct{ DX, DY float64 }

func main() {
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	defer p.Stop()
	run(50, 10000, 1000)
}

// run pools the Entity handles spawned each iteration in an Arena rather
// than a plain slice, so the free-list reuse under steady spawn/despawn
// churn shows up in the allocation profile the same way it would for any
// other pooled, non-entity-registry object.
func run(rounds, iters, numEntities int) {
	pool := ecsforge.NewArena[ecsforge.Entity]()
	for r := 0; r < rounds; r++ {
		w := ecsforge.NewWorld(ecsforge.WorldConfig{EntityCap: numEntities})
		for i := 0; i < iters; i++ {
			handles := make([]ecsforge.Handle, 0, numEntities)
			for n := 0; n < numEntities; n++ {
				e, err := w.Spawn()
				if err != nil {
					panic(err)
				}
				if err := w.InsertBundle(e, ecsforge.Bundle2[position, velocity]{
					A: position{X: float64(n)},
					B: velocity{DX: 1},
				}); err != nil {
					panic(err)
				}
				handles = append(handles, pool.Insert(e))
			}
			for _, h := range handles {
				e, ok := pool.Remove(h)
				if !ok {
					panic("ecsforge-profile: pool handle went stale mid-iteration")
				}
				if err := w.Despawn(e); err != nil {
					panic(err)
				}
			}
		}
	}
}
