/*
Package ecsforge implements an archetype-based Entity-Component-System (ECS)
core: generational entity identity, heterogeneous columnar component
storage, and archetype topology management with memoized transitions.

Core Concepts:

  - Entity: a generation-versioned handle into the world's entity registry.
  - ComponentDescriptor: compile-time type metadata (size, alignment, an
    optional name for distinguishing two columns of the same underlying
    type) interned into a world-scoped ComponentId.
  - ComponentTable: one archetype's column set plus its entity roster,
    stored as parallel arrays indexed by row.
  - Archetype: the equivalence class of entities sharing the same sorted
    ComponentId signature, with a memoized edge cache of bundle insertions.

Basic Usage:

	w := ecsforge.NewWorld(ecsforge.WorldConfig{EntityCap: 1024})

	e, err := w.Spawn()
	if err != nil {
		// AllocationFailure
	}

	err = w.InsertBundle(e, ecsforge.Bundle1[Position]{A: Position{X: 1, Y: 2}})

	pos, ok := ecsforge.Get[Position](w, e)
	if ok {
		pos.X += 1
	}

	w.Despawn(e)

ecsforge has no query/iteration DSL, no system scheduler, and no
serialization; it is the storage core other layers are built on.
*/
package ecsforge
