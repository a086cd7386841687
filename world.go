package ecsforge

import (
	"github.com/kamstrup/intmap"
	"github.com/rs/zerolog"
)

// WorldConfig holds the initial-capacity hints a World is constructed
// with.
type WorldConfig struct {
	EntityCap    int
	TableCap     int
	ComponentCap int
}

// WorldOption customizes a World at construction time.
type WorldOption func(*World)

// WithLogger attaches a zerolog.Logger the World emits debug-level events
// to (archetype creation, despawn-with-replacement fixups); capacity
// growth is not logged. The default is a discarding logger.
func WithLogger(l zerolog.Logger) WorldOption {
	return func(w *World) { w.log = l }
}

// World owns the entity registry, the tables, the archetype graph, and
// the component type registry. Archetype 0 and table 0 are the empty
// archetype, materialized at construction.
type World struct {
	registry       *EntityRegistry
	tables         []*ComponentTable
	archetypes     []*Archetype
	types          *typeRegistry
	signatureIndex *intmap.Map[uint64, ArchetypeId]
	config         WorldConfig
	log            zerolog.Logger
}

// NewWorld creates a World, materializing the empty archetype/table pair.
func NewWorld(cfg WorldConfig, opts ...WorldOption) *World {
	if cfg.EntityCap <= 0 {
		cfg.EntityCap = entityRegistryMinGrowth
	}
	if cfg.TableCap <= 0 {
		cfg.TableCap = 16
	}
	if cfg.ComponentCap <= 0 {
		cfg.ComponentCap = 64
	}
	w := &World{
		registry:       NewEntityRegistry(cfg.EntityCap),
		tables:         make([]*ComponentTable, 0, cfg.TableCap),
		archetypes:     make([]*Archetype, 0, cfg.TableCap),
		types:          newTypeRegistry(cfg.ComponentCap),
		signatureIndex: intmap.New[uint64, ArchetypeId](cfg.TableCap),
		config:         cfg,
		log:            newNopLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	emptyTable := newComponentTable()
	emptyArch := newArchetype(0, nil)
	w.tables = append(w.tables, emptyTable)
	w.archetypes = append(w.archetypes, emptyArch)
	w.signatureIndex.Put(signatureHash(nil), 0)
	return w
}

// EntityCount returns the number of currently live entities.
func (w *World) EntityCount() int { return w.registry.LiveCount() }

// ComponentID interns desc, assigning a fresh world-scoped ComponentId the
// first time its InstanceTypeID is seen.
func (w *World) ComponentID(desc ComponentDescriptor) ComponentId {
	return w.types.intern(desc)
}

// Spawn allocates an entity and places it into the empty archetype.
func (w *World) Spawn() (Entity, error) {
	e, err := w.registry.Alloc()
	if err != nil {
		return Entity{}, err
	}
	row, err := w.tables[0].AddEntity(e)
	if err != nil {
		// leave the registry consistent: give the id back rather than
		// strand a live entity with no row.
		_ = w.registry.Free(e)
		return Entity{}, err
	}
	w.registry.SetSlot(e, 0, row)
	return e, nil
}

// Despawn frees e from the registry and swap-removes its row. If a
// replacement entity filled the hole, its slot is fixed up.
func (w *World) Despawn(e Entity) error {
	slot, err := w.registry.Get(e)
	if err != nil {
		return err
	}
	archetypeID, row := slot.archetype, slot.row
	table := w.tables[archetypeID]
	replacement, had := table.SwapRemove(row)
	if err := w.registry.Free(e); err != nil {
		return err
	}
	if had {
		w.registry.SetSlot(replacement, archetypeID, row)
		w.log.Debug().
			Uint32("replacement_id", replacement.ID).
			Uint32("row", row).
			Msg("despawn: replacement entity slot fixed up")
	}
	return nil
}

// getOrCreateArchetype looks up the archetype with the given sorted
// signature, materializing a fresh Archetype + ComponentTable pair on
// miss.
func (w *World) getOrCreateArchetype(sortedIDs []ComponentId, descByID map[ComponentId]ComponentDescriptor) (*Archetype, error) {
	sig := signatureHash(sortedIDs)
	if id, ok := w.signatureIndex.Get(sig); ok {
		return w.archetypes[id], nil
	}
	id := ArchetypeId(len(w.archetypes))
	arch := newArchetype(id, sortedIDs)
	table := newComponentTable()
	for _, cid := range sortedIDs {
		table.AddColumn(cid, descByID[cid], tableBaselineCapacity)
	}
	if err := table.Reserve(tableBaselineCapacity); err != nil {
		return nil, err
	}
	w.archetypes = append(w.archetypes, arch)
	w.tables = append(w.tables, table)
	w.signatureIndex.Put(sig, id)
	w.log.Debug().
		Uint32("archetype_id", uint32(id)).
		Int("component_count", len(sortedIDs)).
		Msg("archetype materialized")
	return arch, nil
}

// InsertBundle resolves the destination archetype for inserting b into e
// (reusing a cached edge when available), transfers e's row if the
// archetype changes, and writes b's values — clobbering any pre-existing
// values for components already present.
func (w *World) InsertBundle(e Entity, b Bundle) error {
	slot, err := w.registry.Get(e)
	if err != nil {
		return err
	}
	srcArchID := slot.archetype
	srcArch := w.archetypes[srcArchID]
	key := b.typeKey()

	var destArch *Archetype
	var transition cachedTransition
	if edge, ok := srcArch.edgesAdded[key]; ok {
		transition = edge
		destArch = w.archetypes[edge.target]
	} else {
		descs := b.descriptors()
		descByID := make(map[ComponentId]ComponentDescriptor, len(descs))
		bundleIDs := make([]ComponentId, len(descs))
		for i, d := range descs {
			id := w.ComponentID(d)
			bundleIDs[i] = id
			descByID[id] = d
		}
		newIDs := setDifference(bundleIDs, srcArch.ComponentIDs)
		if len(newIDs) == 0 {
			transition = cachedTransition{target: srcArchID}
			srcArch.edgesAdded[key] = transition
			destArch = srcArch
		} else {
			sig := sortedUnion(srcArch.ComponentIDs, newIDs)
			// descByID only carries descriptors for ids in this bundle;
			// ids already present in srcArch need their descriptor too,
			// to build any brand-new table's columns.
			for _, id := range srcArch.ComponentIDs {
				if _, ok := descByID[id]; !ok {
					descByID[id] = w.types.descriptor(id)
				}
			}
			destArch, err = w.getOrCreateArchetype(sig, descByID)
			if err != nil {
				return err
			}
			transition = newCachedTransition(destArch.ID, w.tables[srcArchID], w.tables[destArch.ID])
			srcArch.edgesAdded[key] = transition
		}
	}

	row := slot.row
	if destArch.ID != srcArchID {
		srcTable := w.tables[srcArchID]
		dstTable := w.tables[destArch.ID]
		replacement, had, newRow, err := srcTable.TransferRow(row, dstTable, transition)
		if err != nil {
			return err
		}
		if had {
			w.registry.SetSlot(replacement, srcArchID, row)
		}
		w.registry.SetSlot(e, destArch.ID, newRow)
		row = newRow
	}

	ids := make([]ComponentId, len(b.descriptors()))
	for i, d := range b.descriptors() {
		ids[i], _ = w.types.lookup(d.InstanceTypeID)
	}
	b.write(ids, w.tables[destArch.ID], row)
	return nil
}

// Contains reports whether e currently carries the component desc
// describes.
func (w *World) Contains(e Entity, desc ComponentDescriptor) bool {
	slot, err := w.registry.Get(e)
	if err != nil {
		return false
	}
	id, ok := w.types.lookup(desc.InstanceTypeID)
	if !ok {
		return false
	}
	return w.tables[slot.archetype].HasColumn(id)
}

// Get returns a pointer to e's component of type T (optionally named),
// and whether it is present. It is the safe counterpart to MustGet.
func Get[T any](w *World, e Entity, name ...string) (*T, bool) {
	n := ""
	if len(name) > 0 {
		n = name[0]
	}
	slot, err := w.registry.Get(e)
	if err != nil {
		return nil, false
	}
	desc := DescriptorFor[T](n)
	id, ok := w.types.lookup(desc.InstanceTypeID)
	if !ok {
		return nil, false
	}
	table := w.tables[slot.archetype]
	col, ok := table.Column(id)
	if !ok {
		return nil, false
	}
	return columnAt[T](col, int(slot.row)), true
}

// MustGet is Get's programmer-error variant: it panics if the component
// is absent. Callers must check Contains first when absence is a
// possibility rather than a bug.
func MustGet[T any](w *World, e Entity, name ...string) *T {
	v, ok := Get[T](w, e, name...)
	if !ok {
		panic("ecsforge: MustGet on an absent component")
	}
	return v
}

// Contains is the generic counterpart of World.Contains, resolving T's
// descriptor itself.
func Contains[T any](w *World, e Entity, name ...string) bool {
	n := ""
	if len(name) > 0 {
		n = name[0]
	}
	return w.Contains(e, DescriptorFor[T](n))
}
