package ecsforge

import "github.com/kastelyn/ecsforge/errkit"

// Entity is a value pair (generation, id). id indexes the registry's slot
// table; generation is a liveness epoch. Two entities compare equal only
// if both fields match. Generation 0 is valid: the first entity a fresh
// registry hands out is (generation 0, id 0), which equals the zero value.
type Entity struct {
	Generation uint32
	ID         uint32
}

// entitySlot is the per-id record the registry keeps: one per live id,
// invariant slot.Generation == e.Generation for any live Entity e
// referencing it.
type entitySlot struct {
	generation uint32
	archetype  ArchetypeId
	row        uint32
}

const entityRegistryMinGrowth = 1024

// EntityRegistry is a specialization of the generational arena with two
// separate arrays (slots, freeList) so capacity growth is amortized
// independently of Arena's single-slice layout.
type EntityRegistry struct {
	slots    []entitySlot
	freeList []uint32
}

// NewEntityRegistry creates a registry with capacity ids pre-allocated
// into the free list. capacity is rounded up to entityRegistryMinGrowth
// when smaller; later growth doubles from there.
func NewEntityRegistry(capacity int) *EntityRegistry {
	if capacity < entityRegistryMinGrowth {
		capacity = entityRegistryMinGrowth
	}
	r := &EntityRegistry{
		slots:    make([]entitySlot, capacity),
		freeList: make([]uint32, capacity),
	}
	for i := 0; i < capacity; i++ {
		r.freeList[i] = uint32(capacity - 1 - i)
	}
	return r
}

// Alloc returns a fresh or recycled Entity. The free list is LIFO: the
// most recently freed id (or, on first fill, the lowest unused id) comes
// back first.
func (r *EntityRegistry) Alloc() (Entity, error) {
	if len(r.freeList) == 0 {
		if err := r.grow(); err != nil {
			return Entity{}, err
		}
	}
	last := len(r.freeList) - 1
	id := r.freeList[last]
	r.freeList = r.freeList[:last]
	gen := r.slots[id].generation
	r.slots[id] = entitySlot{generation: gen}
	return Entity{Generation: gen, ID: id}, nil
}

func (r *EntityRegistry) grow() error {
	oldCap := len(r.slots)
	newCap := oldCap * 2
	if newCap <= oldCap {
		return errkit.AllocationFailure{Requested: oldCap + 1}
	}
	ns := make([]entitySlot, newCap)
	copy(ns, r.slots)
	r.slots = ns
	added := newCap - oldCap
	nf := make([]uint32, added)
	for i := 0; i < added; i++ {
		nf[i] = uint32(newCap - 1 - i)
	}
	r.freeList = append(r.freeList, nf...)
	return nil
}

// Free validates e against its slot's current generation, bumps the
// generation, and returns the id to the free list.
func (r *EntityRegistry) Free(e Entity) error {
	if int(e.ID) >= len(r.slots) || r.slots[e.ID].generation != e.Generation {
		return errkit.UnknownEntity{Generation: e.Generation, ID: e.ID}
	}
	r.slots[e.ID].generation++
	r.freeList = append(r.freeList, e.ID)
	return nil
}

// Get validates e and returns a pointer to its slot.
func (r *EntityRegistry) Get(e Entity) (*entitySlot, error) {
	if int(e.ID) >= len(r.slots) || r.slots[e.ID].generation != e.Generation {
		return nil, errkit.UnknownEntity{Generation: e.Generation, ID: e.ID}
	}
	return &r.slots[e.ID], nil
}

// SetSlot records where e currently lives.
func (r *EntityRegistry) SetSlot(e Entity, archetype ArchetypeId, row uint32) {
	s := &r.slots[e.ID]
	s.archetype = archetype
	s.row = row
}

// LiveCount returns capacity - len(freeList).
func (r *EntityRegistry) LiveCount() int {
	return len(r.slots) - len(r.freeList)
}

// Clear returns every id to the free list, bumping each slot's generation
// first so that an Entity handle obtained before a Clear can never alias
// one spawned after it, even though both would carry the same id.
func (r *EntityRegistry) Clear() {
	capacity := len(r.slots)
	for i := range r.slots {
		r.slots[i].generation++
		r.slots[i].archetype = 0
		r.slots[i].row = 0
	}
	nf := make([]uint32, capacity)
	for i := 0; i < capacity; i++ {
		nf[i] = uint32(capacity - 1 - i)
	}
	r.freeList = nf
}
