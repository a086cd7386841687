package ecsforge

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
)

// ArchetypeId identifies one archetype within a World. Archetype 0 is
// always the empty archetype (zero columns), materialized at World
// construction.
type ArchetypeId uint32

// copyOp is one column's precomputed row-transfer work: the column's
// dense slot in the source table, its dense slot in the destination
// table, and the row's byte size. Precomputing these at edge-creation
// time means TransferRow never has to look a column back up by
// ComponentId, or ask whether the destination even has it.
type copyOp struct {
	fromSlot int
	toSlot   int
	size     int
}

// cachedTransition memoizes "starting from archetype A, after inserting
// bundle B, land in archetype A'", together with the column copy/drop
// plan for getting there. A self-loop (A' == A) carries no plan, since
// World.InsertBundle never transfers a row in that case — it only needs
// target to recognize the no-op.
type cachedTransition struct {
	target  ArchetypeId
	copyOps []copyOp
	dropOps []int // source-table dense slots dropped in place, not carried to dest
}

// newCachedTransition computes the copy/drop plan for moving a row from
// srcTable to dstTable once, so every later transfer along this edge
// reuses it instead of re-diffing the two column sets.
func newCachedTransition(target ArchetypeId, srcTable, dstTable *ComponentTable) cachedTransition {
	ct := cachedTransition{target: target}
	for _, id := range srcTable.ComponentIDs() {
		fromSlot, _ := srcTable.columns.SlotOf(uint32(id))
		if toSlot, ok := dstTable.columns.SlotOf(uint32(id)); ok {
			srcCol, _ := srcTable.Column(id)
			ct.copyOps = append(ct.copyOps, copyOp{
				fromSlot: fromSlot,
				toSlot:   toSlot,
				size:     srcCol.Blob.ItemSize(),
			})
		} else {
			ct.dropOps = append(ct.dropOps, fromSlot)
		}
	}
	return ct
}

// Archetype is the equivalence class of entities sharing ComponentIDs,
// plus its memoized bundle-insertion edges.
type Archetype struct {
	ID           ArchetypeId
	ComponentIDs []ComponentId // sorted signature
	edgesAdded   map[uint64]cachedTransition
}

func newArchetype(id ArchetypeId, sortedIDs []ComponentId) *Archetype {
	return &Archetype{
		ID:           id,
		ComponentIDs: sortedIDs,
		edgesAdded:   make(map[uint64]cachedTransition),
	}
}

// signatureHash hashes a sorted ComponentId slice as raw little-endian
// byte concatenation with 64-bit FNV-1a. Two archetypes collide only if
// their sorted id arrays are byte-equal, which by construction implies
// identical ids.
func signatureHash(sortedIDs []ComponentId) uint64 {
	h := fnv.New64a()
	var buf [4]byte
	for _, id := range sortedIDs {
		binary.LittleEndian.PutUint32(buf[:], uint32(id))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// sortedUnion returns the sorted union of present and added, without
// duplicates.
func sortedUnion(present, added []ComponentId) []ComponentId {
	seen := make(map[ComponentId]struct{}, len(present)+len(added))
	out := make([]ComponentId, 0, len(present)+len(added))
	for _, id := range present {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	for _, id := range added {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// setDifference returns the ids in candidate that are not in present.
func setDifference(candidate, present []ComponentId) []ComponentId {
	presentSet := make(map[ComponentId]struct{}, len(present))
	for _, id := range present {
		presentSet[id] = struct{}{}
	}
	out := make([]ComponentId, 0, len(candidate))
	for _, id := range candidate {
		if _, ok := presentSet[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
