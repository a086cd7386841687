package ecsforge

const tableBaselineCapacity = 64

// ComponentTable is the storage for a single archetype: a sparse set of
// columns keyed by ComponentId plus the parallel entity roster. Rows of
// every column and of Entities are parallel arrays indexed by row.
type ComponentTable struct {
	columns  SparseSet[*ComponentColumn]
	colIDs   []ComponentId // sorted, fixed once the table is materialized
	Entities []Entity
	frozen   bool
}

func newComponentTable() *ComponentTable {
	return &ComponentTable{}
}

// AddColumn adds a new column for id, using desc for its row size and drop
// function. It requires the table currently has no rows — tables are
// frozen after the first AddEntity — and panics otherwise, since a second
// call for the same id or a call after rows exist is a programmer error,
// not a recoverable one.
func (t *ComponentTable) AddColumn(id ComponentId, desc ComponentDescriptor, capacity int) *ComponentColumn {
	if t.frozen {
		panic("ecsforge: AddColumn on a table that already has rows")
	}
	if t.columns.Contains(uint32(id)) {
		panic("ecsforge: AddColumn called twice for the same component")
	}
	col := newColumn(id, desc, capacity)
	*t.columns.GetOrCreate(uint32(id)) = col
	t.colIDs = append(t.colIDs, id)
	return col
}

// HasColumn reports whether id is present in this table's signature.
func (t *ComponentTable) HasColumn(id ComponentId) bool {
	return t.columns.Contains(uint32(id))
}

// Column returns the column for id, if present.
func (t *ComponentTable) Column(id ComponentId) (*ComponentColumn, bool) {
	pp, ok := t.columns.GetOpt(uint32(id))
	if !ok {
		return nil, false
	}
	return *pp, true
}

// ComponentIDs returns the table's sorted component-id signature.
func (t *ComponentTable) ComponentIDs() []ComponentId { return t.colIDs }

// EntityCount returns the current row count.
func (t *ComponentTable) EntityCount() int { return len(t.Entities) }

// Reserve ensures Entities capacity >= n and propagates it to every column.
func (t *ComponentTable) Reserve(n int) error {
	if cap(t.Entities) < n {
		ne := make([]Entity, len(t.Entities), n)
		copy(ne, t.Entities)
		t.Entities = ne
	}
	for _, id := range t.colIDs {
		col, _ := t.Column(id)
		if err := col.Blob.Reserve(n); err != nil {
			return err
		}
	}
	return nil
}

// AddEntity appends e to the roster and extends every column's logical
// length by one zero row, growing capacity uniformly (doubling) if
// needed. Returns the new row index. After the first call the table is
// frozen: AddColumn can no longer be called.
func (t *ComponentTable) AddEntity(e Entity) (uint32, error) {
	t.frozen = true
	if len(t.Entities) == cap(t.Entities) {
		newCap := cap(t.Entities) * 2
		if newCap == 0 {
			newCap = tableBaselineCapacity
		}
		if err := t.Reserve(newCap); err != nil {
			return 0, err
		}
	}
	row := uint32(len(t.Entities))
	t.Entities = append(t.Entities, e)
	for _, id := range t.colIDs {
		col, _ := t.Column(id)
		col.Blob.PushZero()
	}
	return row, nil
}

// SwapRemove drops row's resources, swap-removes it from every column and
// from Entities, and returns the entity that now occupies row (the prior
// tail), or false if row was already the tail.
func (t *ComponentTable) SwapRemove(row uint32) (Entity, bool) {
	for _, id := range t.colIDs {
		col, _ := t.Column(id)
		col.dropRow(int(row))
		col.Blob.SwapRemove(int(row))
	}
	last := len(t.Entities) - 1
	if int(row) != last {
		replacement := t.Entities[last]
		t.Entities[row] = replacement
		t.Entities = t.Entities[:last]
		return replacement, true
	}
	t.Entities = t.Entities[:last]
	return Entity{}, false
}

// TransferRow moves the entity at row into dst along a precomputed
// transition: for each of transition.copyOps the row's bytes are copied
// (ownership moves, no drop), and for each of transition.dropOps the
// value is dropped in place, both addressed directly by dense slot rather
// than by re-looking-up or re-diffing the column sets. Returns the entity
// that replaced row in this table (if any) and the row's new index in
// dst.
func (t *ComponentTable) TransferRow(row uint32, dst *ComponentTable, transition cachedTransition) (replacement Entity, hadReplacement bool, newRow uint32, err error) {
	e := t.Entities[row]
	newRow, err = dst.AddEntity(e)
	if err != nil {
		return Entity{}, false, 0, err
	}
	srcDense := t.columns.Dense()
	dstDense := dst.columns.Dense()
	for _, op := range transition.copyOps {
		srcCol := srcDense[op.fromSlot]
		dstCol := dstDense[op.toSlot]
		copy(dstCol.Blob.BytesAt(int(newRow)), srcCol.Blob.BytesAt(int(row)))
	}
	for _, fromSlot := range transition.dropOps {
		srcDense[fromSlot].dropRow(int(row))
	}
	for _, col := range srcDense {
		col.Blob.SwapRemove(int(row))
	}
	last := len(t.Entities) - 1
	if int(row) != last {
		replacement = t.Entities[last]
		t.Entities[row] = replacement
		hadReplacement = true
	}
	t.Entities = t.Entities[:last]
	return replacement, hadReplacement, newRow, nil
}
