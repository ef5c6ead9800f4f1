package refs

// Table assigns ids to values during encoding.
type Table struct {
	ids  map[Key]ID
	next ID
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		ids:  make(map[Key]ID, 16),
		next: 1,
	}
}

// Lookup returns the id previously assigned to k.
func (t *Table) Lookup(k Key) (ID, bool) {
	id, ok := t.ids[k]
	return id, ok
}

// Insert assigns the next id to k and records it.
func (t *Table) Insert(k Key) ID {
	id := t.Assign()
	t.ids[k] = id
	return id
}

// Assign hands out the next id without recording an identity.
func (t *Table) Assign() ID {
	id := t.next
	t.next++
	return id
}

// Assigned returns the number of ids handed out.
func (t *Table) Assigned() int {
	return int(t.next - 1)
}

// Tracked returns the number of identities recorded.
func (t *Table) Tracked() int {
	return len(t.ids)
}
