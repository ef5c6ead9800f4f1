package refs

type slot struct {
	value any
	tag   string
	state State
}

// Slots maps wire ids to decoded values.
type Slots struct {
	entries map[ID]*slot
}

// NewSlots creates an empty slot table.
func NewSlots() *Slots {
	return &Slots{entries: make(map[ID]*slot, 16)}
}

// Reserve marks id as pending for a converter node with the given tag.
// Returns false if id is invalid or already defined.
func (s *Slots) Reserve(id ID, tag string) bool {
	if id <= 0 {
		return false
	}
	if _, exists := s.entries[id]; exists {
		return false
	}
	s.entries[id] = &slot{tag: tag, state: StatePending}
	return true
}

// Define records a ready value for id, which must not be defined yet.
// Returns false if id is invalid or already defined.
func (s *Slots) Define(id ID, tag string, value any) bool {
	if id <= 0 {
		return false
	}
	if _, exists := s.entries[id]; exists {
		return false
	}
	s.entries[id] = &slot{value: value, tag: tag, state: StateReady}
	return true
}

// Resolve completes a pending slot with its decoded value.
func (s *Slots) Resolve(id ID, value any) bool {
	e, ok := s.entries[id]
	if !ok || e.state != StatePending {
		return false
	}
	e.value = value
	e.state = StateReady
	return true
}

// Get returns the value, tag and state recorded for id.
// State is StateUnknown if id was never defined.
func (s *Slots) Get(id ID) (any, string, State) {
	e, ok := s.entries[id]
	if !ok {
		return nil, "", StateUnknown
	}
	return e.value, e.tag, e.state
}

// Len returns the number of defined ids.
func (s *Slots) Len() int {
	return len(s.entries)
}
