package process

// ID is an opaque, stable identity of a process table slot occupant. The
// scheduler only compares identifiers, it never interprets them.
type ID string

// None marks an empty process table slot.
const None ID = ""

// IsValid reports whether id denotes a process.
func (id ID) IsValid() bool {
	return id != None
}

// Table is an ordered, fixed-length view of the process table. Entry i is the
// occupant of slot i, or None when the slot is empty.
type Table []ID

// Occupied returns the number of non-empty slots.
func (t Table) Occupied() int {
	count := 0
	for _, id := range t {
		if id.IsValid() {
			count++
		}
	}
	return count
}
