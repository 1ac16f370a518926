package ports

// ForLedgering is the set of archived episode GUIDs. Implementations
// are opened for the duration of a run and must be closed.
type ForLedgering interface {
	Contains(guid string) bool
	// Record appends guid. Only call after the episode's files have
	// been written.
	Record(guid string) error
	Len() int
	Close() error
}
