package journal

// Journal is an append-only, in-memory record of laboratory operations.
// Entries are immutable once recorded; the journal itself never persists
// anywhere and lives exactly as long as its laboratory session.
type Journal struct {
	entries []*Entry
}

// NewJournal creates an empty journal
func NewJournal() *Journal {
	return &Journal{}
}

// Record appends an entry
func (j *Journal) Record(entry *Entry) {
	j.entries = append(j.entries, entry)
}

// Entries returns a copy of all recorded entries in order
func (j *Journal) Entries() []*Entry {
	entries := make([]*Entry, len(j.entries))
	copy(entries, j.entries)
	return entries
}

// ByKind returns the recorded entries of one kind, in order
func (j *Journal) ByKind(kind Kind) []*Entry {
	var entries []*Entry
	for _, entry := range j.entries {
		if entry.Kind() == kind {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Len returns the number of recorded entries
func (j *Journal) Len() int {
	return len(j.entries)
}
