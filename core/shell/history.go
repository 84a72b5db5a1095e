package shell

// DefaultHistorySize is the number of commands kept when the configuration
// doesn't say otherwise.
const DefaultHistorySize = 10

// Record is a single history entry.
type Record struct {
	// ID is the value of the running command counter when the record was made.
	ID uint
	// Text is the raw line as entered, including its line terminator.
	Text string
}

// History is a bounded list of recently entered commands, most recent first.
//
// History is owned by the goroutine running the shell loop and is not safe
// for concurrent use.
type History struct {
	records []Record
	size    int
	counter uint
}

// NewHistory creates a history holding at most size records. Sizes below one
// fall back to DefaultHistorySize.
func NewHistory(size int) *History {
	if size < 1 {
		size = DefaultHistorySize
	}
	return &History{
		records: make([]Record, 0, size),
		size:    size,
	}
}

// Record stores text under the next identifier, evicting the oldest entry
// if the history is full, and returns the identifier.
func (h *History) Record(text string) uint {
	h.counter++

	if len(h.records) < h.size {
		h.records = append(h.records, Record{})
	}
	// Shift toward the tail; when full the oldest falls off the end.
	copy(h.records[1:], h.records[:len(h.records)-1])
	h.records[0] = Record{ID: h.counter, Text: text}

	return h.counter
}

// Show returns the held records, most recent first.
func (h *History) Show() []Record {
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// Lookup finds the held record with the given identifier.
func (h *History) Lookup(id uint) (Record, bool) {
	for _, r := range h.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Len is the number of records currently held.
func (h *History) Len() int {
	return len(h.records)
}

// Cap is the maximum number of records held.
func (h *History) Cap() int {
	return h.size
}

// Count is the total number of commands ever recorded.
func (h *History) Count() uint {
	return h.counter
}
