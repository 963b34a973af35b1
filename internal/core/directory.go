package core

import "sync"

// Participant is an identified connection as recorded in the directory.
type Participant struct {
	ID       string
	Username string
	Room     string
}

// Directory is the authoritative mapping of currently connected,
// identified participants. The hub goroutine is the only writer;
// snapshots may be taken from any goroutine.
type Directory struct {
	mu    sync.RWMutex
	byID  map[string]Participant
	order []string
}

// NewDirectory constructs an empty directory.
func NewDirectory() *Directory {
	return &Directory{byID: make(map[string]Participant)}
}

// Insert records a participant. Inserting an id twice keeps the first entry.
func (d *Directory) Insert(p Participant) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.byID[p.ID]; exists {
		return
	}
	d.byID[p.ID] = p
	d.order = append(d.order, p.ID)
}

// Remove deletes a participant by connection id. Unknown ids are a no-op.
func (d *Directory) Remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.byID[id]; !exists {
		return
	}
	delete(d.byID, id)
	for i, existing := range d.order {
		if existing == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Has reports whether a connection id is present.
func (d *Directory) Has(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.byID[id]
	return ok
}

// Snapshot returns a point-in-time copy of all participants in
// insertion order. The returned slice is never nil.
func (d *Directory) Snapshot() []Participant {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Participant, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.byID[id])
	}
	return out
}

// SnapshotForRoom returns a point-in-time copy of the participants in
// the given room, in insertion order.
func (d *Directory) SnapshotForRoom(room string) []Participant {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Participant, 0, len(d.order))
	for _, id := range d.order {
		if p := d.byID[id]; p.Room == room {
			out = append(out, p)
		}
	}
	return out
}

// Size returns the number of participants.
func (d *Directory) Size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byID)
}
