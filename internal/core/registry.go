package core

// Registry validates and records identity declarations. Identity is
// assigned at most once per connection; rejections have no side effect.
type Registry struct {
	rooms map[string]struct{}
	dir   *Directory
}

// NewRegistry constructs a registry over the given room label set.
func NewRegistry(rooms []string, dir *Directory) *Registry {
	labels := make(map[string]struct{}, len(rooms))
	for _, room := range rooms {
		labels[room] = struct{}{}
	}
	return &Registry{rooms: labels, dir: dir}
}

// Assign records the identity for a connection and inserts it into the
// directory. The first successful call per connection wins; later calls
// fail with ErrAlreadyIdentified. Username must be non-empty and the
// room must be one of the configured labels. Duplicate usernames across
// connections are allowed; usernames are display strings, not keys.
func (r *Registry) Assign(connectionID, username, room string) (Participant, error) {
	if r.dir.Has(connectionID) {
		return Participant{}, ErrAlreadyIdentified
	}
	if username == "" {
		return Participant{}, ErrEmptyUsername
	}
	if _, ok := r.rooms[room]; !ok {
		return Participant{}, ErrUnknownRoom
	}
	p := Participant{ID: connectionID, Username: username, Room: room}
	r.dir.Insert(p)
	return p, nil
}
