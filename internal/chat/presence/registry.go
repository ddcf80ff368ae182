package presence

import "sync"

// Handle identifies one live connection. The relay registers its
// per-connection client pointers here; the registry only needs the
// value to be comparable so it can find the entry again on disconnect.
type Handle any

// Registry is the single in-process authority for who is online. It
// maps a user identifier to at most one connection handle: a second
// connection for the same user replaces the first. A user absent from
// the registry is offline.
//
// Request handlers run on independent goroutines, so every operation
// takes the mutex; none of them block or suspend while holding it.
type Registry struct {
	mu    sync.Mutex
	conns map[string]Handle
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]Handle)}
}

// Register inserts or overwrites the entry for userID.
func (r *Registry) Register(userID string, h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[userID] = h
}

// Unregister removes the entry currently associated with h and reports
// which user it belonged to. A handle that is no longer registered
// (a stale disconnect for an already-replaced entry) is a no-op.
func (r *Registry) Unregister(h Handle) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, registered := range r.conns {
		if registered == h {
			delete(r.conns, userID)
			return userID, true
		}
	}
	return "", false
}

// Lookup returns the handle for userID, if the user is online.
func (r *Registry) Lookup(userID string) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.conns[userID]
	return h, ok
}

func (r *Registry) IsOnline(userID string) bool {
	_, ok := r.Lookup(userID)
	return ok
}

// Snapshot returns the identifiers of every online user.
func (r *Registry) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]string, 0, len(r.conns))
	for userID := range r.conns {
		users = append(users, userID)
	}
	return users
}
