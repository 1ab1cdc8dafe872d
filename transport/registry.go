package transport

import (
	"fmt"
	"sync"

	"github.com/binschema/binschema/schema"
)

// Handler processes a decoded message on a connection.
type Handler func(conn *Conn, v any) error

// Descriptor binds a message type ID to the schema values of that type must
// conform to, and the handler invoked once one is decoded.
type Descriptor struct {
	ID      uint32
	Name    string
	Schema  *schema.Schema
	Handler Handler

	// internal marks the two handshake messages (Hello, Ping), which are
	// always IDs 0 and 1 and are excluded from the descriptor list a server
	// advertises to clients during Hello.
	internal bool
}

// Registry allocates message type IDs and looks them up on receipt, the way
// a server's wire schema is turned into a dispatch table.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[uint32]*Descriptor
	byName      map[string]uint32
	nextID      uint32
}

// NewRegistry builds an empty registry with the Hello/Ping handshake
// messages pre-registered at their fixed IDs.
func NewRegistry() *Registry {
	r := &Registry{
		descriptors: make(map[uint32]*Descriptor),
		byName:      make(map[string]uint32),
	}
	r.registerInternal()
	return r
}

func (r *Registry) registerInternal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptors[helloID] = &Descriptor{ID: helloID, Name: "Hello", Schema: HelloSchema, internal: true}
	r.descriptors[pingID] = &Descriptor{ID: pingID, Name: "Ping", Schema: PingSchema, internal: true}
	r.byName["Hello"] = helloID
	r.byName["Ping"] = pingID
	r.nextID = pingID + 1
}

// Register adds a user-defined message type and returns the ID it was
// assigned. Registration after Hello has been sent is a programming error
// the caller must avoid; this type does nothing to prevent it.
func (r *Registry) Register(name string, s *schema.Schema, h Handler) (uint32, error) {
	if err := s.Validate(); err != nil {
		return 0, fmt.Errorf("transport: registering %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateMessage, name)
	}

	id := r.nextID
	r.nextID++
	r.descriptors[id] = &Descriptor{ID: id, Name: name, Schema: s, Handler: h}
	r.byName[name] = id
	return id, nil
}

// Lookup returns the descriptor registered for id, if any.
func (r *Registry) Lookup(id uint32) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[id]
	return d, ok
}

// Descriptors returns every non-internal descriptor, in ID order, the
// catalog a server advertises to a client during Hello.
func (r *Registry) Descriptors() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Descriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		if !d.internal {
			out = append(out, d)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].ID > out[j].ID; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
