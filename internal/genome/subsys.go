package genome

import (
	"fmt"

	"github.com/seedtk/clustereport/internal/tabio"
)

// SubsystemRegistry assigns short, stable identifiers to subsystem names.
// An identifier, once issued, is never reassigned. Given the same sequence
// of names, two registries produce the same mapping.
type SubsystemRegistry struct {
	ids   map[string]string
	names []string
}

// NewSubsystemRegistry creates an empty registry.
func NewSubsystemRegistry() *SubsystemRegistry {
	return &SubsystemRegistry{ids: make(map[string]string)}
}

// IDFor returns the identifier for a subsystem name, assigning the next
// unused identifier on first sight.
func (r *SubsystemRegistry) IDFor(name string) string {
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := fmt.Sprintf("SS%d", len(r.names)+1)
	r.ids[name] = id
	r.names = append(r.names, name)
	return id
}

// Name returns the subsystem name for an identifier, or an empty string if
// the identifier was never issued.
func (r *SubsystemRegistry) Name(id string) string {
	var n int
	if _, err := fmt.Sscanf(id, "SS%d", &n); err != nil || n < 1 || n > len(r.names) {
		return ""
	}
	return r.names[n-1]
}

// Len returns the number of identifiers issued.
func (r *SubsystemRegistry) Len() int {
	return len(r.names)
}

// Save writes the identifier mapping as a two-column tab file, in
// issuance order.
func (r *SubsystemRegistry) Save(path string) error {
	w, err := tabio.NewWriter(path, "subsystem_id", "subsystem_name")
	if err != nil {
		return fmt.Errorf("create subsystem mapping: %w", err)
	}
	for i, name := range r.names {
		w.WriteRecord(fmt.Sprintf("SS%d", i+1), name)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("write subsystem mapping: %w", err)
	}
	return nil
}
