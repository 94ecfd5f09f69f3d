package runtime

import "sync"

// Registry is the explicit lookup table of live component instances for
// one Context. Instances register on construction and deregister on
// Destroy.
type Registry struct {
	mu        sync.RWMutex
	instances map[string]*Instance
}

func newRegistry() *Registry {
	return &Registry{
		instances: make(map[string]*Instance),
	}
}

// Lookup returns the instance with the given ID, or nil.
func (r *Registry) Lookup(id string) *Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.instances[id]
}

// Count returns the number of live instances.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.instances)
}

// Range calls fn for each live instance until fn returns false.
func (r *Registry) Range(fn func(*Instance) bool) {
	r.mu.RLock()
	snapshot := make([]*Instance, 0, len(r.instances))
	for _, inst := range r.instances {
		snapshot = append(snapshot, inst)
	}
	r.mu.RUnlock()

	for _, inst := range snapshot {
		if !fn(inst) {
			return
		}
	}
}

func (r *Registry) add(inst *Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances[inst.id] = inst
}

func (r *Registry) remove(inst *Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.instances, inst.id)
}
