// Package hooks lets auxiliary logic run when an entity hits a
// persistence lifecycle point, without the save or delete path knowing
// who is listening. Hooks are registered per entity kind and invoked
// synchronously by the repositories at pre-save, post-save and
// pre-delete. A pre-save hook is an explicit transform step: it may
// mutate the pending entity before it is written.
package hooks

import "sync"

// Hook receives the entity at pre-save or pre-delete time.
type Hook func(entity any)

// PostSaveHook receives the entity after a write, with created telling
// an insert apart from an update.
type PostSaveHook func(entity any, created bool)

// Registry holds the hook lists per entity kind. Registration happens
// during startup; firing happens on every request, so reads use an
// RWMutex.
type Registry struct {
	mu        sync.RWMutex
	preSave   map[string][]Hook
	postSave  map[string][]PostSaveHook
	preDelete map[string][]Hook
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{
		preSave:   make(map[string][]Hook),
		postSave:  make(map[string][]PostSaveHook),
		preDelete: make(map[string][]Hook),
	}
}

// OnPreSave registers a hook run before an entity of the given kind is
// written.
func (r *Registry) OnPreSave(kind string, h Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preSave[kind] = append(r.preSave[kind], h)
}

// OnPostSave registers a hook run after an entity of the given kind
// was written.
func (r *Registry) OnPostSave(kind string, h PostSaveHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.postSave[kind] = append(r.postSave[kind], h)
}

// OnPreDelete registers a hook run before an entity of the given kind
// is removed.
func (r *Registry) OnPreDelete(kind string, h Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preDelete[kind] = append(r.preDelete[kind], h)
}

// FirePreSave runs the pre-save hooks for kind in registration order.
func (r *Registry) FirePreSave(kind string, entity any) {
	r.mu.RLock()
	hooks := r.preSave[kind]
	r.mu.RUnlock()
	for _, h := range hooks {
		h(entity)
	}
}

// FirePostSave runs the post-save hooks for kind in registration order.
func (r *Registry) FirePostSave(kind string, entity any, created bool) {
	r.mu.RLock()
	hooks := r.postSave[kind]
	r.mu.RUnlock()
	for _, h := range hooks {
		h(entity, created)
	}
}

// FirePreDelete runs the pre-delete hooks for kind in registration order.
func (r *Registry) FirePreDelete(kind string, entity any) {
	r.mu.RLock()
	hooks := r.preDelete[kind]
	r.mu.RUnlock()
	for _, h := range hooks {
		h(entity)
	}
}
