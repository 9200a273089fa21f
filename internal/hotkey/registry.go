package hotkey

// Registry maps hotkey ids to callbacks. It is owned by the application
// root and only touched from the UI thread.
type Registry struct {
	callbacks map[int]func()
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{callbacks: make(map[int]func())}
}

// Set binds callback to id, replacing any previous one
func (r *Registry) Set(id int, callback func()) {
	r.callbacks[id] = callback
}

// Clear removes the callback bound to id
func (r *Registry) Clear(id int) {
	delete(r.callbacks, id)
}

// Dispatch invokes the callback bound to id and reports whether one ran
func (r *Registry) Dispatch(id int) bool {
	callback, ok := r.callbacks[id]
	if !ok || callback == nil {
		return false
	}
	callback()
	return true
}

// Len returns the number of bound ids
func (r *Registry) Len() int {
	return len(r.callbacks)
}
