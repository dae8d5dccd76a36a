package module

import "sync"

// process wide port registry, filled while the api mounts its modules
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores the port bundle of the named module, a second call replaces it
func Register(name string, ports any) {
	mu.Lock()
	defer mu.Unlock()
	reg[name] = ports
}

// PortsAs returns the named bundle when it is a T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := reg[name].(T)
	return v, ok
}

// Reset empties the registry, tests remount the api many times
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	reg = map[string]any{}
}
