package module

import "sync"

// process wide port sets keyed by module name, filled while the API mounts
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register publishes ports under name, replacing any earlier set
func Register(name string, ports any) {
	mu.Lock()
	defer mu.Unlock()
	reg[name] = ports
}

// PortsAs returns the ports registered under name when they are a T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, found := reg[name]
	mu.RUnlock()
	out, ok := v.(T)
	return out, found && ok
}

// Reset forgets every registration
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(reg)
}
