package node

import (
	"context"
	"fmt"
	"sync"

	"github.com/imgship/imgship/pkg/tensor"
)

// Node is a single pipeline step. Execute performs the node's side
// effect and returns the input images unchanged so the pipeline can
// chain further steps off the same batch.
type Node interface {
	Execute(ctx context.Context, images tensor.Array, caption string) (tensor.Array, error)
}

// Factory constructs a ready-to-use Node.
type Factory func() (Node, error)

type registration struct {
	factory     Factory
	displayName string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]registration)
)

// Register makes a node type available under the given name, with a
// human-readable display name for host UIs. It is intended to be called
// from an init function. Registering a nil factory or the same name
// twice panics.
func Register(name, displayName string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if factory == nil {
		panic("node: Register factory is nil")
	}
	if _, dup := registry[name]; dup {
		panic("node: Register called twice for node " + name)
	}
	registry[name] = registration{factory: factory, displayName: displayName}
}

// New instantiates the node type registered under name.
func New(name string) (Node, error) {
	registryMu.RLock()
	reg, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("node: unknown node type %q", name)
	}
	return reg.factory()
}

// Mappings returns a copy of the name to factory table.
func Mappings() map[string]Factory {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make(map[string]Factory, len(registry))
	for name, reg := range registry {
		out[name] = reg.factory
	}
	return out
}

// DisplayNames returns a copy of the name to display name table.
func DisplayNames() map[string]string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make(map[string]string, len(registry))
	for name, reg := range registry {
		out[name] = reg.displayName
	}
	return out
}
