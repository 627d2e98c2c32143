package device

import (
	"fmt"
	"sort"
	"sync"
)

var (
	regMu    sync.RWMutex
	registry = map[string]*Device{}
)

// Register stores a device descriptor. It is meant to be called from init
// and panics on an invalid descriptor or a duplicate name.
func Register(dev *Device) {
	if err := dev.Validate(); err != nil {
		panic(err)
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := registry[dev.Name]; ok {
		panic(fmt.Sprintf("device %q registered twice", dev.Name))
	}
	registry[dev.Name] = dev
}

// Devices returns every registered descriptor ordered by priority, then name.
func Devices() []*Device {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]*Device, 0, len(registry))
	for _, dev := range registry {
		out = append(out, dev)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Lookup returns the descriptor registered under name.
func Lookup(name string) (*Device, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	dev, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("device %q not registered", name)
	}
	return dev, nil
}

func unregister(name string) {
	regMu.Lock()
	defer regMu.Unlock()
	delete(registry, name)
}
