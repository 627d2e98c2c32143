package options

import (
	"context"
	"fmt"
	"strings"

	"github.com/eshaz/rtl433/internal/device"
)

type contextKey struct{}

// WithDevices stores a device allow-list inside the context. An empty list
// leaves the context untouched, meaning every registered device is enabled.
func WithDevices(ctx context.Context, names []string) context.Context {
	if len(names) == 0 {
		return ctx
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return context.WithValue(ctx, contextKey{}, set)
}

// Enabled reports whether the named device may run under ctx.
func Enabled(ctx context.Context, name string) bool {
	set, ok := ctx.Value(contextKey{}).(map[string]struct{})
	if !ok {
		return true
	}
	_, ok = set[name]
	return ok
}

// ParseDeviceList splits a comma separated list of device names and checks
// each one is registered.
func ParseDeviceList(input string) ([]string, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	var names []string
	for _, part := range strings.Split(input, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, err := device.Lookup(name); err != nil {
			return nil, fmt.Errorf("device list: %w", err)
		}
		names = append(names, name)
	}
	return names, nil
}
