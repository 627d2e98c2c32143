package rtl433

import (
	"context"

	internalopts "github.com/eshaz/rtl433/internal/options"
)

// DecodeOptions configures decoding.
type DecodeOptions struct {
	// Devices is a comma separated allow-list of device names. Empty enables all.
	Devices string
	// Observer, when set, is called with the status of every decode attempt.
	Observer func(device string, status int)
}

func (opts DecodeOptions) toInternal(ctx context.Context) (context.Context, error) {
	names, err := internalopts.ParseDeviceList(opts.Devices)
	if err != nil {
		return ctx, err
	}
	return internalopts.WithDevices(ctx, names), nil
}
