package rtl433

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eshaz/rtl433/internal/bitbuffer"
	"github.com/eshaz/rtl433/internal/device"
	_ "github.com/eshaz/rtl433/internal/device/astroflex" // register devices
	_ "github.com/eshaz/rtl433/internal/device/audiovox"  // register devices
	"github.com/eshaz/rtl433/internal/options"
)

// Result captures the outcome of DecodeRows.
type Result struct {
	Device   string
	Rows     string
	BitCount int
	Status   int
	Record   device.Record
	Fields   map[string]any
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"device":    r.Device,
		"rows":      r.Rows,
		"bit_count": r.BitCount,
		"status":    device.StatusName(r.Status),
	}
	if len(r.Record) > 0 {
		summary["fields"] = r.Record
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("device: %s rows:%s (marshal error: %v)", r.Device, r.Rows, err)
	}
	return string(data)
}

// Accepted reports whether a device produced a record.
func (r Result) Accepted() bool {
	return r.Status > 0
}

// DecodeRows parses bit rows and runs every registered device over them.
func DecodeRows(ctx context.Context, rows string) (Result, error) {
	return DecodeRowsWithOptions(ctx, rows, DecodeOptions{})
}

// DecodeRowsWithOptions parses bit rows and returns the first record a
// device accepts, trying devices in priority order. When no device accepts
// the rows the result carries device "unknown" and the last status seen.
func DecodeRowsWithOptions(ctx context.Context, rows string, opts DecodeOptions) (Result, error) {
	ctx, err := opts.toInternal(ctx)
	if err != nil {
		return Result{}, err
	}
	bb, err := bitbuffer.Parse(rows)
	if err != nil {
		return Result{}, err
	}
	return decodeBuffer(ctx, bb, opts.Observer), nil
}

func decodeBuffer(ctx context.Context, bb *bitbuffer.Buffer, observe func(string, int)) Result {
	result := Result{
		Device:   "unknown",
		Rows:     bb.String(),
		BitCount: bb.Bits(0),
		Status:   device.StatusAbortLength,
	}
	for _, dev := range device.Devices() {
		if !options.Enabled(ctx, dev.Name) {
			continue
		}
		rec, err := device.Run(dev, bb)
		status := device.Status(err)
		if observe != nil {
			observe(dev.Name, status)
		}
		if err != nil {
			// keep the rejection that got furthest into a decoder
			if status < result.Status {
				result.Status = status
			}
			continue
		}
		result.Device = dev.Name
		result.Status = status
		result.Record = rec
		result.Fields = rec.Map()
		return result
	}
	return result
}

// DeviceInfo documents one registered decoder.
type DeviceInfo struct {
	Name       string   `json:"name"`
	Modulation string   `json:"modulation"`
	ShortWidth float64  `json:"short_width"`
	LongWidth  float64  `json:"long_width"`
	ResetLimit float64  `json:"reset_limit"`
	GapLimit   float64  `json:"gap_limit,omitempty"`
	SyncWidth  float64  `json:"sync_width,omitempty"`
	Tolerance  float64  `json:"tolerance,omitempty"`
	Priority   int      `json:"priority"`
	Fields     []string `json:"fields"`
}

// ListDevices returns the registered decoders in dispatch order.
func ListDevices() []DeviceInfo {
	devs := device.Devices()
	out := make([]DeviceInfo, 0, len(devs))
	for _, d := range devs {
		out = append(out, DeviceInfo{
			Name:       d.Name,
			Modulation: d.Modulation.String(),
			ShortWidth: d.ShortWidth,
			LongWidth:  d.LongWidth,
			ResetLimit: d.ResetLimit,
			GapLimit:   d.GapLimit,
			SyncWidth:  d.SyncWidth,
			Tolerance:  d.Tolerance,
			Priority:   d.Priority,
			Fields:     append([]string(nil), d.Fields...),
		})
	}
	return out
}
