package device

import (
	"errors"
	"fmt"

	"github.com/eshaz/rtl433/internal/bitbuffer"
)

// Modulation names the line coding a decoder expects upstream.
type Modulation int

const (
	OOKPulsePWM Modulation = iota + 1
	OOKPulsePPM
	OOKPulseManchesterZeroBit
)

func (m Modulation) String() string {
	switch m {
	case OOKPulsePWM:
		return "OOK_PWM"
	case OOKPulsePPM:
		return "OOK_PPM"
	case OOKPulseManchesterZeroBit:
		return "OOK_MC_ZEROBIT"
	default:
		return fmt.Sprintf("Modulation(%d)", int(m))
	}
}

// DecodeFunc turns one capture into a record. It must not retain the buffer.
type DecodeFunc func(*bitbuffer.Buffer) (Record, error)

// Device describes a decoder: its timing, its output keys and its entry
// point. Widths and limits are in microseconds.
type Device struct {
	Name       string
	Modulation Modulation
	ShortWidth float64
	LongWidth  float64
	ResetLimit float64
	GapLimit   float64
	SyncWidth  float64
	Tolerance  float64
	Priority   int
	Fields     []string
	Decode     DecodeFunc
}

// Validate checks the descriptor is usable by the dispatcher.
func (d *Device) Validate() error {
	if d == nil {
		return errors.New("nil device")
	}
	if d.Name == "" {
		return errors.New("device name required")
	}
	if d.Decode == nil {
		return fmt.Errorf("device %q: decode function required", d.Name)
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("device %q: field list required", d.Name)
	}
	if d.ShortWidth <= 0 || d.ResetLimit <= 0 {
		return fmt.Errorf("device %q: short width and reset limit must be positive", d.Name)
	}
	return nil
}

// Run executes the decoder against bb. Errors are wrapped with the device
// name and keep their status sentinel.
func Run(d *Device, bb *bitbuffer.Buffer) (Record, error) {
	rec, err := d.Decode(bb)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}
	for _, f := range rec {
		if !d.declares(f.Key) {
			return nil, fmt.Errorf("%s: undeclared output field %q", d.Name, f.Key)
		}
	}
	return rec, nil
}

func (d *Device) declares(key string) bool {
	for _, f := range d.Fields {
		if f == key {
			return true
		}
	}
	return false
}
