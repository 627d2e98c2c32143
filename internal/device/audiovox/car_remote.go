package audiovox

import (
	"fmt"

	"github.com/eshaz/rtl433/internal/bitbuffer"
	"github.com/eshaz/rtl433/internal/device"
)

// CarRemote decodes the PWM variant of the Audiovox Type 4 transmitters
// (AVX1BS4, A1BTX, 105BP FCC ID ELVATJA).
//
// Layout: IIII CCCC X B
//   - I: 16 bit id
//   - C: 16 bit rolling code
//   - X: 1 unknown bit, possibly parity
//   - B: 4 button flags, several may be set at once
var CarRemote = &device.Device{
	Name:       "Audiovox car remote",
	Modulation: device.OOKPulsePWM,
	ShortWidth: 500,
	LongWidth:  945,
	ResetLimit: 20000,
	GapLimit:   4050,
	SyncWidth:  2000,
	Fields:     []string{"model", "id", "code", "button"},
	Decode:     decodeCarRemote,
}

const carRemoteBits = 37

func decodeCarRemote(bb *bitbuffer.Buffer) (device.Record, error) {
	if bits := bb.Bits(0); bits != carRemoteBits {
		return nil, fmt.Errorf("%w: %d bits", device.ErrAbortLength, bits)
	}
	if bb.NumRows() != 1 {
		return nil, fmt.Errorf("%w: %d rows", device.ErrAbortEarly, bb.NumRows())
	}
	b := bb.Row(0)

	id := uint32(b[0])<<8 | uint32(b[1])
	code := uint32(b[2])<<8 | uint32(b[3])
	button := uint32(b[4]>>3) & 0xf

	if id == 0 || code == 0 || button == 0 {
		return nil, device.ErrAbortEarly
	}

	return device.Record{
		{Key: "model", Label: "model", Value: "Audiovox-CarRemote"},
		{Key: "id", Label: "device-id", Value: id},
		{Key: "code", Label: "code", Value: code},
		{Key: "button", Label: "button", Value: button},
	}, nil
}
