package audiovox

import (
	"fmt"

	"github.com/eshaz/rtl433/internal/bitbuffer"
	"github.com/eshaz/rtl433/internal/device"
)

const (
	avx1b4sModel   = "AVX1B4S-CarRemote"
	avx1b4sMinBits = 44
	avx1b4sMaxBits = 48
)

// AVX1B4S covers Audiovox Type 4 / Code Alarm Type 7 rolling-code keys
// (ATCD-1, AVX1BS4 FCC ID ELVATCC, A1BTX FCC ID ELVATFE). The code changes
// on every press and repeats while the button is held. It is reported,
// not verified.
//
//	|length|description    |example
//	|{20}  |transmitter id |0x3c93f
//	|{28}  |rolling code   |0x0933227
var AVX1B4S = &device.Device{
	Name:       "Audiovox AVX1B4S car key",
	Modulation: device.OOKPulseManchesterZeroBit,
	ShortWidth: 550,
	LongWidth:  550,
	ResetLimit: 1290,
	Fields:     []string{"model", "id", "code"},
	Decode:     decodeAVX1B4S,
}

func decodeAVX1B4S(bb *bitbuffer.Buffer) (device.Record, error) {
	bits := bb.Bits(0)
	if bits < avx1b4sMinBits || bits > avx1b4sMaxBits {
		return nil, fmt.Errorf("%w: %d bits", device.ErrAbortLength, bits)
	}
	b := bb.Row(0)

	id := uint32(b[0])<<12 | uint32(b[1])<<4 | uint32(b[2])>>4
	code := uint32(b[2]&0x0f)<<24 | uint32(b[3])<<16 | uint32(b[4])<<8 | uint32(b[5])

	if id == 0 || code == 0 {
		return nil, device.ErrAbortEarly
	}

	return device.Record{
		{Key: "model", Label: "model", Value: avx1b4sModel},
		{Key: "id", Label: "device-id", Value: id},
		{Key: "code", Label: "code", Value: code},
	}, nil
}
