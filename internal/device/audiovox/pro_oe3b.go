package audiovox

import (
	"fmt"

	"github.com/eshaz/rtl433/internal/bitbuffer"
	"github.com/eshaz/rtl433/internal/device"
)

// ProOE3B decodes the fixed-code PRO-OE3B / AVX01BT3CL3 remote (FCC ID
// BGAOE3B) on 302.9 MHz. Bits are sent inverted. Several buttons can be held
// together, each sets its own flag.
//
// Layout after inversion: IIII FF, then one trailing bit
//   - I: 16 bit id
//   - F: 0xaa bits always set, trunk 0x10, unlock 0x04, lock 0x01
var ProOE3B = &device.Device{
	Name:       "Audiovox PRO-OE3B Car Remote (-f 303M)",
	Modulation: device.OOKPulsePWM,
	ShortWidth: 445,
	LongWidth:  895,
	ResetLimit: 1790,
	GapLimit:   1790,
	SyncWidth:  1368,
	Priority:   10,
	Fields:     []string{"model", "id", "button", "trunk", "unlock", "lock"},
	Decode:     decodeProOE3B,
}

const proOE3BBits = 25

func decodeProOE3B(bb *bitbuffer.Buffer) (device.Record, error) {
	bits := bb.Bits(0)
	if bits != proOE3BBits {
		return nil, fmt.Errorf("%w: %d bits", device.ErrAbortLength, bits)
	}
	if bb.NumRows() != 1 {
		return nil, fmt.Errorf("%w: %d rows", device.ErrAbortEarly, bb.NumRows())
	}
	// flag bits sit on the 0x55 positions, the 0xaa positions are always low
	raw := bb.Row(0)
	if raw[2]&0xaa != 0 || raw[2] == 0x55 {
		return nil, fmt.Errorf("%w: button byte 0x%02x", device.ErrFailSanity, raw[2])
	}

	inv := &bitbuffer.Buffer{}
	inv.AddRow(raw, bits)
	inv.Invert()
	b := inv.Row(0)

	id := uint32(b[0])<<8 | uint32(b[1])
	if id == 0 || id == 0xffff {
		return nil, fmt.Errorf("%w: id 0x%04x", device.ErrFailSanity, id)
	}

	trunk := flag(b[2], 0x10)
	unlock := flag(b[2], 0x04)
	lock := flag(b[2], 0x01)

	return device.Record{
		{Key: "model", Label: "model", Value: "Audiovox-PROOE3B"},
		{Key: "id", Label: "device-id", Value: id},
		{Key: "button", Label: "button", Value: trunk<<2 | unlock<<1 | lock},
		{Key: "trunk", Label: "trunk", Value: trunk},
		{Key: "unlock", Label: "unlock", Value: unlock},
		{Key: "lock", Label: "lock", Value: lock},
	}, nil
}

func flag(b, mask byte) int {
	if b&mask != 0 {
		return 1
	}
	return 0
}
