package astroflex

import (
	"fmt"

	"github.com/eshaz/rtl433/internal/bitbuffer"
	"github.com/eshaz/rtl433/internal/device"
)

// Astrostart2000 decodes the fixed-code Astrostart 2000/3000 transmitters
// (FCC ID J5F-TX2000). Every press sends three messages.
//
// Layout: B X IIII c
//   - B: 8 bit button code
//   - X: inverse of B
//   - I: 32 bit id
//   - c: 4 bit nibble-sum checksum over I
var Astrostart2000 = &device.Device{
	Name:       "Astrostart 2000 Car Remote",
	Modulation: device.OOKPulsePPM,
	ShortWidth: 326,
	LongWidth:  526,
	ResetLimit: 541,
	GapLimit:   541,
	Tolerance:  80,
	Fields: []string{
		"model", "id", "button_code", "panic", "start", "stop",
		"lock", "unlock", "trunk", "multiple", "mic",
	},
	Decode: decodeAstrostart2000,
}

const astrostartBits = 52

type buttons struct {
	panic, start, stop, lock, unlock, trunk, multiple int
}

// The remote maps button combinations to codes, they are not bit flags.
var buttonCodes = map[byte]buttons{
	0x2b: {lock: 1},
	0x1f: {panic: 1},
	0x13: {start: 1},
	0x2f: {stop: 1},
	0x23: {trunk: 1},
	0x0b: {unlock: 1},
	0x35: {panic: 1, lock: 1},
	0x0d: {panic: 1, stop: 1},
	0x25: {panic: 1, trunk: 1},
	0x15: {panic: 1, unlock: 1},
	0x37: {start: 1, lock: 1},
	0x2d: {start: 1, panic: 1},
	0x33: {start: 1, stop: 1},
	0x3d: {start: 1, trunk: 1},
	0x3b: {start: 1, unlock: 1},
	0x03: {stop: 1, lock: 1},
	0x1d: {stop: 1, trunk: 1},
	0x17: {stop: 1, unlock: 1},
	0x27: {trunk: 1, lock: 1},
	0x07: {trunk: 1, unlock: 1},
	0x0f: {unlock: 1, lock: 1},
	0x3f: {multiple: 1},
}

func decodeAstrostart2000(bb *bitbuffer.Buffer) (device.Record, error) {
	if bits := bb.Bits(0); bits != astrostartBits {
		return nil, fmt.Errorf("%w: %d bits", device.ErrAbortLength, bits)
	}
	if bb.NumRows() != 1 {
		return nil, fmt.Errorf("%w: %d rows", device.ErrAbortEarly, bb.NumRows())
	}
	b := bb.Row(0)

	if b[0] != ^b[1] {
		return nil, fmt.Errorf("%w: button 0x%02x inverse 0x%02x", device.ErrFailMIC, b[0], b[1])
	}
	if got, want := b[6]>>4, checksum(b[2:6]); got != want {
		return nil, fmt.Errorf("%w: checksum 0x%x, want 0x%x", device.ErrFailMIC, got, want)
	}

	id := uint32(b[2])<<24 | uint32(b[3])<<16 | uint32(b[4])<<8 | uint32(b[5])
	btn := buttonCodes[b[0]] // unknown codes leave every flag clear

	return device.Record{
		{Key: "model", Label: "model", Value: "Astrostart-2000"},
		{Key: "id", Label: "device-id", Value: id},
		{Key: "button_code", Label: "Button Code", Value: int(b[0])},
		{Key: "panic", Label: "Panic", Value: btn.panic},
		{Key: "start", Label: "Start", Value: btn.start},
		{Key: "stop", Label: "Stop", Value: btn.stop},
		{Key: "lock", Label: "Lock", Value: btn.lock},
		{Key: "unlock", Label: "Unlock", Value: btn.unlock},
		{Key: "trunk", Label: "Trunk", Value: btn.trunk},
		{Key: "multiple", Label: "Multiple", Value: btn.multiple},
		{Key: "mic", Label: "Integrity", Value: "CHECKSUM"},
	}, nil
}

// checksum adds every nibble of data modulo 16.
func checksum(data []byte) byte {
	var sum byte
	for _, v := range data {
		sum += v>>4 + v&0x0f
	}
	return sum & 0x0f
}
