package audiovox

import "github.com/eshaz/rtl433/internal/device"

func init() {
	device.Register(AVX1B4S)
	device.Register(CarRemote)
	device.Register(ProOE3B)
}
