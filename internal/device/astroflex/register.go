package astroflex

import "github.com/eshaz/rtl433/internal/device"

func init() {
	device.Register(Astrostart2000)
}
