package device

import "errors"

var (
	ErrAbortLength = errors.New("bit length mismatch")
	ErrAbortEarly  = errors.New("implausible data, aborted early")
	ErrFailMIC     = errors.New("integrity check failed")
	ErrFailSanity  = errors.New("sanity check failed")
)

// Numeric decode statuses reported to observers. A positive status is the
// number of events emitted.
const (
	StatusAbortLength = -1
	StatusAbortEarly  = -2
	StatusFailMIC     = -3
	StatusFailSanity  = -4
	StatusFailOther   = -5
)

// Status maps a decode error to its numeric status; nil means one event.
func Status(err error) int {
	switch {
	case err == nil:
		return 1
	case errors.Is(err, ErrAbortLength):
		return StatusAbortLength
	case errors.Is(err, ErrAbortEarly):
		return StatusAbortEarly
	case errors.Is(err, ErrFailMIC):
		return StatusFailMIC
	case errors.Is(err, ErrFailSanity):
		return StatusFailSanity
	default:
		return StatusFailOther
	}
}

// StatusName is the label used for a status in logs and metrics.
func StatusName(status int) string {
	switch {
	case status > 0:
		return "ok"
	case status == StatusAbortLength:
		return "abort_length"
	case status == StatusAbortEarly:
		return "abort_early"
	case status == StatusFailMIC:
		return "fail_mic"
	case status == StatusFailSanity:
		return "fail_sanity"
	default:
		return "fail_other"
	}
}
