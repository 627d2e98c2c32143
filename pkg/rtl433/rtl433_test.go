package rtl433

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eshaz/rtl433/internal/device"
)

func TestDecodeRowsAVX1B4S(t *testing.T) {
	result, err := DecodeRows(context.Background(), "{48}3c93f0933227")
	require.NoError(t, err)
	require.True(t, result.Accepted())
	require.Equal(t, "Audiovox AVX1B4S car key", result.Device)
	require.Equal(t, 48, result.BitCount)

	fs := result.FieldSet()
	id, err := fs.Uint("id")
	require.NoError(t, err)
	require.Equal(t, uint64(0x3C93F), id)
	code, err := fs.Hex("code", 7)
	require.NoError(t, err)
	require.Equal(t, "0x0933227", code)
	model, err := fs.String("model")
	require.NoError(t, err)
	require.Equal(t, "AVX1B4S-CarRemote", model)
}

func TestDecodeRowsCarRemote(t *testing.T) {
	result, err := DecodeRows(context.Background(), "{37}1234abcdaa")
	require.NoError(t, err)
	require.Equal(t, "Audiovox car remote", result.Device)
	button, err := result.FieldSet().Int("button")
	require.NoError(t, err)
	require.Equal(t, int64(5), button)
}

func TestDecodeRowsUnknown(t *testing.T) {
	result, err := DecodeRows(context.Background(), "{12}abc")
	require.NoError(t, err)
	require.False(t, result.Accepted())
	require.Equal(t, "unknown", result.Device)
	require.Equal(t, device.StatusAbortLength, result.Status)
	require.Nil(t, result.Fields)

	result, err = DecodeRows(context.Background(), "{48}000000000000")
	require.NoError(t, err)
	require.Equal(t, "unknown", result.Device)
	require.Equal(t, device.StatusAbortEarly, result.Status)
}

func TestDecodeRowsParseError(t *testing.T) {
	_, err := DecodeRows(context.Background(), "{48}xyz")
	require.Error(t, err)
}

func TestDecodeRowsDeviceFilter(t *testing.T) {
	var seen []string
	opts := DecodeOptions{
		Devices:  "Audiovox car remote",
		Observer: func(name string, _ int) { seen = append(seen, name) },
	}
	result, err := DecodeRowsWithOptions(context.Background(), "{48}3c93f0933227", opts)
	require.NoError(t, err)
	require.Equal(t, "unknown", result.Device)
	require.Equal(t, []string{"Audiovox car remote"}, seen)

	_, err = DecodeRowsWithOptions(context.Background(), "{48}3c93f0933227", DecodeOptions{Devices: "bogus"})
	require.Error(t, err)
}

func TestObserverSeesEveryAttempt(t *testing.T) {
	statuses := map[string]int{}
	opts := DecodeOptions{Observer: func(name string, status int) { statuses[name] = status }}
	_, err := DecodeRowsWithOptions(context.Background(), "{37}1234abcdaa", opts)
	require.NoError(t, err)
	require.Equal(t, 1, statuses["Audiovox car remote"])
	require.Equal(t, device.StatusAbortLength, statuses["Audiovox AVX1B4S car key"])
}

func TestResultString(t *testing.T) {
	result, err := DecodeRows(context.Background(), "{48}3c93f0933227")
	require.NoError(t, err)
	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.String()), &summary))
	require.Equal(t, "ok", summary["status"])
	require.Equal(t, map[string]any{
		"model": "AVX1B4S-CarRemote",
		"id":    float64(0x3C93F),
		"code":  float64(0x0933227),
	}, summary["fields"])
}

func TestListDevices(t *testing.T) {
	var avx *DeviceInfo
	for _, info := range ListDevices() {
		if info.Name == "Audiovox AVX1B4S car key" {
			info := info
			avx = &info
		}
	}
	require.NotNil(t, avx)
	require.Equal(t, "OOK_MC_ZEROBIT", avx.Modulation)
	require.Equal(t, 550.0, avx.ShortWidth)
	require.Equal(t, 550.0, avx.LongWidth)
	require.Equal(t, 1290.0, avx.ResetLimit)
	require.Equal(t, []string{"model", "id", "code"}, avx.Fields)
}

func TestFieldSetErrors(t *testing.T) {
	fs := Result{Fields: map[string]any{"neg": -1, "s": "0x10", "f": 1.5}}.FieldSet()
	_, err := fs.Uint("missing")
	require.Error(t, err)
	_, err = fs.Uint("neg")
	require.Error(t, err)
	u, err := fs.Uint("s")
	require.NoError(t, err)
	require.Equal(t, uint64(16), u)
	_, err = fs.Uint("f")
	require.Error(t, err)
	_, ok := Result{}.FieldSet().Raw("x")
	require.False(t, ok)
}

func TestFieldSetUnsignedToInt(t *testing.T) {
	fs := Result{Fields: map[string]any{
		"u":     uint(42),
		"u64":   uint64(1 << 40),
		"huge":  uint64(math.MaxUint64),
		"edge":  uint64(math.MaxInt64),
		"edge1": uint64(math.MaxInt64) + 1,
	}}.FieldSet()

	i, err := fs.Int("u")
	require.NoError(t, err)
	require.Equal(t, int64(42), i)
	i, err = fs.Int("u64")
	require.NoError(t, err)
	require.Equal(t, int64(1<<40), i)
	i, err = fs.Int("edge")
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), i)

	_, err = fs.Int("huge")
	require.ErrorContains(t, err, "overflows")
	_, err = fs.Int("edge1")
	require.Error(t, err)

	u, err := fs.Uint("huge")
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), u)
}
