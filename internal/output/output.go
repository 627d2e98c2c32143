package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eshaz/rtl433/internal/device"
)

// Writer receives every record a decoder accepts.
type Writer interface {
	Write(deviceName string, rec device.Record) error
}

// New returns the writer registered under format ("json" or "log").
func New(format string, w io.Writer) (Writer, error) {
	switch format {
	case "", "json":
		return NewJSONWriter(w), nil
	case "log":
		logger := logrus.New()
		logger.SetOutput(w)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return &LogWriter{Logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// JSONWriter emits one JSON object per line, "time" first, then the record
// keys in decode order.
type JSONWriter struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, now: time.Now}
}

func (j *JSONWriter) Write(_ string, rec device.Record) error {
	line := make(device.Record, 0, len(rec)+1)
	line = append(line, device.Field{Key: "time", Value: j.now().Format("2006-01-02 15:04:05")})
	line = append(line, rec...)
	data, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	var buf bytes.Buffer
	buf.Write(data)
	buf.WriteByte('\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	_, err = j.w.Write(buf.Bytes())
	return err
}

// LogWriter reports records as structured log entries.
type LogWriter struct {
	Logger logrus.FieldLogger
}

func (l *LogWriter) Write(deviceName string, rec device.Record) error {
	l.Logger.WithFields(logrus.Fields(rec.Map())).WithField("device", deviceName).Info("decoded")
	return nil
}
