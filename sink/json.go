package sink

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// JSON writes one JSON object per message.
type JSON struct {
	mu     sync.Mutex
	w      io.Writer
	min    Level
	fields map[string]any
	now    func() time.Time
}

// NewJSON creates a JSON lines sink. fields are copied into every entry.
func NewJSON(w io.Writer, min Level, fields map[string]any) *JSON {
	base := make(map[string]any, len(fields))
	for k, v := range fields {
		base[k] = v
	}
	return &JSON{
		w:      w,
		min:    min,
		fields: base,
		now:    time.Now,
	}
}

func (j *JSON) Debug(msg string)   { j.log(LevelDebug, msg) }
func (j *JSON) Info(msg string)    { j.log(LevelInfo, msg) }
func (j *JSON) Warn(msg string)    { j.log(LevelWarn, msg) }
func (j *JSON) Error(msg string)   { j.log(LevelError, msg) }
func (j *JSON) Fatal(msg string)   { j.log(LevelFatal, msg) }
func (j *JSON) Unknown(msg string) { j.log(LevelUnknown, msg) }

func (j *JSON) log(level Level, msg string) {
	if level < j.min {
		return
	}

	entry := make(map[string]any, len(j.fields)+3)
	for k, v := range j.fields {
		entry[k] = v
	}
	entry["timestamp"] = j.now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["msg"] = msg

	data, err := json.Marshal(entry)
	if err != nil {
		return // Silently drop malformed entries
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	_, _ = j.w.Write(append(data, '\n'))
}
