package registry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/pixil98/go-modsave/internal/keys"
)

// Handle is the opaque token returned by registration. The zero handle
// is never issued.
type Handle uint64

// Config is the per-key persistence configuration a mod supplies at
// registration time.
type Config struct {
	Save  SaveTrigger
	Load  LoadTrigger
	Reset ResetTrigger

	Target StoreTarget

	// BaseKey overrides the derived "{owner}.{declaringType}" prefix.
	BaseKey string

	// Suffix disambiguates multiple registered instances of the same
	// declaring type.
	Suffix string
}

// Entry pairs a registered key with its configuration, its derived base
// key, and the value captured at registration time for reset.
type Entry struct {
	handle  Handle
	owner   string
	key     keys.Key
	cfg     Config
	baseKey string

	// original is the JSON-encoded registration-time value. Encoding it
	// decouples reset from later mutation of shared slices and maps.
	original   json.RawMessage
	originalOK bool
}

func (e *Entry) Handle() Handle { return e.handle }
func (e *Entry) Owner() string  { return e.owner }
func (e *Entry) Key() keys.Key  { return e.key }
func (e *Entry) Config() Config { return e.cfg }

// StorageKey derives the unique key string this entry reads and writes:
// base key, optional suffix, member name, dot-joined.
func (e *Entry) StorageKey() (string, error) {
	if e.baseKey == "" {
		return "", fmt.Errorf("entry %s.%s has no base key", e.key.DeclaringType(), e.key.Member())
	}

	if e.cfg.Suffix != "" {
		return e.baseKey + "." + e.cfg.Suffix + "." + e.key.Member(), nil
	}
	return e.baseKey + "." + e.key.Member(), nil
}

// captureOriginal snapshots a key's current value for later reset.
func captureOriginal(key keys.Key) (json.RawMessage, bool) {
	v, ok := key.TryGet()
	if !ok {
		return nil, false
	}

	b, err := json.Marshal(v)
	if err != nil {
		slog.Warn("encoding original value failed",
			"type", key.DeclaringType(), "member", key.Member(), "error", err)
		return nil, false
	}
	return b, true
}

// RestoreOriginal sets the key back to the value captured at
// registration. It returns false when no original was captured, the
// stored encoding no longer decodes, or the key has no setter.
func (e *Entry) RestoreOriginal() bool {
	if !e.originalOK {
		slog.Warn("no original value captured, skipping reset",
			"type", e.key.DeclaringType(), "member", e.key.Member())
		return false
	}

	out := reflect.New(e.key.ValueType())
	if err := json.Unmarshal(e.original, out.Interface()); err != nil {
		slog.Warn("decoding original value failed",
			"type", e.key.DeclaringType(), "member", e.key.Member(), "error", err)
		return false
	}

	if !e.key.TrySet(out.Elem().Interface()) {
		slog.Warn("key rejected reset value",
			"type", e.key.DeclaringType(), "member", e.key.Member())
		return false
	}
	return true
}
