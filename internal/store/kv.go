package store

import (
	"errors"
	"strings"

	"github.com/goccy/go-json"
)

// Well-known keys.
const (
	KeyAuth = "auth"
	KeyLang = "lang"
)

// KV is a durable, synchronous key/value medium holding structured values.
//
// Get reports false for a missing key and for stored text that does not decode into v;
// callers treat both as "absent". Set returns only after the value is durable.
type KV interface {
	Get(key string, v any) bool
	Set(key string, v any) error
}

// Inspector exposes the raw stored text. Used by diagnostics only.
type Inspector interface {
	Keys() ([]string, error)
	GetRaw(key string) (string, bool)
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

var errEmptyKey = errors.New("store: empty key")

func normalizeKey(k string) (string, error) {
	k = strings.TrimSpace(k)
	if k == "" {
		return "", errEmptyKey
	}
	return k, nil
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decode never panics on bad input; a nil or non-pointer target is reported as a failure.
func decode(raw string, v any) bool {
	if strings.TrimSpace(raw) == "" || v == nil {
		return false
	}
	return json.Unmarshal([]byte(raw), v) == nil
}
