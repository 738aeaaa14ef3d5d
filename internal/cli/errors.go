package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"userdir-cli/internal/api"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

// fieldError reports form errors as "field: message" pairs, sorted by key.
type fieldError struct {
	fields map[string]string
}

func (e fieldError) Error() string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.fields[k])
	}
	return strings.Join(parts, "; ")
}

// formErr prefers the per-field messages collected by a form over the raw request error.
func formErr(fields map[string]string, err error) error {
	if len(fields) > 0 {
		return fieldError{fields: fields}
	}
	if msg := api.Message(err); msg != "" {
		return errors.New(msg)
	}
	return err
}
