package mockapi

import (
	"bytes"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

const maxBody = 1 << 20

func readAll(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, maxBody))
}

func withBody(r *http.Request, raw []byte) *http.Request {
	r.Body = io.NopCloser(bytes.NewReader(raw))
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
