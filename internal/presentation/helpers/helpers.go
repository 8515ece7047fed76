package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MaxBody bounds every JSON request body the storefront accepts.
const MaxBody = 1 << 20

var (
	ErrEmptyBody    = errors.New("empty body")
	ErrTrailingData = errors.New("unexpected data after JSON value")
)

// DecodeJSON reads exactly one JSON value into v. Unknown fields are rejected.
func DecodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(io.LimitReader(r, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	if dec.More() {
		return ErrTrailingData
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func HttpError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}
