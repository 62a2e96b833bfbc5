// Package repository provides data access layer implementations for the application.
package repository

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Keyset pagination cursor: base64("<RFC3339Nano created_at>:<id>"). The
// cursor is opaque to clients; both halves are needed because created_at is
// not unique.

// DecodeCursor parses a cursor token. An empty token decodes to the zero
// cursor, meaning "from the start".
func DecodeCursor(token string) (time.Time, uint64, error) {
	if token == "" {
		return time.Time{}, 0, nil
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, 0, err
	}
	// The timestamp itself contains colons, so split at the last one.
	sep := strings.LastIndexByte(string(raw), ':')
	if sep < 0 {
		return time.Time{}, 0, errors.New("bad cursor")
	}
	t, err := time.Parse(time.RFC3339Nano, string(raw[:sep]))
	if err != nil {
		return time.Time{}, 0, err
	}
	id, err := strconv.ParseUint(string(raw[sep+1:]), 10, 64)
	return t, id, err
}

// EncodeCursor builds a cursor token pointing just past the given row.
func EncodeCursor(t time.Time, id uint64) string {
	if t.IsZero() {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%d", t.Format(time.RFC3339Nano), id)))
}
