package helpers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format of calendar dates in requests and query strings.
const DateLayout = "2006-01-02"

// PathUUID reads the named path value and checks that it is a UUID. On failure
// it writes a 400 and returns false.
func PathUUID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.PathValue(name)
	if _, err := uuid.Parse(v); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("%s must be a valid UUID", name))
		return "", false
	}
	return v, true
}

// PathInt reads the named path value as a positive integer. On failure it writes a 400 and returns false.
func PathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(r.PathValue(name))
	if err != nil || v < 1 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("%s must be a positive integer", name))
		return 0, false
	}
	return v, true
}

// IsUUID reports whether s parses as a UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// QueryDate reads an optional YYYY-MM-DD query parameter. A missing value yields nil.
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date in YYYY-MM-DD format", name)
	}
	return &t, nil
}

// QueryUUID reads an optional UUID query parameter.
func QueryUUID(r *http.Request, name string) (string, error) {
	s := r.URL.Query().Get(name)
	if s != "" && !IsUUID(s) {
		return "", fmt.Errorf("%s must be a valid UUID", name)
	}
	return s, nil
}
