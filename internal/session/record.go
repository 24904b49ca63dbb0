// Package session holds the login-session value types shared by the auth
// surface: the serializable Record handed to clients and the credential
// pair the users service rotates on login and renewal.
package session

import (
	"encoding/json"
	"fmt"
)

// Record is an immutable snapshot of one login session: the bearer token
// pair, the expiration instant as opaque text, and the owner's numeric id.
// Records compare with ==; producing an updated session means constructing
// a new Record, never mutating one.
type Record struct {
	sessionToken      string
	sessionExpiration string
	updateToken       string
	id                int64
}

// NewRecord constructs a Record from its four fields. Construction is total:
// no validation is performed on the tokens or the expiration text.
func NewRecord(sessionToken, sessionExpiration, updateToken string, id int64) Record {
	return Record{
		sessionToken:      sessionToken,
		sessionExpiration: sessionExpiration,
		updateToken:       updateToken,
		id:                id,
	}
}

// SessionToken returns the opaque bearer credential for the active session.
func (r Record) SessionToken() string { return r.sessionToken }

// SessionExpiration returns the expiration instant as opaque text.
func (r Record) SessionExpiration() string { return r.sessionExpiration }

// UpdateToken returns the opaque credential used to renew the session.
func (r Record) UpdateToken() string { return r.updateToken }

// ID returns the numeric identifier of the session owner.
func (r Record) ID() int64 { return r.id }

// Encode returns the serialized mapping for the record: exactly the four
// fields, names verbatim, values unchanged. Encode never fails.
func (r Record) Encode() map[string]any {
	return map[string]any{
		"session_token":      r.sessionToken,
		"session_expiration": r.sessionExpiration,
		"update_token":       r.updateToken,
		"id":                 r.id,
	}
}

// MarshalJSON implements json.Marshaler using the Encode mapping.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Encode())
}

// DecodeError is the only error the record codec produces. It names the
// offending field when one can be identified.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("session: decode record: %s", e.Reason)
	}
	return fmt.Sprintf("session: decode record: field %q: %s", e.Field, e.Reason)
}

// Decode parses a serialized record. All four fields are required and
// matched by exact, case-sensitive name; a missing field or a value of the
// wrong JSON type fails with a *DecodeError. Unknown extra fields are
// ignored. Decoding goes through a raw field map rather than struct tags
// because encoding/json matches tag names case-insensitively and fills
// absent fields with zero values, neither of which this contract allows.
func Decode(data []byte) (Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Record{}, &DecodeError{Reason: "payload is not a JSON object"}
	}

	sessionToken, err := stringField(fields, "session_token")
	if err != nil {
		return Record{}, err
	}
	sessionExpiration, err := stringField(fields, "session_expiration")
	if err != nil {
		return Record{}, err
	}
	updateToken, err := stringField(fields, "update_token")
	if err != nil {
		return Record{}, err
	}
	id, err := intField(fields, "id")
	if err != nil {
		return Record{}, err
	}

	return NewRecord(sessionToken, sessionExpiration, updateToken, id), nil
}

// UnmarshalJSON implements json.Unmarshaler with Decode's strict semantics.
func (r *Record) UnmarshalJSON(data []byte) error {
	rec, err := Decode(data)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// The field helpers unmarshal into pointers so JSON null, which unmarshal
// silently ignores for plain values, is rejected like any other type
// mismatch.

func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", &DecodeError{Field: key, Reason: "missing required field"}
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return "", &DecodeError{Field: key, Reason: "expected a string"}
	}
	return *s, nil
}

func intField(fields map[string]json.RawMessage, key string) (int64, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, &DecodeError{Field: key, Reason: "missing required field"}
	}
	var n *int64
	if err := json.Unmarshal(raw, &n); err != nil || n == nil {
		return 0, &DecodeError{Field: key, Reason: "expected an integer"}
	}
	return *n, nil
}
