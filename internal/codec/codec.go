// Package codec decodes and encodes the wire shapes of the MN-ListDiff and
// QR-Info P2P messages into the internal/model types (spec §4.1).
package codec

import "fmt"

// MalformedMessageError reports a field-level decoding failure, naming the
// offending field so a caller can log or reject the peer that sent it.
type MalformedMessageError struct {
	Message string // which top-level message was being decoded, e.g. "MNListDiff"
	Field   string // which field failed
	Err     error
}

func (e *MalformedMessageError) Error() string {
	return fmt.Sprintf("codec: malformed %s.%s: %v", e.Message, e.Field, e.Err)
}

func (e *MalformedMessageError) Unwrap() error { return e.Err }

func malformed(message, field string, err error) error {
	if err == nil {
		return nil
	}
	return &MalformedMessageError{Message: message, Field: field, Err: err}
}
