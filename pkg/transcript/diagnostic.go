// Package transcript records the per-ticket, append-only event log and the
// size-capped diagnostic text type used throughout progress reporting.
package transcript

import "encoding/json"

// MaxDiagnosticBytes is the hard cap enforced by NewDiagnosticText.
const MaxDiagnosticBytes = 100

// DiagnosticText is a string guaranteed to be at most MaxDiagnosticBytes long.
// The cap is a type invariant: the only way to produce a DiagnosticText is
// through NewDiagnosticText, which truncates and marks truncation with a
// trailing "...". There is no conforming call site that can bypass the cap.
type DiagnosticText struct {
	text string
}

// NewDiagnosticText truncates s to MaxDiagnosticBytes, appending "..." when
// truncation occurred.
func NewDiagnosticText(s string) DiagnosticText {
	if len(s) <= MaxDiagnosticBytes {
		return DiagnosticText{text: s}
	}
	return DiagnosticText{text: s[:MaxDiagnosticBytes-3] + "..."}
}

// String returns the capped text.
func (d DiagnosticText) String() string {
	return d.text
}

// MarshalJSON implements json.Marshaler so DiagnosticText serializes as a
// plain JSON string rather than an object.
func (d DiagnosticText) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.text)
}

// UnmarshalJSON implements json.Unmarshaler, re-applying the cap on decode
// so values read back from a transcript file still satisfy the invariant.
func (d *DiagnosticText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = NewDiagnosticText(s)
	return nil
}
