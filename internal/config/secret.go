package config

import "log/slog"

// redacted is what a Secret renders as anywhere it could end up in output.
const redacted = "[redacted]"

// Secret is a string that refuses to print itself. It satisfies fmt.Stringer,
// slog.LogValuer and the text marshaller so that credential material passed
// through configuration cannot leak via logs or error messages.
type Secret string

// Reveal returns the underlying credential. Callers hand this directly to an
// external collaborator and nothing else.
func (s Secret) Reveal() string { return string(s) }

func (s Secret) String() string { return redacted }

// GoString keeps %#v formatting from bypassing the redaction.
func (s Secret) GoString() string { return redacted }

// LogValue implements slog.LogValuer.
func (s Secret) LogValue() slog.Value { return slog.StringValue(redacted) }

// MarshalText implements encoding.TextMarshaler so serialized stacks carry
// the redaction marker rather than the credential.
func (s Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }
