package dtos

// FieldErrors maps a request field name to a human-readable validation
// message. Expected validation failures travel as values, never as errors:
// an empty map means the request passed validation and state was mutated.
type FieldErrors map[string]string

// Add records a validation message against a field, keeping the first
// message when a field is flagged twice.
func (e FieldErrors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// HasErrors reports whether any field failed validation.
func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}
