package forms

// Errors collects validation failures for one submitted form. Field maps a
// field name to the message of its first failed rule; NonField holds
// form-level failures such as the password confirmation check.
type Errors struct {
	Field    map[string]string
	NonField []string
}

// NewErrors returns an empty, ready-to-use error collection.
func NewErrors() *Errors {
	return &Errors{Field: make(map[string]string)}
}

// AddField records a failure for a named field. Later failures for the same
// field are ignored: the rules run in order and the first one wins.
func (e *Errors) AddField(name, message string) {
	if _, ok := e.Field[name]; !ok {
		e.Field[name] = message
	}
}

// AddNonField records a form-level failure.
func (e *Errors) AddNonField(message string) {
	e.NonField = append(e.NonField, message)
}

// Empty reports whether the form passed every rule.
func (e *Errors) Empty() bool {
	return len(e.Field) == 0 && len(e.NonField) == 0
}
