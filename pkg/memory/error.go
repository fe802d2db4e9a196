package memory

import "strconv"

// StatusError is returned when the memory server answers with a
// non-success status code.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e StatusError) Error() string {
	msg := "memory server returned status " + strconv.Itoa(e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}

	return msg
}
