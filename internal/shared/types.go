package shared

import "strings"

// ValidationErrors carries every rule failure collected during a single
// validation pass. The order matches the order the rules were declared in,
// so callers can show the list to the user as-is.
type ValidationErrors []string

func (e ValidationErrors) Error() string {
	return strings.Join(e, "; ")
}

// Messages returns the underlying list for response details.
func (e ValidationErrors) Messages() []string {
	return e
}
