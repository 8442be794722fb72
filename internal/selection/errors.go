package selection

import "fmt"

// IdentityError is returned when a resource's id cannot be determined. It
// signals a misconfigured store: either the resources carry no id or the
// store needs a custom IDResolver.
type IdentityError struct {
	Index    int
	Resource any
	Reason   string
}

func (e *IdentityError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "resource does not contain an id; pass an IDResolver"
	}
	return fmt.Sprintf("selection: resource at index %d: %s", e.Index, reason)
}
