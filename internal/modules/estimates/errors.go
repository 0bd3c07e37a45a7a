package estimates

import "errors"

var (
	ErrClientNameRequired = errors.New("client name is required")
	ErrNoLineItems        = errors.New("at least one line item is required")
	ErrTotalsMismatch     = errors.New("submitted totals do not match the calculated totals")
	ErrStatusRequired     = errors.New("status is required")
	ErrNumberExhausted    = errors.New("could not allocate a unique estimate number")
)
