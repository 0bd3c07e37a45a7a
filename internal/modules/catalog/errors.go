package catalog

import "errors"

var (
	ErrNameRequired   = errors.New("name is required")
	ErrCategoryExists = errors.New("category already exists")
	ErrCategoryInUse  = errors.New("cannot delete category that is being used by products")
	ErrNoIDs          = errors.New("no product IDs provided")
)
