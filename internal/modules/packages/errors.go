package packages

import "errors"

var (
	ErrNameRequired     = errors.New("package name is required")
	ErrNoLineItems      = errors.New("at least one line item with a description is required")
	ErrCategoryRequired = errors.New("name and label are required")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryInUse    = errors.New("cannot delete category that is being used by packages")
)
