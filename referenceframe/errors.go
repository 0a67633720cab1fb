package referenceframe

import "github.com/pkg/errors"

// NewTransformMissingError returns an error indicating that a transform is not part of the skeleton.
func NewTransformMissingError(name string) error {
	return errors.Errorf("transform %q missing from skeleton", name)
}

// NewParentTransformMissingError returns an error indicating that a transform's parent has not been added.
func NewParentTransformMissingError(name, parent string) error {
	return errors.Errorf("parent %q of transform %q missing from skeleton", parent, name)
}

// NewDuplicateTransformError returns an error indicating that a transform name is already taken.
func NewDuplicateTransformError(name string) error {
	return errors.Errorf("cannot add transform %q, a transform with that name already exists", name)
}
