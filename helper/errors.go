package helper

import "fmt"

// NewError wraps err with the operation that failed, keeping the cause
// available for errors.Is/errors.As.
func NewError(operation string, err error) error {
	return fmt.Errorf("error in %v: %w", operation, err)
}
