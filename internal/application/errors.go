package application

import (
	"errors"
	"fmt"

	"gitget/internal/domain"
)

// ErrBatchFailed is matched by BatchError
var ErrBatchFailed = errors.New("batch failed")

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CollisionError reports a name or path that is already taken
type CollisionError struct {
	Kind  error // domain.ErrPackageNameCollision or domain.ErrPathCollision
	Value string
	Owner string // package currently holding Value, if any
}

func (e *CollisionError) Error() string {
	if e.Kind == domain.ErrPackageNameCollision {
		return fmt.Sprintf("package %q already exists", e.Value)
	}
	if e.Owner != "" {
		return fmt.Sprintf("path %s is already tracked by %q", e.Value, e.Owner)
	}
	return fmt.Sprintf("path %s already exists", e.Value)
}

func (e *CollisionError) Is(target error) bool {
	return target == e.Kind
}

// BatchError aggregates per-item failures of install batch and update
type BatchError struct {
	Op     string
	Failed int
	Total  int
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%s: %d failed out of %d", e.Op, e.Failed, e.Total)
}

func (e *BatchError) Is(target error) bool {
	return target == ErrBatchFailed
}

// NameCollision builds the error returned when name is already tracked
func NameCollision(name string) error {
	return &CollisionError{Kind: domain.ErrPackageNameCollision, Value: name}
}

// PathCollision builds the error returned when path is taken, by a tracked
// package (owner) or by an existing file or directory
func PathCollision(path, owner string) error {
	return &CollisionError{Kind: domain.ErrPathCollision, Value: path, Owner: owner}
}
