package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the manifest store, the record builder and the
// commands. Typed errors below match them through errors.Is.
var (
	ErrManifestMissing           = errors.New("manifest missing")
	ErrManifestIsDirectory       = errors.New("manifest path is a directory")
	ErrManifestCorrupt           = errors.New("manifest corrupt")
	ErrConfigKeyNotFound         = errors.New("configuration key not found")
	ErrPackageNotFound           = errors.New("package not found")
	ErrPackageNameCollision      = errors.New("package name already exists")
	ErrPathCollision             = errors.New("path already in use")
	ErrRemoteUnreachable         = errors.New("remote unreachable")
	ErrMetadataFetchFailed       = errors.New("metadata fetch failed")
	ErrFilesystemOperationFailed = errors.New("filesystem operation failed")
	ErrInvalidURL                = errors.New("invalid repository URL")
	ErrInvalidResponse           = errors.New("not a valid response")
)

// ManifestError describes a failure to read the manifest at Path.
type ManifestError struct {
	Path string
	Kind error // one of ErrManifestMissing, ErrManifestIsDirectory, ErrManifestCorrupt
	Err  error
}

func (e *ManifestError) Error() string {
	switch e.Kind {
	case ErrManifestMissing:
		return fmt.Sprintf("package file missing at %s, please run `gitget setup`", e.Path)
	case ErrManifestIsDirectory:
		return fmt.Sprintf("package file %s is a directory, please remove it and run `gitget setup`", e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("could not load package file %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("could not load package file %s", e.Path)
}

func (e *ManifestError) Is(target error) bool {
	return target == e.Kind
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// MetadataError wraps a failed call to a hosting provider API.
type MetadataError struct {
	Provider string
	URL      string
	Err      error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("could not fetch %s metadata for %s: %v", e.Provider, e.URL, e.Err)
}

func (e *MetadataError) Is(target error) bool {
	return target == ErrMetadataFetchFailed
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

// FilesystemError wraps a failed clone, move or delete.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("could not %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Is(target error) bool {
	return target == ErrFilesystemOperationFailed
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
