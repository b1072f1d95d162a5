package datauri

import (
	"errors"
	"fmt"
)

var (
	// ErrResolve is the parent of every error returned by Resolve.
	ErrResolve = errors.New("resolving image")
	// ErrFetch is returned when a remote image cannot be retrieved.
	ErrFetch = fmt.Errorf("%w: fetch failed", ErrResolve)
	// ErrUnsupportedScheme is returned for URI schemes other than data, http and https.
	ErrUnsupportedScheme = fmt.Errorf("%w: unsupported scheme", ErrResolve)
	// ErrMissingContentType is returned when a remote image has no Content-Type header.
	ErrMissingContentType = fmt.Errorf("%w: no \"Content-Type\" header", ErrResolve)
	// ErrNotAnImage is returned when the resource is not an image.
	ErrNotAnImage = fmt.Errorf("%w: not an image", ErrResolve)
	// ErrTypeDetermination is returned when a local file's type cannot be determined.
	ErrTypeDetermination = fmt.Errorf("%w: not able to determine file type", ErrResolve)
	// ErrLocalFilesDisabled is returned for filesystem paths when local files are not allowed.
	ErrLocalFilesDisabled = fmt.Errorf("%w: local files are disabled", ErrResolve)
)
