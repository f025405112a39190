package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrEmptyResult indicates that an operation completed without producing any
// data. It is distinct from ErrNotFound and from upstream-provider failures so
// callers can tell "no data" apart from "provider down".
var ErrEmptyResult = errors.New("no data available")

// ErrUnauthorized indicates that the caller holds no usable credentials for
// the requested operation (e.g. no stored access token).
var ErrUnauthorized = errors.New("unauthorized")
