package service

import "errors"

// ErrNotFound signals a missing or not-owned resource. Controllers map
// it to a 404.
var ErrNotFound = errors.New("resource not found")
