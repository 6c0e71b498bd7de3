// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// ErrInvalidCredentials indicates that the username or password is incorrect.
// The two cases are not distinguished to avoid account enumeration.
var ErrInvalidCredentials = errors.New("invalid username or password")
