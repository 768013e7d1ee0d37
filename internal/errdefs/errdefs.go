// Package errdefs holds the error sentinels shared by the network and
// dataset packages.
package errdefs

import "github.com/pkg/errors"

// ErrInvalidArgument reports bad construction parameters, a shape that
// does not match the network or a ragged matrix.
var ErrInvalidArgument = errors.New("invalid argument")
