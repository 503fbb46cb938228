package http

import (
	"github.com/allisson/tenantvault/internal/errors"
)

var errTempCredentialsExpired = errors.Wrap(errors.ErrInvalidInput, "temporary credentials expired")
