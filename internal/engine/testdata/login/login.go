// Package login is a generation fixture: a small echo-flavoured enum.
package login

import (
	_ "github.com/labstack/echo/v4"
)

// Outcome is the closed set of login outcomes.
type Outcome interface{ isOutcome() }

//enumresp:variant of=Outcome status=OK body=keyed key=token
type Granted struct{ Token string }

//enumresp:variant of=Outcome status=Unauthorized body=message message="invalid credentials"
type Denied struct{}

//enumresp:variant of=Outcome status=InternalServerError body=error
type Errored struct{ Err error }
