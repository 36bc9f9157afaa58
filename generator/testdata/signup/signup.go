// Package signup is a generation fixture targeting gin.
package signup

import (
	_ "github.com/gin-gonic/gin"
)

// Result is the closed set of signup outcomes.
type Result interface{ isResult() }

//enumresp:variant of=Result status=Created
type Created struct {
	ID   string
	Name string
}

//enumresp:variant of=Result status=Conflict body=static static=code:USER-409,hint:taken
type Taken struct{}
