// Package core holds framework detection shared by the engine and the CLI.
package core

import "strings"

// Framework names the generator can emit send helpers for. FrameworkHTTP is
// the fallback: a plain net/http writer that also serves chi-style routers.
const (
	FrameworkEcho  = "echo"
	FrameworkGin   = "gin"
	FrameworkFiber = "fiber"
	FrameworkHTTP  = "http"
)

// Known reports whether name is a framework the generator can target.
func Known(name string) bool {
	switch name {
	case FrameworkEcho, FrameworkGin, FrameworkFiber, FrameworkHTTP:
		return true
	}
	return false
}

// DetectFromImports returns the framework indicated by a package's import
// paths, or FrameworkHTTP when none match. The engine feeds it the import
// list of the loaded target package.
func DetectFromImports(paths []string) string {
	for _, path := range paths {
		switch {
		case strings.Contains(path, "labstack/echo"):
			return FrameworkEcho
		case strings.Contains(path, "gin-gonic/gin"):
			return FrameworkGin
		case strings.Contains(path, "gofiber/fiber"):
			return FrameworkFiber
		}
	}
	return FrameworkHTTP
}
