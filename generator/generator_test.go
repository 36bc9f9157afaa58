package generator

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFromDirectory(t *testing.T) {
	g := NewGenerator(nil)
	res, err := g.GenerateFromDirectory(filepath.Join("testdata", "signup"))
	require.NoError(t, err)

	assert.Equal(t, "signup", res.Package)
	assert.Equal(t, "gin", res.Framework)
	require.Len(t, res.Enums, 1)

	src := string(res.Source)
	assert.Contains(t, src, "package signup")
	assert.Contains(t, src, "func ResolveResult(v Result) (resp.Response, error)")
	assert.Contains(t, src, "func SendResult(c *gin.Context, v Result) error")
	// Serialize is the default for variants with fields, static pairs stay sorted.
	assert.Contains(t, src, `ResultSchema.Resolve("Created", v)`)
	assert.Contains(t, src, `map[string]string{"code": "USER-409", "hint": "taken"}`)
}

func TestGenerateFromDirectoryWithConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Framework = "http"

	g := NewGenerator(cfg)
	res, err := g.GenerateFromDirectory(filepath.Join("testdata", "signup"))
	require.NoError(t, err)
	assert.Equal(t, "http", res.Framework)
	assert.Contains(t, string(res.Source), "func WriteResult(w http.ResponseWriter, v Result) error")
}

func TestGenerateFromDirectoryRequiresDir(t *testing.T) {
	g := NewGenerator(nil)
	_, err := g.GenerateFromDirectory("")
	require.Error(t, err)

	_, err = g.WriteFromDirectory("")
	require.Error(t, err)
}
