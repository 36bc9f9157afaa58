package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehabterra/enumresp/internal/core"
	"github.com/ehabterra/enumresp/internal/parser"
	"github.com/ehabterra/enumresp/resp"
)

func loginEnum() parser.Enum {
	return parser.Enum{
		Name:   "LoginResult",
		Marker: "isLoginResult",
		Variants: []parser.Variant{
			{
				Name:         "LoginOK",
				Descriptor:   resp.Descriptor{Status: 200, Rule: resp.RuleKeyed, Key: "token"},
				PayloadField: "Token",
				FieldCount:   1,
			},
			{
				Name:       "LoginUnauthorized",
				Descriptor: resp.Descriptor{Status: 401, Rule: resp.RuleMessage, Message: "invalid credentials"},
			},
			{
				Name:              "LoginFailed",
				Descriptor:        resp.Descriptor{Status: 500, Rule: resp.RuleFromError},
				PayloadField:      "Err",
				FieldCount:        1,
				PayloadErrorIface: true,
			},
		},
	}
}

func generate(t *testing.T, framework string, enums ...parser.Enum) string {
	t.Helper()
	src, err := File(Options{Package: "api", Framework: framework}, enums)
	require.NoError(t, err)
	return string(src)
}

func TestFileEcho(t *testing.T) {
	src := generate(t, core.FrameworkEcho, loginEnum())

	assert.True(t, strings.HasPrefix(src, Header), "output must start with the generated-code marker")
	assert.Contains(t, src, "package api")

	// Marker methods seal the variant set.
	assert.Contains(t, src, "func (LoginOK) isLoginResult()")
	assert.Contains(t, src, "func (LoginUnauthorized) isLoginResult()")
	assert.Contains(t, src, "func (LoginFailed) isLoginResult()")

	// Descriptor table, one entry per variant.
	assert.Contains(t, src, "var LoginResultSchema = resp.MustSchema(map[string]resp.Descriptor{")
	assert.Contains(t, src, `"LoginOK":`)
	assert.Contains(t, src, `Rule: resp.RuleKeyed, Key: "token"`)
	assert.Contains(t, src, `Rule: resp.RuleMessage`)
	assert.Contains(t, src, `Message: "invalid credentials"`)

	// Exhaustive dispatch.
	assert.Contains(t, src, "func ResolveLoginResult(v LoginResult) (resp.Response, error)")
	assert.Contains(t, src, "case LoginOK:")
	assert.Contains(t, src, `LoginResultSchema.Resolve("LoginOK", v.Token)`)
	assert.Contains(t, src, `LoginResultSchema.Resolve("LoginUnauthorized", nil)`)
	assert.Contains(t, src, `LoginResultSchema.Resolve("LoginFailed", v.Err)`)

	// Echo send helper.
	assert.Contains(t, src, "func SendLoginResult(c echo.Context, v LoginResult) error")
	assert.Contains(t, src, "echoresp.Send(c, r)")
	assert.Contains(t, src, `"github.com/labstack/echo/v4"`)

	// From-error conveniences.
	assert.Contains(t, src, "func NewLoginFailed(err error) LoginResult")
	assert.Contains(t, src, "func (v LoginFailed) Error() string")
	assert.Contains(t, src, "func (v LoginFailed) Unwrap() error")
}

func TestFileGin(t *testing.T) {
	src := generate(t, core.FrameworkGin, loginEnum())
	assert.Contains(t, src, "func SendLoginResult(c *gin.Context, v LoginResult) error")
	assert.Contains(t, src, "ginresp.Send(c, r)")
	assert.Contains(t, src, `"github.com/gin-gonic/gin"`)
	assert.NotContains(t, src, "echoresp")
}

func TestFileFiber(t *testing.T) {
	src := generate(t, core.FrameworkFiber, loginEnum())
	assert.Contains(t, src, "func SendLoginResult(c *fiber.Ctx, v LoginResult) error")
	assert.Contains(t, src, "fiberresp.Send(c, r)")
}

func TestFileHTTP(t *testing.T) {
	src := generate(t, core.FrameworkHTTP, loginEnum())
	assert.Contains(t, src, "func WriteLoginResult(w http.ResponseWriter, v LoginResult) error")
	assert.Contains(t, src, "resp.WriteHTTP(w, r)")
	assert.Contains(t, src, `"net/http"`)
	assert.NotContains(t, src, "echoresp")
}

func TestFileImportsCanonical(t *testing.T) {
	// format.Source sorts the import block, so emitted files must already be
	// in canonical order; a checked-in file that regeneration would reorder
	// dirties the tree under go generate.
	src := generate(t, core.FrameworkEcho, loginEnum())

	respIdx := strings.Index(src, `"github.com/ehabterra/enumresp/resp"`)
	adapterIdx := strings.Index(src, `"github.com/ehabterra/enumresp/resp/echoresp"`)
	echoIdx := strings.Index(src, `"github.com/labstack/echo/v4"`)
	require.True(t, respIdx > 0 && adapterIdx > 0 && echoIdx > 0)
	assert.Less(t, respIdx, adapterIdx)
	assert.Less(t, adapterIdx, echoIdx)
}

func TestFileWithoutPayloadCapture(t *testing.T) {
	// An enum whose rules never consume the value must not bind it in the
	// type switch, or the generated file would not compile.
	e := parser.Enum{
		Name:   "Health",
		Marker: "isHealth",
		Variants: []parser.Variant{
			{Name: "Healthy", Descriptor: resp.Descriptor{Status: 204, Rule: resp.RuleEmpty}},
			{Name: "Degraded", Descriptor: resp.Descriptor{Status: 503, Rule: resp.RuleMessage, Message: "degraded"}},
		},
	}
	src := generate(t, core.FrameworkHTTP, e)
	assert.Contains(t, src, "switch v.(type) {")
	assert.NotContains(t, src, "switch v := v.(type)")
}

func TestFileStaticPairsSorted(t *testing.T) {
	e := parser.Enum{
		Name:   "Quota",
		Marker: "isQuota",
		Variants: []parser.Variant{
			{Name: "Exceeded", Descriptor: resp.Descriptor{
				Status: 429,
				Rule:   resp.RuleStatic,
				Static: map[string]string{"zeta": "z", "alpha": "a"},
			}},
		},
	}
	first := generate(t, core.FrameworkHTTP, e)
	assert.Contains(t, first, `map[string]string{"alpha": "a", "zeta": "z"}`)

	// Same model renders byte-identically every time.
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, generate(t, core.FrameworkHTTP, e))
	}
}

func TestFileConcreteErrorPayloadSkipsWrappers(t *testing.T) {
	e := parser.Enum{
		Name:   "Job",
		Marker: "isJob",
		Variants: []parser.Variant{
			{
				Name:         "JobFailed",
				Descriptor:   resp.Descriptor{Status: 500, Rule: resp.RuleFromError},
				PayloadField: "Err",
				FieldCount:   1,
				// Field declared as a concrete error type, not plain error.
				PayloadErrorIface: false,
			},
		},
	}
	src := generate(t, core.FrameworkHTTP, e)
	assert.Contains(t, src, `JobSchema.Resolve("JobFailed", v.Err)`)
	assert.NotContains(t, src, "func NewJobFailed")
	assert.NotContains(t, src, "func (v JobFailed) Error()")
}

func TestFileInputValidation(t *testing.T) {
	_, err := File(Options{Package: "", Framework: core.FrameworkEcho}, []parser.Enum{loginEnum()})
	require.Error(t, err)

	_, err = File(Options{Package: "api", Framework: "rails"}, []parser.Enum{loginEnum()})
	require.Error(t, err)

	_, err = File(Options{Package: "api", Framework: core.FrameworkEcho}, nil)
	require.Error(t, err)
}
