// Package codegen renders the generated file for a package's enums: marker
// methods sealing each variant set, the descriptor tables, the exhaustive
// resolve functions and a send helper for the target framework.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/ehabterra/enumresp/internal/core"
	"github.com/ehabterra/enumresp/internal/parser"
	"github.com/ehabterra/enumresp/resp"
)

const (
	// Header is the canonical generated-code marker, first line of output.
	Header = "// Code generated by enumresp. DO NOT EDIT."

	respImport = "github.com/ehabterra/enumresp/resp"
)

// Options configures one generated file.
type Options struct {
	// Package is the target package name.
	Package string
	// Framework selects the send helper to emit; one of the core.Framework
	// constants.
	Framework string
}

// File renders and gofmt-formats the generated source for enums.
func File(opts Options, enums []parser.Enum) ([]byte, error) {
	if opts.Package == "" {
		return nil, fmt.Errorf("package name is required")
	}
	if !core.Known(opts.Framework) {
		return nil, fmt.Errorf("unknown framework %q", opts.Framework)
	}
	if len(enums) == 0 {
		return nil, fmt.Errorf("no enums to generate")
	}

	data := fileData{
		Package:   opts.Package,
		Framework: opts.Framework,
		Imports:   imports(opts.Framework),
	}
	for _, e := range enums {
		data.Enums = append(data.Enums, newEnumData(e))
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render generated file: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated source does not format: %w", err)
	}
	return src, nil
}

type fileData struct {
	Package   string
	Framework string
	Imports   []string
	Enums     []enumData
}

type enumData struct {
	Name    string
	Marker  string
	Capture bool // the type switch binds the value (some rule consumes it)
	Variants []variantData
}

type variantData struct {
	Name         string
	Literal      string // resp.Descriptor composite literal body
	PayloadExpr  string // expression passed to Schema.Resolve
	FromError    bool
	PayloadField string
}

func newEnumData(e parser.Enum) enumData {
	ed := enumData{Name: e.Name, Marker: e.Marker}
	for _, v := range e.Variants {
		vd := variantData{
			Name:         v.Name,
			Literal:      descriptorLiteral(v.Descriptor),
			PayloadExpr:  "nil",
			PayloadField: v.PayloadField,
		}
		switch v.Descriptor.Rule {
		case resp.RuleSerialize:
			vd.PayloadExpr = "v"
			ed.Capture = true
		case resp.RuleKeyed:
			vd.PayloadExpr = "v." + v.PayloadField
			ed.Capture = true
		case resp.RuleFromError:
			vd.PayloadExpr = "v." + v.PayloadField
			vd.FromError = v.PayloadErrorIface
			ed.Capture = true
		}
		ed.Variants = append(ed.Variants, vd)
	}
	return ed
}

func imports(framework string) []string {
	paths := []string{"fmt"}
	switch framework {
	case core.FrameworkEcho:
		paths = append(paths, "github.com/labstack/echo/v4", respImport, respImport+"/echoresp")
	case core.FrameworkGin:
		paths = append(paths, "github.com/gin-gonic/gin", respImport, respImport+"/ginresp")
	case core.FrameworkFiber:
		paths = append(paths, "github.com/gofiber/fiber/v2", respImport, respImport+"/fiberresp")
	default:
		paths = append(paths, "net/http", respImport)
	}
	return paths
}

var ruleNames = map[resp.Rule]string{
	resp.RuleEmpty:     "resp.RuleEmpty",
	resp.RuleSerialize: "resp.RuleSerialize",
	resp.RuleKeyed:     "resp.RuleKeyed",
	resp.RuleStatic:    "resp.RuleStatic",
	resp.RuleMessage:   "resp.RuleMessage",
	resp.RuleFromError: "resp.RuleFromError",
}

// descriptorLiteral renders a resp.Descriptor as Go source, with static
// pairs in sorted key order so output is deterministic.
func descriptorLiteral(d resp.Descriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "{Status: %d, Rule: %s", d.Status, ruleNames[d.Rule])
	if d.Key != "" {
		fmt.Fprintf(&b, ", Key: %s", strconv.Quote(d.Key))
	}
	if len(d.Static) > 0 {
		keys := make([]string, 0, len(d.Static))
		for k := range d.Static {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(", Static: map[string]string{")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", strconv.Quote(k), strconv.Quote(d.Static[k]))
		}
		b.WriteString("}")
	}
	if d.Message != "" {
		fmt.Fprintf(&b, ", Message: %s", strconv.Quote(d.Message))
	}
	b.WriteString("}")
	return b.String()
}

var fileTemplate = template.Must(template.New("file").Parse(Header + `

package {{.Package}}

import (
{{- range .Imports}}
	"{{.}}"
{{- end}}
)
{{range $e := .Enums}}
{{- range $v := $e.Variants}}
func ({{$v.Name}}) {{$e.Marker}}() {}
{{end}}
// {{$e.Name}}Schema is the descriptor table backing Resolve{{$e.Name}}.
var {{$e.Name}}Schema = resp.MustSchema(map[string]resp.Descriptor{
{{- range $v := $e.Variants}}
	"{{$v.Name}}": {{$v.Literal}},
{{- end}}
})

// Resolve{{$e.Name}} maps v to its declared status code and encoded body.
func Resolve{{$e.Name}}(v {{$e.Name}}) (resp.Response, error) {
	switch {{if $e.Capture}}v := v.(type){{else}}v.(type){{end}} {
{{- range $v := $e.Variants}}
	case {{$v.Name}}:
		return {{$e.Name}}Schema.Resolve("{{$v.Name}}", {{$v.PayloadExpr}})
{{- end}}
	}
	return resp.Response{}, fmt.Errorf("nil or foreign {{$e.Name}}: %T", v)
}
{{if eq $.Framework "echo"}}
// Send{{$e.Name}} resolves v and writes it to c.
func Send{{$e.Name}}(c echo.Context, v {{$e.Name}}) error {
	r, err := Resolve{{$e.Name}}(v)
	if err != nil {
		return err
	}
	return echoresp.Send(c, r)
}
{{else if eq $.Framework "gin"}}
// Send{{$e.Name}} resolves v and writes it to c.
func Send{{$e.Name}}(c *gin.Context, v {{$e.Name}}) error {
	r, err := Resolve{{$e.Name}}(v)
	if err != nil {
		return err
	}
	ginresp.Send(c, r)
	return nil
}
{{else if eq $.Framework "fiber"}}
// Send{{$e.Name}} resolves v and writes it to c.
func Send{{$e.Name}}(c *fiber.Ctx, v {{$e.Name}}) error {
	r, err := Resolve{{$e.Name}}(v)
	if err != nil {
		return err
	}
	return fiberresp.Send(c, r)
}
{{else}}
// Write{{$e.Name}} resolves v and writes it to w.
func Write{{$e.Name}}(w http.ResponseWriter, v {{$e.Name}}) error {
	r, err := Resolve{{$e.Name}}(v)
	if err != nil {
		return err
	}
	return resp.WriteHTTP(w, r)
}
{{end}}
{{- range $v := $e.Variants}}
{{- if $v.FromError}}
// New{{$v.Name}} wraps err as a {{$e.Name}}.
func New{{$v.Name}}(err error) {{$e.Name}} {
	return {{$v.Name}}{ {{$v.PayloadField}}: err }
}

func (v {{$v.Name}}) Error() string { return v.{{$v.PayloadField}}.Error() }

func (v {{$v.Name}}) Unwrap() error { return v.{{$v.PayloadField}} }
{{end}}
{{- end}}
{{- end}}`))
