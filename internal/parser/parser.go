// Package parser turns annotated Go source into enum models: it finds
// //enumresp:variant directives on struct declarations, resolves the marker
// interfaces they reference, and validates descriptors against each
// variant's payload shape. All violations are reported here, with source
// positions, so resolution never fails on a malformed definition at runtime.
package parser

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"sort"

	"github.com/ehabterra/enumresp/resp"
)

var errorType = types.Universe.Lookup("error").Type().Underlying().(*types.Interface)

// Collect walks the package's files and returns its enums, sorted by name.
// info supplies type information for the error-rule payload check; files and
// info normally come from a Package loaded with LoadPackage.
func Collect(fset *token.FileSet, files []*ast.File, info *types.Info) ([]Enum, error) {
	ifaces := map[string]*ast.TypeSpec{}
	for _, file := range files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				if _, ok := ts.Type.(*ast.InterfaceType); ok {
					ifaces[ts.Name.Name] = ts
				}
			}
		}
	}

	byEnum := map[string][]Variant{}
	var order []string
	for _, file := range files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				text, ok := directiveText(gd, ts)
				if !ok {
					continue
				}
				d, err := ParseDirective(text)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", fset.Position(ts.Pos()), err)
				}
				v, err := buildVariant(fset, ts, d, info)
				if err != nil {
					return nil, err
				}
				if _, seen := byEnum[d.Enum]; !seen {
					order = append(order, d.Enum)
				}
				byEnum[d.Enum] = append(byEnum[d.Enum], *v)
			}
		}
	}

	sort.Strings(order)
	enums := make([]Enum, 0, len(order))
	for _, name := range order {
		variants := byEnum[name]
		ts, ok := ifaces[name]
		if !ok {
			return nil, fmt.Errorf("%s: enum interface %s not found in package", variants[0].Pos, name)
		}
		marker, err := markerMethod(fset, ts)
		if err != nil {
			return nil, err
		}
		enums = append(enums, Enum{
			Name:     name,
			Marker:   marker,
			Variants: variants,
			Pos:      fset.Position(ts.Pos()),
		})
	}
	return enums, nil
}

// directiveText extracts the variant directive from a type declaration's doc
// comment. Grouped declarations attach docs to the spec, single ones to the
// decl; either place works.
func directiveText(gd *ast.GenDecl, ts *ast.TypeSpec) (string, bool) {
	for _, doc := range []*ast.CommentGroup{ts.Doc, gd.Doc} {
		if doc == nil {
			continue
		}
		for _, c := range doc.List {
			if IsDirective(c.Text) {
				return c.Text, true
			}
		}
	}
	return "", false
}

func buildVariant(fset *token.FileSet, ts *ast.TypeSpec, d *Directive, info *types.Info) (*Variant, error) {
	pos := fset.Position(ts.Pos())
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return nil, fmt.Errorf("%s: variant %s must be a struct type", pos, ts.Name.Name)
	}

	fields := st.Fields.List
	count := 0
	for _, f := range fields {
		if len(f.Names) == 0 {
			count++
		} else {
			count += len(f.Names)
		}
	}

	rule := d.Rule
	if !d.RuleSet {
		if count == 0 {
			rule = resp.RuleEmpty
		} else {
			rule = resp.RuleSerialize
		}
	}

	desc := resp.Descriptor{
		Status:  d.Status,
		Rule:    rule,
		Key:     d.Key,
		Static:  d.Static,
		Message: d.Message,
	}
	if err := desc.Validate(count > 0); err != nil {
		return nil, fmt.Errorf("%s: variant %s: %w", pos, ts.Name.Name, err)
	}

	v := &Variant{
		Name:       ts.Name.Name,
		Descriptor: desc,
		FieldCount: count,
		Pos:        pos,
	}

	if rule == resp.RuleKeyed || rule == resp.RuleFromError {
		if count != 1 {
			return nil, fmt.Errorf("%s: variant %s: rule %q requires exactly one payload field, found %d",
				pos, ts.Name.Name, rule, count)
		}
		f := fields[0]
		if len(f.Names) != 1 {
			return nil, fmt.Errorf("%s: variant %s: payload field must be named, not embedded", pos, ts.Name.Name)
		}
		v.PayloadField = f.Names[0].Name
		if rule == resp.RuleFromError {
			if v.PayloadField == "Error" || v.PayloadField == "Unwrap" {
				return nil, fmt.Errorf("%s: variant %s: payload field %s collides with a generated method",
					pos, ts.Name.Name, v.PayloadField)
			}
			if err := checkErrorField(info, f); err != nil {
				return nil, fmt.Errorf("%s: variant %s: %w", pos, ts.Name.Name, err)
			}
			if ident, ok := f.Type.(*ast.Ident); ok && ident.Name == "error" {
				v.PayloadErrorIface = true
			}
		}
	}
	return v, nil
}

// checkErrorField verifies that the error-rule payload field implements the
// error interface. Missing type info (a package that does not yet typecheck,
// e.g. on a first generation run) is tolerated.
func checkErrorField(info *types.Info, f *ast.Field) error {
	if ident, ok := f.Type.(*ast.Ident); ok && ident.Name == "error" {
		return nil
	}
	if info == nil {
		return nil
	}
	t := info.TypeOf(f.Type)
	if t == nil {
		return nil
	}
	if types.Implements(t, errorType) || types.Implements(types.NewPointer(t), errorType) {
		return nil
	}
	return fmt.Errorf("payload field %s does not implement error", f.Names[0].Name)
}

// markerMethod validates the enum interface's shape and returns its marker
// method name. The interface must declare exactly one unexported niladic
// method; the generated marker implementations then seal the variant set,
// which is what makes the resolver's type switch exhaustive.
func markerMethod(fset *token.FileSet, ts *ast.TypeSpec) (string, error) {
	pos := fset.Position(ts.Pos())
	iface := ts.Type.(*ast.InterfaceType)
	if iface.Methods == nil || len(iface.Methods.List) != 1 {
		return "", fmt.Errorf("%s: enum interface %s must declare exactly one marker method", pos, ts.Name.Name)
	}
	m := iface.Methods.List[0]
	if len(m.Names) != 1 {
		return "", fmt.Errorf("%s: enum interface %s must not embed other interfaces", pos, ts.Name.Name)
	}
	name := m.Names[0].Name
	if ast.IsExported(name) {
		return "", fmt.Errorf("%s: enum interface %s: marker method %s must be unexported to seal the set",
			pos, ts.Name.Name, name)
	}
	ft, ok := m.Type.(*ast.FuncType)
	if !ok || (ft.Params != nil && len(ft.Params.List) > 0) || (ft.Results != nil && len(ft.Results.List) > 0) {
		return "", fmt.Errorf("%s: enum interface %s: marker method %s must take and return nothing",
			pos, ts.Name.Name, name)
	}
	return name, nil
}
