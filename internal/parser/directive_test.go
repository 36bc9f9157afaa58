package parser

import (
	"strings"
	"testing"

	"github.com/ehabterra/enumresp/resp"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Directive
		wantErr string
	}{
		{
			name: "numeric status only",
			text: "//enumresp:variant of=LoginResult status=401",
			want: Directive{Enum: "LoginResult", Status: 401},
		},
		{
			name: "symbolic status",
			text: "//enumresp:variant of=LoginResult status=Unauthorized",
			want: Directive{Enum: "LoginResult", Status: 401},
		},
		{
			name: "symbolic status with prefix",
			text: "//enumresp:variant of=LoginResult status=StatusUnauthorized",
			want: Directive{Enum: "LoginResult", Status: 401},
		},
		{
			name: "keyed body",
			text: "//enumresp:variant of=R status=200 body=keyed key=aga",
			want: Directive{Enum: "R", Status: 200, Rule: resp.RuleKeyed, RuleSet: true, Key: "aga"},
		},
		{
			name: "quoted message",
			text: `//enumresp:variant of=R status=500 body=message message="invalid credentials"`,
			want: Directive{Enum: "R", Status: 500, Rule: resp.RuleMessage, RuleSet: true, Message: "invalid credentials"},
		},
		{
			name: "static pairs",
			text: "//enumresp:variant of=R status=403 body=static static=code:AUTH-403,hint:expired",
			want: Directive{Enum: "R", Status: 403, Rule: resp.RuleStatic, RuleSet: true,
				Static: map[string]string{"code": "AUTH-403", "hint": "expired"}},
		},
		{
			name: "error body",
			text: "//enumresp:variant of=R status=InternalServerError body=error",
			want: Directive{Enum: "R", Status: 500, Rule: resp.RuleFromError, RuleSet: true},
		},
		{
			name:    "missing of",
			text:    "//enumresp:variant status=401",
			wantErr: `missing required attribute "of"`,
		},
		{
			name:    "missing status",
			text:    "//enumresp:variant of=R",
			wantErr: `missing required attribute "status"`,
		},
		{
			name:    "unknown status name",
			text:    "//enumresp:variant of=R status=Teapots",
			wantErr: `unknown status "Teapots"`,
		},
		{
			name:    "status out of range",
			text:    "//enumresp:variant of=R status=42",
			wantErr: "status code 42 out of range",
		},
		{
			name:    "unknown rule",
			text:    "//enumresp:variant of=R status=200 body=teapot",
			wantErr: `unknown body rule "teapot"`,
		},
		{
			name:    "unknown attribute",
			text:    "//enumresp:variant of=R status=200 color=red",
			wantErr: `unknown attribute "color"`,
		},
		{
			name:    "duplicate attribute",
			text:    "//enumresp:variant of=R status=200 status=201",
			wantErr: `duplicate attribute "status"`,
		},
		{
			name:    "key without keyed rule",
			text:    "//enumresp:variant of=R status=200 key=aga",
			wantErr: `attribute "key" requires body=keyed`,
		},
		{
			name:    "message without message rule",
			text:    "//enumresp:variant of=R status=200 message=hi",
			wantErr: `attribute "message" requires body=message`,
		},
		{
			name:    "static without static rule",
			text:    "//enumresp:variant of=R status=200 static=a:1",
			wantErr: `attribute "static" requires body=static`,
		},
		{
			name:    "duplicate static key",
			text:    "//enumresp:variant of=R status=200 body=static static=a:1,a:2",
			wantErr: `duplicate static key "a"`,
		},
		{
			name:    "malformed static pair",
			text:    "//enumresp:variant of=R status=200 body=static static=nope",
			wantErr: "malformed static pair",
		},
		{
			name:    "unterminated quote",
			text:    `//enumresp:variant of=R status=200 body=message message="oops`,
			wantErr: "unterminated quote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDirective(tt.text)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got none", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Enum != tt.want.Enum || got.Status != tt.want.Status ||
				got.Rule != tt.want.Rule || got.RuleSet != tt.want.RuleSet ||
				got.Key != tt.want.Key || got.Message != tt.want.Message {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			if len(got.Static) != len(tt.want.Static) {
				t.Fatalf("static pairs: got %v, want %v", got.Static, tt.want.Static)
			}
			for k, v := range tt.want.Static {
				if got.Static[k] != v {
					t.Fatalf("static[%q]: got %q, want %q", k, got.Static[k], v)
				}
			}
		})
	}
}

func TestIsDirective(t *testing.T) {
	if !IsDirective("//enumresp:variant of=R status=200") {
		t.Fatal("expected directive to be recognized")
	}
	if IsDirective("// just a comment") {
		t.Fatal("plain comment recognized as directive")
	}
	if IsDirective("//go:generate enumresp") {
		t.Fatal("go:generate recognized as directive")
	}
}
