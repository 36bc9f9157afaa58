// Package resp holds the runtime half of enumresp: descriptor tables that map
// enum variants to HTTP responses, and the dispatch that resolves a variant's
// payload into a status code and a JSON body. Generated code builds a Schema
// per enum and calls Resolve from an exhaustive type switch; the package is
// equally usable with hand-built tables.
package resp

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Rule selects how a variant's payload becomes a response body.
type Rule int

const (
	// RuleEmpty produces a zero-length body. The variant carries no payload.
	RuleEmpty Rule = iota
	// RuleSerialize JSON-encodes the payload value as-is; the payload's own
	// shape determines the body's shape.
	RuleSerialize
	// RuleKeyed wraps the payload as a single-entry object {Key: payload}.
	RuleKeyed
	// RuleStatic encodes the fixed Static map, ignoring any payload.
	RuleStatic
	// RuleMessage encodes {"message": Message}, ignoring any payload.
	RuleMessage
	// RuleFromError expects an error payload and encodes {"error": err.Error()}.
	RuleFromError
)

// Fixed body keys for the message and error conventions.
const (
	MessageKey = "message"
	ErrorKey   = "error"
)

func (r Rule) String() string {
	switch r {
	case RuleEmpty:
		return "empty"
	case RuleSerialize:
		return "serialize"
	case RuleKeyed:
		return "keyed"
	case RuleStatic:
		return "static"
	case RuleMessage:
		return "message"
	case RuleFromError:
		return "error"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// ConsumesPayload reports whether the rule reads the variant's payload value.
func (r Rule) ConsumesPayload() bool {
	return r == RuleSerialize || r == RuleKeyed || r == RuleFromError
}

// Descriptor is the per-variant metadata record: the status code to respond
// with and the body-construction rule. Key, Static and Message are only
// meaningful for their respective rules.
type Descriptor struct {
	Status  int               `yaml:"status" json:"status"`
	Rule    Rule              `yaml:"rule" json:"rule"`
	Key     string            `yaml:"key,omitempty" json:"key,omitempty"`
	Static  map[string]string `yaml:"static,omitempty" json:"static,omitempty"`
	Message string            `yaml:"message,omitempty" json:"message,omitempty"`
}

// Response is a resolved variant: a status code and an encoded body.
// Body is nil for RuleEmpty variants.
type Response struct {
	Status int
	Body   []byte
}

// Validate checks the descriptor's intrinsic invariants plus its
// compatibility with the variant's payload shape. hasPayload reports whether
// the variant carries a payload value.
func (d Descriptor) Validate(hasPayload bool) error {
	if err := d.validate(); err != nil {
		return err
	}
	if d.Rule.ConsumesPayload() && !hasPayload {
		return fmt.Errorf("rule %q requires a payload but the variant has none", d.Rule)
	}
	if d.Rule == RuleEmpty && hasPayload {
		return fmt.Errorf("rule %q cannot be used on a variant with a payload", d.Rule)
	}
	return nil
}

// validate checks the invariants that do not depend on payload shape.
func (d Descriptor) validate() error {
	if d.Status < 100 || d.Status > 599 {
		return fmt.Errorf("invalid status code %d", d.Status)
	}
	if d.Rule < RuleEmpty || d.Rule > RuleFromError {
		return fmt.Errorf("unknown body rule %d", int(d.Rule))
	}
	if d.Key != "" && d.Rule != RuleKeyed {
		return fmt.Errorf("key %q set but rule is %q, not %q", d.Key, d.Rule, RuleKeyed)
	}
	if d.Rule == RuleKeyed && d.Key == "" {
		return fmt.Errorf("rule %q requires a non-empty key", RuleKeyed)
	}
	if len(d.Static) > 0 && d.Rule != RuleStatic {
		return fmt.Errorf("static pairs set but rule is %q, not %q", d.Rule, RuleStatic)
	}
	if d.Rule == RuleStatic && len(d.Static) == 0 {
		return fmt.Errorf("rule %q requires at least one static pair", RuleStatic)
	}
	if d.Message != "" && d.Rule != RuleMessage {
		return fmt.Errorf("message %q set but rule is %q, not %q", d.Message, d.Rule, RuleMessage)
	}
	if d.Rule == RuleMessage && d.Message == "" {
		return fmt.Errorf("rule %q requires a non-empty message", RuleMessage)
	}
	return nil
}

// Resolve applies the descriptor's body rule to payload and returns the
// response. It is a pure function: equal inputs yield byte-identical output
// (encoding/json writes map keys in sorted order). The only failure mode is
// encoding failure of the payload, which is returned as an error, never
// swallowed into an empty body.
func (d Descriptor) Resolve(payload any) (Response, error) {
	switch d.Rule {
	case RuleEmpty:
		return Response{Status: d.Status}, nil
	case RuleSerialize:
		return d.encode(payload)
	case RuleKeyed:
		return d.encode(map[string]any{d.Key: payload})
	case RuleStatic:
		return d.encode(d.Static)
	case RuleMessage:
		return d.encode(map[string]string{MessageKey: d.Message})
	case RuleFromError:
		err, ok := payload.(error)
		if !ok || err == nil {
			return Response{}, fmt.Errorf("rule %q requires an error payload, got %T", RuleFromError, payload)
		}
		return d.encode(map[string]string{ErrorKey: err.Error()})
	default:
		return Response{}, fmt.Errorf("unknown body rule %d", int(d.Rule))
	}
}

func (d Descriptor) encode(v any) (Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return Response{}, fmt.Errorf("failed to encode response body: %w", err)
	}
	return Response{Status: d.Status, Body: body}, nil
}

// WriteHTTP writes the response to a net/http ResponseWriter. Empty bodies
// write only the status line; otherwise the body is sent as application/json.
// This also covers routers that take plain net/http handlers, such as chi.
func WriteHTTP(w http.ResponseWriter, r Response) error {
	if len(r.Body) == 0 {
		w.WriteHeader(r.Status)
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.Status)
	if _, err := w.Write(r.Body); err != nil {
		return fmt.Errorf("failed to write response body: %w", err)
	}
	return nil
}
