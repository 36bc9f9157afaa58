package parser

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ehabterra/enumresp/resp"
)

// DirectivePrefix marks a variant annotation comment, e.g.
//
//	//enumresp:variant of=LoginResult status=401 body=keyed key=error
const DirectivePrefix = "enumresp:variant"

// Directive is one parsed variant annotation.
type Directive struct {
	Enum    string            // of=
	Status  int               // status=
	Rule    resp.Rule         // body=
	RuleSet bool              // body= was explicit (otherwise defaulted from payload shape)
	Key     string            // key=
	Message string            // message=
	Static  map[string]string // static=
}

// IsDirective reports whether a comment line carries a variant annotation.
func IsDirective(text string) bool {
	return strings.HasPrefix(strings.TrimPrefix(text, "//"), DirectivePrefix)
}

// ParseDirective parses the attribute list of a variant annotation. The
// grammar is space-separated key=value pairs; values containing spaces are
// double-quoted. Each attribute may appear at most once.
func ParseDirective(text string) (*Directive, error) {
	body := strings.TrimPrefix(strings.TrimPrefix(text, "//"), DirectivePrefix)
	tokens, err := tokenize(body)
	if err != nil {
		return nil, err
	}

	d := &Directive{}
	seen := map[string]bool{}
	statusSet := false
	for _, tok := range tokens {
		name, value, ok := strings.Cut(tok, "=")
		if !ok {
			return nil, fmt.Errorf("malformed attribute %q, want name=value", tok)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate attribute %q", name)
		}
		seen[name] = true

		switch name {
		case "of":
			if value == "" {
				return nil, fmt.Errorf("attribute %q must name the enum interface", name)
			}
			d.Enum = value
		case "status":
			code, err := parseStatus(value)
			if err != nil {
				return nil, err
			}
			d.Status = code
			statusSet = true
		case "body":
			rule, err := parseRule(value)
			if err != nil {
				return nil, err
			}
			d.Rule = rule
			d.RuleSet = true
		case "key":
			if value == "" {
				return nil, fmt.Errorf("attribute %q must not be empty", name)
			}
			d.Key = value
		case "message":
			if value == "" {
				return nil, fmt.Errorf("attribute %q must not be empty", name)
			}
			d.Message = value
		case "static":
			pairs, err := parseStaticPairs(value)
			if err != nil {
				return nil, err
			}
			d.Static = pairs
		default:
			return nil, fmt.Errorf("unknown attribute %q", name)
		}
	}

	if d.Enum == "" {
		return nil, fmt.Errorf("missing required attribute %q", "of")
	}
	if !statusSet {
		return nil, fmt.Errorf("missing required attribute %q", "status")
	}
	if d.Key != "" && (!d.RuleSet || d.Rule != resp.RuleKeyed) {
		return nil, fmt.Errorf("attribute %q requires body=keyed", "key")
	}
	if d.Message != "" && (!d.RuleSet || d.Rule != resp.RuleMessage) {
		return nil, fmt.Errorf("attribute %q requires body=message", "message")
	}
	if len(d.Static) > 0 && (!d.RuleSet || d.Rule != resp.RuleStatic) {
		return nil, fmt.Errorf("attribute %q requires body=static", "static")
	}
	return d, nil
}

// tokenize splits an attribute list on spaces, keeping double-quoted values
// intact. Quotes are stripped from the returned tokens.
func tokenize(s string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
		case (r == ' ' || r == '\t') && !inQuote:
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote in directive")
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

// parseStatus accepts a numeric code (401) or a net/http constant name, with
// or without the Status prefix (StatusUnauthorized, Unauthorized).
func parseStatus(s string) (int, error) {
	if code, err := strconv.Atoi(s); err == nil {
		if code < 100 || code > 599 {
			return 0, fmt.Errorf("status code %d out of range", code)
		}
		return code, nil
	}
	name := strings.TrimPrefix(s, "Status")
	if code, ok := statusNames[name]; ok {
		return code, nil
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

func parseRule(s string) (resp.Rule, error) {
	switch s {
	case "empty":
		return resp.RuleEmpty, nil
	case "serialize":
		return resp.RuleSerialize, nil
	case "keyed":
		return resp.RuleKeyed, nil
	case "static":
		return resp.RuleStatic, nil
	case "message":
		return resp.RuleMessage, nil
	case "error":
		return resp.RuleFromError, nil
	default:
		return 0, fmt.Errorf("unknown body rule %q", s)
	}
}

// parseStaticPairs parses static=k1:v1,k2:v2 into a map, rejecting
// duplicate keys.
func parseStaticPairs(s string) (map[string]string, error) {
	if s == "" {
		return nil, fmt.Errorf("attribute %q must not be empty", "static")
	}
	pairs := map[string]string{}
	for _, part := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(part, ":")
		if !ok || key == "" {
			return nil, fmt.Errorf("malformed static pair %q, want key:value", part)
		}
		if _, dup := pairs[key]; dup {
			return nil, fmt.Errorf("duplicate static key %q", key)
		}
		pairs[key] = value
	}
	return pairs, nil
}

// statusNames maps net/http status constant names (minus the Status prefix)
// to their codes, so directives can spell status=Unauthorized.
var statusNames = map[string]int{
	"Continue":                      http.StatusContinue,
	"SwitchingProtocols":            http.StatusSwitchingProtocols,
	"Processing":                    http.StatusProcessing,
	"EarlyHints":                    http.StatusEarlyHints,
	"OK":                            http.StatusOK,
	"Created":                       http.StatusCreated,
	"Accepted":                      http.StatusAccepted,
	"NonAuthoritativeInfo":          http.StatusNonAuthoritativeInfo,
	"NoContent":                     http.StatusNoContent,
	"ResetContent":                  http.StatusResetContent,
	"PartialContent":                http.StatusPartialContent,
	"MultiStatus":                   http.StatusMultiStatus,
	"AlreadyReported":               http.StatusAlreadyReported,
	"IMUsed":                        http.StatusIMUsed,
	"MultipleChoices":               http.StatusMultipleChoices,
	"MovedPermanently":              http.StatusMovedPermanently,
	"Found":                         http.StatusFound,
	"SeeOther":                      http.StatusSeeOther,
	"NotModified":                   http.StatusNotModified,
	"UseProxy":                      http.StatusUseProxy,
	"TemporaryRedirect":             http.StatusTemporaryRedirect,
	"PermanentRedirect":             http.StatusPermanentRedirect,
	"BadRequest":                    http.StatusBadRequest,
	"Unauthorized":                  http.StatusUnauthorized,
	"PaymentRequired":               http.StatusPaymentRequired,
	"Forbidden":                     http.StatusForbidden,
	"NotFound":                      http.StatusNotFound,
	"MethodNotAllowed":              http.StatusMethodNotAllowed,
	"NotAcceptable":                 http.StatusNotAcceptable,
	"ProxyAuthRequired":             http.StatusProxyAuthRequired,
	"RequestTimeout":                http.StatusRequestTimeout,
	"Conflict":                      http.StatusConflict,
	"Gone":                          http.StatusGone,
	"LengthRequired":                http.StatusLengthRequired,
	"PreconditionFailed":            http.StatusPreconditionFailed,
	"RequestEntityTooLarge":         http.StatusRequestEntityTooLarge,
	"RequestURITooLong":             http.StatusRequestURITooLong,
	"UnsupportedMediaType":          http.StatusUnsupportedMediaType,
	"RequestedRangeNotSatisfiable":  http.StatusRequestedRangeNotSatisfiable,
	"ExpectationFailed":             http.StatusExpectationFailed,
	"Teapot":                        http.StatusTeapot,
	"MisdirectedRequest":            http.StatusMisdirectedRequest,
	"UnprocessableEntity":           http.StatusUnprocessableEntity,
	"Locked":                        http.StatusLocked,
	"FailedDependency":              http.StatusFailedDependency,
	"TooEarly":                      http.StatusTooEarly,
	"UpgradeRequired":               http.StatusUpgradeRequired,
	"PreconditionRequired":          http.StatusPreconditionRequired,
	"TooManyRequests":               http.StatusTooManyRequests,
	"RequestHeaderFieldsTooLarge":   http.StatusRequestHeaderFieldsTooLarge,
	"UnavailableForLegalReasons":    http.StatusUnavailableForLegalReasons,
	"InternalServerError":           http.StatusInternalServerError,
	"NotImplemented":                http.StatusNotImplemented,
	"BadGateway":                    http.StatusBadGateway,
	"ServiceUnavailable":            http.StatusServiceUnavailable,
	"GatewayTimeout":                http.StatusGatewayTimeout,
	"HTTPVersionNotSupported":       http.StatusHTTPVersionNotSupported,
	"VariantAlsoNegotiates":         http.StatusVariantAlsoNegotiates,
	"InsufficientStorage":           http.StatusInsufficientStorage,
	"LoopDetected":                  http.StatusLoopDetected,
	"NotExtended":                   http.StatusNotExtended,
	"NetworkAuthenticationRequired": http.StatusNetworkAuthenticationRequired,
}
