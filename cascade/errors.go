package cascade

import "fmt"

// SyntaxError reports malformed CSS encountered while parsing a property
// value, declaration, stylesheet, or media query (spec §7). It carries
// whatever context was available at the call site so the message can
// name the source.
type SyntaxError struct {
	URI     string
	Context string // property/attribute name, or "" for whole-sheet errors
	Snippet string
	Err     error
}

func (e *SyntaxError) Error() string {
	switch {
	case e.Context != "" && e.URI != "":
		return fmt.Sprintf("cascade: syntax error in %s (%s): %v: %q", e.URI, e.Context, e.Err, e.Snippet)
	case e.Context != "":
		return fmt.Sprintf("cascade: syntax error in %s: %v: %q", e.Context, e.Err, e.Snippet)
	case e.URI != "":
		return fmt.Sprintf("cascade: syntax error in %s: %v: %q", e.URI, e.Err, e.Snippet)
	default:
		return fmt.Sprintf("cascade: syntax error: %v: %q", e.Err, e.Snippet)
	}
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// SecurityError describes an @import load rejected by the caller-supplied
// checkLoadExternalResource hook. The engine does not construct or
// return it: a rejected import is skipped without an error.
type SecurityError struct {
	TargetURL   string
	DocumentURL string
	Err         error
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("cascade: blocked load of %s from %s: %v", e.TargetURL, e.DocumentURL, e.Err)
}

func (e *SecurityError) Unwrap() error { return e.Err }

// ImportResolutionError records a malformed @import URI. Per spec §7
// this is never surfaced as a returned error — the rule is silently
// dropped with a null href — but the type exists so the engine can log
// or test for the condition if a caller wants to.
type ImportResolutionError struct {
	Href string
	Err  error
}

func (e *ImportResolutionError) Error() string {
	return fmt.Sprintf("cascade: could not resolve @import %q: %v", e.Href, e.Err)
}

func (e *ImportResolutionError) Unwrap() error { return e.Err }

// InvalidEventKind is a fatal internal error: a mutation carried an
// attrChange code the invalidator does not recognise.
type InvalidEventKind struct {
	Kind int
}

func (e *InvalidEventKind) Error() string {
	return fmt.Sprintf("cascade: invalid mutation event kind %d", e.Kind)
}
