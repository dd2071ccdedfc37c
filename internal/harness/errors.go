package harness

import (
	"fmt"
)

type InvalidFixtureJSONError struct {
	Path string
}

func (e *InvalidFixtureJSONError) Error() string {
	return fmt.Sprintf("fixture %s is not valid JSON", e.Path)
}

type DuplicateFixtureError struct {
	Kind string // "data" or "schema"
	Name string
	Path string
}

func (e *DuplicateFixtureError) Error() string {
	return fmt.Sprintf("%s fixture %q loaded twice (second load from %s)", e.Kind, e.Name, e.Path)
}

type MalformedDataFixtureError struct {
	Path string
}

func (e *MalformedDataFixtureError) Error() string {
	return fmt.Sprintf("data fixture %s must be a JSON object or array", e.Path)
}

type MalformedSchemaFixtureError struct {
	Path   string
	Reason string
}

func (e *MalformedSchemaFixtureError) Error() string {
	return fmt.Sprintf("schema fixture %s: %s", e.Path, e.Reason)
}

type MalformedDeclarationError struct {
	Schema      string
	Disposition Disposition
	Source      string
	Raw         string
}

func (e *MalformedDeclarationError) Error() string {
	return fmt.Sprintf("schema fixture %q has a malformed %s declaration for source %q: %s",
		e.Schema, e.Disposition, e.Source, e.Raw)
}

type UnknownDataFixtureError struct {
	Name string
}

func (e *UnknownDataFixtureError) Error() string {
	return fmt.Sprintf("data fixture %q was never loaded", e.Name)
}

type UnknownEntryError struct {
	Schema string
	Source string
	Entry  string
}

func (e *UnknownEntryError) Error() string {
	return fmt.Sprintf("schema fixture %q names entry %q which does not exist in data fixture %q",
		e.Schema, e.Entry, e.Source)
}

// SchemaBuildError reports a schema fixture that is not marked invalid but
// failed to build. That is a harness misconfiguration, not a test outcome.
type SchemaBuildError struct {
	Name    string
	Wrapped error
}

func (e *SchemaBuildError) Error() string {
	return fmt.Sprintf("schema fixture %q should build a working schema but failed: %s", e.Name, e.Wrapped)
}

// UnexpectedBuildError marks a recorded failure: a schema declared invalid
// built successfully.
type UnexpectedBuildError struct {
	Name string
}

func (e *UnexpectedBuildError) Error() string {
	return fmt.Sprintf("schema fixture %q is marked invalid but built successfully", e.Name)
}

// ValueAcceptedError marks a recorded failure: a value expected to be
// rejected was accepted.
type ValueAcceptedError struct{}

func (e *ValueAcceptedError) Error() string {
	return "value was accepted but a rejection was expected"
}

// ValueRejectedError marks a recorded failure: a value expected to be
// accepted was rejected.
type ValueRejectedError struct {
	Diagnostic string
}

func (e *ValueRejectedError) Error() string {
	return fmt.Sprintf("value was rejected but acceptance was expected: %s", e.Diagnostic)
}

// PathMismatchError marks a recorded failure of a rejection-detail sub-check.
type PathMismatchError struct {
	Field string // "value" or "check"
	Want  []string
	Got   []string
}

func (e *PathMismatchError) Error() string {
	return fmt.Sprintf("rejection %s path is %v, expected %v", e.Field, e.Got, e.Want)
}

// TypeSetMismatchError marks a recorded failure of the failure-type sub-check.
// Both sets are reported sorted.
type TypeSetMismatchError struct {
	Want []string
	Got  []string
}

func (e *TypeSetMismatchError) Error() string {
	return fmt.Sprintf("rejection failure types are %v, expected %v", e.Got, e.Want)
}

// RunFailedError is returned after a completed run with failing points so the
// process exits non-zero. Known-tolerated points do not count.
type RunFailedError struct {
	Failed int
}

func (e *RunFailedError) Error() string {
	return fmt.Sprintf("%d conformance checks failed", e.Failed)
}
