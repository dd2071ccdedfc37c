// Package engine defines the seam between the conformance harness and a
// schema-validation engine.
package engine

// A Definition is a parsed, JSON-compatible schema definition - i.e. the result of json.Unmarshal().
type Definition any

// A Value is a parsed JSON document to be checked against a schema.
type Value any

// Rejection describes where and why a schema rejected a value.
// A nil *Rejection means the value was accepted.
type Rejection struct {
	// ValuePath locates the offending value within the checked input.
	// An empty (non-nil) path means the value was rejected at its root.
	ValuePath []string

	// CheckPath locates the failing rule within the schema definition.
	CheckPath []string

	// Types holds one or more identifiers classifying the violated rules.
	Types []string

	// Message is a human-readable diagnostic for report output.
	Message string
}

// Schema is a built schema object that can check values.
type Schema interface {
	// Check reports how v fails validation, or nil if v is accepted.
	Check(v Value) *Rejection
}

// Engine builds Schema objects from raw definitions.
// A build error means the definition itself is not a valid schema.
type Engine interface {
	Build(def Definition) (Schema, error)
}
