package engine

import (
	"errors"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// resourceURL is the synthetic id under which inline definitions are compiled.
const resourceURL = "schema.json"

// NewSanthoshEngine returns the default Engine, backed by the
// santhosh-tekuri/jsonschema/v6 package.
func NewSanthoshEngine() Engine {
	return &santhoshEngine{}
}

type santhoshEngine struct{}

func (e *santhoshEngine) Build(def Definition) (Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(resourceURL, def); err != nil {
		return nil, err
	}
	s, err := c.Compile(resourceURL)
	if err != nil {
		return nil, err
	}
	return &santhoshSchema{s: s}, nil
}

// santhoshSchema wraps jsonschema.Schema to implement Schema.
type santhoshSchema struct {
	s *jsonschema.Schema
}

// Check adapts jsonschema.Schema.Validate, flattening the library's
// validation-error tree into a single Rejection.
func (ss *santhoshSchema) Check(v Value) *Rejection {
	err := ss.s.Validate(v)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &Rejection{
			ValuePath: []string{},
			CheckPath: []string{},
			Types:     []string{"error"},
			Message:   err.Error(),
		}
	}

	causes := leafCauses(ve)
	first := causes[0]

	types := make([]string, 0, len(causes))
	for _, c := range causes {
		types = append(types, failureType(c))
	}

	return &Rejection{
		ValuePath: pathCopy(first.InstanceLocation),
		CheckPath: pathCopy(first.ErrorKind.KeywordPath()),
		Types:     types,
		Message:   ve.Error(),
	}
}

// leafCauses returns the deepest causes of a validation error, which carry
// the concrete keyword failures. The root error itself is the only leaf when
// it has no causes.
func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, leafCauses(c)...)
	}
	return out
}

// failureType derives an identifier for the violated rule from the error
// kind's keyword path, e.g. "type", "minimum", "required".
func failureType(ve *jsonschema.ValidationError) string {
	kp := ve.ErrorKind.KeywordPath()
	if len(kp) == 0 {
		return "schema"
	}
	return kp[len(kp)-1]
}

func pathCopy(p []string) []string {
	out := make([]string, len(p))
	copy(out, p)
	return out
}
