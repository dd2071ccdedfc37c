package harness

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FudgeTable is static known-failure configuration: it marks specific checks
// as currently expected to diverge from their declared outcome, without
// disabling them. Keyed by schema name, then data source.
type FudgeTable map[string]map[string]FudgeValue

// FudgeValue is either a uniform reason covering every entry of a source, or
// a per-entry reason mapping.
type FudgeValue struct {
	uniform  *string
	perEntry map[string]string
}

// UniformReason builds a FudgeValue whose reason applies to every entry.
func UniformReason(reason string) FudgeValue {
	return FudgeValue{uniform: &reason}
}

// PerEntryReasons builds a FudgeValue covering only the entries it names.
func PerEntryReasons(reasons map[string]string) FudgeValue {
	return FudgeValue{perEntry: reasons}
}

// UnmarshalYAML accepts a bare reason string or an entry->reason mapping.
func (v *FudgeValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		v.uniform = &s
		return nil
	case yaml.MappingNode:
		return node.Decode(&v.perEntry)
	default:
		return fmt.Errorf("fudge value must be a reason string or an entry mapping (line %d)", node.Line)
	}
}

// reason resolves the value for one entry. Absence is explicit: an empty
// stored reason is still a known failure.
func (v FudgeValue) reason(entry string) (string, bool) {
	if v.uniform != nil {
		return *v.uniform, true
	}
	r, ok := v.perEntry[entry]
	return r, ok
}

// ReasonFor reports whether the (schema, source, entry) check is a known,
// currently-tolerated discrepancy, and if so why.
func (t FudgeTable) ReasonFor(schemaName, source, entry string) (string, bool) {
	sources, ok := t[schemaName]
	if !ok {
		return "", false
	}
	v, ok := sources[source]
	if !ok {
		return "", false
	}
	return v.reason(entry)
}
