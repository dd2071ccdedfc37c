package harness

import (
	"errors"

	"github.com/tidwall/gjson"
)

// Disposition says whether a declaration's entries are expected to validate.
type Disposition string

const (
	DispositionPass Disposition = "pass"
	DispositionFail Disposition = "fail"
)

// Wildcard is the catch-all marker in a pass/fail declaration. It stands for
// every entry of the referenced data fixture.
const Wildcard = "*"

// Detail is the expected introspection for a rejected value. A nil field is
// not checked. An empty (non-nil) path means "at the root".
type Detail struct {
	Value []string // expected path-to-value
	Check []string // expected path-to-check
	Types []string // expected failure-type identifiers, compared as a sorted set
}

// Expansion maps source fixture name -> entry name -> expected detail.
type Expansion map[string]map[string]*Detail

type declKind int

const (
	declEntryMap declKind = iota
	declEntryList
	declWildcard
)

// declaration is a raw pass/fail declaration for a single data source,
// normalised into a tagged variant at load time.
type declaration struct {
	kind    declKind
	entries map[string]*Detail // declEntryMap
	list    []string           // declEntryList
	detail  *Detail            // declWildcard: shared by every expanded entry
}

// parseDeclaration resolves the shape of one raw declaration. Recognised
// shapes: an entry->detail mapping, an entry-name list, or the wildcard (a
// bare "*" string, or a mapping/list whose sole element is "*"). Anything
// else is a fatal configuration error.
func parseDeclaration(schemaName string, d Disposition, source string, raw gjson.Result) (declaration, error) {
	malformed := func() error {
		return &MalformedDeclarationError{
			Schema:      schemaName,
			Disposition: d,
			Source:      source,
			Raw:         raw.Raw,
		}
	}

	switch {
	case raw.Type == gjson.String:
		if raw.String() != Wildcard {
			return declaration{}, malformed()
		}
		return declaration{kind: declWildcard}, nil

	case raw.IsArray():
		elems := raw.Array()
		if len(elems) == 1 && elems[0].Type == gjson.String && elems[0].String() == Wildcard {
			return declaration{kind: declWildcard}, nil
		}
		list := make([]string, 0, len(elems))
		for _, e := range elems {
			if e.Type != gjson.String {
				return declaration{}, malformed()
			}
			list = append(list, e.String())
		}
		return declaration{kind: declEntryList, list: list}, nil

	case raw.IsObject():
		entries := make(map[string]*Detail)
		var derr error
		raw.ForEach(func(key, value gjson.Result) bool {
			det, err := parseDetail(value)
			if err != nil {
				derr = err
				return false
			}
			entries[key.String()] = det
			return true
		})
		if derr != nil {
			return declaration{}, malformed()
		}
		if det, sole := entries[Wildcard]; sole && len(entries) == 1 {
			return declaration{kind: declWildcard, detail: det}, nil
		}
		return declaration{kind: declEntryMap, entries: entries}, nil

	default:
		return declaration{}, malformed()
	}
}

// expand resolves a declaration into its canonical entry -> detail mapping.
// Wildcards read the referenced data fixture's entries as they stand now, so
// data fixtures must be fully loaded first.
func (decl declaration) expand(s *Store, source string) (map[string]*Detail, error) {
	switch decl.kind {
	case declEntryMap:
		return decl.entries, nil

	case declEntryList:
		entries := make(map[string]*Detail, len(decl.list))
		for _, name := range decl.list {
			entries[name] = nil
		}
		return entries, nil

	default: // declWildcard
		df, err := s.DataFixture(source)
		if err != nil {
			return nil, err
		}
		entries := make(map[string]*Detail, len(df.Entries))
		for name := range df.Entries {
			entries[name] = decl.detail
		}
		return entries, nil
	}
}

// parseDetail decodes an expected-detail object. JSON null and the empty
// object both mean "rejection expected, nothing further checked". Path
// segments given as numbers are normalised to their decimal string form.
func parseDetail(raw gjson.Result) (*Detail, error) {
	if raw.Type == gjson.Null {
		return nil, nil
	}
	if !raw.IsObject() {
		return nil, errNotADetail
	}

	det := &Detail{}
	var derr error
	raw.ForEach(func(key, value gjson.Result) bool {
		segs, err := stringSlice(value)
		if err != nil {
			derr = err
			return false
		}
		switch key.String() {
		case "value":
			det.Value = segs
		case "check":
			det.Check = segs
		case "error":
			det.Types = segs
		default:
			derr = errNotADetail
			return false
		}
		return true
	})
	if derr != nil {
		return nil, derr
	}
	return det, nil
}

// errNotADetail signals shape failure up to the declaration parser, which
// wraps it in a MalformedDeclarationError carrying the offending value.
var errNotADetail = errors.New("not a detail object")

func stringSlice(raw gjson.Result) ([]string, error) {
	if !raw.IsArray() {
		return nil, errNotADetail
	}
	elems := raw.Array()
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		out = append(out, e.String())
	}
	return out, nil
}
