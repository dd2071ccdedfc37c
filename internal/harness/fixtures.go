// Package harness implements the conformance-test core: fixture loading,
// expectation expansion, known-failure overrides, and the runner and asserter
// that exercise a validation engine against the fixtures.
package harness

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Entry is a single named sample value within a data fixture. The raw JSON
// text is retained so every check decodes its own fresh copy of the value.
type Entry struct {
	Name string
	raw  string
}

// Decode parses a fresh value from the entry's raw JSON text.
func (e Entry) Decode() (any, error) {
	var v any
	if err := json.Unmarshal([]byte(e.raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// DataFixture is a named collection of sample values.
type DataFixture struct {
	Name    string
	Entries map[string]Entry
}

// EntryNames returns the fixture's entry names in lexical order.
func (f *DataFixture) EntryNames() []string {
	names := make([]string, 0, len(f.Entries))
	for n := range f.Entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SchemaFixture is a named schema definition plus its expanded pass/fail
// expectations.
type SchemaFixture struct {
	Name    string
	Invalid bool
	Schema  any

	Pass Expansion
	Fail Expansion
}

// Expansion returns the fixture's expansion for the given disposition.
func (f *SchemaFixture) Expansion(d Disposition) Expansion {
	if d == DispositionPass {
		return f.Pass
	}
	return f.Fail
}

// Store holds every loaded fixture. Fixtures are loaded eagerly and the store
// is read-only afterwards. Data fixtures must be loaded before schema
// fixtures so wildcard declarations can be expanded against them.
type Store struct {
	data    map[string]*DataFixture
	schemas map[string]*SchemaFixture
}

// NewStore loads every fixture from the given paths. Any structural problem
// is fatal and reported as a typed error.
func NewStore(dataPaths, schemaPaths []string) (*Store, error) {
	s := &Store{
		data:    make(map[string]*DataFixture),
		schemas: make(map[string]*SchemaFixture),
	}
	if err := s.LoadDataFixtures(dataPaths); err != nil {
		return nil, err
	}
	if err := s.LoadSchemaFixtures(schemaPaths); err != nil {
		return nil, err
	}
	return s, nil
}

// FixtureName derives a fixture's name from its file path: the base name with
// the extension stripped.
func FixtureName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadDataFixtures loads the given data-fixture files. A fixture given as a
// JSON array is normalised into a mapping where each element is keyed by its
// own textual form.
func (s *Store) LoadDataFixtures(paths []string) error {
	for _, path := range paths {
		doc, err := parseFixtureFile(path)
		if err != nil {
			return err
		}

		name := FixtureName(path)
		if _, dup := s.data[name]; dup {
			return &DuplicateFixtureError{Kind: "data", Name: name, Path: path}
		}

		f := &DataFixture{Name: name, Entries: make(map[string]Entry)}
		switch {
		case doc.IsObject():
			doc.ForEach(func(key, value gjson.Result) bool {
				f.Entries[key.String()] = Entry{Name: key.String(), raw: value.Raw}
				return true
			})
		case doc.IsArray():
			for _, elem := range doc.Array() {
				key := elem.String()
				f.Entries[key] = Entry{Name: key, raw: elem.Raw}
			}
		default:
			return &MalformedDataFixtureError{Path: path}
		}

		s.data[name] = f
	}
	return nil
}

// LoadSchemaFixtures loads the given schema-spec files and expands their
// pass/fail declarations. Data fixtures referenced by wildcards must already
// be loaded.
func (s *Store) LoadSchemaFixtures(paths []string) error {
	for _, path := range paths {
		doc, err := parseFixtureFile(path)
		if err != nil {
			return err
		}
		if !doc.IsObject() {
			return &MalformedSchemaFixtureError{Path: path, Reason: "must be a JSON object"}
		}

		name := FixtureName(path)
		if _, dup := s.schemas[name]; dup {
			return &DuplicateFixtureError{Kind: "schema", Name: name, Path: path}
		}

		f := &SchemaFixture{Name: name}

		if inv := doc.Get("invalid"); inv.Exists() {
			if !inv.IsBool() {
				return &MalformedSchemaFixtureError{Path: path, Reason: "invalid flag must be a boolean"}
			}
			f.Invalid = inv.Bool()
		}

		schemaField := doc.Get("schema")
		if !schemaField.Exists() {
			return &MalformedSchemaFixtureError{Path: path, Reason: "missing schema field"}
		}
		if err := json.Unmarshal([]byte(schemaField.Raw), &f.Schema); err != nil {
			return &MalformedSchemaFixtureError{Path: path, Reason: err.Error()}
		}

		for _, d := range []Disposition{DispositionPass, DispositionFail} {
			exp, err := s.expandDisposition(name, path, doc.Get(string(d)), d)
			if err != nil {
				return err
			}
			if d == DispositionPass {
				f.Pass = exp
			} else {
				f.Fail = exp
			}
		}

		s.schemas[name] = f
	}
	return nil
}

// expandDisposition parses one raw pass/fail field and expands each source's
// declaration into entry -> detail form.
func (s *Store) expandDisposition(
	schemaName, path string,
	field gjson.Result,
	d Disposition,
) (Expansion, error) {
	exp := make(Expansion)
	if !field.Exists() {
		return exp, nil
	}
	if !field.IsObject() {
		return nil, &MalformedSchemaFixtureError{
			Path:   path,
			Reason: string(d) + " must map data-fixture names to declarations",
		}
	}

	var ferr error
	field.ForEach(func(source, raw gjson.Result) bool {
		decl, err := parseDeclaration(schemaName, d, source.String(), raw)
		if err != nil {
			ferr = err
			return false
		}
		entries, err := decl.expand(s, source.String())
		if err != nil {
			ferr = err
			return false
		}
		exp[source.String()] = entries
		return true
	})
	if ferr != nil {
		return nil, ferr
	}
	return exp, nil
}

// DataFixture looks up a loaded data fixture. Referencing a fixture that was
// never loaded is a harness misconfiguration.
func (s *Store) DataFixture(name string) (*DataFixture, error) {
	f, ok := s.data[name]
	if !ok {
		return nil, &UnknownDataFixtureError{Name: name}
	}
	return f, nil
}

// SchemaFixture looks up a loaded schema fixture by name.
func (s *Store) SchemaFixture(name string) (*SchemaFixture, bool) {
	f, ok := s.schemas[name]
	return f, ok
}

// SchemaNames returns the loaded schema-fixture names in lexical order, which
// fixes the processing order of a run.
func (s *Store) SchemaNames() []string {
	names := make([]string, 0, len(s.schemas))
	for n := range s.schemas {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func parseFixtureFile(path string) (gjson.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, &InvalidFixtureJSONError{Path: path}
	}
	return gjson.ParseBytes(data), nil
}
