package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitshepherds/conform/internal/engine"
)

// stubSchema returns a fixed rejection for every check; nil accepts all.
type stubSchema struct {
	rej *engine.Rejection
}

func (s stubSchema) Check(_ engine.Value) *engine.Rejection {
	return s.rej
}

// stubEngine is a test implementation of engine.Engine.
type stubEngine struct {
	BuildFunc func(def engine.Definition) (engine.Schema, error)
}

func (e *stubEngine) Build(def engine.Definition) (engine.Schema, error) {
	if e.BuildFunc != nil {
		return e.BuildFunc(def)
	}
	return stubSchema{}, nil
}

// strEngine builds schemas from definitions of the form {"type": "str"}. The
// built schema accepts strings and rejects everything else with a "type-fail"
// rejection at the root.
type strEngine struct{}

func (strEngine) Build(def engine.Definition) (engine.Schema, error) {
	m, ok := def.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("definition must be an object, got %T", def)
	}
	if typ, _ := m["type"].(string); typ != "str" {
		return nil, fmt.Errorf("unsupported type %v", m["type"])
	}
	return strSchema{}, nil
}

type strSchema struct{}

func (strSchema) Check(v engine.Value) *engine.Rejection {
	if _, ok := v.(string); ok {
		return nil
	}
	return &engine.Rejection{
		ValuePath: []string{},
		CheckPath: []string{"type"},
		Types:     []string{"type-fail"},
		Message:   fmt.Sprintf("%v is not a string", v),
	}
}

// mkdirFor creates the parent directory of the given file path.
func mkdirFor(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// writeFixtureAt writes a fixture file at the exact path given.
func writeFixtureAt(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeFixture writes a fixture file into dir and returns its path.
func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// fixtureMap maps file names (extension included) to JSON content.
type fixtureMap map[string]string

// newTestStore writes the given fixtures to a temp directory and loads them.
func newTestStore(t *testing.T, data, schemas fixtureMap) *Store {
	t.Helper()
	store, err := loadTestStore(t, data, schemas)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

// loadTestStore is newTestStore without the fatal-on-error behaviour, for
// tests asserting load failures.
func loadTestStore(t *testing.T, data, schemas fixtureMap) (*Store, error) {
	t.Helper()
	dir := t.TempDir()

	var dataPaths, schemaPaths []string
	for name, content := range data {
		dataPaths = append(dataPaths, writeFixture(t, dir, name, content))
	}
	for name, content := range schemas {
		schemaPaths = append(schemaPaths, writeFixture(t, dir, name, content))
	}

	return NewStore(dataPaths, schemaPaths)
}
