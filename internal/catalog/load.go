package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// SupportedFormat is the major version of the authored trace file format
// this build understands.
const SupportedFormat = "v1"

// traceFile is the on-disk shape of an authored trace.
type traceFile struct {
	Format string `json:"format"`
	Trace
}

var (
	fileSchemaOnce sync.Once
	fileSchema     *jsonschema.Schema
	fileSchemaErr  error
)

func compiledFileSchema() (*jsonschema.Schema, error) {
	fileSchemaOnce.Do(func() {
		// The compiler wants a decoded JSON value, not Go literals.
		raw, err := json.Marshal(traceFileSchema)
		if err != nil {
			fileSchemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			fileSchemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://tracetutor/trace-file.json"
		if err := c.AddResource(url, def); err != nil {
			fileSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		fileSchema, fileSchemaErr = c.Compile(url)
	})
	return fileSchema, fileSchemaErr
}

// ParseTrace decodes and validates an authored trace document.
func ParseTrace(data []byte) (Trace, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return Trace{}, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledFileSchema()
	if err != nil {
		return Trace{}, fmt.Errorf("compile trace schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return Trace{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var f traceFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Trace{}, fmt.Errorf("decode trace: %w", err)
	}
	if !semver.IsValid(f.Format) {
		return Trace{}, fmt.Errorf("format %q is not a semantic version", f.Format)
	}
	if major := semver.Major(f.Format); major != SupportedFormat {
		return Trace{}, fmt.Errorf("format %s not supported (want %s.x)", f.Format, SupportedFormat)
	}

	if res := Validate(f.Trace); !res.Valid {
		return Trace{}, res.Err()
	}
	return f.Trace, nil
}

// LoadFile reads one authored trace from a JSON file.
func LoadFile(path string) (Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Trace{}, fmt.Errorf("read trace file: %w", err)
	}
	t, err := ParseTrace(data)
	if err != nil {
		return Trace{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// LoadDir reads every *.json file in dir in name order. A missing
// directory yields no traces and no error.
func LoadDir(dir string) ([]Trace, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read traces dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	traces := make([]Trace, 0, len(names))
	for _, name := range names {
		t, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		traces = append(traces, t)
	}
	return traces, nil
}

// RegisterDir loads the authored traces in dir into c.
func (c *Catalog) RegisterDir(dir string) (int, error) {
	traces, err := LoadDir(dir)
	if err != nil {
		return 0, err
	}
	for i, t := range traces {
		if err := c.Register(t); err != nil {
			return i, err
		}
	}
	return len(traces), nil
}
