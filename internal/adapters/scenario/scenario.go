// Package scenario loads, validates and generates the settlements a run starts with
package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/settlement"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

//go:embed scenario.schema.json
var schemaJSON []byte

const schemaURL = "scenario.schema.json"

// ErrDuplicateID is returned when two settlements share an ID
var ErrDuplicateID = errors.New("duplicate settlement id")

// Catalog is an optional goods catalog carried by a scenario
type Catalog struct {
	goods.Definitions `yaml:",inline"`
	Processes         []goods.Process `yaml:"processes" json:"processes" validate:"dive"`
}

// Document is a decoded scenario file
type Document struct {
	Name        string               `yaml:"name,omitempty" json:"name,omitempty"`
	Start       float64              `yaml:"start,omitempty" json:"start,omitempty" validate:"gte=0"`
	Seed        int64                `yaml:"seed,omitempty" json:"seed,omitempty"`
	Catalog     *Catalog             `yaml:"catalog,omitempty" json:"catalog,omitempty"`
	Settlements []settlement.Profile `yaml:"settlements" json:"settlements" validate:"min=2,dive"`
}

// StartTime returns the scenario start as simulation time
func (d *Document) StartTime() shared.SimTime {
	return shared.SimTime(d.Start)
}

// BuildCatalog returns the scenario's catalog, or the standard one when none is given
func (d *Document) BuildCatalog() (*goods.Catalog, error) {
	if d.Catalog == nil {
		return goods.NewStandardCatalog()
	}
	if err := d.Catalog.Definitions.Validate(); err != nil {
		return nil, err
	}
	table, err := goods.NewStaticProcessTable(d.Catalog.Processes)
	if err != nil {
		return nil, err
	}
	return goods.NewCatalog(d.Catalog.Definitions, table)
}

// Loader validates scenario documents against the embedded schema and
// the struct tags of the decoded profiles
type Loader struct {
	schema   *jsonschema.Schema
	validate *validator.Validate
}

// NewLoader compiles the embedded schema
func NewLoader() (*Loader, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add scenario schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile scenario schema: %w", err)
	}
	return &Loader{schema: schema, validate: validator.New()}, nil
}

// LoadFile reads and parses the scenario at path
func (l *Loader) LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	doc, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML scenario, checks it against the schema and then
// against the profile constraints
func (l *Loader) Parse(data []byte) (*Document, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	// the schema validator works on JSON values
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("scenario is not JSON-compatible: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(asJSON, &generic); err != nil {
		return nil, err
	}
	if err := l.schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := l.Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks struct constraints and ID uniqueness
func (l *Loader) Validate(doc *Document) error {
	if err := l.validate.Struct(doc); err != nil {
		return shared.NewValidationError("scenario", err.Error())
	}
	seen := make(map[string]bool, len(doc.Settlements))
	for _, p := range doc.Settlements {
		if seen[p.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// Marshal encodes a document as YAML
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
