package sdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/invopop/jsonschema"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/sim"
)

// SimulateConfig is the YAML-decodable override document for Simulate
// (spec.md §9 "Configuration objects"). Every field is optional; a
// nil/zero field falls through to the built-in defaults, and any field the
// scenario's own `simulate` declaration sets takes precedence over this
// override.
type SimulateConfig struct {
	Runs           *int      `yaml:"runs,omitempty"            json:"runs,omitempty"            jsonschema:"minimum=1"`
	Method         string    `yaml:"method,omitempty"          json:"method,omitempty"          jsonschema:"enum=monte_carlo,enum=latin_hypercube,enum=sobol"`
	Seed           *int64    `yaml:"seed,omitempty"             json:"seed,omitempty"`
	Percentiles    []float64 `yaml:"percentiles,omitempty"      json:"percentiles,omitempty"`
	Convergence    *float64  `yaml:"convergence,omitempty"      json:"convergence,omitempty" jsonschema:"exclusiveMinimum=0,exclusiveMaximum=1"`
	TimeoutSeconds *float64  `yaml:"timeout_seconds,omitempty"  json:"timeout_seconds,omitempty" jsonschema:"minimum=0"`

	// OnProgress is a programmatic-only callback (spec.md §9 "Callbacks"),
	// never present in a YAML/JSON override document.
	OnProgress func(ProgressEvent) `yaml:"-" json:"-" jsonschema:"-"`
}

func (c *SimulateConfig) toInternal() *sim.Config {
	if c == nil {
		return nil
	}
	out := &sim.Config{
		Runs:        c.Runs,
		Method:      c.Method,
		Seed:        c.Seed,
		Percentiles: c.Percentiles,
		Convergence: c.Convergence,
	}
	if c.OnProgress != nil {
		cb := c.OnProgress
		out.OnProgress = func(e sim.ProgressEvent) { cb(ProgressEvent(e)) }
	}
	if c.TimeoutSeconds != nil {
		d := time.Duration(*c.TimeoutSeconds * float64(time.Second))
		out.Timeout = &d
	}
	return out
}

// GenerateConfigJSONSchema produces a JSON Schema Draft 2020-12 document
// from SimulateConfig, the way the teacher's schema.GenerateJSONSchema
// does for its Runbook type.
func GenerateConfigJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&SimulateConfig{})
	s.ID = "https://sdl.dev/schemas/simulate-config.json"
	s.Title = "SDL simulate configuration override"
	s.Description = "Schema for SDL's YAML simulate-config override documents"

	return json.MarshalIndent(s, "", "  ")
}

// LoadSimulateConfig decodes and validates a YAML override document
// (spec.md §9), grounded on the teacher's schema.Load + schema.ValidateFile
// pipeline: strict unknown-field YAML decode, then JSON Schema validation
// of the decoded document.
func LoadSimulateConfig(r io.Reader) (*SimulateConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("sdl: read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var cfg SimulateConfig
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("sdl: decode config: %w", err)
	}

	if err := validateConfigSchema(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateConfigSchema(cfg *SimulateConfig) error {
	schemaJSON, err := GenerateConfigJSONSchema()
	if err != nil {
		return fmt.Errorf("sdl: generate config schema: %w", err)
	}
	var schemaDoc any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return fmt.Errorf("sdl: unmarshal config schema: %w", err)
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource("simulate-config.json", schemaDoc); err != nil {
		return fmt.Errorf("sdl: add config schema resource: %w", err)
	}
	sch, err := c.Compile("simulate-config.json")
	if err != nil {
		return fmt.Errorf("sdl: compile config schema: %w", err)
	}

	asJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("sdl: marshal config for validation: %w", err)
	}
	var doc any
	if err := json.Unmarshal(asJSON, &doc); err != nil {
		return fmt.Errorf("sdl: unmarshal config document: %w", err)
	}

	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("sdl: config failed schema validation: %w", err)
	}
	return nil
}
