// Package sweep runs a room simulation once per combination of parameter
// values and iteration, in parallel, and summarizes the reports.
package sweep

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"roomsim/internal/sims/room"
	pcore "roomsim/pkg/core"
)

//go:embed plan.schema.json
var planSchemaJSON string

var planSchema = jsonschema.MustCompileString("plan.schema.json", planSchemaJSON)

// Axes lists the values to sweep per parameter. Empty axes keep the base value.
type Axes struct {
	Dirt     []float64 `json:"dirt,omitempty" yaml:"dirt,omitempty"`
	Width    []int     `json:"width,omitempty" yaml:"width,omitempty"`
	Height   []int     `json:"height,omitempty" yaml:"height,omitempty"`
	Steps    []int     `json:"steps,omitempty" yaml:"steps,omitempty"`
	Cleaners []int     `json:"cleaners,omitempty" yaml:"cleaners,omitempty"`
}

// Plan describes a parameter sweep.
type Plan struct {
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Base       room.Config `json:"base" yaml:"base"`
	Vary       Axes        `json:"vary" yaml:"vary"`
	Iterations int         `json:"iterations" yaml:"iterations"`
	// Seed drives the per-run seeds; Base.Seed is ignored.
	Seed int64 `json:"seed" yaml:"seed"`
}

// Job is one run of a sweep.
type Job struct {
	// Index is the position of the job in the expanded plan.
	Index int `json:"index"`
	// Combo numbers the parameter combination; iterations of the same
	// combination share it.
	Combo     int         `json:"combo"`
	Iteration int         `json:"iteration"`
	Config    room.Config `json:"config"`
}

// DefaultPlan mirrors the classic experiment: three step caps times three
// cleaner counts on a 10x10 room with 20% dirt, five iterations each.
func DefaultPlan() Plan {
	return Plan{
		Name: "default",
		Base: room.DefaultConfig(),
		Vary: Axes{
			Steps:    []int{50, 100, 500},
			Cleaners: []int{1, 5, 20},
		},
		Iterations: 5,
		Seed:       42,
	}
}

// ParsePlan validates raw YAML against the plan schema and decodes it. Base
// fields missing from the document keep room.DefaultConfig values.
func ParsePlan(raw []byte) (Plan, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Plan{}, fmt.Errorf("parse plan: %w", err)
	}
	if doc == nil {
		return Plan{}, errors.New("parse plan: empty document")
	}
	// The schema validator wants JSON values, so round-trip through JSON.
	js, err := json.Marshal(doc)
	if err != nil {
		return Plan{}, fmt.Errorf("parse plan: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	var inst any
	if err := dec.Decode(&inst); err != nil {
		return Plan{}, fmt.Errorf("parse plan: %w", err)
	}
	if err := planSchema.Validate(inst); err != nil {
		return Plan{}, fmt.Errorf("invalid plan: %w", err)
	}

	p := Plan{Base: room.DefaultConfig(), Iterations: 1}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Plan{}, fmt.Errorf("parse plan: %w", err)
	}
	return p, nil
}

// LoadPlan reads and validates a YAML plan file.
func LoadPlan(path string) (Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, err
	}
	p, err := ParsePlan(raw)
	if err != nil {
		return Plan{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Jobs expands the plan into runs. Axes are nested in the order dirt, width,
// height, steps, cleaners (cleaners varies fastest) and each combination is
// repeated Iterations times. Seeds are drawn from Plan.Seed in job order, so
// the expansion is reproducible.
func (p Plan) Jobs() ([]Job, error) {
	if p.Iterations < 1 {
		return nil, fmt.Errorf("iterations must be at least 1, got %d", p.Iterations)
	}
	dirt := orDefault(p.Vary.Dirt, p.Base.DirtFraction)
	widths := orDefault(p.Vary.Width, p.Base.Width)
	heights := orDefault(p.Vary.Height, p.Base.Height)
	steps := orDefault(p.Vary.Steps, p.Base.MaxSteps)
	cleaners := orDefault(p.Vary.Cleaners, p.Base.Cleaners)

	rng := pcore.NewRNG(p.Seed)
	var jobs []Job
	var errs []error
	combo := 0
	for _, d := range dirt {
		for _, w := range widths {
			for _, h := range heights {
				for _, s := range steps {
					for _, c := range cleaners {
						cfg := p.Base
						cfg.DirtFraction = d
						cfg.Width = w
						cfg.Height = h
						cfg.MaxSteps = s
						cfg.Cleaners = c
						if err := cfg.Validate(); err != nil {
							errs = append(errs, fmt.Errorf("combination %d: %w", combo, err))
						}
						for it := 0; it < p.Iterations; it++ {
							cfg.Seed = rng.Int64()
							jobs = append(jobs, Job{Index: len(jobs), Combo: combo, Iteration: it, Config: cfg})
						}
						combo++
					}
				}
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return jobs, nil
}

func orDefault[T any](values []T, base T) []T {
	if len(values) == 0 {
		return []T{base}
	}
	return values
}
