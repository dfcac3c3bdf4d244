// Package definition loads archetype schemas from YAML documents. A document declares one
// archetype:
//
//	archetype: Sensor
//	components:
//	  - field: readings
//	    component: example.Reading
//	    requirement: required
//	    type: float64
//	  - field: positions
//	    component: example.Position
//	    requirement: optional
//	    type: {kind: fixed_size_list, size: 3, elem: float32}
//
// The indicator slot is added automatically unless the document names one with the indicator
// key. Loaded schemas are registered through the idempotent path, so a definition may be loaded
// more than once and may restate a built-in archetype.
package definition

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// maxConcurrentFiles bounds the files parsed in parallel by LoadDir.
const maxConcurrentFiles = 8

type document struct {
	Archetype  string     `yaml:"archetype"`
	Indicator  string     `yaml:"indicator"`
	Components []slotSpec `yaml:"components"`
}

type slotSpec struct {
	Field       string   `yaml:"field"`
	Component   string   `yaml:"component"`
	Requirement string   `yaml:"requirement"`
	Type        typeSpec `yaml:"type"`
}

// Parse decodes every YAML document in r into a schema. Documents are separated by "---".
func Parse(r io.Reader) ([]*archetype.Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var schemas []*archetype.Schema
	for {
		var doc document
		err := dec.Decode(&doc)
		if eris.Is(err, io.EOF) {
			return schemas, nil
		}
		if err != nil {
			return nil, eris.Wrapf(err, "failed to decode document %d", len(schemas))
		}

		schema, err := doc.schema()
		if err != nil {
			return nil, eris.Wrapf(err, "document %d", len(schemas))
		}
		schemas = append(schemas, schema)
	}
}

// Load parses r and registers every schema with reg. Nothing is registered when parsing fails.
func Load(reg *archetype.Registry, r io.Reader) ([]*archetype.Schema, error) {
	schemas, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if err := register(reg, schemas); err != nil {
		return nil, err
	}
	return schemas, nil
}

// LoadFile loads a single definition file.
func LoadFile(reg *archetype.Registry, path string) ([]*archetype.Schema, error) {
	schemas, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	if err := register(reg, schemas); err != nil {
		return nil, eris.Wrapf(err, "file %s", path)
	}
	return schemas, nil
}

// LoadDir loads every *.yaml and *.yml file in dir. Files are parsed concurrently and registered
// in file name order once all of them parsed, so a malformed file leaves reg untouched.
func LoadDir(ctx context.Context, reg *archetype.Registry, dir string) ([]*archetype.Schema, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, eris.Wrapf(err, "failed to list %s", dir)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)

	parsed := make([][]*archetype.Schema, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFiles)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return eris.Wrap(err, "definition load canceled")
			}
			schemas, err := parseFile(path)
			if err != nil {
				return err
			}
			parsed[i] = schemas
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []*archetype.Schema
	for i, schemas := range parsed {
		if err := register(reg, schemas); err != nil {
			return nil, eris.Wrapf(err, "file %s", paths[i])
		}
		all = append(all, schemas...)
	}
	return all, nil
}

func parseFile(path string) ([]*archetype.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	schemas, err := Parse(f)
	if err != nil {
		return nil, eris.Wrapf(err, "file %s", path)
	}
	return schemas, nil
}

func register(reg *archetype.Registry, schemas []*archetype.Schema) error {
	for _, schema := range schemas {
		if err := reg.Register(schema); err != nil {
			return err
		}
	}
	return nil
}

func (d *document) schema() (*archetype.Schema, error) {
	if d.Archetype == "" {
		return nil, eris.New("missing archetype name")
	}

	slots := make([]archetype.Slot, 0, len(d.Components)+1)
	for _, spec := range d.Components {
		requirement, err := archetype.ParseRequirement(spec.Requirement)
		if err != nil {
			return nil, eris.Wrapf(err, "archetype %s: field %s", d.Archetype, spec.Field)
		}
		dt, err := spec.Type.dataType()
		if err != nil {
			return nil, eris.Wrapf(err, "archetype %s: field %s", d.Archetype, spec.Field)
		}
		slots = append(slots, archetype.Slot{
			Field:       spec.Field,
			Descriptor:  component.NewDescriptor(spec.Component, dt),
			Requirement: requirement,
		})
	}

	indicator := d.Indicator
	if indicator == "" {
		slots = append(slots, archetype.IndicatorSlot(d.Archetype))
		indicator = archetype.IndicatorName(d.Archetype)
	}
	return archetype.Define(d.Archetype, slots, indicator)
}
