// Package jobspec parses the JSON job files that drive a preprocessing run.
//
// A job names its output (name, save_dir), the dataset implementation to
// index and any number of top-level keys containing "transform", which are
// chained in document order. The document is kept in its original key order
// so the exact configuration can be written next to the outputs it produced.
package jobspec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"audioprep/internal/dataset"
	"audioprep/internal/transform"
)

// DatasetCollectData is the only dataset implementation a job may name.
const DatasetCollectData = "CollectData"

// Component names an implementation and its keyword arguments.
type Component struct {
	Type string          `json:"type"`
	Args json.RawMessage `json:"args,omitempty"`
}

// NamedComponent is a transform component with the job key it was declared under.
type NamedComponent struct {
	Key string
	Component
}

// DatasetArgs are the arguments accepted by the CollectData dataset.
type DatasetArgs struct {
	PathToDataset []string `json:"path_to_dataset"`
	Extension     []string `json:"extension"`
	Subset        *string  `json:"subset"`
}

// Job is a parsed job document.
type Job struct {
	Name       string
	SaveDir    string
	Dataset    Component
	Transforms []NamedComponent

	entries []entry
}

type entry struct {
	key string
	raw json.RawMessage
}

// Load parses the job file at path.
func Load(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open job: %w", err)
	}
	defer f.Close()

	job, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse job %s: %w", path, err)
	}
	return job, nil
}

// Parse decodes a job document, keeping top-level keys in document order.
func Parse(r io.Reader) (*Job, error) {
	entries, err := readOrdered(r)
	if err != nil {
		return nil, err
	}

	job := &Job{entries: entries}
	for _, e := range entries {
		switch {
		case e.key == "name":
			if err := json.Unmarshal(e.raw, &job.Name); err != nil {
				return nil, fmt.Errorf("name: %w", err)
			}
		case e.key == "save_dir":
			if err := json.Unmarshal(e.raw, &job.SaveDir); err != nil {
				return nil, fmt.Errorf("save_dir: %w", err)
			}
		case e.key == "dataset":
			if err := json.Unmarshal(e.raw, &job.Dataset); err != nil {
				return nil, fmt.Errorf("dataset: %w", err)
			}
		case strings.Contains(e.key, "transform"):
			var comp Component
			if err := json.Unmarshal(e.raw, &comp); err != nil {
				return nil, fmt.Errorf("%s: %w", e.key, err)
			}
			job.Transforms = append(job.Transforms, NamedComponent{Key: e.key, Component: comp})
		}
	}

	if err := job.validate(); err != nil {
		return nil, err
	}
	return job, nil
}

func (j *Job) validate() error {
	if strings.TrimSpace(j.Name) == "" {
		return errors.New("name must be set")
	}
	if strings.TrimSpace(j.SaveDir) == "" {
		return errors.New("save_dir must be set")
	}
	if j.Dataset.Type == "" {
		return errors.New("dataset.type must be set")
	}
	if j.Dataset.Type != DatasetCollectData {
		return fmt.Errorf("dataset.type %q is not supported (known: %s)", j.Dataset.Type, DatasetCollectData)
	}
	if len(j.Transforms) == 0 {
		return errors.New("at least one transform entry is required")
	}
	for _, t := range j.Transforms {
		if strings.TrimSpace(t.Type) == "" {
			return fmt.Errorf("%s.type must be set", t.Key)
		}
	}
	return nil
}

func readOrdered(r io.Reader) ([]entry, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read job: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("job must be a JSON object")
	}

	seen := make(map[string]struct{})
	var entries []entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read job key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate key %q", key)
		}
		seen[key] = struct{}{}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		entries = append(entries, entry{key: key, raw: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read job: %w", err)
	}
	return entries, nil
}

// DatasetArgs decodes the dataset arguments, rejecting unknown fields.
func (j *Job) DatasetArgs() (DatasetArgs, error) {
	var args DatasetArgs
	trimmed := bytes.TrimSpace(j.Dataset.Args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return args, errors.New("dataset.args.path_to_dataset must be set")
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&args); err != nil {
		return args, fmt.Errorf("dataset.args: %w", err)
	}
	if len(args.PathToDataset) == 0 {
		return args, errors.New("dataset.args.path_to_dataset must list at least one directory")
	}
	return args, nil
}

// DatasetOptions converts the dataset arguments into index options.
func (j *Job) DatasetOptions() (dataset.Options, error) {
	args, err := j.DatasetArgs()
	if err != nil {
		return dataset.Options{}, err
	}
	subset := dataset.SubsetAll
	if args.Subset != nil {
		if subset, err = dataset.ParseSubset(*args.Subset); err != nil {
			return dataset.Options{}, fmt.Errorf("dataset.args.subset: %w", err)
		}
	}
	return dataset.Options{
		Roots:      args.PathToDataset,
		Extensions: args.Extension,
		Subset:     subset,
	}, nil
}

// TransformSpecs returns the transform components in chain order.
func (j *Job) TransformSpecs() []transform.Spec {
	specs := make([]transform.Spec, 0, len(j.Transforms))
	for _, t := range j.Transforms {
		specs = append(specs, transform.Spec{Type: t.Type, Args: t.Args})
	}
	return specs
}

// Encode writes the job document in its original key order, indented.
func (j *Job) Encode(w io.Writer) error {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, e := range j.entries {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := json.Marshal(e.key)
		if err != nil {
			return err
		}
		compact.Write(key)
		compact.WriteByte(':')
		if err := json.Compact(&compact, e.raw); err != nil {
			return fmt.Errorf("encode %s: %w", e.key, err)
		}
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "    "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

// Marshal returns the encoded job document.
func (j *Job) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := j.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
