package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/comalice/vectorx/internal/scenario"
)

// Persister stores scenario results by scenario name.
type Persister interface {
	Save(ctx context.Context, res scenario.Result) error
	Load(ctx context.Context, name string) (scenario.Result, error)
}

// NewPersister returns the persister for format, writing under dir.
func NewPersister(dir, format string) (Persister, error) {
	switch format {
	case FormatYAML:
		return NewYAMLPersister(dir)
	case FormatJSON, FormatTable, "":
		return NewJSONPersister(dir)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// JSONPersister writes one <scenario>.json file per result.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, res scenario.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return save(ctx, filepath.Join(p.dir, res.Scenario+".json"), data)
}

func (p *JSONPersister) Load(ctx context.Context, name string) (scenario.Result, error) {
	var res scenario.Result
	data, err := load(ctx, filepath.Join(p.dir, name+".json"), name)
	if err != nil {
		return res, err
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return scenario.Result{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return res, nil
}

// YAMLPersister writes one <scenario>.yaml file per result.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, res scenario.Result) error {
	data, err := yaml.Marshal(res)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	return save(ctx, filepath.Join(p.dir, res.Scenario+".yaml"), data)
}

func (p *YAMLPersister) Load(ctx context.Context, name string) (scenario.Result, error) {
	var res scenario.Result
	data, err := load(ctx, filepath.Join(p.dir, name+".yaml"), name)
	if err != nil {
		return res, err
	}
	if err := yaml.Unmarshal(data, &res); err != nil {
		return scenario.Result{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return res, nil
}

func save(ctx context.Context, fn string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func load(ctx context.Context, fn, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("scenario %q: %w", name, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return data, nil
}
