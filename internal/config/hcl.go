package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhimmel/disease-ontology/internal/ctxlog"
	"github.com/dhimmel/disease-ontology/internal/fsutil"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// HCLLoader is the HCL implementation of the Loader interface.
type HCLLoader struct {
	// environ supplies the values exposed as `env.<NAME>`.
	environ func() []string
}

// NewHCLLoader creates a loader that exposes the process environment.
func NewHCLLoader() *HCLLoader {
	return &HCLLoader{environ: os.Environ}
}

// fileRoot decodes all top-level blocks a configuration file may hold.
type fileRoot struct {
	Ontologies []*hclOntology `hcl:"ontology,block"`
	Logs       []*hclLog      `hcl:"log,block"`
	Servers    []*hclServer   `hcl:"server,block"`
}

type hclOntology struct {
	Name          string   `hcl:"name,label"`
	Path          string   `hcl:"path"`
	Relationships []string `hcl:"relationships,optional"`
}

type hclLog struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

type hclServer struct {
	Port     *int    `hcl:"port,optional"`
	Watch    *bool   `hcl:"watch,optional"`
	Debounce *string `hcl:"debounce,optional"`
}

// Load parses every .hcl file found in paths, in sorted order, and applies
// their blocks on top of base. At most one ontology block may be defined
// across all files.
func (l *HCLLoader) Load(ctx context.Context, base Config, paths ...string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	var files []string
	for _, p := range paths {
		found, err := fsutil.FindFilesByExtension(p, ".hcl")
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	cfg := base
	cfg.Relationships = append([]string(nil), base.Relationships...)
	parser := hclparse.NewParser()
	evalCtx := l.evalContext()
	ontologySeen := ""

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, o := range root.Ontologies {
			if ontologySeen != "" {
				return nil, fmt.Errorf("%s: duplicate ontology block %q, %q is already defined", file, o.Name, ontologySeen)
			}
			ontologySeen = o.Name
			applyOntology(&cfg, o, filepath.Dir(file))
		}
		for _, lg := range root.Logs {
			applyLog(&cfg, lg)
		}
		for _, s := range root.Servers {
			if err := applyServer(&cfg, s); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
		}
	}

	logger.Debug("HCL loading complete.", "ontology", cfg.OntologyName, "path", cfg.OntologyPath)
	return &cfg, nil
}

// evalContext exposes environment variables as the `env` object and a few
// string functions from the cty standard library.
func (l *HCLLoader) evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
		Functions: map[string]function.Function{
			"lower":     stdlib.LowerFunc,
			"upper":     stdlib.UpperFunc,
			"trimspace": stdlib.TrimSpaceFunc,
			"concat":    stdlib.ConcatFunc,
		},
	}
}

func applyOntology(cfg *Config, o *hclOntology, baseDir string) {
	cfg.OntologyName = o.Name
	cfg.OntologyPath = o.Path
	if o.Path != "" && !filepath.IsAbs(o.Path) {
		cfg.OntologyPath = filepath.Join(baseDir, o.Path)
	}
	if o.Relationships != nil {
		cfg.Relationships = o.Relationships
	}
}

func applyLog(cfg *Config, lg *hclLog) {
	if lg.Level != nil {
		cfg.LogLevel = strings.ToLower(*lg.Level)
	}
	if lg.Format != nil {
		cfg.LogFormat = strings.ToLower(*lg.Format)
	}
}

func applyServer(cfg *Config, s *hclServer) error {
	if s.Port != nil {
		cfg.ServerPort = *s.Port
	}
	if s.Watch != nil {
		cfg.Watch = *s.Watch
	}
	if s.Debounce != nil {
		d, err := time.ParseDuration(*s.Debounce)
		if err != nil {
			return fmt.Errorf("invalid server debounce %q: %w", *s.Debounce, err)
		}
		cfg.WatchDebounce = d
	}
	return nil
}
