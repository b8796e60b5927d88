package app

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// FileConfig is the optional HCL settings file. Every attribute is optional;
// unset attributes leave the corresponding Config field alone.
//
//	log_level  = "debug"
//	log_format = "json"
//	evaluator  = "expr"
//	workers    = 4
//	delimiter  = ";"
//	comment    = "#"
type FileConfig struct {
	LogLevel  *string `hcl:"log_level,optional"`
	LogFormat *string `hcl:"log_format,optional"`
	Evaluator *string `hcl:"evaluator,optional"`
	Workers   *int    `hcl:"workers,optional"`
	Delimiter *string `hcl:"delimiter,optional"`
	Comment   *string `hcl:"comment,optional"`
}

// LoadFileConfig parses and decodes the HCL settings file at path.
func LoadFileConfig(path string) (*FileConfig, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}
	return decodeFileConfig(path, hclFile)
}

// ParseFileConfig decodes settings from in-memory HCL source. filename is
// used only in diagnostics.
func ParseFileConfig(src []byte, filename string) (*FileConfig, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, diags)
	}
	return decodeFileConfig(filename, hclFile)
}

func decodeFileConfig(filename string, hclFile *hcl.File) (*FileConfig, error) {
	var fc FileConfig
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &fc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", filename, diags)
	}
	return &fc, nil
}

// ApplyTo copies every attribute set in the file onto cfg, except those for
// which explicit reports true. explicit receives the CLI flag name of the
// setting and may be nil.
func (fc *FileConfig) ApplyTo(cfg *Config, explicit func(flag string) bool) error {
	if explicit == nil {
		explicit = func(string) bool { return false }
	}

	if fc.LogLevel != nil && !explicit("log-level") {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil && !explicit("log-format") {
		cfg.LogFormat = *fc.LogFormat
	}
	if fc.Evaluator != nil && !explicit("evaluator") {
		cfg.Evaluator = *fc.Evaluator
	}
	if fc.Workers != nil && !explicit("workers") {
		cfg.Workers = *fc.Workers
	}
	if fc.Delimiter != nil && !explicit("delimiter") {
		r, err := ParseRune("delimiter", *fc.Delimiter)
		if err != nil {
			return err
		}
		cfg.Delimiter = r
	}
	if fc.Comment != nil && !explicit("comment") {
		r, err := ParseRune("comment", *fc.Comment)
		if err != nil {
			return err
		}
		cfg.Comment = r
	}
	return nil
}
