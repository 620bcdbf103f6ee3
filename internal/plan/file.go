package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// File is a plan file: the same knobs as the command-line flags, in
// YAML. Pointer fields distinguish "absent" from a zero value so that
// the command layer can let explicit flags win over file values.
type File struct {
	Concurrency    *int     `yaml:"concurrency"`
	Requests       *int     `yaml:"requests"`
	Order          *string  `yaml:"order"`
	DelayMs        *int     `yaml:"delayMs"`
	DelayDist      *string  `yaml:"delayDist"`
	URLFile        *string  `yaml:"urlFile"`
	URLs           []string `yaml:"urls"`
	Prefix         *string  `yaml:"prefix"`
	Method         *string  `yaml:"method"`
	PayloadsFile   *string  `yaml:"payloadsFile"`
	SlowPercentile *float64 `yaml:"reportSlow"`
}

// LoadFile reads and validates a plan file. The document is checked
// against the embedded schema before decoding, so unknown keys and
// wrong-typed values fail here with a path into the document rather
// than surfacing later as zero values.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}

	if err := validateFileSchema(data); err != nil {
		return nil, &UsageError{Message: fmt.Sprintf("invalid plan file %s: %v", path, err)}
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &UsageError{Message: fmt.Sprintf("invalid plan file %s: %v", path, err)}
	}
	return &f, nil
}

// validateFileSchema checks the YAML document against fileSchema. The
// document is round-tripped through encoding/json first because the
// schema library expects JSON-decoded values.
func validateFileSchema(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var jsonDoc interface{}
	if err := json.Unmarshal(jsonData, &jsonDoc); err != nil {
		return err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("plan.json", strings.NewReader(fileSchema)); err != nil {
		return err
	}
	schema, err := compiler.Compile("plan.json")
	if err != nil {
		return err
	}
	return schema.Validate(jsonDoc)
}

// Apply copies file values into opts for every knob the command line
// did not set explicitly. changed reports whether the named flag was
// given on the command line.
func (f *File) Apply(opts *Options, changed func(name string) bool) {
	if f.Concurrency != nil && !changed("concurrency") {
		opts.Concurrency = *f.Concurrency
	}
	if f.Requests != nil && !changed("requests") {
		opts.Requests = *f.Requests
	}
	if f.Order != nil && !changed("order") {
		opts.Order = *f.Order
	}
	if f.DelayMs != nil && !changed("delay-time") {
		opts.DelayMs = *f.DelayMs
	}
	if f.DelayDist != nil && !changed("delay-dist") {
		opts.DelayDist = *f.DelayDist
	}
	if f.URLFile != nil && !changed("file") {
		opts.URLFile = *f.URLFile
	}
	if len(f.URLs) > 0 && len(opts.URLs) == 0 {
		opts.URLs = append([]string(nil), f.URLs...)
	}
	if f.Prefix != nil && !changed("prefix") {
		opts.Prefix = *f.Prefix
	}
	if f.Method != nil && !changed("method") {
		opts.Method = *f.Method
	}
	if f.PayloadsFile != nil && !changed("payloads") {
		opts.PayloadsFile = *f.PayloadsFile
	}
	if f.SlowPercentile != nil && !changed("reportslow") {
		opts.SlowPercentile = *f.SlowPercentile
	}
}
