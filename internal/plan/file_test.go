package plan

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writePlanFile(t, `
concurrency: 20
requests: 500
order: s
delayMs: 50
delayDist: ne
urls:
  - /a
  - /b
prefix: http://localhost:8070/
method: POST
payloadsFile: payloads.txt
reportSlow: 0.95
`)

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if *f.Concurrency != 20 || *f.Requests != 500 {
		t.Errorf("Concurrency/Requests = %d/%d", *f.Concurrency, *f.Requests)
	}
	if *f.Order != "s" || *f.DelayMs != 50 || *f.DelayDist != "ne" {
		t.Errorf("Order/DelayMs/DelayDist = %q/%d/%q", *f.Order, *f.DelayMs, *f.DelayDist)
	}
	if !reflect.DeepEqual(f.URLs, []string{"/a", "/b"}) {
		t.Errorf("URLs = %v", f.URLs)
	}
	if *f.Prefix != "http://localhost:8070/" || *f.Method != "POST" {
		t.Errorf("Prefix/Method = %q/%q", *f.Prefix, *f.Method)
	}
	if *f.SlowPercentile != 0.95 {
		t.Errorf("SlowPercentile = %v", *f.SlowPercentile)
	}
	if f.URLFile != nil {
		t.Errorf("URLFile = %v, want nil for absent key", *f.URLFile)
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := writePlanFile(t, "concurency: 20\n")

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("LoadFile() error = nil, want schema rejection for misspelled key")
	}
	if _, ok := err.(*UsageError); !ok {
		t.Errorf("error type = %T, want *UsageError", err)
	}
}

func TestLoadFileRejectsWrongTypes(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "string concurrency", content: "concurrency: ten\n"},
		{name: "zero concurrency", content: "concurrency: 0\n"},
		{name: "bad order", content: "order: sequential\n"},
		{name: "percentile above one", content: "reportSlow: 1.5\n"},
		{name: "urls not a list", content: "urls: /a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePlanFile(t, tt.content)
			if _, err := LoadFile(path); err == nil {
				t.Error("LoadFile() error = nil, want schema rejection")
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("LoadFile() error = nil, want resource error")
	}
	if _, ok := err.(*ResourceError); !ok {
		t.Errorf("error type = %T, want *ResourceError", err)
	}
}

func TestFileApply(t *testing.T) {
	conc := 20
	order := "s"
	method := "POST"
	f := &File{
		Concurrency: &conc,
		Order:       &order,
		Method:      &method,
		URLs:        []string{"/a"},
	}

	opts := Options{
		Concurrency: 10,
		Requests:    100,
		Order:       "r",
		Method:      "GET",
	}

	// concurrency was given explicitly on the command line, so the file
	// value must not win.
	changed := map[string]bool{"concurrency": true}
	f.Apply(&opts, func(name string) bool { return changed[name] })

	if opts.Concurrency != 10 {
		t.Errorf("Concurrency = %d, explicit flag should win over file", opts.Concurrency)
	}
	if opts.Order != "s" || opts.Method != "POST" {
		t.Errorf("Order/Method = %q/%q, file values should fill unset flags", opts.Order, opts.Method)
	}
	if !reflect.DeepEqual(opts.URLs, []string{"/a"}) {
		t.Errorf("URLs = %v, want file URLs when no args given", opts.URLs)
	}
}

func TestFileApplyKeepsInlineArgs(t *testing.T) {
	f := &File{URLs: []string{"/from-file"}}
	opts := Options{URLs: []string{"/from-args"}}

	f.Apply(&opts, func(string) bool { return false })

	if !reflect.DeepEqual(opts.URLs, []string{"/from-args"}) {
		t.Errorf("URLs = %v, positional args should win over file URLs", opts.URLs)
	}
}
