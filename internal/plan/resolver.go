package plan

import "fmt"

// Options holds the raw values collected by the command layer, before
// any file is read. String fields carry the short flag spellings
// ("r"/"s", "c"/"u"/"ne", "GET"/"get"/...) exactly as given.
type Options struct {
	Concurrency    int
	Requests       int
	Order          string
	DelayMs        int
	DelayDist      string
	URLFile        string
	URLs           []string
	Prefix         string
	Method         string
	PayloadsFile   string
	SlowPercentile float64
}

// Result is the artifact handed to the dispatch engine: the immutable
// plan, the resolved targets, and the per-candidate record of what
// prefix resolution did (empty when no prefix was supplied). The caller
// owns it exclusively; nothing in this package retains a reference.
type Result struct {
	Plan        ExecutionPlan
	Targets     ResolvedTargets
	Resolutions []Resolution
}

// Warnings returns the resolutions that need reporting: candidates that
// were neither absolute nor joinable and were kept verbatim.
func (r *Result) Warnings() []Resolution {
	var warnings []Resolution
	for _, res := range r.Resolutions {
		if res.Outcome == OutcomeUnresolvable {
			warnings = append(warnings, res)
		}
	}
	return warnings
}

// Resolve transforms raw option values into the final plan and targets.
//
// It runs in a fixed order: structural validation first (no I/O), then
// URL loading and prefix resolution, then payload loading and the
// payload-presence invariant. Any returned error is fatal and means no
// plan exists; per-URL resolution problems are not errors and are
// reported through Result.Warnings instead.
func Resolve(opts Options) (*Result, error) {
	// Exactly one URL source. Both or neither is a usage error, caught
	// before any file is touched.
	if opts.URLFile != "" && len(opts.URLs) > 0 {
		return nil, &UsageError{Message: "cannot combine --file with URL arguments"}
	}
	if opts.URLFile == "" && len(opts.URLs) == 0 {
		return nil, &UsageError{Message: "no URLs to test: supply --file or URL arguments"}
	}

	method, err := ParseMethod(opts.Method)
	if err != nil {
		return nil, err
	}
	order, err := ParseOrder(opts.Order)
	if err != nil {
		return nil, err
	}
	dist, err := ParseDelayDist(opts.DelayDist)
	if err != nil {
		return nil, err
	}

	if opts.Concurrency <= 0 {
		return nil, &ValidationError{Field: "concurrency", Message: "must be greater than 0"}
	}
	if opts.Requests <= 0 {
		return nil, &ValidationError{Field: "requests", Message: "must be greater than 0"}
	}
	if opts.DelayMs < 0 {
		return nil, &ValidationError{Field: "delay-time", Message: "cannot be negative"}
	}
	if opts.SlowPercentile != 0 && (opts.SlowPercentile <= 0 || opts.SlowPercentile > 1) {
		return nil, &ValidationError{Field: "reportslow", Message: fmt.Sprintf("percentile %v out of range (0, 1]", opts.SlowPercentile)}
	}

	urls, err := loadURLs(opts.URLFile, opts.URLs)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, &ValidationError{Field: "file", Message: fmt.Sprintf("%s contains no URLs", opts.URLFile)}
	}

	var resolutions []Resolution
	if opts.Prefix != "" {
		urls, resolutions, err = ApplyPrefix(opts.Prefix, urls)
		if err != nil {
			return nil, err
		}
	}

	// Payloads load whenever a file was given, even for GET where the
	// result is inert. The non-empty invariant applies to POST/PUT only.
	var payloads []string
	if opts.PayloadsFile != "" {
		payloads, err = readLines(opts.PayloadsFile)
		if err != nil {
			return nil, err
		}
	}
	if method.NeedsPayload() && len(payloads) == 0 {
		return nil, &ValidationError{Field: "payloads", Message: fmt.Sprintf("a payload file is required when method is %s", method)}
	}

	return &Result{
		Plan: ExecutionPlan{
			Concurrency:    opts.Concurrency,
			Requests:       opts.Requests,
			Order:          order,
			DelayMs:        opts.DelayMs,
			DelayDist:      dist,
			SlowPercentile: opts.SlowPercentile,
			Method:         method,
		},
		Targets: ResolvedTargets{
			URLs:     urls,
			Payloads: payloads,
		},
		Resolutions: resolutions,
	}, nil
}
