package plan

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
)

// Outcome classifies what prefix resolution did with one candidate URL.
type Outcome int

const (
	// OutcomeAbsolute means the candidate already had a scheme and was
	// kept unchanged.
	OutcomeAbsolute Outcome = iota
	// OutcomeJoined means the candidate was a relative reference and was
	// joined against the prefix.
	OutcomeJoined
	// OutcomeUnresolvable means the candidate could not be parsed at all.
	// It stays in the URL set verbatim; the caller should warn.
	OutcomeUnresolvable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeJoined:
		return "joined"
	case OutcomeUnresolvable:
		return "unresolvable"
	default:
		return "absolute"
	}
}

// Resolution records the outcome of prefix resolution for one candidate.
// URL is the value kept in the resolved set: the join result for
// OutcomeJoined, the input verbatim otherwise.
type Resolution struct {
	Input   string
	URL     string
	Outcome Outcome
	Err     error
}

func (r Resolution) Warning() string {
	return fmt.Sprintf("URL %s is invalid: %v", r.Input, r.Err)
}

// ApplyPrefix resolves every candidate against the prefix, preserving
// order. Each candidate gets exactly one outcome:
//
//   - already absolute (has a scheme): kept unchanged, even if its
//     authority differs from the prefix's
//   - a relative reference: joined against the prefix per RFC 3986
//   - unparseable for any other reason: kept unchanged with Err set
//
// No candidate is ever dropped. The only fatal condition is a prefix
// that is not itself a well-formed absolute URL.
func ApplyPrefix(prefix string, candidates []string) ([]string, []Resolution, error) {
	base, err := url.Parse(prefix)
	if err != nil {
		return nil, nil, &UsageError{Message: fmt.Sprintf("invalid URL prefix %q: %v", prefix, err)}
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, nil, &UsageError{Message: fmt.Sprintf("invalid URL prefix %q: must be an absolute URL", prefix)}
	}

	resolved := make([]string, len(candidates))
	resolutions := make([]Resolution, len(candidates))
	for i, candidate := range candidates {
		res := resolveAgainst(base, candidate)
		resolved[i] = res.URL
		resolutions[i] = res
	}
	return resolved, resolutions, nil
}

// resolveAgainst applies the three-way branch for a single candidate.
func resolveAgainst(base *url.URL, candidate string) Resolution {
	u, err := url.Parse(candidate)
	if err != nil {
		return Resolution{Input: candidate, URL: candidate, Outcome: OutcomeUnresolvable, Err: err}
	}
	if u.IsAbs() {
		return Resolution{Input: candidate, URL: candidate, Outcome: OutcomeAbsolute}
	}
	joined, err := base.Parse(candidate)
	if err != nil {
		return Resolution{Input: candidate, URL: candidate, Outcome: OutcomeUnresolvable, Err: err}
	}
	return Resolution{Input: candidate, URL: joined.String(), Outcome: OutcomeJoined}
}

// loadURLs returns the candidate URL set: the non-empty lines of the URL
// file in file order, or the inline arguments verbatim. The caller has
// already checked that exactly one source is present.
func loadURLs(urlFile string, inline []string) ([]string, error) {
	if urlFile == "" {
		return append([]string(nil), inline...), nil
	}

	lines, err := readLines(urlFile)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			urls = append(urls, line)
		}
	}
	return urls, nil
}

// readLines reads a newline-delimited file into a slice, one entry per
// line with the trailing newline stripped. Empty lines are kept so that
// payload files may carry blank bodies.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	return lines, nil
}
