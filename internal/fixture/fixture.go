// Package fixture runs directories of example documents against their
// expected output.
//
// A fixture is a NAME.cfg document paired with either NAME.json, the value
// it must decode to, or NAME.error, a substring of the error it must fail
// with.
package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/go-logr/logr"

	"kriskowal.com/go/caret"
)

// Case is one fixture found on disk.
type Case struct {
	Name          string
	Input         string // path of the .cfg document
	ExpectedJSON  string // path of the .json file, if any
	ExpectedError string // path of the .error file, if any
}

// Discover returns the fixtures in dir sorted by name. dir must exist; an
// existing directory without fixtures yields no cases.
func Discover(dir string) ([]Case, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("fixture directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fixture directory %s: not a directory", dir)
	}

	inputs, err := filepath.Glob(filepath.Join(dir, "*.cfg"))
	if err != nil {
		return nil, err
	}
	sort.Strings(inputs)

	cases := make([]Case, 0, len(inputs))
	for _, input := range inputs {
		base := strings.TrimSuffix(input, ".cfg")
		c := Case{Name: filepath.Base(base), Input: input}
		if exists(base + ".json") {
			c.ExpectedJSON = base + ".json"
		}
		if exists(base + ".error") {
			c.ExpectedError = base + ".error"
		}
		switch {
		case c.ExpectedJSON == "" && c.ExpectedError == "":
			return nil, fmt.Errorf("fixture %s has neither .json nor .error", c.Name)
		case c.ExpectedJSON != "" && c.ExpectedError != "":
			return nil, fmt.Errorf("fixture %s has both .json and .error", c.Name)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Result is the outcome of one fixture.
type Result struct {
	Name   string
	Passed bool
	// Diff is a JSON merge patch turning the expected value into the
	// actual one.
	Diff string
	// Err is the parse error, or the reason an expected error did not match.
	Err error
}

// Report collects the results of a run.
type Report struct {
	Results []Result
}

// Failed returns the number of failed fixtures.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed {
			n++
		}
	}
	return n
}

// Runner runs fixtures.
type Runner struct {
	// Options is passed to the parser. Filename is set per fixture.
	Options caret.Options
	// Ordered additionally requires map keys in the expected order.
	Ordered bool
	Logger  logr.Logger
}

// Run runs every case. Fixture failures are recorded in the report; the
// returned error is reserved for fixtures that cannot be read.
func (r *Runner) Run(cases []Case) (*Report, error) {
	logger := r.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}

	report := &Report{}
	for _, c := range cases {
		res, err := r.runCase(c)
		if err != nil {
			return nil, fmt.Errorf("fixture %s: %w", c.Name, err)
		}
		if res.Passed {
			logger.V(1).Info("fixture passed", "name", c.Name)
		} else {
			logger.Info("fixture failed", "name", c.Name, "diff", res.Diff, "error", errString(res.Err))
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (r *Runner) runCase(c Case) (Result, error) {
	input, err := os.ReadFile(c.Input)
	if err != nil {
		return Result{}, err
	}

	opts := r.Options
	opts.Filename = filepath.Base(c.Input)
	value, parseErr := caret.UnmarshalOptions(input, opts)

	if c.ExpectedError != "" {
		want, err := os.ReadFile(c.ExpectedError)
		if err != nil {
			return Result{}, err
		}
		return checkError(c.Name, parseErr, strings.TrimSpace(string(want))), nil
	}

	expected, err := os.ReadFile(c.ExpectedJSON)
	if err != nil {
		return Result{}, err
	}
	if parseErr != nil {
		return Result{Name: c.Name, Err: parseErr}, nil
	}
	actual, err := caret.MarshalJSON(value)
	if err != nil {
		return Result{}, err
	}
	return r.compare(c.Name, expected, actual), nil
}

func checkError(name string, parseErr error, want string) Result {
	if parseErr == nil {
		return Result{Name: name, Err: fmt.Errorf("expected error containing %q, got success", want)}
	}
	if !strings.Contains(parseErr.Error(), want) {
		return Result{Name: name, Err: fmt.Errorf("error mismatch: got %q, want it to contain %q", parseErr.Error(), want)}
	}
	return Result{Name: name, Passed: true}
}

func (r *Runner) compare(name string, expected, actual []byte) Result {
	if !jsonpatch.Equal(expected, actual) {
		return Result{Name: name, Diff: diff(expected, actual)}
	}
	if r.Ordered {
		var compact bytes.Buffer
		if err := json.Compact(&compact, expected); err != nil {
			return Result{Name: name, Err: err}
		}
		if !bytes.Equal(compact.Bytes(), actual) {
			return Result{Name: name, Err: fmt.Errorf("key order differs: got %s, want %s", actual, compact.Bytes())}
		}
	}
	return Result{Name: name, Passed: true}
}

// diff describes how actual differs from expected. Merge patches only
// exist between two objects or two arrays; other documents are shown whole.
func diff(expected, actual []byte) string {
	patch, err := jsonpatch.CreateMergePatch(expected, actual)
	if err != nil {
		return fmt.Sprintf("want %s, got %s", bytes.TrimSpace(expected), actual)
	}
	return string(patch)
}
