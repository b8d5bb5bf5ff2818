package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/gild/internal/adapter"
	"github.com/mouse-blink/gild/internal/config"
	m "github.com/mouse-blink/gild/internal/model"
)

// RunOptions carries the per-run settings layered over the corpus config.
type RunOptions struct {
	// Bless rewrites golden files from actual output instead of comparing.
	Bless bool

	// Parallel overrides the worker count when positive.
	Parallel int

	// Timeout overrides the per-execution timeout when positive.
	Timeout time.Duration

	// Filter restricts the run to tests whose name contains the string.
	Filter string
}

// Progress receives run events as they happen. Implementations must
// tolerate concurrent verdict delivery being serialized by the workflow.
type Progress interface {
	RunStarted(total, workers int)
	VerdictReported(v m.Verdict)
	RunCompleted(summary m.RunSummary)
}

// Workflow drives the whole harness pipeline: discovery, scheduling,
// invocation, normalization, comparison and verdict aggregation.
type Workflow struct {
	root   string
	cfg    config.Config
	fs     adapter.CorpusFS
	runner adapter.ToolRunner
	store  adapter.ExpectationStore
	norm   *Normalizer
}

// NewWorkflow wires the workflow for a corpus rooted at root.
func NewWorkflow(
	root string,
	cfg config.Config,
	fs adapter.CorpusFS,
	runner adapter.ToolRunner,
	store adapter.ExpectationStore,
) *Workflow {
	return &Workflow{
		root:   root,
		cfg:    cfg,
		fs:     fs,
		runner: runner,
		store:  store,
		norm:   NewNormalizer(root, cfg.VendorPrefixes),
	}
}

// Discover enumerates the corpus. Tests whose directives do not parse are
// returned as error verdicts rather than aborting discovery; sibling
// tests are unaffected.
func (w *Workflow) Discover() ([]m.TestCase, []m.Verdict, error) {
	sources, err := w.fs.Discover(w.root, w.cfg.Extensions)
	if err != nil {
		return nil, nil, fmt.Errorf("discover corpus: %w", err)
	}

	var (
		cases  []m.TestCase
		broken []m.Verdict
	)

	for _, src := range sources {
		name, err := w.caseName(src)
		if err != nil {
			return nil, nil, err
		}

		raw, err := w.fs.ReadFile(src)
		if err != nil {
			broken = append(broken, m.Verdict{
				Execution: m.Execution{Case: m.TestCase{Name: name, Source: src}},
				Kind:      m.VerdictError,
				Reason:    fmt.Sprintf("read test source: %v", err),
			})

			continue
		}

		directives, err := ParseDirectives(raw)
		if err != nil {
			broken = append(broken, m.Verdict{
				Execution: m.Execution{Case: m.TestCase{Name: name, Source: src}},
				Kind:      m.VerdictError,
				Reason:    fmt.Sprintf("directives: %v", err),
			})

			continue
		}

		cases = append(cases, m.TestCase{Name: name, Source: src, Directives: directives})
	}

	return cases, broken, nil
}

// Run executes the corpus and streams verdicts to progress. Cancelling
// ctx stops dispatching new executions; in-flight ones run to their own
// timeout or completion so golden writes are never cut short.
func (w *Workflow) Run(ctx context.Context, opts RunOptions, progress Progress) (m.RunSummary, error) {
	cases, broken, err := w.Discover()
	if err != nil {
		return m.RunSummary{}, err
	}

	var execs []m.Execution
	for _, tc := range cases {
		if opts.Filter != "" && !strings.Contains(tc.Name, opts.Filter) {
			continue
		}

		if tc.Directives.Ignored {
			continue
		}

		execs = append(execs, tc.Executions()...)
	}

	workers := opts.Parallel
	if workers <= 0 {
		workers = w.cfg.Parallel
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var (
		mu      sync.Mutex
		summary m.RunSummary
	)

	report := func(v m.Verdict) {
		mu.Lock()
		defer mu.Unlock()
		summary.Add(v)
		progress.VerdictReported(v)
	}

	progress.RunStarted(len(execs)+len(broken), workers)

	for _, v := range broken {
		report(v)
	}

	g := new(errgroup.Group)
	g.SetLimit(workers)

	for _, exec := range execs {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			// The dispatch loop blocks in g.Go while workers are busy, so
			// cancellation must be re-checked once a slot frees up.
			if ctx.Err() != nil {
				return nil
			}

			report(w.runOne(ctx, exec, opts))

			return nil
		})
	}

	_ = g.Wait()

	progress.RunCompleted(summary)

	return summary, ctx.Err()
}

// runOne pushes a single execution through the pipeline: invoke,
// exit-class check, normalize, parse, golden lookup or bless, compare.
func (w *Workflow) runOne(ctx context.Context, exec m.Execution, opts RunOptions) m.Verdict {
	start := time.Now()

	verdict := func(kind m.VerdictKind) m.Verdict {
		return m.Verdict{Execution: exec, Kind: kind, Duration: time.Since(start)}
	}

	errVerdict := func(format string, args ...any) m.Verdict {
		v := verdict(m.VerdictError)
		v.Reason = fmt.Sprintf(format, args...)

		return v
	}

	srcDir := filepath.Dir(string(exec.Case.Source))
	for _, aux := range exec.Case.Directives.AuxFiles {
		if !w.fs.Exists(m.Path(filepath.Join(srcDir, string(aux)))) {
			return errVerdict("missing auxiliary file %s", aux)
		}
	}

	timeout := w.cfg.Timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	if d := exec.Case.Directives.Timeout; d > 0 {
		timeout = d
	}

	args := append(append([]string{}, w.cfg.Args...), exec.Case.Directives.ExtraArgs...)
	if exec.Revision != "" {
		args = append(args, "--cfg="+exec.Revision)
	}

	// Run-level cancellation must not kill the subprocess mid-write; the
	// invocation is bounded by its own timeout instead.
	res, err := w.runner.Invoke(context.WithoutCancel(ctx), adapter.Invocation{
		Tool:    w.cfg.Tool,
		Args:    args,
		Source:  exec.Case.Source,
		Dir:     srcDir,
		Timeout: timeout,
	})
	if err != nil {
		return errVerdict("tool invocation: %v", err)
	}

	if res.TimedOut {
		return errVerdict("timeout after %s", timeout)
	}

	if res.Crashed {
		return errVerdict("tool crashed (killed by signal)")
	}

	normalized := w.norm.Normalize(res.Output)

	if !exec.Case.Directives.ExitClass.Matches(res.ExitCode) {
		v := verdict(m.VerdictFail)
		v.Reason = fmt.Sprintf("tool exited %d, expected %s", res.ExitCode, exec.Case.Directives.ExitClass)
		v.Output = normalized

		return v
	}

	if opts.Bless {
		if err := w.store.Save(exec, normalized); err != nil {
			return errVerdict("bless: %v", err)
		}

		return verdict(m.VerdictBlessed)
	}

	expected, found, err := w.store.Load(exec)
	if err != nil {
		return errVerdict("%v", err)
	}

	ok, diff := Compare(normalized, expected, found)
	if !ok {
		v := verdict(m.VerdictFail)
		v.Diff = diff
		v.Reason = mismatchReason(normalized, expected, found)

		return v
	}

	return verdict(m.VerdictPass)
}

// mismatchReason summarizes a text mismatch using the structured records,
// pointing at error-code drift when that is what changed.
func mismatchReason(actual, expected string, found bool) string {
	if !found {
		return "unexpected new output"
	}

	actualCodes := errorCodes(ParseDiagnostics(actual))
	expectedCodes := errorCodes(ParseDiagnostics(expected))

	if actualCodes != expectedCodes {
		return fmt.Sprintf("error codes changed: [%s] -> [%s]", expectedCodes, actualCodes)
	}

	return "output differs from golden"
}

// errorCodes renders the ordered distinct error codes of a diagnostic
// sequence, e.g. "E0507 E0382".
func errorCodes(diags []m.Diagnostic) string {
	var (
		codes []string
		seen  = make(map[string]struct{})
	)

	for _, d := range diags {
		if d.Code == "" {
			continue
		}

		if _, dup := seen[d.Code]; dup {
			continue
		}

		seen[d.Code] = struct{}{}
		codes = append(codes, d.Code)
	}

	return strings.Join(codes, " ")
}

// caseName derives the stable test identity: corpus-relative path without
// extension, slash-separated.
func (w *Workflow) caseName(src m.Path) (string, error) {
	rel, err := filepath.Rel(w.root, string(src))
	if err != nil {
		return "", fmt.Errorf("test path %s outside corpus root: %w", src, err)
	}

	rel = filepath.ToSlash(rel)

	return strings.TrimSuffix(rel, filepath.Ext(rel)), nil
}
