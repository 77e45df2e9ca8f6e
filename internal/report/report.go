// Package report renders finished run summaries. It is a pure rendering
// stage: evaluation happened before it runs, and the only machine-readable
// contract it owns is the process exit code.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/minzf581/crypto-intel-engine-sub004/internal/build"
	"github.com/minzf581/crypto-intel-engine-sub004/internal/check"
)

// elapsed times are rounded for display only
const tick = 10 * time.Millisecond

// Reporter writes human or JSON renderings of a Summary.
type Reporter struct {
	Out    io.Writer
	Styles Styles
	JSON   bool
}

func New(out io.Writer, styles Styles, jsonMode bool) *Reporter {
	return &Reporter{Out: out, Styles: styles, JSON: jsonMode}
}

// Print renders every result and the summary line.
func (r *Reporter) Print(title string, s check.Summary) error {
	if r.JSON {
		enc := json.NewEncoder(r.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	fmt.Fprintln(r.Out, r.Styles.Bold.Render(title))
	passed, failed, warned := 0, 0, 0
	for _, res := range s.Results {
		switch {
		case res.Passed:
			passed++
			fmt.Fprintf(r.Out, "%s %s\n", r.Styles.Pass.Render("✔"), res.Name)
		case !res.Required:
			warned++
			fmt.Fprintf(r.Out, "%s %s: %s\n", r.Styles.Warn.Render("⚠"), res.Name, res.Err)
		default:
			failed++
			fmt.Fprintf(r.Out, "%s %s: %s\n", r.Styles.Fail.Render("✖"), res.Name, r.errLine(res))
			if res.Remediation != "" && res.Remediation != res.Err {
				fmt.Fprintf(r.Out, "  %s\n", r.Styles.Dim.Render("hint: "+res.Remediation))
			}
		}
	}

	fmt.Fprintf(r.Out, "\n%d passed, %d failed, %d warnings\n", passed, failed, warned)
	if s.AllPassed {
		fmt.Fprintln(r.Out, r.Styles.Pass.Render("all required checks passed"))
	} else {
		fmt.Fprintln(r.Out, r.Styles.Fail.Render("required checks failed"))
	}
	return nil
}

func (r *Reporter) errLine(res check.Result) string {
	if res.Kind != "" {
		return fmt.Sprintf("[%s] %s", res.Kind, res.Err)
	}
	return res.Err
}

// PrintPipeline renders build step results, including steps never reached.
func (r *Reporter) PrintPipeline(title string, steps []build.StepResult, ok bool) error {
	if r.JSON {
		enc := json.NewEncoder(r.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"steps": steps, "ok": ok})
	}

	fmt.Fprintln(r.Out, r.Styles.Bold.Render(title))
	for _, s := range steps {
		switch s.State {
		case build.Passed:
			fmt.Fprintf(r.Out, "%s %s (%s)\n", r.Styles.Pass.Render("✔"), s.Name, s.Elapsed.Round(tick))
		case build.Failed:
			fmt.Fprintf(r.Out, "%s %s: %s\n", r.Styles.Fail.Render("✖"), s.Name, s.Err)
			if s.Output != "" {
				fmt.Fprintf(r.Out, "  %s\n", r.Styles.Dim.Render(s.Output))
			}
		default:
			fmt.Fprintf(r.Out, "%s %s (skipped)\n", r.Styles.Dim.Render("-"), s.Name)
		}
	}
	fmt.Fprintln(r.Out)
	if ok {
		fmt.Fprintln(r.Out, r.Styles.Pass.Render("pipeline passed"))
	} else {
		fmt.Fprintln(r.Out, r.Styles.Fail.Render("pipeline failed"))
	}
	return nil
}

// ExitCode maps a summary to the process exit code: 0 iff every required
// check passed.
func ExitCode(s check.Summary) int {
	if s.AllPassed {
		return 0
	}
	return 1
}
