package verify

import (
	"time"
)

// Result is the outcome of checking one target.
type Result struct {
	Target     Target        `json:"target"`
	URL        string        `json:"url"`
	Outcome    Outcome       `json:"outcome"`
	Err        error         `json:"-"`
	Error      string        `json:"error,omitempty"`
	Screenshot string        `json:"screenshot,omitempty"` // set only when written by this run
	Bytes      int           `json:"bytes,omitempty"`
	Diagnostic string        `json:"diagnostic,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
}

// OK reports whether the target verified.
func (r Result) OK() bool {
	return r.Outcome == Passed
}

// Report collects the results of a run in target order.
type Report struct {
	RunID      string    `json:"run_id"`
	BaseURL    string    `json:"base_url"`
	OutputDir  string    `json:"output_dir"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Results    []Result  `json:"results"`
}

// Passed counts verified targets.
func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed counts targets that did not verify.
func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
