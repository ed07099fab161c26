package reinstall

// Outcome classifies how a phase (or an individual start attempt) ended.
// Skipped and Failed are both non-fatal for every phase except Install;
// keeping them as data instead of suppressed errors keeps the fatal/non-fatal
// boundary explicit and testable.
type Outcome int

// Outcome values.
const (
	OutcomeOK Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

// String returns the label used in the final report.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PhaseResult is the recorded outcome of one phase of the sequence.
type PhaseResult struct {
	Phase          string
	Outcome        Outcome
	Detail         string
	Recommendation string
}

// StartResult is the outcome of one start attempt against one matched service.
type StartResult struct {
	Name    string
	Outcome Outcome
	Detail  string
}

// Report aggregates everything a run did. It is complete even when Run
// returns an error; the phases up to the fatal one are filled in.
type Report struct {
	// ResolvedName is the service name used for lookups.
	ResolvedName string
	// NameGuessed is true when ResolvedName was derived from the
	// executable name rather than supplied by the caller.
	NameGuessed bool

	Stop      PhaseResult
	Uninstall PhaseResult
	Install   PhaseResult
	Start     PhaseResult

	// Starts holds one entry per start attempt from the start phase.
	Starts []StartResult
}

// StartedCount returns how many start attempts ended with a running service.
func (r Report) StartedCount() int {
	n := 0
	for _, s := range r.Starts {
		if s.Outcome == OutcomeOK {
			n++
		}
	}
	return n
}

// Phases returns the per-phase results in execution order, skipping phases
// that never ran (zero Phase name).
func (r Report) Phases() []PhaseResult {
	all := []PhaseResult{r.Stop, r.Uninstall, r.Install, r.Start}
	phases := make([]PhaseResult, 0, len(all))
	for _, p := range all {
		if p.Phase != "" {
			phases = append(phases, p)
		}
	}
	return phases
}
