package trainers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/neurlang/evaluator/metrics"
)

// SessionRecorder accumulates the per-run scores of an evaluation session
// and aggregates them into session-level statistics.
type SessionRecorder struct {
	outputDir string
	verbose   bool
	sessionID string
	logger    *zap.Logger

	validation []metrics.Report
	test       []metrics.Report
}

// SessionResults is the aggregate written next to the run log directories.
type SessionResults struct {
	SessionID  string                     `json:"session_id"`
	Runs       int                        `json:"n_runs"`
	Validation map[string]metrics.Summary `json:"validation"`
	Test       map[string]metrics.Summary `json:"test,omitempty"`
}

// NewSessionRecorder creates a recorder saving below outputDir. When verbose
// is set, Save also prints the session table.
func NewSessionRecorder(outputDir string, verbose bool, logger *zap.Logger) *SessionRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRecorder{
		outputDir: outputDir,
		verbose:   verbose,
		sessionID: uuid.NewString(),
		logger:    logger,
	}
}

// Update records the scores of one run. A nil test report marks a run
// without a test split.
func (r *SessionRecorder) Update(validationScores, testScores metrics.Report) {
	r.validation = append(r.validation, validationScores.Clone())
	if testScores != nil {
		r.test = append(r.test, testScores.Clone())
	}
}

// Runs reports the number of recorded runs.
func (r *SessionRecorder) Runs() int {
	return len(r.validation)
}

// Results aggregates the recorded runs.
func (r *SessionRecorder) Results() SessionResults {
	return SessionResults{
		SessionID:  r.sessionID,
		Runs:       len(r.validation),
		Validation: metrics.Summarize(r.validation),
		Test:       metrics.Summarize(r.test),
	}
}

// Save writes results.json below the output directory and, when verbose,
// prints the session table.
func (r *SessionRecorder) Save() error {
	results := r.Results()

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(r.outputDir, "results.json")
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	r.logger.Info("session results saved",
		zap.String("session", results.SessionID),
		zap.Int("runs", results.Runs),
		zap.String("path", path))
	if r.verbose {
		fmt.Println(render(results))
	}
	return nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// render formats the session results as a metric table.
func render(results SessionResults) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Evaluation session (%d runs)", results.Runs)))
	b.WriteByte('\n')
	b.WriteString(dimStyle.Render(results.SessionID))
	b.WriteByte('\n')
	renderSplit(&b, "validation", results.Validation)
	renderSplit(&b, "test", results.Test)
	return b.String()
}

func renderSplit(b *strings.Builder, name string, summary map[string]metrics.Summary) {
	if len(summary) == 0 {
		return
	}
	b.WriteString(headerStyle.Render(name))
	b.WriteByte('\n')
	b.WriteString(fmt.Sprintf("  %-16s %12s %12s\n", "metric", "mean", "stdev"))
	for _, metric := range sortedKeys(summary) {
		s := summary[metric]
		b.WriteString(fmt.Sprintf("  %-16s %12.4f %12.4f\n", metric, s.Mean, s.Stdev))
	}
}

func sortedKeys(m map[string]metrics.Summary) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
