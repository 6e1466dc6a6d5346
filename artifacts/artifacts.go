// Package artifacts writes experiment results to disk as JSON, the way the
// reference runner writes policy_results.json/ablation.json/
// generalization.json/summary.json (spec.md §5). Every writer returns the
// in-memory value it was given regardless of whether the write succeeds,
// so a caller can still report or chart results after a disk error
// (spec.md §7: I/O failures must not discard already-computed results).
package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"

	"cerjssp/experiment"
)

// WritePolicyResults writes results to <dir>/policy_results.json.
func WritePolicyResults(dir string, results []experiment.AggResult) ([]experiment.AggResult, error) {
	return results, writeJSON(filepath.Join(dir, "policy_results.json"), results)
}

// WriteAblation writes results to <dir>/ablation.json.
func WriteAblation(dir string, results []experiment.AggResult) ([]experiment.AggResult, error) {
	return results, writeJSON(filepath.Join(dir, "ablation.json"), results)
}

// WriteGeneralization writes gen to <dir>/generalization.json.
func WriteGeneralization(dir string, gen experiment.Generalization) (experiment.Generalization, error) {
	return gen, writeJSON(filepath.Join(dir, "generalization.json"), gen)
}

// WriteSummary writes summary to <dir>/summary.json.
func WriteSummary(dir string, summary experiment.Summary) (experiment.Summary, error) {
	return summary, writeJSON(filepath.Join(dir, "summary.json"), summary)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
