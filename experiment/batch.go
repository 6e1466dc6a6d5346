package experiment

import (
	"context"

	"cerjssp/policy"
)

// BatchConfig bundles the parameters of one full experiment batch (spec.md
// §5, grounded on the reference runner's CLI args: --num-instances, --jobs,
// --machines, --policy-config).
type BatchConfig struct {
	NumInstances  int
	Jobs          int
	Machines      int
	SeedOffset    int64
	PolicyWeights policy.FeatureWeights
}

// DefaultBatchConfig mirrors the reference runner's argparse defaults.
var DefaultBatchConfig = BatchConfig{
	NumInstances:  10,
	Jobs:          10,
	Machines:      10,
	SeedOffset:    10,
	PolicyWeights: policy.WarmStartFeatureWeights,
}

// Summary is the full result set one batch produces: the policy comparison,
// the ablation study, and the generalization study (spec.md §5's
// summary.json).
type Summary struct {
	PolicyResults  []AggResult    `json:"policy_results"`
	Ablation       []AggResult    `json:"ablation"`
	Generalization Generalization `json:"generalization"`
}

// RunBatch builds cfg.NumInstances instances, evaluates every standard
// policy, runs the ablation study over the same instances, and runs the
// generalization study, returning everything as one Summary.
func RunBatch(ctx context.Context, cfg BatchConfig) (Summary, error) {
	instances, err := CreateInstances(cfg.NumInstances, cfg.Jobs, cfg.Machines, cfg.SeedOffset, nil)
	if err != nil {
		return Summary{}, err
	}

	var policyResults []AggResult
	for _, pol := range StandardPolicies(cfg.PolicyWeights) {
		r, err := EvaluatePolicy(ctx, pol.Name(), pol, instances)
		if err != nil {
			return Summary{}, err
		}
		policyResults = append(policyResults, r)
	}

	ablation, err := RunAblation(ctx, instances)
	if err != nil {
		return Summary{}, err
	}

	generalization, err := RunGeneralization(ctx)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		PolicyResults:  policyResults,
		Ablation:       ablation,
		Generalization: generalization,
	}, nil
}
