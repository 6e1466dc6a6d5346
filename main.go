/*
cerjssp runs the CE-RJSSP policy comparison, ablation, and generalization
experiments and writes their artifacts (JSON records and SVG charts) to an
output directory.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"cerjssp/artifacts"
	"cerjssp/chart"
	"cerjssp/experiment"
	"cerjssp/policy"
)

var (
	output       *string
	numInstances *int
	jobs         *int
	machines     *int
	policyConfig *string
)

func init() {
	output = flag.String("output", "results/", "result output directory")
	numInstances = flag.Int("num-instances", 10, "number of instances in the main policy comparison batch")
	jobs = flag.Int("jobs", 10, "jobs per generated instance")
	machines = flag.Int("machines", 10, "machines per generated instance")
	policyConfig = flag.String("policy-config", "", "optional yaml file overlaying the feature-weighted policy's weights")
	flag.Parse()
}

func runApp() (err error) {
	if err = os.MkdirAll(*output, 0o755); err != nil {
		return
	}

	weights := policy.WarmStartFeatureWeights
	if *policyConfig != "" {
		if weights, err = policy.LoadFeatureWeights(*policyConfig, weights); err != nil {
			return
		}
	}

	cfg := experiment.BatchConfig{
		NumInstances:  *numInstances,
		Jobs:          *jobs,
		Machines:      *machines,
		SeedOffset:    10,
		PolicyWeights: weights,
	}

	ctx := context.Background()
	summary, err := experiment.RunBatch(ctx, cfg)
	if err != nil {
		return
	}

	if _, err = artifacts.WritePolicyResults(*output, summary.PolicyResults); err != nil {
		return
	}
	if _, err = artifacts.WriteAblation(*output, summary.Ablation); err != nil {
		return
	}
	if _, err = artifacts.WriteGeneralization(*output, summary.Generalization); err != nil {
		return
	}
	if _, err = artifacts.WriteSummary(*output, summary); err != nil {
		return
	}

	writePolicyCharts(summary.PolicyResults)
	writeAblationChart(summary.Ablation)
	writeGeneralizationChart(summary.Generalization)

	fmt.Printf("Done. Artifacts saved to %s\n", *output)
	return nil
}

func writePolicyCharts(results []experiment.AggResult) {
	labels := make([]string, len(results))
	for i, r := range results {
		labels[i] = r.Policy
	}

	metrics := map[string]func(experiment.AggResult) float64{
		"makespan":        func(r experiment.AggResult) float64 { return r.Makespan },
		"total_tardiness": func(r experiment.AggResult) float64 { return r.TotalTardiness },
		"total_energy":    func(r experiment.AggResult) float64 { return r.TotalEnergy },
		"avg_wip":         func(r experiment.AggResult) float64 { return r.AvgWIP },
		"objective":       func(r experiment.AggResult) float64 { return r.Objective },
	}
	for name, get := range metrics {
		values := make([]float64, len(results))
		for i, r := range results {
			values[i] = get(r)
		}
		path := fmt.Sprintf("%s/policy_%s.svg", *output, name)
		if err := chart.Bar(labels, values, "Policy Comparison: "+name, path); err != nil {
			fmt.Fprintf(os.Stderr, "chart: %v\n", err)
		}
	}
}

func writeAblationChart(results []experiment.AggResult) {
	labels := make([]string, len(results))
	values := make([]float64, len(results))
	for i, r := range results {
		labels[i] = r.Policy
		values[i] = r.Objective
	}
	path := *output + "/ablation_objective.svg"
	if err := chart.Bar(labels, values, "Ablation: objective", path); err != nil {
		fmt.Fprintf(os.Stderr, "chart: %v\n", err)
	}
}

func writeGeneralizationChart(gen experiment.Generalization) {
	labels := []string{"in_distribution", "cross_scale", "ood_breakdown"}
	values := []float64{gen.InDistribution.Objective, gen.CrossScale.Objective, gen.OODBreakdown.Objective}
	path := *output + "/generalization_gap.svg"
	if err := chart.Line(labels, values, "Generalization Gap (objective)", path); err != nil {
		fmt.Fprintf(os.Stderr, "chart: %v\n", err)
	}
}

func main() {
	if err := runApp(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
