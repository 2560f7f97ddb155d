// Command calibrate sweeps a sample corpus through the default policy table
// and a candidate variant, compares the score populations and writes the
// results to an Excel workbook for review.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"ideagate/adapters/excel"
	"ideagate/domain/scoring"
	"ideagate/internal/calibration"
)

func main() {
	var (
		corpusPath = flag.String("corpus", "", "path to a JSON file of calibration samples")
		outPath    = flag.String("out", "calibration.xlsx", "output workbook path")
		workers    = flag.Int("workers", calibration.DefaultConcurrency, "sweep concurrency")
	)
	flag.Parse()

	if *corpusPath == "" {
		log.Fatal("missing -corpus")
	}

	raw, err := os.ReadFile(*corpusPath)
	if err != nil {
		log.Fatal("Failed to read corpus:", err)
	}
	var samples []calibration.Sample
	if err := json.Unmarshal(raw, &samples); err != nil {
		log.Fatal("Failed to parse corpus:", err)
	}
	if len(samples) == 0 {
		log.Fatal("corpus is empty")
	}

	table := scoring.DefaultTable()
	candidate := flattenedVariant(table)

	cmp, err := calibration.Compare(context.Background(), table, candidate, samples, *workers)
	if err != nil {
		log.Fatal("Calibration failed:", err)
	}

	log.Printf("baseline mean=%.2f candidate mean=%.2f welch p=%.4f trend beta=%.4f",
		cmp.Baseline.Summary.Mean, cmp.Candidate.Summary.Mean, cmp.TTest.P, cmp.Trend.Beta)

	if err := excel.NewExporter().Export(*outPath, candidate, &cmp); err != nil {
		log.Fatal("Failed to write workbook:", err)
	}
	log.Printf("wrote %s", *outPath)
}

// flattenedVariant is the standing candidate under review: every category
// scored with the general-purpose weight vector, gates untouched.
func flattenedVariant(base scoring.PolicyTable) scoring.PolicyTable {
	variant := make(scoring.PolicyTable, len(base))
	for cat, policy := range base {
		variant[cat] = scoring.Policy{
			Weights: scoring.WeightVector{
				scoring.Problem: 0.20, scoring.Underserved: 0.15, scoring.Demand: 0.20,
				scoring.Differentiation: 0.15, scoring.Economics: 0.15, scoring.GTM: 0.15,
			},
			Gates: policy.Gates,
		}
	}
	return variant
}
