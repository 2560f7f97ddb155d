package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ideagate/domain/category"
	"ideagate/domain/scoring"
	"ideagate/internal/calibration"
)

// Exporter writes policy tables and calibration results to a workbook for
// offline review.
type Exporter struct{}

// NewExporter creates a new workbook exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

const (
	policySheet = "Policy"
	sweepSheet  = "Calibration"
)

// Export writes one sheet with the policy table and, when cmp is non-nil,
// one with the calibration comparison, then saves the workbook at path.
func (e *Exporter) Export(path string, table scoring.PolicyTable, cmp *calibration.Comparison) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writePolicySheet(f, table); err != nil {
		return err
	}
	if cmp != nil {
		if err := e.writeSweepSheet(f, cmp); err != nil {
			return err
		}
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (e *Exporter) writePolicySheet(f *excelize.File, table scoring.PolicyTable) error {
	if _, err := f.NewSheet(policySheet); err != nil {
		return fmt.Errorf("failed to create policy sheet: %w", err)
	}

	headers := []interface{}{"category"}
	for _, d := range scoring.Dimensions() {
		headers = append(headers, "w_"+string(d))
	}
	headers = append(headers, "demand_min", "economics_min", "problem_min", "saturation_cap")
	if err := f.SetSheetRow(policySheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write policy header: %w", err)
	}

	row := 2
	for _, cat := range category.All() {
		policy, ok := table[cat]
		if !ok {
			continue
		}
		cells := []interface{}{cat.String()}
		for _, d := range scoring.Dimensions() {
			cells = append(cells, policy.Weights[d])
		}
		cells = append(cells, policy.Gates.DemandMin10, policy.Gates.EconomicsMin10, policy.Gates.ProblemMin10)
		if policy.Gates.SaturationCapOverall100 != nil {
			cells = append(cells, *policy.Gates.SaturationCapOverall100)
		} else {
			cells = append(cells, "")
		}
		if err := f.SetSheetRow(policySheet, fmt.Sprintf("A%d", row), &cells); err != nil {
			return fmt.Errorf("failed to write policy row for %s: %w", cat, err)
		}
		row++
	}
	return nil
}

func (e *Exporter) writeSweepSheet(f *excelize.File, cmp *calibration.Comparison) error {
	if _, err := f.NewSheet(sweepSheet); err != nil {
		return fmt.Errorf("failed to create calibration sheet: %w", err)
	}

	rows := [][]interface{}{
		{"metric", "baseline", "candidate"},
		{"n", cmp.Baseline.Summary.N, cmp.Candidate.Summary.N},
		{"mean", cmp.Baseline.Summary.Mean, cmp.Candidate.Summary.Mean},
		{"std_dev", cmp.Baseline.Summary.StdDev, cmp.Candidate.Summary.StdDev},
		{"median", cmp.Baseline.Summary.Median, cmp.Candidate.Summary.Median},
		{"gated", cmp.Baseline.Gated, cmp.Candidate.Gated},
		{"capped", cmp.Baseline.Capped, cmp.Candidate.Capped},
		{},
		{"welch_t", cmp.TTest.T},
		{"welch_df", cmp.TTest.DF},
		{"welch_p", cmp.TTest.P},
		{},
		{"trend_alpha", cmp.Trend.Alpha},
		{"trend_beta", cmp.Trend.Beta},
		{"trend_r2", cmp.Trend.R2},
	}
	for i, cells := range rows {
		row := cells
		if err := f.SetSheetRow(sweepSheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("failed to write calibration row %d: %w", i+1, err)
		}
	}
	return nil
}
