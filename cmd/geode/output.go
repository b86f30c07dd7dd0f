package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/napolitain/solver-geode/internal/models"
	"github.com/napolitain/solver-geode/internal/solver/geode"
)

func printSummary(out io.Writer, summary *geode.Summary, sc geode.Scenario) {
	successColor := color.New(color.FgGreen, color.Bold)

	fmt.Fprintf(out, "\n📊 All blueprints, %d minutes:\n", sc.WeightedHorizon)
	printResults(out, summary.Weighted, true)

	fmt.Fprintf(out, "\n📊 First %d blueprints, %d minutes:\n", len(summary.Subset), sc.SubsetHorizon)
	printResults(out, summary.Subset, false)

	successColor.Fprintf(out, "\n✓ Quality level sum: %d\n", summary.QualitySum)
	successColor.Fprintf(out, "✓ Geode product: %d\n", summary.TopProduct)
	fmt.Fprintf(out, "   Solved in %s\n", summary.Elapsed.Round(time.Millisecond))
}

func printResults(out io.Writer, results []*geode.Result, withQuality bool) {
	header := []string{"Blueprint", "Geodes", "Nodes", "Bound Cuts", "Dominance Cuts", "Spend Cap Cuts", "Time"}
	if withQuality {
		header = []string{"Blueprint", "Geodes", "Quality", "Nodes", "Bound Cuts", "Dominance Cuts", "Spend Cap Cuts", "Time"}
	}
	table := tablewriter.NewTable(out, tablewriter.WithHeader(header))

	for _, r := range results {
		row := []string{
			fmt.Sprintf("%d", r.BlueprintID),
			fmt.Sprintf("%d", r.Best),
		}
		if withQuality {
			row = append(row, fmt.Sprintf("%d", r.Quality()))
		}
		row = append(row,
			fmt.Sprintf("%d", r.Stats.Nodes),
			fmt.Sprintf("%d", r.Stats.BoundPrunes),
			fmt.Sprintf("%d", r.Stats.DominancePrunes),
			fmt.Sprintf("%d", r.Stats.SpendCapPrunes),
			r.Elapsed.Round(time.Microsecond).String(),
		)
		table.Append(row)
	}
	table.Render()
}

func printPlan(out io.Writer, r *geode.Result, blueprints []models.Blueprint) {
	var bp *models.Blueprint
	for i := range blueprints {
		if blueprints[i].ID == r.BlueprintID {
			bp = &blueprints[i]
			break
		}
	}
	if bp == nil {
		return
	}

	fmt.Fprintf(out, "\n🏗️  Blueprint %d build order (%d geodes in %d minutes):\n", r.BlueprintID, r.Best, r.Horizon)
	if len(r.Plan) == 0 {
		fmt.Fprintln(out, "   Nothing worth building")
		return
	}

	table := tablewriter.NewTable(out,
		tablewriter.WithHeader([]string{"#", "Minute", "Robot", "Cost"}),
	)
	for i, step := range r.Plan {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", step.Minute),
			step.Producer.String(),
			bp.Cost(step.Producer).String(),
		})
	}
	table.Render()
}

func printBlueprints(out io.Writer, blueprints []models.Blueprint) {
	header := []string{"Blueprint"}
	for _, rt := range models.AllResourceTypes() {
		header = append(header, rt.String()+" robot")
	}
	table := tablewriter.NewTable(out, tablewriter.WithHeader(header))

	for i := range blueprints {
		bp := &blueprints[i]
		row := []string{fmt.Sprintf("%d", bp.ID)}
		for _, rt := range models.AllResourceTypes() {
			row = append(row, bp.Cost(rt).String())
		}
		table.Append(row)
	}
	table.Render()
}
