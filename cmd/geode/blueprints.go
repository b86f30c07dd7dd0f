package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/solver-geode/internal/loader"
	"github.com/napolitain/solver-geode/internal/models"
)

var outputFormat string

func newBlueprintsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blueprints",
		Short: "Print the robot costs of every blueprint",
		Long: `Loads the input file and prints its blueprints as a table, or converts
them to the text (--format text) or JSON (--format json) input format.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := showBlueprints(os.Stdout); err != nil {
				color.Red("Error: %v", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "Output format: table, text or json")
	return cmd
}

func showBlueprints(out io.Writer) error {
	blueprints, err := loader.LoadBlueprints(inputFile)
	if err != nil {
		return fmt.Errorf("loading blueprints: %w", err)
	}

	switch outputFormat {
	case "table":
		fmt.Fprintf(out, "📋 %d blueprints from %s:\n", len(blueprints), inputFile)
		printBlueprints(out, blueprints)
		return nil
	case "text":
		return loader.FormatBlueprints(out, blueprints)
	case "json":
		return writeJSON(out, blueprints)
	default:
		return fmt.Errorf("unknown format %q (want table, text or json)", outputFormat)
	}
}

func writeJSON(out io.Writer, blueprints []models.Blueprint) error {
	data, err := loader.MarshalBlueprintsJSON(blueprints)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
