package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "tabular",
		Short: "Inspect and transform tabular data files",
	}
	root.PersistentFlags().String("delimiter", ",", "field delimiter")
	root.PersistentFlags().Bool("gzip", false, "input is gzip compressed")
	addCommands(root)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func addCommands(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "head file",
		Short: "Print the first rows of a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE:  headRows}
	cmd.Flags().Int("rows", 10, "number of rows to print")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "summary file",
		Short: "Print per-column descriptive statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  summarize}
	cmd.Flags().String("format", "text", "output format: text or json")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "convert file",
		Short: "Coerce CSV columns to typed values and rewrite the file",
		Args:  cobra.ExactArgs(1),
		RunE:  convertColumns}
	cmd.Flags().StringToString("types", nil, "column→type mapping, e.g. id=int,salary=decimal")
	cmd.Flags().String("out", "", "output file (default stdout)")
	root.AddCommand(cmd)
}
