package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/arloliu/tabular/csvio"
	"github.com/arloliu/tabular/matrix"
	"github.com/arloliu/tabular/stat"
	"github.com/arloliu/tabular/value"
)

// readMatrix loads a CSV file honoring the persistent flags.
func readMatrix(cmd *cobra.Command, path string) (*matrix.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts := []csvio.Option{}
	if delim, _ := cmd.Flags().GetString("delimiter"); delim != "" {
		opts = append(opts, csvio.WithDelimiter([]rune(delim)[0]))
	}
	if gzipped, _ := cmd.Flags().GetBool("gzip"); gzipped {
		opts = append(opts, csvio.WithGzip())
	}

	r, err := csvio.NewReader(f, opts...)
	if err != nil {
		return nil, err
	}
	m, err := r.Read()
	if err != nil {
		return nil, err
	}

	return m.SetName(path), nil
}

func headRows(cmd *cobra.Command, args []string) error {
	m, err := readMatrix(cmd, args[0])
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("rows")
	if n > m.RowCount() {
		n = m.RowCount()
	}
	head, err := m.RowSlice(0, n)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), head.String())

	return nil
}

func summarize(cmd *cobra.Command, args []string) error {
	m, err := readMatrix(cmd, args[0])
	if err != nil {
		return err
	}
	summaries := stat.Summary(m)

	format, _ := cmd.Flags().GetString("format")
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		return enc.Encode(summaries)
	}
	for _, s := range summaries {
		fmt.Fprint(cmd.OutOrStdout(), s.String())
	}

	return nil
}

func convertColumns(cmd *cobra.Command, args []string) error {
	m, err := readMatrix(cmd, args[0])
	if err != nil {
		return err
	}

	typeFlags, _ := cmd.Flags().GetStringToString("types")
	targets := make(map[string]value.Type, len(typeFlags))
	for col, typeName := range typeFlags {
		t, err := value.ParseType(typeName)
		if err != nil {
			return err
		}
		targets[col] = t
	}
	if err := m.ConvertTypes(targets); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	w, err := csvio.NewWriter(out)
	if err != nil {
		return err
	}

	return w.Write(m)
}
