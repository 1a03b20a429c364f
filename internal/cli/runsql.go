package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/dataset"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/db"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// NewRunSQLCommand creates the run-sql command.
func NewRunSQLCommand() *cobra.Command {
	var sqlFile string

	cmd := &cobra.Command{
		Use:   "run-sql",
		Short: "Run a SQL file against the configured database and print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(sqlFile); err != nil {
				return errors.Wrapf(err, "sql file %s", sqlFile)
			}
			query, err := os.ReadFile(sqlFile)
			if err != nil {
				return errors.Wrapf(err, "reading sql file %s", sqlFile)
			}

			manager := db.NewManager(cfg.Database)
			if err := manager.Connect(cmd.Context()); err != nil {
				return err
			}
			defer func() { _ = manager.Close() }()

			frame, err := manager.FetchFrame(cmd.Context(), string(query))
			if err != nil {
				return err
			}

			renderFrame(cmd.OutOrStdout(), frame)
			return nil
		},
	}

	cmd.Flags().StringVar(&sqlFile, "sql-file", "", "path to the SQL file to execute")
	_ = cmd.MarkFlagRequired("sql-file")

	return cmd
}

func renderFrame(w io.Writer, f *dataset.Frame) {
	if f.NumRows() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	cols := f.Columns()
	header := make(table.Row, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, record := range f.Rows() {
		row := make(table.Row, len(record))
		for i, v := range record {
			row[i] = v
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", f.NumRows())
}
