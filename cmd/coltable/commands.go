package main

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/json"
	"github.com/ajitpratap0/coltable/pkg/table"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "coltable",
		Short: "coltable - in-memory typed columnar tables",
		Long: `coltable loads CSV files, snapshots and Arrow streams into an in-memory
columnar table and runs searches, sorts and aggregates over it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.finish(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "Path to a YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.showMetrics, "metrics", false, "Print table metrics to stderr when done")

	root.AddCommand(
		newVersionCommand(),
		newInfoCommand(a),
		newStatsCommand(a),
		newSortCommand(a),
		newFilterCommand(a),
		newConvertCommand(a),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "coltable v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// parseRef resolves a column argument: a column name when the table has
// one, otherwise a position written as "3" or "#3".
func parseRef(t *table.Table, s string) (table.Ref, error) {
	if t.ColumnIndex(s) >= 0 {
		return table.Name(s), nil
	}
	if i, err := strconv.Atoi(strings.TrimPrefix(s, "#")); err == nil {
		return table.Index(i), nil
	}
	return nil, tableerrors.UnknownColumn(s)
}

type columnInfo struct {
	Name string `json:"name,omitempty"`
	Kind string `json:"kind"`
}

type tableInfo struct {
	Rows        int          `json:"rows"`
	Capacity    int          `json:"capacity"`
	MemoryBytes int64        `json:"memory_bytes"`
	Columns     []columnInfo `json:"columns"`
}

func newInfoCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info FILE",
		Short: "Show the schema and size of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable(args[0])
			if err != nil {
				return err
			}
			info := tableInfo{Rows: t.Rows(), Capacity: t.Capacity(), MemoryBytes: t.MemoryUsage()}
			for _, f := range t.Schema() {
				info.Columns = append(info.Columns, columnInfo{Name: f.Name, Kind: f.Kind.String()})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			fmt.Fprintf(out, "rows: %d\ncapacity: %d\nmemory: %d bytes\n\n", info.Rows, info.Capacity, info.MemoryBytes)
			schema, err := table.FromSchema(table.Schema{
				{Name: "column", Kind: columnar.KindText},
				{Name: "kind", Kind: columnar.KindText},
			})
			if err != nil {
				return err
			}
			for i, c := range info.Columns {
				name := c.Name
				if name == "" {
					name = "#" + strconv.Itoa(i)
				}
				if err := schema.AddRow(name, c.Kind); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(out, schema.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func newStatsCommand(a *app) *cobra.Command {
	var column, format string
	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Compute min, max, sum and average of numeric columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable(args[0])
			if err != nil {
				return err
			}

			var refs []table.Ref
			if column != "" {
				ref, err := parseRef(t, column)
				if err != nil {
					return err
				}
				refs = append(refs, ref)
			} else {
				for i, f := range t.Schema() {
					if f.Kind.IsNumeric() {
						refs = append(refs, table.Index(i))
					}
				}
			}

			stats, err := table.FromSchema(table.Schema{
				{Name: "column", Kind: columnar.KindText},
				{Name: "min", Kind: columnar.KindFloat64},
				{Name: "max", Kind: columnar.KindFloat64},
				{Name: "sum", Kind: columnar.KindFloat64},
				{Name: "avg", Kind: columnar.KindFloat64},
			})
			if err != nil {
				return err
			}
			for _, ref := range refs {
				row, err := aggregate(t, ref)
				if err != nil {
					return err
				}
				if err := stats.AddRow(row...); err != nil {
					return err
				}
			}
			return a.writeTable(cmd.OutOrStdout(), "", format, stats, 0)
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "Column name or #index (default: every numeric column)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: table, csv, json, jsonl")
	return cmd
}

func aggregate(t *table.Table, ref table.Ref) ([]interface{}, error) {
	lo, err := t.Minimum(ref)
	if err != nil {
		return nil, err
	}
	hi, err := t.Maximum(ref)
	if err != nil {
		return nil, err
	}
	sum, err := t.Sum(ref)
	if err != nil {
		return nil, err
	}
	avg, err := t.Average(ref)
	if err != nil {
		return nil, err
	}
	label := ref.String()
	if i, ok := ref.(table.Index); ok {
		if name, err := t.ColumnName(int(i)); err == nil && name != "" {
			label = name
		}
	}
	return []interface{}{label, lo, hi, sum, avg}, nil
}

type outputFlags struct {
	out    string
	format string
	limit  int
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Write the result to this file instead of stdout")
	cmd.Flags().StringVar(&o.format, "format", "", "Output format: table, csv, json, jsonl, snapshot, arrow")
	cmd.Flags().IntVar(&o.limit, "limit", 20, "Rows to print in table format (0 for all)")
}

func newSortCommand(a *app) *cobra.Command {
	var by string
	var output outputFlags
	cmd := &cobra.Command{
		Use:   "sort FILE",
		Short: "Sort a table by one column, keeping ties in their original order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable(args[0])
			if err != nil {
				return err
			}
			ref, err := parseRef(t, by)
			if err != nil {
				return err
			}
			if err := t.SortBy(ref); err != nil {
				return err
			}
			a.log.Info("sorted table", zap.String("by", by), zap.Int("rows", t.Rows()))
			return a.writeTable(cmd.OutOrStdout(), output.out, output.format, t, output.limit)
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "Column name or #index to sort by")
	_ = cmd.MarkFlagRequired("by")
	output.register(cmd)
	return cmd
}

func newFilterCommand(a *app) *cobra.Command {
	var column, pattern string
	var output outputFlags
	cmd := &cobra.Command{
		Use:   "filter FILE",
		Short: "Keep rows whose column text fully matches a regular expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable(args[0])
			if err != nil {
				return err
			}
			ref, err := parseRef(t, column)
			if err != nil {
				return err
			}
			out, err := t.Filter(ref, pattern)
			if err != nil {
				return err
			}
			a.log.Info("filtered table",
				zap.String("column", column),
				zap.String("pattern", pattern),
				zap.Int("matched", out.Rows()))
			return a.writeTable(cmd.OutOrStdout(), output.out, output.format, out, output.limit)
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "Column name or #index to match")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Regular expression matched against the whole value")
	_ = cmd.MarkFlagRequired("column")
	_ = cmd.MarkFlagRequired("pattern")
	output.register(cmd)
	return cmd
}

func newConvertCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert between CSV, snapshot, Arrow and JSON files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable(args[0])
			if err != nil {
				return err
			}
			return a.writeTable(cmd.OutOrStdout(), args[1], format, t, 0)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Output format (default: from the OUT extension)")
	return cmd
}
