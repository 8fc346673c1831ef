package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tablekit/tablekit/internal/cli/pagination"
	"github.com/tablekit/tablekit/internal/config"
	"github.com/tablekit/tablekit/internal/ingest"
	"github.com/tablekit/tablekit/internal/logging"
	"github.com/tablekit/tablekit/internal/table"
	"github.com/tablekit/tablekit/internal/table/projection"
	"github.com/tablekit/tablekit/internal/table/window"
	"github.com/tablekit/tablekit/internal/tui"
)

// viewFlags holds the view command's flag values.
type viewFlags struct {
	filter          string
	sort            string
	rowHeight       int
	pageSize        int
	noVirtualScroll bool
	noInteractive   bool
	limit           int
	offset          int
	page            int
}

// newViewCmd creates the "view" subcommand.
func newViewCmd(inv *invocation) *cobra.Command {
	flags := &viewFlags{}

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "View a CSV or JSON file as a table",
		Long: "Load a CSV or JSON file and display it as a virtualized table. " +
			"Interactive when stdout is a terminal; otherwise a fixed page is printed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, inv.cfg, flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.filter, "filter", "", "filter expression 'field=value' (case-insensitive substring)")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "sort expression 'field' or 'field:asc|desc'")
	cmd.Flags().IntVar(&flags.rowHeight, "row-height", 0, "row height in cells (default from config)")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "rows per page when virtual scrolling is off")
	cmd.Flags().BoolVar(&flags.noVirtualScroll, "no-virtual-scroll", false, "disable scroll-driven windowing")
	cmd.Flags().BoolVar(&flags.noInteractive, "no-interactive", false, "print a fixed page instead of the TUI")
	cmd.Flags().IntVar(&flags.limit, "limit", pagination.DefaultLimit, "maximum rows to print (non-interactive)")
	cmd.Flags().IntVar(&flags.offset, "offset", 0, "rows to skip (non-interactive)")
	cmd.Flags().IntVar(&flags.page, "page", 0, "1-based page number (non-interactive)")

	return cmd
}

// runView loads the data set and dispatches to the interactive or plain
// renderer.
func runView(cmd *cobra.Command, cfg *config.Config, flags *viewFlags, path string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	tableCfg := cfg.Table.ToTableConfig()
	if flags.rowHeight > 0 {
		tableCfg.RowHeight = flags.rowHeight
	}
	if flags.pageSize > 0 {
		tableCfg.PageSize = flags.pageSize
	}
	if flags.noVirtualScroll {
		tableCfg.VirtualScrolling = false
	}
	if err := tableCfg.Validate(); err != nil {
		return err
	}

	filter, err := ParseFilter(flags.filter)
	if err != nil {
		return err
	}
	sort, err := pagination.ParseSort(flags.sort)
	if err != nil {
		return err
	}

	opts := ingest.DefaultOptions()
	opts.InferTypes = cfg.Ingest.InferTypes
	if cfg.Ingest.Delimiter != "" {
		opts.Delimiter = []rune(cfg.Ingest.Delimiter)[0]
	}

	dataset, err := ingest.Load(path, opts)
	if err != nil {
		return err
	}

	log.Info().
		Str("component", "cli").
		Str("path", path).
		Int("rows", len(dataset.Rows)).
		Int("columns", len(dataset.Columns)).
		Msg("data loaded")

	if flags.noInteractive || !isTerminal(os.Stdout) {
		return printPage(cmd, dataset, filter, sort, flags)
	}

	return runInteractive(cmd, dataset, tableCfg, filter, sort)
}

// runInteractive starts the Bubble Tea table over the data set.
func runInteractive(
	cmd *cobra.Command,
	dataset *ingest.Dataset,
	tableCfg table.Config,
	filter table.Filter,
	sort table.Sort,
) error {
	ctx := cmd.Context()
	log := logging.ComponentLogger(logging.FromContext(ctx), "tui")

	model := tui.NewTableModel(dataset.Columns, dataset.Rows, tableCfg, log)
	model.SetQuery(filter, sort)

	// Observe table changes for debug logging; the subscription lives for
	// the duration of the program.
	model.Events().Subscribe(func(e table.ChangeEvent) {
		log.Debug().
			Str("reason", e.Reason.String()).
			Int("rows", e.RowCount).
			Int("start", e.Start).
			Int("end", e.End).
			Msg("table changed")
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	model.SetPublisher(program.Send)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("table UI failed: %w", err)
	}
	return nil
}

// printPage renders a fixed page of the projection to stdout for piped or
// explicitly non-interactive use.
func printPage(
	cmd *cobra.Command,
	dataset *ingest.Dataset,
	filter table.Filter,
	sort table.Sort,
	flags *viewFlags,
) error {
	params := pagination.Params{
		Limit:  flags.limit,
		Offset: flags.offset,
		Page:   flags.page,
	}
	if params.Page > 0 {
		params.Limit = 0
		params.PageSize = flags.pageSize
		if params.PageSize == 0 {
			params.PageSize = pagination.DefaultPageSize
		}
	}
	if err := params.Validate(); err != nil {
		return err
	}

	projector := projection.NewDefault()
	projected := projector.Project(dataset.Rows, filter, sort)

	pageRows := pagination.Apply(params, projected)

	// The plain renderer is the disabled-virtual-scrolling path: a fixed
	// page window from the top of the paginated slice.
	rng := window.Compute(window.Viewport{
		RowHeight:        1,
		VirtualScrolling: false,
		PageSize:         len(pageRows),
	}, len(pageRows))

	out := cmd.OutOrStdout()

	headers := make([]string, 0, len(dataset.Columns))
	for _, col := range dataset.Columns {
		headers = append(headers, col.Header)
	}
	fmt.Fprintln(out, strings.Join(headers, "\t"))

	for i := rng.Start; i < rng.End; i++ {
		cells := make([]string, 0, len(dataset.Columns))
		for _, col := range dataset.Columns {
			cells = append(cells, cellText(pageRows[i][col.Field]))
		}
		fmt.Fprintln(out, strings.Join(cells, "\t"))
	}

	meta := pagination.NewMeta(params, len(projected))
	fmt.Fprintf(out, "# page %d/%d · %d of %d rows\n",
		meta.CurrentPage, meta.TotalPages, len(pageRows), meta.TotalItems)

	return nil
}

// cellText converts a cell value for plain output.
func cellText(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
