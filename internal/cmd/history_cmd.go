package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	historyLimit   int
	historyResults int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage query history",
	Long: `Inspect and manage the local query history.

History feeds the historical suggestion source: frequently repeated
queries surface as suggestions with confidence proportional to how
often you ran them. Entries older than the configured retention are
dropped on prune.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list [partial]",
	Short: "List recorded queries, optionally filtered",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryList,
}

var historyRecordCmd = &cobra.Command{
	Use:   "record <query>",
	Short: "Record a query as if it had been searched",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRecord,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop entries older than the retention window",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of entries to show")
	historyRecordCmd.Flags().IntVar(&historyResults, "results", 0, "Result count to store with the query")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyRecordCmd)
	historyCmd.AddCommand(historyPruneCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	deps, err := buildEngine()
	if err != nil {
		return err
	}
	defer deps.close()

	partial := ""
	if len(args) > 0 {
		partial = args[0]
	}

	records := deps.engine.History().Lookup(partial)
	if len(records) == 0 {
		if partial != "" {
			fmt.Printf("No history matching %q\n", partial)
		} else {
			fmt.Println("No query history yet.")
		}
		return nil
	}

	if historyLimit > 0 && len(records) > historyLimit {
		records = records[:historyLimit]
	}

	for _, r := range records {
		fmt.Printf("%s%s%s  %s%s  %dx, %d results%s\n",
			colorDim, r.LastSeen.Format("2006-01-02 15:04"), colorReset,
			r.Query,
			colorDim, r.Frequency, r.LastResultCount, colorReset)
	}

	fmt.Println()
	fmt.Printf("%sShowing %d entr%s%s\n", colorDim, len(records), pluralY(len(records)), colorReset)

	return nil
}

func runHistoryRecord(cmd *cobra.Command, args []string) error {
	deps, err := buildEngine()
	if err != nil {
		return err
	}
	defer deps.close()

	deps.engine.RecordQuery(args[0], historyResults)
	fmt.Printf("Recorded %q (%s results)\n", args[0], strconv.Itoa(historyResults))
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	deps, err := buildEngine()
	if err != nil {
		return err
	}
	defer deps.close()

	removed := deps.engine.History().Prune()
	fmt.Printf("Pruned %d entr%s\n", removed, pluralY(removed))
	return nil
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
