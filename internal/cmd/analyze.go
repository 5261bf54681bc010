package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/capitolstream/searchcore/internal/search"
)

var analyzeFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <query>",
	Short: "Generate insights for a result set",
	Long: `Generate insights for a query and its search results.

Results are read as a JSON array from --file or from stdin. Each element
may carry id, title, content, speaker, category, source, date (RFC 3339),
and durationSeconds fields; missing fields simply exclude the result from
the insights that need them.

Examples:
  searchcore analyze "climate policy" --file results.json
  curl -s "$API/search?q=climate" | searchcore analyze "climate policy"`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Read results JSON from file instead of stdin")
}

// resultJSON is the wire shape accepted on stdin. Dates come in as RFC 3339
// strings so a missing or malformed date degrades to the zero time instead
// of failing the whole decode.
type resultJSON struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	Speaker         string `json:"speaker"`
	Category        string `json:"category"`
	Source          string `json:"source"`
	Date            string `json:"date"`
	DurationSeconds int    `json:"durationSeconds"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var in io.Reader = os.Stdin
	if analyzeFile != "" {
		f, err := os.Open(analyzeFile)
		if err != nil {
			return fmt.Errorf("open results file: %w", err)
		}
		defer f.Close()
		in = f
	}

	var raw []resultJSON
	if err := json.NewDecoder(in).Decode(&raw); err != nil {
		return fmt.Errorf("decode results JSON: %w", err)
	}

	results := make([]search.Result, 0, len(raw))
	for _, r := range raw {
		res := search.Result{
			ID:              r.ID,
			Title:           r.Title,
			Content:         r.Content,
			Speaker:         r.Speaker,
			Category:        r.Category,
			Source:          r.Source,
			DurationSeconds: r.DurationSeconds,
		}
		if r.Date != "" {
			if t, err := time.Parse(time.RFC3339, r.Date); err == nil {
				res.Date = t
			}
		}
		results = append(results, res)
	}

	deps, err := buildEngine()
	if err != nil {
		return err
	}
	defer deps.close()

	insights := deps.engine.Analyze(args[0], results)
	if len(insights) == 0 {
		fmt.Println("No insights for this result set.")
		return nil
	}

	for _, ins := range insights {
		marker := colorDim + "·" + colorReset
		if ins.Actionable {
			marker = colorYellow + "▸" + colorReset
		}
		fmt.Printf("%s %s%s%s  %s(%.0f%%)%s\n", marker, colorBold, ins.Title, colorReset, colorDim, ins.Confidence*100, colorReset)
		fmt.Printf("  %s\n", ins.Description)
	}

	return nil
}
