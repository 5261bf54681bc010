package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var enhanceQuiet bool

var enhanceCmd = &cobra.Command{
	Use:   "enhance <query>",
	Short: "Enhance a query for better transcript recall",
	Long: `Run the query enhancement pipeline and show what changed.

The pipeline normalizes the query, expands political abbreviations,
and adds contextual and domain terms. The output includes the applied
techniques and the confidence and improvement scores.

Examples:
  searchcore enhance "POTUS economy"
  searchcore enhance "healthcare" --quiet`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEnhance,
}

func init() {
	enhanceCmd.Flags().BoolVarP(&enhanceQuiet, "quiet", "q", false, "Print only the enhanced query")
}

func runEnhance(cmd *cobra.Command, args []string) error {
	deps, err := buildEngine()
	if err != nil {
		return err
	}
	defer deps.close()

	query := strings.Join(args, " ")
	enhanced := deps.engine.Enhance(query)

	if enhanceQuiet {
		fmt.Println(enhanced.Enhanced)
		return nil
	}

	fmt.Printf("%sOriginal:%s  %s\n", colorDim, colorReset, enhanced.Original)
	fmt.Printf("%sEnhanced:%s  %s%s%s\n", colorDim, colorReset, colorBold, enhanced.Enhanced, colorReset)
	fmt.Println()

	if len(enhanced.Techniques) > 0 {
		fmt.Printf("%sTechniques:%s\n", colorDim, colorReset)
		for _, t := range enhanced.Techniques {
			fmt.Printf("  %s•%s %s\n", colorGreen, colorReset, t.String())
		}
		fmt.Println()
	}

	fmt.Printf("%sImprovement:%s %.0f%%   %sConfidence:%s %.0f%%\n",
		colorDim, colorReset, enhanced.ImprovementScore*100,
		colorDim, colorReset, enhanced.Confidence*100)

	if enhanced.Explanation != "" {
		fmt.Printf("%s%s%s\n", colorDim, enhanced.Explanation, colorReset)
	}

	return nil
}
