package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/capitolstream/searchcore/internal/suggest"
)

var (
	suggestInterests []string
	suggestPlain     bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <partial>",
	Short: "Rank suggestions for a partial query",
	Long: `Rank suggestions for a partially typed search query.

Suggestions are merged from four sources: your query history, trending
political topics, semantically similar queries, and your configured
interests. Personalized matches always rank first.

Examples:
  searchcore suggest "clim"
  searchcore suggest "healthcare" --interest "climate policy"
  searchcore suggest "tax" --plain`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringSliceVar(&suggestInterests, "interest", nil, "Interest to personalize with (repeatable; defaults to config profile)")
	suggestCmd.Flags().BoolVar(&suggestPlain, "plain", false, "One suggestion per line, no annotations")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	deps, err := buildEngine()
	if err != nil {
		return err
	}
	defer deps.close()

	interests := suggestInterests
	if len(interests) == 0 {
		interests = deps.cfg.Profile.Interests
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	partial := strings.TrimSpace(args[0])
	suggestions := deps.engine.Suggest(ctx, partial, suggest.Context{Interests: interests})

	if len(suggestions) == 0 {
		if !suggestPlain {
			fmt.Printf("No suggestions for %q\n", partial)
		}
		return nil
	}

	for _, s := range suggestions {
		if suggestPlain {
			fmt.Println(s.Text)
			continue
		}
		fmt.Printf("%s%-40s%s  %s%-12s%s  %.0f%%\n",
			colorBold, s.Text, colorReset,
			colorCyan, s.Signal.String(), colorReset,
			s.Confidence*100)
	}

	return nil
}
