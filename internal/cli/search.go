package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/search"
)

var flagLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the article and post archive",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		var engine search.Searcher
		if cfg.Database.SearchIndex != "" {
			engine, err = search.NewBleveEngine(store, cfg.Database.SearchIndex)
			if err != nil {
				return fmt.Errorf("opening search index: %w", err)
			}
		} else {
			engine = search.NewEngine(store)
		}

		results, err := engine.Search(strings.Join(args, " "), flagLimit)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("no matches")
			return nil
		}

		for _, r := range results {
			switch {
			case r.IsPost:
				fmt.Printf("%s  post %s\n", scoreStyle.Render(fmt.Sprintf("%5.2f", r.Score)), r.Post.ID)
				fmt.Printf("       %s\n", firstLine(r.Post.Content))
			default:
				fmt.Printf("%s  %s\n", scoreStyle.Render(fmt.Sprintf("%5.2f", r.Score)), r.Article.Title)
				if r.Article.Link != "" {
					fmt.Printf("       %s\n", r.Article.Link)
				}
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&flagLimit, "limit", 10, "maximum results")
	rootCmd.AddCommand(searchCmd)
}
