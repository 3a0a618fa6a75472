package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/compose"
)

var (
	flagMaxPosts int
	flagPreview  bool
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Render processed articles into LinkedIn posts",
	RunE: func(*cobra.Command, []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		articles, err := store.ProcessedArticles()
		if err != nil {
			return err
		}
		if len(articles) == 0 {
			fmt.Println("no processed articles; run process first")
			return nil
		}

		maxPosts := flagMaxPosts
		if maxPosts <= 0 {
			maxPosts = cfg.Posts.MaxPosts
		}

		composer := compose.NewComposer(cfg, nil)
		posts := composer.ComposeAll(articles, maxPosts)
		if err := store.SavePosts(posts); err != nil {
			return err
		}

		fmt.Printf("composed %d posts\n", len(posts))
		for _, p := range posts {
			fmt.Printf("  %s  %d chars, engagement %s\n",
				labelStyle.Render(p.ID), p.Length, scoreStyle.Render(fmt.Sprintf("%.2f", p.EngagementScore)))
			if flagPreview {
				fmt.Println(borderStyle.Render(p.Content))
			} else {
				fmt.Printf("    %s\n", firstLine(p.Content))
			}
		}
		return nil
	},
}

func firstLine(content string) string {
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		return content[:i]
	}
	return content
}

func init() {
	composeCmd.Flags().IntVar(&flagMaxPosts, "max", 0, "maximum posts to compose (default from config)")
	composeCmd.Flags().BoolVar(&flagPreview, "preview", false, "print full post bodies")
	rootCmd.AddCommand(composeCmd)
}
