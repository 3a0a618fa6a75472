package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/content"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Clean, score and tag fetched articles",
	RunE: func(*cobra.Command, []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		raw, err := store.RawArticles()
		if err != nil {
			return err
		}
		if len(raw) == 0 {
			fmt.Println("no fetched articles; run fetch first")
			return nil
		}

		processor := content.NewProcessor(cfg.Content)
		processed := processor.Process(raw)
		kept := processor.FilterByQuality(processed, cfg.Content.MinContentScore)

		if err := store.SaveProcessedArticles(kept); err != nil {
			return err
		}

		fmt.Printf("processed %d articles, %d above quality threshold %.2f\n",
			len(processed), len(kept), cfg.Content.MinContentScore)
		for _, a := range kept {
			fmt.Printf("  %s  %s\n", scoreStyle.Render(fmt.Sprintf("%.2f", a.ContentScore)), a.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
}
