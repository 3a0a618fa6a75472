package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/compose"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/content"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/newsletter"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/schedule"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Fetch, process, compose and schedule in one run",
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, store, err := openEngine()
		if err != nil {
			return err
		}
		defer store.Close()

		manager := newsletter.NewManager(store, cfg)
		manager.SetPermissiveValidation(flagPermissive)

		raw, err := manager.FetchAll(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("fetched %d articles\n", len(raw))
		if len(raw) == 0 {
			return nil
		}

		processor := content.NewProcessor(cfg.Content)
		processed := processor.FilterByQuality(processor.Process(raw), cfg.Content.MinContentScore)
		if err := store.SaveProcessedArticles(processed); err != nil {
			return err
		}
		fmt.Printf("kept %d articles above quality threshold\n", len(processed))
		if len(processed) == 0 {
			return nil
		}

		composer := compose.NewComposer(cfg, nil)
		posts := composer.ComposeAll(processed, cfg.Posts.MaxPosts)
		if err := store.SavePosts(posts); err != nil {
			return err
		}
		fmt.Printf("composed %d posts\n", len(posts))

		scheduled := engine.Schedule(posts, schedule.Options{})
		for _, sp := range scheduled {
			fmt.Printf("  %s  %s\n", labelStyle.Render(sp.PostID), sp.ScheduledTime.Format("Mon 15:04"))
		}
		return nil
	},
}

func init() {
	pipelineCmd.Flags().BoolVar(&flagPermissive, "permissive", false, "allow localhost and private-network source URLs")
	rootCmd.AddCommand(pipelineCmd)
}
