package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/newsletter"
)

var flagPermissive bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch articles from the configured newsletter sources",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		manager := newsletter.NewManager(store, cfg)
		manager.SetPermissiveValidation(flagPermissive)

		articles, err := manager.FetchAll(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("fetched %d articles\n", len(articles))
		for _, a := range articles {
			fmt.Printf("  %s  %s\n", labelStyle.Render(a.Source), a.Title)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&flagPermissive, "permissive", false, "allow localhost and private-network source URLs")
	rootCmd.AddCommand(fetchCmd)
}
