package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/compose"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/config"
)

var generateConfigCmd = &cobra.Command{
	Use:   "generate-config [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			path = filepath.Join(home, ".config", "linkedpost", "config.toml")
		}

		defaults := config.Default()
		defaults.Posts.Templates = compose.DefaultTemplates
		if err := config.Save(defaults, path); err != nil {
			return fmt.Errorf("generating config: %w", err)
		}
		fmt.Printf("wrote default configuration to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateConfigCmd)
}
