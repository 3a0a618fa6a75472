package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/linkedin"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/schedule"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/storage"
)

func openEngine() (*schedule.Engine, *storage.Store, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	engine, err := schedule.NewEngine(store, linkedin.NewPoster(cfg.LinkedIn), cfg.Schedule)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return engine, store, nil
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Assign posting slots to composed posts",
	RunE: func(*cobra.Command, []string) error {
		engine, store, err := openEngine()
		if err != nil {
			return err
		}
		defer store.Close()

		posts, err := store.Posts()
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			fmt.Println("no composed posts; run compose first")
			return nil
		}

		scheduled := engine.Schedule(posts, schedule.Options{})
		fmt.Printf("scheduled %d posts\n", len(scheduled))
		for _, sp := range scheduled {
			fmt.Printf("  %s  %s\n", labelStyle.Render(sp.PostID), sp.ScheduledTime.Format("Mon 15:04"))
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show queue and scheduled-post counts",
	RunE: func(*cobra.Command, []string) error {
		engine, store, err := openEngine()
		if err != nil {
			return err
		}
		defer store.Close()

		qs := engine.QueueStatus()
		fmt.Printf("queued: %d  scheduled: %d  posted: %d  failed: %d\n",
			qs.QueueSize, qs.ScheduledPosts, qs.PostedPosts, qs.FailedPosts)

		for _, sp := range engine.ScheduledPosts("") {
			line := fmt.Sprintf("  %s  %-10s %s", sp.PostID, sp.Status, sp.ScheduledTime.Format("2006-01-02 15:04"))
			if sp.Error != "" {
				line += "  " + sp.Error
			}
			fmt.Println(line)
		}
		return nil
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show posting performance",
	RunE: func(*cobra.Command, []string) error {
		engine, store, err := openEngine()
		if err != nil {
			return err
		}
		defer store.Close()

		a, ok := engine.Analytics()
		if !ok {
			fmt.Println("no scheduled posts yet")
			return nil
		}

		fmt.Printf("total: %d  posted: %d  failed: %d\n", a.TotalPosts, a.PostedPosts, a.FailedPosts)
		fmt.Printf("success rate: %s\n", scoreStyle.Render(fmt.Sprintf("%.0f%%", a.SuccessRate*100)))
		fmt.Printf("avg engagement: %s\n", scoreStyle.Render(fmt.Sprintf("%.2f", a.AverageEngagementScore)))
		fmt.Printf("posted today: %d\n", a.PostsToday)
		return nil
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <post-id>",
	Short: "Cancel a scheduled post",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		engine, store, err := openEngine()
		if err != nil {
			return err
		}
		defer store.Close()

		if !engine.Cancel(args[0]) {
			return fmt.Errorf("post %s not found or already processed", args[0])
		}
		fmt.Printf("cancelled %s\n", args[0])
		return nil
	},
}

var rescheduleCmd = &cobra.Command{
	Use:   "reschedule",
	Short: "Move failed posts back onto the schedule",
	RunE: func(*cobra.Command, []string) error {
		engine, store, err := openEngine()
		if err != nil {
			return err
		}
		defer store.Close()

		rescheduled := engine.RescheduleFailed()
		if len(rescheduled) == 0 {
			fmt.Println("no failed posts")
			return nil
		}
		for _, sp := range rescheduled {
			fmt.Printf("  %s  %s\n", labelStyle.Render(sp.PostID), sp.ScheduledTime.Format("Mon 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd, statusCmd, analyticsCmd, cancelCmd, rescheduleCmd)
}
