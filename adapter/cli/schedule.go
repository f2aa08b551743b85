package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/sundial-app/sundial/internal/scheduling/application/commands"
	"github.com/sundial-app/sundial/internal/scheduling/application/services"
	"github.com/sundial-app/sundial/internal/scheduling/domain"
)

var (
	scheduleTaskID string
	scheduleMode   string
	scheduleAt     string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Find a slot for a task",
	Long: `Find a slot for a task from the snapshot and print the placement.

Examples:
  sundial schedule --task 7c9e... --mode today
  sundial schedule --task 7c9e... --mode asap --snapshot week.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := domain.ParseMode(scheduleMode)
		if err != nil {
			return err
		}

		userID, taskRepo, groupRepo, profileRepo, err := loadSnapshot(snapshotFile)
		if err != nil {
			return err
		}

		taskID, err := parseTaskID(scheduleTaskID)
		if err != nil {
			return err
		}

		now := time.Now()
		if scheduleAt != "" {
			now, err = time.Parse(time.RFC3339, scheduleAt)
			if err != nil {
				return fmt.Errorf("invalid --at, want RFC3339: %w", err)
			}
		}

		handler := commands.NewScheduleTaskHandler(
			taskRepo, groupRepo, profileRepo,
			services.NewUnifiedScheduler(logger), logger,
		)
		result, err := handler.Handle(cmd.Context(), commands.ScheduleTaskCommand{
			UserID: userID,
			TaskID: taskID,
			Mode:   mode,
			Now:    now,
		})
		if err != nil {
			return err
		}

		profile, _ := profileRepo.Get(cmd.Context(), userID)
		projector, err := domain.NewProjector(profile.Timezone)
		if err != nil {
			return err
		}
		loc := projector.Location()

		for _, line := range result.Feedback {
			fmt.Println(line)
		}
		fmt.Printf("\nSlot: %s - %s\n",
			formatInstant(result.Slot.Start, loc),
			result.Slot.End.In(loc).Format("15:04"))
		if len(result.ShuffledTasks) > 0 {
			fmt.Println("\nDisplaced tasks (persist these too):")
			for _, m := range result.ShuffledTasks {
				fmt.Printf("  %s  %s - %s\n", m.Title,
					formatInstant(m.NewSlot.Start, loc),
					m.NewSlot.End.In(loc).Format("15:04"))
			}
		}
		return nil
	},
}

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleTaskID, "task", "t", "", "task ID from the snapshot (required)")
	scheduleCmd.Flags().StringVarP(&scheduleMode, "mode", "m", "now", "scheduling mode: now|today|tomorrow|next-week|next-month|asap")
	scheduleCmd.Flags().StringVar(&scheduleAt, "at", "", "treat this RFC3339 instant as now (for dry runs)")
	_ = scheduleCmd.MarkFlagRequired("task")
	rootCmd.AddCommand(scheduleCmd)
}
