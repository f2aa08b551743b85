package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/sundial-app/sundial/internal/scheduling/application/services"
	"github.com/sundial-app/sundial/internal/scheduling/domain"
)

var (
	availTaskID string
	availDays   int
	availAt     string
)

var availableCmd = &cobra.Command{
	Use:   "available",
	Short: "Find the nearest free slot for a task",
	Long: `Find the nearest free slot for a task without dependency handling or
shuffling - the conservative search used for continuations.

Examples:
  sundial available --task 7c9e...
  sundial available --task 7c9e... --days 3`,
	Aliases: []string{"nearest", "free"},
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, taskRepo, _, profileRepo, err := loadSnapshot(snapshotFile)
		if err != nil {
			return err
		}

		taskID, err := parseTaskID(availTaskID)
		if err != nil {
			return err
		}

		start := time.Now()
		if availAt != "" {
			start, err = time.Parse(time.RFC3339, availAt)
			if err != nil {
				return fmt.Errorf("invalid --at, want RFC3339: %w", err)
			}
		}

		ctx := cmd.Context()
		task, err := taskRepo.Get(ctx, taskID)
		if err != nil {
			return err
		}
		all, err := taskRepo.ListActive(ctx, userID)
		if err != nil {
			return err
		}
		profile, err := profileRepo.Get(ctx, userID)
		if err != nil {
			return err
		}

		slot, err := services.FindNearestSlot(task, all, start, profile.AwakeHours, availDays, profile.Timezone)
		if err != nil {
			return err
		}

		projector, err := domain.NewProjector(profile.Timezone)
		if err != nil {
			return err
		}
		loc := projector.Location()
		fmt.Printf("Nearest slot for %q: %s - %s\n", task.Title,
			formatInstant(slot.Start, loc),
			slot.End.In(loc).Format("15:04"))
		return nil
	},
}

func init() {
	availableCmd.Flags().StringVarP(&availTaskID, "task", "t", "", "task ID from the snapshot (required)")
	availableCmd.Flags().IntVarP(&availDays, "days", "d", services.DefaultNearestSlotDays, "how many days forward to search")
	availableCmd.Flags().StringVar(&availAt, "at", "", "treat this RFC3339 instant as the search start")
	_ = availableCmd.MarkFlagRequired("task")
	rootCmd.AddCommand(availableCmd)
}

func parseTaskID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid task ID %q: %w", s, err)
	}
	return id, nil
}
