package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/sundial-app/sundial/pkg/config"
)

var (
	snapshotFile string
	verbose      bool
	logger       *slog.Logger
	cfg          *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sundial",
	Short: "Sundial - personal scheduling engine",
	Long: `Sundial finds time for your tasks: it searches your awake hours for a
slot that fits, respects dependencies and due dates, and in asap mode can
shuffle lower-priority tasks forward to make room.

It works on a task snapshot file; persisting results is up to you.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Debug("command start", "command", cmd.CommandPath())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&snapshotFile, "snapshot", "s", "sundial.json", "task snapshot file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// SetConfig supplies the scheduling defaults applied when a snapshot leaves
// timezone or awake hours unset.
func SetConfig(c *config.Config) {
	cfg = c
}

func formatInstant(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Mon Jan 2 15:04")
}
