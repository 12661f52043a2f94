package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "Boards, lists and tasks with assignment notifications",
	Long: `taskflow serves the task board API: boards hold ordered lists, lists hold
tasks, and members are notified when tasks are assigned, completed or overdue.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initDBCmd)
}
