package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stressless/internal/ui"
)

const Version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "sl",
	Short:         "StressLess: study calmer, level up",
	Long:          "StressLess is a local-first wellness companion for students: tasks, check-ins, breathing exercises and relaxation games that earn XP and calm points.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.stressless/config.yaml)")

	rootCmd.AddCommand(
		newStatusCmd(),
		newBoardCmd(),
		newProfileCmd(),
		newTaskCmd(),
		newCheckInCmd(),
		newNoteCmd(),
		newJournalCmd(),
		newChatCmd(),
		newAssessCmd(),
		newBreatheCmd(),
		newMusicCmd(),
		newGardenCmd(),
		newSoundCmd(),
		newHistoryCmd(),
		newPlansCmd(),
		newSubscribeCmd(),
		newSyncCmd(),
		newRemindCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
