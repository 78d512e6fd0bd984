package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vite-backend",
	Short: "Backend integration for an esbuild asset pipeline",
	Long:  "Scaffolds and manages the frontend layout for backends using the esbuild integration plugin: entry points, public directory, hot file conventions.",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the frontend workspace",
	Long:  `This command scaffolds the public directory, an entry point, and the ignore rules for build output and the hot file`,
	Run: func(cmd *cobra.Command, args []string) {
		p := tea.NewProgram(initialModel())
		result, err := p.Run()
		if err != nil {
			fmt.Printf("Alas, there's been an error: %v\n", err)
			os.Exit(1)
		}
		m, ok := result.(model)
		if !ok || !m.done {
			return
		}
		if err := scaffold(m); err != nil {
			fmt.Printf("Failed to scaffold project: %v\n", err)
			os.Exit(1)
		}
	},
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize()

	rootCmd.AddCommand(initCmd)
}
