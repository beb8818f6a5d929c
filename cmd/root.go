package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "assessment-console",
	Short:         "Manage tests, questions and results on the assessment platform",
	Long:          "assessment-console talks to the assessment platform API: it logs in, lists and deletes tests, bulk-imports questions from CSV, and renders candidate results and assessment analytics.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("env-file", "", "Extra .env file to load after ./.env")
	rootCmd.PersistentFlags().String("api-url", "", "Platform API base URL (overrides API_URL)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log requests to stderr")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(testsCmd)
	rootCmd.AddCommand(assessmentsCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(serveCmd)
}
