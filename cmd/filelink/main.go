package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/filelinkbot/filelink/internal/version"
)

func main() {
	// Optional .env for local runs; deployed instances use real env vars.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "filelink",
		Short: "Telegram file-to-link relay",
		Long: "filelink receives Telegram webhook updates carrying file attachments and " +
			"answers each with a stable proxy link that redirects to the file.",
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the relay HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			runServe()
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.GetInfo())
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
