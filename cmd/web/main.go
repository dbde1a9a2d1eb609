package main

import (
	"log"

	"github.com/spf13/cobra"
)

// rootCmd serves the API when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "web [command] [flags]",
	Short: "Hedd.it backend",
	RunE:  serve,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
