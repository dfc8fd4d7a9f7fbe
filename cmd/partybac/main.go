package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "partybac",
		Short:        "Party blood alcohol tracker",
		SilenceUsage: true,
	}

	var envFile string
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")

	root.AddCommand(
		newServeCmd(&envFile),
		newPartiesCmd(&envFile),
		newResetCmd(&envFile),
		newHashPasswordCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
