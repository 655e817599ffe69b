package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "collections-agent",
		Short: "Collections chat service",
		Long: `collections-agent relays borrower conversations to a generative AI provider
and reports every reply over WhatsApp and email.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(lambdaCmd())
	rootCmd.AddCommand(borrowersCmd())
	rootCmd.AddCommand(chatCmd())

	// Lambda invokes the binary without arguments.
	if len(os.Args) == 1 && os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		rootCmd.SetArgs([]string{"lambda"})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
