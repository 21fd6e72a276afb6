package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A local .env can hold AUTODES_* settings; absence is fine.
	_ = godotenv.Load()

	// Initialize styled help after all commands are registered
	initHelp(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		outputError(os.Stderr, err)
		os.Exit(1)
	}
}
