// Package main is the entry point for the raid engine
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-raid",
	Short: "Raid combat and progression engine",
	Long:  `rpg-raid runs boss raids, enchantment procs and the forge, either as a gRPC server or as a scripted simulation.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(simulateCmd)
}
