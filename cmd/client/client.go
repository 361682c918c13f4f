// Package main provides a command-line client for the raid engine services
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/rpg-raid/internal/handlers/raid/v1alpha1"
)

var (
	serverAddr string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "rpg-raid-client",
	Short: "Raid engine client for testing services",
}

var raidCmd = &cobra.Command{
	Use:   "raid <method> [key=value...]",
	Short: "Call a RaidService method, e.g. raid StartRaid player_id=p1 boss_id=ashen-colossus",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(v1alpha1.RaidServiceName, args[0], args[1:])
	},
}

var forgeCmd = &cobra.Command{
	Use:   "forge <method> [key=value...]",
	Short: "Call a ForgeService method, e.g. forge ListSlots player_id=p1",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(v1alpha1.ForgeServiceName, args[0], args[1:])
	},
}

func call(service, method string, pairs []string) error {
	fields, err := parseFields(pairs)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	conn, err := grpc.NewClient(serverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("Failed to close connection: %v", err)
		}
	}()

	resp, err := v1alpha1.NewClient(conn).Call(ctx, service, method, fields)
	if err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}

	output, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	fmt.Println(string(output))
	return nil
}

// parseFields turns key=value arguments into request fields. Integer values
// are sent as numbers.
func parseFields(pairs []string) (map[string]any, error) {
	fields := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q is not key=value", pair)
		}
		if n, err := strconv.Atoi(value); err == nil {
			fields[key] = n
			continue
		}
		fields[key] = value
	}
	return fields, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")

	rootCmd.AddCommand(raidCmd)
	rootCmd.AddCommand(forgeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
