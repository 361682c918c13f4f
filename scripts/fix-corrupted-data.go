package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"

	forgeentities "github.com/KirkDiggler/rpg-raid/internal/entities/forge"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/inventory"
	forgeslots "github.com/KirkDiggler/rpg-raid/internal/repositories/forge_slots"
)

// badField is one hash field that breaks a repository invariant
type badField struct {
	key    string
	field  string
	reason string
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning inventories and forge slots...")

	var bad []badField
	checked := 0

	// inventory counts must be positive integers; zero counts are deleted on write
	n, found := scan(ctx, client, inventory.GetKey("*"), func(key, field, value string) string {
		count, err := strconv.Atoi(value)
		if err != nil {
			return "count is not an integer: " + value
		}
		if count <= 0 {
			return "count is not positive: " + value
		}
		return ""
	})
	checked += n
	bad = append(bad, found...)

	// forge slots hold one JSON job per slot index
	n, found = scan(ctx, client, forgeslots.GetKey("*"), func(key, field, value string) string {
		if _, err := strconv.Atoi(field); err != nil {
			return "slot index is not an integer"
		}
		var job forgeentities.Job
		if err := json.Unmarshal([]byte(value), &job); err != nil {
			return "job is not valid JSON"
		}
		if job.EquipmentID == "" || job.EnchantmentID == "" {
			return "job is missing its equipment or enchantment"
		}
		if job.EndTime.Before(job.StartTime) {
			return "job ends before it starts"
		}
		return ""
	})
	checked += n
	bad = append(bad, found...)

	fmt.Printf("\nChecked %d fields, found %d corrupted entries\n", checked, len(bad))

	if len(bad) == 0 {
		fmt.Println("No corrupted data found!")
		return
	}

	fmt.Println("\nCorrupted fields:")
	for _, b := range bad {
		fmt.Printf("  - %s[%s]: %s\n", b.key, b.field, b.reason)
	}

	// Ask for confirmation before deletion
	fmt.Print("\nDo you want to DELETE these corrupted entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response == "yes" {
		for _, b := range bad {
			if err := client.HDel(ctx, b.key, b.field).Err(); err != nil {
				fmt.Printf("Failed to delete %s[%s]: %v\n", b.key, b.field, err)
			} else {
				fmt.Printf("Deleted %s[%s]\n", b.key, b.field)
			}
		}
		fmt.Println("\nCleanup complete!")
	} else {
		fmt.Println("Aborted - no changes made")
	}
}

// scan checks every field of every hash matching pattern. check returns a
// reason for a bad field or an empty string.
func scan(ctx context.Context, client *redis.Client, pattern string, check func(key, field, value string) string) (int, []badField) {
	iter := client.Scan(ctx, 0, pattern, 0).Iterator()

	var bad []badField
	checked := 0

	for iter.Next(ctx) {
		key := iter.Val()

		fields, err := client.HGetAll(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		for field, value := range fields {
			checked++
			if reason := check(key, field, value); reason != "" {
				fmt.Printf("✗ %s[%s]: %s\n", key, field, reason)
				bad = append(bad, badField{key: key, field: field, reason: reason})
			}
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	return checked, bad
}
