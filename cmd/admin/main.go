package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"peerlink/backend/internal/chathub"
	"peerlink/backend/internal/config"
	"peerlink/backend/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	command := os.Args[1]

	switch command {
	case "stats":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin stats <base_url>")
			os.Exit(1)
		}
		stats, err := fetchStats(ctx, http.DefaultClient, os.Args[2])
		if err != nil {
			log.Fatalf("Error fetching stats: %v", err)
		}
		fmt.Printf("online: %d\nwaiting: %d\nrooms: %d\n", stats.Online, stats.Waiting, stats.Rooms)
	case "presence":
		cfg := config.Load()
		if cfg.RedisAddr == "" {
			fmt.Println("REDIS_ADDR is not set.")
			os.Exit(1)
		}
		rdb := storage.NewRedisClient(cfg)
		defer rdb.Close()
		count, err := storage.NewStorageService(rdb).OnlineCount(ctx)
		if err != nil {
			log.Fatalf("Error reading presence: %v", err)
		}
		fmt.Printf("online (mirrored): %d\n", count)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func fetchStats(ctx context.Context, client *http.Client, baseURL string) (chathub.Stats, error) {
	var stats chathub.Stats

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/stats", nil)
	if err != nil {
		return stats, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return stats, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return stats, fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return stats, fmt.Errorf("decoding stats: %w", err)
	}
	return stats, nil
}
