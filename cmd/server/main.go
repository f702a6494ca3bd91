// path: cmd/server/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"blokus_poc/internal/game"
	"blokus_poc/internal/httpx"
	"blokus_poc/internal/shared"
)

func main() {
	// Flags (env fallbacks).
	addr := flag.String("addr", getenv("BLOKUS_ADDR", ":8080"), "listen address")
	players := flag.Int("players", getenvInt("BLOKUS_PLAYERS", 2), "number of players (1-4)")
	size := flag.Int("size", getenvInt("BLOKUS_SIZE", 14), "board side length (>= 5)")
	starts := flag.String("start-positions", getenv("BLOKUS_START_POSITIONS", ""),
		`semicolon-separated "row,col" start positions (default: the board corners)`)
	flag.Parse()

	positions, err := parseStartPositions(*starts, *size)
	fatalIf(err, "start positions")

	eng, err := game.NewGame(*players, *size, positions)
	fatalIf(err, "new game")

	log.Printf("Blokus engine ready: %d players, %dx%d board, starts %v", *players, *size, *size, positions)
	srv := httpx.NewServer(eng)
	if err := srv.Listen(*addr); err != nil {
		log.Fatal(err)
	}
}

// parseStartPositions reads a "r,c;r,c;..." list. An empty list selects
// the four board corners, which covers any legal player count.
func parseStartPositions(s string, size int) ([]shared.Point, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []shared.Point{
			{Row: 0, Col: 0},
			{Row: 0, Col: size - 1},
			{Row: size - 1, Col: 0},
			{Row: size - 1, Col: size - 1},
		}, nil
	}
	parts := strings.Split(s, ";")
	out := make([]shared.Point, 0, len(parts))
	for _, part := range parts {
		pt, ok := shared.ParsePoint(part)
		if !ok {
			return nil, fmt.Errorf("invalid start position %q", part)
		}
		out = append(out, pt)
	}
	return out, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func fatalIf(err error, label string) {
	if err != nil {
		log.Fatalf("%s: %v", label, err)
	}
}
