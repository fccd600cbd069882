// Command reversi-arena pits two difficulty tiers against each other.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/havfo/reversi/internal/advisor"
	"github.com/havfo/reversi/internal/arena"
)

func main() {
	var (
		black         = advisor.Hard
		white         = advisor.Normal
		games         = flag.Int("games", 100, "number of games to play")
		seed          = flag.Int64("seed", 0, "random seed (0 uses the clock)")
		randomOpening = flag.Int("random-opening", 0, "random plies before the tiers take over")
	)
	flag.TextVar(&black, "black", advisor.Hard, "tier playing Black: easy, normal or hard")
	flag.TextVar(&white, "white", advisor.Normal, "tier playing White: easy, normal or hard")
	flag.Parse()

	if *games <= 0 {
		log.Fatalf("-games must be positive, got %d", *games)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	var opts []arena.Option
	if *randomOpening > 0 {
		opts = append(opts, arena.WithRandomOpening(*randomOpening, rng))
	}
	a := arena.New(advisor.For(black, rng), advisor.For(white, rng), opts...)

	start := time.Now()
	summary := arena.Summarize(a.Play(*games))

	fmt.Printf("%s (black) vs %s (white), seed %d\n", black, white, *seed)
	fmt.Println(summary)
	log.Printf("played %d games in %v", *games, time.Since(start).Round(time.Millisecond))
}
