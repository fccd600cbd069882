package main

import (
	"flag"
	"log"

	"github.com/havfo/reversi/internal/gui"
	"github.com/havfo/reversi/internal/session"
)

func main() {
	settings := session.DefaultSettings()
	session.BindFlags(flag.CommandLine, &settings)
	var (
		scale = flag.Float64("scale", 1, "window scale factor")
		hints = flag.Bool("hints", true, "mark valid moves")
	)
	flag.Parse()

	if err := settings.Validate(); err != nil {
		log.Fatalf("invalid settings: %v", err)
	}

	log.Printf("Reversi started: mode=%s difficulty=%s computer=%s", settings.Mode, settings.Difficulty, settings.ComputerColor)

	s := session.New(settings, session.WithLogger(log.Default()))
	s.Initialize()

	if err := gui.Run(gui.NewGameLoop(s, *hints), *scale); err != nil {
		log.Fatal(err)
	}
}
