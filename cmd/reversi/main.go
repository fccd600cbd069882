// reversi plays Reversi in the terminal.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/havfo/reversi/internal/session"
	"github.com/havfo/reversi/internal/tui"
)

func main() {
	settings := session.DefaultSettings()
	session.BindFlags(flag.CommandLine, &settings)
	var (
		hints   = flag.Bool("hints", true, "highlight valid moves")
		logPath = flag.String("log", "", "write logs to this file")
	)
	flag.Parse()

	if err := settings.Validate(); err != nil {
		log.Fatalf("invalid settings: %v", err)
	}

	// the terminal belongs to tview, logs go to a file or nowhere
	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		out = f
	}
	logger := log.New(out, "", log.LstdFlags)

	s := session.New(settings, session.WithLogger(logger))
	if err := tui.New(s, *hints).Run(); err != nil {
		log.Fatalf("ui: %v", err)
	}
}
