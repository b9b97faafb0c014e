package main

import (
	"flag"
	"os"
	"time"

	"gridgames/config"
	"gridgames/experiments"
	"gridgames/rules"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	path := flag.String("config", "", "YAML match config")
	variant := flag.String("variant", "", "variant to play, one of the registered names")
	games := flag.Int("games", 0, "number of games in the match")
	out := flag.String("out", "", "directory for the match records")
	verbose := flag.Bool("v", false, "log every move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	m, err := config.Load(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load match config")
	}
	if *variant != "" {
		m.Variant = *variant
	}
	if *games > 0 {
		m.Games = *games
	}
	if *out != "" {
		m.Out = *out
	}
	if err := m.Validate(); err != nil {
		log.Fatal().Err(err).Strs("variants", rules.Names()).Msg("invalid match")
	}

	summary, err := experiments.RunMatch(m, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("match failed")
	}
	log.Info().
		Str("dir", summary.Dir).
		Int("near", summary.NearWins).
		Int("far", summary.FarWins).
		Int("draws", summary.Draws).
		Msg("match finished")
}
