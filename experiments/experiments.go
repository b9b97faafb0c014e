package experiments

import (
	"fmt"

	"gridgames/config"
	"gridgames/engine"
	"gridgames/experiments/metrics"
	"gridgames/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Summary tallies the games of a match.
type Summary struct {
	MatchID    string
	Dir        string // where the records were written, empty if they were not
	NearWins   int
	FarWins    int
	Draws      int
	Unfinished int
}

// RunMatch plays m.Games games between the players m describes. The rules decide
// who starts each game. Game and move records are written as CSV under m.Out
// unless it is empty.
func RunMatch(m config.Match, logger zerolog.Logger) (Summary, error) {
	rules, err := m.Rules()
	if err != nil {
		return Summary{}, err
	}
	near, err := m.Near.NewPlayer(logger)
	if err != nil {
		return Summary{}, err
	}
	far, err := m.Far.NewPlayer(logger)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{MatchID: uuid.NewString()}
	g := game.New(rules, game.WithLogger(logger))
	e := engine.NewLocalEngine(g, near, far, engine.WithBudget(m.Budget), engine.WithLogger(logger))

	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	logger.Info().Msgf("starting %s match %s: %s vs %s, %d games...", m.Variant, summary.MatchID, m.Near, m.Far, m.Games)

	for i := 0; i < m.Games; i++ {
		if i > 0 {
			e.NewGame()
		}
		logger.Info().Msgf("starting game %d of %d...", i+1, m.Games)

		gameMetric, moveMetrics, err := e.Run(m.MaxMoves)
		if err != nil {
			return summary, fmt.Errorf("game %d: %w", i+1, err)
		}
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i + 1,
			MatchID:    summary.MatchID,
			Variant:    m.Variant,
			Near:       m.Near.String(),
			Far:        m.Far.String(),
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       i + 1,
				MoveMetric: mm,
			})
		}

		switch gameMetric.State {
		case game.NearWins:
			summary.NearWins++
		case game.FarWins:
			summary.FarWins++
		case game.Draw:
			summary.Draws++
		default:
			summary.Unfinished++
		}
		logger.Info().Msgf("completed game %d of %d: %s after %d moves", i+1, m.Games, gameMetric.State, gameMetric.TotalMoves)
	}

	logger.Info().Msgf("completed match %s: near %d, far %d, draws %d, unfinished %d",
		summary.MatchID, summary.NearWins, summary.FarWins, summary.Draws, summary.Unfinished)

	if m.Out == "" {
		return summary, nil
	}
	writer, err := metrics.NewWriter(m.Out, summary.MatchID)
	if err != nil {
		return summary, fmt.Errorf("failed to create match writer: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, fmt.Errorf("failed to write game records: %w", err)
	}
	logger.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, fmt.Errorf("failed to write move records: %w", err)
	}
	logger.Info().Msg("stored move records")
	summary.Dir = writer.Dir()
	return summary, nil
}
