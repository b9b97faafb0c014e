package metrics

import (
	"sync/atomic"
	"time"

	"gridgames/game"
)

type SearchMetric struct {
	Algorithm      string
	MaxDepth       int
	Duration       time.Duration
	Nodes          int
	Evaluations    int
	EvaluationTime time.Duration
	Prunes         int
	Cancelled      bool
	// PieceValues is the average root value of the moves of each piece type that moved.
	PieceValues map[game.PieceType]float64
}

type MoveMetric struct {
	Step   int
	Player game.PlayerNum
	Move   string
	Value  int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.PlayerNum
	Winner         game.PlayerNum
	State          game.State
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(algorithm string, maxDepth int)
	AddNode()
	AddEvaluation(elapsed time.Duration)
	AddPrune()
	AddPieceValue(t game.PieceType, value int)
	SetCancelled()
	Complete() SearchMetric
}

type collector struct {
	algorithm      string
	maxDepth       int
	startTime      time.Time
	nodes          atomic.Int64
	evaluations    atomic.Int64
	evaluationTime atomic.Int64
	prunes         atomic.Int64
	cancelled      atomic.Bool
	pieceSums      [game.NumPieceTypes]atomic.Int64
	pieceCounts    [game.NumPieceTypes]atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(algorithm string, maxDepth int) {
	m.startTime = time.Now()
	m.algorithm = algorithm
	m.maxDepth = maxDepth
	m.nodes.Store(0)
	m.evaluations.Store(0)
	m.evaluationTime.Store(0)
	m.prunes.Store(0)
	m.cancelled.Store(false)
	for i := range m.pieceSums {
		m.pieceSums[i].Store(0)
		m.pieceCounts[i].Store(0)
	}
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddEvaluation(elapsed time.Duration) {
	m.evaluations.Add(1)
	m.evaluationTime.Add(int64(elapsed))
}

func (m *collector) AddPrune() {
	m.prunes.Add(1)
}

func (m *collector) AddPieceValue(t game.PieceType, value int) {
	m.pieceSums[t].Add(int64(value))
	m.pieceCounts[t].Add(1)
}

func (m *collector) SetCancelled() {
	m.cancelled.Store(true)
}

func (m *collector) Complete() SearchMetric {
	values := make(map[game.PieceType]float64)
	for i := range m.pieceCounts {
		if n := m.pieceCounts[i].Load(); n > 0 {
			values[game.PieceType(i)] = float64(m.pieceSums[i].Load()) / float64(n)
		}
	}
	return SearchMetric{
		Algorithm:      m.algorithm,
		MaxDepth:       m.maxDepth,
		Duration:       time.Since(m.startTime),
		Nodes:          int(m.nodes.Load()),
		Evaluations:    int(m.evaluations.Load()),
		EvaluationTime: time.Duration(m.evaluationTime.Load()),
		Prunes:         int(m.prunes.Load()),
		Cancelled:      m.cancelled.Load(),
		PieceValues:    values,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string, maxDepth int)      {}
func (m *dummyCollector) AddNode()                                  {}
func (m *dummyCollector) AddEvaluation(elapsed time.Duration)       {}
func (m *dummyCollector) AddPrune()                                 {}
func (m *dummyCollector) AddPieceValue(t game.PieceType, value int) {}
func (m *dummyCollector) SetCancelled()                             {}
func (m *dummyCollector) Complete() SearchMetric                    { return SearchMetric{} }
