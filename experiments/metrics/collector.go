package metrics

import (
	"sync/atomic"
	"time"
)

// AgentConfig identifies one search configuration under comparison.
type AgentConfig struct {
	ID          int
	Simulations int
	Exploration float64
	Evaluator   string
}

// SearchMetric summarizes one search invocation.
type SearchMetric struct {
	Budget      int
	Exploration float64
	Duration    time.Duration
	Simulations int
	Aborted     int // simulations dropped because of malformed evaluator output
}

// MoveMetric ties a search metric to its place in a game.
type MoveMetric struct {
	Step   int
	Player string
	SearchMetric
}

// GameMetric summarizes one finished game.
type GameMetric struct {
	StartingPlayer string
	Winner         string
	Status         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector gathers search statistics during a search invocation.
type Collector interface {
	Start(budget int, exploration float64)
	AddSimulation()
	AddAborted()
	Complete() SearchMetric
}

type collector struct {
	budget      int
	exploration float64
	startTime   time.Time
	simulations atomic.Int32
	aborted     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(budget int, exploration float64) {
	c.startTime = time.Now()
	c.budget = budget
	c.exploration = exploration
	c.simulations.Store(0)
	c.aborted.Store(0)
}

func (c *collector) AddSimulation() {
	c.simulations.Add(1)
}

func (c *collector) AddAborted() {
	c.aborted.Add(1)
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Budget:      c.budget,
		Exploration: c.exploration,
		Duration:    time.Since(c.startTime),
		Simulations: int(c.simulations.Load()),
		Aborted:     int(c.aborted.Load()),
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a no-op collector for searches that do not
// record metrics.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (d *dummyCollector) Start(budget int, exploration float64) {}
func (d *dummyCollector) AddSimulation()                        {}
func (d *dummyCollector) AddAborted()                           {}
func (d *dummyCollector) Complete() SearchMetric                { return SearchMetric{} }
