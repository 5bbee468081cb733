package utils

import (
	"fmt"
	"time"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	ActiveCells          int
	Density              float64 // percentage of living cells
	BoundingBoxSize      int
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one generation of size cells holding population live cells,
// computed in duration.
func (s *Stats) Update(generation, population, size int, duration time.Duration) {
	s.TotalGenerations = generation
	s.ActiveCells = population
	if size > 0 {
		s.Density = float64(population) / float64(size) * 100
	}
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Summary describes the whole run so far
func (s *Stats) Summary() string {
	return fmt.Sprintf("%d generations in %.1fs | %.1f gen/sec | Avg Pop: %.1f",
		s.TotalGenerations, time.Since(s.StartTime).Seconds(), s.GenerationsPerSecond, s.AveragePopulation)
}
