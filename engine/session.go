package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/lixenwraith/term-snake/core"
)

// SpeedRule is the linear speed-up schedule
type SpeedRule struct {
	Base  time.Duration // starting tick interval
	Step  time.Duration // reduction applied at each milestone
	Floor time.Duration // interval never drops below this
	Every int           // milestone spacing in points
}

// DefaultSpeedRule starts at 100ms and speeds up by 10ms every 5 points down to 50ms
func DefaultSpeedRule() SpeedRule {
	return SpeedRule{
		Base:  100 * time.Millisecond,
		Step:  10 * time.Millisecond,
		Floor: 50 * time.Millisecond,
		Every: 5,
	}
}

// Next returns the interval after reaching score, given the current interval
func (r SpeedRule) Next(score int, current time.Duration) time.Duration {
	if r.Every <= 0 || score == 0 || score%r.Every != 0 || current <= r.Floor {
		return current
	}
	return max(current-r.Step, r.Floor)
}

// Session is the mutable state of one game, owned by the controller
type Session struct {
	ID        uuid.UUID
	Score     int
	Interval  time.Duration
	Direction core.Direction
	Ticks     int       // completed moves
	Started   time.Time // clock reading at Reset

	rule SpeedRule
}

// NewSession creates a fresh session heading right at the base interval
func NewSession(rule SpeedRule) *Session {
	return &Session{
		ID:        uuid.New(),
		Interval:  rule.Base,
		Direction: core.DirRight,
		rule:      rule,
	}
}

// Steer changes direction unless dir reverses the current heading
// Returns false for rejected reversals
func (s *Session) Steer(dir core.Direction) bool {
	if dir == s.Direction.Opposite() {
		return false
	}
	s.Direction = dir
	return true
}

// RecordFood adds a point and applies the speed-up rule
// Returns true when the interval changed
func (s *Session) RecordFood() bool {
	s.Score++
	next := s.rule.Next(s.Score, s.Interval)
	changed := next != s.Interval
	s.Interval = next
	return changed
}
