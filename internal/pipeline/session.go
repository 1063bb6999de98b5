package pipeline

import (
	"fmt"
	"time"

	"github.com/Faultbox/terrain-constructor/internal/mesh"
	"github.com/Faultbox/terrain-constructor/internal/operation"
)

// Session is an editable pipeline together with its seed state and the
// last mesh it produced. A Session is not safe for concurrent use.
type Session struct {
	stages   []Stage
	seed     int64
	lastSeed int64

	mesh    *mesh.Mesh
	normals time.Duration
}

// NewSession returns a session over ops that draws a fresh seed per build.
func NewSession(ops ...operation.Operation) *Session {
	s := &Session{seed: FreshSeed, lastSeed: FreshSeed}
	for _, op := range ops {
		s.Add(op)
	}
	return s
}

// Stages returns a copy of the stages with their recorded times.
func (s *Session) Stages() []Stage {
	out := make([]Stage, len(s.stages))
	copy(out, s.stages)
	return out
}

// Len returns the number of stages.
func (s *Session) Len() int { return len(s.stages) }

// Add appends op as a new stage.
func (s *Session) Add(op operation.Operation) {
	s.stages = append(s.stages, Stage{Op: op})
}

// Remove deletes stage i.
func (s *Session) Remove(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.stages = append(s.stages[:i], s.stages[i+1:]...)
	return nil
}

// MoveUp swaps stage i with the one before it. Moving the first stage up
// does nothing.
func (s *Session) MoveUp(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	if i > 0 {
		s.stages[i-1], s.stages[i] = s.stages[i], s.stages[i-1]
	}
	return nil
}

// MoveDown swaps stage i with the one after it. Moving the last stage down
// does nothing.
func (s *Session) MoveDown(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	if i+1 < len(s.stages) {
		s.stages[i], s.stages[i+1] = s.stages[i+1], s.stages[i]
	}
	return nil
}

// Set replaces the operation of stage i and clears its recorded time.
func (s *Session) Set(i int, op operation.Operation) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.stages[i] = Stage{Op: op}
	return nil
}

func (s *Session) check(i int) error {
	if i < 0 || i >= len(s.stages) {
		return fmt.Errorf("%w: %d of %d", ErrStageOutOfRange, i, len(s.stages))
	}
	return nil
}

// Seed returns the seed the next build uses; FreshSeed means a new one is
// drawn.
func (s *Session) Seed() int64 { return s.seed }

// SetSeed fixes the seed of later builds. Any negative value means fresh.
func (s *Session) SetSeed(seed int64) {
	if seed < 0 {
		seed = FreshSeed
	}
	s.seed = seed
}

// LastSeed returns the seed of the last build, or FreshSeed before the
// first one.
func (s *Session) LastSeed() int64 { return s.lastSeed }

// Retrieve pins the seed of the last build so the next build repeats it.
func (s *Session) Retrieve() { s.seed = s.lastSeed }

// ResetSeed goes back to drawing a fresh seed per build.
func (s *Session) ResetSeed() { s.seed = FreshSeed }

// Build runs the whole pipeline.
func (s *Session) Build() error {
	return s.BuildUpTo(len(s.stages) - 1)
}

// BuildUpTo runs stages 0 through i and replaces the current mesh. The
// recorded times of the stages after i are reset.
func (s *Session) BuildUpTo(i int) error {
	if len(s.stages) == 0 {
		return ErrEmptyPipeline
	}
	if err := s.check(i); err != nil {
		return err
	}

	res := Run(s.stages, s.seed, i)
	s.lastSeed = int64(res.Seed)
	s.mesh = res.Mesh
	s.normals = res.Normals
	return nil
}

// Mesh returns the mesh of the last build, or nil before the first one.
func (s *Session) Mesh() *mesh.Mesh { return s.mesh }

// NormalsTime returns how long the last normal pass took.
func (s *Session) NormalsTime() time.Duration { return s.normals }
