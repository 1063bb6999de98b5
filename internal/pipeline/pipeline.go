// Package pipeline replays an ordered list of operations from an empty
// buffer into a finished mesh.
package pipeline

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/terrain-constructor/internal/logger"
	"github.com/Faultbox/terrain-constructor/internal/mesh"
	"github.com/Faultbox/terrain-constructor/internal/operation"
	"github.com/Faultbox/terrain-constructor/internal/rng"
)

var (
	ErrStageOutOfRange = errors.New("stage out of range")
	ErrEmptyPipeline   = errors.New("pipeline has no operations")
)

// FreshSeed is the seed value that asks a run to draw a new seed.
const FreshSeed int64 = -1

// Stage is one operation of a pipeline with the time its last run took.
type Stage struct {
	Op      operation.Operation
	Elapsed time.Duration
}

// Result is the outcome of one run.
type Result struct {
	Mesh    *mesh.Mesh
	Seed    uint64
	Normals time.Duration
}

// Run executes stages[0..last] in order and computes normals once over the
// final buffer. A negative seed draws a fresh one; the seed actually used
// is returned in the result. Elapsed is recorded on every executed stage
// and reset to zero on the stages after last.
//
// last is clamped to the slice. Run never fails: numeric degeneracies show
// up as non-finite vertex data.
func Run(stages []Stage, seed int64, last int) Result {
	log := logger.Named("pipeline")

	used := uint64(seed)
	if seed < 0 {
		used = rng.FreshSeed()
	}
	src := rng.New(used)

	if last >= len(stages) {
		last = len(stages) - 1
	}

	var buf mesh.Buffer
	for i := 0; i <= last; i++ {
		start := time.Now()
		buf = stages[i].Op.Execute(buf, src)
		stages[i].Elapsed = time.Since(start)

		log.Debug("stage done",
			zap.Int("stage", i),
			zap.String("op", stages[i].Op.Kind().String()),
			zap.Duration("elapsed", stages[i].Elapsed),
			zap.Int("vertices", len(buf.Vertices)),
			zap.Int("triangles", buf.TriangleCount()))
	}
	for i := last + 1; i < len(stages); i++ {
		stages[i].Elapsed = 0
	}

	start := time.Now()
	buf = mesh.CalculateNormals(buf)
	normals := time.Since(start)

	log.Info("mesh built",
		zap.Uint64("seed", used),
		zap.Int("stages", last+1),
		zap.Duration("normals", normals))

	return Result{Mesh: mesh.New(buf), Seed: used, Normals: normals}
}
