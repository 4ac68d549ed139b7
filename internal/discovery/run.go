package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/unilab-kr/boardmap/internal/logger"
	"github.com/unilab-kr/boardmap/internal/models"
	"github.com/unilab-kr/boardmap/internal/worker"
)

// Result is the outcome of one discovery run: the seed tree augmented
// with each department's boards, plus the flat review ledger.
type Result struct {
	RunID      string                `json:"run_id"`
	Campuses   []models.Campus       `json:"campuses"`
	Review     []models.ReviewRecord `json:"review"`
	BoardCount int                   `json:"board_count"`
	Duration   time.Duration         `json:"duration"`
}

// Runner fans department discovery out over a worker pool and collects
// the run result.
type Runner struct {
	discoverer *Discoverer
	ledger     *Ledger
	poolConfig worker.Config
	logger     logger.Interface
}

// NewRunner creates a Runner sharing the given discoverer and ledger.
func NewRunner(discoverer *Discoverer, ledger *Ledger, poolConfig worker.Config, log logger.Interface) *Runner {
	return &Runner{
		discoverer: discoverer,
		ledger:     ledger,
		poolConfig: poolConfig,
		logger:     log.WithComponent("run"),
	}
}

// Run discovers boards for every department in the campus tree. The tree
// is mutated in place: each department's Boards field is filled with what
// was discovered for it. Individual department failures land in the
// ledger and never abort the run.
func (r *Runner) Run(ctx context.Context, campuses []models.Campus) (*Result, error) {
	runID := uuid.NewString()
	start := time.Now()
	log := r.logger.With("run_id", runID)

	handler := func(ctx context.Context, job *worker.Job) error {
		job.Department.Boards = r.discoverer.DiscoverBoards(ctx, job.Campus, *job.Department)
		return nil
	}

	pool, err := worker.NewPool(r.poolConfig, handler, r.logger)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	if err := pool.Start(); err != nil {
		return nil, fmt.Errorf("start worker pool: %w", err)
	}

	submitted := 0
	for ci := range campuses {
		campus := &campuses[ci]
		for gi := range campus.Colleges {
			college := &campus.Colleges[gi]
			for di := range college.Departments {
				dept := &college.Departments[di]
				job := &worker.Job{
					ID:         fmt.Sprintf("%s/%s", campus.Campus, dept.Name),
					Campus:     campus.Campus,
					College:    college.Name,
					Department: dept,
				}
				if err := pool.Submit(ctx, job); err != nil {
					log.Warn("job submission failed", "job_id", job.ID, "error", err)
					continue
				}
				submitted++
			}
		}
	}

	pool.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), r.poolConfig.DrainTimeout)
	defer cancel()
	if err := pool.Stop(stopCtx); err != nil {
		log.Warn("pool stop", "error", err)
	}

	boardCount := 0
	for _, campus := range campuses {
		for _, college := range campus.Colleges {
			for _, dept := range college.Departments {
				boardCount += len(dept.Boards)
			}
		}
	}

	result := &Result{
		RunID:      runID,
		Campuses:   campuses,
		Review:     r.ledger.Records(),
		BoardCount: boardCount,
		Duration:   time.Since(start),
	}

	log.Info("discovery run finished",
		"departments", submitted,
		"boards", boardCount,
		"review", len(result.Review),
		"duration", result.Duration,
	)
	return result, nil
}
