package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"timetableweaver/internal/engine"
	"timetableweaver/pkg/model"
)

type generateRequest struct {
	Config  map[string]any  `json:"config" binding:"required"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Seed        uint64 `json:"seed"`
	MaxIters    int    `json:"max_iters" binding:"omitempty,min=1"`
	MaxStagnant int    `json:"max_stagnant" binding:"omitempty,min=1"`
	Backend     string `json:"backend" binding:"omitempty,oneof=anneal greedy"`
}

type proposalResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name,omitempty"`
	Schedule      map[string][][]*cell `json:"schedule"`
	Metrics       metricsResponse      `json:"metrics"`
	IterationsRun int                  `json:"iterations_run"`
	SeedUsed      uint64               `json:"seed_used"`
	Feasible      bool                 `json:"feasible"`
}

type metricsResponse struct {
	TeacherConflicts int     `json:"teacher_conflicts"`
	Unscheduled      int     `json:"unscheduled_periods"`
	Adjacency        float64 `json:"adjacency_penalty"`
	FreeFirstPeriods int     `json:"free_first_periods"`
	Fitness          float64 `json:"fitness"`
}

type cell struct {
	Subject string `json:"subject"`
	Teacher string `json:"teacher"`
}

type server struct {
	logger   *zap.Logger
	store    *proposalStore
	defaults engine.Options
}

func (s *server) handleGenerate(c *gin.Context) {
	var request generateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input model.ConfigInput
	if err := mapstructure.Decode(request.Config, &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg, err := input.ToConfig()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	backend := request.Options.Backend
	if backend == "" {
		backend = "anneal"
	}
	var generator engine.Generator
	if backend == "greedy" {
		generator = engine.NewGreedyGenerator()
	} else {
		generator = engine.NewAnnealingGenerator()
	}

	opts := s.defaults
	opts.Logger = s.logger
	if request.Options.Seed != 0 {
		opts.Seed = request.Options.Seed
	}
	if request.Options.MaxIters != 0 {
		opts.MaxIters = request.Options.MaxIters
	}
	if request.Options.MaxStagnant != 0 {
		opts.MaxStagnant = request.Options.MaxStagnant
	}

	start := time.Now()
	result, err := generator.Generate(cfg, opts)
	duration := time.Since(start)

	switch {
	case err == nil, errors.Is(err, engine.ErrNoFeasibleSolution), errors.Is(err, engine.ErrEmptyInput):
	default:
		observeGeneration(backend, "invalid", duration)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	feasible := result.Metrics.TeacherConflicts == 0 && result.Metrics.Unscheduled == 0
	outcome := "feasible"
	if !feasible {
		outcome = "infeasible"
	}
	observeGeneration(backend, outcome, duration)

	proposal := proposalResponse{
		Name:     cfg.Name,
		Schedule: renderSchedule(cfg, result.Schedule),
		Metrics: metricsResponse{
			TeacherConflicts: result.Metrics.TeacherConflicts,
			Unscheduled:      result.Metrics.Unscheduled,
			Adjacency:        result.Metrics.Adjacency,
			FreeFirstPeriods: result.Metrics.FreeFirstPeriods,
			Fitness:          result.Metrics.Fitness(),
		},
		IterationsRun: result.IterationsRun,
		SeedUsed:      result.SeedUsed,
		Feasible:      feasible,
	}
	proposal.ID = s.store.Put(proposal)

	s.logger.Info("schedule generated",
		zap.String("proposal_id", proposal.ID),
		zap.String("backend", backend),
		zap.Bool("feasible", feasible),
		zap.Int("conflicts", result.Metrics.TeacherConflicts),
		zap.Duration("duration", duration),
	)
	c.JSON(http.StatusOK, proposal)
}

func (s *server) handleGetProposal(c *gin.Context) {
	proposal, found := s.store.Get(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "proposal not found or expired"})
		return
	}
	c.JSON(http.StatusOK, proposal)
}

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func renderSchedule(cfg model.Config, schedule *model.Schedule) map[string][][]*cell {
	rendered := make(map[string][][]*cell, len(cfg.Classes))
	for classIdx, class := range cfg.Classes {
		if classIdx >= schedule.Classes() {
			break
		}
		grid := make([][]*cell, schedule.Days)
		for day := range grid {
			row := make([]*cell, schedule.Periods)
			for period := range row {
				lessonIdx := schedule.At(classIdx, day, period)
				if lessonIdx == model.EmptyCell {
					continue
				}
				lesson := class.Lessons[lessonIdx]
				row[period] = &cell{Subject: lesson.Subject, Teacher: lesson.Teacher}
			}
			grid[day] = row
		}
		rendered[class.Name] = grid
	}
	return rendered
}
