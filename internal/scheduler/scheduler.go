// Package scheduler runs the periodic background jobs: expiring budget
// windows and surfacing goal and budget alerts in the log.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"paisa/internal/logger"
	"paisa/internal/services"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	cron    *cron.Cron
	budgets services.BudgetServicer
	goals   services.GoalServicer
}

// New creates a Scheduler over the given services.
func New(budgets services.BudgetServicer, goals services.GoalServicer) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		budgets: budgets,
		goals:   goals,
	}
}

// Register wires the sweep and alert jobs to their cron expressions.
func (s *Scheduler) Register(sweepCron, alertCron string) error {
	if _, err := s.cron.AddFunc(sweepCron, s.sweepBudgets); err != nil {
		return fmt.Errorf("register budget sweep: %w", err)
	}
	if _, err := s.cron.AddFunc(alertCron, s.checkAlerts); err != nil {
		return fmt.Errorf("register alert check: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Get().Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	logger.Get().Info("scheduler stopped")
}

func (s *Scheduler) sweepBudgets() {
	flipped, err := s.budgets.SweepExpired()
	if err != nil {
		logger.Get().Errorw("budget sweep failed", "error", err)
		return
	}
	if flipped > 0 {
		logger.Get().Infow("expired budgets swept", "count", flipped)
	}
}

func (s *Scheduler) checkAlerts() {
	budgetAlerts, err := s.budgets.Alerts()
	if err != nil {
		logger.Get().Errorw("budget alert check failed", "error", err)
	} else {
		for _, a := range budgetAlerts {
			logger.Get().Infow("budget alert",
				"type", a.Type,
				"budget_id", a.BudgetID,
				"category", a.Category,
				"message", a.Message,
			)
		}
	}

	goalAlerts, err := s.goals.Alerts()
	if err != nil {
		logger.Get().Errorw("goal alert check failed", "error", err)
		return
	}
	for _, a := range goalAlerts {
		logger.Get().Infow("goal alert",
			"type", a.Type,
			"goal_id", a.GoalID,
			"goal", a.GoalName,
			"message", a.Message,
		)
	}
}
