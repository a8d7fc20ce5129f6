// Package sched drives the recurring jobs: the monthly transfer run and
// the daily sweep over due scheduled withdrawals. The engine has no
// notion of "due", so deciding when to fire lives here.
package sched

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"log/slog"

	"moneypots/internal/store"
)

// Runner owns the cron loop.
type Runner struct {
	cron *cron.Cron
	st   *store.Store
	log  *slog.Logger
}

// New builds a runner with second-granularity cron expressions.
func New(st *store.Store, logger *slog.Logger) *Runner {
	return &Runner{
		cron: cron.New(cron.WithSeconds()),
		st:   st,
		log:  logger,
	}
}

// Register installs the transfer and withdrawal jobs. Both expressions
// use the 6-field form with a leading seconds field.
func (r *Runner) Register(transferCron, withdrawalCron string) error {
	if _, err := r.cron.AddFunc(transferCron, r.runTransfer); err != nil {
		return err
	}
	if _, err := r.cron.AddFunc(withdrawalCron, r.runWithdrawals); err != nil {
		return err
	}
	return nil
}

// Start launches the cron loop in its own goroutine.
func (r *Runner) Start() {
	r.cron.Start()
	r.log.Info("scheduler started")
}

// Stop halts the loop and waits for any running job to finish.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.log.Info("scheduler stopped")
}

func (r *Runner) runTransfer() {
	snap := r.st.Snapshot()
	if !snap.SetupComplete {
		return
	}
	now := time.Now()
	// The cron fires on a calendar day, but a manual run may already have
	// covered this month. The interest stamp doubles as the run marker.
	if transferRanThisMonth(snap.LastInterestDate, now) {
		r.log.Info("monthly transfer already processed this month, skipping")
		return
	}

	r.log.Info("processing monthly transfer", "total_amount", snap.MonthlyTransfer.TotalAmount)
	r.st.ProcessMonthlyTransfer(context.Background())
}

func (r *Runner) runWithdrawals() {
	now := time.Now()
	due := r.st.DueWithdrawals(now)
	if len(due) == 0 {
		return
	}

	r.log.Info("processing due withdrawals", "count", len(due))
	for _, w := range due {
		r.st.ProcessWithdrawal(context.Background(), w.ID)
	}
}

func transferRanThisMonth(last *time.Time, now time.Time) bool {
	if last == nil {
		return false
	}
	return last.Year() == now.Year() && last.Month() == now.Month()
}
