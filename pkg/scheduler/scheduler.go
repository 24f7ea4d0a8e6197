// Package scheduler runs configured queries through the dispatcher on cron
// schedules.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/harits/aksi/pkg/dispatcher"
)

// Entry is one scheduled query.
type Entry struct {
	Cron  string
	Query string
}

// Scheduler owns the cron runner.
type Scheduler struct {
	cron       *cron.Cron
	dispatcher *dispatcher.Dispatcher
}

// New creates a scheduler with the given entries registered. Invalid cron
// expressions fail fast here rather than silently never firing.
func New(d *dispatcher.Dispatcher, entries []Entry) (*Scheduler, error) {
	s := &Scheduler{
		cron:       cron.New(),
		dispatcher: d,
	}

	for _, entry := range entries {
		entry := entry
		_, err := s.cron.AddFunc(entry.Cron, func() {
			log.Info().Str("query", entry.Query).Msg("Scheduled dispatch firing")
			outcome := s.dispatcher.Dispatch(context.Background(), entry.Query)
			if !outcome.Success {
				log.Warn().Str("query", entry.Query).Str("error", outcome.Error).
					Msg("Scheduled dispatch failed")
			}
		})
		if err != nil {
			return nil, fmt.Errorf("invalid schedule %q: %w", entry.Cron, err)
		}
	}

	return s, nil
}

// Start begins firing schedules in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Int("entries", len(s.cron.Entries())).Msg("Scheduler started")
}

// Stop stops the runner and waits for in-flight jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Scheduler stopped")
}
