package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/ryota0051/033-web-api/internal/weather"
)

// Report summarizes one audit pass over the data root.
type Report struct {
	Locations int
	Rows      int
	Failed    map[string]error
}

// Scheduler periodically audits every series under the data root, loading
// each file through the same Source the query service uses and logging
// files that no longer parse.
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    weather.Source
	interval  time.Duration
	log       logrus.FieldLogger
}

// New creates a new Scheduler.
func New(source weather.Source, interval time.Duration, log logrus.FieldLogger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		source:    source,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the audit job and starts the underlying scheduler.
// A non-positive interval disables auditing.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.log.Info("scheduler: audit interval not set; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		s.log.Debug("scheduler: running data root audit")
		s.Audit()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Audit loads every location once and reports row counts and failures.
func (s *Scheduler) Audit() Report {
	report := Report{Failed: map[string]error{}}

	locs, err := s.source.Locations()
	if err != nil {
		s.log.WithError(err).Error("scheduler: listing locations failed")
		return report
	}

	for _, loc := range locs {
		table, err := s.source.Load(loc)
		if err != nil {
			report.Failed[loc] = err
			s.log.WithField("location", loc).WithError(err).Warn("scheduler: series failed audit")
			continue
		}
		report.Locations++
		report.Rows += table.Len()
	}

	s.log.WithFields(logrus.Fields{
		"locations": report.Locations,
		"rows":      report.Rows,
		"failed":    len(report.Failed),
	}).Info("scheduler: completed data root audit")
	return report
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
