package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/avenk/careerpath-be/internal/services"
)

// StatUpdater periodically samples host CPU and memory usage and records the
// result as a system-wide audit event. High utilization is recorded at warn
// level so it surfaces in the event feed.
type StatUpdater struct {
	events   services.EventServiceProvider
	schedule cron.Schedule
	done     chan bool
}

// NewStatUpdater creates a stat updater driven by a standard cron expression.
func NewStatUpdater(events services.EventServiceProvider, cronExpr string) (*StatUpdater, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid stats cron expression %q: %w", cronExpr, err)
	}
	return &StatUpdater{
		events:   events,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the periodic sampling loop.
func (su *StatUpdater) Run() {
	log.Info().Msg("Starting background stat updater...")

	timer := time.NewTimer(time.Until(su.schedule.Next(time.Now())))
	defer timer.Stop()

	for {
		select {
		case <-su.done:
			log.Info().Msg("Stopping background stat updater.")
			return
		case <-timer.C:
			su.sample()
			timer.Reset(time.Until(su.schedule.Next(time.Now())))
		}
	}
}

// Stop halts the periodic sampling.
func (su *StatUpdater) Stop() {
	su.done <- true
}

// sample reads host utilization and records it.
func (su *StatUpdater) sample() {
	cpuPercents, err := cpu.Percent(time.Second, false)
	if err != nil || len(cpuPercents) == 0 {
		log.Error().Err(err).Msg("StatUpdater: Failed to read CPU usage")
		return
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Error().Err(err).Msg("StatUpdater: Failed to read memory usage")
		return
	}

	cpuUsage := cpuPercents[0]
	level := "info"
	if cpuUsage > 90 || vm.UsedPercent > 90 {
		level = "warn"
	}

	su.events.Record(context.Background(), nil, "system.stats", level,
		fmt.Sprintf("cpu %.1f%%, memory %.1f%%", cpuUsage, vm.UsedPercent))
}
