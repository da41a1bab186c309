package poller

import (
	"context"
	"nasne-exporter/internal/nasne"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultInterval is used when no positive interval is configured.
const DefaultInterval = 10 * time.Second

// Result is the outcome of polling one device. Observations is empty whenever Err is set.
type Result struct {
	Address      string
	Observations []nasne.Observation
	Err          error
}

// Poller periodically reads a fixed list of devices and records their volume sizes.
// Gauges of a device that stops answering keep their last value until the process restarts.
type Poller struct {
	fetcher  nasne.Fetcher
	metrics  *nasne.VolumeMetrics
	devices  []string
	interval time.Duration
}

func New(fetcher nasne.Fetcher, metrics *nasne.VolumeMetrics, devices []string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		fetcher:  fetcher,
		metrics:  metrics,
		devices:  append([]string(nil), devices...),
		interval: interval,
	}
}

// Run polls all devices immediately and then once per interval until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.PollOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping poller")
			return nil
		case <-ticker.C:
			p.PollOnce(ctx)
		}
	}
}

// PollOnce reads every device in listed order. A failing device is logged and skipped, the remaining
// devices are still processed. A cancelled ctx ends the cycle early.
func (p *Poller) PollOnce(ctx context.Context) []Result {
	results := make([]Result, 0, len(p.devices))
	for _, address := range p.devices {
		if ctx.Err() != nil {
			break
		}
		result := p.poll(ctx, address)
		if result.Err != nil {
			log.WithFields(log.Fields{
				"device": address,
				"error":  result.Err,
			}).Error("Failed to read device, skipped")
		} else {
			p.metrics.Record(result.Observations)
		}
		results = append(results, result)
	}

	return results
}

func (p *Poller) poll(ctx context.Context, address string) Result {
	observations, err := nasne.Collect(ctx, p.fetcher, address)
	if err != nil {
		return Result{Address: address, Err: err}
	}

	return Result{Address: address, Observations: observations}
}
