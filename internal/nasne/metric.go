package nasne

import (
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	TotalVolumeSizeMetric = "nasne_total_volume_size"
	FreeVolumeSizeMetric  = "nasne_free_volume_size"
	UsedVolumeSizeMetric  = "nasne_used_volume_size"
)

var metricLabelNames = []string{"name"}

// Observation is a single gauge sample of a device, labeled with the box name.
type Observation struct {
	Metric string
	Name   string
	Value  float64
}

// Observe maps the readings of one device to its gauge samples, always in the order total, free, used.
func Observe(identity DeviceIdentity, status StorageStatus) []Observation {
	return []Observation{
		{Metric: TotalVolumeSizeMetric, Name: identity.Name, Value: float64(status.HDD.TotalVolumeSize)},
		{Metric: FreeVolumeSizeMetric, Name: identity.Name, Value: float64(status.HDD.FreeVolumeSize)},
		{Metric: UsedVolumeSizeMetric, Name: identity.Name, Value: float64(status.HDD.UsedVolumeSize)},
	}
}

// VolumeMetrics records observations into gauges of a registry. Updates and scrapes may run concurrently.
type VolumeMetrics struct {
	gauges map[string]*prometheus.GaugeVec
}

// NewVolumeMetrics creates the volume gauges and registers them on registerer.
func NewVolumeMetrics(registerer prometheus.Registerer) *VolumeMetrics {
	totalVolumeSizeMetric := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "nasne",
		Name:      "total_volume_size",
		Help:      "Total size of the internal HDD volume (bytes)",
	}, metricLabelNames)
	freeVolumeSizeMetric := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "nasne",
		Name:      "free_volume_size",
		Help:      "Free space on the internal HDD volume (bytes)",
	}, metricLabelNames)
	usedVolumeSizeMetric := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "nasne",
		Name:      "used_volume_size",
		Help:      "Used space on the internal HDD volume (bytes)",
	}, metricLabelNames)
	registerer.MustRegister(totalVolumeSizeMetric, freeVolumeSizeMetric, usedVolumeSizeMetric)

	return &VolumeMetrics{
		gauges: map[string]*prometheus.GaugeVec{
			TotalVolumeSizeMetric: totalVolumeSizeMetric,
			FreeVolumeSizeMetric:  freeVolumeSizeMetric,
			UsedVolumeSizeMetric:  usedVolumeSizeMetric,
		},
	}
}

// Record sets the gauges for the given observations. The last value stays exposed until it is overwritten.
func (m *VolumeMetrics) Record(observations []Observation) {
	for _, observation := range observations {
		gauge, found := m.gauges[observation.Metric]
		if !found {
			log.WithField("metric", observation.Metric).Warn("No gauge registered for metric")
			continue
		}
		gauge.With(prometheus.Labels{"name": observation.Name}).Set(observation.Value)
	}
}
