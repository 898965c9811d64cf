package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gameday"

// Service holds the rotation counters exported at /metrics.
type Service struct {
	checkIns         *prometheus.CounterVec
	matchesCompleted *prometheus.CounterVec
	coinTosses       *prometheus.CounterVec
	sweepRuns        prometheus.Counter
	sweepGames       *prometheus.CounterVec
	gatherer         prometheus.Gatherer
}

// NewService registers the counters on reg. A nil reg gets a private registry.
func NewService(reg *prometheus.Registry) *Service {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Service{
		checkIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_ins_total",
			Help:      "Players checked in or added to a game day, by placement.",
		}, []string{"kind"}),
		matchesCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_completed_total",
			Help:      "Completed matches by outcome and trigger.",
		}, []string{"outcome", "trigger"}),
		coinTosses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coin_tosses_total",
			Help:      "Resolved coin tosses by type.",
		}, []string{"type"}),
		sweepRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expiry_sweeps_total",
			Help:      "Timer expiry sweeps executed.",
		}),
		sweepGames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expiry_sweep_games_total",
			Help:      "Games visited by expiry sweeps, by result.",
		}, []string{"result"}),
		gatherer: reg,
	}

	reg.MustRegister(
		s.checkIns,
		s.matchesCompleted,
		s.coinTosses,
		s.sweepRuns,
		s.sweepGames,
	)
	return s
}

func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})
}

func (s *Service) CheckIn(kind string) {
	s.checkIns.WithLabelValues(kind).Inc()
}

func (s *Service) MatchCompleted(outcome string, automatic bool) {
	trigger := "manual"
	if automatic {
		trigger = "timer"
	}
	s.matchesCompleted.WithLabelValues(outcome, trigger).Inc()
}

func (s *Service) CoinTossResolved(tossType string) {
	s.coinTosses.WithLabelValues(tossType).Inc()
}

func (s *Service) ExpirySweep(checked, completed, failed int) {
	s.sweepRuns.Inc()
	s.sweepGames.WithLabelValues("checked").Add(float64(checked))
	s.sweepGames.WithLabelValues("completed").Add(float64(completed))
	s.sweepGames.WithLabelValues("failed").Add(float64(failed))
}
