package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tetris"

// результаты отправки рекорда
const (
	SubmissionAccepted = "accepted"
	SubmissionRejected = "rejected"
	SubmissionFailed   = "failed"
)

var (
	GamesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_started_total",
		Help:      "Games started or restarted over the play endpoint.",
	})

	GamesOver = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_over_total",
		Help:      "Games that reached game over.",
	})

	LinesCleared = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lines_cleared_total",
		Help:      "Rows removed by line clears.",
	})

	ActivePlaySessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_play_sessions",
		Help:      "Open websocket play sessions.",
	})

	ScoreSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "score_submissions_total",
		Help:      "Leaderboard submissions by result.",
	}, []string{"result"})

	FinalScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "final_score",
		Help:      "Score of accepted leaderboard submissions.",
		Buckets:   prometheus.ExponentialBuckets(100, 4, 8),
	})
)
