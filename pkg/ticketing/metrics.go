package ticketing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalTicketsOpened is the total number of attempts to open a ticket by outcome.
	TotalTicketsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketing_total_tickets_opened",
			Help: "Total number of attempts to open a ticket",
		},
		[]string{"outcome"},
	)

	// TotalTicketsClosed is the total number of attempts to close a ticket by status.
	TotalTicketsClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketing_total_tickets_closed",
			Help: "Total number of attempts to close a ticket",
		},
		[]string{"status"},
	)

	// CloseDuration is the duration of closing a ticket.
	CloseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "ticketing_close_duration",
			Help: "Duration of closing a ticket",
		},
	)
)
