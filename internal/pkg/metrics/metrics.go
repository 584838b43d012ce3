/*
Package metrics exposes Prometheus instrumentation for the signaling hub.

Every Recorder owns its own registry, so several hubs (for example one per test) never collide
on collector registration.
*/
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voxroom"

// Drop reasons reported by Dropped.
const (
	DropQueueFull   = "queue_full"
	DropRateLimited = "rate_limited"
	DropMalformed   = "malformed"
	DropUnknownType = "unknown_type"
	DropNotInRoom   = "not_in_room"
	DropRelayTarget = "relay_target"
	DropChatText    = "chat_text"
)

// Recorder collects hub gauges and counters.
type Recorder struct {
	registry *prometheus.Registry

	connections prometheus.Gauge
	rooms       prometheus.Gauge
	members     prometheus.Gauge
	inbound     *prometheus.CounterVec
	dropped     *prometheus.CounterVec
	broadcasts  prometheus.Counter
}

// New creates a Recorder with a fresh registry that also carries the Go runtime and process collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()

	r := &Recorder{
		registry: reg,
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Number of open WebSocket connections.",
		}),
		rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms",
			Help:      "Number of rooms in the directory, the default room included.",
		}),
		members: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "room_members",
			Help:      "Number of connections that currently occupy a room.",
		}),
		inbound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inbound_messages_total",
			Help:      "Inbound WebSocket messages by kind.",
		}, []string{"type"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_messages_total",
			Help:      "Inbound or outbound messages discarded, by reason.",
		}, []string{"reason"}),
		broadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "presence_broadcasts_total",
			Help:      "Full room-update snapshots pushed to all connections.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.connections,
		r.rooms,
		r.members,
		r.inbound,
		r.dropped,
		r.broadcasts,
	)

	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// SetConnections records the number of open connections.
func (r *Recorder) SetConnections(n int) { r.connections.Set(float64(n)) }

// SetRooms records the number of rooms.
func (r *Recorder) SetRooms(n int) { r.rooms.Set(float64(n)) }

// SetMembers records the number of seated members across all rooms.
func (r *Recorder) SetMembers(n int) { r.members.Set(float64(n)) }

// Inbound counts one inbound message of the given kind.
func (r *Recorder) Inbound(kind string) { r.inbound.WithLabelValues(kind).Inc() }

// Dropped counts one discarded message.
func (r *Recorder) Dropped(reason string) { r.dropped.WithLabelValues(reason).Inc() }

// Broadcast counts one presence snapshot fan-out.
func (r *Recorder) Broadcast() { r.broadcasts.Inc() }
