// Package ingest consumes raw reports from a NATS subject, decodes and
// classifies them, and forwards surface observations to the analytics sink.
package ingest

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/HappyMeal-git/aviation-weather-briefing/internal/classify"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/decode"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/observability"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/storage"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/wx"
)

// Sink receives classified observations. storage.ClickHouseDB implements it.
type Sink interface {
	InsertCondition(ctx context.Context, row storage.ConditionRow) error
}

// Consumer subscribes to a raw-report subject and pushes classified
// conditions to the sink.
type Consumer struct {
	conn    *nats.Conn
	subject string
	sink    Sink
	metrics *observability.Metrics

	sub *nats.Subscription
}

// NewConsumer connects to NATS. sink and metrics may be nil; without a sink
// the consumer still decodes and counts reports.
func NewConsumer(url, subject string, sink Sink, metrics *observability.Metrics) (*Consumer, error) {
	conn, err := nats.Connect(url,
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}
	return &Consumer{conn: conn, subject: subject, sink: sink, metrics: metrics}, nil
}

// Start subscribes and processes messages until Stop is called.
func (c *Consumer) Start(ctx context.Context) error {
	sub, err := c.conn.Subscribe(c.subject, func(msg *nats.Msg) {
		c.handle(ctx, msg.Data)
	})
	if err != nil {
		return err
	}
	c.sub = sub
	log.Printf("ingest: subscribed to %s", c.subject)
	return nil
}

// Stop drains the subscription and closes the connection.
func (c *Consumer) Stop() {
	if c.sub != nil {
		_ = c.sub.Drain()
	}
	c.conn.Close()
}

// handle processes one message. Malformed payloads are logged and dropped;
// a bad report never stops the stream.
func (c *Consumer) handle(ctx context.Context, data []byte) {
	var report wx.RawReport
	if err := json.Unmarshal(data, &report); err != nil {
		log.Printf("ingest: drop malformed message: %v", err)
		return
	}
	if report.Raw == "" {
		return
	}

	d := decode.Decode(report)
	if c.metrics != nil {
		c.metrics.ReportsDecoded.WithLabelValues(string(d.Kind)).Inc()
	}

	// Only surface observations feed the analytics sink.
	if d.Observation == nil || d.Observation.Unparseable {
		return
	}
	cond := classify.Classify(d.Observation)
	if c.metrics != nil {
		c.metrics.ReportsClassified.Inc()
	}

	if c.sink == nil {
		return
	}
	observedAt := time.Now().UTC()
	if report.ObservedAt != nil {
		observedAt = *report.ObservedAt
	}
	row := storage.ConditionRow{
		Station:    report.Station,
		ObservedAt: observedAt,
		RawText:    report.Raw,
		Condition:  cond,
	}
	if err := c.sink.InsertCondition(ctx, row); err != nil {
		log.Printf("ingest: sink insert for %s: %v", report.Station, err)
	}
}
