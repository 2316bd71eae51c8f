package audit

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/baselabs/baseutils/disburse"
)

// NATSSink publishes committed audit events as JSON to one subject so
// downstream consumers can follow the trail without touching the
// vault.
type NATSSink struct {
	conn    *nats.Conn
	subject string
}

func NewNATSSink(natsURL, subject string) (*NATSSink, error) {
	conn, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSSink{
		conn:    conn,
		subject: subject,
	}, nil
}

func (s *NATSSink) Append(e disburse.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding audit event %d: %w", e.Seq, err)
	}
	return s.conn.Publish(s.subject, data)
}

func (s *NATSSink) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
}
