package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

// AuditFile is the file submissions are appended to, inside the log dir.
const AuditFile = "selections.log"

// StartSubmissionConsumer declares the selection.submitted queue and
// appends one line per message to <logDir>/selections.log.  It reconnects
// with backoff until ctx is cancelled, then returns ctx.Err().  Messages
// that cannot be decoded or written are rejected without requeue.
func StartSubmissionConsumer(ctx context.Context, url, logDir string) error {
	backoff := time.Second
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			log.WithError(err).Warnf("submission-consumer: dial failed, retrying in %s", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, logDir)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.WithError(err).Warn("submission-consumer: consume loop ended, reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, logDir string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.WithError(err).Warn("submission-consumer: set QoS failed")
	}
	if _, err := ch.QueueDeclare(SelectionSubmittedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(SelectionSubmittedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := HandleMessage(logDir, d.Body); err != nil {
				log.WithError(err).Error("submission-consumer: handle message failed")
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one event and appends its audit line.
func HandleMessage(logDir string, body []byte) error {
	var ev SelectionSubmittedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.RaffleID == 0 || len(ev.Numbers) == 0 {
		return fmt.Errorf("incomplete event for raffle %d", ev.RaffleID)
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(logDir, AuditFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders the single audit line of ev.  The password hash is
// left out.
func FormatLine(ev SelectionSubmittedEvent) string {
	skipped := ""
	if len(ev.Skipped) > 0 {
		skipped = fmt.Sprintf(" | skipped=[%s]", strings.Join(ev.Skipped, ","))
	}
	return fmt.Sprintf("[%s] Selection submitted | raffle_id=%d | raffle=%q | customer=%q | phone=%q | payment=%q | total=%s | numbers=[%s]%s\n",
		ev.SubmittedAt, ev.RaffleID, ev.RaffleNumber, ev.CustomerName, ev.CustomerPhone, ev.PaymentMethod,
		ev.Total, strings.Join(ev.Numbers, ","), skipped)
}
