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
	"go.uber.org/zap"

	"github.com/iliyamo/galeragate-ledger/internal/model"
)

// StartReceiptConsumer connects to the broker, declares queue (durable) and
// appends one line per ReservationConfirmedEvent to logPath.  It reconnects
// with backoff until ctx is cancelled, then returns ctx.Err().  Messages that
// cannot be decoded or written are rejected without requeue.
func StartReceiptConsumer(ctx context.Context, url, queue, logPath string) error {
	backoff := time.Second
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			zap.L().Warn("receipt-consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, queue, logPath)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		zap.L().Warn("receipt-consumer: consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, queue, logPath string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("conn.Channel -> %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		zap.L().Warn("receipt-consumer: set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("ch.QueueDeclare -> %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("ch.Consume -> %w", err)
	}

	for d := range msgs {
		if err := HandleMessage(d.Body, logPath); err != nil {
			zap.L().Error("receipt-consumer: handle message failed", zap.Error(err))
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// HandleMessage decodes one event body and appends its line to logPath,
// creating the parent directory when needed.
func HandleMessage(body []byte, logPath string) error {
	var ev ReservationConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("json.Unmarshal -> %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll -> %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("os.OpenFile -> %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatEventLine(ev)); err != nil {
		return fmt.Errorf("f.WriteString -> %w", err)
	}
	return nil
}

// FormatEventLine renders ev as a single newline-terminated log line.
func FormatEventLine(ev ReservationConfirmedEvent) string {
	selections := "[]"
	if len(ev.Selections) > 0 {
		selections = "[" + strings.Join(ev.Selections, ", ") + "]"
	}
	amount := "unpaid"
	if ev.PaymentID != 0 {
		amount = model.FormatCents(ev.AmountCents, ev.Currency)
	}
	return fmt.Sprintf("[%s] Reservation confirmed | visitor_id=%d | visitor=%q | stay=%s..%s | method=%q | amount=%s | paid_on=%s | selections=%s\n",
		ev.ConfirmedAt, ev.VisitorID, ev.VisitorName, ev.EntryDate, ev.ExitDate,
		ev.PaymentMethod, amount, ev.PaidOn, selections)
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
