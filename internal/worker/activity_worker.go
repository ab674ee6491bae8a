package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/ndrewpacheco/warbler/internal/model"
)

// ActivityRecorder persists one activity event.
type ActivityRecorder interface {
	Record(ctx context.Context, activity model.Activity) error
}

// errMalformed marks deliveries that can never succeed and must not be requeued.
var errMalformed = errors.New("malformed activity")

type ActivityWorker struct {
	conn      *amqp.Connection
	recorder  ActivityRecorder
	queueName string
	log       logrus.FieldLogger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewActivityWorker(conn *amqp.Connection, recorder ActivityRecorder, queueName string, log logrus.FieldLogger) *ActivityWorker {
	return &ActivityWorker{
		conn:      conn,
		recorder:  recorder,
		queueName: queueName,
		log:       log.WithField("queue", queueName),
	}
}

func (w *ActivityWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	if err := ch.Qos(16, 0, false); err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("set worker qos failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					w.log.Warn("activity deliveries channel closed")
					return
				}

				if err := w.process(workerCtx, d.Body); err != nil {
					requeue := !errors.Is(err, errMalformed) && !d.Redelivered
					w.log.WithError(err).WithField("requeue", requeue).Error("process activity failed")
					_ = d.Nack(false, requeue)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	w.log.Info("activity worker started")
	return nil
}

func (w *ActivityWorker) process(ctx context.Context, body []byte) error {
	var activity model.Activity
	if err := json.Unmarshal(body, &activity); err != nil {
		return fmt.Errorf("%w: %w", errMalformed, err)
	}
	if activity.ActorID == 0 || activity.Kind == "" {
		return fmt.Errorf("%w: missing actor or kind", errMalformed)
	}
	return w.recorder.Record(ctx, activity)
}

func (w *ActivityWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
