package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/m04kA/RMT-BookingService/internal/domain"
)

// KafkaPublisher публикует события бронирований в Kafka.
// Ключ сообщения - ID вещи, чтобы события одной вещи попадали в одну партицию
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      Logger
	now      func() time.Time
}

// NewProducerConfig возвращает конфигурацию идемпотентного синхронного продюсера
func NewProducerConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Version = sarama.V2_1_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = 5
	cfg.Net.MaxOpenRequests = 1
	return cfg
}

// NewKafkaPublisher подключается к брокерам и создает издателя
func NewKafkaPublisher(brokers []string, topic, clientID string, log Logger) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig(clientID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateProducer, err)
	}

	return NewPublisherWithProducer(producer, topic, log), nil
}

// NewPublisherWithProducer создает издателя поверх готового продюсера
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, log Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		log:      log,
		now:      time.Now,
	}
}

// PublishBookingCreated публикует событие создания бронирования
func (p *KafkaPublisher) PublishBookingCreated(ctx context.Context, booking *domain.Booking) error {
	event := newBookingEvent(uuid.NewString(), EventBookingCreated, p.now(), booking)
	return p.publish(ctx, event)
}

// PublishBookingStatusChanged публикует событие смены статуса бронирования
func (p *KafkaPublisher) PublishBookingStatusChanged(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) error {
	event := newBookingEvent(uuid.NewString(), EventBookingStatusChanged, p.now(), booking)
	event.PreviousStatus = string(previous)
	return p.publish(ctx, event)
}

func (p *KafkaPublisher) publish(ctx context.Context, event BookingEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, event.EventType, err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshalEvent, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.ItemID, 10)),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.EventType)},
			{Key: []byte("event_id"), Value: []byte(event.EventID)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("%w: %s booking_id=%d: %v", ErrPublish, event.EventType, event.BookingID, err)
	}

	p.log.Info("Published %s for booking_id=%d (partition=%d, offset=%d)", event.EventType, event.BookingID, partition, offset)
	return nil
}

// Close закрывает продюсер
func (p *KafkaPublisher) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}

// NoopPublisher используется, когда публикация событий выключена
type NoopPublisher struct{}

// PublishBookingCreated ничего не делает
func (NoopPublisher) PublishBookingCreated(context.Context, *domain.Booking) error {
	return nil
}

// PublishBookingStatusChanged ничего не делает
func (NoopPublisher) PublishBookingStatusChanged(context.Context, *domain.Booking, domain.BookingStatus) error {
	return nil
}

// Close ничего не делает
func (NoopPublisher) Close() error {
	return nil
}
