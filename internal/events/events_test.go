package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"teapos/internal/domain"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/gorilla/websocket"
	amqp "github.com/rabbitmq/amqp091-go"
)

func sampleEvent() Event {
	o := &domain.Order{ID: "o1", Status: domain.StatusPending, PaymentStatus: domain.PaymentSuccess, TotalCents: 4968}
	return OrderEvent(TypeOrderPlaced, o, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

type stubPublisher struct {
	err    error
	events []Event
}

func (s *stubPublisher) Publish(_ context.Context, e Event) error {
	s.events = append(s.events, e)
	return s.err
}

func TestMultiPublishesToAll(t *testing.T) {
	a := &stubPublisher{err: errors.New("broker down")}
	b := &stubPublisher{}
	err := Multi{a, b, Noop{}}.Publish(context.Background(), sampleEvent())
	if err == nil || !strings.Contains(err.Error(), "broker down") {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(a.events) != 1 || len(b.events) != 1 {
		t.Fatalf("every publisher must receive the event")
	}
}

type fakeChannel struct {
	declared  []string
	published []amqp.Publishing
	keys      []string
	closed    bool
	err       error
}

func (f *fakeChannel) ExchangeDeclare(name, _ string, _, _, _, _ bool, _ amqp.Table) error {
	f.declared = append(f.declared, name)
	return nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

type fakeConnection struct {
	ch  *fakeChannel
	err error
}

func (f *fakeConnection) Channel() (Channel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ch, nil
}

func (f *fakeConnection) Close() error { return nil }

func TestRabbitMQPublish(t *testing.T) {
	ch := &fakeChannel{}
	p := NewRabbitMQ(&fakeConnection{ch: ch})

	if err := p.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(ch.declared) != 1 || ch.declared[0] != Exchange {
		t.Fatalf("expected exchange declared, got %v", ch.declared)
	}
	if len(ch.keys) != 1 || ch.keys[0] != TypeOrderPlaced {
		t.Fatalf("expected routing by event type, got %v", ch.keys)
	}
	msg := ch.published[0]
	if msg.DeliveryMode != amqp.Persistent || msg.ContentType != "application/json" || msg.MessageId != "o1" {
		t.Fatalf("unexpected publishing %+v", msg)
	}
	var got Event
	if err := json.Unmarshal(msg.Body, &got); err != nil || got.OrderID != "o1" {
		t.Fatalf("unexpected body %s err=%v", msg.Body, err)
	}
	if !ch.closed {
		t.Fatalf("channel must be closed after publish")
	}
}

func TestRabbitMQPublishErrors(t *testing.T) {
	p := NewRabbitMQ(&fakeConnection{err: errors.New("connection closed")})
	if err := p.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected channel error")
	}
	p = NewRabbitMQ(&fakeConnection{ch: &fakeChannel{err: errors.New("nack")}})
	if err := p.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected publish error")
	}
}

func TestKafkaPublish(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var e Event
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		if e.OrderID != "o1" || e.Type != TypeOrderPlaced {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	k := NewKafka(producer, nil)
	if err := k.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := k.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestKafkaPublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	k := NewKafka(producer, nil)
	if err := k.Publish(context.Background(), sampleEvent()); !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("expected ErrOutOfBrokers, got %v", err)
	}
	_ = k.Close()
}

func TestHubBroadcastsToClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := hub.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got Event
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.OrderID != "o1" || got.Type != TypeOrderPlaced || got.Status != domain.StatusPending {
		t.Fatalf("unexpected event %+v", got)
	}
}
