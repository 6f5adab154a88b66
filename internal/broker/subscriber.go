// internal/broker/subscriber.go
package broker

import (
	"context"
	"errors"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/tamzrod/watchface/internal/config"
	"github.com/tamzrod/watchface/internal/face"
)

// Subscriber forwards phone-bridge MQTT notifications as face events.
type Subscriber struct {
	cfg    config.MQTTConfig
	client mqtt.Client
	log    *zap.Logger
}

// New prepares a subscriber. Nothing is dialled until Run.
func New(cfg config.MQTTConfig, log *zap.Logger) (*Subscriber, error) {
	if cfg.Broker == "" {
		return nil, errors.New("broker: broker address required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	return &Subscriber{
		cfg:    cfg,
		client: mqtt.NewClient(opts),
		log:    log.With(zap.String("source", "mqtt "+cfg.Broker)),
	}, nil
}

// Run connects, subscribes and forwards events until ctx is done.
// The broker delivers retained values at subscription time.
func (s *Subscriber) Run(ctx context.Context, out chan<- face.Event) error {
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("broker: connect %s: %w", s.cfg.Broker, token.Error())
	}
	defer s.client.Disconnect(250)

	var topics []string
	if t := s.cfg.BatteryTopic; t != "" {
		if err := s.subscribe(ctx, t, batteryEvent, out); err != nil {
			return err
		}
		topics = append(topics, t)
	}
	if t := s.cfg.LinkTopic; t != "" {
		if err := s.subscribe(ctx, t, linkEvent, out); err != nil {
			return err
		}
		topics = append(topics, t)
	}
	s.log.Info("subscribed", zap.Strings("topics", topics))

	<-ctx.Done()
	s.client.Unsubscribe(topics...).Wait()
	return nil
}

func (s *Subscriber) subscribe(ctx context.Context, topic string, parse func([]byte) (face.Event, error), out chan<- face.Event) error {
	token := s.client.Subscribe(topic, s.cfg.QoS, func(_ mqtt.Client, msg mqtt.Message) {
		ev, err := parse(msg.Payload())
		if err != nil {
			s.log.Warn("dropping payload", zap.String("topic", msg.Topic()), zap.Error(err))
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
		}
	})
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("broker: subscribe %s: %w", topic, token.Error())
	}
	return nil
}

func batteryEvent(payload []byte) (face.Event, error) {
	pct, err := ParseBattery(payload)
	if err != nil {
		return nil, err
	}
	return face.BatteryChanged{Percent: pct}, nil
}

func linkEvent(payload []byte) (face.Event, error) {
	connected, err := ParseLink(payload)
	if err != nil {
		return nil, err
	}
	return face.ConnectivityChanged{Connected: connected}, nil
}
