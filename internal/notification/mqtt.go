package notification

import (
	"encoding/json"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/strikewarn/strikewarn-go/internal/conf"
	"github.com/strikewarn/strikewarn-go/internal/errors"
	"github.com/strikewarn/strikewarn-go/internal/logging"
)

const (
	mqttConnectTimeout = 10 * time.Second
	mqttPublishTimeout = 5 * time.Second
)

// MQTTSink publishes alert notifications to an MQTT topic. Connection and
// publish failures are surfaced as errors to the broadcaster, which logs and
// swallows them; they never stall the pipeline.
type MQTTSink struct {
	client mqtt.Client
	topic  string
	logger *slog.Logger
}

// NewMQTTSink connects to the configured broker. The connection is attempted
// once here; paho reconnects automatically afterwards.
func NewMQTTSink(settings *conf.MQTTSettings) (*MQTTSink, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(settings.Broker).
		SetClientID("strikewarn-" + time.Now().Format("150405")).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttConnectTimeout)
	if settings.Username != "" {
		opts.SetUsername(settings.Username)
		opts.SetPassword(settings.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, errors.Newf("timeout connecting to MQTT broker %s", settings.Broker).
			Component("notification").
			Category(errors.CategoryTimeout).
			Build()
	}
	if err := token.Error(); err != nil {
		return nil, errors.New(err).
			Component("notification").
			Category(errors.CategoryMQTTPublish).
			Context("broker", settings.Broker).
			Build()
	}

	return &MQTTSink{
		client: client,
		topic:  settings.Topic,
		logger: logging.ForService("mqtt-sink"),
	}, nil
}

// Subscriber returns the broadcaster subscriber publishing alert payloads.
func (s *MQTTSink) Subscriber() Subscriber {
	return func(n *Notification) error {
		if n.Type != TypeAlert {
			return nil
		}
		payload, err := json.Marshal(n)
		if err != nil {
			return errors.New(err).
				Component("notification").
				Category(errors.CategoryMQTTPublish).
				Build()
		}
		token := s.client.Publish(s.topic, 0, false, payload)
		if !token.WaitTimeout(mqttPublishTimeout) {
			return errors.Newf("timeout publishing to %s", s.topic).
				Component("notification").
				Category(errors.CategoryTimeout).
				Build()
		}
		return token.Error()
	}
}

// Close disconnects from the broker.
func (s *MQTTSink) Close() {
	s.client.Disconnect(250)
}
