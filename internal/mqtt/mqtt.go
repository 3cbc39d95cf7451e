// Package mqtt publishes unread-count updates to an MQTT broker.
package mqtt

import (
	"context"
	"errors"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

// DefaultTimeout bounds connect and publish when ctx has no deadline.
const DefaultTimeout = 5 * time.Second

// Options identifies the broker and topic.
type Options struct {
	Broker   string
	ClientID string
	Topic    string
	QoS      byte
	Retain   bool
	Username string
	Password string
}

func (o Options) validate() error {
	switch {
	case o.Broker == "":
		return errors.New("mqtt: broker not set")
	case o.Topic == "":
		return errors.New("mqtt: topic not set")
	case o.QoS > 2:
		return fmt.Errorf("mqtt: qos %d out of range", o.QoS)
	}
	return nil
}

// Publish connects, publishes payload and disconnects. Each call uses a
// fresh connection; alerts are rare enough that a persistent session is
// not worth keeping.
func Publish(ctx context.Context, o Options, payload []byte) error {
	if err := o.validate(); err != nil {
		return err
	}
	timeout := DefaultTimeout
	if dl, ok := ctx.Deadline(); ok {
		timeout = time.Until(dl)
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(o.Broker).
		SetClientID(o.ClientID).
		SetConnectTimeout(timeout)
	if o.Username != "" {
		opts.SetUsername(o.Username)
	}
	if o.Password != "" {
		opts.SetPassword(o.Password)
	}

	client := pahomqtt.NewClient(opts)
	if err := wait(ctx, client.Connect(), timeout); err != nil {
		return fmt.Errorf("mqtt: connect: %w", err)
	}
	defer client.Disconnect(250)

	if err := wait(ctx, client.Publish(o.Topic, o.QoS, o.Retain, payload), timeout); err != nil {
		return fmt.Errorf("mqtt: publish: %w", err)
	}
	return nil
}

func wait(ctx context.Context, tok pahomqtt.Token, timeout time.Duration) error {
	select {
	case <-tok.Done():
		return tok.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(timeout):
		return errors.New("timeout")
	}
}
