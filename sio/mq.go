package sio

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Comcast/csp/core"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQ couples a trace to an MQTT broker.
//
// Events arrive on <Prefix>/events (payload: the bare event string).
// After each event, the current acceptable set is published on
// <Prefix>/acceptable and a trace record on <Prefix>/trace.  A
// refusal or termination is reported on <Prefix>/trace and the
// coupling stops.
type MQ struct {
	Client  mqtt.Client
	Prefix  string
	QoS     byte
	Quiesce uint

	// Store, if non-nil, gets every accepted event.
	Store TraceStore
}

// MQOptions is what NewMQ needs to reach a broker.
type MQOptions struct {
	Broker    string // e.g. "tcp://localhost:1883"
	ClientID  string
	Username  string
	Password  string
	KeepAlive time.Duration
}

// NewMQ connects to the broker.
func NewMQ(opts MQOptions, prefix string) (*MQ, error) {
	mo := mqtt.NewClientOptions()
	mo.AddBroker(opts.Broker)
	mo.SetClientID(opts.ClientID)
	mo.Username = opts.Username
	mo.Password = opts.Password
	if 0 < opts.KeepAlive {
		mo.SetKeepAlive(opts.KeepAlive)
	}

	client := mqtt.NewClient(mo)
	if t := client.Connect(); t.Wait() && t.Error() != nil {
		return nil, t.Error()
	}

	return &MQ{
		Client:  client,
		Prefix:  prefix,
		Quiesce: 100,
	}, nil
}

type traceRecord struct {
	Event      string   `json:"event,omitempty"`
	Process    string   `json:"process,omitempty"`
	Acceptable []string `json:"acceptable"`
	Outcome    string   `json:"outcome,omitempty"`
}

func (m *MQ) publish(topic string, x interface{}) {
	js, err := json.Marshal(x)
	if err != nil {
		log.Printf("mq marshal: %v", err)
		return
	}
	if t := m.Client.Publish(m.Prefix+"/"+topic, m.QoS, false, js); t.Wait() && t.Error() != nil {
		log.Printf("mq publish %s: %v", topic, t.Error())
	}
}

// Run subscribes and drives the trace until it terminates, refuses,
// or the context is canceled.
func (m *MQ) Run(ctx context.Context, t *Trace) (Outcome, error) {
	events := make(chan string)

	topic := m.Prefix + "/events"
	token := m.Client.Subscribe(topic, m.QoS, func(_ mqtt.Client, msg mqtt.Message) {
		select {
		case events <- string(msg.Payload()):
		case <-ctx.Done():
		}
	})
	if token.Wait() && token.Error() != nil {
		return Exhausted, token.Error()
	}
	defer func() {
		m.Client.Unsubscribe(topic)
		m.Client.Disconnect(m.Quiesce)
	}()

	m.publish("acceptable", t.Acceptable().Events())

	for {
		select {
		case <-ctx.Done():
			return Exhausted, ctx.Err()
		case event := <-events:
			if !t.Process.Alphabet().Contains(event) {
				m.publish("trace", traceRecord{
					Event:      event,
					Outcome:    "not in alphabet",
					Acceptable: t.Acceptable().Events(),
				})
				continue
			}
			if !t.Step(event) {
				m.publish("trace", traceRecord{
					Event:   event,
					Outcome: Refused.String(),
				})
				return Refused, &core.Refusal{Event: event}
			}
			if m.Store != nil {
				if err := m.Store.Record(event, t.Process.String()); err != nil {
					log.Printf("trace store: %v", err)
				}
			}
			if t.Done() {
				m.publish("trace", traceRecord{
					Event:   event,
					Outcome: Terminated.String(),
				})
				return Terminated, nil
			}
			m.publish("trace", traceRecord{
				Event:      event,
				Process:    t.Process.String(),
				Acceptable: t.Acceptable().Events(),
			})
			m.publish("acceptable", t.Acceptable().Events())
		}
	}
}
