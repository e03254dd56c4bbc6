package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"reflect"

	"github.com/golang/glog"

	"github.com/robotalks/padscan/pkg/display/mqtt"
	fx "github.com/robotalks/padscan/pkg/framework"
	"github.com/robotalks/padscan/pkg/msgs"
)

var (
	mqttURL = "mqtt://localhost:1883/padscan/"
	session = "+"
)

func init() {
	if val := os.Getenv("PADSCAN_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&session, "session", session, "Session to watch, + for all.")
}

func describe(topic string, payload []byte) string {
	msg, err := msgs.Decode(topic, payload)
	switch {
	case err == msgs.ErrUnknownTopic:
		return fmt.Sprintf("%s: %q", topic, payload)
	case err != nil:
		return fmt.Sprintf("%s: bad message: %v", topic, err)
	case msg == nil:
		return fmt.Sprintf("%s: (cleared)", topic)
	}
	return fmt.Sprintf("%s: [%s] %s", topic,
		reflect.Indirect(reflect.ValueOf(msg)).Type().Name(), msg.String())
}

func main() {
	flag.Parse()
	defer glog.Flush()

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		glog.Fatal(err)
	}
	q.Sub(session+"/#", func(topic string, payload []byte) {
		glog.Info(describe(topic, payload))
	})
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		glog.Fatalf("connect %s: %v", mqttURL, token.Error())
	}
	defer q.Close()

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.RunFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}))
	if err := runner.Wait(); err != nil {
		glog.Error(err)
	}
}
