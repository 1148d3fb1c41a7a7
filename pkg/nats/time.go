package nats

import (
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

func msgTime(msg jetstream.Msg) time.Time {
	if meta, err := msg.Metadata(); err == nil && meta != nil {
		return meta.Timestamp
	}
	return time.Now()
}
