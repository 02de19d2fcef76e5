package audit

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/internal/requestid"
	"github.com/trackyourtime/tracky/pkg/session"
)

func entry(ctx context.Context) *log.Entry {
	fields := log.Fields{}
	if data, err := session.Current(ctx); err == nil {
		fields["user"] = data.Username
	}
	if id := requestid.From(ctx); id != "" {
		fields["requestId"] = id
	}
	return log.WithFields(fields)
}
