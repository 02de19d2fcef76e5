package audit

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackyourtime/tracky/internal/event_bus"
	"github.com/trackyourtime/tracky/internal/requestid"
	"github.com/trackyourtime/tracky/pkg/session"
)

func TestSubscribe_LogsChanges(t *testing.T) {
	hook := logtest.NewGlobal()
	t.Cleanup(hook.Reset)

	bus := event_bus.NewEventBus()
	Subscribe(bus)

	ctx := session.WithData(context.Background(), session.Data{Username: "jane.doe", TroiPassword: "pw"})
	ctx = requestid.With(ctx, "req-1")

	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.ProjectTimeSavedType, event_bus.ProjectTimeSaved{
		Id: 7, CalculationPositionId: 5, Date: "2024-03-04", Hours: 2.5, Created: true,
	})))
	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.ProjectTimeDeletedType, event_bus.ProjectTimeDeleted{
		Id: 7, Date: "2024-03-04", Hours: 2.5,
	})))
	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.AttendanceSavedType, event_bus.AttendanceSaved{
		Date: "2024-03-04", Periods: 3, WorkedMinutes: 480, BreakMinutes: 30,
	})))

	var messages []string
	for _, e := range hook.AllEntries() {
		if e.Level != log.InfoLevel {
			continue
		}
		messages = append(messages, e.Message)
		assert.Equal(t, "jane.doe", e.Data["user"])
		assert.Equal(t, "req-1", e.Data["requestId"])
	}
	assert.Equal(t, []string{"project time created", "project time deleted", "attendance saved"}, messages)
}
