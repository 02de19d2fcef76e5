package audit

import (
	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/internal/event_bus"
	"github.com/trackyourtime/tracky/internal/metrics"
)

const (
	KindCreated = "created"
	KindUpdated = "updated"
	KindDeleted = "deleted"
)

// Subscribe logs every booking and attendance change and feeds the change metrics.
func Subscribe(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.ProjectTimeSavedType,
		func(e event_bus.EventT[event_bus.ProjectTimeSaved]) error {
			kind := KindUpdated
			if e.Data.Created {
				kind = KindCreated
				metrics.AddBookedHours(e.Data.Hours)
			}
			metrics.IncProjectTimeChange(kind)
			entry(e.Context()).WithFields(log.Fields{
				"projectTimeId":         e.Data.Id,
				"calculationPositionId": e.Data.CalculationPositionId,
				"date":                  e.Data.Date,
				"hours":                 e.Data.Hours,
			}).Infof("project time %s", kind)
			return nil
		})

	event_bus.SubscribeTyped(bus, event_bus.ProjectTimeDeletedType,
		func(e event_bus.EventT[event_bus.ProjectTimeDeleted]) error {
			metrics.IncProjectTimeChange(KindDeleted)
			entry(e.Context()).WithFields(log.Fields{
				"projectTimeId": e.Data.Id,
				"date":          e.Data.Date,
				"hours":         e.Data.Hours,
			}).Info("project time deleted")
			return nil
		})

	event_bus.SubscribeTyped(bus, event_bus.AttendanceSavedType,
		func(e event_bus.EventT[event_bus.AttendanceSaved]) error {
			metrics.IncAttendanceSaved()
			entry(e.Context()).WithFields(log.Fields{
				"date":          e.Data.Date,
				"periods":       e.Data.Periods,
				"workedMinutes": e.Data.WorkedMinutes,
				"breakMinutes":  e.Data.BreakMinutes,
			}).Info("attendance saved")
			return nil
		})
}
