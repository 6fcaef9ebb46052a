package evt

import (
	"github.com/asaskevich/EventBus"
)

const (
	// ApplicationStarted fires on start of the application. Parameter: version number, build time
	ApplicationStarted = "application:started"

	// AuditStarted fires before the first zone is queried. Parameter: run id, number of zones
	AuditStarted = "audit:started"

	// AuditZoneChecked fires if the signatures of a zone were evaluated.
	// Parameter: zone name, classified signatures, query duration
	AuditZoneChecked = "audit:zoneChecked"

	// AuditZoneUnreachable fires if the signatures of a zone could not be retrieved.
	// Parameter: zone name, reason, query duration
	AuditZoneUnreachable = "audit:zoneUnreachable"

	// AuditCompleted fires after all zones were aggregated. Parameter: audit result
	AuditCompleted = "audit:completed"

	// ZoneListDownloadFailed fires if a download attempt of a zone list failed. Parameter: link
	ZoneListDownloadFailed = "zoneList:downloadFailed"
)

// nolint
var evtBus = EventBus.New()

func Bus() EventBus.Bus {
	return evtBus
}
