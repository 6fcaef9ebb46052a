// Package instanceid identifies the running probe process, e.g. to ignore own messages
// received from the shared result store.
package instanceid

import (
	"github.com/google/uuid"
)

// nolint:gochecknoglobals
var instanceID = uuid.New()

// String instance id representation as string
func String() string {
	return instanceID.String()
}

// IsOwn returns true if id was created by this process
func IsOwn(id string) bool {
	return id == String()
}
