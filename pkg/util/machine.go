package util

import (
	"sync"

	"github.com/denisbrodbeck/machineid"
)

var (
	machineIDOnce sync.Once
	machineID     string
)

// GetMachineID returns a stable identifier of the host machine.
// Used to bind token signing keys to the machine the service runs on.
// Falls back to an empty string when the platform does not expose one.
func GetMachineID() string {
	machineIDOnce.Do(func() {
		id, err := machineid.ProtectedID("fancynote")
		if err == nil {
			machineID = id
		}
	})
	return machineID
}
