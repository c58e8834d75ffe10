// internal/models/department.go
package models

// Department identifies which service desk handles a guest message.
type Department string

const (
	DepartmentReceptionist Department = "receptionist"
	DepartmentRestaurant   Department = "restaurant"
	DepartmentRoomService  Department = "room_service"

	// DepartmentMulti marks a combined response assembled by the
	// orchestrator. Individual agents never return it.
	DepartmentMulti Department = "multi"
)

// KnownDepartment reports whether label names one of the three real
// departments. The multi label is synthetic and deliberately excluded.
func KnownDepartment(label string) bool {
	switch Department(label) {
	case DepartmentReceptionist, DepartmentRestaurant, DepartmentRoomService:
		return true
	}
	return false
}

// IntentVector holds the three independent department intents detected in a
// single message. The bits are not mutually exclusive.
type IntentVector struct {
	Restaurant   bool `json:"restaurant"`
	RoomService  bool `json:"room_service"`
	Receptionist bool `json:"receptionist"`
}

// Count returns how many intents are set.
func (v IntentVector) Count() int {
	n := 0
	if v.Restaurant {
		n++
	}
	if v.RoomService {
		n++
	}
	if v.Receptionist {
		n++
	}
	return n
}
