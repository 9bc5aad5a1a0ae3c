package commerce

import "fmt"

// MissionType is the kind of vehicle mission a deal is evaluated for
type MissionType string

const (
	MissionTrade    MissionType = "TRADE"
	MissionDelivery MissionType = "DELIVERY"
)

// ParseMissionType parses a string into a commerce MissionType
func ParseMissionType(s string) (MissionType, error) {
	switch t := MissionType(s); t {
	case MissionTrade, MissionDelivery:
		return t, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidMissionType, s)
}

// MissionStatus is the lifecycle state of a mission
type MissionStatus string

const (
	MissionPlanning   MissionStatus = "PLANNING"
	MissionInProgress MissionStatus = "IN_PROGRESS"
	MissionCompleted  MissionStatus = "COMPLETED"
	MissionAborted    MissionStatus = "ABORTED"
)

// Mission links a starting settlement to the settlement it trades with
type Mission struct {
	ID       string
	Type     MissionType
	Starting string
	Trading  string
	Status   MissionStatus
}

// Links reports whether the mission connects a and b in either direction
func (m Mission) Links(a, b string) bool {
	return (m.Starting == a && m.Trading == b) || (m.Starting == b && m.Trading == a)
}

// IsCommerce reports whether the mission is a trade or delivery run
func (m Mission) IsCommerce() bool {
	return m.Type == MissionTrade || m.Type == MissionDelivery
}

// IsActive reports whether the mission is still underway
func (m Mission) IsActive() bool {
	return m.Status == MissionPlanning || m.Status == MissionInProgress
}
