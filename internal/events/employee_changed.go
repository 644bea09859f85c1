package events

import "time"

const EmployeeChangesTopic = "hr.employee.changes.v1"

const (
	EmployeeCreated = "employee.created"
	EmployeeUpdated = "employee.updated"
	EmployeeDeleted = "employee.deleted"
)

// EmployeeChangedEvent is the payload published for every employee write.
// Fields lists the API field names touched by an update.
type EmployeeChangedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	Fields     []string  `json:"fields,omitempty"`
	Bulk       bool      `json:"bulk,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
