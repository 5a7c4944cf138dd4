package reconcile

// Entities and actions recorded by markers.
const (
	EntityAccount  = "account"
	EntityEmployee = "employee"

	ActionOrphaned     = "orphaned"
	ActionDeleteFailed = "delete_failed"
	ActionEmailDrift   = "email_drift"
)

// Recorder persists a marker whenever a mutation that spans the identity store
// and the employee table partially fails. The marker is the explicit trail an
// operator reconciles from, instead of the two stores drifting silently.
type Recorder interface {
	Record(entity, entityRef, action, detail string) error
}
