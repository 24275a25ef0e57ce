package commitment

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined, StatusCancelled:
		return true
	default:
		return false
	}
}

// Approved, declined and cancelled are terminal: a settled commitment can
// never change again, which also makes double-approval structurally
// impossible.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusDeclined || s == StatusCancelled
}

func (s Status) CanTransitionTo(target Status) bool {
	return s == StatusPending && target.IsValid() && target != StatusPending
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
