package models

// GrievanceSeverity indicates how urgent a grievance is
type GrievanceSeverity string

const (
	SeverityLow    GrievanceSeverity = "low"
	SeverityMedium GrievanceSeverity = "medium"
	SeverityHigh   GrievanceSeverity = "high"
)

// GrievanceStatus tracks where a grievance sits in its lifecycle.
// The ordering is advisory only: a caller with the right permission may set
// any status from any status, including reopening a resolved grievance.
type GrievanceStatus string

const (
	StatusSubmitted  GrievanceStatus = "submitted"
	StatusReviewing  GrievanceStatus = "reviewing"
	StatusAssigned   GrievanceStatus = "assigned"
	StatusInProgress GrievanceStatus = "in-progress"
	StatusResolved   GrievanceStatus = "resolved"
	StatusDismissed  GrievanceStatus = "dismissed"
)

// ValidSeverities lists the accepted severity values
var ValidSeverities = []GrievanceSeverity{SeverityLow, SeverityMedium, SeverityHigh}

// ValidStatuses lists the accepted status values
var ValidStatuses = []GrievanceStatus{
	StatusSubmitted,
	StatusReviewing,
	StatusAssigned,
	StatusInProgress,
	StatusResolved,
	StatusDismissed,
}

// IsValidSeverity reports whether s is an accepted severity value
func IsValidSeverity(s string) bool {
	for _, v := range ValidSeverities {
		if string(v) == s {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is an accepted status value
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if string(v) == s {
			return true
		}
	}
	return false
}
