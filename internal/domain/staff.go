package domain

import (
	"context"
	"time"
)

// ModeratorAssignment links an activity to its single moderator.
// swagger:model ModeratorAssignment
type ModeratorAssignment struct {
	ActivityID  string    `json:"activity_id"`
	ModeratorID string    `json:"moderator_id"`
	AssignedAt  time.Time `json:"assigned_at"`
}

// JuryAssignment links an activity to one of its jurors.
// swagger:model JuryAssignment
type JuryAssignment struct {
	ActivityID string    `json:"activity_id"`
	JuryID     string    `json:"jury_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// StaffRepository stores moderator and jury assignments.
type StaffRepository interface {
	// AssignModerator returns ErrHasModerator when the activity already has one.
	AssignModerator(ctx context.Context, a *ModeratorAssignment) error
	// ListNotModeratedBy lists the event's activities the moderator is not assigned to.
	ListNotModeratedBy(ctx context.Context, eventID, moderatorID string) ([]*Activity, error)
	// AddJury returns ErrAlreadyAssigned when the pair exists.
	AddJury(ctx context.Context, a *JuryAssignment) error
	// RemoveJury returns ErrNotFound when the pair does not exist.
	RemoveJury(ctx context.Context, activityID, juryID string) error
	ListNotJudgedBy(ctx context.Context, eventID, juryID string) ([]*Activity, error)
	ListJudgedBy(ctx context.Context, eventID, juryID string) ([]*Activity, error)
	CountJury(ctx context.Context, activityID string) (int, error)
	// ActivitiesWithJury returns the subset of activityIDs that have at least one juror.
	ActivitiesWithJury(ctx context.Context, activityIDs []string) (map[string]bool, error)
}

// StaffService implements moderator and jury self-assignment.
type StaffService interface {
	AvailableForModeration(ctx context.Context, moderatorID, eventID string) ([]*Activity, error)
	AssignModerator(ctx context.Context, moderatorID, activityID string) (*ModeratorAssignment, error)
	AvailableForJury(ctx context.Context, juryID, eventID string) ([]*Activity, error)
	MyJuryActivities(ctx context.Context, juryID, eventID string) ([]*Activity, error)
	JoinJury(ctx context.Context, juryID, activityID string) (*JuryAssignment, error)
	LeaveJury(ctx context.Context, juryID, activityID string) error
}
