// Package schemas defines the data structures shared between the database
// layer, the handlers and the wire format.
package schemas

import (
	"time"

	"github.com/google/uuid"
)

// EpochZero is the sentinel "not yet activated" timestamp stored on
// pre-created users. A user is either pre-created or activated, never in
// between.
var EpochZero = time.Unix(0, 0).UTC()

// User represents a row of the users table. Pre-created rows carry only the
// email and the license key hash; the remaining fields are filled in by the
// activation flow.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Username       *string    `json:"username"`
	FirstName      *string    `json:"firstName"`
	LastName       *string    `json:"lastName"`
	Major          *string    `json:"major"`
	PasswordHash   string     `json:"-"`
	LicenseKeyHash string     `json:"-"`
	ActivatedAt    time.Time  `json:"activatedAt"`
	LastLogin      *time.Time `json:"lastLogin"`
}

// Activated reports whether the user has completed the signup flow.
func (u *User) Activated() bool {
	return !u.ActivatedAt.IsZero() && !u.ActivatedAt.Equal(EpochZero)
}

// ResetToken represents a row of the reset_tokens table. At most one live
// token exists per username; requesting a new one replaces it.
type ResetToken struct {
	Username  string    `json:"username"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ResetTokenTTL bounds how long a password reset token stays usable.
const ResetTokenTTL = 10 * time.Minute

// Course represents a row of the immutable course catalog.
type Course struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Units         float64   `json:"units"`
	Prerequisites string    `json:"prerequisites"`
	Corequisites  string    `json:"corequisites"`
	NotForMajor   string    `json:"notForMajor"`
	NotForTaken   string    `json:"notForTaken"`
	IsGraded      bool      `json:"isGraded"`
	Original      string    `json:"original"`
	Parsed        bool      `json:"parsed"`
}

// CoursePlan represents a row of the course_plans table, owned by exactly
// one user.
type CoursePlan struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Favourite   bool      `json:"favourite"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SemesterPlan represents a row of the semester_plans table. The tuple
// (course_plan_id, semester, year) is unique.
type SemesterPlan struct {
	ID           uuid.UUID `json:"id"`
	CoursePlanID uuid.UUID `json:"coursePlanId"`
	Semester     int       `json:"semester"`
	Year         int       `json:"year"`
	Courses      []string  `json:"courses"`
	CreatedAt    time.Time `json:"createdAt"`
}
