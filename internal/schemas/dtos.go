package schemas

import (
	"time"

	"github.com/google/uuid"
)

// MetadataDTO is returned by the root route.
type MetadataDTO struct {
	ApiVersion string `json:"apiVersion"`
	ApiName    string `json:"apiName"`
}

// HealthDTO is returned by the health route.
type HealthDTO struct {
	Server bool `json:"server"`
	DB     bool `json:"db"`
}

// UserDTO is the public view of a user. It never carries the password or
// license key hashes.
type UserDTO struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Major     string     `json:"major"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// NewUserDTO builds the public view of an activated user.
func NewUserDTO(user *User) *UserDTO {
	dto := &UserDTO{
		Email:     user.Email,
		LastLogin: user.LastLogin,
	}
	if user.Username != nil {
		dto.Username = *user.Username
	}
	if user.FirstName != nil {
		dto.FirstName = *user.FirstName
	}
	if user.LastName != nil {
		dto.LastName = *user.LastName
	}
	if user.Major != nil {
		dto.Major = *user.Major
	}
	return dto
}

// CourseDTO is a projected course record. Excluded fields are nil and
// omitted from the JSON encoding; the ID is always populated.
type CourseDTO struct {
	ID            uuid.UUID `json:"id"`
	Code          *string   `json:"code,omitempty"`
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Units         *float64  `json:"units,omitempty"`
	Prerequisites *string   `json:"prerequisites,omitempty"`
	Corequisites  *string   `json:"corequisites,omitempty"`
	NotForMajor   *string   `json:"notForMajor,omitempty"`
	NotForTaken   *string   `json:"notForTaken,omitempty"`
	IsGraded      *bool     `json:"isGraded,omitempty"`
	Original      *string   `json:"original,omitempty"`
	Parsed        *bool     `json:"parsed,omitempty"`
}

// CoursePlanDTO is the wire form of a course plan.
type CoursePlanDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Favourite   bool      `json:"favourite"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewCoursePlanDTO converts a course plan row to its wire form.
func NewCoursePlanDTO(plan *CoursePlan) *CoursePlanDTO {
	return &CoursePlanDTO{
		ID:          plan.ID,
		Name:        plan.Name,
		Description: plan.Description,
		Favourite:   plan.Favourite,
		UpdatedAt:   plan.UpdatedAt,
	}
}

// SemesterPlanDTO is the wire form of a semester plan.
type SemesterPlanDTO struct {
	ID           uuid.UUID `json:"id"`
	CoursePlanID uuid.UUID `json:"coursePlanId"`
	Semester     int       `json:"semester"`
	Year         int       `json:"year"`
	Courses      []string  `json:"courses"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewSemesterPlanDTO converts a semester plan row to its wire form.
func NewSemesterPlanDTO(plan *SemesterPlan) *SemesterPlanDTO {
	courses := plan.Courses
	if courses == nil {
		courses = []string{}
	}
	return &SemesterPlanDTO{
		ID:           plan.ID,
		CoursePlanID: plan.CoursePlanID,
		Semester:     plan.Semester,
		Year:         plan.Year,
		Courses:      courses,
		CreatedAt:    plan.CreatedAt,
	}
}

// PaginatedResponse wraps a page of records together with its pagination
// details.
type PaginatedResponse struct {
	Records    interface{} `json:"records"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination describes the page that was returned and the total record
// count, which is enough to compute any subsequent page.
type Pagination struct {
	Page    int `json:"page"`
	Limit   int `json:"limit"`
	Records int `json:"records"`
}
