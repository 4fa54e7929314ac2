// Package schemas defines the request structures for the API surface.
package schemas

// SignupRequest exchanges a license key for an activated account.
// Username is required and must match the username charset
// First and last name must match the name charset
// LicenseKey is the one-time secret issued out-of-band
type SignupRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Username   string `json:"username" validate:"required,max=20,username_validation"`
	FirstName  string `json:"firstName" validate:"required,max=35,name_validation"`
	LastName   string `json:"lastName" validate:"required,max=35,name_validation"`
	Major      string `json:"major" validate:"required,max=64"`
	Password   string `json:"password" validate:"required,min=8,password_validation"`
	LicenseKey string `json:"licenseKey" validate:"required,max=64"`
}

// LoginRequest authenticates an activated user.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=20,username_validation"`
	Password string `json:"password" validate:"required,min=8"`
}

// ForgotPasswordRequest asks for a reset token to be mailed out.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyTokenRequest checks a reset token without consuming it.
type VerifyTokenRequest struct {
	Username string `json:"username" validate:"required,max=20,username_validation"`
	Token    string `json:"token" validate:"required,max=64"`
}

// ResetPasswordRequest consumes a reset token and sets a new password.
type ResetPasswordRequest struct {
	Username string `json:"username" validate:"required,max=20,username_validation"`
	Token    string `json:"token" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=8,password_validation"`
}

// CoursePlanCreateRequest creates a new course plan for the caller.
type CoursePlanCreateRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=500"`
}

// CoursePlanUpdateRequest patches a course plan. Nil fields are untouched.
type CoursePlanUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Favourite   *bool   `json:"favourite"`
}

// SemesterPlanCreateRequest creates a semester plan inside one of the
// caller's course plans. Semester is domain-constrained to {1,2,3}.
type SemesterPlanCreateRequest struct {
	CoursePlanID string `json:"coursePlanId" validate:"required"`
	Semester     int    `json:"semester" validate:"required,oneof=1 2 3"`
	Year         int    `json:"year" validate:"required,gte=1900,lte=2200"`
}

// SemesterPlanUpdateRequest replaces the mutable parts of a semester plan.
// Nil fields are untouched.
type SemesterPlanUpdateRequest struct {
	Semester *int      `json:"semester" validate:"omitempty,oneof=1 2 3"`
	Year     *int      `json:"year" validate:"omitempty,gte=1900,lte=2200"`
	Courses  *[]string `json:"courses" validate:"omitempty,dive,max=16"`
}
