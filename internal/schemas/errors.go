package schemas

// CustomError is the wire format for every error the API returns.
// Code is stable and machine-readable, Message is for humans.
type CustomError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorDTO wraps a CustomError for the response body.
type ErrorDTO struct {
	Error CustomError `json:"error"`
}

var (
	BadRequest = &CustomError{
		Code:    "ERR-001",
		Message: "The request body is invalid. Please check the request body and try again.",
	}
	Unauthorized = &CustomError{
		Code:    "ERR-002",
		Message: "Please log in to access this resource.",
	}
	NotFound = &CustomError{
		Code:    "ERR-003",
		Message: "The requested resource was not found.",
	}
	InternalServerError = &CustomError{
		Code:    "ERR-004",
		Message: "An internal server error occurred. Please try again later.",
	}
	DatabaseError = &CustomError{
		Code:    "ERR-005",
		Message: "A database error occurred. Please try again later.",
	}

	InvalidCredentials = &CustomError{
		Code:    "ERR-010",
		Message: "Invalid username or password.",
	}
	PreRegistrationNotFound = &CustomError{
		Code:    "ERR-011",
		Message: "Pre-registration not found.",
	}
	InvalidLicenseKey = &CustomError{
		Code:    "ERR-012",
		Message: "Invalid license key.",
	}
	UsernameTaken = &CustomError{
		Code:    "ERR-013",
		Message: "The username is already taken. Please try another username.",
	}
	EmailTaken = &CustomError{
		Code:    "ERR-014",
		Message: "A user with this email already exists.",
	}
	InvalidResetToken = &CustomError{
		Code:    "ERR-015",
		Message: "Invalid reset token.",
	}

	MalformedID = &CustomError{
		Code:    "ERR-020",
		Message: "The given ID is malformed.",
	}
	SemesterPlanConflict = &CustomError{
		Code:    "ERR-021",
		Message: "A semester plan with the same semester and year already exists.",
	}
	EmailNotSent = &CustomError{
		Code:    "ERR-022",
		Message: "The email could not be sent. Please try again later.",
	}
)
