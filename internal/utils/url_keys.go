package utils

const (
	// CoursePlanIdKey is the key for course plan IDs used in routing parameters.
	CoursePlanIdKey = "coursePlanId"

	// SemesterPlanIdKey is the key for semester plan IDs used in routing parameters.
	SemesterPlanIdKey = "semesterPlanId"

	// KeywordsParamKey is the key for search keywords used in query parameters.
	KeywordsParamKey = "keywords"

	// IncludesParamKey is the key for projected fields used in query parameters.
	IncludesParamKey = "includes"

	// ExcludesParamKey is the key for excluded fields used in query parameters.
	ExcludesParamKey = "excludes"

	// BasicParamKey is the key for the basic projection flag.
	BasicParamKey = "basic"

	// StrictParamKey is the key for the code-only matching flag.
	StrictParamKey = "strict"

	// PageParamKey is the key for the page number used in pagination query parameters.
	PageParamKey = "page"

	// LimitParamKey is the key for the page size used in pagination query parameters.
	LimitParamKey = "limit"
)
