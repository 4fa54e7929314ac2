package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cwngan/cu2m-backend/internal/managers"
	"github.com/cwngan/cu2m-backend/internal/repositories"
	"github.com/cwngan/cu2m-backend/internal/schemas"
	"github.com/cwngan/cu2m-backend/internal/utils"
)

type CourseHdl interface {
	SearchCourses(c *gin.Context)
}

type CourseHandler struct {
	databaseManager managers.DatabaseMgr
}

func NewCourseHandler(databaseManager managers.DatabaseMgr) CourseHdl {
	return &CourseHandler{databaseManager: databaseManager}
}

// courseAttributes maps the projectable course fields, in their canonical
// order, to their table columns. Lookup keys are lowercased with underscores
// stripped so both camelCase and snake_case spellings work.
var courseAttributes = []struct {
	name   string
	column string
}{
	{"code", "code"},
	{"title", "title"},
	{"description", "description"},
	{"units", "units"},
	{"prerequisites", "prerequisites"},
	{"corequisites", "corequisites"},
	{"notformajor", "not_for_major"},
	{"notfortaken", "not_for_taken"},
	{"isgraded", "is_graded"},
	{"original", "original"},
	{"parsed", "parsed"},
}

var basicAttributes = map[string]bool{"code": true, "title": true, "units": true}

func normalizeAttribute(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "")
}

func attributeSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[normalizeAttribute(name)] = true
	}
	return set
}

// parseFlag reads an optional boolean query parameter. Anything other than
// "true" or "false" (case-insensitive) is rejected.
func parseFlag(c *gin.Context, key string) (value, ok bool) {
	raw := strings.ToLower(c.Query(key))
	switch raw {
	case "":
		return false, true
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest,
			errors.New(key+" flag must be true or false"))
		return false, false
	}
}

// parsePositiveInt reads a pagination parameter: digits only, positive and
// below 2^31.
func parsePositiveInt(c *gin.Context, key, fallback string) (int, bool) {
	raw := c.DefaultQuery(key, fallback)
	for _, r := range raw {
		if r < '0' || r > '9' {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest,
				errors.New(key+" must be a positive integer"))
			return 0, false
		}
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 || value >= 1<<31 {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest,
			errors.New(key+" is out of range"))
		return 0, false
	}
	return value, true
}

// projectedColumns resolves the basic flag and the includes/excludes lists
// into the table columns to select. Unknown attribute names are ignored.
func projectedColumns(c *gin.Context, basic bool) ([]string, bool) {
	includes := c.QueryArray(utils.IncludesParamKey)
	excludes := c.QueryArray(utils.ExcludesParamKey)

	if len(includes) > 0 && len(excludes) > 0 {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest,
			errors.New("includes and excludes cannot be combined"))
		return nil, false
	}

	columns := make([]string, 0, len(courseAttributes))
	switch {
	case basic:
		for _, attr := range courseAttributes {
			if basicAttributes[attr.name] {
				columns = append(columns, attr.column)
			}
		}
	case len(includes) > 0:
		wanted := attributeSet(includes)
		for _, attr := range courseAttributes {
			if wanted[attr.name] {
				columns = append(columns, attr.column)
			}
		}
	case len(excludes) > 0:
		dropped := attributeSet(excludes)
		for _, attr := range courseAttributes {
			if !dropped[attr.name] {
				columns = append(columns, attr.column)
			}
		}
		if len(columns) == 0 {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest,
				errors.New("cannot exclude all attributes"))
			return nil, false
		}
	default:
		for _, attr := range courseAttributes {
			columns = append(columns, attr.column)
		}
	}
	return columns, true
}

// SearchCourses serves the catalog search. Without keywords it pages through
// the whole catalog in code order.
func (handler *CourseHandler) SearchCourses(c *gin.Context) {
	basic, ok := parseFlag(c, utils.BasicParamKey)
	if !ok {
		return
	}
	strict, ok := parseFlag(c, utils.StrictParamKey)
	if !ok {
		return
	}
	page, ok := parsePositiveInt(c, utils.PageParamKey, "1")
	if !ok {
		return
	}
	limit, ok := parsePositiveInt(c, utils.LimitParamKey, "100")
	if !ok {
		return
	}
	columns, ok := projectedColumns(c, basic)
	if !ok {
		return
	}

	keywords := make([]string, 0)
	for _, keyword := range c.QueryArray(utils.KeywordsParamKey) {
		if keyword != "" {
			keywords = append(keywords, keyword)
		}
	}

	courseRepo := repositories.NewCourseRepository(handler.databaseManager.GetPool())
	courses, total, err := courseRepo.Search(c.Request.Context(), &repositories.CourseSearchParams{
		Keywords: keywords,
		Columns:  columns,
		Strict:   strict,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.PaginatedResponse{
		Records:    courses,
		Pagination: schemas.Pagination{Page: page, Limit: limit, Records: total},
	}, http.StatusOK)
}
