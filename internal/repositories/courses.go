package repositories

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/cwngan/cu2m-backend/internal/interfaces"
	"github.com/cwngan/cu2m-backend/internal/schemas"
)

// CourseSearchParams carries a validated catalog query. Columns holds the
// projected table columns, id excluded; Page is 1-based.
type CourseSearchParams struct {
	Keywords []string
	Columns  []string
	Strict   bool
	Page     int
	Limit    int
}

// CourseRepository serves the read-only course catalog and the bulk
// operations the dataset sync needs.
type CourseRepository struct {
	db interfaces.Querier
}

func NewCourseRepository(db interfaces.Querier) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) WithTx(tx pgx.Tx) *CourseRepository {
	return &CourseRepository{db: tx}
}

// codePrefixPattern builds a case-insensitive regex matching any course code
// that starts with one of the keywords.
func codePrefixPattern(keywords []string) string {
	quoted := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		quoted = append(quoted, regexp.QuoteMeta(keyword))
	}
	return "^(" + strings.Join(quoted, "|") + ")"
}

// Search runs a paginated catalog query and returns the page plus the total
// match count. Without keywords the whole catalog pages through in code
// order. Strict mode matches course codes by keyword prefix only; otherwise
// code-prefix matches rank above full-text matches, which rank by relevance.
func (r *CourseRepository) Search(ctx context.Context, params *CourseSearchParams) ([]*schemas.CourseDTO, int, error) {
	projection := "course_id"
	if len(params.Columns) > 0 {
		projection += ", " + strings.Join(params.Columns, ", ")
	}
	offset := (params.Page - 1) * params.Limit

	var dataQuery, countQuery string
	var dataArgs, countArgs []interface{}

	switch {
	case len(params.Keywords) == 0:
		dataQuery = "SELECT " + projection + " FROM courses ORDER BY code OFFSET $1 LIMIT $2"
		dataArgs = []interface{}{offset, params.Limit}
		countQuery = "SELECT COUNT(*) FROM courses"
	case params.Strict:
		pattern := codePrefixPattern(params.Keywords)
		dataQuery = "SELECT " + projection + " FROM courses WHERE code ~* $1 ORDER BY code OFFSET $2 LIMIT $3"
		dataArgs = []interface{}{pattern, offset, params.Limit}
		countQuery = "SELECT COUNT(*) FROM courses WHERE code ~* $1"
		countArgs = []interface{}{pattern}
	default:
		pattern := codePrefixPattern(params.Keywords)
		search := strings.Join(params.Keywords, " ")
		dataQuery = "SELECT " + projection + ` FROM courses
			WHERE code ~* $1 OR search_vector @@ plainto_tsquery('english', $2)
			ORDER BY (code ~* $1) DESC, ts_rank(search_vector, plainto_tsquery('english', $2)) DESC, code
			OFFSET $3 LIMIT $4`
		dataArgs = []interface{}{pattern, search, offset, params.Limit}
		countQuery = "SELECT COUNT(*) FROM courses WHERE code ~* $1 OR search_vector @@ plainto_tsquery('english', $2)"
		countArgs = []interface{}{pattern, search}
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, dataQuery, dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	courses := make([]*schemas.CourseDTO, 0)
	for rows.Next() {
		course, err := scanCourseDTO(rows, params.Columns)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, course)
	}
	return courses, total, rows.Err()
}

func scanCourseDTO(rows pgx.Rows, columns []string) (*schemas.CourseDTO, error) {
	course := &schemas.CourseDTO{}
	dests := make([]interface{}, 0, len(columns)+1)
	dests = append(dests, &course.ID)

	for _, column := range columns {
		switch column {
		case "code":
			course.Code = new(string)
			dests = append(dests, course.Code)
		case "title":
			course.Title = new(string)
			dests = append(dests, course.Title)
		case "description":
			course.Description = new(string)
			dests = append(dests, course.Description)
		case "units":
			course.Units = new(float64)
			dests = append(dests, course.Units)
		case "prerequisites":
			course.Prerequisites = new(string)
			dests = append(dests, course.Prerequisites)
		case "corequisites":
			course.Corequisites = new(string)
			dests = append(dests, course.Corequisites)
		case "not_for_major":
			course.NotForMajor = new(string)
			dests = append(dests, course.NotForMajor)
		case "not_for_taken":
			course.NotForTaken = new(string)
			dests = append(dests, course.NotForTaken)
		case "is_graded":
			course.IsGraded = new(bool)
			dests = append(dests, course.IsGraded)
		case "original":
			course.Original = new(string)
			dests = append(dests, course.Original)
		case "parsed":
			course.Parsed = new(bool)
			dests = append(dests, course.Parsed)
		default:
			return nil, errors.New("unknown course column: " + column)
		}
	}

	return course, rows.Scan(dests...)
}

// DeleteAll wipes the catalog. Only the dataset sync calls this, inside a
// transaction that refills the table before committing.
func (r *CourseRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "DELETE FROM courses")
	return err
}

// BulkInsert loads courses through the Postgres COPY protocol.
func (r *CourseRepository) BulkInsert(ctx context.Context, courses []*schemas.Course) (int64, error) {
	columns := []string{"code", "title", "description", "units", "prerequisites",
		"corequisites", "not_for_major", "not_for_taken", "is_graded", "original", "parsed"}

	return r.db.CopyFrom(ctx, pgx.Identifier{"courses"}, columns,
		pgx.CopyFromSlice(len(courses), func(i int) ([]interface{}, error) {
			c := courses[i]
			return []interface{}{c.Code, c.Title, c.Description, c.Units, c.Prerequisites,
				c.Corequisites, c.NotForMajor, c.NotForTaken, c.IsGraded, c.Original, c.Parsed}, nil
		}))
}

// GetDatasetVersion returns the version of the currently loaded course
// dataset, or 0 when none has been loaded yet.
func (r *CourseRepository) GetDatasetVersion(ctx context.Context) (int, error) {
	var value string
	err := r.db.QueryRow(ctx, "SELECT value FROM config WHERE key = 'course_dataset_version'").Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return strconv.Atoi(value)
}

// SetDatasetVersion records the version of the loaded course dataset.
func (r *CourseRepository) SetDatasetVersion(ctx context.Context, version int) error {
	query := `INSERT INTO config (key, value) VALUES ('course_dataset_version', $1)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	_, err := r.db.Exec(ctx, query, strconv.Itoa(version))
	return err
}
