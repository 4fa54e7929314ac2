package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cwngan/cu2m-backend/internal/interfaces"
	"github.com/cwngan/cu2m-backend/internal/schemas"
)

// SemesterPlanRepository reads and writes semester plans. Ownership is
// resolved through the parent course plan, so every statement joins
// course_plans on the caller's user id.
type SemesterPlanRepository struct {
	db interfaces.Querier
}

func NewSemesterPlanRepository(db interfaces.Querier) *SemesterPlanRepository {
	return &SemesterPlanRepository{db: db}
}

func scanSemesterPlan(row pgx.Row) (*schemas.SemesterPlan, error) {
	plan := &schemas.SemesterPlan{}
	err := row.Scan(&plan.ID, &plan.CoursePlanID, &plan.Semester, &plan.Year, &plan.Courses, &plan.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return plan, nil
}

// GetByID returns the plan if its parent course plan belongs to the user.
func (r *SemesterPlanRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*schemas.SemesterPlan, error) {
	query := `SELECT sp.semester_plan_id, sp.course_plan_id, sp.semester, sp.year, sp.courses, sp.created_at
		FROM semester_plans sp
		JOIN course_plans cp ON cp.course_plan_id = sp.course_plan_id
		WHERE sp.semester_plan_id = $1 AND cp.user_id = $2`
	return scanSemesterPlan(r.db.QueryRow(ctx, query, id, userID))
}

// ListByCoursePlan returns all semester plans of one of the user's course
// plans, oldest semester first.
func (r *SemesterPlanRepository) ListByCoursePlan(ctx context.Context, coursePlanID, userID uuid.UUID) ([]*schemas.SemesterPlan, error) {
	query := `SELECT sp.semester_plan_id, sp.course_plan_id, sp.semester, sp.year, sp.courses, sp.created_at
		FROM semester_plans sp
		JOIN course_plans cp ON cp.course_plan_id = sp.course_plan_id
		WHERE sp.course_plan_id = $1 AND cp.user_id = $2
		ORDER BY sp.year, sp.semester`

	rows, err := r.db.Query(ctx, query, coursePlanID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]*schemas.SemesterPlan, 0)
	for rows.Next() {
		plan, err := scanSemesterPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// Create inserts an empty semester plan into one of the user's course plans.
// ErrNotFound means the course plan does not exist or is not theirs;
// ErrDuplicateKey means the (course plan, semester, year) slot is taken.
func (r *SemesterPlanRepository) Create(ctx context.Context, coursePlanID, userID uuid.UUID, semester, year int) (*schemas.SemesterPlan, error) {
	query := `INSERT INTO semester_plans (course_plan_id, semester, year, courses, created_at)
		SELECT $1, $2, $3, '{}', now()
		WHERE EXISTS (SELECT 1 FROM course_plans WHERE course_plan_id = $1 AND user_id = $4)
		RETURNING semester_plan_id, course_plan_id, semester, year, courses, created_at`

	plan, err := scanSemesterPlan(r.db.QueryRow(ctx, query, coursePlanID, semester, year, userID))
	if err != nil && isUniqueViolation(err) {
		return nil, ErrDuplicateKey
	}
	return plan, err
}

// Update patches the plan. Nil fields keep their current value. Moving the
// plan into an occupied (semester, year) slot surfaces as ErrDuplicateKey.
func (r *SemesterPlanRepository) Update(ctx context.Context, id, userID uuid.UUID, patch *schemas.SemesterPlanUpdateRequest) (*schemas.SemesterPlan, error) {
	query := `UPDATE semester_plans sp
		SET semester = COALESCE($3, sp.semester),
			year = COALESCE($4, sp.year),
			courses = COALESCE($5, sp.courses)
		FROM course_plans cp
		WHERE sp.semester_plan_id = $1 AND sp.course_plan_id = cp.course_plan_id AND cp.user_id = $2
		RETURNING sp.semester_plan_id, sp.course_plan_id, sp.semester, sp.year, sp.courses, sp.created_at`

	plan, err := scanSemesterPlan(r.db.QueryRow(ctx, query, id, userID, patch.Semester, patch.Year, patch.Courses))
	if err != nil && isUniqueViolation(err) {
		return nil, ErrDuplicateKey
	}
	return plan, err
}

// Delete removes the plan and returns the deleted row.
func (r *SemesterPlanRepository) Delete(ctx context.Context, id, userID uuid.UUID) (*schemas.SemesterPlan, error) {
	query := `DELETE FROM semester_plans sp
		USING course_plans cp
		WHERE sp.semester_plan_id = $1 AND sp.course_plan_id = cp.course_plan_id AND cp.user_id = $2
		RETURNING sp.semester_plan_id, sp.course_plan_id, sp.semester, sp.year, sp.courses, sp.created_at`
	return scanSemesterPlan(r.db.QueryRow(ctx, query, id, userID))
}
