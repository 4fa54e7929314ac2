package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cwngan/cu2m-backend/internal/interfaces"
	"github.com/cwngan/cu2m-backend/internal/schemas"
)

const coursePlanColumns = "course_plan_id, user_id, name, description, favourite, updated_at"

// CoursePlanRepository reads and writes course plans. Every query filters on
// the owning user, so a plan belonging to someone else is indistinguishable
// from a missing one.
type CoursePlanRepository struct {
	db interfaces.Querier
}

func NewCoursePlanRepository(db interfaces.Querier) *CoursePlanRepository {
	return &CoursePlanRepository{db: db}
}

func scanCoursePlan(row pgx.Row) (*schemas.CoursePlan, error) {
	plan := &schemas.CoursePlan{}
	err := row.Scan(&plan.ID, &plan.UserID, &plan.Name, &plan.Description, &plan.Favourite, &plan.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return plan, nil
}

// ListByUser returns all course plans of the user, most recently updated
// first.
func (r *CoursePlanRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*schemas.CoursePlan, error) {
	query := "SELECT " + coursePlanColumns + " FROM course_plans WHERE user_id = $1 ORDER BY updated_at DESC"

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]*schemas.CoursePlan, 0)
	for rows.Next() {
		plan, err := scanCoursePlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// GetByID returns the plan if it exists and belongs to the user.
func (r *CoursePlanRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*schemas.CoursePlan, error) {
	query := "SELECT " + coursePlanColumns + " FROM course_plans WHERE course_plan_id = $1 AND user_id = $2"
	return scanCoursePlan(r.db.QueryRow(ctx, query, id, userID))
}

// Create inserts a new plan for the user. New plans are never favourites.
func (r *CoursePlanRepository) Create(ctx context.Context, userID uuid.UUID, name, description string) (*schemas.CoursePlan, error) {
	query := `INSERT INTO course_plans (user_id, name, description, favourite, updated_at)
		VALUES ($1, $2, $3, false, now())
		RETURNING ` + coursePlanColumns
	return scanCoursePlan(r.db.QueryRow(ctx, query, userID, name, description))
}

// Update patches the plan in place. Nil fields keep their current value;
// updated_at is always refreshed.
func (r *CoursePlanRepository) Update(ctx context.Context, id, userID uuid.UUID, patch *schemas.CoursePlanUpdateRequest) (*schemas.CoursePlan, error) {
	query := `UPDATE course_plans
		SET name = COALESCE($3, name),
			description = COALESCE($4, description),
			favourite = COALESCE($5, favourite),
			updated_at = now()
		WHERE course_plan_id = $1 AND user_id = $2
		RETURNING ` + coursePlanColumns
	return scanCoursePlan(r.db.QueryRow(ctx, query, id, userID, patch.Name, patch.Description, patch.Favourite))
}

// Delete removes the plan and, through the schema's cascade, all its
// semester plans. The deleted row is returned.
func (r *CoursePlanRepository) Delete(ctx context.Context, id, userID uuid.UUID) (*schemas.CoursePlan, error) {
	query := "DELETE FROM course_plans WHERE course_plan_id = $1 AND user_id = $2 RETURNING " + coursePlanColumns
	return scanCoursePlan(r.db.QueryRow(ctx, query, id, userID))
}
