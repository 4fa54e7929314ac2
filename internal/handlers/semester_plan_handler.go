package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cwngan/cu2m-backend/internal/managers"
	"github.com/cwngan/cu2m-backend/internal/repositories"
	"github.com/cwngan/cu2m-backend/internal/schemas"
	"github.com/cwngan/cu2m-backend/internal/utils"
)

type SemesterPlanHdl interface {
	ListSemesterPlans(c *gin.Context)
	GetSemesterPlan(c *gin.Context)
	CreateSemesterPlan(c *gin.Context)
	UpdateSemesterPlan(c *gin.Context)
	DeleteSemesterPlan(c *gin.Context)
}

type SemesterPlanHandler struct {
	databaseManager managers.DatabaseMgr
}

func NewSemesterPlanHandler(databaseManager managers.DatabaseMgr) SemesterPlanHdl {
	return &SemesterPlanHandler{databaseManager: databaseManager}
}

// semesterPlanID parses the route's semester plan ID. A malformed ID is
// reported as not found, the same as an ID that belongs to someone else.
func semesterPlanID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(utils.SemesterPlanIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
		return uuid.Nil, false
	}
	return id, true
}

// ListSemesterPlans returns all semester plans of one of the caller's course
// plans, in chronological order.
func (handler *SemesterPlanHandler) ListSemesterPlans(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	coursePlanID, err := uuid.Parse(c.Param(utils.CoursePlanIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.MalformedID, http.StatusBadRequest, err)
		return
	}

	planRepo := repositories.NewSemesterPlanRepository(handler.databaseManager.GetPool())
	plans, err := planRepo.ListByCoursePlan(c.Request.Context(), coursePlanID, user.ID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]*schemas.SemesterPlanDTO, 0, len(plans))
	for _, plan := range plans {
		dtos = append(dtos, schemas.NewSemesterPlanDTO(plan))
	}
	utils.WriteAndLogResponse(c, dtos, http.StatusOK)
}

// GetSemesterPlan returns a semester plan inside one of the caller's course
// plans.
func (handler *SemesterPlanHandler) GetSemesterPlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := semesterPlanID(c)
	if !ok {
		return
	}

	planRepo := repositories.NewSemesterPlanRepository(handler.databaseManager.GetPool())
	plan, err := planRepo.GetByID(c.Request.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, schemas.NewSemesterPlanDTO(plan), http.StatusOK)
}

// CreateSemesterPlan creates an empty semester plan inside one of the
// caller's course plans. Each (semester, year) slot exists at most once per
// course plan.
func (handler *SemesterPlanHandler) CreateSemesterPlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	request := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.SemesterPlanCreateRequest)

	coursePlanID, err := uuid.Parse(request.CoursePlanID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
		return
	}

	planRepo := repositories.NewSemesterPlanRepository(handler.databaseManager.GetPool())
	plan, err := planRepo.Create(c.Request.Context(), coursePlanID, user.ID, request.Semester, request.Year)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
		case errors.Is(err, repositories.ErrDuplicateKey):
			utils.WriteAndLogError(c, schemas.SemesterPlanConflict, http.StatusConflict, err)
		default:
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		}
		return
	}

	utils.WriteAndLogResponse(c, schemas.NewSemesterPlanDTO(plan), http.StatusCreated)
}

// UpdateSemesterPlan patches a semester plan. Moving it into an occupied
// (semester, year) slot is a conflict.
func (handler *SemesterPlanHandler) UpdateSemesterPlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := semesterPlanID(c)
	if !ok {
		return
	}
	request := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.SemesterPlanUpdateRequest)

	planRepo := repositories.NewSemesterPlanRepository(handler.databaseManager.GetPool())
	plan, err := planRepo.Update(c.Request.Context(), id, user.ID, request)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
		case errors.Is(err, repositories.ErrDuplicateKey):
			utils.WriteAndLogError(c, schemas.SemesterPlanConflict, http.StatusConflict, err)
		default:
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		}
		return
	}

	utils.WriteAndLogResponse(c, schemas.NewSemesterPlanDTO(plan), http.StatusOK)
}

// DeleteSemesterPlan removes a semester plan from one of the caller's course
// plans.
func (handler *SemesterPlanHandler) DeleteSemesterPlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := semesterPlanID(c)
	if !ok {
		return
	}

	planRepo := repositories.NewSemesterPlanRepository(handler.databaseManager.GetPool())
	plan, err := planRepo.Delete(c.Request.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, schemas.NewSemesterPlanDTO(plan), http.StatusOK)
}
