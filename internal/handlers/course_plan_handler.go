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

type CoursePlanHdl interface {
	ListCoursePlans(c *gin.Context)
	GetCoursePlan(c *gin.Context)
	CreateCoursePlan(c *gin.Context)
	UpdateCoursePlan(c *gin.Context)
	DeleteCoursePlan(c *gin.Context)
}

type CoursePlanHandler struct {
	databaseManager managers.DatabaseMgr
}

func NewCoursePlanHandler(databaseManager managers.DatabaseMgr) CoursePlanHdl {
	return &CoursePlanHandler{databaseManager: databaseManager}
}

// coursePlanID parses the route's course plan ID, reporting a 400 on
// malformed input.
func coursePlanID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(utils.CoursePlanIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.MalformedID, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}

// ListCoursePlans returns all of the caller's course plans.
func (handler *CoursePlanHandler) ListCoursePlans(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	planRepo := repositories.NewCoursePlanRepository(handler.databaseManager.GetPool())
	plans, err := planRepo.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]*schemas.CoursePlanDTO, 0, len(plans))
	for _, plan := range plans {
		dtos = append(dtos, schemas.NewCoursePlanDTO(plan))
	}
	utils.WriteAndLogResponse(c, dtos, http.StatusOK)
}

// GetCoursePlan returns one of the caller's course plans.
func (handler *CoursePlanHandler) GetCoursePlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := coursePlanID(c)
	if !ok {
		return
	}

	planRepo := repositories.NewCoursePlanRepository(handler.databaseManager.GetPool())
	plan, err := planRepo.GetByID(c.Request.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, schemas.NewCoursePlanDTO(plan), http.StatusOK)
}

// CreateCoursePlan creates a new course plan owned by the caller.
func (handler *CoursePlanHandler) CreateCoursePlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	request := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.CoursePlanCreateRequest)

	planRepo := repositories.NewCoursePlanRepository(handler.databaseManager.GetPool())
	plan, err := planRepo.Create(c.Request.Context(), user.ID, request.Name, request.Description)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, schemas.NewCoursePlanDTO(plan), http.StatusCreated)
}

// UpdateCoursePlan patches one of the caller's course plans. Fields absent
// from the body keep their current value.
func (handler *CoursePlanHandler) UpdateCoursePlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := coursePlanID(c)
	if !ok {
		return
	}
	request := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.CoursePlanUpdateRequest)

	planRepo := repositories.NewCoursePlanRepository(handler.databaseManager.GetPool())
	plan, err := planRepo.Update(c.Request.Context(), id, user.ID, request)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, schemas.NewCoursePlanDTO(plan), http.StatusOK)
}

// DeleteCoursePlan deletes one of the caller's course plans and all of its
// semester plans.
func (handler *CoursePlanHandler) DeleteCoursePlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := coursePlanID(c)
	if !ok {
		return
	}

	planRepo := repositories.NewCoursePlanRepository(handler.databaseManager.GetPool())
	plan, err := planRepo.Delete(c.Request.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, schemas.NewCoursePlanDTO(plan), http.StatusOK)
}
