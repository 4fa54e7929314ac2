// Package handlers implements the HTTP surface. Handlers pull validated
// payloads from the gin context, talk to the repositories and translate
// repository errors into the error catalog.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cwngan/cu2m-backend/internal/managers"
	"github.com/cwngan/cu2m-backend/internal/repositories"
	"github.com/cwngan/cu2m-backend/internal/schemas"
	"github.com/cwngan/cu2m-backend/internal/utils"
)

type UserHdl interface {
	Signup(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	GetMe(c *gin.Context)
	ForgotPassword(c *gin.Context)
	VerifyToken(c *gin.Context)
	ResetPassword(c *gin.Context)
}

type UserHandler struct {
	databaseManager managers.DatabaseMgr
	sessionManager  managers.SessionMgr
	mailManager     managers.MailMgr
}

func NewUserHandler(databaseManager managers.DatabaseMgr, sessionManager managers.SessionMgr, mailManager managers.MailMgr) UserHdl {
	return &UserHandler{
		databaseManager: databaseManager,
		sessionManager:  sessionManager,
		mailManager:     mailManager,
	}
}

// currentUser returns the user the auth guard resolved for this request.
func currentUser(c *gin.Context) (*schemas.User, bool) {
	user, ok := c.Value(utils.UserKey.String()).(*schemas.User)
	if !ok || user == nil {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("no user in context"))
		return nil, false
	}
	return user, true
}

// Signup exchanges a pre-registration and its license key for an activated
// account, and logs the new user in.
func (handler *UserHandler) Signup(c *gin.Context) {
	request := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.SignupRequest)
	userRepo := repositories.NewUserRepository(handler.databaseManager.GetPool())

	preCreated, err := userRepo.GetPreCreatedByEmail(c.Request.Context(), request.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.PreRegistrationNotFound, http.StatusBadRequest, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if !utils.VerifyKey(request.LicenseKey, preCreated.LicenseKeyHash) {
		utils.WriteAndLogError(c, schemas.InvalidLicenseKey, http.StatusBadRequest, errors.New("license key mismatch"))
		return
	}

	passwordHash, err := utils.HashPassword(request.Password)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	user, err := userRepo.Activate(c.Request.Context(), preCreated.ID, request.Username,
		request.FirstName, request.LastName, request.Major, passwordHash)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateKey):
			utils.WriteAndLogError(c, schemas.UsernameTaken, http.StatusConflict, err)
		case errors.Is(err, repositories.ErrNotFound):
			// Lost the race against a concurrent signup for the same email.
			utils.WriteAndLogError(c, schemas.PreRegistrationNotFound, http.StatusBadRequest, err)
		default:
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		}
		return
	}

	handler.sessionManager.Establish(c, request.Username)
	utils.WriteAndLogResponse(c, schemas.NewUserDTO(user), http.StatusCreated)
}

// Login authenticates an activated user and establishes a session.
func (handler *UserHandler) Login(c *gin.Context) {
	request := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.LoginRequest)
	userRepo := repositories.NewUserRepository(handler.databaseManager.GetPool())

	user, err := userRepo.GetByUsername(c.Request.Context(), request.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.InvalidCredentials, http.StatusUnauthorized, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if !user.Activated() {
		utils.WriteAndLogError(c, schemas.InvalidCredentials, http.StatusUnauthorized, errors.New("user is not activated"))
		return
	}

	if !utils.VerifyPassword(user.PasswordHash, request.Password) {
		utils.WriteAndLogError(c, schemas.InvalidCredentials, http.StatusUnauthorized, errors.New("password mismatch"))
		return
	}

	user, err = userRepo.UpdateLastLogin(c.Request.Context(), user.ID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	handler.sessionManager.Establish(c, request.Username)
	utils.WriteAndLogResponse(c, schemas.NewUserDTO(user), http.StatusOK)
}

// Logout clears the session cookie. Logging out twice is harmless.
func (handler *UserHandler) Logout(c *gin.Context) {
	handler.sessionManager.Clear(c)
	c.Status(http.StatusNoContent)
}

// GetMe returns the caller's own profile.
func (handler *UserHandler) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.WriteAndLogResponse(c, schemas.NewUserDTO(user), http.StatusOK)
}

// ForgotPassword mails a fresh reset token to the given address. The
// response does not reveal whether the address belongs to an account.
func (handler *UserHandler) ForgotPassword(c *gin.Context) {
	request := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.ForgotPasswordRequest)
	pool := handler.databaseManager.GetPool()
	userRepo := repositories.NewUserRepository(pool)
	tokenRepo := repositories.NewResetTokenRepository(pool)

	user, err := userRepo.GetByEmail(c.Request.Context(), request.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.Status(http.StatusNoContent)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	token, tokenHash, err := utils.GenerateKey()
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	if err := tokenRepo.PurgeExpired(c.Request.Context()); err != nil {
		utils.LogMessageWithFieldsAndError(c, "warn", "Failed to purge expired reset tokens", err)
	}

	expiresAt := time.Now().Add(schemas.ResetTokenTTL)
	if err := tokenRepo.Upsert(c.Request.Context(), *user.Username, tokenHash, expiresAt); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err := handler.mailManager.SendResetTokenMail(user.Email, *user.Username, token); err != nil {
		utils.WriteAndLogError(c, schemas.EmailNotSent, http.StatusInternalServerError, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (handler *UserHandler) verifyResetToken(c *gin.Context, username, token string) bool {
	tokenRepo := repositories.NewResetTokenRepository(handler.databaseManager.GetPool())

	stored, err := tokenRepo.GetLive(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.InvalidResetToken, http.StatusBadRequest, err)
			return false
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return false
	}

	if !utils.VerifyKey(token, stored.TokenHash) {
		utils.WriteAndLogError(c, schemas.InvalidResetToken, http.StatusBadRequest, errors.New("reset token mismatch"))
		return false
	}
	return true
}

// VerifyToken checks a reset token without consuming it, so the frontend can
// gate the new-password form.
func (handler *UserHandler) VerifyToken(c *gin.Context) {
	request := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.VerifyTokenRequest)
	if !handler.verifyResetToken(c, request.Username, request.Token) {
		return
	}
	c.Status(http.StatusNoContent)
}

// ResetPassword consumes a reset token and replaces the user's password.
func (handler *UserHandler) ResetPassword(c *gin.Context) {
	request := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.ResetPasswordRequest)
	if !handler.verifyResetToken(c, request.Username, request.Token) {
		return
	}

	passwordHash, err := utils.HashPassword(request.Password)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	pool := handler.databaseManager.GetPool()
	tx := utils.BeginTransaction(c, pool)
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(c, tx)

	userRepo := repositories.NewUserRepository(pool).WithTx(tx)
	tokenRepo := repositories.NewResetTokenRepository(pool).WithTx(tx)

	if err := userRepo.UpdatePassword(c.Request.Context(), request.Username, passwordHash); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.InvalidResetToken, http.StatusBadRequest, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err := tokenRepo.Delete(c.Request.Context(), request.Username); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err := utils.CommitTransaction(c, tx); err != nil {
		return
	}

	c.Status(http.StatusNoContent)
}
