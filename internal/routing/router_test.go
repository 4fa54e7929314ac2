package routing

import (
	"crypto/ed25519"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cwngan/cu2m-backend/internal/managers"
	"github.com/cwngan/cu2m-backend/internal/managers/mocks"
	"github.com/cwngan/cu2m-backend/internal/schemas"
	"github.com/cwngan/cu2m-backend/internal/utils"
)

var userColumns = []string{"user_id", "email", "username", "first_name", "last_name",
	"major", "password_hash", "license_key_hash", "activated_at", "last_login"}

var coursePlanColumns = []string{"course_plan_id", "user_id", "name", "description", "favourite", "updated_at"}

var semesterPlanColumns = []string{"semester_plan_id", "course_plan_id", "semester", "year", "courses", "created_at"}

func strPtr(s string) *string { return &s }

func setupMocks(t *testing.T) (*mocks.MockDatabaseManager, managers.SessionMgr, *mocks.MockMailManager) {
	poolMock, err := pgxmock.NewPool()
	if err != nil {
		log.Errorf("Error creating mock database pool: %v", err)
	}

	databaseMgrMock := &mocks.MockDatabaseManager{}
	databaseMgrMock.On("GetPool").Return(poolMock)

	t.Setenv("ENVIRONMENT", "test")
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Errorf("Error generating key pair: %v", err)
	}
	sessionMgr := managers.NewSessionManager(privateKey, publicKey)

	mailMgrMock := &mocks.MockMailManager{}
	mailMgrMock.On("SendResetTokenMail", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
	mailMgrMock.On("SendLicenseKeyMail", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)

	return databaseMgrMock, sessionMgr, mailMgrMock
}

// activatedUserRow builds a full users row the repositories can scan.
func activatedUserRow(id uuid.UUID, email, username, passwordHash string) *pgxmock.Rows {
	return pgxmock.NewRows(userColumns).AddRow(
		id, email, strPtr(username), strPtr("Test"), strPtr("User"), strPtr("COMP"),
		passwordHash, "", time.Now().Add(-time.Hour), nil,
	)
}

func preCreatedUserRow(id uuid.UUID, email, licenseKeyHash string) *pgxmock.Rows {
	return pgxmock.NewRows(userColumns).AddRow(
		id, email, nil, nil, nil, nil, "", licenseKeyHash, schemas.EpochZero, nil,
	)
}

func TestSignup(t *testing.T) {
	licenseKey, licenseKeyHash, err := utils.GenerateKey()
	require.NoError(t, err)

	signupBody := func(key string) map[string]interface{} {
		return map[string]interface{}{
			"email":      "test@example.com",
			"username":   "testuser",
			"firstName":  "Test",
			"lastName":   "User",
			"major":      "COMP",
			"password":   "test.Password123",
			"licenseKey": key,
		}
	}

	userID := uuid.New()

	testCases := []struct {
		name      string
		body      map[string]interface{}
		status    int
		errorCode string
	}{
		{"ValidSignup", signupBody(licenseKey), http.StatusCreated, ""},
		{"PreRegistrationNotFound", signupBody(licenseKey), http.StatusBadRequest, "ERR-011"},
		{"InvalidLicenseKey", signupBody("AAAA-BBBB-CCCC-DDDD"), http.StatusBadRequest, "ERR-012"},
		{"UsernameTaken", signupBody(licenseKey), http.StatusConflict, "ERR-013"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
			router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)

			server := httptest.NewServer(router)
			defer server.Close()

			poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)

			switch tc.name {
			case "PreRegistrationNotFound":
				poolMock.ExpectQuery("SELECT user_id").WithArgs("test@example.com").
					WillReturnRows(pgxmock.NewRows(userColumns))
			case "InvalidLicenseKey":
				poolMock.ExpectQuery("SELECT user_id").WithArgs("test@example.com").
					WillReturnRows(preCreatedUserRow(userID, "test@example.com", licenseKeyHash))
			case "UsernameTaken":
				poolMock.ExpectQuery("SELECT user_id").WithArgs("test@example.com").
					WillReturnRows(preCreatedUserRow(userID, "test@example.com", licenseKeyHash))
				poolMock.ExpectQuery("UPDATE users").
					WithArgs(userID, "testuser", "Test", "User", "COMP", pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			default:
				poolMock.ExpectQuery("SELECT user_id").WithArgs("test@example.com").
					WillReturnRows(preCreatedUserRow(userID, "test@example.com", licenseKeyHash))
				poolMock.ExpectQuery("UPDATE users").
					WithArgs(userID, "testuser", "Test", "User", "COMP", pgxmock.AnyArg()).
					WillReturnRows(activatedUserRow(userID, "test@example.com", "testuser", ""))
			}

			expect := httpexpect.Default(t, server.URL)
			response := expect.POST("/api/user/signup").WithJSON(tc.body).Expect().Status(tc.status)

			if tc.errorCode != "" {
				response.JSON().Object().Value("error").Object().
					HasValue("code", tc.errorCode)
			} else {
				response.JSON().Object().
					HasValue("username", "testuser").
					HasValue("email", "test@example.com")
				response.Cookie(managers.SessionCookieName).Value().NotEmpty()
			}

			if err := poolMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	password := "test.Password123"
	passwordHash, err := utils.HashPassword(password)
	require.NoError(t, err)

	userID := uuid.New()

	testCases := []struct {
		name     string
		password string
		status   int
	}{
		{"ValidLogin", password, http.StatusOK},
		{"WrongPassword", "wrong.Password123", http.StatusUnauthorized},
		{"UnknownUser", password, http.StatusUnauthorized},
		{"NotActivated", password, http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
			router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)

			server := httptest.NewServer(router)
			defer server.Close()

			poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)

			switch tc.name {
			case "UnknownUser":
				poolMock.ExpectQuery("SELECT user_id").WithArgs("testuser").
					WillReturnRows(pgxmock.NewRows(userColumns))
			case "WrongPassword":
				poolMock.ExpectQuery("SELECT user_id").WithArgs("testuser").
					WillReturnRows(activatedUserRow(userID, "test@example.com", "testuser", passwordHash))
			case "NotActivated":
				poolMock.ExpectQuery("SELECT user_id").WithArgs("testuser").
					WillReturnRows(pgxmock.NewRows(userColumns).AddRow(
						userID, "test@example.com", strPtr("testuser"), nil, nil, nil,
						passwordHash, "", schemas.EpochZero, nil,
					))
			default:
				poolMock.ExpectQuery("SELECT user_id").WithArgs("testuser").
					WillReturnRows(activatedUserRow(userID, "test@example.com", "testuser", passwordHash))
				poolMock.ExpectQuery("UPDATE users SET last_login").WithArgs(userID).
					WillReturnRows(activatedUserRow(userID, "test@example.com", "testuser", passwordHash))
			}

			expect := httpexpect.Default(t, server.URL)
			response := expect.POST("/api/user/login").WithJSON(map[string]interface{}{
				"username": "testuser",
				"password": tc.password,
			}).Expect().Status(tc.status)

			if tc.status == http.StatusOK {
				response.JSON().Object().HasValue("username", "testuser")
				response.Cookie(managers.SessionCookieName).Value().NotEmpty()
			} else {
				response.JSON().Object().Value("error").Object().HasValue("code", "ERR-010")
			}

			if err := poolMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestForgotPassword(t *testing.T) {
	userID := uuid.New()

	t.Run("KnownEmailMailsToken", func(t *testing.T) {
		databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
		router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
		server := httptest.NewServer(router)
		defer server.Close()

		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
		poolMock.ExpectQuery("SELECT user_id").WithArgs("test@example.com").
			WillReturnRows(activatedUserRow(userID, "test@example.com", "testuser", ""))
		poolMock.ExpectExec("DELETE FROM reset_tokens").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		poolMock.ExpectExec("INSERT INTO reset_tokens").
			WithArgs("testuser", pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		expect := httpexpect.Default(t, server.URL)
		expect.POST("/api/user/forgot-password").WithJSON(map[string]interface{}{
			"email": "test@example.com",
		}).Expect().Status(http.StatusNoContent)

		mailMgrMock.AssertCalled(t, "SendResetTokenMail", "test@example.com", "testuser", mock.Anything)
		require.NoError(t, poolMock.ExpectationsWereMet())
	})

	// An address without an account gets the same 204 and no token row, so
	// the endpoint does not reveal which emails are registered.
	t.Run("UnknownEmailIsNoContent", func(t *testing.T) {
		databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
		router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
		server := httptest.NewServer(router)
		defer server.Close()

		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
		poolMock.ExpectQuery("SELECT user_id").WithArgs("nobody@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns))

		expect := httpexpect.Default(t, server.URL)
		expect.POST("/api/user/forgot-password").WithJSON(map[string]interface{}{
			"email": "nobody@example.com",
		}).Expect().Status(http.StatusNoContent)

		mailMgrMock.AssertNotCalled(t, "SendResetTokenMail", mock.Anything, mock.Anything, mock.Anything)
		require.NoError(t, poolMock.ExpectationsWereMet())
	})
}

// expectAuthGuard queues the user lookup the auth guard performs on every
// authenticated request.
func expectAuthGuard(poolMock pgxmock.PgxPoolIface, userID uuid.UUID, username string) {
	poolMock.ExpectQuery("SELECT user_id").WithArgs(username).
		WillReturnRows(activatedUserRow(userID, "test@example.com", username, ""))
}

func TestCoursePlans(t *testing.T) {
	userID := uuid.New()
	planID := uuid.New()

	t.Run("ListCoursePlans", func(t *testing.T) {
		databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
		router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
		server := httptest.NewServer(router)
		defer server.Close()

		token, err := sessionMgr.GenerateToken("testuser")
		require.NoError(t, err)

		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
		expectAuthGuard(poolMock, userID, "testuser")
		poolMock.ExpectQuery("SELECT course_plan_id").WithArgs(userID).
			WillReturnRows(pgxmock.NewRows(coursePlanColumns).
				AddRow(planID, userID, "Year 1", "First year", false, time.Now()))

		expect := httpexpect.Default(t, server.URL)
		expect.GET("/api/course-plans").
			WithCookie(managers.SessionCookieName, token).
			Expect().Status(http.StatusOK).
			JSON().Array().Length().IsEqual(1)

		require.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("GetForeignPlanIsNotFound", func(t *testing.T) {
		databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
		router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
		server := httptest.NewServer(router)
		defer server.Close()

		token, err := sessionMgr.GenerateToken("testuser")
		require.NoError(t, err)

		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
		expectAuthGuard(poolMock, userID, "testuser")
		poolMock.ExpectQuery("SELECT course_plan_id").WithArgs(planID, userID).
			WillReturnRows(pgxmock.NewRows(coursePlanColumns))

		expect := httpexpect.Default(t, server.URL)
		expect.GET("/api/course-plans/"+planID.String()).
			WithCookie(managers.SessionCookieName, token).
			Expect().Status(http.StatusNotFound).
			JSON().Object().Value("error").Object().HasValue("code", "ERR-003")

		require.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("MalformedIDIsBadRequest", func(t *testing.T) {
		databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
		router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
		server := httptest.NewServer(router)
		defer server.Close()

		token, err := sessionMgr.GenerateToken("testuser")
		require.NoError(t, err)

		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
		expectAuthGuard(poolMock, userID, "testuser")

		expect := httpexpect.Default(t, server.URL)
		expect.GET("/api/course-plans/not-a-uuid").
			WithCookie(managers.SessionCookieName, token).
			Expect().Status(http.StatusBadRequest).
			JSON().Object().Value("error").Object().HasValue("code", "ERR-020")

		require.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("CreateCoursePlan", func(t *testing.T) {
		databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
		router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
		server := httptest.NewServer(router)
		defer server.Close()

		token, err := sessionMgr.GenerateToken("testuser")
		require.NoError(t, err)

		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
		expectAuthGuard(poolMock, userID, "testuser")
		poolMock.ExpectQuery("INSERT INTO course_plans").
			WithArgs(userID, "Year 1", "First year").
			WillReturnRows(pgxmock.NewRows(coursePlanColumns).
				AddRow(planID, userID, "Year 1", "First year", false, time.Now()))

		expect := httpexpect.Default(t, server.URL)
		expect.POST("/api/course-plans").
			WithCookie(managers.SessionCookieName, token).
			WithJSON(map[string]interface{}{"name": "Year 1", "description": "First year"}).
			Expect().Status(http.StatusCreated).
			JSON().Object().HasValue("name", "Year 1")

		require.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("NoSessionIsUnauthorized", func(t *testing.T) {
		databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
		router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
		server := httptest.NewServer(router)
		defer server.Close()

		expect := httpexpect.Default(t, server.URL)
		expect.GET("/api/course-plans").
			Expect().Status(http.StatusUnauthorized).
			JSON().Object().Value("error").Object().HasValue("code", "ERR-002")
	})
}

func TestSemesterPlans(t *testing.T) {
	userID := uuid.New()
	coursePlanID := uuid.New()
	semesterPlanID := uuid.New()

	t.Run("CreateSemesterPlan", func(t *testing.T) {
		databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
		router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
		server := httptest.NewServer(router)
		defer server.Close()

		token, err := sessionMgr.GenerateToken("testuser")
		require.NoError(t, err)

		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
		expectAuthGuard(poolMock, userID, "testuser")
		poolMock.ExpectQuery("INSERT INTO semester_plans").
			WithArgs(coursePlanID, 1, 2026, userID).
			WillReturnRows(pgxmock.NewRows(semesterPlanColumns).
				AddRow(semesterPlanID, coursePlanID, 1, 2026, []string{}, time.Now()))

		expect := httpexpect.Default(t, server.URL)
		expect.POST("/api/semester-plans").
			WithCookie(managers.SessionCookieName, token).
			WithJSON(map[string]interface{}{
				"coursePlanId": coursePlanID.String(),
				"semester":     1,
				"year":         2026,
			}).
			Expect().Status(http.StatusCreated).
			JSON().Object().HasValue("semester", 1)

		require.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("DuplicateSlotIsConflict", func(t *testing.T) {
		databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
		router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
		server := httptest.NewServer(router)
		defer server.Close()

		token, err := sessionMgr.GenerateToken("testuser")
		require.NoError(t, err)

		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
		expectAuthGuard(poolMock, userID, "testuser")
		poolMock.ExpectQuery("INSERT INTO semester_plans").
			WithArgs(coursePlanID, 1, 2026, userID).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		expect := httpexpect.Default(t, server.URL)
		expect.POST("/api/semester-plans").
			WithCookie(managers.SessionCookieName, token).
			WithJSON(map[string]interface{}{
				"coursePlanId": coursePlanID.String(),
				"semester":     1,
				"year":         2026,
			}).
			Expect().Status(http.StatusConflict).
			JSON().Object().Value("error").Object().HasValue("code", "ERR-021")

		require.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("MalformedIDIsNotFound", func(t *testing.T) {
		databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
		router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
		server := httptest.NewServer(router)
		defer server.Close()

		token, err := sessionMgr.GenerateToken("testuser")
		require.NoError(t, err)

		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
		expectAuthGuard(poolMock, userID, "testuser")

		expect := httpexpect.Default(t, server.URL)
		expect.GET("/api/semester-plans/not-a-uuid").
			WithCookie(managers.SessionCookieName, token).
			Expect().Status(http.StatusNotFound).
			JSON().Object().Value("error").Object().HasValue("code", "ERR-003")

		require.NoError(t, poolMock.ExpectationsWereMet())
	})
}

func TestPasswordReset(t *testing.T) {
	resetToken, tokenHash, err := utils.GenerateKey()
	require.NoError(t, err)

	t.Run("VerifyValidToken", func(t *testing.T) {
		databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
		router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
		server := httptest.NewServer(router)
		defer server.Close()

		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
		poolMock.ExpectQuery("SELECT username, token_hash").WithArgs("testuser").
			WillReturnRows(pgxmock.NewRows([]string{"username", "token_hash", "expires_at"}).
				AddRow("testuser", tokenHash, time.Now().Add(5*time.Minute)))

		expect := httpexpect.Default(t, server.URL)
		expect.POST("/api/user/verify-token").WithJSON(map[string]interface{}{
			"username": "testuser",
			"token":    resetToken,
		}).Expect().Status(http.StatusNoContent)

		require.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("VerifyWrongToken", func(t *testing.T) {
		databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
		router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
		server := httptest.NewServer(router)
		defer server.Close()

		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
		poolMock.ExpectQuery("SELECT username, token_hash").WithArgs("testuser").
			WillReturnRows(pgxmock.NewRows([]string{"username", "token_hash", "expires_at"}).
				AddRow("testuser", tokenHash, time.Now().Add(5*time.Minute)))

		expect := httpexpect.Default(t, server.URL)
		expect.POST("/api/user/verify-token").WithJSON(map[string]interface{}{
			"username": "testuser",
			"token":    "AAAA-BBBB-CCCC-DDDD",
		}).Expect().Status(http.StatusBadRequest).
			JSON().Object().Value("error").Object().HasValue("code", "ERR-015")

		require.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("ResetPassword", func(t *testing.T) {
		databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
		router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
		server := httptest.NewServer(router)
		defer server.Close()

		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
		poolMock.ExpectQuery("SELECT username, token_hash").WithArgs("testuser").
			WillReturnRows(pgxmock.NewRows([]string{"username", "token_hash", "expires_at"}).
				AddRow("testuser", tokenHash, time.Now().Add(5*time.Minute)))
		poolMock.ExpectBegin()
		poolMock.ExpectExec("UPDATE users SET password_hash").
			WithArgs("testuser", pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		poolMock.ExpectExec("DELETE FROM reset_tokens").WithArgs("testuser").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		poolMock.ExpectCommit()

		expect := httpexpect.Default(t, server.URL)
		expect.PUT("/api/user/reset-password").WithJSON(map[string]interface{}{
			"username": "testuser",
			"token":    resetToken,
			"password": "new.Password123",
		}).Expect().Status(http.StatusNoContent)

		require.NoError(t, poolMock.ExpectationsWereMet())
	})
}

func TestCourseSearchValidation(t *testing.T) {
	allAttributes := []string{"code", "title", "description", "units", "prerequisites",
		"corequisites", "not_for_major", "not_for_taken", "is_graded", "original", "parsed"}

	testCases := []struct {
		name  string
		query map[string][]string
	}{
		{"BadBasicFlag", map[string][]string{"basic": {"yes"}}},
		{"BadStrictFlag", map[string][]string{"strict": {"1"}}},
		{"BadPage", map[string][]string{"page": {"-1"}}},
		{"BadLimit", map[string][]string{"limit": {"abc"}}},
		{"ZeroLimit", map[string][]string{"limit": {"0"}}},
		{"IncludesAndExcludes", map[string][]string{"includes": {"code"}, "excludes": {"title"}}},
		{"ExcludeAllAttributes", map[string][]string{"excludes": allAttributes}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
			router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
			server := httptest.NewServer(router)
			defer server.Close()

			expect := httpexpect.Default(t, server.URL)
			request := expect.GET("/api/courses")
			for key, values := range tc.query {
				for _, value := range values {
					request = request.WithQuery(key, value)
				}
			}
			request.Expect().Status(http.StatusBadRequest).
				JSON().Object().Value("error").Object().HasValue("code", "ERR-001")
		})
	}
}

func TestHealth(t *testing.T) {
	databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
	router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
	server := httptest.NewServer(router)
	defer server.Close()

	poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
	poolMock.ExpectPing()

	expect := httpexpect.Default(t, server.URL)
	expect.GET("/health").Expect().Status(http.StatusOK).
		JSON().Object().HasValue("server", true).HasValue("db", true)

	require.NoError(t, poolMock.ExpectationsWereMet())
}

func TestMetadata(t *testing.T) {
	databaseMgrMock, sessionMgr, mailMgrMock := setupMocks(t)
	router := InitRouter(databaseMgrMock, mailMgrMock, sessionMgr)
	server := httptest.NewServer(router)
	defer server.Close()

	expect := httpexpect.Default(t, server.URL)
	expect.GET("/").Expect().Status(http.StatusOK).
		JSON().Object().HasValue("apiName", "CU2M Backend")
}
