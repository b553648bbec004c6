package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	domainerr "github.com/nileacademy/apple-rewards/internal/domain/error"
	applesUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/apples"
	attendanceUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/attendance"
	authUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/auth"
	dashboardUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/dashboard"
	scanUseCase "github.com/nileacademy/apple-rewards/internal/domain/usecase/scan"
	authAdapter "github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/auth"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/api/middleware"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/logger"
	mocks "github.com/nileacademy/apple-rewards/mocks/port/persistence"
)

const testCookieName = "ar_session"

type testClock struct{}

func (testClock) Now() time.Time { return time.Now() }

type testEnv struct {
	router   *gin.Engine
	userRepo *mocks.MockUserRepository
	students *mocks.MockStudentRepository
	loyalty  *mocks.MockLoyaltyRepository
	tokens   *authAdapter.JWTTokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	noop := logger.NewNoopLogger()
	userRepo := new(mocks.MockUserRepository)
	studentRepo := new(mocks.MockStudentRepository)
	loyaltyRepo := new(mocks.MockLoyaltyRepository)

	tokens := authAdapter.NewJWTTokenManager("test-secret", "apple-rewards", time.Hour, testClock{})
	authService := authUseCase.NewService(userRepo, tokens, authAdapter.NewBcryptHasher(), noop)
	attendanceService := attendanceUseCase.NewService(userRepo, noop)
	scanService := scanUseCase.NewService(userRepo, studentRepo, attendanceService, noop)
	applesService := applesUseCase.NewService(userRepo, studentRepo, attendanceService, noop)
	dashboardService := dashboardUseCase.NewService(userRepo, studentRepo, loyaltyRepo, noop)

	cookieSettings := CookieSettings{Name: testCookieName, MaxAge: 3600}
	authHandler := NewAuthHandler(authService, cookieSettings, noop)
	scanHandler := NewScanHandler(scanService, noop)
	applesHandler := NewApplesHandler(applesService, noop)
	dashboardHandler := NewDashboardHandler(dashboardService, noop)

	router := gin.New()
	session := middleware.RequireSession(authService, testCookieName, noop)
	router.POST("/auth/login", authHandler.Login)
	router.POST("/scan", session, scanHandler.Scan)
	router.POST("/students/:id/add-apples", session, applesHandler.AddStudentApples)
	router.POST("/assistants/pay-rewards", session, applesHandler.PayRewards)
	router.GET("/dashboard/roster", session, dashboardHandler.Roster)

	return &testEnv{
		router:   router,
		userRepo: userRepo,
		students: studentRepo,
		loyalty:  loyaltyRepo,
		tokens:   tokens,
	}
}

// request performs a JSON request, attaching a session cookie for user when
// one is given
func (e *testEnv) request(t *testing.T, method, path string, body any, user *entity.User) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	if user != nil {
		token, err := e.tokens.Issue(user)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestLogin_ReturnsFullIdentity(t *testing.T) {
	env := newTestEnv(t)

	hash, err := authAdapter.NewBcryptHasher().Hash("orchard-pass")
	require.NoError(t, err)

	admin := &entity.User{
		ID:           1,
		Name:         "Sara",
		Email:        "sara@nileacademy.example",
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
	}
	env.userRepo.On("GetByEmail", mock.Anything, "sara@nileacademy.example").Return(admin, nil)

	rec := env.request(t, http.MethodPost, "/auth/login",
		gin.H{"email": "sara@nileacademy.example", "password": "orchard-pass"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.EqualValues(t, 1, resp["id"])
	assert.Equal(t, "Sara", resp["name"])
	assert.Equal(t, "sara@nileacademy.example", resp["email"])
	assert.Equal(t, "admin", resp["role"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestRoster_DefaultsToAssistantView(t *testing.T) {
	env := newTestEnv(t)
	admin := &entity.User{ID: 1, Name: "Sara", Role: entity.RoleAdmin}

	omar := &entity.User{ID: 7, Name: "Omar", Role: entity.RoleAssistant, SessionsAttended: 21}
	omar.SetApples(1200, testClock{})
	env.userRepo.On("ListByRole", mock.Anything, entity.RoleAssistant).
		Return([]*entity.User{omar}, nil)
	env.loyalty.On("ListByUser", mock.Anything, uint64(7)).
		Return([]*entity.LoyaltyBonus{{UserID: 7, BonusType: "session_20", BonusApples: 50, CreatedAt: time.Now()}}, nil)

	rec := env.request(t, http.MethodGet, "/dashboard/roster", nil, admin)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "assistants", resp["viewType"])
	assert.EqualValues(t, 1200, resp["totalApples"])
	env.students.AssertNotCalled(t, "List")
}

func TestScan_RequiresSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/scan", gin.H{"barcode": "1000001"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env.students.AssertNotCalled(t, "GetByBarcode")
}

func TestScan_AssistantCannotScanAssistantBarcode(t *testing.T) {
	env := newTestEnv(t)
	assistant := &entity.User{ID: 7, Name: "Omar", Role: entity.RoleAssistant}

	rec := env.request(t, http.MethodPost, "/scan", gin.H{"barcode": "3000002"}, assistant)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, domainerr.CodeNotAuthorized, resp["code"])
	env.userRepo.AssertNotCalled(t, "GetByBarcode")
}

func TestScan_StudentLookup(t *testing.T) {
	env := newTestEnv(t)
	assistant := &entity.User{ID: 7, Name: "Omar", Role: entity.RoleAssistant}

	student := entity.NewStudent(3, "Adam", "1000001", testClock{})
	student.SetApples(450, testClock{})
	env.students.On("GetByBarcode", mock.Anything, "1000001").Return(student, nil)

	rec := env.request(t, http.MethodPost, "/scan", gin.H{"barcode": "1000001"}, assistant)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "student", resp["type"])
	assert.Equal(t, "Adam", resp["name"])
	assert.EqualValues(t, 450, resp["apples"])
	assert.Equal(t, "Student found: Adam", resp["message"])
}

func TestAddStudentApples_MissingAmount(t *testing.T) {
	env := newTestEnv(t)
	admin := &entity.User{ID: 1, Name: "Sara", Role: entity.RoleAdmin}

	rec := env.request(t, http.MethodPost, "/students/3/add-apples", gin.H{}, admin)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, domainerr.CodeInvalidAmount, resp["code"])
	env.students.AssertNotCalled(t, "ApplyAdjustment")
}

func TestPayRewards_ForbiddenForAssistant(t *testing.T) {
	env := newTestEnv(t)
	assistant := &entity.User{ID: 7, Name: "Omar", Role: entity.RoleAssistant}

	env.userRepo.On("GetByID", mock.Anything, uint64(7)).
		Return(&entity.User{ID: 7, Name: "Omar", Role: entity.RoleAssistant}, nil)

	rec := env.request(t, http.MethodPost, "/assistants/pay-rewards", nil, assistant)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	env.userRepo.AssertNotCalled(t, "ResetAssistantBalances")
}

func TestPayRewards_AdminResetsAssistants(t *testing.T) {
	env := newTestEnv(t)
	admin := &entity.User{ID: 1, Name: "Sara", Role: entity.RoleAdmin}

	env.userRepo.On("GetByID", mock.Anything, uint64(1)).
		Return(&entity.User{ID: 1, Name: "Sara", Role: entity.RoleAdmin}, nil)
	env.userRepo.On("ResetAssistantBalances", mock.Anything).Return(int64(3), nil)

	rec := env.request(t, http.MethodPost, "/assistants/pay-rewards", nil, admin)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.EqualValues(t, 3, resp["assistantsReset"])
	env.userRepo.AssertExpectations(t)
}
