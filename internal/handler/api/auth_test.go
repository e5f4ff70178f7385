//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"roombook/internal/handler/api"
	reqdto "roombook/internal/handler/dto/request"
	"roombook/internal/pkg/config"
	"roombook/internal/pkg/jwt"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type fakeAuthCommands struct {
	loginResult *commands.LoginResult
	loginErr    error
}

func (f *fakeAuthCommands) Register(_ context.Context, _ reqdto.RegisterRequest) (*commands.LoginResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeAuthCommands) Login(_ context.Context, _ reqdto.LoginRequest) (*commands.LoginResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeAuthCommands) RefreshToken(_ context.Context, _ string) (*commands.TokenPair, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult.TokenPair, nil
}

type fakeUserQueries struct {
	user *queries.AuthorizedUserView
	err  error
}

func (f *fakeUserQueries) GetCurrentUser(_ context.Context, _ uuid.UUID) (*queries.AuthorizedUserView, error) {
	return f.user, f.err
}

type AuthHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *fakeAuthCommands
	queries  *fakeUserQueries
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.commands = &fakeAuthCommands{}
	s.queries = &fakeUserQueries{}
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 168*time.Hour)
	handler := api.NewAuthHandler(s.commands, s.queries, jwtService, config.NewTestConfig())

	s.router.POST("/auth/login", handler.Login)
	s.router.POST("/auth/register", handler.Register)
	s.router.GET("/auth/me", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", uuid.New())
		}
		handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) loginResult() *commands.LoginResult {
	return &commands.LoginResult{
		User: &queries.AuthorizedUserView{
			ID:    uuid.New(),
			Name:  "Alice",
			Email: "alice@example.com",
			Role:  "user",
		},
		TokenPair: &commands.TokenPair{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
		},
	}
}

func (s *AuthHandlerTestSuite) doJSON(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerTestSuite) TestLoginSuccess() {
	s.commands.loginResult = s.loginResult()

	w := s.doJSON(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"secret123"}`)

	s.Equal(http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.True(body.Success)
	s.Equal("access-token", body.Data.AccessToken)

	cookies := w.Result().Cookies()
	names := make([]string, 0, len(cookies))
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	s.Contains(names, "access_token")
	s.Contains(names, "refresh_token")
}

func (s *AuthHandlerTestSuite) TestLoginInvalidCredentials() {
	s.commands.loginErr = commands.ErrInvalidCredentials

	w := s.doJSON(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"wrongpassword"}`)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerTestSuite) TestLoginInactiveAccount() {
	s.commands.loginErr = commands.ErrUserInactive

	w := s.doJSON(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"secret123"}`)

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *AuthHandlerTestSuite) TestLoginMalformedBody() {
	w := s.doJSON(http.MethodPost, "/auth/login", `{"email":`)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *AuthHandlerTestSuite) TestRegisterDuplicateEmail() {
	s.commands.loginErr = commands.ErrEmailTaken

	w := s.doJSON(http.MethodPost, "/auth/register", `{"name":"Alice","email":"alice@example.com","password":"secret123"}`)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *AuthHandlerTestSuite) TestRegisterSuccess() {
	s.commands.loginResult = s.loginResult()

	w := s.doJSON(http.MethodPost, "/auth/register", `{"name":"Alice","email":"alice@example.com","password":"secret123"}`)

	s.Equal(http.StatusCreated, w.Code)
}

func (s *AuthHandlerTestSuite) TestMeWithoutAuthContext() {
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerTestSuite) TestMeReturnsUser() {
	s.queries.user = &queries.AuthorizedUserView{
		ID:    uuid.New(),
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  "user",
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "alice@example.com")
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
