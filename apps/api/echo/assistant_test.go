package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/lakouedu/lakou/core"
	"github.com/lakouedu/lakou/core/assistant"
	logsvc "github.com/lakouedu/lakou/services/logger"
	dummydb "github.com/lakouedu/lakou/storage/datastore/dummy"
)

type httpErr struct {
	Error string `json:"error"`
}

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newTestConfig() *core.Config {
	return &core.Config{
		TestMode:  true,
		AppName:   "Lakou",
		SecretKey: "test-secret",
		Server: core.ServerConfig{
			JWTExpirationDelta:        10 * time.Minute,
			JWTRefreshExpirationDelta: time.Hour,
		},
	}
}

func newTestServer(t *testing.T) (Server, *dummydb.AssistantRepository) {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	repo := dummydb.NewAssistantRepository(db)

	conf := newTestConfig()
	logger := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))
	svc := assistant.NewService(conf, repo, nil, logger)

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)

	app := NewServer(&Options{
		Conf:           conf,
		Logger:         logger,
		DisableReqLogs: true,
		AssistantSvc:   svc,
		Validate:       validate,
		Translator:     translator,
	})
	return app, repo
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func getToken(t *testing.T, userID, role string) string {
	claims := GetUserClaims(userID, "jdoe", "jdoe@test.ht", role)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func Test_assistantApi_chat(t *testing.T) {
	app, repo := newTestServer(t)

	enabledID := "11111111-1111-4111-8111-111111111111"
	disabledID := "22222222-2222-4222-8222-222222222222"
	repo.SetUserContext(assistant.ContextSnapshot{UserID: enabledID, UserRole: assistant.RoleStudent})
	repo.SetPreferences(assistant.Preferences{UserID: disabledID, AIEnabled: false})

	enabledToken := getToken(t, enabledID, assistant.RoleStudent)
	disabledToken := getToken(t, disabledID, assistant.RoleStudent)

	body := func(message, sessionID, language string) []byte {
		return marchallObj(t, assistant.ChatRequest{Message: message, SessionID: sessionID, Language: language})
	}

	tests := []httpTest{
		{
			name: "Auth required", body: body("Hello", "sess-1", "en"),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Message required", body: body("", "sess-1", "en"), token: enabledToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"message": "this field is required"}),
		},
		{
			name: "Session required", body: body("Hello", "", "en"), token: enabledToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"sessionId": "this field is required"}),
		},
		{
			name: "Unsupported language", body: body("Hello", "sess-1", "es"), token: enabledToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"language": "unsupported value"}),
		},
		{
			name: "Greeting", body: body("Hello", "sess-1", "en"), token: enabledToken,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, assistant.ChatResponse{
				Response:  assistant.Greeting(assistant.RoleStudent, assistant.LangEnglish),
				SessionID: "sess-1",
				Language:  assistant.LangEnglish,
				Context:   assistant.ResponseContext{UserRole: assistant.RoleStudent},
			}),
		},
		{
			name: "Assistant disabled", body: body("Hello", "sess-1", "en"), token: disabledToken,
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, echo.Map{
				"error":   "ai_disabled",
				"message": (&assistant.FeatureDisabledError{Language: assistant.LangEnglish}).Message(),
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/assistant/chat", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_refreshToken(t *testing.T) {
	app, _ := newTestServer(t)
	userID := "33333333-3333-4333-8333-333333333333"

	t.Run("re-signs claims inside the refresh window", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/auth/token-refresh", getToken(t, userID, assistant.RoleStudent))
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got TokenResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.NotEmpty(t, got.Token)

		// the new token must itself authenticate
		req, rec = newAuthRequest(http.MethodPost, "/v1/auth/token-refresh", got.Token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects tokens past the refresh window", func(t *testing.T) {
		staleIat := time.Now().Add(-2 * time.Hour).Unix()
		claims := GetUserClaims(userID, "jdoe", "jdoe@test.ht", assistant.RoleStudent, staleIat)
		token, err := GenerateToken(claims)
		if err != nil {
			t.Fatalf("GenerateToken(): %v", err)
		}

		req, rec := newAuthRequest(http.MethodPost, "/v1/auth/token-refresh", token)
		app.ServeHTTP(rec, req)

		tt := httpTest{
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "refresh has expired"}),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("requires authentication", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/auth/token-refresh", "")
		app.ServeHTTP(rec, req)

		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		checkCodeAndData(t, tt, rec)
	})
}

func Test_appHTTPErrorHandler_masksServerErrors(t *testing.T) {
	logger := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))
	logger.Enable(false)

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")

	var shutdownCalled bool
	handler := newAppHTTPErrorHandler(logger, translator, func() { shutdownCalled = true })

	newCtx := func(lang string) (echo.Context, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/v1/assistant/chat", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		if lang != "" {
			ctx.Set(contextLangKey, lang)
		}
		return ctx, rec
	}

	t.Run("internal detail never leaks", func(t *testing.T) {
		ctx, rec := newCtx(assistant.LangEnglish)
		handler(errors.New("pq: connection refused"), ctx)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var got map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "server_error", got["error"])
		assert.Equal(t, assistant.Apology(assistant.LangEnglish), got["message"])
		assert.NotContains(t, rec.Body.String(), "pq:")
		assert.False(t, shutdownCalled)
	})

	t.Run("apology defaults to Haitian Creole", func(t *testing.T) {
		ctx, rec := newCtx("")
		handler(errors.New("boom"), ctx)

		var got map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, assistant.Apology(assistant.LangHaitian), got["message"])
	})

	t.Run("shutdown errors signal the server", func(t *testing.T) {
		ctx, _ := newCtx("")
		handler(core.NewShutdownError("integrity gone"), ctx)
		assert.True(t, shutdownCalled)
	})
}
