package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/karames/unilog/core"
	"github.com/karames/unilog/core/student"
	"github.com/karames/unilog/core/teacher"
	emailsvc "github.com/karames/unilog/services/email"
	inmemdb "github.com/karames/unilog/storage/database/inmem"
	"github.com/karames/unilog/storage/database/seed"
)

type testLogger struct {
	std *log.Logger
}

func (l testLogger) Debug(msg string, args ...interface{}) { l.std.Println(msg) }
func (l testLogger) Info(msg string, args ...interface{})  { l.std.Println(msg) }
func (l testLogger) Warn(msg string, args ...interface{})  { l.std.Println(msg) }
func (l testLogger) Error(msg string, args ...interface{}) { l.std.Println(msg) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.std.Fatalln(msg) }

func testConfig() *core.Config {
	return &core.Config{
		Debug:     false,
		TestMode:  true,
		Env:       "test",
		AppName:   "UniLog",
		SecretKey: "secret",
		Server: core.ServerConfig{
			Addr:               ":0",
			JWTExpirationDelta: 10 * time.Minute,
		},
	}
}

type testApp struct {
	server     *Server
	conf       *core.Config
	studentSvc *student.Service
	teacherSvc *teacher.Service
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	conf := testConfig()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("newTestApp() failed: %v", err)
	}
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	studentSvc := student.NewService(inmemdb.NewStudentRepository(db), mailSvc)
	teacherSvc := teacher.NewService(inmemdb.NewTeacherRepository(db))

	if err := seed.Load(context.Background(), studentSvc, teacherSvc); err != nil {
		t.Fatalf("newTestApp() failed: %v", err)
	}

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)

	server := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         testLogger{std: log.New(os.Stdout, "TEST : ", log.LstdFlags)},
		StudentSvc:     studentSvc,
		TeacherSvc:     teacherSvc,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})

	return &testApp{
		server:     server,
		conf:       conf,
		studentSvc: studentSvc,
		teacherSvc: teacherSvc,
	}
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func (app *testApp) request(t *testing.T, method, path, token string, data ...interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if len(data) > 0 {
		if err := json.NewEncoder(&body).Encode(data[0]); err != nil {
			t.Fatalf("request() failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) login(t *testing.T, role, username, password string) string {
	t.Helper()

	rec := app.request(t, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Role:     role,
		Username: username,
		Password: password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login() failed: code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var res LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("login() failed: %v", err)
	}
	return res.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode() failed: %v; body = %s", err, rec.Body.String())
	}
}
