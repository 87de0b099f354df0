package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/school"
	"github.com/trezcool/darasa/core/user"
	emailsvc "github.com/trezcool/darasa/services/email"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
	"github.com/trezcool/darasa/storage/filestore"
)

var (
	testCookieName = "darasa_session"

	errMissingSession = httpErr{Error: "Please login to continue"}
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	cookie   string
	wantCode int
	wantData []byte
	extra    interface{}
}

type testDeps struct {
	server    Server
	usrSvc    *user.Service
	schoolSvc *school.Service
	sessions  SessionStore
	images    *filestore.Store
	files     *filestore.Store
}

// nopLogger drops everything; handler tests assert on responses, not logs.
type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func initApp(t *testing.T) testDeps {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("initApp() failed: %v", err)
	}
	usrRepo := inmemdb.NewUserRepository(db)
	usrSvc := user.NewService(usrRepo)
	mailSvc := emailsvc.NewConsoleServiceMock(&core.Config{AppName: "Darasa", DefaultFromEmail: "noreply@localhost"})
	schoolSvc := school.NewService(inmemdb.NewRepository(db), usrRepo, mailSvc, "Darasa")
	sessions := NewMemorySessionStore(time.Hour)

	images, err := filestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("initApp() failed: %v", err)
	}
	files, err := filestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("initApp() failed: %v", err)
	}

	server := NewServer(&Options{
		AppName:        "Darasa",
		TestMode:       true,
		DisableReqLogs: true,
		CookieName:     testCookieName,
		UserSvc:        usrSvc,
		SchoolSvc:      schoolSvc,
		Sessions:       sessions,
		Images:         images,
		Files:          files,
		Logger:         nopLogger{},
		SignalShutdown: func() {},
	})
	return testDeps{
		server:    server,
		usrSvc:    usrSvc,
		schoolSvc: schoolSvc,
		sessions:  sessions,
		images:    images,
		files:     files,
	}
}

func newSessionRequest(method, path, cookie string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newSessionRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
