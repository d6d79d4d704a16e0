package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"go-circle-api/internal/feature/circle"
	"go-circle-api/internal/transport/http/router"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&circle.CircleModel{}, &circle.MemberModel{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return router.NewAPIEngine(zap.NewNop(), db)
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func do(t *testing.T, e *gin.Engine, method, path string, body any) envelope {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s: http status %d", method, path, w.Code)
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v (%s)", method, path, err, w.Body.String())
	}
	return env
}

func buildMusicClub(t *testing.T, e *gin.Engine) circle.CreateOut {
	t.Helper()
	env := do(t, e, http.MethodPost, "/api/v1/circles", circle.CreateIn{
		CircleName: "Music club",
		Capacity:   10,
		OwnerName:  "John Lennon",
		OwnerAge:   21,
		OwnerGrade: 3,
		OwnerMajor: "Music",
	})
	if env.Code != 0 {
		t.Fatalf("create failed: %d %s", env.Code, env.Msg)
	}
	var out circle.CreateOut
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode create out: %v", err)
	}
	return out
}

func TestVersion(t *testing.T) {
	e := newTestEngine(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if w.Body.String() != router.Version {
		t.Fatalf("unexpected body: %q", w.Body.String())
	}
}

func TestCreateAndFetchCircle(t *testing.T) {
	e := newTestEngine(t)
	created := buildMusicClub(t, e)
	if created.CircleID == 0 || created.OwnerID == 0 {
		t.Fatalf("ids not assigned: %+v", created)
	}

	env := do(t, e, http.MethodGet, fmt.Sprintf("/api/v1/circles/%d", created.CircleID), nil)
	if env.Code != 0 {
		t.Fatalf("fetch failed: %d %s", env.Code, env.Msg)
	}
	var out circle.CircleOut
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if out.CircleID != created.CircleID || out.CircleName != "Music club" || out.Capacity != 10 {
		t.Fatalf("unexpected circle: %+v", out)
	}
	owner := out.Owner
	if owner.ID != created.OwnerID || owner.Name != "John Lennon" || owner.Age != 21 ||
		owner.Grade != 3 || owner.Major != "Music" {
		t.Fatalf("unexpected owner: %+v", owner)
	}
	if out.Members == nil || len(out.Members) != 0 {
		t.Fatalf("members must be an empty list, got %+v", out.Members)
	}
	// owner 不得混进 members 数组
	if !strings.Contains(string(env.Data), `"members":[]`) {
		t.Fatalf("raw payload: %s", env.Data)
	}
}

func TestFetchCircle_NotFound(t *testing.T) {
	e := newTestEngine(t)
	env := do(t, e, http.MethodGet, "/api/v1/circles/9999", nil)
	if env.Code != 404 {
		t.Fatalf("expected code 404, got %d", env.Code)
	}
	if env.Msg != "Circle not found" {
		t.Fatalf("unexpected msg: %q", env.Msg)
	}
}

func TestUpdateCircle(t *testing.T) {
	e := newTestEngine(t)
	created := buildMusicClub(t, e)

	name := "Football club"
	capacity := 20
	env := do(t, e, http.MethodPut, fmt.Sprintf("/api/v1/circles/%d", created.CircleID),
		circle.UpdateIn{CircleName: &name, Capacity: &capacity})
	if env.Code != 0 {
		t.Fatalf("update failed: %d %s", env.Code, env.Msg)
	}

	fetched := do(t, e, http.MethodGet, fmt.Sprintf("/api/v1/circles/%d", created.CircleID), nil)
	var out circle.CircleOut
	if err := json.Unmarshal(fetched.Data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.CircleName != "Football club" || out.Capacity != 20 {
		t.Fatalf("update not reflected: %+v", out)
	}
	if len(out.Members) != 0 {
		t.Fatalf("members should stay empty: %+v", out.Members)
	}
	if out.Owner.Name != "John Lennon" {
		t.Fatalf("owner must be preserved: %+v", out.Owner)
	}
}

func TestUpdateCircle_CapacityOnly(t *testing.T) {
	e := newTestEngine(t)
	created := buildMusicClub(t, e)

	capacity := 15
	env := do(t, e, http.MethodPut, fmt.Sprintf("/api/v1/circles/%d", created.CircleID),
		circle.UpdateIn{Capacity: &capacity})
	if env.Code != 0 {
		t.Fatalf("update failed: %d %s", env.Code, env.Msg)
	}

	fetched := do(t, e, http.MethodGet, fmt.Sprintf("/api/v1/circles/%d", created.CircleID), nil)
	var out circle.CircleOut
	if err := json.Unmarshal(fetched.Data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.CircleName != "Music club" {
		t.Fatalf("name must be unchanged, got %q", out.CircleName)
	}
	if out.Capacity != 15 {
		t.Fatalf("capacity not applied: %d", out.Capacity)
	}
}

func TestAddMember(t *testing.T) {
	e := newTestEngine(t)
	created := buildMusicClub(t, e)

	env := do(t, e, http.MethodPost, fmt.Sprintf("/api/v1/circles/%d/members", created.CircleID),
		circle.AddMemberIn{Name: "Paul McCartney", Age: 20, Grade: 2, Major: "Art"})
	if env.Code != 0 {
		t.Fatalf("add member failed: %d %s", env.Code, env.Msg)
	}
	var added circle.AddMemberOut
	if err := json.Unmarshal(env.Data, &added); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if added.MemberID == 0 {
		t.Fatalf("member id not assigned: %+v", added)
	}

	fetched := do(t, e, http.MethodGet, fmt.Sprintf("/api/v1/circles/%d", created.CircleID), nil)
	var out circle.CircleOut
	if err := json.Unmarshal(fetched.Data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Members) != 1 || out.Members[0].Name != "Paul McCartney" {
		t.Fatalf("unexpected members: %+v", out.Members)
	}
	if out.Members[0].ID != added.MemberID {
		t.Fatalf("member id mismatch: %d vs %d", out.Members[0].ID, added.MemberID)
	}
}

func TestAddMember_CircleFull(t *testing.T) {
	e := newTestEngine(t)
	env := do(t, e, http.MethodPost, "/api/v1/circles", circle.CreateIn{
		CircleName: "Tiny club",
		Capacity:   1, // owner 已占满
		OwnerName:  "John Lennon",
		OwnerAge:   21,
		OwnerGrade: 3,
		OwnerMajor: "Music",
	})
	if env.Code != 0 {
		t.Fatalf("create failed: %d %s", env.Code, env.Msg)
	}
	var created circle.CreateOut
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	full := do(t, e, http.MethodPost, fmt.Sprintf("/api/v1/circles/%d/members", created.CircleID),
		circle.AddMemberIn{Name: "Paul", Age: 20, Grade: 2, Major: "Art"})
	if full.Code != 400 {
		t.Fatalf("expected code 400, got %d (%s)", full.Code, full.Msg)
	}
}

func TestCreateCircle_InvalidGrade(t *testing.T) {
	e := newTestEngine(t)
	env := do(t, e, http.MethodPost, "/api/v1/circles", circle.CreateIn{
		CircleName: "Music club",
		Capacity:   10,
		OwnerName:  "John Lennon",
		OwnerAge:   21,
		OwnerGrade: 5,
		OwnerMajor: "Music",
	})
	if env.Code != 400 {
		t.Fatalf("expected code 400, got %d (%s)", env.Code, env.Msg)
	}
}

func TestCreateCircle_UnknownMajor(t *testing.T) {
	e := newTestEngine(t)
	env := do(t, e, http.MethodPost, "/api/v1/circles", circle.CreateIn{
		CircleName: "Mystery club",
		Capacity:   10,
		OwnerName:  "John Lennon",
		OwnerAge:   21,
		OwnerGrade: 3,
		OwnerMajor: "Alchemy",
	})
	if env.Code != 400 {
		t.Fatalf("expected code 400, got %d (%s)", env.Code, env.Msg)
	}
}
