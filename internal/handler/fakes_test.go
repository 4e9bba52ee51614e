package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *appErrors.Error `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

type fakeSessionSrv struct {
	err       error
	lastActor service.Actor
	lastReq   dto.SessionRequest
	lastID    int64
}

func (f *fakeSessionSrv) Create(_ context.Context, actor service.Actor, req dto.SessionRequest) (*models.SessionDetail, error) {
	f.lastActor, f.lastReq = actor, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.SessionDetail{Session: models.Session{ID: 7, TeachingUnitID: req.TeachingUnitID.Int64()}}, nil
}

func (f *fakeSessionSrv) Update(_ context.Context, actor service.Actor, id int64, req dto.SessionRequest) (*models.SessionDetail, error) {
	f.lastActor, f.lastReq, f.lastID = actor, req, id
	if f.err != nil {
		return nil, f.err
	}
	return &models.SessionDetail{Session: models.Session{ID: id}}, nil
}

func (f *fakeSessionSrv) Delete(_ context.Context, actor service.Actor, id int64) error {
	f.lastActor, f.lastID = actor, id
	return f.err
}

func (f *fakeSessionSrv) ListForTeacher(_ context.Context, teacherID int64) ([]models.SessionDetail, error) {
	f.lastID = teacherID
	return []models.SessionDetail{}, f.err
}

func (f *fakeSessionSrv) ListForClass(_ context.Context, classID int64) ([]models.SessionDetail, error) {
	f.lastID = classID
	return []models.SessionDetail{{Session: models.Session{ID: 1, ClassID: classID}}}, f.err
}

type fakeRoomSrv struct{}

func (fakeRoomSrv) List(context.Context) ([]models.Room, error) { return []models.Room{}, nil }
func (fakeRoomSrv) Get(_ context.Context, id int64) (*models.Room, error) {
	return &models.Room{ID: id}, nil
}
func (fakeRoomSrv) Create(_ context.Context, req dto.RoomRequest) (*models.Room, error) {
	return &models.Room{ID: 1, Name: req.Name, Capacity: req.Capacity}, nil
}
func (fakeRoomSrv) Update(_ context.Context, id int64, _ dto.RoomRequest) (*models.Room, error) {
	return &models.Room{ID: id}, nil
}
func (fakeRoomSrv) Delete(context.Context, int64) error { return nil }

type fakeClassSrv struct{}

func (fakeClassSrv) List(context.Context) ([]models.Class, error) { return []models.Class{}, nil }
func (fakeClassSrv) Get(_ context.Context, id int64) (*models.Class, error) {
	return &models.Class{ID: id}, nil
}
func (fakeClassSrv) Create(_ context.Context, req dto.ClassRequest) (*models.Class, error) {
	return &models.Class{ID: 1, Name: req.Name}, nil
}
func (fakeClassSrv) Update(_ context.Context, id int64, _ dto.ClassRequest) (*models.Class, error) {
	return &models.Class{ID: id}, nil
}
func (fakeClassSrv) Delete(context.Context, int64) error { return nil }

type fakeTeacherSrv struct{}

func (fakeTeacherSrv) List(context.Context) ([]models.User, error) { return []models.User{}, nil }
func (fakeTeacherSrv) Create(_ context.Context, req dto.TeacherRequest) (*models.User, error) {
	return &models.User{ID: 1, FullName: req.FullName, Role: models.RoleTeacher}, nil
}
func (fakeTeacherSrv) Update(_ context.Context, id int64, _ dto.TeacherRequest) (*models.User, error) {
	return &models.User{ID: id}, nil
}
func (fakeTeacherSrv) Delete(context.Context, int64) error { return nil }
func (fakeTeacherSrv) ListUnits(context.Context, int64) ([]models.TeachingUnit, error) {
	return []models.TeachingUnit{}, nil
}
func (fakeTeacherSrv) CreateUnit(_ context.Context, req dto.TeachingUnitRequest) (*models.TeachingUnit, error) {
	return &models.TeachingUnit{ID: 1, Code: req.Code}, nil
}
func (fakeTeacherSrv) FormData(context.Context, int64) (*models.TeacherFormData, error) {
	return &models.TeacherFormData{}, nil
}

type fakeStudentSrv struct{}

func (fakeStudentSrv) Register(_ context.Context, req dto.StudentRegistrationRequest) (*models.User, error) {
	return &models.User{ID: 5, FullName: req.FullName, Role: models.RoleStudent}, nil
}
func (fakeStudentSrv) List(context.Context) ([]models.StudentDetail, error) {
	return []models.StudentDetail{}, nil
}

type fakeWishSrv struct{}

func (fakeWishSrv) ListForTeacher(context.Context, int64) ([]models.WishDetail, error) {
	return []models.WishDetail{}, nil
}
func (fakeWishSrv) Create(_ context.Context, actor service.Actor, _ dto.WishRequest) (*models.Wish, error) {
	return &models.Wish{ID: 1, TeacherID: actor.UserID}, nil
}
func (fakeWishSrv) Delete(context.Context, service.Actor, int64) error { return nil }

type fakeResourceSrv struct {
	err      error
	lastMeta dto.ResourceUpload
	body     string
	file     string
	detail   models.ResourceDetail
}

func (f *fakeResourceSrv) Upload(_ context.Context, _ service.Actor, meta dto.ResourceUpload, body io.Reader) (*models.ResourceDetail, error) {
	f.lastMeta = meta
	raw, _ := io.ReadAll(body)
	f.body = string(raw)
	if f.err != nil {
		return nil, f.err
	}
	return &models.ResourceDetail{Resource: models.Resource{ID: 3, Name: meta.Name}}, nil
}
func (f *fakeResourceSrv) Get(_ context.Context, id int64) (*models.ResourceDetail, error) {
	return &models.ResourceDetail{Resource: models.Resource{ID: id}}, f.err
}
func (f *fakeResourceSrv) ListForTeacher(context.Context, int64) ([]models.ResourceDetail, error) {
	return []models.ResourceDetail{}, f.err
}
func (f *fakeResourceSrv) Open(_ context.Context, _ int64, token string) (*models.ResourceDetail, *os.File, error) {
	if token != "good" {
		return nil, nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download link")
	}
	file, err := os.Open(f.file)
	if err != nil {
		return nil, nil, err
	}
	detail := f.detail
	return &detail, file, nil
}
func (f *fakeResourceSrv) Delete(context.Context, service.Actor, int64) error { return f.err }

type fakeDashboardSrv struct {
	studentErr error
}

func (fakeDashboardSrv) Teacher(context.Context, int64) (*models.TeacherDashboard, error) {
	return &models.TeacherDashboard{TotalHours: 4}, nil
}
func (f fakeDashboardSrv) Student(context.Context, int64) (*models.StudentDashboard, error) {
	if f.studentErr != nil {
		return nil, f.studentErr
	}
	return &models.StudentDashboard{}, nil
}
func (fakeDashboardSrv) Stats(context.Context) (*models.AdminStats, error) {
	return &models.AdminStats{Rooms: 2}, nil
}

type fakeExporter struct{ format string }

func (f *fakeExporter) ExportClass(_ context.Context, _ int64, format string) (*service.ExportResult, error) {
	f.format = format
	if format == "doc" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	return &service.ExportResult{FileName: "emploi-du-temps-l1.csv", ContentType: "text/csv", Data: []byte("Horaire\n")}, nil
}

type fakeAuthSrv struct{}

func (fakeAuthSrv) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if req.Password != "secret" {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	return &models.LoginResponse{AccessToken: "token", User: models.UserInfo{ID: 1, Email: req.Email}}, nil
}
