package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/repository"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

// lockTable hands out one mutex per advisory lock key.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *lockTable) get(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}

// stubTx is an open unit of work: it keeps its advisory locks until the end
// and undoes its writes on rollback.
type stubTx struct {
	sqlx.ExtContext
	table *lockTable
	held  []string
	undo  []func()
}

func (tx *stubTx) acquire(key string) {
	if tx.table == nil || tx.holds(key) {
		return
	}
	tx.table.get(key).Lock()
	tx.held = append(tx.held, key)
}

func (tx *stubTx) holds(key string) bool {
	for _, held := range tx.held {
		if held == key {
			return true
		}
	}
	return false
}

func (tx *stubTx) holdsTeacherTime(weekday models.Weekday, slot models.TimeSlot) bool {
	suffix := fmt.Sprintf("|%s|%s", weekday, slot)
	for _, held := range tx.held {
		if strings.HasPrefix(held, "teacher:") && strings.HasSuffix(held, suffix) {
			return true
		}
	}
	return false
}

func (tx *stubTx) onRollback(fn func()) {
	tx.undo = append(tx.undo, fn)
}

func (tx *stubTx) release() {
	if tx.table == nil {
		return
	}
	for i := len(tx.held) - 1; i >= 0; i-- {
		tx.table.get(tx.held[i]).Unlock()
	}
	tx.held = nil
}

func asStubTx(exec sqlx.ExtContext) *stubTx {
	tx, _ := exec.(*stubTx)
	if tx == nil {
		return &stubTx{}
	}
	return tx
}

// lockingTxStub runs units of work concurrently; only the advisory locks they
// take keep them apart.
type lockingTxStub struct {
	locks     lockTable
	mu        sync.Mutex
	rollbacks int
}

func (t *lockingTxStub) WithinTx(_ context.Context, fn func(exec sqlx.ExtContext) error) error {
	tx := &stubTx{table: &t.locks}
	defer tx.release()
	if err := fn(tx); err != nil {
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		t.mu.Lock()
		t.rollbacks++
		t.mu.Unlock()
		return err
	}
	return nil
}

func (t *lockingTxStub) rollbackCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rollbacks
}

type sessionStoreStub struct {
	mu        sync.Mutex
	rows      map[int64]models.Session
	units     map[int64]models.TeachingUnit
	nextID    int64
	locks     []string
	unguarded []string
	backstop  int
	createErr error
	listErr   error
}

func (s *sessionStoreStub) LockSlot(_ context.Context, exec sqlx.ExtContext, key models.SlotKey) error {
	asStubTx(exec).acquire(key.LockKey())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks = append(s.locks, key.LockKey())
	return nil
}

func (s *sessionStoreStub) LockTeacherTime(_ context.Context, exec sqlx.ExtContext, key models.TeacherTimeKey) error {
	asStubTx(exec).acquire(key.LockKey())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks = append(s.locks, key.LockKey())
	return nil
}

func (s *sessionStoreStub) ListBySlot(_ context.Context, exec sqlx.ExtContext, key models.SlotKey) ([]models.Session, error) {
	guarded := asStubTx(exec).holds(key.LockKey())
	s.mu.Lock()
	defer s.mu.Unlock()
	if !guarded {
		s.unguarded = append(s.unguarded, key.LockKey())
	}
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.Session
	for _, row := range s.rows {
		if row.Slot() == key {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *sessionStoreStub) ListAtTime(_ context.Context, exec sqlx.ExtContext, weekday models.Weekday, slot models.TimeSlot) ([]models.SessionDetail, error) {
	guarded := asStubTx(exec).holdsTeacherTime(weekday, slot)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !guarded {
		s.unguarded = append(s.unguarded, fmt.Sprintf("teacher:?|%s|%s", weekday, slot))
	}
	var out []models.SessionDetail
	for _, row := range s.rows {
		if row.Weekday == weekday && row.TimeSlot == slot {
			out = append(out, s.detailLocked(row))
		}
	}
	return out, nil
}

func (s *sessionStoreStub) FindForUpdate(_ context.Context, _ sqlx.ExtContext, id int64) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &row, nil
}

func (s *sessionStoreStub) FindDetail(_ context.Context, id int64) (*models.SessionDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	detail := s.detailLocked(row)
	return &detail, nil
}

// Create rejects a second row on the same slot like the unique index does.
func (s *sessionStoreStub) Create(_ context.Context, exec sqlx.ExtContext, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	for _, row := range s.rows {
		if row.Slot() == session.Slot() {
			s.backstop++
			return fmt.Errorf("create session: %w", repository.ErrSlotTaken)
		}
	}
	s.nextID++
	session.ID = s.nextID
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	s.rows[session.ID] = *session
	id := session.ID
	asStubTx(exec).onRollback(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.rows, id)
	})
	return nil
}

func (s *sessionStoreStub) Update(_ context.Context, exec sqlx.ExtContext, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.rows[session.ID]
	if !ok {
		return sql.ErrNoRows
	}
	session.UpdatedAt = time.Now()
	s.rows[session.ID] = *session
	asStubTx(exec).onRollback(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.rows[prev.ID] = prev
	})
	return nil
}

func (s *sessionStoreStub) Delete(_ context.Context, exec sqlx.ExtContext, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	delete(s.rows, id)
	asStubTx(exec).onRollback(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.rows[id] = prev
	})
	return nil
}

func (s *sessionStoreStub) ListByTeacher(_ context.Context, teacherID int64) ([]models.SessionDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SessionDetail, 0)
	for _, row := range s.rows {
		if s.units[row.TeachingUnitID].TeacherID == teacherID {
			out = append(out, s.detailLocked(row))
		}
	}
	return out, nil
}

func (s *sessionStoreStub) ListByClass(_ context.Context, classID int64) ([]models.SessionDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SessionDetail, 0)
	for _, row := range s.rows {
		if row.ClassID == classID {
			out = append(out, s.detailLocked(row))
		}
	}
	return out, nil
}

func (s *sessionStoreStub) detailLocked(row models.Session) models.SessionDetail {
	unit := s.units[row.TeachingUnitID]
	return models.SessionDetail{Session: row, UECode: unit.Code, UEName: unit.Name, TeacherID: unit.TeacherID}
}

func (s *sessionStoreStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *sessionStoreStub) lockLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.locks...)
}

func (s *sessionStoreStub) unguardedReads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.unguarded...)
}

func (s *sessionStoreStub) backstopHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backstop
}

type roomShareStub map[int64]models.Room

func (r roomShareStub) FindForShare(_ context.Context, _ sqlx.ExtContext, id int64) (*models.Room, error) {
	room, ok := r[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &room, nil
}

type classShareStub map[int64]models.Class

func (c classShareStub) FindForShare(_ context.Context, _ sqlx.ExtContext, id int64) (*models.Class, error) {
	class, ok := c[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &class, nil
}

type unitShareStub map[int64]models.TeachingUnit

func (u unitShareStub) FindForShare(_ context.Context, _ sqlx.ExtContext, id int64) (*models.TeachingUnit, error) {
	unit, ok := u[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &unit, nil
}

type schedulingFixture struct {
	svc     *SessionService
	store   *sessionStoreStub
	tx      *lockingTxStub
	cache   *cacheRepoStub
	metrics *MetricsService
}

var adminActor = Actor{UserID: 1, Role: models.RoleAdmin}

func newSchedulingFixture(t *testing.T, cfg SessionConfig) *schedulingFixture {
	t.Helper()
	units := unitShareStub{
		1: {ID: 1, Code: "INF101", Name: "Algorithmique", TeacherID: 10},
		2: {ID: 2, Code: "MAT201", Name: "Analyse", TeacherID: 11},
		3: {ID: 3, Code: "INF102", Name: "Systemes", TeacherID: 10},
	}
	rooms := roomShareStub{
		1: {ID: 1, Name: "A101", Capacity: 30},
		2: {ID: 2, Name: "Amphi B", Capacity: 200},
	}
	classes := classShareStub{
		1: {ID: 1, Name: "L1 Info", Headcount: 40},
		2: {ID: 2, Name: "M1 Data", Headcount: 25},
		3: {ID: 3, Name: "L3 Info", Headcount: 30},
	}
	store := &sessionStoreStub{rows: map[int64]models.Session{}, units: units}
	tx := &lockingTxStub{}
	cacheRepo := &cacheRepoStub{}
	metrics := NewMetricsService()
	cache := NewCacheService(cacheRepo, metrics, time.Minute, zap.NewNop(), true)

	svc := NewSessionService(SessionServiceDeps{
		Sessions: store,
		Rooms:    rooms,
		Classes:  classes,
		Units:    units,
		Tx:       tx,
		Cache:    cache,
		Metrics:  metrics,
	}, validator.New(), zap.NewNop(), cfg)

	return &schedulingFixture{svc: svc, store: store, tx: tx, cache: cacheRepo, metrics: metrics}
}

func sessionReq(unitID, classID, roomID int64, day, slot, date string) dto.SessionRequest {
	return dto.SessionRequest{
		TeachingUnitID: dto.FlexInt(unitID),
		ClassID:        dto.FlexInt(classID),
		RoomID:         dto.FlexInt(roomID),
		Weekday:        day,
		TimeSlot:       slot,
		Date:           date,
	}
}

func errCode(err error) string {
	return appErrors.FromError(err).Code
}

func TestSessionServiceCreateSchedulesSession(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{})

	session, err := f.svc.Create(context.Background(), adminActor, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	require.NoError(t, err)
	assert.NotZero(t, session.ID)
	assert.Equal(t, models.Monday, session.Weekday)
	assert.Equal(t, models.Slot0800, session.TimeSlot)
	assert.Equal(t, "2025/2026", session.AcademicYear)
	assert.Equal(t, "INF101", session.UECode)
	assert.Equal(t, time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC), session.Date)

	assert.Equal(t, []string{"room:1|Lundi|08:00-10:00"}, f.store.lockLog())
	assert.Equal(t, []string{"dash:*"}, f.cache.patterns())
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.schedulingOutcomes.WithLabelValues("create", "ok")))
}

func TestSessionServiceCreateUsesConfiguredAcademicYear(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{AcademicYear: "2026/2027"})

	session, err := f.svc.Create(context.Background(), adminActor, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2026-10-05"))
	require.NoError(t, err)
	assert.Equal(t, "2026/2027", session.AcademicYear)
}

func TestSessionServiceCreateRejectsOversizedClass(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{})

	_, err := f.svc.Create(context.Background(), adminActor, sessionReq(1, 1, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrCapacityExceeded.Code, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "30")
	assert.Equal(t, 30, appErr.Details["room_capacity"])
	assert.Zero(t, f.store.count())
	assert.Empty(t, f.cache.patterns())
}

func TestSessionServiceCreateAcceptsExactFit(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{})

	_, err := f.svc.Create(context.Background(), adminActor, sessionReq(1, 3, 1, "Mardi", "10:00-12:00", "2025-10-07"))
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.count())
}

func TestSessionServiceCreateRejectsOccupiedSlot(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{})
	ctx := context.Background()

	_, err := f.svc.Create(ctx, adminActor, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, adminActor, sessionReq(2, 3, 1, "Lundi", "08:00-10:00", "2025-10-13"))
	assert.Equal(t, appErrors.ErrRoomOccupied.Code, errCode(err))
	assert.Equal(t, 1, f.store.count())

	_, err = f.svc.Create(ctx, adminActor, sessionReq(2, 3, 1, "Lundi", "10:00-12:00", "2025-10-06"))
	assert.NoError(t, err, "next slot in the same room is free")
	_, err = f.svc.Create(ctx, adminActor, sessionReq(2, 3, 2, "Lundi", "08:00-10:00", "2025-10-06"))
	assert.NoError(t, err, "same slot in another room is free")
	assert.Equal(t, 3, f.store.count())
}

func TestSessionServiceCanonicalisesEnumerationsBeforeCollisionCheck(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{})
	ctx := context.Background()

	_, err := f.svc.Create(ctx, adminActor, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, adminActor, sessionReq(2, 3, 1, "monday", "08:00 - 10:00", "2025-10-06"))
	assert.Equal(t, appErrors.ErrRoomOccupied.Code, errCode(err))
}

func TestSessionServiceCreateValidation(t *testing.T) {
	cases := map[string]dto.SessionRequest{
		"missing unit":    sessionReq(0, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"),
		"negative room":   sessionReq(1, 2, -4, "Lundi", "08:00-10:00", "2025-10-06"),
		"sunday":          sessionReq(1, 2, 1, "Dimanche", "08:00-10:00", "2025-10-06"),
		"unknown slot":    sessionReq(1, 2, 1, "Lundi", "07:00-09:00", "2025-10-06"),
		"malformed date":  sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "06/10/2025"),
		"missing date":    sessionReq(1, 2, 1, "Lundi", "08:00-10:00", ""),
		"unknown room":    sessionReq(1, 2, 99, "Lundi", "08:00-10:00", "2025-10-06"),
		"unknown class":   sessionReq(1, 99, 1, "Lundi", "08:00-10:00", "2025-10-06"),
		"unknown unit":    sessionReq(99, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"),
		"non-numeric ids": {Weekday: "Lundi", TimeSlot: "08:00-10:00", Date: "2025-10-06"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			f := newSchedulingFixture(t, SessionConfig{})
			_, err := f.svc.Create(context.Background(), adminActor, req)
			assert.Equal(t, appErrors.ErrValidation.Code, errCode(err))
			assert.Zero(t, f.store.count())
		})
	}
}

func TestSessionServiceCreateMapsUniqueViolation(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{})
	f.store.createErr = fmt.Errorf("create session: %w", repository.ErrSlotTaken)

	_, err := f.svc.Create(context.Background(), adminActor, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	assert.Equal(t, appErrors.ErrRoomOccupied.Code, errCode(err))
	assert.Equal(t, 1, f.tx.rollbackCount())
}

func TestSessionServiceCreateStoreFailureIsInternal(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{})
	f.store.listErr = errors.New("connection reset")

	_, err := f.svc.Create(context.Background(), adminActor, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
	assert.NotContains(t, appErr.Message, "connection reset")
}

func TestSessionServiceTeacherOwnership(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{})
	ctx := context.Background()
	owner := Actor{UserID: 10, Role: models.RoleTeacher}
	other := Actor{UserID: 11, Role: models.RoleTeacher}

	_, err := f.svc.Create(ctx, other, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	assert.Equal(t, appErrors.ErrForbidden.Code, errCode(err))

	created, err := f.svc.Create(ctx, owner, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	require.NoError(t, err)

	assert.Equal(t, appErrors.ErrForbidden.Code, errCode(f.svc.Delete(ctx, other, created.ID)))
	_, err = f.svc.Update(ctx, other, created.ID, sessionReq(2, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	assert.Equal(t, appErrors.ErrForbidden.Code, errCode(err))

	student := Actor{UserID: 50, Role: models.RoleStudent}
	assert.Equal(t, appErrors.ErrForbidden.Code, errCode(f.svc.Delete(ctx, student, created.ID)))
	assert.NoError(t, f.svc.Delete(ctx, owner, created.ID))
}

func TestSessionServiceUpdateExcludesItself(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, adminActor, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, adminActor, created.ID, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2025-10-13"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC), updated.Date)
	assert.Equal(t, 1, f.store.count())
}

func TestSessionServiceUpdateRejectsOccupiedTarget(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{})
	ctx := context.Background()

	first, err := f.svc.Create(ctx, adminActor, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, adminActor, sessionReq(2, 3, 1, "Mardi", "08:00-10:00", "2025-10-07"))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, adminActor, second.ID, sessionReq(2, 3, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	assert.Equal(t, appErrors.ErrRoomOccupied.Code, errCode(err))

	unchanged, err := f.svc.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Tuesday, unchanged.Weekday)
	stillThere, err := f.svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Monday, stillThere.Weekday)
}

func TestSessionServiceUpdateChecksCapacity(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, adminActor, sessionReq(1, 1, 2, "Lundi", "08:00-10:00", "2025-10-06"))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, adminActor, created.ID, sessionReq(1, 1, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	assert.Equal(t, appErrors.ErrCapacityExceeded.Code, errCode(err))

	kept, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), kept.RoomID)
}

func TestSessionServiceUpdateMissing(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{})

	_, err := f.svc.Update(context.Background(), adminActor, 404, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	assert.Equal(t, appErrors.ErrNotFound.Code, errCode(err))
}

func TestSessionServiceDeleteFreesSlot(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, adminActor, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, adminActor, created.ID))
	assert.Zero(t, f.store.count())
	assert.Equal(t, appErrors.ErrNotFound.Code, errCode(f.svc.Delete(ctx, adminActor, created.ID)))

	_, err = f.svc.Create(ctx, adminActor, sessionReq(2, 3, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	assert.NoError(t, err)
}

func TestSessionServiceTeacherConflictRule(t *testing.T) {
	ctx := context.Background()

	relaxed := newSchedulingFixture(t, SessionConfig{})
	_, err := relaxed.svc.Create(ctx, adminActor, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	require.NoError(t, err)
	_, err = relaxed.svc.Create(ctx, adminActor, sessionReq(3, 3, 2, "Lundi", "08:00-10:00", "2025-10-06"))
	assert.NoError(t, err)

	strict := newSchedulingFixture(t, SessionConfig{EnforceTeacherConflicts: true})
	first, err := strict.svc.Create(ctx, adminActor, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	require.NoError(t, err)
	assert.Equal(t, []string{"room:1|Lundi|08:00-10:00", "teacher:10|Lundi|08:00-10:00"}, strict.store.lockLog())
	assert.Empty(t, strict.store.unguardedReads())
	_, err = strict.svc.Create(ctx, adminActor, sessionReq(3, 3, 2, "Lundi", "08:00-10:00", "2025-10-06"))
	assert.Equal(t, appErrors.ErrTeacherUnavailable.Code, errCode(err))

	_, err = strict.svc.Update(ctx, adminActor, first.ID, sessionReq(1, 2, 2, "Lundi", "08:00-10:00", "2025-10-06"))
	assert.NoError(t, err, "moving a session does not conflict with itself")
}

func TestSessionServiceDateWeekdayRule(t *testing.T) {
	ctx := context.Background()

	relaxed := newSchedulingFixture(t, SessionConfig{})
	_, err := relaxed.svc.Create(ctx, adminActor, sessionReq(1, 2, 1, "Mardi", "08:00-10:00", "2025-10-06"))
	assert.NoError(t, err)

	strict := newSchedulingFixture(t, SessionConfig{EnforceDateWeekday: true})
	_, err = strict.svc.Create(ctx, adminActor, sessionReq(1, 2, 1, "Mardi", "08:00-10:00", "2025-10-06"))
	assert.Equal(t, appErrors.ErrValidation.Code, errCode(err))
	_, err = strict.svc.Create(ctx, adminActor, sessionReq(1, 2, 1, "Mardi", "08:00-10:00", "2025-10-07"))
	assert.NoError(t, err)
}

func TestSessionServiceConcurrentCreatesSerialiseOnRoomSlot(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{})
	ctx := context.Background()

	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		occupied  int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Create(ctx, adminActor, sessionReq(1, 2, 1, "Jeudi", "13:00-15:00", "2025-10-09"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if errCode(err) == appErrors.ErrRoomOccupied.Code {
				occupied++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, occupied)
	assert.Equal(t, 1, f.store.count())
	assert.Empty(t, f.store.unguardedReads(), "occupancy must be read under the room slot lock")
	assert.Zero(t, f.store.backstopHits(), "losers are rejected by the locked check, not the unique index")
}

func TestSessionServiceConcurrentCreatesSerialiseOnTeacherTime(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{EnforceTeacherConflicts: true})
	ctx := context.Background()

	// Units 1 and 3 both belong to teacher 10; attempts alternate between two rooms.
	const attempts = 20
	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		succeeded   int
		occupied    int
		unavailable int
	)
	for i := 0; i < attempts; i++ {
		unitID, roomID := int64(1), int64(1)
		if i%2 == 1 {
			unitID, roomID = 3, 2
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Create(ctx, adminActor, sessionReq(unitID, 2, roomID, "Lundi", "08:00-10:00", "2025-10-06"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errCode(err) == appErrors.ErrRoomOccupied.Code:
				occupied++
			case errCode(err) == appErrors.ErrTeacherUnavailable.Code:
				unavailable++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts/2-1, occupied)
	assert.Equal(t, attempts/2, unavailable)
	assert.Equal(t, 1, f.store.count())
	assert.Empty(t, f.store.unguardedReads())
}

func TestSessionServiceListings(t *testing.T) {
	f := newSchedulingFixture(t, SessionConfig{})
	ctx := context.Background()

	_, err := f.svc.Create(ctx, adminActor, sessionReq(1, 2, 1, "Lundi", "08:00-10:00", "2025-10-06"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, adminActor, sessionReq(2, 2, 2, "Mardi", "08:00-10:00", "2025-10-07"))
	require.NoError(t, err)

	byTeacher, err := f.svc.ListForTeacher(ctx, 10)
	require.NoError(t, err)
	require.Len(t, byTeacher, 1)
	assert.Equal(t, "INF101", byTeacher[0].UECode)

	byClass, err := f.svc.ListForClass(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, byClass, 2)

	empty, err := f.svc.ListForClass(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = f.svc.Get(ctx, 999)
	assert.Equal(t, appErrors.ErrNotFound.Code, errCode(err))
}
