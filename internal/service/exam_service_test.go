package service

import (
	"bytes"
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/Ravshan88/online-lesson/internal/config"
	"github.com/Ravshan88/online-lesson/internal/model"
	"github.com/Ravshan88/online-lesson/internal/repository"
	"github.com/Ravshan88/online-lesson/internal/util"
	"github.com/Ravshan88/online-lesson/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	logger.Log = zap.NewNop()
}

type fakeBank struct {
	questions []model.Question
}

func (f *fakeBank) FindAll() ([]model.Question, error) { return f.questions, nil }

func (f *fakeBank) FindByIDs(ids []uint) ([]model.Question, error) {
	var out []model.Question
	for _, id := range ids {
		for _, q := range f.questions {
			if q.ID == id {
				out = append(out, q)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeBank) Count() (int64, error) { return int64(len(f.questions)), nil }

type fakeStore struct {
	byUser map[uint]*model.ExamSession
	// forceConflict simulates losing the unique-index race to a
	// concurrent submission.
	forceConflict bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{byUser: map[uint]*model.ExamSession{}}
}

func (f *fakeStore) Save(session *model.ExamSession) (*model.ExamSession, error) {
	if f.forceConflict {
		return nil, repository.ErrDuplicateResult
	}
	if existing, ok := f.byUser[session.UserID]; ok {
		if existing.ID == session.ID {
			return existing, nil
		}
		return nil, repository.ErrDuplicateResult
	}
	f.byUser[session.UserID] = session
	return session, nil
}

func (f *fakeStore) FindByIDAndUser(sessionID string, userID uint) (*model.ExamSession, error) {
	if s, ok := f.byUser[userID]; ok && s.ID == sessionID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) FindByUser(userID uint) (*model.ExamSession, error) {
	if s, ok := f.byUser[userID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) ListByUser(userID uint, limit int) ([]model.ExamSession, error) {
	if s, ok := f.byUser[userID]; ok && limit > 0 {
		return []model.ExamSession{*s}, nil
	}
	return nil, nil
}

type fakeCache struct {
	entries  map[string]InFlightSession
	failGets bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]InFlightSession{}}
}

func (f *fakeCache) Put(ctx context.Context, sessionID string, session InFlightSession, ttl time.Duration) error {
	f.entries[sessionID] = session
	return nil
}

func (f *fakeCache) Get(ctx context.Context, sessionID string) (*InFlightSession, error) {
	if f.failGets {
		return nil, context.DeadlineExceeded
	}
	if s, ok := f.entries[sessionID]; ok {
		return &s, nil
	}
	return nil, nil
}

func (f *fakeCache) Del(ctx context.Context, sessionID string) error {
	delete(f.entries, sessionID)
	return nil
}

type fakeUsers struct{}

func (fakeUsers) FindByID(id uint) (*model.User, error) {
	return &model.User{
		BaseModel: model.BaseModel{ID: id},
		Firstname: "Aziz",
		Lastname:  "Karimov",
		Username:  "aziz",
		Role:      model.Student,
	}, nil
}

type examFixture struct {
	svc   *ExamService
	bank  *fakeBank
	store *fakeStore
	cache *fakeCache
}

func newExamFixture(bankSize int) *examFixture {
	questions := make([]model.Question, bankSize)
	for i := range questions {
		questions[i] = model.Question{
			BaseModel:     model.BaseModel{ID: uint(i + 1)},
			MaterialID:    1,
			Content:       "savol",
			Options:       model.StringList{"A", "B", "C", "D"},
			CorrectAnswer: "A",
		}
	}

	bank := &fakeBank{questions: questions}
	store := newFakeStore()
	cache := newFakeCache()
	cfg := &config.ExamConfig{PassThreshold: 60, MaxQuestions: 30, SessionTTLMinutes: 120}

	svc := NewExamService(
		bank,
		store,
		cache,
		fakeUsers{},
		NewExamSampler(rand.NewSource(1)),
		NewCertificateService(cfg.PassThreshold),
		cfg,
	)
	svc.now = func() time.Time { return time.Date(2024, 5, 14, 10, 30, 0, 0, time.UTC) }

	return &examFixture{svc: svc, bank: bank, store: store, cache: cache}
}

func correctAnswers(ids []uint) map[uint]string {
	answers := make(map[uint]string, len(ids))
	for _, id := range ids {
		answers[id] = "A"
	}
	return answers
}

func TestStartExamDrawsAndCaches(t *testing.T) {
	f := newExamFixture(50)
	ctx := context.Background()

	resp, err := f.svc.StartExam(ctx, 1)
	if err != nil {
		t.Fatalf("StartExam: %v", err)
	}
	if len(resp.Questions) != 30 {
		t.Errorf("drew %d questions, want 30", len(resp.Questions))
	}

	cached, ok := f.cache.entries[resp.SessionID]
	if !ok {
		t.Fatal("in-flight session was not cached")
	}
	if cached.UserID != 1 {
		t.Errorf("cached UserID = %d, want 1", cached.UserID)
	}
	if len(cached.QuestionIDs) != len(resp.Questions) {
		t.Fatalf("cached %d ids, payload has %d", len(cached.QuestionIDs), len(resp.Questions))
	}
	for i, q := range resp.Questions {
		if cached.QuestionIDs[i] != q.ID {
			t.Errorf("cached id[%d] = %d, payload id = %d", i, cached.QuestionIDs[i], q.ID)
		}
	}
}

func TestStartExamAlreadyTaken(t *testing.T) {
	f := newExamFixture(10)
	f.store.byUser[1] = &model.ExamSession{ID: "old", UserID: 1, Passed: true}

	if _, err := f.svc.StartExam(context.Background(), 1); err != util.ErrExamAlreadyTaken {
		t.Fatalf("err = %v, want ErrExamAlreadyTaken", err)
	}
}

func TestStartExamEmptyBank(t *testing.T) {
	f := newExamFixture(0)
	if _, err := f.svc.StartExam(context.Background(), 1); err != util.ErrNoQuestionsAvailable {
		t.Fatalf("err = %v, want ErrNoQuestionsAvailable", err)
	}
}

func TestSubmitExamGradesFromCachedSession(t *testing.T) {
	f := newExamFixture(50)
	ctx := context.Background()

	resp, err := f.svc.StartExam(ctx, 1)
	if err != nil {
		t.Fatalf("StartExam: %v", err)
	}

	cached := f.cache.entries[resp.SessionID]

	// Forged id list in the request body: the cached record wins.
	forged := []uint{9999}
	saved, err := f.svc.SubmitExam(ctx, 1, resp.SessionID, forged, correctAnswers(cached.QuestionIDs))
	if err != nil {
		t.Fatalf("SubmitExam: %v", err)
	}

	if saved.TotalQuestions != 30 {
		t.Errorf("TotalQuestions = %d, want 30", saved.TotalQuestions)
	}
	if saved.ScorePercentage != 100 || !saved.Passed {
		t.Errorf("score = %d passed = %v, want 100 passed", saved.ScorePercentage, saved.Passed)
	}
	if saved.ID != resp.SessionID {
		t.Errorf("stored id = %q, want session id %q", saved.ID, resp.SessionID)
	}
	if _, stillCached := f.cache.entries[resp.SessionID]; stillCached {
		t.Error("submitted session was not evicted from the cache")
	}
}

func TestSubmitExamRejectsWrongOwner(t *testing.T) {
	f := newExamFixture(50)
	ctx := context.Background()

	resp, err := f.svc.StartExam(ctx, 1)
	if err != nil {
		t.Fatalf("StartExam: %v", err)
	}

	if _, err := f.svc.SubmitExam(ctx, 2, resp.SessionID, nil, nil); err != util.ErrSessionNotFound {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSubmitExamAlreadySubmitted(t *testing.T) {
	f := newExamFixture(10)
	f.store.byUser[1] = &model.ExamSession{ID: "done", UserID: 1}

	_, err := f.svc.SubmitExam(context.Background(), 1, "done", nil, nil)
	if err != util.ErrExamAlreadySubmitted {
		t.Fatalf("err = %v, want ErrExamAlreadySubmitted", err)
	}
}

func TestSubmitExamStrictFallbackRejectsUnknownIDs(t *testing.T) {
	f := newExamFixture(10)
	ctx := context.Background()

	// No cached record: the client list is only trusted when every id
	// resolves against the bank.
	_, err := f.svc.SubmitExam(ctx, 1, "expired-session", []uint{1, 2, 9999}, correctAnswers([]uint{1, 2}))
	if err != util.ErrUnknownQuestions {
		t.Fatalf("err = %v, want ErrUnknownQuestions", err)
	}
}

func TestSubmitExamStrictFallbackGradesValidIDs(t *testing.T) {
	f := newExamFixture(10)
	ctx := context.Background()

	issued := []uint{1, 2, 3, 4, 5}
	saved, err := f.svc.SubmitExam(ctx, 1, "expired-session", issued, correctAnswers([]uint{1, 2, 3}))
	if err != nil {
		t.Fatalf("SubmitExam: %v", err)
	}
	if saved.TotalQuestions != 5 || saved.CorrectAnswers != 3 {
		t.Errorf("got %d/%d, want 3/5", saved.CorrectAnswers, saved.TotalQuestions)
	}
	if saved.ScorePercentage != 60 || !saved.Passed {
		t.Errorf("score = %d passed = %v, want 60 passed", saved.ScorePercentage, saved.Passed)
	}
}

func TestSubmitExamEmptySubmission(t *testing.T) {
	f := newExamFixture(10)
	_, err := f.svc.SubmitExam(context.Background(), 1, "nothing", nil, nil)
	if err != util.ErrUnknownQuestions {
		t.Fatalf("err = %v, want ErrUnknownQuestions", err)
	}
}

func TestSubmitExamLosesStoreRace(t *testing.T) {
	f := newExamFixture(10)
	f.store.forceConflict = true

	_, err := f.svc.SubmitExam(context.Background(), 1, "race", []uint{1, 2, 3}, nil)
	if err != util.ErrExamAlreadySubmitted {
		t.Fatalf("err = %v, want ErrExamAlreadySubmitted", err)
	}
}

func TestSubmitExamSurvivesCacheOutage(t *testing.T) {
	f := newExamFixture(10)
	f.cache.failGets = true

	issued := []uint{1, 2, 3, 4}
	saved, err := f.svc.SubmitExam(context.Background(), 1, "session", issued, correctAnswers(issued))
	if err != nil {
		t.Fatalf("SubmitExam with failing cache: %v", err)
	}
	if saved.ScorePercentage != 100 {
		t.Errorf("score = %d, want 100", saved.ScorePercentage)
	}
}

func TestCheckStatus(t *testing.T) {
	f := newExamFixture(5)

	status, err := f.svc.CheckStatus(1)
	if err != nil {
		t.Fatalf("CheckStatus: %v", err)
	}
	if status.HasTaken {
		t.Error("HasTaken = true before any submission")
	}
	if status.TotalAvailable != 5 {
		t.Errorf("TotalAvailable = %d, want 5", status.TotalAvailable)
	}
	if status.QuestionCount != 5 {
		t.Errorf("QuestionCount = %d, want 5 (bank smaller than cap)", status.QuestionCount)
	}

	f.store.byUser[1] = &model.ExamSession{ID: "done", UserID: 1, Passed: true}
	status, err = f.svc.CheckStatus(1)
	if err != nil {
		t.Fatalf("CheckStatus: %v", err)
	}
	if !status.HasTaken {
		t.Error("HasTaken = false after submission")
	}
	if status.ExistingSessionID == nil || *status.ExistingSessionID != "done" {
		t.Error("ExistingSessionID not reported")
	}
	if status.ExistingSessionPass == nil || !*status.ExistingSessionPass {
		t.Error("ExistingSessionPassed not reported")
	}
}

func TestGetResultNotFound(t *testing.T) {
	f := newExamFixture(5)
	if _, err := f.svc.GetResult(1, "missing"); err != util.ErrSessionNotFound {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestGetResultScopedToOwner(t *testing.T) {
	f := newExamFixture(5)
	f.store.byUser[1] = &model.ExamSession{ID: "mine", UserID: 1}

	if _, err := f.svc.GetResult(2, "mine"); err != util.ErrSessionNotFound {
		t.Fatalf("foreign session: err = %v, want ErrSessionNotFound", err)
	}
	session, err := f.svc.GetResult(1, "mine")
	if err != nil {
		t.Fatalf("own session: %v", err)
	}
	if session.ID != "mine" {
		t.Errorf("ID = %q, want mine", session.ID)
	}
}

func TestCertificateRequiresPass(t *testing.T) {
	f := newExamFixture(5)
	f.store.byUser[1] = &model.ExamSession{
		ID: "failed", UserID: 1, Passed: false, ScorePercentage: 40,
		CreatedAt: time.Date(2024, 5, 14, 10, 30, 0, 0, time.UTC),
	}

	if _, err := f.svc.Certificate(1, "failed"); err != util.ErrNotEligibleForCertificate {
		t.Fatalf("err = %v, want ErrNotEligibleForCertificate", err)
	}
}

func TestCertificateForPassedSession(t *testing.T) {
	f := newExamFixture(5)
	f.store.byUser[1] = &model.ExamSession{
		ID: "passed", UserID: 1, Passed: true,
		TotalQuestions: 30, CorrectAnswers: 24, ScorePercentage: 80,
		CreatedAt: time.Date(2024, 5, 14, 10, 30, 0, 0, time.UTC),
	}

	pdf, err := f.svc.Certificate(1, "passed")
	if err != nil {
		t.Fatalf("Certificate: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("certificate is not a PDF document")
	}
}

func TestHistory(t *testing.T) {
	f := newExamFixture(5)
	f.store.byUser[1] = &model.ExamSession{ID: "one", UserID: 1}

	sessions, err := f.svc.History(1, 20)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "one" {
		t.Errorf("History = %+v, want the single stored session", sessions)
	}
}
