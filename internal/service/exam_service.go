package service

import (
	"context"
	"time"

	"github.com/Ravshan88/online-lesson/internal/config"
	"github.com/Ravshan88/online-lesson/internal/model"
	"github.com/Ravshan88/online-lesson/internal/repository"
	"github.com/Ravshan88/online-lesson/internal/util"
	"github.com/Ravshan88/online-lesson/pkg/logger"
	"github.com/Ravshan88/online-lesson/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuestionBank is the read-only source the exam draws from.
type QuestionBank interface {
	FindAll() ([]model.Question, error)
	FindByIDs(ids []uint) ([]model.Question, error)
	Count() (int64, error)
}

// ExamResultStore persists graded attempts. Save must be idempotent on
// the session id and reject a second result for the same user.
type ExamResultStore interface {
	Save(session *model.ExamSession) (*model.ExamSession, error)
	FindByIDAndUser(sessionID string, userID uint) (*model.ExamSession, error)
	FindByUser(userID uint) (*model.ExamSession, error)
	ListByUser(userID uint, limit int) ([]model.ExamSession, error)
}

// SessionCache tracks in-flight sessions between start and submit.
type SessionCache interface {
	Put(ctx context.Context, sessionID string, session InFlightSession, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*InFlightSession, error)
	Del(ctx context.Context, sessionID string) error
}

// UserDirectory resolves the certificate holder's name.
type UserDirectory interface {
	FindByID(id uint) (*model.User, error)
}

// ExamService sequences the final-exam lifecycle: eligibility check,
// sampling, grading, persistence and certificate rendering.
type ExamService struct {
	Bank         QuestionBank
	Store        ExamResultStore
	Cache        SessionCache
	Users        UserDirectory
	Sampler      *ExamSampler
	Certificates *CertificateService
	Cfg          *config.ExamConfig

	now func() time.Time
}

func NewExamService(
	bank QuestionBank,
	store ExamResultStore,
	cache SessionCache,
	users UserDirectory,
	sampler *ExamSampler,
	certificates *CertificateService,
	cfg *config.ExamConfig,
) *ExamService {
	return &ExamService{
		Bank:         bank,
		Store:        store,
		Cache:        cache,
		Users:        users,
		Sampler:      sampler,
		Certificates: certificates,
		Cfg:          cfg,
		now:          time.Now,
	}
}

type ExamStartResponse struct {
	SessionID string            `json:"sessionId"`
	Questions []SampledQuestion `json:"questions"`
}

type ExamStatus struct {
	HasTaken            bool    `json:"hasTakenTest"`
	TotalAvailable      int64   `json:"totalAvailableTests"`
	QuestionCount       int     `json:"testQuestionCount"`
	ExistingSessionID   *string `json:"existingSessionId"`
	ExistingSessionPass *bool   `json:"existingSessionPassed"`
}

// StartExam draws a fresh session for the user. Eligibility is a hard
// gate: a user with a stored result gets ErrExamAlreadyTaken and no
// sampling happens. Nothing is persisted here; the drawn question set is
// cached server-side under the session id until submission or TTL.
func (s *ExamService) StartExam(ctx context.Context, userID uint) (*ExamStartResponse, error) {
	if _, err := s.Store.FindByUser(userID); err == nil {
		return nil, util.ErrExamAlreadyTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	bank, err := s.Bank.FindAll()
	if err != nil {
		return nil, err
	}

	sessionID, issued, payload, err := s.Sampler.Draw(bank, s.Cfg.MaxQuestions)
	if err != nil {
		return nil, err
	}

	record := InFlightSession{UserID: userID, QuestionIDs: issued}
	if err := s.Cache.Put(ctx, sessionID, record, s.Cfg.SessionTTL()); err != nil {
		// The exam can still be graded from the client-supplied id list,
		// so a cache outage degrades trust checking instead of blocking.
		logger.Log.Warn("failed to cache in-flight exam session",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	return &ExamStartResponse{SessionID: sessionID, Questions: payload}, nil
}

// SubmitExam grades a submission and persists the immutable result. The
// issued question list comes from the server-side session record whenever
// it is still cached; the client-supplied list is only trusted after the
// record has expired, and then every id must resolve against the bank.
func (s *ExamService) SubmitExam(ctx context.Context, userID uint, sessionID string, issuedIDs []uint, answers map[uint]string) (*model.ExamSession, error) {
	if _, err := s.Store.FindByUser(userID); err == nil {
		return nil, util.ErrExamAlreadySubmitted
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	cached, err := s.Cache.Get(ctx, sessionID)
	if err != nil {
		logger.Log.Warn("exam session cache read failed",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	strict := false
	if cached != nil {
		if cached.UserID != userID {
			return nil, util.ErrSessionNotFound
		}
		issuedIDs = cached.QuestionIDs
	} else {
		strict = true
	}
	if len(issuedIDs) == 0 {
		return nil, util.ErrUnknownQuestions
	}

	questions, err := s.Bank.FindByIDs(issuedIDs)
	if err != nil {
		return nil, err
	}
	if strict && len(questions) != len(issuedIDs) {
		return nil, util.ErrUnknownQuestions
	}

	bank := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		bank[questions[i].ID] = &questions[i]
	}

	grade, err := GradeExam(issuedIDs, answers, bank, s.Cfg.PassThreshold)
	if err != nil {
		return nil, err
	}

	session := &model.ExamSession{
		ID:              sessionID,
		UserID:          userID,
		TotalQuestions:  grade.TotalQuestions,
		CorrectAnswers:  grade.CorrectAnswers,
		ScorePercentage: grade.ScorePercentage,
		Passed:          grade.Passed,
		CreatedAt:       s.now(),
		Answers:         grade.Answers,
	}

	saved, err := s.Store.Save(session)
	if err != nil {
		if err == repository.ErrDuplicateResult {
			monitoring.ExamConflicts.Inc()
			logger.Log.Warn("concurrent exam submission rejected by store",
				zap.Uint("user_id", userID), zap.String("session_id", sessionID))
			return nil, util.ErrExamAlreadySubmitted
		}
		return nil, err
	}

	if cached != nil {
		if err := s.Cache.Del(ctx, sessionID); err != nil {
			logger.Log.Warn("failed to evict submitted exam session",
				zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	verdict := "failed"
	if saved.Passed {
		verdict = "passed"
	}
	monitoring.ExamSubmissions.WithLabelValues(verdict).Inc()

	return saved, nil
}

// CheckStatus reports whether the user has taken the exam and how many
// questions a session would currently draw.
func (s *ExamService) CheckStatus(userID uint) (*ExamStatus, error) {
	status := &ExamStatus{}

	existing, err := s.Store.FindByUser(userID)
	if err == nil {
		status.HasTaken = true
		status.ExistingSessionID = &existing.ID
		status.ExistingSessionPass = &existing.Passed
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	total, err := s.Bank.Count()
	if err != nil {
		return nil, err
	}
	status.TotalAvailable = total

	count := s.Cfg.MaxQuestions
	if total < int64(count) {
		count = int(total)
	}
	status.QuestionCount = count

	return status, nil
}

// GetResult returns one stored result, scoped to its owner. Ownership
// mismatches are indistinguishable from missing records.
func (s *ExamService) GetResult(userID uint, sessionID string) (*model.ExamSession, error) {
	session, err := s.Store.FindByIDAndUser(sessionID, userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ExamService) History(userID uint, limit int) ([]model.ExamSession, error) {
	return s.Store.ListByUser(userID, limit)
}

// Certificate renders the PDF for a passed session. Eligibility is
// checked before any rendering work.
func (s *ExamService) Certificate(userID uint, sessionID string) ([]byte, error) {
	session, err := s.GetResult(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Passed {
		return nil, util.ErrNotEligibleForCertificate
	}

	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	return s.Certificates.Render(session, user.FullName())
}
