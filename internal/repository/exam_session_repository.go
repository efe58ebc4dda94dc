package repository

import (
	"errors"

	"github.com/Ravshan88/online-lesson/internal/model"

	"gorm.io/gorm"
)

// ErrDuplicateResult is returned by Save when a result already exists for
// the same user under a different session id. A retry with the same
// session id is not an error; Save returns the stored row instead.
var ErrDuplicateResult = errors.New("exam result already exists for user")

type ExamSessionRepository struct {
	DB *gorm.DB
}

func NewExamSessionRepository(db *gorm.DB) *ExamSessionRepository {
	return &ExamSessionRepository{DB: db}
}

// Save persists a graded session together with its answer rows. Results
// are write-once: the session id is the primary key and user_id carries a
// unique index, so a concurrent double-submit loses the race inside MySQL
// rather than by convention. Saving the same session id twice is treated
// as an idempotent retry and yields the previously stored row.
func (r *ExamSessionRepository) Save(session *model.ExamSession) (*model.ExamSession, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		return nil
	})
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	var existing model.ExamSession
	findErr := r.DB.Preload("Answers").
		Where("id = ? AND user_id = ?", session.ID, session.UserID).
		First(&existing).Error
	if findErr == nil {
		return &existing, nil
	}
	if findErr == gorm.ErrRecordNotFound {
		return nil, ErrDuplicateResult
	}
	return nil, findErr
}

// FindByIDAndUser loads one stored result, scoped to its owner. A lookup
// by a non-owner behaves exactly like a missing record.
func (r *ExamSessionRepository) FindByIDAndUser(sessionID string, userID uint) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.DB.Preload("Answers").
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&session).Error
	return &session, err
}

func (r *ExamSessionRepository) FindByUser(userID uint) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.DB.Where("user_id = ?", userID).First(&session).Error
	return &session, err
}

func (r *ExamSessionRepository) ListByUser(userID uint, limit int) ([]model.ExamSession, error) {
	var sessions []model.ExamSession
	query := r.DB.Where("user_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&sessions).Error
	return sessions, err
}
