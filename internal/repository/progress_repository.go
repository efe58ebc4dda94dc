package repository

import (
	"time"

	"github.com/Ravshan88/online-lesson/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// MarkAttachmentComplete upserts the completion row for (user, attachment).
func (r *ProgressRepository) MarkAttachmentComplete(userID uint, attachmentID string) (*model.UserProgress, error) {
	return r.markComplete(userID, &attachmentID, nil)
}

// MarkQuestionComplete upserts the completion row for (user, question).
func (r *ProgressRepository) MarkQuestionComplete(userID uint, questionID uint) (*model.UserProgress, error) {
	return r.markComplete(userID, nil, &questionID)
}

func (r *ProgressRepository) markComplete(userID uint, attachmentID *string, questionID *uint) (*model.UserProgress, error) {
	var progress model.UserProgress
	query := r.DB.Where("user_id = ?", userID)
	if attachmentID != nil {
		query = query.Where("attachment_id = ?", *attachmentID)
	} else {
		query = query.Where("question_id = ?", *questionID)
	}

	now := time.Now()
	err := query.First(&progress).Error
	if err == nil {
		if !progress.IsCompleted {
			progress.IsCompleted = true
			progress.CompletedAt = &now
			if err := r.DB.Save(&progress).Error; err != nil {
				return nil, err
			}
		}
		return &progress, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	progress = model.UserProgress{
		UserID:       userID,
		AttachmentID: attachmentID,
		QuestionID:   questionID,
		IsCompleted:  true,
		CompletedAt:  &now,
	}
	if err := r.DB.Create(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) IsAttachmentCompleted(userID uint, attachmentID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND attachment_id = ? AND is_completed = ?", userID, attachmentID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *ProgressRepository) CompletedQuestionIDs(userID uint, questionIDs []uint) (map[uint]bool, error) {
	if len(questionIDs) == 0 {
		return map[uint]bool{}, nil
	}
	var rows []model.UserProgress
	err := r.DB.Where("user_id = ? AND question_id IN ? AND is_completed = ?", userID, questionIDs, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	completed := make(map[uint]bool, len(rows))
	for _, row := range rows {
		if row.QuestionID != nil {
			completed[*row.QuestionID] = true
		}
	}
	return completed, nil
}
