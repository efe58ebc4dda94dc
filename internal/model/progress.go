package model

import "time"

// UserProgress marks a single attachment or question as completed by a
// user. Exactly one of AttachmentID/QuestionID is set per row.
//
// swagger:model UserProgress
type UserProgress struct {
	UUIDBase
	UserID       uint       `gorm:"index:idx_progress_item,unique;not null" json:"userId"`
	AttachmentID *string    `gorm:"index:idx_progress_item,unique;type:varchar(36)" json:"attachmentId"`
	QuestionID   *uint      `gorm:"index:idx_progress_item,unique" json:"questionId"`
	IsCompleted  bool       `gorm:"default:false" json:"isCompleted"`
	CompletedAt  *time.Time `json:"completedAt"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
