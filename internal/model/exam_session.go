package model

import "time"

// ExamSession is the persisted, immutable result of one graded final-exam
// attempt. The primary key is the session id handed out at start time, so
// the in-flight session and the stored result share one identity. The
// unique index on UserID enforces the one-attempt-per-user rule at the
// storage layer, independent of the eligibility check.
//
// swagger:model ExamSession
type ExamSession struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"sessionId"`
	UserID          uint      `gorm:"uniqueIndex;not null" json:"userId"`
	TotalQuestions  int       `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers  int       `gorm:"not null" json:"correctAnswers"`
	ScorePercentage int       `gorm:"not null" json:"scorePercentage"`
	Passed          bool      `gorm:"not null" json:"passed"`
	CreatedAt       time.Time `json:"createdAt"`

	Answers []ExamAnswer `gorm:"foreignKey:SessionID" json:"results,omitempty"`
}

func (ExamSession) TableName() string {
	return "exam_sessions"
}

// ExamAnswer is the per-question detail row of an ExamSession. A nil
// SubmittedAnswer means the question was issued but never answered; it
// still counts toward the total.
//
// swagger:model ExamAnswer
type ExamAnswer struct {
	BaseModel
	SessionID       string  `gorm:"index;type:varchar(36);not null" json:"-"`
	QuestionID      uint    `gorm:"not null" json:"questionId"`
	QuestionText    string  `gorm:"type:text;not null" json:"question"`
	SubmittedAnswer *string `gorm:"size:512" json:"userAnswer"`
	CorrectAnswer   string  `gorm:"size:512;not null" json:"correctAnswer"`
	IsCorrect       bool    `gorm:"not null" json:"isCorrect"`
	MaterialID      uint    `json:"materialId"`
}

func (ExamAnswer) TableName() string {
	return "exam_answers"
}
