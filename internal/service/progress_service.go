package service

import (
	"errors"
	"math"
	"strings"

	"github.com/Ravshan88/online-lesson/internal/model"
	"github.com/Ravshan88/online-lesson/internal/repository"
	"github.com/Ravshan88/online-lesson/internal/util"
)

// ProgressService tracks per-item completion flags and aggregates them
// into a per-material summary.
type ProgressService struct {
	Progress  *repository.ProgressRepository
	Materials *repository.MaterialRepository
	Questions *repository.QuestionRepository
}

func NewProgressService(
	progress *repository.ProgressRepository,
	materials *repository.MaterialRepository,
	questions *repository.QuestionRepository,
) *ProgressService {
	return &ProgressService{Progress: progress, Materials: materials, Questions: questions}
}

// MarkComplete flags one attachment or question as done for the user.
// Exactly one id must be present.
func (s *ProgressService) MarkComplete(userID uint, attachmentID *string, questionID *uint) (*model.UserProgress, error) {
	switch {
	case attachmentID != nil && questionID == nil:
		return s.Progress.MarkAttachmentComplete(userID, *attachmentID)
	case questionID != nil && attachmentID == nil:
		return s.Progress.MarkQuestionComplete(userID, *questionID)
	default:
		return nil, errors.New("exactly one of attachmentId or questionId is required")
	}
}

type QuizAnswerResult struct {
	QuestionID    uint    `json:"questionId"`
	Question      string  `json:"question"`
	UserAnswer    *string `json:"userAnswer"`
	CorrectAnswer string  `json:"correctAnswer"`
	IsCorrect     bool    `json:"isCorrect"`
}

type QuizResult struct {
	TotalQuestions int                `json:"totalQuestions"`
	CorrectCount   int                `json:"correctCount"`
	Results        []QuizAnswerResult `json:"results"`
}

// SubmitMaterialQuiz grades the user's answers against all of a
// material's questions and marks the correctly answered ones complete.
// This is practice grading, separate from the one-shot final exam.
func (s *ProgressService) SubmitMaterialQuiz(userID uint, materialID uint, answers map[uint]string) (*QuizResult, error) {
	questions, err := s.Questions.FindByMaterial(materialID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrMaterialNotFound
	}

	result := &QuizResult{Results: make([]QuizAnswerResult, 0, len(questions))}
	for i := range questions {
		q := &questions[i]

		var submitted *string
		isCorrect := false
		if answer, ok := answers[q.ID]; ok && answer != "" {
			value := answer
			submitted = &value
			isCorrect = answer == q.CorrectAnswer
		}

		if isCorrect {
			result.CorrectCount++
			if _, err := s.Progress.MarkQuestionComplete(userID, q.ID); err != nil {
				return nil, err
			}
		}

		result.Results = append(result.Results, QuizAnswerResult{
			QuestionID:    q.ID,
			Question:      q.Content,
			UserAnswer:    submitted,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
		})
	}
	result.TotalQuestions = len(questions)

	return result, nil
}

type QuestionProgress struct {
	QuestionID uint `json:"questionId"`
	Completed  bool `json:"completed"`
}

type MaterialProgress struct {
	MaterialID        uint               `json:"materialId"`
	PDFCompleted      bool               `json:"pdfCompleted"`
	PDFAttachmentID   *string            `json:"pdfAttachmentId"`
	VideoCompleted    bool               `json:"videoCompleted"`
	VideoAttachmentID *string            `json:"videoAttachmentId"`
	TotalQuestions    int                `json:"totalQuestions"`
	CompletedCount    int                `json:"completedQuestions"`
	Questions         []QuestionProgress `json:"questionProgress"`
	Percentage        float64            `json:"percentage"`
}

// GetMaterialProgress computes the completion summary over the
// material's PDF, video and quiz questions.
func (s *ProgressService) GetMaterialProgress(userID uint, materialID uint) (*MaterialProgress, error) {
	material, err := s.Materials.FindByID(materialID)
	if err != nil {
		return nil, util.ErrMaterialNotFound
	}

	summary := &MaterialProgress{MaterialID: materialID}

	var pdfAttachment, videoAttachment *model.Attachment
	for i := range material.Attachments {
		att := &material.Attachments[i]
		lower := strings.ToLower(att.Path)
		switch {
		case att.Type == model.AttachmentFile && strings.HasSuffix(lower, ".pdf"):
			pdfAttachment = att
		case att.Type == model.AttachmentLink || hasVideoExtension(lower):
			videoAttachment = att
		}
	}

	if pdfAttachment != nil {
		summary.PDFAttachmentID = &pdfAttachment.ID
		done, err := s.Progress.IsAttachmentCompleted(userID, pdfAttachment.ID)
		if err != nil {
			return nil, err
		}
		summary.PDFCompleted = done
	}
	if videoAttachment != nil {
		summary.VideoAttachmentID = &videoAttachment.ID
		done, err := s.Progress.IsAttachmentCompleted(userID, videoAttachment.ID)
		if err != nil {
			return nil, err
		}
		summary.VideoCompleted = done
	}

	questions, err := s.Questions.FindByMaterial(materialID)
	if err != nil {
		return nil, err
	}
	questionIDs := make([]uint, 0, len(questions))
	for i := range questions {
		questionIDs = append(questionIDs, questions[i].ID)
	}
	completed, err := s.Progress.CompletedQuestionIDs(userID, questionIDs)
	if err != nil {
		return nil, err
	}

	summary.TotalQuestions = len(questions)
	summary.Questions = make([]QuestionProgress, 0, len(questions))
	for _, id := range questionIDs {
		done := completed[id]
		if done {
			summary.CompletedCount++
		}
		summary.Questions = append(summary.Questions, QuestionProgress{QuestionID: id, Completed: done})
	}

	totalItems := summary.TotalQuestions
	completedItems := summary.CompletedCount
	if pdfAttachment != nil {
		totalItems++
		if summary.PDFCompleted {
			completedItems++
		}
	}
	if videoAttachment != nil {
		totalItems++
		if summary.VideoCompleted {
			completedItems++
		}
	}
	if totalItems > 0 {
		summary.Percentage = math.Round(float64(completedItems)/float64(totalItems)*10000) / 100
	}

	return summary, nil
}

func hasVideoExtension(path string) bool {
	for ext := range videoExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
