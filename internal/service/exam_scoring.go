package service

import (
	"github.com/Ravshan88/online-lesson/internal/model"
	"github.com/Ravshan88/online-lesson/internal/util"
)

// ExamGrade is the outcome of grading one submission. It is plain data;
// persistence belongs to the caller.
type ExamGrade struct {
	TotalQuestions  int
	CorrectAnswers  int
	ScorePercentage int
	Passed          bool
	Answers         []model.ExamAnswer
}

// GradeExam grades every issued question, not just the answered ones: a
// question the student skipped stays in the total and counts as
// incorrect. Correctness is exact string equality with the authoritative
// answer. Issued ids that do not resolve against the bank are dropped; if
// none resolve the whole submission is rejected.
func GradeExam(issuedIDs []uint, answers map[uint]string, bank map[uint]*model.Question, passThreshold int) (*ExamGrade, error) {
	graded := make([]model.ExamAnswer, 0, len(issuedIDs))
	correct := 0

	for _, id := range issuedIDs {
		question, ok := bank[id]
		if !ok {
			continue
		}

		var submitted *string
		isCorrect := false
		if answer, answered := answers[id]; answered && answer != "" {
			value := answer
			submitted = &value
			isCorrect = answer == question.CorrectAnswer
		}
		if isCorrect {
			correct++
		}

		graded = append(graded, model.ExamAnswer{
			QuestionID:      question.ID,
			QuestionText:    question.Content,
			SubmittedAnswer: submitted,
			CorrectAnswer:   question.CorrectAnswer,
			IsCorrect:       isCorrect,
			MaterialID:      question.MaterialID,
		})
	}

	total := len(graded)
	if total == 0 {
		return nil, util.ErrUnknownQuestions
	}

	score := correct * 100 / total

	return &ExamGrade{
		TotalQuestions:  total,
		CorrectAnswers:  correct,
		ScorePercentage: score,
		Passed:          score >= passThreshold,
		Answers:         graded,
	}, nil
}
