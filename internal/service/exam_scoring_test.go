package service

import (
	"testing"

	"github.com/Ravshan88/online-lesson/internal/model"
	"github.com/Ravshan88/online-lesson/internal/util"
)

func scoringBank() map[uint]*model.Question {
	bank := map[uint]*model.Question{}
	answers := map[uint]string{1: "A", 2: "B", 3: "C", 4: "D", 5: "A"}
	for id, answer := range answers {
		bank[id] = &model.Question{
			BaseModel:     model.BaseModel{ID: id},
			MaterialID:    1,
			Content:       "savol",
			Options:       model.StringList{"A", "B", "C", "D"},
			CorrectAnswer: answer,
		}
	}
	return bank
}

func TestGradeExamCountsUnansweredAsIncorrect(t *testing.T) {
	bank := scoringBank()
	issued := []uint{1, 2, 3}

	// Only one question answered; the other two still count in the total.
	grade, err := GradeExam(issued, map[uint]string{1: "A"}, bank, 60)
	if err != nil {
		t.Fatalf("GradeExam: %v", err)
	}

	if grade.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3", grade.TotalQuestions)
	}
	if grade.CorrectAnswers != 1 {
		t.Errorf("CorrectAnswers = %d, want 1", grade.CorrectAnswers)
	}
	if grade.ScorePercentage != 33 {
		t.Errorf("ScorePercentage = %d, want 33 (floor of 100/3)", grade.ScorePercentage)
	}
	if grade.Passed {
		t.Error("Passed = true, want false")
	}
	if len(grade.Answers) != 3 {
		t.Fatalf("len(Answers) = %d, want 3", len(grade.Answers))
	}
	for _, a := range grade.Answers {
		if a.QuestionID == 1 {
			if a.SubmittedAnswer == nil || *a.SubmittedAnswer != "A" || !a.IsCorrect {
				t.Errorf("question 1: got %+v, want correct answer A", a)
			}
		} else {
			if a.SubmittedAnswer != nil {
				t.Errorf("question %d: SubmittedAnswer = %q, want nil", a.QuestionID, *a.SubmittedAnswer)
			}
			if a.IsCorrect {
				t.Errorf("question %d: IsCorrect = true for unanswered question", a.QuestionID)
			}
		}
	}
}

func TestGradeExamEmptyAnswerIsUnanswered(t *testing.T) {
	grade, err := GradeExam([]uint{1}, map[uint]string{1: ""}, scoringBank(), 60)
	if err != nil {
		t.Fatalf("GradeExam: %v", err)
	}
	if grade.Answers[0].SubmittedAnswer != nil {
		t.Error("empty-string answer should be recorded as unanswered")
	}
	if grade.CorrectAnswers != 0 {
		t.Errorf("CorrectAnswers = %d, want 0", grade.CorrectAnswers)
	}
}

func TestGradeExamPassBoundary(t *testing.T) {
	bank := scoringBank()
	tests := []struct {
		name    string
		correct int
		want    bool
		score   int
	}{
		{"two of five fails", 2, false, 40},
		{"three of five passes", 3, true, 60},
		{"all five passes", 5, true, 100},
	}

	issued := []uint{1, 2, 3, 4, 5}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := map[uint]string{}
			for i := 0; i < tt.correct; i++ {
				id := issued[i]
				answers[id] = bank[id].CorrectAnswer
			}
			grade, err := GradeExam(issued, answers, bank, 60)
			if err != nil {
				t.Fatalf("GradeExam: %v", err)
			}
			if grade.ScorePercentage != tt.score {
				t.Errorf("ScorePercentage = %d, want %d", grade.ScorePercentage, tt.score)
			}
			if grade.Passed != tt.want {
				t.Errorf("Passed = %v, want %v", grade.Passed, tt.want)
			}
		})
	}
}

func TestGradeExamDropsUnknownIssuedIDs(t *testing.T) {
	grade, err := GradeExam([]uint{1, 2, 99}, map[uint]string{1: "A", 2: "B"}, scoringBank(), 60)
	if err != nil {
		t.Fatalf("GradeExam: %v", err)
	}
	if grade.TotalQuestions != 2 {
		t.Errorf("TotalQuestions = %d, want 2 (unknown id dropped)", grade.TotalQuestions)
	}
	if !grade.Passed || grade.ScorePercentage != 100 {
		t.Errorf("got score %d passed %v, want 100 passed", grade.ScorePercentage, grade.Passed)
	}
}

func TestGradeExamRejectsAllUnknown(t *testing.T) {
	_, err := GradeExam([]uint{97, 98, 99}, nil, scoringBank(), 60)
	if err != util.ErrUnknownQuestions {
		t.Fatalf("err = %v, want ErrUnknownQuestions", err)
	}
}

func TestGradeExamWrongAnswerRecorded(t *testing.T) {
	grade, err := GradeExam([]uint{1}, map[uint]string{1: "D"}, scoringBank(), 60)
	if err != nil {
		t.Fatalf("GradeExam: %v", err)
	}
	a := grade.Answers[0]
	if a.IsCorrect {
		t.Error("IsCorrect = true for wrong answer")
	}
	if a.SubmittedAnswer == nil || *a.SubmittedAnswer != "D" {
		t.Error("wrong answer should still be recorded verbatim")
	}
	if a.CorrectAnswer != "A" {
		t.Errorf("CorrectAnswer = %q, want A", a.CorrectAnswer)
	}
}
