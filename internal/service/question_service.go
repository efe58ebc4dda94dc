package service

import (
	"github.com/Ravshan88/online-lesson/internal/model"
	"github.com/Ravshan88/online-lesson/internal/repository"
	"github.com/Ravshan88/online-lesson/internal/util"

	"gorm.io/gorm"
)

// QuestionService manages the question bank. Admin payloads include the
// correct answer; student-facing quiz payloads never do.
type QuestionService struct {
	Questions *repository.QuestionRepository
	Materials *repository.MaterialRepository
}

func NewQuestionService(questions *repository.QuestionRepository, materials *repository.MaterialRepository) *QuestionService {
	return &QuestionService{Questions: questions, Materials: materials}
}

type QuestionReq struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
}

// AdminQuestion is the teacher/admin view, correct answer included.
type AdminQuestion struct {
	ID            uint     `json:"id"`
	MaterialID    uint     `json:"materialId"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

func adminView(q *model.Question) AdminQuestion {
	return AdminQuestion{
		ID:            q.ID,
		MaterialID:    q.MaterialID,
		Question:      q.Content,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
	}
}

func (s *QuestionService) Create(materialID uint, req QuestionReq) (*AdminQuestion, error) {
	if _, err := s.Materials.FindByID(materialID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrMaterialNotFound
		}
		return nil, err
	}

	question := &model.Question{
		MaterialID:    materialID,
		Content:       req.Question,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
	}
	if err := s.Questions.Create(question); err != nil {
		return nil, err
	}
	view := adminView(question)
	return &view, nil
}

func (s *QuestionService) Get(id uint) (*AdminQuestion, error) {
	question, err := s.Questions.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	view := adminView(question)
	return &view, nil
}

func (s *QuestionService) ListAll() ([]AdminQuestion, error) {
	questions, err := s.Questions.FindAll()
	if err != nil {
		return nil, err
	}
	views := make([]AdminQuestion, 0, len(questions))
	for i := range questions {
		views = append(views, adminView(&questions[i]))
	}
	return views, nil
}

func (s *QuestionService) ListByMaterial(materialID uint) ([]AdminQuestion, error) {
	questions, err := s.Questions.FindByMaterial(materialID)
	if err != nil {
		return nil, err
	}
	views := make([]AdminQuestion, 0, len(questions))
	for i := range questions {
		views = append(views, adminView(&questions[i]))
	}
	return views, nil
}

// StudentQuiz returns a material's questions without correct answers.
func (s *QuestionService) StudentQuiz(materialID uint) ([]SampledQuestion, error) {
	questions, err := s.Questions.FindByMaterial(materialID)
	if err != nil {
		return nil, err
	}
	quiz := make([]SampledQuestion, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		options := make([]string, len(q.Options))
		copy(options, q.Options)
		quiz = append(quiz, SampledQuestion{
			ID:       q.ID,
			Question: q.Content,
			Options:  options,
		})
	}
	return quiz, nil
}

func (s *QuestionService) Update(id uint, req QuestionReq) (*AdminQuestion, error) {
	question, err := s.Questions.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	question.Content = req.Question
	question.Options = req.Options
	question.CorrectAnswer = req.CorrectAnswer

	if err := s.Questions.Update(question); err != nil {
		return nil, err
	}
	view := adminView(question)
	return &view, nil
}

func (s *QuestionService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Questions.Delete(id)
}
