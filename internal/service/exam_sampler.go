package service

import (
	"math/rand"
	"sync"

	"github.com/Ravshan88/online-lesson/internal/model"
	"github.com/Ravshan88/online-lesson/internal/util"

	"github.com/google/uuid"
)

// SampledQuestion is one question as presented to the student. It carries
// a shuffled copy of the option list and never the correct answer.
type SampledQuestion struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// ExamSampler draws the question set for one exam session. The generator
// is injected so sampling is replayable in tests; access is serialized
// because one sampler is shared across request handlers.
type ExamSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewExamSampler(src rand.Source) *ExamSampler {
	return &ExamSampler{rng: rand.New(src)}
}

// Draw selects min(maxCount, len(bank)) questions without replacement,
// shuffles their order independently of the selection, and shuffles each
// question's options. It returns a fresh unguessable session id, the
// issued question ids in presentation order, and the outbound payload.
func (s *ExamSampler) Draw(bank []model.Question, maxCount int) (string, []uint, []SampledQuestion, error) {
	if len(bank) == 0 {
		return "", nil, nil, util.ErrNoQuestionsAvailable
	}

	count := maxCount
	if len(bank) < count {
		count = len(bank)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Selection: a random permutation of the bank, truncated to count.
	perm := s.rng.Perm(len(bank))
	selected := make([]*model.Question, count)
	for i := 0; i < count; i++ {
		selected[i] = &bank[perm[i]]
	}

	// Presentation order is shuffled again, independent of selection.
	s.rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	issued := make([]uint, 0, count)
	payload := make([]SampledQuestion, 0, count)
	for _, q := range selected {
		options := make([]string, len(q.Options))
		copy(options, q.Options)
		s.rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		issued = append(issued, q.ID)
		payload = append(payload, SampledQuestion{
			ID:       q.ID,
			Question: q.Content,
			Options:  options,
		})
	}

	return uuid.New().String(), issued, payload, nil
}
