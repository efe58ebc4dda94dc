package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/Ravshan88/online-lesson/internal/model"
	"github.com/Ravshan88/online-lesson/internal/util"
)

func passedSession() *model.ExamSession {
	return &model.ExamSession{
		ID:              "11111111-2222-3333-4444-555555555555",
		UserID:          7,
		TotalQuestions:  30,
		CorrectAnswers:  24,
		ScorePercentage: 80,
		Passed:          true,
		CreatedAt:       time.Date(2024, 5, 14, 10, 30, 0, 0, time.UTC),
	}
}

func TestRenderRejectsFailedSession(t *testing.T) {
	svc := NewCertificateService(60)
	session := passedSession()
	session.Passed = false
	session.ScorePercentage = 40

	if _, err := svc.Render(session, "Aziz Karimov"); err != util.ErrNotEligibleForCertificate {
		t.Fatalf("err = %v, want ErrNotEligibleForCertificate", err)
	}
}

func TestRenderProducesPDF(t *testing.T) {
	svc := NewCertificateService(60)
	out, err := svc.Render(passedSession(), "Aziz Karimov")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty output")
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not start with PDF header: %q", out[:8])
	}
}

func TestRenderDeterministicForSession(t *testing.T) {
	svc := NewCertificateService(60)
	first, err := svc.Render(passedSession(), "Aziz Karimov")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := svc.Render(passedSession(), "Aziz Karimov")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("same session rendered two different documents")
	}
}

func TestScoreColorBanding(t *testing.T) {
	tests := []struct {
		score   int
		r, g, b int
	}{
		{100, 0x52, 0xc4, 0x1a},
		{70, 0x52, 0xc4, 0x1a},
		{69, 0xfa, 0xad, 0x14},
		{50, 0xfa, 0xad, 0x14},
		{49, 0xff, 0x4d, 0x4f},
		{0, 0xff, 0x4d, 0x4f},
	}
	for _, tt := range tests {
		r, g, b := scoreColor(tt.score)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("scoreColor(%d) = %x,%x,%x want %x,%x,%x", tt.score, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}
