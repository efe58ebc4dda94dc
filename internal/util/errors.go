package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrPermissionDenied  = errors.New("permission denied")

	ErrSectionNotFound  = errors.New("section not found")
	ErrMaterialNotFound = errors.New("material not found")
	ErrQuestionNotFound = errors.New("question not found")

	// Final-exam taxonomy. These are terminal, user-facing conditions;
	// none of them is retried by the server.
	ErrNoQuestionsAvailable      = errors.New("no questions available for the exam")
	ErrExamAlreadyTaken          = errors.New("final exam has already been taken")
	ErrExamAlreadySubmitted      = errors.New("exam session has already been submitted")
	ErrUnknownQuestions          = errors.New("submission references unknown questions")
	ErrSessionNotFound           = errors.New("exam session not found")
	ErrNotEligibleForCertificate = errors.New("a passing score is required for the certificate")
)
