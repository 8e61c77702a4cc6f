package quiz

import (
	"github.com/abhisek/wordfill/internal/sentences"
)

// questionReadyMsg is sent when the source has produced a question.
type questionReadyMsg struct {
	Question *sentences.Question
	Err      error
}
