package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/quizforge/quizforge-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ChatService is the AI-chat collaborator for question help. The reply is a
// canned mock; a real model integration would slot in behind the same
// request-to-text contract.
type ChatService struct {
	questionRepo *repository.QuestionRepository
	log          zerolog.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(questionRepo *repository.QuestionRepository, log zerolog.Logger) *ChatService {
	return &ChatService{
		questionRepo: questionRepo,
		log:          log.With().Str("component", "chat_service").Logger(),
	}
}

// Ask produces a reply about the given question. The question must exist;
// the stored correct answer is never included in the reply.
func (s *ChatService) Ask(ctx context.Context, questionID int, content string) (string, error) {
	questions, err := s.questionRepo.ListByIDs(ctx, []int{questionID})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("get question: %w", err)
	}
	if len(questions) == 0 {
		return "", ErrNotFound
	}

	s.log.Debug().Int("question_id", questionID).Msg("Chat request")

	topic := truncateRunes(questions[0].Content, 80)
	return fmt.Sprintf(
		"Let's think about this step by step. The question asks: %q. %s Try restating it in your own words, then eliminate the options that clearly don't fit.",
		topic, hintFor(content),
	), nil
}

// ReplyChunks splits a reply into small chunks for the streaming transport.
func ReplyChunks(reply string) []string {
	words := strings.Fields(reply)
	chunks := make([]string, 0, len(words)/4+1)
	for len(words) > 0 {
		n := 4
		if n > len(words) {
			n = len(words)
		}
		chunks = append(chunks, strings.Join(words[:n], " ")+" ")
		words = words[n:]
	}
	return chunks
}

// truncateRunes shortens s to at most max runes, never splitting a UTF-8
// sequence.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func hintFor(content string) string {
	switch {
	case strings.Contains(strings.ToLower(content), "why"):
		return "Focus on the reasoning behind each option, not just the facts."
	case strings.Contains(strings.ToLower(content), "hint"):
		return "Here's a nudge: re-read the question for the one detail that rules options out."
	default:
		return "A good start is to identify what the question is really testing."
	}
}
