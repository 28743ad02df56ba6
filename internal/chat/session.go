// Package chat implements the stateful streaming conversation scoped to one
// connection's lifetime.
package chat

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/dreamgarage/dreamcar/models"
	"github.com/dreamgarage/dreamcar/provider"
)

const systemPrompt = `You are a friendly vehicle shopping assistant. Help the user figure out what kind of vehicle fits their needs: ask about budget, vehicle type, fuel efficiency, seating, and must-have features. Keep replies short and conversational.`

// tokenBuffer bounds the in-flight stream so a slow client applies
// backpressure to the producer instead of growing memory.
const tokenBuffer = 64

// Session accumulates one connection's transcript and streams model output
// for each inbound turn. A session is owned by a single connection and is
// never shared, so no locking is needed; message handling is strictly
// sequential.
type Session struct {
	ID     string
	llm    provider.Provider
	logger *log.Logger
	turns  []models.ChatTurn
}

// NewSession starts an empty session.
func NewSession(llm provider.Provider) *Session {
	id := uuid.NewString()
	return &Session{
		ID:     id,
		llm:    llm,
		logger: log.New(log.Writer(), "[CHAT "+id[:8]+"] ", log.LstdFlags),
	}
}

// Append records one inbound turn. An empty role defaults to user.
func (s *Session) Append(turn models.ChatTurn) {
	if turn.Role == "" {
		turn.Role = models.RoleUser
	}
	s.turns = append(s.turns, turn)
}

// Messages builds the full prompt: the fixed system instruction followed by
// the transcript in chronological order. Only user and assistant turns go to
// the model; other roles stay in the stored transcript but are left out of
// the prompt (observed behavior, kept as-is).
func (s *Session) Messages() []provider.Message {
	msgs := make([]provider.Message, 0, len(s.turns)+1)
	msgs = append(msgs, provider.Message{Role: "system", Content: systemPrompt})
	for _, t := range s.turns {
		if t.Role != models.RoleUser && t.Role != models.RoleAssistant {
			continue
		}
		msgs = append(msgs, provider.Message{Role: string(t.Role), Content: t.Message})
	}
	return msgs
}

// Respond streams the model's answer to the current transcript, calling send
// for every incremental token. The full reply is appended to the transcript
// as an assistant turn once the stream ends. If send fails (the client went
// away) the in-flight stream is cancelled and its remaining tokens are
// discarded; that is a normal termination path and send's error is returned
// so the caller can stop without emitting further frames.
func (s *Session) Respond(ctx context.Context, send func(token string) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tokens := make(chan string, tokenBuffer)
	done := make(chan error, 1)
	go func() {
		defer close(tokens)
		done <- s.llm.ChatStream(ctx, s.Messages(), tokens)
	}()

	var reply []byte
	for tok := range tokens {
		if err := send(tok); err != nil {
			cancel()
			for range tokens {
			}
			<-done
			return err
		}
		reply = append(reply, tok...)
	}

	if err := <-done; err != nil {
		s.logger.Printf("stream ended with error: %v", err)
	}
	if len(reply) > 0 {
		s.turns = append(s.turns, models.ChatTurn{Role: models.RoleAssistant, Message: string(reply)})
	}
	return nil
}
