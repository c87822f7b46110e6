package services

import (
	"context"
	"log/slog"
	"time"

	"firebase.google.com/go/messaging"
)

type TokenStore interface {
	GetTokensByUserID(ctx context.Context, userID int) ([]string, error)
	InsertToken(ctx context.Context, userID int, token string) error
	DeleteToken(ctx context.Context, token string) error
}

// NotifierService pushes lifecycle notices to an owner's registered devices.
// Delivery is fire-and-forget: it runs detached from the request that
// triggered it, and failures are logged, never surfaced.
type NotifierService struct {
	Client    *messaging.Client
	TokenRepo TokenStore
	Logger    *slog.Logger
}

func (s *NotifierService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Notify fans the notice out to every token the owner has registered. The
// caller's context is not used: the triggering write has already committed
// and its request may be gone by the time delivery happens.
func (s *NotifierService) Notify(_ context.Context, userID int, title, body string) {
	if s.Client == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		tokens, err := s.TokenRepo.GetTokensByUserID(ctx, userID)
		if err != nil {
			s.logger().Warn("notification tokens unavailable", "user_id", userID, "error", err)
			return
		}
		for _, token := range tokens {
			msg := &messaging.Message{
				Token: token,
				Notification: &messaging.Notification{
					Title: title,
					Body:  body,
				},
				Android: &messaging.AndroidConfig{
					Priority: "high",
				},
			}
			if _, err := s.Client.Send(ctx, msg); err != nil {
				s.logger().Warn("notification delivery failed", "user_id", userID, "error", err)
			}
		}
	}()
}

func (s *NotifierService) RegisterToken(ctx context.Context, userID int, token string) error {
	return s.TokenRepo.InsertToken(ctx, userID, token)
}

func (s *NotifierService) UnregisterToken(ctx context.Context, token string) error {
	return s.TokenRepo.DeleteToken(ctx, token)
}
