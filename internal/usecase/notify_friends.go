package usecase

import (
	"context"
	"log/slog"

	"sicknote-hub/internal/domain"
)

// NotifyFriends performs the notify action. Gating happens in the
// privileged caller, so a denied gate means the backend call is never
// issued; this usecase surfaces the outcome to the screen.
type NotifyFriends struct {
	notifier domain.FriendNotifier
	logger   *slog.Logger
}

// NewNotifyFriends creates a new NotifyFriends usecase.
func NewNotifyFriends(n domain.FriendNotifier, l *slog.Logger) *NotifyFriends {
	return &NotifyFriends{notifier: n, logger: l}
}

// Execute notifies the selected friends.
func (uc *NotifyFriends) Execute(ctx context.Context, friendIDs []int64) error {
	if err := uc.notifier.NotifyFriends(ctx, friendIDs); err != nil {
		if denied, ok := domain.AsAccessDenied(err); ok {
			// An expected, renderable outcome; not a failure.
			uc.logger.InfoContext(ctx, "notify-friends gated",
				"reason", denied.Decision.Reason)
		}
		return err
	}

	uc.logger.InfoContext(ctx, "friends notified", "count", len(friendIDs))
	return nil
}
