package ports

import "context"

// MemberRenamer applies an accepted nickname on the chat platform.
type MemberRenamer interface {
	SetNickname(ctx context.Context, guildID, userID, nickname string) error
}
