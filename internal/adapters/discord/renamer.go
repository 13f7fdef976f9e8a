// Package discord applies accepted nicknames through the Discord REST API.
package discord

import (
	"context"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/samber/oops"
)

// memberUpdater is the part of rest.Rest the renamer uses.
type memberUpdater interface {
	UpdateMember(guildID snowflake.ID, userID snowflake.ID, memberUpdate discord.MemberUpdate, opts ...rest.RequestOpt) (*discord.Member, error)
}

type Renamer struct {
	members memberUpdater
	log     *slog.Logger
}

// NewRenamer builds a REST-only client for token. No gateway is opened.
func NewRenamer(token string, log *slog.Logger) *Renamer {
	return newRenamer(rest.New(rest.NewClient(token)), log)
}

func newRenamer(m memberUpdater, log *slog.Logger) *Renamer {
	if log == nil {
		log = slog.Default()
	}
	return &Renamer{members: m, log: log.With("component", "discord")}
}

func (r *Renamer) SetNickname(ctx context.Context, guildID, userID, nickname string) error {
	errb := oops.In("discord").With("guild_id", guildID, "user_id", userID)
	gid, err := snowflake.Parse(guildID)
	if err != nil {
		return errb.Wrapf(err, "invalid guild id")
	}
	uid, err := snowflake.Parse(userID)
	if err != nil {
		return errb.Wrapf(err, "invalid user id")
	}
	if _, err := r.members.UpdateMember(gid, uid, discord.MemberUpdate{Nick: &nickname}, rest.WithCtx(ctx)); err != nil {
		r.log.Error("rename failed", "guild_id", guildID, "user_id", userID, "err", err)
		return errb.Wrapf(err, "update member nickname")
	}
	r.log.Info("member renamed", "guild_id", guildID, "user_id", userID, "nickname", nickname)
	return nil
}
