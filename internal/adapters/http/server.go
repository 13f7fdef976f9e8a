package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"nickguard/internal/domain"
	"nickguard/internal/ports"
)

const (
	maxBodyBytes    = 1 << 20
	maxSweepMembers = 1000
)

// Server exposes the nickname engine over JSON.
type Server struct {
	nicknames ports.Nicknames
	roster    ports.Roster
	steam     ports.SteamLinks
	renamer   ports.MemberRenamer
	log       *slog.Logger
}

// New wires the handlers. renamer may be nil when no Discord token is set;
// the rename route then answers 503.
func New(nicknames ports.Nicknames, roster ports.Roster, steam ports.SteamLinks, renamer ports.MemberRenamer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{nicknames: nicknames, roster: roster, steam: steam, renamer: renamer, log: log.With("component", "http")}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.Route("/v1", func(r chi.Router) {
		r.Route("/nicknames", func(r chi.Router) {
			r.Post("/validate", s.validate)
			r.Post("/autofix", s.autofix)
			r.Post("/decide", s.decide)
			r.Post("/sweep", s.sweep)
		})
		r.Post("/guilds/{guildID}/members/{userID}/nickname", s.rename)
		r.Post("/steam-links/check", s.checkSteamLink)
	})
	return r
}

type nicknameRequest struct {
	Nickname string `json:"nickname"`
}

type sweepRequest struct {
	Members  []domain.Member `json:"members"`
	Semantic bool            `json:"semantic"`
}

type steamLinkRequest struct {
	URL string `json:"url"`
}

type autofixResponse struct {
	Fix     domain.AutoFixResult     `json:"fix"`
	Verdict domain.ValidationVerdict `json:"verdict"`
}

type renameResponse struct {
	GuildID  string `json:"guild_id"`
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
}

type errorResponse struct {
	Error   string                    `json:"error"`
	Verdict *domain.ValidationVerdict `json:"verdict,omitempty"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	var req nicknameRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.nicknames.Validate(req.Nickname))
}

func (s *Server) autofix(w http.ResponseWriter, r *http.Request) {
	var req nicknameRequest
	if !s.decode(w, r, &req) {
		return
	}
	fix := s.nicknames.AutoFix(req.Nickname)
	writeJSON(w, http.StatusOK, autofixResponse{Fix: fix, Verdict: s.nicknames.Validate(fix.Fixed)})
}

func (s *Server) decide(w http.ResponseWriter, r *http.Request) {
	var req nicknameRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.nicknames.Decide(r.Context(), req.Nickname))
}

func (s *Server) sweep(w http.ResponseWriter, r *http.Request) {
	var req sweepRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Members) > maxSweepMembers {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "too many members"})
		return
	}
	writeJSON(w, http.StatusOK, s.roster.Audit(r.Context(), req.Members, req.Semantic))
}

func (s *Server) rename(w http.ResponseWriter, r *http.Request) {
	if s.renamer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "discord is not configured"})
		return
	}
	var req nicknameRequest
	if !s.decode(w, r, &req) {
		return
	}
	guildID, userID := chi.URLParam(r, "guildID"), chi.URLParam(r, "userID")
	verdict := s.nicknames.Validate(req.Nickname)
	if !verdict.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "nickname is invalid", Verdict: &verdict})
		return
	}
	nick := s.nicknames.Normalize(req.Nickname)
	if err := s.renamer.SetNickname(r.Context(), guildID, userID, nick); err != nil {
		s.log.Error("rename failed", "guild_id", guildID, "user_id", userID, "err", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "rename failed"})
		return
	}
	writeJSON(w, http.StatusOK, renameResponse{GuildID: guildID, UserID: userID, Nickname: nick})
}

func (s *Server) checkSteamLink(w http.ResponseWriter, r *http.Request) {
	var req steamLinkRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.steam.Check(req.URL))
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
