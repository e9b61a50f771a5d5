package handler

import (
	"net"
	"net/http"
	"time"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/service"
)

type sessionResponse struct {
	User model.User `json:"user"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in model.LoginInput
	if !decodeJSON(w, r, &in) {
		return
	}
	s, err := h.svc.Auth.Login(r.Context(), in, clientIP(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.setSessionCookies(w, s)
	writeJSON(w, http.StatusOK, sessionResponse{User: s.User})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(refreshCookie); err == nil {
		token = c.Value
	}
	s, err := h.svc.Auth.Refresh(r.Context(), token)
	if err != nil {
		h.clearSessionCookies(w)
		h.writeServiceError(w, r, err)
		return
	}
	h.setSessionCookies(w, s)
	writeJSON(w, http.StatusOK, sessionResponse{User: s.User})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(refreshCookie); err == nil {
		token = c.Value
	}
	if err := h.svc.Auth.Logout(r.Context(), token); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.clearSessionCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Auth.Me(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) setSessionCookies(w http.ResponseWriter, s *service.Session) {
	http.SetCookie(w, h.cookie(accessCookie, "/", s.Access.Value, s.Access.ExpiresAt))
	http.SetCookie(w, h.cookie(refreshCookie, "/api/auth", s.Refresh.Value, s.Refresh.ExpiresAt))
}

func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	for _, c := range []*http.Cookie{
		h.cookie(accessCookie, "/", "", time.Unix(0, 0)),
		h.cookie(refreshCookie, "/api/auth", "", time.Unix(0, 0)),
	} {
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

func (h *Handler) cookie(name, path, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// clientIP keys the login limiter. RealIP has already rewritten RemoteAddr
// when a proxy header is present.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
