package api

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/plaugmann/family-meal-planner/internal/auth"
	"github.com/plaugmann/family-meal-planner/internal/store"
)

type contextKey string

const householdKey contextKey = "household"

func householdFrom(r *http.Request) *store.Household {
	h, _ := r.Context().Value(householdKey).(*store.Household)
	return h
}

// withHousehold resolves the requesting household from the session cookie,
// or from the single first household when running in single-tenant mode.
func (s *Server) withHousehold(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		household, err := s.resolveHousehold(r)
		if err != nil {
			respondError(w, http.StatusUnauthorized, CodeNotAllowed, "Authentication required.")
			return
		}
		ctx := context.WithValue(r.Context(), householdKey, household)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) resolveHousehold(r *http.Request) (*store.Household, error) {
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
		household, err := s.store.HouseholdBySession(r.Context(), auth.HashToken(cookie.Value))
		if err == nil {
			return household, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	if s.singleTenant {
		return s.firstOrCreateHousehold(r.Context())
	}
	return nil, errors.New("no session")
}

func (s *Server) firstOrCreateHousehold(ctx context.Context) (*store.Household, error) {
	household, err := s.store.FirstHousehold(ctx)
	if err == nil {
		return household, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	pinHash, err := auth.HashPin(s.defaultPin)
	if err != nil {
		return nil, err
	}
	return s.store.CreateHousehold(ctx, "Family Household", pinHash)
}

type loginRequest struct {
	Pin string `json:"pin"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	payload, ok := parseJSON[loginRequest](r)
	if !ok || payload.Pin == "" {
		respondError(w, http.StatusBadRequest, CodeValidation, "PIN is required.")
		return
	}
	if !auth.ValidPin(payload.Pin) {
		respondError(w, http.StatusBadRequest, CodeValidation, "PIN must be 4-8 digits.")
		return
	}

	households, err := s.store.ListHouseholds(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Login failed.")
		return
	}

	var matched *store.Household
	for i := range households {
		if auth.VerifyPin(payload.Pin, households[i].PinHash) {
			matched = &households[i]
			break
		}
	}
	if matched == nil {
		respondError(w, http.StatusUnauthorized, CodeNotAllowed, "Wrong PIN.")
		return
	}

	token, tokenHash, err := auth.NewSessionToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Login failed.")
		return
	}
	if err := s.store.CreateSession(r.Context(), matched.ID, tokenHash, auth.SessionExpiry(s.sessionTTL)); err != nil {
		slog.Error("failed to create session", "error", err)
		respondError(w, http.StatusInternalServerError, CodeInternal, "Login failed.")
		return
	}

	http.SetCookie(w, auth.SessionCookie(token, s.sessionTTL, s.secureCookie))
	respondJSON(w, http.StatusOK, map[string]any{"household": matched})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
		if err := s.store.DeleteSession(r.Context(), auth.HashToken(cookie.Value)); err != nil {
			slog.Warn("failed to delete session", "error", err)
		}
	}
	http.SetCookie(w, auth.ClearSessionCookie(s.secureCookie))
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"household": householdFrom(r)})
}
