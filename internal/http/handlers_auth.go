package http

import (
	"errors"
	"log/slog"
	"net/http"

	"ritmo/internal/auth"
	"ritmo/internal/core"
	applog "ritmo/internal/log"
	"ritmo/internal/store"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user, err := s.auth.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, store.ErrUserExists):
		writeError(w, http.StatusConflict, "username already taken")
		return
	case errors.Is(err, core.ErrEmptyUsername), errors.Is(err, core.ErrShortPassword):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Registration failed",
			applog.FieldUsername, req.Username,
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	slog.InfoContext(r.Context(), "User registered",
		applog.FieldOwnerID, user.ID,
		applog.FieldUsername, user.Username)
	writeJSON(w, http.StatusCreated, userResponse{ID: user.ID, Username: user.Username})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	token, user, err := s.auth.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Login failed",
			applog.FieldUsername, req.Username,
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Username: user.Username},
	})
}
