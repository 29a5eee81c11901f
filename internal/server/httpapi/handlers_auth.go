package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/roadwatch/internal/common"
	"github.com/dmitrijs2005/roadwatch/internal/server/services"
)

type signupRequest struct {
	Username string `json:"username" validate:"required,max=80"`
	Email    string `json:"email" validate:"required,max=120"`
	Password string `json:"password" validate:"required,maxbytes=72"` // bcrypt input limit
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type userBody struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type signupResponse struct {
	Message string   `json:"message"`
	User    userBody `json:"user"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
}

func newTokenResponse(pair *services.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		UserID:       pair.User.ID,
		Username:     pair.User.Username,
	}
}

func (s *HTTPServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondErr(w, r, err, nil)
		return
	}
	if err := validateRequest(&req, "Missing username, email, or password"); err != nil {
		s.respondErr(w, r, err, nil)
		return
	}

	user, err := s.svc.Users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.respondErr(w, r, err, errorMessages{
			common.KindConflict: "Username or email already exists",
			common.KindInternal: "Could not create user",
		})
		return
	}

	writeJSON(w, http.StatusCreated, signupResponse{
		Message: "User created successfully",
		User:    userBody{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondErr(w, r, err, nil)
		return
	}
	if err := validateRequest(&req, "Missing username or password"); err != nil {
		s.respondErr(w, r, err, nil)
		return
	}

	pair, err := s.svc.Users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.respondErr(w, r, err, errorMessages{
			common.KindAuthentication: "Invalid username or password",
			common.KindInternal:       "Could not log in",
		})
		return
	}

	writeJSON(w, http.StatusOK, newTokenResponse(pair))
}

func (s *HTTPServer) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondErr(w, r, err, nil)
		return
	}
	if err := validateRequest(&req, "Missing refresh_token"); err != nil {
		s.respondErr(w, r, err, nil)
		return
	}

	pair, err := s.svc.Users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		msg := "Invalid refresh token"
		if errors.Is(err, common.ErrRefreshTokenExpired) {
			msg = "Refresh token has expired"
		}
		s.respondErr(w, r, err, errorMessages{
			common.KindAuthentication: msg,
			common.KindInternal:       "Could not refresh token",
		})
		return
	}

	writeJSON(w, http.StatusOK, newTokenResponse(pair))
}
