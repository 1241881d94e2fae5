package inbound

import (
	"errors"
	"net/http"

	"github.com/shandysiswandi/gopost/internal/auth/usecase"
	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/pkg/router"
)

// failedLoginRedirect is where a rejected login is sent.
const failedLoginRedirect = "/signup"

type HTTPEndpoint struct {
	uc uc
}

// Signup registers credentials.
// @Summary Sign up
// @Tags Auth
// @Accept json
// @Param request body CredentialRequest true "Credentials"
// @Success 201 "Created"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 500 "Internal server error"
// @Router /api/auth/signup [post]
func (h *HTTPEndpoint) Signup(r *router.Request) (any, error) {
	var req CredentialRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Signup(r.Context(), usecase.SignupInput{
		Username: req.Username,
		Password: req.Password,
	}); err != nil {
		return nil, err
	}

	return router.Empty{Status: http.StatusCreated}, nil
}

// Login opens a session.
// @Summary Log in
// @Tags Auth
// @Accept json
// @Param request body CredentialRequest true "Credentials"
// @Success 200 "Session cookie set"
// @Success 302 "Rejected, redirected to /signup"
// @Failure 500 "Internal server error"
// @Router /api/auth/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req CredentialRequest
	if err := r.DecodeBody(&req); err != nil {
		return router.Empty{Status: http.StatusFound, Location: failedLoginRedirect}, nil
	}

	out, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if errors.Is(err, goerror.ErrInvalidCredential) {
		return router.Empty{Status: http.StatusFound, Location: failedLoginRedirect}, nil
	}
	if err != nil {
		return nil, err
	}

	return router.Empty{Status: http.StatusOK, Cookies: []*http.Cookie{out.Cookie}}, nil
}

// Logout ends the current session.
// @Summary Log out
// @Tags Auth
// @Success 204 "Session cleared"
// @Failure 500 "Internal server error"
// @Router /api/auth/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	out, err := h.uc.Logout(r.Context())
	if err != nil {
		return nil, err
	}

	return router.Empty{Status: http.StatusNoContent, Cookies: []*http.Cookie{out.Cookie}}, nil
}

// Session reports who is logged in.
// @Summary Current session
// @Tags Auth
// @Produce json
// @Success 200 {object} router.successResponse{data=SessionResponse} "Identity"
// @Failure 401 {object} router.errorResponse "No session"
// @Router /api/auth/session [get]
func (h *HTTPEndpoint) Session(r *router.Request) (any, error) {
	identity, err := h.uc.Session(r.Context())
	if err != nil {
		return nil, err
	}

	return NewSessionResponse(*identity), nil
}
