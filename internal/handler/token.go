package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/anitya/internal/domain"
	"github.com/deppfellow/anitya/internal/form"
	"github.com/deppfellow/anitya/internal/server"
	"github.com/deppfellow/anitya/internal/service"
)

type TokenHandler struct {
	Handler
	tokens *service.TokenService
}

func NewTokenHandler(s *server.Server, tokens *service.TokenService) *TokenHandler {
	return &TokenHandler{
		Handler: NewHandler(s),
		tokens:  tokens,
	}
}

func (h *TokenHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, f *form.TokenForm) (*domain.Token, error) {
		return h.tokens.Create(c.Request().Context(), f)
	}, http.StatusCreated, NewForm[form.TokenForm])
}
