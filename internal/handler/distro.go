package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/anitya/internal/domain"
	"github.com/deppfellow/anitya/internal/form"
	"github.com/deppfellow/anitya/internal/server"
	"github.com/deppfellow/anitya/internal/service"
)

type DistroHandler struct {
	Handler
	distros *service.DistroService
}

func NewDistroHandler(s *server.Server, distros *service.DistroService) *DistroHandler {
	return &DistroHandler{
		Handler: NewHandler(s),
		distros: distros,
	}
}

func (h *DistroHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, f *form.DistroForm) (*domain.Distro, error) {
		return h.distros.Create(c.Request().Context(), f)
	}, http.StatusCreated, NewForm[form.DistroForm])
}
