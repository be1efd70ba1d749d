package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/anitya/internal/domain"
	"github.com/deppfellow/anitya/internal/form"
	"github.com/deppfellow/anitya/internal/server"
	"github.com/deppfellow/anitya/internal/service"
)

type MappingHandler struct {
	Handler
	mappings *service.MappingService
}

func NewMappingHandler(s *server.Server, mappings *service.MappingService) *MappingHandler {
	return &MappingHandler{
		Handler:  NewHandler(s),
		mappings: mappings,
	}
}

// editForm loads the mapping named by the path and pre-fills the form with
// it, so the request only needs to carry the fields that change.
func (h *MappingHandler) editForm(c echo.Context) (*form.MappingForm, error) {
	pid, err := projectID(c)
	if err != nil {
		return nil, err
	}
	pkgID, err := packageID(c)
	if err != nil {
		return nil, err
	}
	return h.mappings.EditForm(c.Request().Context(), pid, pkgID)
}

func (h *MappingHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, f *form.MappingForm) (*domain.Package, error) {
		id, err := projectID(c)
		if err != nil {
			return nil, err
		}
		return h.mappings.Create(c.Request().Context(), id, f)
	}, http.StatusCreated, NewForm[form.MappingForm])
}

// GetEditForm serves the mapping form pre-filled from the stored mapping.
func (h *MappingHandler) GetEditForm(c echo.Context) error {
	f, err := h.editForm(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

func (h *MappingHandler) Edit() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, f *form.MappingForm) (*domain.Package, error) {
		pid, err := projectID(c)
		if err != nil {
			return nil, err
		}
		pkgID, err := packageID(c)
		if err != nil {
			return nil, err
		}
		return h.mappings.Edit(c.Request().Context(), pid, pkgID, f)
	}, http.StatusOK, h.editForm)
}
