package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/anitya/internal/domain"
	"github.com/deppfellow/anitya/internal/form"
	"github.com/deppfellow/anitya/internal/server"
	"github.com/deppfellow/anitya/internal/service"
)

type ProjectHandler struct {
	Handler
	projects *service.ProjectService
}

func NewProjectHandler(s *server.Server, projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		Handler:  NewHandler(s),
		projects: projects,
	}
}

// ProjectFormResponse describes an empty project form: its current values
// and the options of its choice fields.
type ProjectFormResponse struct {
	Form           *form.ProjectForm `json:"form"`
	Backends       form.Choices      `json:"backends"`
	VersionSchemes form.Choices      `json:"version_schemes"`
}

// ProjectResponse is a project with its distro mappings.
type ProjectResponse struct {
	Project  map[string]any    `json:"project"`
	Packages []*domain.Package `json:"packages"`
}

// newProjectForm builds the form with the choices registered right now.
func (h *ProjectHandler) newProjectForm(echo.Context) (*form.ProjectForm, error) {
	return h.projects.NewForm(), nil
}

// GetForm serves an empty project form.
func (h *ProjectHandler) GetForm(c echo.Context) error {
	f := h.projects.NewForm()
	return c.JSON(http.StatusOK, ProjectFormResponse{
		Form:           f,
		Backends:       f.BackendChoices(),
		VersionSchemes: f.VersionSchemeChoices(),
	})
}

func (h *ProjectHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, f *form.ProjectForm) (map[string]any, error) {
		project, err := h.projects.Create(c.Request().Context(), f)
		if err != nil {
			return nil, err
		}
		return project.JSON(), nil
	}, http.StatusCreated, h.newProjectForm)
}

func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := projectID(c)
	if err != nil {
		return err
	}

	project, packages, err := h.projects.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if packages == nil {
		packages = []*domain.Package{}
	}
	return c.JSON(http.StatusOK, ProjectResponse{
		Project:  project.JSON(),
		Packages: packages,
	})
}

// Delete removes a project once the confirmation form is submitted. The
// same route answered with GET asks for the confirmation instead.
func (h *ProjectHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, f *form.ConfirmationForm) error {
		id, err := projectID(c)
		if err != nil {
			return err
		}
		return h.projects.Delete(c.Request().Context(), id, f, form.IsSubmitted(c.Request()))
	}, http.StatusNoContent, NewForm[form.ConfirmationForm])
}

func (h *ProjectHandler) Flag() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, f *form.FlagProjectForm) (*domain.Flag, error) {
		id, err := projectID(c)
		if err != nil {
			return nil, err
		}
		return h.projects.Flag(c.Request().Context(), id, f)
	}, http.StatusCreated, NewForm[form.FlagProjectForm])
}

func (h *ProjectHandler) RecordVersion() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, f *form.VersionForm) (map[string]any, error) {
		id, err := projectID(c)
		if err != nil {
			return nil, err
		}

		project, err := h.projects.RecordVersion(c.Request().Context(), id, f)
		if err != nil {
			return nil, err
		}
		return project.JSON(), nil
	}, http.StatusCreated, NewForm[form.VersionForm])
}
