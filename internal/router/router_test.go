package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/anitya/internal/config"
	"github.com/deppfellow/anitya/internal/handler"
	"github.com/deppfellow/anitya/internal/repository"
	"github.com/deppfellow/anitya/internal/server"
	"github.com/deppfellow/anitya/internal/service"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "8080",
			CORSAllowedOrigins: []string{"*"},
			BaseURL:            "https://release-monitoring.org",
		},
		Observability: config.DefaultObservabilityConfig(),
	}

	logger := zerolog.Nop()
	srv, err := server.New(cfg, &logger)
	require.NoError(t, err)

	services, err := service.NewServices(srv, repository.NewRepositories())
	require.NoError(t, err)

	return NewRouter(srv, handler.NewHandlers(srv, services))
}

type response struct {
	Status int
	Header http.Header
	Body   map[string]any
}

func do(t *testing.T, r *echo.Echo, req *http.Request) response {
	t.Helper()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	resp := response{Status: rec.Code, Header: rec.Header()}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp.Body), rec.Body.String())
	}
	return resp
}

func postForm(t *testing.T, r *echo.Echo, path string, values url.Values) response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return do(t, r, req)
}

func postJSON(t *testing.T, r *echo.Echo, path string, body any) response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(data)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return do(t, r, req)
}

func get(t *testing.T, r *echo.Echo, path string) response {
	t.Helper()
	return do(t, r, httptest.NewRequest(http.MethodGet, path, nil))
}

// fieldErrors groups the "errors" of an error body by field.
func fieldErrors(body map[string]any) map[string][]string {
	out := map[string][]string{}
	list, _ := body["errors"].([]any)
	for _, item := range list {
		fe := item.(map[string]any)
		field, _ := fe["field"].(string)
		out[field] = append(out[field], fe["error"].(string))
	}
	return out
}

func createProject(t *testing.T, r *echo.Echo, name, backend, scheme string) int {
	t.Helper()

	resp := postForm(t, r, "/api/projects", url.Values{
		"name":           {name},
		"homepage":       {"https://example.com/" + name},
		"backend":        {backend},
		"version_scheme": {scheme},
	})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	return int(resp.Body["id"].(float64))
}

func TestStatus(t *testing.T) {
	r := newTestRouter(t)

	resp := get(t, r, "/status")
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "healthy", resp.Body["status"])
	assert.Equal(t, "test", resp.Body["environment"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp := do(t, r, req)

	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestGetProjectForm(t *testing.T) {
	r := newTestRouter(t)

	resp := get(t, r, "/api/forms/project")
	require.Equal(t, http.StatusOK, resp.Status)

	schemes := resp.Body["version_schemes"].([]any)
	require.Len(t, schemes, 2)
	assert.Equal(t, map[string]any{"value": "RPM", "label": "RPM"}, schemes[0])

	backends := resp.Body["backends"].([]any)
	assert.Contains(t, backends, map[string]any{"value": "PyPI", "label": "PyPI"})

	f := resp.Body["form"].(map[string]any)
	assert.Equal(t, "", f["name"])
	assert.Equal(t, false, f["insecure"])
}

func TestCreateProject(t *testing.T) {
	r := newTestRouter(t)

	t.Run("form encoded", func(t *testing.T) {
		resp := postForm(t, r, "/api/projects", url.Values{
			"name":           {"  requests  "},
			"homepage":       {"https://pypi.org/project/requests"},
			"backend":        {"PyPI"},
			"version_scheme": {"RPM"},
			"insecure":       {"on"},
		})
		require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
		assert.Equal(t, "requests", resp.Body["name"])
		assert.Equal(t, "pypi", resp.Body["ecosystem_name"])
		assert.Equal(t, true, resp.Body["insecure"])
	})

	t.Run("duplicate in ecosystem", func(t *testing.T) {
		resp := postJSON(t, r, "/api/projects", map[string]any{
			"name":           "requests",
			"homepage":       "https://github.com/psf/requests",
			"backend":        "PyPI",
			"version_scheme": "Semantic",
		})
		require.Equal(t, http.StatusConflict, resp.Status)
		assert.Equal(t, "PROJECT_EXISTS", resp.Body["code"])
		assert.Equal(t, "Unable to create project since it already exists.", resp.Body["message"])

		details := resp.Body["details"].(map[string]any)
		requested := details["requested_project"].(map[string]any)
		assert.Equal(t, "requests", requested["name"])
		assert.Equal(t, "pypi", requested["ecosystem_name"])
	})

	t.Run("same name outside any ecosystem", func(t *testing.T) {
		createProject(t, r, "requests", "GitHub", "RPM")
		createProject(t, r, "requests", "GitHub", "RPM")
	})
}

func TestCreateProjectValidation(t *testing.T) {
	r := newTestRouter(t)

	resp := postForm(t, r, "/api/projects", url.Values{
		"homepage":       {"not a url"},
		"backend":        {"Nope"},
		"version_scheme": {""},
	})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "BAD_REQUEST", resp.Body["code"])
	assert.Equal(t, "Validation failed", resp.Body["message"])

	fields := fieldErrors(resp.Body)
	assert.Equal(t, []string{"is required"}, fields["name"])
	assert.Equal(t, []string{"must be a valid URL"}, fields["homepage"])
	assert.Equal(t, []string{"is required"}, fields["version_scheme"])
	require.Len(t, fields["backend"], 1)
	assert.True(t, strings.HasPrefix(fields["backend"][0], "must be one of:"), fields["backend"][0])
}

func TestCreateProjectWithMapping(t *testing.T) {
	r := newTestRouter(t)

	resp := postForm(t, r, "/api/projects", url.Values{
		"name":           {"geany"},
		"homepage":       {"https://www.geany.org"},
		"backend":        {"custom"},
		"version_scheme": {"RPM"},
		"distro":         {"Fedora"},
		"package_name":   {"geany"},
	})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	id := int(resp.Body["id"].(float64))

	resp = get(t, r, fmt.Sprintf("/api/projects/%d", id))
	require.Equal(t, http.StatusOK, resp.Status)

	packages := resp.Body["packages"].([]any)
	require.Len(t, packages, 1)
	pkg := packages[0].(map[string]any)
	assert.Equal(t, "Fedora", pkg["distro"])
	assert.Equal(t, "geany", pkg["package_name"])
}

func TestMappings(t *testing.T) {
	r := newTestRouter(t)

	first := createProject(t, r, "geany", "GitHub", "RPM")
	second := createProject(t, r, "geany-fork", "GitHub", "RPM")

	resp := postForm(t, r, fmt.Sprintf("/api/projects/%d/mappings", first), url.Values{
		"distro":       {"Fedora"},
		"package_name": {"geany"},
	})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	pkgID := int(resp.Body["id"].(float64))

	t.Run("conflict with another project", func(t *testing.T) {
		resp := postForm(t, r, fmt.Sprintf("/api/projects/%d/mappings", second), url.Values{
			"distro":       {"Fedora"},
			"package_name": {"geany"},
		})
		require.Equal(t, http.StatusConflict, resp.Status)
		assert.Equal(t, "INVALID_MAPPING", resp.Body["code"])

		link := fmt.Sprintf("https://release-monitoring.org/project/%d/", first)
		assert.Contains(t, resp.Body["message"], link)

		action := resp.Body["action"].(map[string]any)
		assert.Equal(t, "redirect", action["type"])
		assert.Equal(t, link, action["value"])
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := postForm(t, r, fmt.Sprintf("/api/projects/%d/mappings", second), url.Values{})
		require.Equal(t, http.StatusBadRequest, resp.Status)

		fields := fieldErrors(resp.Body)
		assert.Equal(t, []string{"is required"}, fields["distro"])
		assert.Equal(t, []string{"is required"}, fields["package_name"])
	})

	t.Run("edit form is pre-filled", func(t *testing.T) {
		resp := get(t, r, fmt.Sprintf("/api/projects/%d/mappings/%d", first, pkgID))
		require.Equal(t, http.StatusOK, resp.Status)
		assert.Equal(t, "Fedora", resp.Body["distro"])
		assert.Equal(t, "geany", resp.Body["package_name"])
	})

	t.Run("edit keeps unsent fields", func(t *testing.T) {
		resp := postForm(t, r, fmt.Sprintf("/api/projects/%d/mappings/%d", first, pkgID), url.Values{
			"regex": {`geany-(\d+)`},
		})
		require.Equal(t, http.StatusOK, resp.Status, resp.Body)
		assert.Equal(t, "Fedora", resp.Body["distro"])
		assert.Equal(t, "geany", resp.Body["package_name"])
		assert.Equal(t, `geany-(\d+)`, resp.Body["regex"])
	})

	t.Run("edit of a mapping of another project", func(t *testing.T) {
		resp := get(t, r, fmt.Sprintf("/api/projects/%d/mappings/%d", second, pkgID))
		assert.Equal(t, http.StatusNotFound, resp.Status)
		assert.Equal(t, "PACKAGE_NOT_FOUND", resp.Body["code"])
	})

	t.Run("edit onto another mapping of the same project", func(t *testing.T) {
		resp := postForm(t, r, fmt.Sprintf("/api/projects/%d/mappings", first), url.Values{
			"distro":       {"Debian"},
			"package_name": {"geany"},
		})
		require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
		debianID := int(resp.Body["id"].(float64))

		resp = postForm(t, r, fmt.Sprintf("/api/projects/%d/mappings/%d", first, debianID), url.Values{
			"distro": {"Fedora"},
		})
		require.Equal(t, http.StatusConflict, resp.Status)
		assert.Equal(t, "MAPPING_EXISTS", resp.Body["code"])
		assert.Nil(t, resp.Body["action"])
	})
}

func TestDeleteProject(t *testing.T) {
	r := newTestRouter(t)
	id := createProject(t, r, "geany", "GitHub", "RPM")
	path := fmt.Sprintf("/api/projects/%d/delete", id)

	resp := get(t, r, path)
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "CONFIRMATION_REQUIRED", resp.Body["code"])
	action := resp.Body["action"].(map[string]any)
	assert.Equal(t, "confirm", action["type"])

	resp = postForm(t, r, path, url.Values{})
	assert.Equal(t, http.StatusNoContent, resp.Status)

	resp = get(t, r, fmt.Sprintf("/api/projects/%d", id))
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "PROJECT_NOT_FOUND", resp.Body["code"])
}

func TestRecordVersion(t *testing.T) {
	r := newTestRouter(t)
	id := createProject(t, r, "geany", "GitHub", "Semantic")
	path := fmt.Sprintf("/api/projects/%d/versions", id)

	resp := postForm(t, r, path, url.Values{"version": {"1.38.0"}})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	assert.Equal(t, "1.38.0", resp.Body["version"])

	resp = postForm(t, r, path, url.Values{"version": {"banana"}})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "INVALID_VERSION", resp.Body["code"])
	assert.Contains(t, resp.Body["message"], `Invalid version "banana"`)

	resp = postForm(t, r, path, url.Values{})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, []string{"is required"}, fieldErrors(resp.Body)["version"])
}

func TestFlagProject(t *testing.T) {
	r := newTestRouter(t)
	id := createProject(t, r, "geany", "GitHub", "RPM")
	path := fmt.Sprintf("/api/projects/%d/flag", id)

	resp := postForm(t, r, path, url.Values{"reason": {"   "}})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, []string{"is required"}, fieldErrors(resp.Body)["reason"])

	resp = postForm(t, r, path, url.Values{"reason": {"Homepage moved\nto GitHub"}})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	assert.Equal(t, "open", resp.Body["state"])

	resp = postForm(t, r, "/api/projects/999/flag", url.Values{"reason": {"gone"}})
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestDistrosAndTokens(t *testing.T) {
	r := newTestRouter(t)

	resp := postJSON(t, r, "/api/distros", map[string]string{"name": "Debian"})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	assert.Equal(t, "Debian", resp.Body["name"])

	resp = postJSON(t, r, "/api/distros", map[string]string{"name": "debian"})
	require.Equal(t, http.StatusConflict, resp.Status)
	assert.Equal(t, "DISTRO_EXISTS", resp.Body["code"])

	resp = postForm(t, r, "/api/tokens", url.Values{"description": {"ci"}})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	assert.NotEmpty(t, resp.Body["token"])
	assert.Equal(t, "ci", resp.Body["description"])
}

func TestNotFound(t *testing.T) {
	r := newTestRouter(t)

	resp := get(t, r, "/api/nothing-here")
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "Route not found", resp.Body["message"])

	resp = get(t, r, "/api/projects/abc")
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "PROJECT_NOT_FOUND", resp.Body["code"])
}

func TestMalformedBody(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/distros", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	resp := do(t, r, req)

	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "BAD_REQUEST", resp.Body["code"])
}
