package form

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/anitya/internal/validation"
)

func validProjectForm() *ProjectForm {
	f := NewProjectForm(ProjectOptions{
		Backends:       []string{"GitHub", "PyPI"},
		VersionSchemes: []string{"RPM", "Semantic"},
	})
	f.Name = "requests"
	f.Homepage = "https://pypi.org/project/requests"
	f.Backend = "PyPI"
	f.VersionScheme = "RPM"
	return f
}

// fieldErrors returns the per-field messages of a failed Validate.
func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	require.Error(t, err)

	var verrs validation.CustomValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs.Fields()
}

func TestNewChoices(t *testing.T) {
	choices := NewChoices([]string{"b", "a", "b", ""})
	assert.Equal(t, Choices{{Value: "a", Label: "a"}, {Value: "b", Label: "b"}}, choices)
	assert.Equal(t, []string{"a", "b"}, choices.Values())
	assert.Empty(t, NewChoices(nil))
}

func TestProjectFormChoices(t *testing.T) {
	f := NewProjectForm(ProjectOptions{
		Backends:       []string{"b", "a"},
		VersionSchemes: []string{"Semantic", "RPM"},
	})

	assert.Equal(t, Choices{{"a", "a"}, {"b", "b"}}, f.BackendChoices())
	assert.Equal(t, Choices{{"RPM", "RPM"}, {"Semantic", "Semantic"}}, f.VersionSchemeChoices())

	empty := NewProjectForm(ProjectOptions{})
	assert.Empty(t, empty.BackendChoices())
	assert.Empty(t, empty.VersionSchemeChoices())
}

func TestProjectFormValid(t *testing.T) {
	f := validProjectForm()
	f.VersionURL = "  "
	f.Name = "  requests "

	require.NoError(t, f.Validate())
	assert.Equal(t, "requests", f.Name)
	assert.Equal(t, "", f.VersionURL)
	assert.False(t, f.Insecure.Bool())
}

func TestProjectFormRequiredFields(t *testing.T) {
	fields := map[string]func(f *ProjectForm){
		"name":           func(f *ProjectForm) { f.Name = "" },
		"homepage":       func(f *ProjectForm) { f.Homepage = "" },
		"backend":        func(f *ProjectForm) { f.Backend = "" },
		"version_scheme": func(f *ProjectForm) { f.VersionScheme = "   " },
	}

	for field, clear := range fields {
		t.Run(field, func(t *testing.T) {
			f := validProjectForm()
			clear(f)

			got := fieldErrors(t, f.Validate())
			assert.Equal(t, map[string][]string{field: {"is required"}}, got)
		})
	}
}

func TestProjectFormHomepage(t *testing.T) {
	tests := []struct {
		homepage string
		valid    bool
	}{
		{"https://example.com", true},
		{"http://example.com/path?q=1", true},
		{"not a url", false},
		{"example.com", false},
		{"/relative/path", false},
		{"javascript:alert(1)", false},
		{"mailto:x@y.org", false},
		{"foo:bar", false},
		{"http://localhost", false},
		{"http://example.", false},
		{"https://127.0.0.1:8080/", true},
		{"https://release-monitoring.org/project/1/", true},
	}

	for _, tt := range tests {
		t.Run(tt.homepage, func(t *testing.T) {
			f := validProjectForm()
			f.Homepage = tt.homepage

			err := f.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, map[string][]string{"homepage": {"must be a valid URL"}}, fieldErrors(t, err))
		})
	}
}

func TestProjectFormInvalidChoice(t *testing.T) {
	f := validProjectForm()
	f.Backend = "SourceForge"
	f.VersionScheme = "Calendar"

	got := fieldErrors(t, f.Validate())
	assert.Equal(t, []string{"must be one of: GitHub, PyPI"}, got["backend"])
	assert.Equal(t, []string{"must be one of: RPM, Semantic"}, got["version_scheme"])

	noChoices := NewProjectForm(ProjectOptions{})
	noChoices.Name = "x"
	noChoices.Homepage = "https://x.org"
	noChoices.Backend = "GitHub"
	noChoices.VersionScheme = "RPM"
	got = fieldErrors(t, noChoices.Validate())
	assert.Equal(t, []string{"is not a valid choice"}, got["backend"])
}

func TestMappingFormPrefill(t *testing.T) {
	f := NewMappingForm(stubMapping{
		distro:      "Fedora",
		packageName: "foo",
		versionURL:  "https://example.com/foo",
		regex:       `foo-(\d+)`,
	})

	assert.Equal(t, "Fedora", f.Distro)
	assert.Equal(t, "foo", f.PackageName)
	assert.Equal(t, "https://example.com/foo", f.VersionURL)
	assert.Equal(t, `foo-(\d+)`, f.Regex)
	assert.NoError(t, f.Validate())

	blank := NewMappingForm(nil)
	assert.Equal(t, &MappingForm{}, blank)
	got := fieldErrors(t, blank.Validate())
	assert.Equal(t, map[string][]string{
		"distro":       {"is required"},
		"package_name": {"is required"},
	}, got)
}

func TestSimpleForms(t *testing.T) {
	assert.NoError(t, (&TokenForm{}).Validate())
	assert.NoError(t, (&ConfirmationForm{}).Validate())
	assert.NoError(t, (&DistroForm{Name: "Debian"}).Validate())
	assert.NoError(t, (&VersionForm{Version: "1.0"}).Validate())

	assert.Equal(t, map[string][]string{"reason": {"is required"}},
		fieldErrors(t, (&FlagProjectForm{Reason: "\n\t"}).Validate()))
	assert.Equal(t, map[string][]string{"name": {"is required"}},
		fieldErrors(t, (&DistroForm{}).Validate()))
	assert.Equal(t, map[string][]string{"version": {"is required"}},
		fieldErrors(t, (&VersionForm{}).Validate()))
}

func TestCheckbox(t *testing.T) {
	for _, in := range []string{"", "false", "FALSE", "off", "0"} {
		var b Checkbox = true
		require.NoError(t, b.UnmarshalParam(in))
		assert.False(t, b.Bool(), in)
	}
	for _, in := range []string{"y", "on", "true", "1", "yes"} {
		var b Checkbox
		require.NoError(t, b.UnmarshalParam(in))
		assert.True(t, b.Bool(), in)
	}

	var v struct {
		A Checkbox `json:"a"`
		B Checkbox `json:"b"`
		C Checkbox `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": true, "b": "on", "c": "false"}`), &v))
	assert.True(t, v.A.Bool())
	assert.True(t, v.B.Bool())
	assert.False(t, v.C.Bool())
}

func TestIsSubmitted(t *testing.T) {
	assert.True(t, IsSubmitted(httptest.NewRequest(http.MethodPost, "/", nil)))
	assert.True(t, IsSubmitted(httptest.NewRequest(http.MethodDelete, "/", nil)))
	assert.False(t, IsSubmitted(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestProjectFormBind(t *testing.T) {
	values := url.Values{
		"name":           {"requests"},
		"homepage":       {"https://pypi.org/project/requests"},
		"backend":        {"PyPI"},
		"version_scheme": {"RPM"},
		"insecure":       {"y"},
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	f := NewProjectForm(ProjectOptions{Backends: []string{"PyPI"}, VersionSchemes: []string{"RPM"}})
	require.NoError(t, c.Bind(f))
	require.NoError(t, f.Validate())

	assert.Equal(t, "requests", f.Name)
	assert.True(t, f.Insecure.Bool())
	assert.False(t, f.CheckRelease.Bool())
	assert.Len(t, f.BackendChoices(), 1)
}

type stubMapping struct {
	distro, packageName, versionURL, regex string
}

func (s stubMapping) GetDistro() string      { return s.distro }
func (s stubMapping) GetPackageName() string { return s.packageName }
func (s stubMapping) GetVersionURL() string  { return s.versionURL }
func (s stubMapping) GetRegex() string       { return s.regex }
