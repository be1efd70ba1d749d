package plugins

import (
	"errors"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/deppfellow/anitya/internal/domain"
)

// RPMScheme accepts any non-blank version: RPM ordering compares arbitrary
// strings segment by segment.
type RPMScheme struct{}

func (RPMScheme) Name() string { return "RPM" }

func (RPMScheme) Parse(version string) error {
	if strings.TrimSpace(version) == "" {
		return &domain.InvalidVersionError{Version: version, Err: errors.New("version is empty")}
	}
	return nil
}

// SemanticScheme accepts semantic versions (https://semver.org). A leading
// "v" and missing minor/patch components are tolerated.
type SemanticScheme struct{}

func (SemanticScheme) Name() string { return "Semantic" }

func (SemanticScheme) Parse(version string) error {
	if _, err := semver.NewVersion(version); err != nil {
		return &domain.InvalidVersionError{Version: version, Err: err}
	}
	return nil
}
