package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/anitya/internal/domain"
)

// intParam reads a numeric path parameter. A value that is not a number
// can't name any record, so it is reported as notFound.
func intParam(c echo.Context, name string, notFound error) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}

func projectID(c echo.Context) (int, error) {
	return intParam(c, "id", domain.ErrProjectNotFound)
}

func packageID(c echo.Context) (int, error) {
	return intParam(c, "pkg", domain.ErrPackageNotFound)
}
