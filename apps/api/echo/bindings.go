package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/storage/filestore"
)

// intParam parses a numeric path parameter; anything that is not a valid id
// resolves to a 404.
func intParam(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}

// saveFormFile stores the uploaded file part under its sanitized filename
// and returns the stored name. A request without that part returns ok=false;
// only a failing upload is an error.
func saveFormFile(ctx echo.Context, field string, store *filestore.Store) (name string, ok bool, err error) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		return "", false, nil
	}
	src, err := fh.Open()
	if err != nil {
		return "", false, errors.Wrapf(err, "opening uploaded %s", field)
	}
	defer func() { _ = src.Close() }()

	name, err = store.Save(fh.Filename, src)
	if err != nil {
		return "", false, errors.Wrapf(err, "storing uploaded %s", field)
	}
	return name, true, nil
}
