package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/school"
	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/storage/filestore"
)

type fileApi struct {
	svc    *school.Service
	images *filestore.Store
	files  *filestore.Store
}

func registerFileAPI(g *echo.Group, sessionMW echo.MiddlewareFunc, api fileApi) {
	g.GET("/assignment-file/:id", api.fetchAssignmentFile)
	g.GET("/profile_image", api.fetchProfileImage, sessionMW)
}

// fetchAssignmentFile streams the stored file of an assignment as an
// attachment.
func (api *fileApi) fetchAssignmentFile(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	a, err := api.svc.GetAssignment(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding assignment by ID")
	}
	if !a.File.Valid || a.File.String == "" {
		return errHttpNotFound
	}
	return serveStored(ctx, api.files, a.File.String, true /* attachment */)
}

// fetchProfileImage streams the calling identity's stored profile image.
func (api *fileApi) fetchProfileImage(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	var imageURL null.String
	switch usr.Kind() {
	case user.KindTeacher:
		t, err := api.svc.GetTeacher(ctx.Request().Context(), usr.ProfileID())
		if err != nil {
			return errors.Wrap(err, "finding teacher profile")
		}
		imageURL = t.ImageURL
	case user.KindStudent:
		s, err := api.svc.GetStudent(ctx.Request().Context(), usr.ProfileID())
		if err != nil {
			return errors.Wrap(err, "finding student profile")
		}
		imageURL = s.ImageURL
	case user.KindParent:
		p, err := api.svc.GetParent(ctx.Request().Context(), usr.ProfileID())
		if err != nil {
			return errors.Wrap(err, "finding parent profile")
		}
		imageURL = p.ImageURL
	}
	if !imageURL.Valid || imageURL.String == "" {
		return errHttpNotFound
	}
	return serveStored(ctx, api.images, imageURL.String, false)
}

func serveStored(ctx echo.Context, store *filestore.Store, name string, attachment bool) error {
	f, err := store.Open(name)
	if err != nil {
		if errors.Cause(err) == filestore.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "opening stored file")
	}
	_ = f.Close()

	if attachment {
		return ctx.Attachment(store.Path(name), filestore.SanitizeFilename(name))
	}
	return ctx.File(store.Path(name))
}
