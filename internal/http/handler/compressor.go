package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"

	"zipdrop/internal/model"
	"zipdrop/internal/service"
	"zipdrop/internal/session"
)

const archiveDownloadName = "compressed_files.zip"

// CompressorForm renders the upload form with the session's current quota and
// tier state.
func CompressorForm(sessions *session.Manager, tiers model.TierTable) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.Get(c)
		if err != nil {
			return err
		}
		day := session.Today()

		return renderPage(c, sessions, sess, "compressor", fiber.Map{
			"Used":      sessions.UploadsUsed(sess, day),
			"Remaining": sessions.UploadsRemaining(sess, day),
			"Limit":     tiers.Limits(model.TierFree).DailyUploads,
			"IsPremium": sessions.IsPremium(sess),
		})
	}
}

/// CompressorUpload handles the upload batch: size ceiling, quota gate,
// optional image conversion, and the ZIP download. Rejections are flashed and
// redirected, never surfaced as server errors.
func CompressorUpload(sessions *session.Manager, svc service.CompressService, tiers model.TierTable) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.Get(c)
		if err != nil {
			return err
		}
		day := session.Today()
		isPremium := sessions.IsPremium(sess)

		files, err := readUploadBatch(c)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return flashRedirect(c, sessions, sess, "Please select at least one file.", "/compressor")
		}

		// Ceiling for the tier as it stands at request start.
		tier := model.TierFree
		if isPremium {
			tier = model.TierPremium
		}
		maxBatch := tiers.Limits(tier).MaxBatchBytes
		if total := model.BatchSize(files); total > maxBatch {
			msg := (&service.BatchTooLargeError{TotalBytes: total, LimitBytes: maxBatch}).Error()
			return flashRedirect(c, sessions, sess, msg, "/compressor")
		}

		if !isPremium && !sessions.HasQuota(sess, day) {
			return flashRedirect(c, sessions, sess, "Free daily limit reached. Upgrade to Premium!", "/premium")
		}

		format := c.FormValue("format", "none")
		res, err := svc.Process(c.UserContext(), files, format, maxBatch)
		if err != nil {
			return flashRedirect(c, sessions, sess, rejectionMessage(err), "/compressor")
		}

		// Skipped files still flash, but the batch succeeded: the messages
		// show up on the next page the visitor loads.
		for _, msg := range res.Skipped {
			sessions.Flash(sess, msg)
		}
		if !isPremium {
			sessions.IncrementUploads(sess, day)
		}
		if err := sess.Save(); err != nil {
			return err
		}

		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+archiveDownloadName+`"`)
		c.Set(fiber.HeaderContentType, "application/zip")
		return c.Send(res.Zip)
	}
}

// readUploadBatch pulls every file from the multipart "files" field into memory.
func readUploadBatch(c *fiber.Ctx) ([]model.UploadFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Not a multipart request at all; treat as an empty batch.
		return nil, nil
	}

	headers := form.File["files"]
	files := make([]model.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, model.UploadFile{Name: fh.Filename, Data: data})
	}
	return files, nil
}

// flashRedirect records a message for the next page render and redirects.
func flashRedirect(c *fiber.Ctx, sessions *session.Manager, sess *fibersession.Session, message, location string) error {
	sessions.Flash(sess, message)
	if err := sess.Save(); err != nil {
		return err
	}
	return c.Redirect(location, fiber.StatusFound)
}

// rejectionMessage maps service errors to the user-visible flash text.
func rejectionMessage(err error) string {
	var tooLarge *service.BatchTooLargeError
	switch {
	case errors.Is(err, service.ErrNoFiles):
		return "Please select at least one file."
	case errors.As(err, &tooLarge):
		return tooLarge.Error()
	case errors.Is(err, service.ErrNothingProcessed):
		return err.Error()
	default:
		return "Something went wrong while compressing your files."
	}
}
