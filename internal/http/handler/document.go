package handler

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docvault/internal/http/middleware"
	"docvault/internal/model"
	"docvault/internal/service"
)

type shareRequest struct {
	AccountID string `json:"account_id"`
}

// ListDocuments returns the documents accessible to the caller, paginated
// with limit & offset.
//
// @Summary List accessible documents
// @Produce json
// @Success 200 {object} service.DocumentListResult
// @Router /api/documents [get]
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := docSvc.ListAccessible(c.UserContext(), middleware.AccountID(c), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadDocument creates a document from a multipart form (fields: file,
// title, description). The caller becomes the uploader and receives a
// sharing edge.
//
// @Summary Upload a document
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} model.Document
// @Router /api/documents [post]
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := docSvc.Upload(c.UserContext(), middleware.AccountID(c), service.UploadInput{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      f,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns document metadata.
//
// @Summary Get a document by ID
// @Produce json
// @Success 200 {object} model.Document
// @Router /api/documents/{id} [get]
func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := docSvc.Get(c.UserContext(), middleware.AccountID(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument streams the document bytes with the original filename as
// the attachment name.
//
// @Summary Download document content
// @Produce octet-stream
// @Router /api/documents/{id}/download [get]
func DownloadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, doc, err := docSvc.Download(c.UserContext(), middleware.AccountID(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
		// Size can exceed int on 32-bit platforms; stream without a length then.
		if doc.Size > 0 && doc.Size <= math.MaxInt {
			return c.SendStream(rc, int(doc.Size))
		}
		return c.SendStream(rc)
	}
}

// UpdateDocument applies a partial metadata patch; unspecified fields are
// left unchanged.
//
// @Summary Update document metadata
// @Accept json
// @Produce json
// @Success 200 {object} model.Document
// @Router /api/documents/{id} [patch]
func UpdateDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var patch model.DocumentPatch
		if err := c.BodyParser(&patch); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		doc, err := docSvc.Update(c.UserContext(), middleware.AccountID(c), id, patch)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document; uploader only.
//
// @Summary Delete a document
// @Success 204
// @Router /api/documents/{id} [delete]
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := docSvc.Delete(c.UserContext(), middleware.AccountID(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ShareDocument grants another account read/update access.
//
// @Summary Share a document with an account
// @Accept json
// @Success 204
// @Router /api/documents/{id}/shares [post]
func ShareDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req shareRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		if _, err := uuid.Parse(req.AccountID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid account_id format")
		}
		if err := docSvc.Share(c.UserContext(), middleware.AccountID(c), id, req.AccountID); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RevokeShare removes an account's read/update access.
//
// @Summary Revoke a document share
// @Success 204
// @Router /api/documents/{id}/shares/{accountId} [delete]
func RevokeShare(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		granteeID := c.Params("accountId")
		if _, err := uuid.Parse(granteeID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid account id format")
		}
		if err := docSvc.Revoke(c.UserContext(), middleware.AccountID(c), id, granteeID); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ShareLink returns a time-limited presigned download URL.
//
// @Summary Get a shareable download URL
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/documents/{id}/url [get]
func ShareLink(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := docSvc.ShareURL(c.UserContext(), middleware.AccountID(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": u})
	}
}

func documentID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
