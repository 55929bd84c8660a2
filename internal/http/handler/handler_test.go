package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docvault/internal/config"
	"docvault/internal/http/middleware"
	"docvault/internal/model"
	"docvault/internal/service"
	serviceMocks "docvault/internal/service/mocks"
	"docvault/internal/session"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newAuthedApp builds an app whose routes sit behind a real session registry,
// with one session already started for account "acc-1".
func newAuthedApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	reg := session.NewRegistry()
	sid, err := reg.Start("acc-1")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(middleware.RequireSession(reg))
	return app, sid
}

func withSession(req *http.Request, sid string) *http.Request {
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: sid})
	return req
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.SessionCookieName {
			return ck
		}
	}
	return nil
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPIDocs(t *testing.T) {
	app := fiber.New()
	app.Get("/openapi.json", OpenAPIDocument())
	app.Get("/docs", DocsPage())

	t.Run("openapi document", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "json")

		var doc map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
		assert.Equal(t, "2.0", doc["swagger"])

		paths, ok := doc["paths"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, paths, "/api/documents")
		assert.Contains(t, paths, "/api/signup")
	})

	t.Run("docs page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/docs", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "html")

		b, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(b), "swagger-ui")
		assert.Contains(t, string(b), "/openapi.json")
	})
}

func TestSignup(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	reg := session.NewRegistry()
	app := fiber.New()
	app.Post("/signup", Signup(mockSvc, reg, false))

	t.Run("success sets a session cookie", func(t *testing.T) {
		acc := &model.Account{ID: uuid.New().String(), Name: "Alice", Email: "alice@example.com"}
		mockSvc.On("Register", mock.Anything, "Alice", "alice@example.com", "hunter22").Return(acc, nil).Once()

		body, _ := json.Marshal(fiber.Map{"name": "Alice", "email": "alice@example.com", "password": "hunter22"})
		req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		ck := sessionCookie(resp)
		require.NotNil(t, ck)
		assert.True(t, ck.HttpOnly)
		accountID, ok := reg.Resolve(ck.Value)
		assert.True(t, ok)
		assert.Equal(t, acc.ID, accountID)

		var result model.Account
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, acc.Email, result.Email)
		mockSvc.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, "Alice", "alice@example.com", "hunter22").
			Return(nil, service.ErrDuplicateAccount).Once()

		body, _ := json.Marshal(fiber.Map{"name": "Alice", "email": "alice@example.com", "password": "hunter22"})
		req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "DUPLICATE_ACCOUNT", res.Error.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, "", "alice@example.com", "hunter22").
			Return(nil, service.ErrValidation).Once()

		body, _ := json.Marshal(fiber.Map{"email": "alice@example.com", "password": "hunter22"})
		req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader("{not-json"))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	reg := session.NewRegistry()
	app := fiber.New()
	app.Post("/login", Login(mockSvc, reg, false))

	t.Run("success", func(t *testing.T) {
		acc := &model.Account{ID: uuid.New().String(), Email: "alice@example.com"}
		mockSvc.On("Login", mock.Anything, "alice@example.com", "hunter22").Return(acc, nil).Once()

		body, _ := json.Marshal(fiber.Map{"email": "alice@example.com", "password": "hunter22"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		ck := sessionCookie(resp)
		require.NotNil(t, ck)
		accountID, ok := reg.Resolve(ck.Value)
		assert.True(t, ok)
		assert.Equal(t, acc.ID, accountID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, "alice@example.com", "wrong").
			Return(nil, service.ErrInvalidCredentials).Once()

		body, _ := json.Marshal(fiber.Map{"email": "alice@example.com", "password": "wrong"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_CREDENTIALS", res.Error.Code)
		assert.Nil(t, sessionCookie(resp))
	})
}

func TestLogout(t *testing.T) {
	reg := session.NewRegistry()
	app := fiber.New()
	app.Post("/logout", Logout(reg, false))

	sid, err := reg.Start("acc-1")
	require.NoError(t, err)

	t.Run("ends the session", func(t *testing.T) {
		req := withSession(httptest.NewRequest(http.MethodPost, "/logout", nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_, ok := reg.Resolve(sid)
		assert.False(t, ok)

		ck := sessionCookie(resp)
		require.NotNil(t, ck)
		assert.Empty(t, ck.Value)
	})

	t.Run("idempotent without a session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestWhoami(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app, sid := newAuthedApp(t)
	app.Get("/session", Whoami(mockSvc))

	t.Run("returns the session's account", func(t *testing.T) {
		acc := &model.Account{ID: "acc-1", Email: "alice@example.com"}
		mockSvc.On("Account", mock.Anything, "acc-1").Return(acc, nil).Once()

		req := withSession(httptest.NewRequest(http.MethodGet, "/session", nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Account
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "acc-1", result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/session", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "ABSENT_SESSION", res.Error.Code)
	})

	t.Run("stale cookie", func(t *testing.T) {
		req := withSession(httptest.NewRequest(http.MethodGet, "/session", nil), "long-gone")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestListDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app, sid := newAuthedApp(t)
	app.Get("/documents", ListDocuments(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedRes := &service.DocumentListResult{
			Items: []model.Document{{ID: uuid.New().String(), Title: "Report"}},
			Total: 1,
		}
		mockSvc.On("ListAccessible", mock.Anything, "acc-1", 10, 0).Return(expectedRes, nil).Once()

		req := withSession(httptest.NewRequest(http.MethodGet, "/documents?limit=10&offset=0", nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.DocumentListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := withSession(httptest.NewRequest(http.MethodGet, "/documents?limit=abc", nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_LIMIT", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("ListAccessible", mock.Anything, "acc-1", 10, 0).
			Return(nil, errors.New("service error")).Once()

		req := withSession(httptest.NewRequest(http.MethodGet, "/documents", nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app, sid := newAuthedApp(t)
	app.Post("/documents", UploadDocument(mockSvc))

	newUpload := func(filename, title string) (*bytes.Buffer, string) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("file", filename)
		part.Write([]byte("hello world"))
		writer.WriteField("title", title)
		writer.WriteField("description", "some words")
		writer.Close()
		return body, writer.FormDataContentType()
	}

	t.Run("success", func(t *testing.T) {
		expectedDoc := &model.Document{ID: uuid.New().String(), Title: "Report", Filename: "test.txt"}
		mockSvc.On("Upload", mock.Anything, "acc-1", mock.MatchedBy(func(in service.UploadInput) bool {
			return in.Title == "Report" && in.Filename == "test.txt" && in.Reader != nil
		})).Return(expectedDoc, nil).Once()

		body, contentType := newUpload("test.txt", "Report")
		req := withSession(httptest.NewRequest(http.MethodPost, "/documents", body), sid)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expectedDoc.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := withSession(httptest.NewRequest(http.MethodPost, "/documents", nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})

	t.Run("rejected file type", func(t *testing.T) {
		mockSvc.On("Upload", mock.Anything, "acc-1", mock.Anything).
			Return(nil, service.ErrValidation).Once()

		body, contentType := newUpload("malware.exe", "Report")
		req := withSession(httptest.NewRequest(http.MethodPost, "/documents", body), sid)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		mockSvc.On("Upload", mock.Anything, "acc-1", mock.Anything).
			Return(nil, service.ErrStorageFailure).Once()

		body, contentType := newUpload("test.txt", "Report")
		req := withSession(httptest.NewRequest(http.MethodPost, "/documents", body), sid)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "STORAGE_FAILURE", res.Error.Code)
	})
}

func TestGetDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app, sid := newAuthedApp(t)
	app.Get("/documents/:id", GetDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		expectedDoc := &model.Document{ID: id, Title: "Report"}
		mockSvc.On("Get", mock.Anything, "acc-1", id).Return(expectedDoc, nil).Once()

		req := withSession(httptest.NewRequest(http.MethodGet, "/documents/"+id, nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, id, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, "acc-1", id).Return(nil, service.ErrNotFound).Once()

		req := withSession(httptest.NewRequest(http.MethodGet, "/documents/"+id, nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, "acc-1", id).Return(nil, service.ErrForbidden).Once()

		req := withSession(httptest.NewRequest(http.MethodGet, "/documents/"+id, nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FORBIDDEN", res.Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := withSession(httptest.NewRequest(http.MethodGet, "/documents/invalid-uuid", nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})
}

func TestDownloadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app, sid := newAuthedApp(t)
	app.Get("/documents/:id/download", DownloadDocument(mockSvc))

	t.Run("streams the content", func(t *testing.T) {
		id := uuid.New().String()
		doc := &model.Document{ID: id, Filename: "report.pdf", ContentType: "application/pdf", Size: 5}
		mockSvc.On("Download", mock.Anything, "acc-1", id).
			Return(io.NopCloser(strings.NewReader("bytes")), doc, nil).Once()

		req := withSession(httptest.NewRequest(http.MethodGet, "/documents/"+id+"/download", nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="report.pdf"`)

		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "bytes", string(b))
	})

	t.Run("unknown size still streams fully", func(t *testing.T) {
		id := uuid.New().String()
		doc := &model.Document{ID: id, Filename: "report.pdf", ContentType: "application/pdf", Size: 0}
		mockSvc.On("Download", mock.Anything, "acc-1", id).
			Return(io.NopCloser(strings.NewReader("unsized bytes")), doc, nil).Once()

		req := withSession(httptest.NewRequest(http.MethodGet, "/documents/"+id+"/download", nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "unsized bytes", string(b))
	})

	t.Run("missing blob", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Download", mock.Anything, "acc-1", id).
			Return(nil, nil, service.ErrBlobMissing).Once()

		req := withSession(httptest.NewRequest(http.MethodGet, "/documents/"+id+"/download", nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "BLOB_MISSING", res.Error.Code)
	})
}

func TestUpdateDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app, sid := newAuthedApp(t)
	app.Patch("/documents/:id", UpdateDocument(mockSvc))

	t.Run("patches the title", func(t *testing.T) {
		id := uuid.New().String()
		newTitle := "Revised"
		mockSvc.On("Update", mock.Anything, "acc-1", id, model.DocumentPatch{Title: &newTitle}).
			Return(&model.Document{ID: id, Title: newTitle}, nil).Once()

		body, _ := json.Marshal(fiber.Map{"title": newTitle})
		req := withSession(httptest.NewRequest(http.MethodPatch, "/documents/"+id, bytes.NewReader(body)), sid)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, newTitle, result.Title)
		mockSvc.AssertExpectations(t)
	})

	t.Run("forbidden without an edge", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Update", mock.Anything, "acc-1", id, mock.Anything).
			Return(nil, service.ErrForbidden).Once()

		body, _ := json.Marshal(fiber.Map{"title": "nope"})
		req := withSession(httptest.NewRequest(http.MethodPatch, "/documents/"+id, bytes.NewReader(body)), sid)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestDeleteDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app, sid := newAuthedApp(t)
	app.Delete("/documents/:id", DeleteDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, "acc-1", id).Return(nil).Once()

		req := withSession(httptest.NewRequest(http.MethodDelete, "/documents/"+id, nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("only the uploader may delete", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, "acc-1", id).Return(service.ErrForbidden).Once()

		req := withSession(httptest.NewRequest(http.MethodDelete, "/documents/"+id, nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FORBIDDEN", res.Error.Code)
	})
}

func TestShareDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app, sid := newAuthedApp(t)
	app.Post("/documents/:id/shares", ShareDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		granteeID := uuid.New().String()
		mockSvc.On("Share", mock.Anything, "acc-1", id, granteeID).Return(nil).Once()

		body, _ := json.Marshal(fiber.Map{"account_id": granteeID})
		req := withSession(httptest.NewRequest(http.MethodPost, "/documents/"+id+"/shares", bytes.NewReader(body)), sid)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid grantee id", func(t *testing.T) {
		id := uuid.New().String()

		body, _ := json.Marshal(fiber.Map{"account_id": "not-a-uuid"})
		req := withSession(httptest.NewRequest(http.MethodPost, "/documents/"+id+"/shares", bytes.NewReader(body)), sid)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})

	t.Run("unknown grantee", func(t *testing.T) {
		id := uuid.New().String()
		granteeID := uuid.New().String()
		mockSvc.On("Share", mock.Anything, "acc-1", id, granteeID).Return(service.ErrNotFound).Once()

		body, _ := json.Marshal(fiber.Map{"account_id": granteeID})
		req := withSession(httptest.NewRequest(http.MethodPost, "/documents/"+id+"/shares", bytes.NewReader(body)), sid)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRevokeShare(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app, sid := newAuthedApp(t)
	app.Delete("/documents/:id/shares/:accountId", RevokeShare(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		granteeID := uuid.New().String()
		mockSvc.On("Revoke", mock.Anything, "acc-1", id, granteeID).Return(nil).Once()

		req := withSession(httptest.NewRequest(http.MethodDelete, "/documents/"+id+"/shares/"+granteeID, nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid account id", func(t *testing.T) {
		id := uuid.New().String()
		req := withSession(httptest.NewRequest(http.MethodDelete, "/documents/"+id+"/shares/bogus", nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestShareLink(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app, sid := newAuthedApp(t)
	app.Get("/documents/:id/url", ShareLink(mockSvc))

	t.Run("returns the presigned URL", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("ShareURL", mock.Anything, "acc-1", id).
			Return("https://blobs.example.com/signed", nil).Once()

		req := withSession(httptest.NewRequest(http.MethodGet, "/documents/"+id+"/url", nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "https://blobs.example.com/signed", body["url"])
	})

	t.Run("storage failure", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("ShareURL", mock.Anything, "acc-1", id).
			Return("", service.ErrStorageFailure).Once()

		req := withSession(httptest.NewRequest(http.MethodGet, "/documents/"+id+"/url", nil), sid)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	mockAuth := new(serviceMocks.MockAuthService)
	mockDocs := new(serviceMocks.MockDocumentService)
	sessions := session.NewRegistry()
	RegisterRoutes(app, nil, mockAuth, mockDocs, sessions, config.HTTPConfig{})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})

	t.Run("docs endpoints are public", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("document routes demand a session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "ABSENT_SESSION", res.Error.Code)
	})

	t.Run("signup then list with the issued cookie", func(t *testing.T) {
		acc := &model.Account{ID: uuid.New().String(), Email: "alice@example.com"}
		mockAuth.On("Register", mock.Anything, "Alice", "alice@example.com", "hunter22").Return(acc, nil).Once()
		mockDocs.On("ListAccessible", mock.Anything, acc.ID, 10, 0).
			Return(&service.DocumentListResult{Items: []model.Document{}, Total: 0}, nil).Once()

		body, _ := json.Marshal(fiber.Map{"name": "Alice", "email": "alice@example.com", "password": "hunter22"})
		req := httptest.NewRequest(http.MethodPost, "/api/signup", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		ck := sessionCookie(resp)
		require.NotNil(t, ck)

		listReq := withSession(httptest.NewRequest(http.MethodGet, "/api/documents", nil), ck.Value)
		listResp, _ := app.Test(listReq)

		assert.Equal(t, http.StatusOK, listResp.StatusCode)
		mockDocs.AssertExpectations(t)
	})
}
