// Package service maps the HTTP surface of the contact book onto the
// repository, the validation rules and the birthday window calculation.
package service

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gitlab.com/akravets/contact-book/internal/birthday"
	"gitlab.com/akravets/contact-book/internal/errs"
	"gitlab.com/akravets/contact-book/internal/model"
	"gitlab.com/akravets/contact-book/internal/store"
	"gitlab.com/akravets/contact-book/internal/validate"
	"gitlab.com/akravets/contact-book/pkg/logger"
)

// maxUploadBytes is the upper limit for uploaded files.
const maxUploadBytes = 1_000_000

// birthdayWindowDays is the horizon of the upcoming-birthdays query.
const birthdayWindowDays = 7

// Handler carries the dependencies of the HTTP endpoints. There is no
// package-level database state; every request works against the store the
// handler was constructed with.
type Handler struct {
	store     *store.ContactStore
	uploadDir string

	// today supplies the current date; tests pin it to keep the
	// birthday window deterministic.
	today func() model.Date
}

// NewHandler builds a Handler around the given store. Uploaded files are
// placed into uploadDir, which is created on demand.
func NewHandler(contacts *store.ContactStore, uploadDir string) *Handler {
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	return &Handler{store: contacts, uploadDir: uploadDir, today: model.Today}
}

// SetupHttpRouter initializes the REST API router and registers all
// endpoints.
func SetupHttpRouter(h *Handler) *gin.Engine {
	var router *gin.Engine
	if strings.EqualFold(os.Getenv("GIN_LOGGING"), "off") {
		fmt.Println("Turning off HTTP request logging.")
		router = gin.New()
		router.Use(gin.Recovery())
	} else {
		router = gin.Default()
	}
	router.GET("/", h.welcome)
	router.GET("/contacts", h.findContacts)
	router.POST("/contacts", h.createContact)
	router.GET("/contacts/birthdays/", h.findUpcomingBirthdays)
	router.GET("/contacts/:id", h.findContactByID)
	router.PUT("/contacts/:id", h.updateContactByID)
	router.DELETE("/contacts/:id", h.deleteContactByID)
	router.PUT("/contacts/search/:id", h.findContactsBySearch)
	router.POST("/upload-file/", h.uploadFile)
	return router
}

// respondError translates an application error into an HTTP status code
// and a JSON message. Errors without a recognized code are logged and
// answered with a generic 500 so that storage internals never leak.
func respondError(c *gin.Context, err error) {
	var status int
	switch errs.ErrorCode(err) {
	case errs.EBADREQUEST:
		status = http.StatusBadRequest
	case errs.ENOTFOUND:
		status = http.StatusNotFound
	case errs.ECONFLICT:
		status = http.StatusConflict
	case errs.EINVALID:
		status = http.StatusUnprocessableEntity
	case errs.ETOOLARGE:
		status = http.StatusRequestEntityTooLarge
	default:
		logger.WithError(err).Error("request failed")
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, gin.H{"message": errs.ErrorMessage(err)})
}

// welcome responds with a greeting so that a plain GET on the root URL
// shows the service is up.
func (h *Handler) welcome(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"message": "Welcome to the contact book API!"})
}

// findContacts responds with a page of contacts as JSON.
//
// The URL parameter 'limit' specifies how many contacts are returned and
// the URL parameter 'skip' specifies how many contacts are left out in the
// beginning. Together, one can implement result paging. A page past the
// end of the table is an empty list, not an error.
//
// REST API calls:
//
//	> curl "http://localhost:8080/contacts"
//	> curl "http://localhost:8080/contacts?skip=60&limit=20"
func (h *Handler) findContacts(c *gin.Context) {
	skip, limit, ok := parseSkipAndLimit(c)
	if !ok {
		return
	}
	contacts, err := h.store.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contacts)
}

// parseSkipAndLimit inspects the URL parameters and determines values for
// skip and limit of the result set.
func parseSkipAndLimit(c *gin.Context) (skip int, limit int, success bool) {
	skip = 0
	limit = 100
	if raw := c.Query("skip"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid skip parameter"})
			return 0, 0, false
		}
		skip = parsed
	}
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid limit parameter"})
			return 0, 0, false
		}
		limit = parsed
	}
	return skip, limit, true
}

// parseID extracts the numeric id from the request URL. A non-numeric or
// non-positive id is treated like an id that does not exist.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "invalid id parameter"})
		return 0, false
	}
	return id, true
}

// findContactByID locates the contact whose ID value matches the id
// parameter of the request URL, then returns that contact as a response.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56
func (h *Handler) findContactByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	contact, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contact)
}

// createContact validates the contact specified in the request's JSON and
// inserts it into the database. It responds with the full contact data
// including the newly assigned id.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts --request "POST" --include --header "Content-Type: application/json" --data '{"first_name": "Hans", "last_name": "Wurst", "email": "hans@example.com", "contact_number": "123-456-7890", "birth_date": "1969-03-02", "additional_information": "old friend"}'
func (h *Handler) createContact(c *gin.Context) {
	var submitted model.Contact
	if err := c.ShouldBindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	if err := validate.ContactErr(submitted, model.Today()); err != nil {
		respondError(c, err)
		return
	}
	created, err := h.store.Create(c.Request.Context(), submitted)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, created)
}

// updateContactByID replaces all fields of the contact whose ID value
// matches the id parameter of the request URL and responds with the new
// version of the contact. Partial updates are not supported; the submitted
// JSON must be a complete, valid record.
func (h *Handler) updateContactByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var submitted model.Contact
	if err := c.ShouldBindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	if err := validate.ContactErr(submitted, model.Today()); err != nil {
		respondError(c, err)
		return
	}
	updated, err := h.store.Update(c.Request.Context(), id, submitted)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, updated)
}

// deleteContactByID deletes the contact whose ID value matches the id
// parameter of the request URL from the database and responds with the
// deleted contact.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56 --request "DELETE"
func (h *Handler) deleteContactByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, deleted)
}

// findContactsBySearch locates contacts by exact first name, last name or
// email. Exactly one of the URL parameters 'contact_first_name',
// 'contact_last_name' and 'contact_email' is used, in that order of
// precedence; a request without any of them is a bad request. The id path
// parameter is accepted but not interpreted, for compatibility with
// existing clients.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/contacts/search/0?contact_last_name=Mustermann" --request "PUT"
func (h *Handler) findContactsBySearch(c *gin.Context) {
	ctx := c.Request.Context()
	var contacts []model.Contact
	var err error
	if firstName := c.Query("contact_first_name"); firstName != "" {
		contacts, err = h.store.FindByFirstName(ctx, firstName)
	} else if lastName := c.Query("contact_last_name"); lastName != "" {
		contacts, err = h.store.FindByLastName(ctx, lastName)
	} else if email := c.Query("contact_email"); email != "" {
		contacts, err = h.store.FindByEmail(ctx, email)
	} else {
		respondError(c, errs.Errorf(errs.EBADREQUEST, "you must provide at least one search parameter"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contacts)
}

// findUpcomingBirthdays responds with the contacts on the requested page
// whose birthday falls within the next seven days. The page is cut out of
// the table first and the birthday filter runs on that page, so the result
// is "upcoming birthdays among the first 'limit' contacts after skipping
// 'skip'".
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/birthdays/
func (h *Handler) findUpcomingBirthdays(c *gin.Context) {
	skip, limit, ok := parseSkipAndLimit(c)
	if !ok {
		return
	}
	contacts, err := h.store.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	current := h.today()
	upcoming := birthday.Upcoming(current, current.AddDays(birthdayWindowDays), contacts)
	c.IndentedJSON(http.StatusOK, upcoming)
}

// uploadFile stores the multipart file from the request on disk and
// responds with the path it was stored under. Files larger than
// maxUploadBytes are rejected and the partially written file is removed.
//
// Example REST API call:
//
//	> curl http://localhost:8080/upload-file/ --request "POST" --form "file=@photo.jpg"
func (h *Handler) uploadFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "no file in request"})
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		respondError(c, err)
		return
	}
	name := uuid.NewString() + "_" + filepath.Base(header.Filename)
	path := filepath.Join(h.uploadDir, name)
	dst, err := os.Create(path)
	if err != nil {
		respondError(c, err)
		return
	}

	// Copy one byte more than the limit: a complete copy means the file
	// is too large.
	written, err := io.CopyN(dst, file, maxUploadBytes+1)
	closeErr := dst.Close()
	switch {
	case err == nil:
		os.Remove(path)
		respondError(c, errs.Errorf(errs.ETOOLARGE, "file exceeds the limit of %d bytes", maxUploadBytes))
		return
	case err != io.EOF:
		os.Remove(path)
		respondError(c, err)
		return
	case closeErr != nil:
		os.Remove(path)
		respondError(c, closeErr)
		return
	}
	logger.WithFields(map[string]interface{}{"path": path, "bytes": written}).Info("file uploaded")
	c.IndentedJSON(http.StatusOK, gin.H{"file_path": path})
}
