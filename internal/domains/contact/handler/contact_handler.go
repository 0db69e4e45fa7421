package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"contacts-backend/internal/domains/contact"
)

// ContactHandler translates HTTP requests into lifecycle calls. Bodies are
// the exact wire forms of the API: entities, briefs, and message lists.
type ContactHandler struct {
	service contact.Service
}

func NewContactHandler(service contact.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

// Count handles GET /contacts/count.
func (h *ContactHandler) Count(c *gin.Context) {
	brief, err := h.service.CountContacts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, brief)
}

// First handles GET /contacts/first: the lowest name, 410 when the store
// is empty.
func (h *ContactHandler) First(c *gin.Context) {
	item, err := h.service.FindFirstContact(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if item == nil {
		c.Status(http.StatusGone)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ListBriefs handles GET /contacts/briefs?name=…
func (h *ContactHandler) ListBriefs(c *gin.Context) {
	briefs, err := h.service.ListBriefs(c.Request.Context(), c.Query("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, briefs)
}

// List handles GET /contacts?name=…&city=…&zip=…
func (h *ContactHandler) List(c *gin.Context) {
	items, err := h.service.ListContacts(c.Request.Context(), c.Query("name"), c.Query("city"), c.Query("zip"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if items == nil {
		items = []*contact.Contact{}
	}
	c.JSON(http.StatusOK, items)
}

// Get handles GET /contacts/{id}: strict read, 410 when missing.
func (h *ContactHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusGone)
		return
	}
	item, err := h.service.GetContact(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if item == nil {
		c.Status(http.StatusGone)
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetWithHash handles GET /contacts/hash?idType=…&contactID=…
// An unknown type or unparseable value matches nothing.
func (h *ContactHandler) GetWithHash(c *gin.Context) {
	idType, err := contact.ParseIDType(c.Query("idType"))
	if err != nil {
		c.JSON(http.StatusOK, []*contact.Contact{})
		return
	}
	items, err := h.service.FindWithHash(c.Request.Context(), idType, c.Query("contactID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create handles POST /contacts: 201 with a brief, or 409 with the
// duplication/validation messages.
func (h *ContactHandler) Create(c *gin.Context) {
	var item contact.Contact
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusConflict, []string{err.Error()})
		return
	}
	brief, messages, err := h.service.CreateContact(c.Request.Context(), &item)
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(messages) > 0 {
		c.JSON(http.StatusConflict, messages)
		return
	}
	c.JSON(http.StatusCreated, brief)
}

// Save handles PUT /contacts: 409 without a key or on duplication, 410
// when the key names no row.
func (h *ContactHandler) Save(c *gin.Context) {
	var item contact.Contact
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusConflict, []string{err.Error()})
		return
	}
	brief, messages, err := h.service.SaveContact(c.Request.Context(), &item)
	switch {
	case errors.Is(err, contact.ErrMissingKey):
		c.Status(http.StatusConflict)
		return
	case errors.Is(err, contact.ErrNotFound):
		c.Status(http.StatusGone)
		return
	case err != nil:
		h.fail(c, err)
		return
	}
	if len(messages) > 0 {
		c.JSON(http.StatusConflict, messages)
		return
	}
	c.JSON(http.StatusOK, brief)
}

// Delete handles DELETE /contacts/{id}: idempotent, 202 when nothing was
// there to delete.
func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusAccepted)
		return
	}
	removed, err := h.service.DeleteContact(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !removed {
		c.Status(http.StatusAccepted)
		return
	}
	c.Status(http.StatusOK)
}

// DeleteWithHash handles DELETE /contacts/hash?idType=…&contactID=…
// Only the first matching contact is deleted; names are unique, and a
// mechanism shared by several contacts stays attached to the rest.
func (h *ContactHandler) DeleteWithHash(c *gin.Context) {
	idType, err := contact.ParseIDType(c.Query("idType"))
	if err != nil {
		c.Status(http.StatusAccepted)
		return
	}
	removed, err := h.service.DeleteWithHash(c.Request.Context(), idType, c.Query("contactID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if !removed {
		c.Status(http.StatusAccepted)
		return
	}
	c.Status(http.StatusOK)
}

// Check handles POST /contacts/check: 200 with an empty list when clear
// to write, 409 with messages, 410 on a malformed payload.
func (h *ContactHandler) Check(c *gin.Context) {
	var item contact.Contact
	if err := c.ShouldBindJSON(&item); err != nil {
		c.Status(http.StatusGone)
		return
	}
	messages, err := h.service.CheckContact(c.Request.Context(), &item)
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(messages) > 0 {
		c.JSON(http.StatusConflict, messages)
		return
	}
	c.JSON(http.StatusOK, []string{})
}

// CreatePart handles POST /contacts/part: 410 when the parent contact is
// missing, 409 on an invalid part, 201 with a brief for the new part.
func (h *ContactHandler) CreatePart(c *gin.Context) {
	var part contact.ItemPart
	if err := c.ShouldBindJSON(&part); err != nil {
		c.JSON(http.StatusConflict, []string{err.Error()})
		return
	}
	brief, messages, err := h.service.CreatePart(c.Request.Context(), part)
	switch {
	case errors.Is(err, contact.ErrNotFound):
		c.Status(http.StatusGone)
		return
	case err != nil:
		h.fail(c, err)
		return
	}
	if len(messages) > 0 {
		c.JSON(http.StatusConflict, messages)
		return
	}
	c.JSON(http.StatusCreated, brief)
}

func (h *ContactHandler) fail(c *gin.Context, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("contact request failed")
	c.Status(http.StatusInternalServerError)
}
