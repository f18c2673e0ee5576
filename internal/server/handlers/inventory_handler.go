package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

// InventoryHandler exposes the inventory store and edit state machine over HTTP.
type InventoryHandler struct {
	store   *inventory.Store
	editor  *inventory.Editor
	reports *reporting.Service
	logger  *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(store *inventory.Store, editor *inventory.Editor, reports *reporting.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{store: store, editor: editor, reports: reports, logger: logger}
}

type saveRequest struct {
	Quantity string `json:"quantity"`
}

type editStateResponse struct {
	Editing bool   `json:"editing"`
	ID      string `json:"id,omitempty"`
}

type beginEditResponse struct {
	Item  models.StockItem  `json:"item"`
	State editStateResponse `json:"state"`
}

// List renders the table view, filtered by the optional q parameter.
func (h *InventoryHandler) List(c *gin.Context) {
	table := inventory.BuildTable(h.store.Search(c.Query("q")), h.editor.State())
	c.JSON(http.StatusOK, table)
}

// Create adds a new item from raw form values.
func (h *InventoryHandler) Create(c *gin.Context) {
	var req models.NewStockItem
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.editor.Add(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Delete removes an item unless an edit is in progress.
func (h *InventoryHandler) Delete(c *gin.Context) {
	removed, err := h.editor.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !removed {
		h.respondError(c, inventory.ErrItemNotFound)
		return
	}

	c.Status(http.StatusNoContent)
}

// BeginEdit puts the row with the given id into edit mode.
func (h *InventoryHandler) BeginEdit(c *gin.Context) {
	item, err := h.editor.BeginEdit(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, beginEditResponse{Item: item, State: toStateResponse(h.editor.State())})
}

// Save commits the quantity of the row being edited.
func (h *InventoryHandler) Save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid save payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.editor.Save(c.Request.Context(), req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// Cancel leaves edit mode without changing the item.
func (h *InventoryHandler) Cancel(c *gin.Context) {
	h.editor.Cancel()
	c.Status(http.StatusNoContent)
}

// EditState reports the current edit state.
func (h *InventoryHandler) EditState(c *gin.Context) {
	c.JSON(http.StatusOK, toStateResponse(h.editor.State()))
}

// Summary returns aggregated stock figures.
func (h *InventoryHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.reports.Summarize())
}

func (h *InventoryHandler) respondError(c *gin.Context, err error) {
	var validationErr *inventory.ValidationError
	var conflictErr *inventory.ConflictError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Message})
	case errors.Is(err, inventory.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrNoActiveEdit):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("inventory request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update inventory"})
	}
}

func toStateResponse(state inventory.EditState) editStateResponse {
	return editStateResponse{Editing: state.Editing, ID: state.ID}
}
