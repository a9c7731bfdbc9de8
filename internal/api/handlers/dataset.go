package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pricing-simulator/internal/api/models"
)

// DatasetHandler reports on the loaded transaction file
type DatasetHandler struct {
	source DatasetSource
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(source DatasetSource) *DatasetHandler {
	return &DatasetHandler{source: source}
}

// GetDataset handles GET /api/v1/dataset
func (h *DatasetHandler) GetDataset(c *gin.Context) {
	ds, ok := h.source.load(c)
	if !ok {
		return
	}

	first, last := ds.Months()
	c.JSON(http.StatusOK, models.DatasetInfo{
		Path:         ds.Path,
		Hash:         ds.Hash,
		Rows:         ds.Stats.Rows,
		Transactions: len(ds.Transactions),
		Products:     len(ds.Products),
		Dropped: models.DroppedRows{
			MissingFields: ds.Stats.MissingFields,
			NonNumeric:    ds.Stats.NonNumeric,
			NonPositive:   ds.Stats.NonPositive,
			Total:         ds.Stats.Dropped(),
		},
		DateLayout: ds.Stats.DateLayout,
		FirstMonth: string(first),
		LastMonth:  string(last),
		LoadedAt:   ds.LoadedAt,
	})
}
