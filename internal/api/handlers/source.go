package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pricing-simulator/internal/api/models"
	"pricing-simulator/internal/data"
)

// DatasetSource resolves the configured transaction file through the shared cache.
type DatasetSource struct {
	Cache *data.DatasetCache
	Path  string
}

// load writes a 500 response and returns false when the file cannot be loaded.
func (s DatasetSource) load(c *gin.Context) (*data.Dataset, bool) {
	ds, err := s.Cache.Get(s.Path)
	if err != nil {
		logrus.WithError(err).WithField("path", s.Path).Error("dataset load failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "DATASET_LOAD_ERROR",
				Message: err.Error(),
				Details: map[string]interface{}{"path": s.Path},
			},
		})
		return nil, false
	}
	return ds, true
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}
