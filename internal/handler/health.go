package handler

import (
	"context"
	"net/http"
	"time"

	"expense-ledger/internal/util"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by the store.
type Pinger interface {
	Ping(ctx context.Context) error
}

func Health(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			util.JSON(c, http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		util.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
