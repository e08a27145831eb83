package handler

import (
	"errors"
	"net/http"

	"expense-ledger/internal/middleware"
	"expense-ledger/internal/service"
	"expense-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// fail writes err using the status and business code of its kind.
func fail(c *gin.Context, err error) {
	var fe *util.FieldError
	if errors.As(err, &fe) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, fe.Message)
		return
	}

	msg := err.Error()
	var se *service.Error
	if errors.As(err, &se) {
		msg = se.Message
		if se.Err != nil {
			_ = c.Error(se.Err)
		}
	}

	switch service.KindOf(err) {
	case service.KindValidation:
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
	case service.KindNotFound:
		util.Error(c, http.StatusNotFound, util.CodeNotFound, msg)
	case service.KindUnauthorized:
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, msg)
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, msg)
	}
}

// badBody reports an undecodable JSON body.
func badBody(c *gin.Context) {
	util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
}

// pathID returns the :id parameter when it is a well-formed UUID.
func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid id")
		return "", false
	}
	return id, true
}

// currentUser aborts with 401 when the auth gate did not run.
func currentUser(c *gin.Context) (util.Identity, bool) {
	id, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Unauthorized")
		c.Abort()
	}
	return id, ok
}
