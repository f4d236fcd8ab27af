package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	respond(c, h.svc.List(c.Request.Context()), http.StatusOK)
}

func (h *Handler) create(c *gin.Context) {
	var req domain.ProjectPayload
	if !bindPayload(c, &req) {
		return
	}
	// ids are store-assigned
	req.ID = ""

	respond(c, h.svc.Create(c.Request.Context(), req), http.StatusCreated)
}

func (h *Handler) update(c *gin.Context) {
	var req domain.ProjectPayload
	if !bindPayload(c, &req) {
		return
	}
	if id := c.Param("id"); id != "" {
		req.ID = id
	}

	respond(c, h.svc.Update(c.Request.Context(), req), http.StatusOK)
}

func (h *Handler) delete(c *gin.Context) {
	respond(c, h.svc.Delete(c.Request.Context(), c.Param("id")), http.StatusOK)
}

// bindPayload decodes the JSON body. Wrong JSON types for a known field are
// reported as field errors; anything else unreadable is a bad request.
func bindPayload(c *gin.Context, req *domain.ProjectPayload) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fe := domain.FieldErrors{}
		fe.Add(typeErr.Field, "must be of type "+jsonTypeName(typeErr.Type.Kind().String()))
		c.JSON(http.StatusUnprocessableEntity, domain.Fail(domain.KindValidationFailed, fe))
		return false
	}

	c.JSON(http.StatusBadRequest, domain.Result{Success: false, Error: domain.MsgInvalidBody})
	return false
}

func jsonTypeName(kind string) string {
	switch kind {
	case "slice":
		return "array"
	case "ptr", "string":
		return "string"
	default:
		return kind
	}
}

func respond(c *gin.Context, res domain.Result, okStatus int) {
	c.JSON(statusFor(res, okStatus), res)
}

func statusFor(res domain.Result, okStatus int) int {
	if res.Success {
		return okStatus
	}
	switch res.Kind {
	case domain.KindAuthorizationDenied:
		return http.StatusForbidden
	case domain.KindValidationFailed:
		return http.StatusUnprocessableEntity
	case domain.KindMissingIdentifier:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
