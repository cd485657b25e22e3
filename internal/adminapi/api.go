// Package adminapi holds the JSON request handlers of every entity.
package adminapi

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	EventBus "github.com/asaskevich/EventBus"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bjo163/orderdesk/internal/audit"
	"github.com/bjo163/orderdesk/internal/auth"
	"github.com/bjo163/orderdesk/internal/domain"
	"github.com/bjo163/orderdesk/internal/repository"
	"github.com/bjo163/orderdesk/internal/schema"
	"github.com/bjo163/orderdesk/internal/webserver"
)

var (
	errEmptyBody = errors.New("Request body cannot be empty.")
	errBadBody   = errors.New("Request body must be a JSON object.")
)

// body decoding keeps numbers as json.Number so integers survive untouched
var bodyJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// API wires the handlers to their collaborators
type API struct {
	server *webserver.Server
	store  *repository.Store
	auth   *auth.Service
	bus    EventBus.Bus
}

// Register mounts every route on s. bus may be nil, in which case no audit
// events are published.
func Register(s *webserver.Server, store *repository.Store, authSvc *auth.Service, bus EventBus.Bus) *API {
	a := &API{server: s, store: store, auth: authSvc, bus: bus}
	a.registerSystemRoutes()
	a.registerAdministratorRoutes()
	a.registerCustomerRoutes()
	a.registerCategoryRoutes()
	a.registerProductRoutes()
	a.registerOrderRoutes()
	a.registerOrderedItemRoutes()
	a.registerPaymentRoutes()
	return a
}

// readRecord parses the request body into a record. An absent body or an
// object without keys is rejected.
func readRecord(c echo.Context) (schema.Record, error) {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, errors.Wrap(err, "read request body")
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, errEmptyBody
	}
	var rec schema.Record
	if err := bodyJSON.Unmarshal(raw, &rec); err != nil {
		return nil, errors.WithMessage(errBadBody, err.Error())
	}
	if len(rec) == 0 {
		return nil, errEmptyBody
	}
	return rec, nil
}

// parseID reads the :id path parameter. Anything that is not a positive
// integer cannot name a row and is reported as not found.
func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, repository.ErrNotFound
	}
	return id, nil
}

func (a *API) publish(c echo.Context, entity domain.Entity, action string, id int64) {
	audit.Publish(a.bus, audit.Event{
		Entity:   entity,
		Action:   action,
		ID:       id,
		Operator: webserver.Operator(c),
		IP:       c.RealIP(),
	})
}

// fail maps err onto a status code and a {message, error?} body
func fail(c echo.Context, label string, err error) error {
	var verr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Validation failed", "error": verr.Errors})
	case errors.Is(err, errEmptyBody):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": errEmptyBody.Error()})
	case errors.Is(err, errBadBody):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": errBadBody.Error(), "error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": label + " ID not found."})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"message": "Email already exists!"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}

	zap.L().Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"message": "An error occurred.",
		"error":   err.Error(),
	})
}
