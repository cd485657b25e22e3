package adminapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bjo163/orderdesk/internal/audit"
	"github.com/bjo163/orderdesk/internal/repository"
	"github.com/bjo163/orderdesk/internal/schema"
)

// resource serves the five CRUD operations of one entity type.
type resource[T any] struct {
	api    *API
	repo   *repository.Repository[T]
	schema schema.Schema
	// key names the response field holding the row, label is used in messages
	key   string
	label string
	// build turns a validated record into a row. id is 0 on create.
	build func(ctx context.Context, rec schema.Record, id int64) (*T, error)
	idOf  func(*T) int64
}

// mount registers list, get, create, update (PUT and PATCH) and delete under
// path. Mutations need a bearer token.
func (r *resource[T]) mount(path string) {
	s := r.api.server
	s.ApiGET(path, r.list)
	s.ApiGET(path+"/:id", r.get)
	s.ApiPOST(path, r.create, s.RequireAuth())
	r.mountItem(path)
}

// mountItem registers update and delete only
func (r *resource[T]) mountItem(path string) {
	s := r.api.server
	s.ApiPUT(path+"/:id", r.update, s.RequireAuth())
	s.ApiPATCH(path+"/:id", r.update, s.RequireAuth())
	s.ApiDELETE(path+"/:id", r.delete, s.RequireAuth())
}

// list returns every row, without related rows
//
// @Summary List all rows
// @Tags Resources
// @Produce json
// @Success 200 {array} object
// @Router /customers [get]
// @Router /categories [get]
// @Router /products [get]
// @Router /orders [get]
// @Router /orderedItems [get]
// @Router /payments [get]
func (r *resource[T]) list(c echo.Context) error {
	rows, err := r.repo.FindAll(c.Request().Context())
	if err != nil {
		return fail(c, r.label, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// get returns one row with its related rows attached
//
// @Summary Get a row with its related rows
// @Tags Resources
// @Produce json
// @Param id path int true "row id"
// @Success 200 {object} object
// @Router /customers/{id} [get]
// @Router /categories/{id} [get]
// @Router /products/{id} [get]
// @Router /orders/{id} [get]
// @Router /orderedItems/{id} [get]
// @Router /payments/{id} [get]
func (r *resource[T]) get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, r.label, err)
	}
	row, err := r.repo.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, r.label, err)
	}
	return c.JSON(http.StatusOK, row)
}

// @Summary Create a row
// @Tags Resources
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body object true "every field of the entity"
// @Success 201 {object} map[string]interface{}
// @Router /customers [post]
// @Router /categories [post]
// @Router /products [post]
// @Router /orders [post]
// @Router /orderedItems [post]
// @Router /payments [post]
func (r *resource[T]) create(c echo.Context) error {
	ctx := c.Request().Context()
	rec, err := r.validBody(c)
	if err != nil {
		return fail(c, r.label, err)
	}
	row, err := r.build(ctx, rec, 0)
	if err != nil {
		return fail(c, r.label, err)
	}
	if err := r.repo.Create(ctx, row); err != nil {
		return fail(c, r.label, err)
	}
	r.api.publish(c, r.repo.Entity(), audit.ActionCreate, r.idOf(row))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": r.label + " created successfully.",
		r.key:     row,
	})
}

// update fully replaces a row; PUT and PATCH behave the same
//
// @Summary Replace a row
// @Tags Resources
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "row id"
// @Param body body object true "every field of the entity"
// @Success 200 {object} map[string]interface{}
// @Router /customers/{id} [put]
// @Router /customers/{id} [patch]
// @Router /categories/{id} [put]
// @Router /categories/{id} [patch]
// @Router /products/{id} [put]
// @Router /products/{id} [patch]
// @Router /orders/{id} [put]
// @Router /orders/{id} [patch]
// @Router /orderedItems/{id} [put]
// @Router /orderedItems/{id} [patch]
// @Router /payments/{id} [put]
// @Router /payments/{id} [patch]
func (r *resource[T]) update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, r.label, err)
	}
	ctx := c.Request().Context()
	rec, err := r.validBody(c)
	if err != nil {
		return fail(c, r.label, err)
	}
	if _, err := r.repo.FindByID(ctx, id); err != nil {
		return fail(c, r.label, err)
	}
	row, err := r.build(ctx, rec, id)
	if err != nil {
		return fail(c, r.label, err)
	}
	updated, err := r.repo.Update(ctx, id, row)
	if err != nil {
		return fail(c, r.label, err)
	}
	r.api.publish(c, r.repo.Entity(), audit.ActionUpdate, id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": r.label + " updated successfully.",
		r.key:     updated,
	})
}

// delete removes a row and leaves rows referring to it in place
//
// @Summary Delete a row
// @Tags Resources
// @Security BearerAuth
// @Produce json
// @Param id path int true "row id"
// @Success 200 {object} map[string]interface{}
// @Router /customers/{id} [delete]
// @Router /categories/{id} [delete]
// @Router /products/{id} [delete]
// @Router /orders/{id} [delete]
// @Router /orderedItems/{id} [delete]
// @Router /payments/{id} [delete]
func (r *resource[T]) delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, r.label, err)
	}
	ctx := c.Request().Context()
	if err := r.repo.Delete(ctx, id); err != nil {
		return fail(c, r.label, err)
	}
	if orphans, err := r.repo.Orphans(ctx, id); err != nil {
		zap.L().Warn("count dependents", zap.Error(err))
	} else if len(orphans) > 0 {
		zap.L().Info("deleted row still referenced",
			zap.String("entity", string(r.repo.Entity())),
			zap.Int64("id", id),
			zap.Any("rows", orphans))
	}
	r.api.publish(c, r.repo.Entity(), audit.ActionDelete, id)
	return c.JSON(http.StatusOK, echo.Map{"message": r.label + " deleted successfully."})
}

func (r *resource[T]) validBody(c echo.Context) (schema.Record, error) {
	raw, err := readRecord(c)
	if err != nil {
		return nil, err
	}
	return schema.Validate(raw, r.schema)
}
