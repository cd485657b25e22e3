package adminapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bjo163/orderdesk/internal/audit"
	"github.com/bjo163/orderdesk/internal/auth"
	"github.com/bjo163/orderdesk/internal/domain"
	"github.com/bjo163/orderdesk/internal/schema"
)

const administratorLabel = "Administrator"

type loginPayload struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

func (a *API) administrators() administratorResource {
	return administratorResource{&resource[domain.Administrator]{
		api:    a,
		repo:   a.store.Administrators,
		schema: schema.AdministratorSignUp,
		key:    "administrator",
		label:  administratorLabel,
		idOf:   func(m *domain.Administrator) int64 { return m.ID },
		build: func(ctx context.Context, rec schema.Record, id int64) (*domain.Administrator, error) {
			var in auth.Account
			if err := schema.Decode(rec, &in); err != nil {
				return nil, err
			}
			return a.auth.Update(ctx, id, in)
		},
	}}
}

func (a *API) registerAdministratorRoutes() {
	r := a.administrators()
	s := a.server
	s.ApiPOST("/administrators/signup", a.signUp)
	s.ApiPOST("/administrators/login", a.login)
	s.ApiGET("/administrators", r.listAdministrators, s.RequireAuth())
	s.ApiGET("/administrators/:id", r.getAdministrator, s.RequireAuth())
	s.ApiPUT("/administrators/:id", a.updateAdministrator, s.RequireAuth())
	s.ApiPATCH("/administrators/:id", a.updateAdministrator, s.RequireAuth())
	s.ApiDELETE("/administrators/:id", r.deleteAdministrator, s.RequireAuth())
}

// administratorResource narrows the generic handlers to administrators so
// they carry their own docs and security.
type administratorResource struct {
	*resource[domain.Administrator]
}

// @Summary List administrators
// @Tags Administrators
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Administrator
// @Router /administrators [get]
func (r administratorResource) listAdministrators(c echo.Context) error {
	return r.list(c)
}

// @Summary Get an administrator
// @Tags Administrators
// @Security BearerAuth
// @Produce json
// @Param id path int true "row id"
// @Success 200 {object} domain.Administrator
// @Router /administrators/{id} [get]
func (r administratorResource) getAdministrator(c echo.Context) error {
	return r.get(c)
}

// @Summary Delete an administrator
// @Tags Administrators
// @Security BearerAuth
// @Produce json
// @Param id path int true "row id"
// @Success 200 {object} map[string]interface{}
// @Router /administrators/{id} [delete]
func (r administratorResource) deleteAdministrator(c echo.Context) error {
	return r.delete(c)
}

// signUp registers an administrator account
//
// @Summary Sign up a new administrator
// @Tags Administrators
// @Accept json
// @Produce json
// @Param body body object true "name, email, password, role, status"
// @Success 201 {object} map[string]interface{}
// @Router /administrators/signup [post]
func (a *API) signUp(c echo.Context) error {
	rec, err := readRecord(c)
	if err != nil {
		return fail(c, administratorLabel, err)
	}
	rec, err = schema.Validate(rec, schema.AdministratorSignUp)
	if err != nil {
		return fail(c, administratorLabel, err)
	}
	var in auth.Account
	if err := schema.Decode(rec, &in); err != nil {
		return fail(c, administratorLabel, err)
	}

	admin, err := a.auth.SignUp(c.Request().Context(), in)
	if err != nil {
		return fail(c, administratorLabel, err)
	}
	a.publish(c, domain.EntityAdministrator, audit.ActionCreate, admin.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message":       "User created successfully.",
		"administrator": admin,
	})
}

// login exchanges credentials for a bearer token
//
// @Summary Log in and receive a bearer token
// @Tags Administrators
// @Accept json
// @Produce json
// @Param body body object true "email, password"
// @Success 200 {object} map[string]interface{}
// @Router /administrators/login [post]
func (a *API) login(c echo.Context) error {
	rec, err := readRecord(c)
	if err != nil {
		return fail(c, administratorLabel, err)
	}
	rec, err = schema.Validate(rec, schema.Login)
	if err != nil {
		return fail(c, administratorLabel, err)
	}
	var in loginPayload
	if err := schema.Decode(rec, &in); err != nil {
		return fail(c, administratorLabel, err)
	}

	token, _, err := a.auth.Login(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		return fail(c, administratorLabel, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Authentication Successful",
		"token":   token,
	})
}

// updateAdministrator replaces an account. The auth service stores the row
// itself, so the generic update path is not used.
//
// @Summary Update an administrator
// @Tags Administrators
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "row id"
// @Param body body object true "name, email, password, role, status"
// @Success 200 {object} map[string]interface{}
// @Router /administrators/{id} [put]
// @Router /administrators/{id} [patch]
func (a *API) updateAdministrator(c echo.Context) error {
	r := a.administrators()
	id, err := parseID(c)
	if err != nil {
		return fail(c, administratorLabel, err)
	}
	rec, err := r.validBody(c)
	if err != nil {
		return fail(c, administratorLabel, err)
	}
	admin, err := r.build(c.Request().Context(), rec, id)
	if err != nil {
		return fail(c, administratorLabel, err)
	}
	a.publish(c, domain.EntityAdministrator, audit.ActionUpdate, id)
	return c.JSON(http.StatusOK, echo.Map{
		"message":       administratorLabel + " updated successfully.",
		"administrator": admin,
	})
}
