package webserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo-contrib/prometheus"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "github.com/bjo163/orderdesk/docs"

	"github.com/bjo163/orderdesk/config"
	"github.com/bjo163/orderdesk/internal/auth"
	"github.com/bjo163/orderdesk/pkg/common"
)

// UserContextKey is where the verified token is stored on the echo context
const UserContextKey = "user"

// Server is the http front of the order system
type Server struct {
	root   *echo.Echo
	config *config.AppConfig
	jwt    echo.MiddlewareFunc
}

// NewServer builds the echo instance with the shared middleware chain
func NewServer(cfg *config.AppConfig, tokens *auth.TokenIssuer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.System.Debug
	e.JSONSerializer = jsoniterSerializer{}
	e.HTTPErrorHandler = httpErrorHandler

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: common.UUIDString,
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			zap.L().Error("handler panic", zap.Error(err), zap.ByteString("stack", stack))
			return err
		},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			zap.L().Info("http request", fields...)
			return nil
		},
	}))

	if cfg.Web.Metrics {
		prometheus.NewPrometheus("orderdesk", nil).Use(e)
	}
	if cfg.Web.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	s := &Server{root: e, config: cfg}
	s.jwt = echojwt.WithConfig(echojwt.Config{
		SigningKey:    tokens.Secret(),
		SigningMethod: "HS256",
		ContextKey:    UserContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"message": "Invalid or expired token provided!",
				"error":   err.Error(),
			})
		},
	})
	return s
}

// Echo exposes the underlying echo instance (used by tests)
func (s *Server) Echo() *echo.Echo {
	return s.root
}

// RequireAuth rejects requests without a valid bearer token
func (s *Server) RequireAuth() echo.MiddlewareFunc {
	return s.jwt
}

func (s *Server) ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.GET(path, h, m...)
}

func (s *Server) ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.POST(path, h, m...)
}

func (s *Server) ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.PUT(path, h, m...)
}

func (s *Server) ApiPATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.PATCH(path, h, m...)
}

func (s *Server) ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.DELETE(path, h, m...)
}

// Start blocks serving http until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Web.Host, s.config.Web.Port)
	zap.S().Infof("Start web server %s", addr)
	err := s.root.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.root.Shutdown(ctx)
}

// Operator returns the email carried by the request's bearer token, or ""
// on unauthenticated routes.
func Operator(c echo.Context) string {
	tok, ok := c.Get(UserContextKey).(*jwt.Token)
	if !ok {
		return ""
	}
	if claims, ok := tok.Claims.(*auth.Claims); ok {
		return claims.Email
	}
	return ""
}

// httpErrorHandler renders framework errors (unknown route, bad method,
// malformed json) with the same {message, error?} body as the handlers.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "Something went wrong with your request."
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	} else {
		zap.L().Error("unhandled error", zap.Error(err))
	}

	body := map[string]interface{}{"message": msg}
	if code >= http.StatusInternalServerError && err != nil {
		body["error"] = err.Error()
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		zap.L().Error("write error response", zap.Error(err))
	}
}
