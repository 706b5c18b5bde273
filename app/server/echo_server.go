package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/acme/autocert"
	"golang.org/x/time/rate"

	"github.com/mahesh-hegde/instante/app/common"
	"github.com/mahesh-hegde/instante/app/config"
	"github.com/mahesh-hegde/instante/app/visualizer"
)

// room for multipart boundaries and headers on top of the file itself
const multipartSlack = 1 << 20

// errorResponse maps err to a status code and a message safe to return.
func errorResponse(err error) (int, string) {
	var he *echo.HTTPError
	var uve *common.UserVisibleError
	var nfe *visualizer.NotFoundError
	var ve *visualizer.ValidationError
	var ue *visualizer.UnsupportedChartTypeError
	var ce *visualizer.ComputationError

	switch {
	case errors.As(err, &he):
		return he.Code, fmt.Sprintf("%v", he.Message)
	case errors.As(err, &uve):
		return uve.HttpCode, uve.Message
	case errors.As(err, &nfe):
		return http.StatusNotFound, "File not found"
	case errors.As(err, &ve), errors.As(err, &ue):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &ce):
		return http.StatusUnprocessableEntity, err.Error()
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// NewServer wires the middleware stack and routes. It does not listen.
func NewServer(controller *InstanteController, conf *config.InstanteConfig, serverConf config.ServerRuntimeConfig) *echo.Echo {
	e := echo.New()
	e.JSONSerializer = goJSONSerializer{}
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code, msg := errorResponse(err)
		if code >= http.StatusInternalServerError {
			slog.Error("request failed", "uri", c.Request().RequestURI, "err", err)
		}
		if !c.Response().Committed {
			if respErr := c.JSON(code, map[string]string{"detail": msg}); respErr != nil {
				slog.Error("failed to write error response", "err", respErr)
			}
		}
	}
	e.HideBanner = true

	if serverConf.CertDir != "" {
		e.Pre(middleware.HTTPSRedirect())
	}
	e.Pre(middleware.RemoveTrailingSlash())
	e.Pre(echo.MiddlewareFunc(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			url := req.URL
			if req.Host != conf.Hostnames[0] && serverConf.AcmeEnabled {
				url.Host = conf.Hostnames[0]
				slog.Info("redirect to canonical hostname", "original_hostname", req.Host)
				return c.Redirect(http.StatusPermanentRedirect, url.String())
			}
			return next(c)
		}
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	var identifierExtractor middleware.Extractor
	if serverConf.BehindLoadBalancer {
		identifierExtractor = func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		}
	} else {
		identifierExtractor = func(ctx echo.Context) (string, error) {
			return ctx.Request().RemoteAddr, nil
		}
	}

	if serverConf.RateLimit > 0 {
		e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Skipper: middleware.DefaultSkipper,
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{
					Rate:      rate.Limit(serverConf.RateLimit),
					Burst:     3 * serverConf.RateLimit,
					ExpiresIn: 3 * time.Minute,
				},
			),
			IdentifierExtractor: identifierExtractor,
			ErrorHandler: func(context echo.Context, err error) error {
				return context.JSON(http.StatusForbidden, map[string]string{"detail": "Forbidden"})
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				return context.JSON(http.StatusTooManyRequests, map[string]string{"detail": "Too Many Requests"})
			},
		}))
	}

	if len(conf.CorsOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: conf.CorsOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		}))
	}

	if conf.MaxUploadBytes > 0 {
		e.Use(middleware.BodyLimit(strconv.FormatInt(conf.MaxUploadBytes+multipartSlack, 10)))
	}

	if serverConf.GzipLevel != 0 {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: serverConf.GzipLevel, MinLength: 512}))
	}

	if conf.TimeoutSeconds != 0 {
		e.Use(middleware.ContextTimeout(time.Duration(conf.TimeoutSeconds) * time.Second))
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogRemoteIP: true,
		LogLatency:  conf.LogLatency,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				logger.LogAttrs(context.Background(), slog.LevelInfo, "REQUEST",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.Int64("latency_ms", v.Latency.Milliseconds()),
					slog.String("remote_ip", v.RemoteIP),
				)
			} else {
				logger.LogAttrs(context.Background(), slog.LevelError, "REQUEST_ERROR",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("err", v.Error.Error()),
					slog.String("remote_ip", v.RemoteIP),
					slog.Int64("latency_ms", v.Latency.Milliseconds()),
				)
			}
			return nil
		},
	}))

	e.GET("/", controller.GetHome)
	e.GET("/health", controller.GetHealth)
	e.POST("/upload", controller.UploadFile)
	e.POST("/analyze/:fileId", controller.AnalyzeFile)
	e.POST("/chart-data", controller.GetChartData)
	e.POST("/explain", controller.ExplainChart)
	e.GET("/files/:fileId", controller.GetFileInfo)
	e.DELETE("/files/:fileId", controller.DeleteFile)
	return e
}

func StartServer(controller *InstanteController, conf *config.InstanteConfig, serverConf config.ServerRuntimeConfig) {
	e := NewServer(controller, conf, serverConf)

	addr := fmt.Sprintf("%s:%d", serverConf.Addr, serverConf.Port)
	certDir := serverConf.CertDir

	if certDir != "" {
		if serverConf.AcmeEnabled {
			slog.Info("using TLS with ACME", "dir", certDir)
			e.AutoTLSManager.HostPolicy = autocert.HostWhitelist(conf.Hostnames...)
			e.AutoTLSManager.Cache = autocert.DirCache(certDir)
			e.Logger.Fatal(e.StartAutoTLS(addr))
		} else {
			slog.Info("using TLS with certDir", "dir", certDir)
			e.Logger.Fatal(e.StartTLS(addr, path.Join(certDir, "fullchain.pem"), path.Join(certDir, "privkey.pem")))
		}
	} else {
		slog.Info("starting server", "addr", addr)
		e.Logger.Fatal(e.Start(addr))
	}
}
