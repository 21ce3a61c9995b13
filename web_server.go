package main

import (
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/pires/go-proxyproto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"zultys-gsm7/gsm7"
	"zultys-gsm7/smpp/coding"
)

const requestIDHeader = "X-Request-Id"

// WebServer exposes the codec over HTTP.
type WebServer struct {
	app     *iris.Application
	cfg     ServiceConfig
	codec   gsm7.Config
	metrics *MetricExporter
}

type encodeRequest struct {
	Text   string `json:"text"`
	Format string `json:"format,omitempty"`
	codecOptions
}

type encodeResponse struct {
	Data   string `json:"data"`
	Format string `json:"format"`
	Length int    `json:"length"`
}

type decodeRequest struct {
	Data   string `json:"data"`
	Format string `json:"format,omitempty"`
	codecOptions
}

type validateRequest struct {
	Data      string `json:"data"`
	Format    string `json:"format,omitempty"`
	MaxLength *int   `json:"max_length,omitempty"`
}

type textRequest struct {
	Text string `json:"text"`
}

type textResponse struct {
	Text string `json:"text"`
}

type validateResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// NewWebServer registers the codec routes. gatherer serves METRICS_PATH unless
// metrics have their own listener.
func NewWebServer(cfg ServiceConfig, metrics *MetricExporter, gatherer prometheus.Gatherer) (*WebServer, error) {
	codec, err := cfg.Codec()
	if err != nil {
		return nil, err
	}

	srv := &WebServer{
		app:     iris.New(),
		cfg:     cfg,
		codec:   codec,
		metrics: metrics,
	}
	srv.app.Use(requestIDMiddleware)

	srv.app.Get("/health", webHealthCheck)
	if cfg.MetricsListen == "" && gatherer != nil {
		exporter := &PrometheusExporter{Path: cfg.MetricsPath, Gatherer: gatherer}
		srv.app.Get(cfg.MetricsPath, iris.FromStd(exporter.Handler()))
	}

	var guards []iris.Handler
	if cfg.APIKey != "" {
		guards = append(guards, srv.basicAuthMiddleware)
	}
	api := srv.app.Party("/", guards...)
	api.Post("/encode", srv.webEncode)
	api.Post("/decode", srv.webDecode)
	api.Post("/validate", srv.webValidate)
	api.Post("/length", srv.webLength)
	api.Post("/clean", srv.webClean)

	return srv, nil
}

// Start listens on WEB_LISTEN, behind the PROXY protocol if configured.
func (srv *WebServer) Start() error {
	logf := LoggingFormat{Type: LogType.Web, Path: "web_server", Function: "Start"}

	l, err := listen(srv.cfg.WebListen, srv.cfg.ProxyProtocol)
	if err != nil {
		return err
	}

	logf.Level = logrus.InfoLevel
	logf.Message = fmt.Sprintf("Starting web server on %s", srv.cfg.WebListen)
	logf.AddField("proxy_protocol", srv.cfg.ProxyProtocol)
	logf.Print()

	return srv.app.Run(iris.Listener(l), iris.WithoutStartupLog, iris.WithoutServerError(iris.ErrServerClosed))
}

func listen(addr string, proxyProtocol bool) (net.Listener, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if proxyProtocol {
		return &proxyproto.Listener{Listener: l}, nil
	}
	return l, nil
}

// requestIDMiddleware tags every request with an id and logs its outcome.
func requestIDMiddleware(ctx iris.Context) {
	id := ctx.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	ctx.Values().Set("request_id", id)
	ctx.Header(requestIDHeader, id)

	ctx.Next()

	logf := LoggingFormat{
		Type:    LogType.Web,
		Level:   logrus.DebugLevel,
		Message: "Request handled",
	}
	logf.AddField("request_id", id)
	logf.AddField("method", ctx.Method())
	logf.AddField("path", ctx.Path())
	logf.AddField("status", ctx.GetStatusCode())
	logf.AddField("client_ip", ctx.RemoteAddr())
	logf.Print()
}

// basicAuthMiddleware enforces Basic Authentication with API_KEY as the password.
func (srv *WebServer) basicAuthMiddleware(ctx iris.Context) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		unauthorized(ctx, "Authorization header missing")
		return
	}

	const prefix = "Basic "
	if !strings.HasPrefix(authHeader, prefix) {
		unauthorized(ctx, "Invalid Authorization header format")
		return
	}

	decodedBytes, err := base64.StdEncoding.DecodeString(authHeader[len(prefix):])
	if err != nil {
		unauthorized(ctx, "Failed to decode credentials")
		return
	}

	// Username is ignored; the API key is the password.
	_, apiKey, ok := strings.Cut(string(decodedBytes), ":")
	if !ok {
		unauthorized(ctx, "Invalid credentials format")
		return
	}
	if apiKey != srv.cfg.APIKey {
		unauthorized(ctx, "Invalid API key")
		return
	}

	ctx.Next()
}

// unauthorized responds with a 401 status and a WWW-Authenticate header
func unauthorized(ctx iris.Context, message string) {
	logf := LoggingFormat{
		Type:    "middleware_auth",
		Level:   logrus.WarnLevel,
		Message: message,
	}
	logf.AddField("client_ip", ctx.RemoteAddr())
	logf.AddField("request_id", ctx.Values().GetString("request_id"))
	logf.Print()

	ctx.Header("WWW-Authenticate", `Basic realm="Restricted"`)
	ctx.StatusCode(http.StatusUnauthorized)
	ctx.WriteString("Unauthorized")
}

func (srv *WebServer) webEncode(ctx iris.Context) {
	var req encodeRequest
	if err := ctx.ReadJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	cfg, err := req.apply(srv.codec)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	format := req.Format
	if format == "" {
		format = FormatHex
	}
	if _, err := formatBytes(nil, format); err != nil {
		badRequest(ctx, err)
		return
	}

	encoded, err := gsm7.EncodeWithConfig(req.Text, cfg)
	srv.metrics.Observe("encode", err)
	if err != nil {
		codecError(ctx, "encode", err)
		return
	}
	srv.metrics.AddBytes("encoded", len(encoded))

	data, _ := formatBytes(encoded, format)
	ctx.JSON(encodeResponse{Data: data, Format: strings.ToLower(format), Length: len(encoded)})
}

func (srv *WebServer) webDecode(ctx iris.Context) {
	var req decodeRequest
	if err := ctx.ReadJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	cfg, err := req.apply(srv.codec)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	data, err := parseBytes(req.Data, req.Format)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	text, err := gsm7.DecodeWithConfig(data, cfg)
	srv.metrics.Observe("decode", err)
	if err != nil {
		codecError(ctx, "decode", err)
		return
	}
	srv.metrics.AddBytes("decoded", len(data))
	ctx.JSON(textResponse{Text: text})
}

func (srv *WebServer) webValidate(ctx iris.Context) {
	var req validateRequest
	if err := ctx.ReadJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	cfg, err := codecOptions{MaxLength: req.MaxLength}.apply(srv.codec)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	data, err := parseBytes(req.Data, req.Format)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	err = gsm7.ValidateWithConfig(data, cfg)
	srv.metrics.Observe("validate", err)
	if err != nil {
		ctx.JSON(validateResponse{Error: err.Error(), Kind: string(gsm7.KindOf(err))})
		return
	}
	ctx.JSON(validateResponse{Valid: true})
}

func (srv *WebServer) webLength(ctx iris.Context) {
	var req textRequest
	if err := ctx.ReadJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	size, err := coding.Measure(req.Text)
	srv.metrics.Observe("length", err)
	if err != nil {
		codecError(ctx, "length", err)
		return
	}
	ctx.JSON(size)
}

func (srv *WebServer) webClean(ctx iris.Context) {
	var req textRequest
	if err := ctx.ReadJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	srv.metrics.Observe("clean", nil)
	ctx.JSON(textResponse{Text: CleanSMS(req.Text)})
}

func webHealthCheck(ctx iris.Context) {
	ctx.StatusCode(http.StatusOK)
	ctx.WriteString("OK")
}

func badRequest(ctx iris.Context, err error) {
	ctx.StatusCode(http.StatusBadRequest)
	ctx.JSON(errorResponse{Error: err.Error()})
}

// codecError maps codec failures to 422, anything else to 500.
func codecError(ctx iris.Context, operation string, err error) {
	kind := gsm7.KindOf(err)

	logf := LoggingFormat{
		Type:    LogType.Codec,
		Level:   logrus.InfoLevel,
		Message: fmt.Sprintf("%s rejected", operation),
		Error:   err,
	}
	logf.AddField("kind", string(kind))
	logf.AddField("request_id", ctx.Values().GetString("request_id"))

	status := http.StatusUnprocessableEntity
	if kind == "" {
		status = http.StatusInternalServerError
		logf.Level = logrus.ErrorLevel
	}
	logf.Print()

	ctx.StatusCode(status)
	ctx.JSON(errorResponse{Error: err.Error(), Kind: string(kind)})
}
