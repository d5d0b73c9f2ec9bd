// Package logging builds the service logger and its gin request middleware.
package logging

import (
	"net"
	"os"
	"strings"
	"time"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"

	"kam-api/config"
)

const (
	serviceName     = "kam-api"
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// New builds a logger from cfg. Shipping hooks that fail to connect are
// reported on the logger itself and skipped.
func New(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stdout

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	if cfg.ElasticURL != "" {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{cfg.ElasticURL},
		})
		if err != nil {
			logger.WithError(err).Warn("elasticsearch client")
		} else if hook, err := elogrus.NewAsyncElasticHook(client, serviceName, level, cfg.ElasticIndex); err != nil {
			logger.WithError(err).Warn("elasticsearch log hook")
		} else {
			logger.Hooks.Add(hook)
		}
	}

	if cfg.LogstashURL != "" {
		conn, err := net.Dial("udp", cfg.LogstashURL)
		if err != nil {
			logger.WithError(err).Warn("logstash log hook")
		} else {
			logger.Hooks.Add(logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": serviceName})))
		}
	}

	return logger
}

// RequestLogger tags every request with an X-Request-ID (reusing the
// caller's when present) and logs one line once the handler returns.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}

// FromContext returns logger scoped to the current request.
func FromContext(c *gin.Context, logger *logrus.Entry) *logrus.Entry {
	if id, ok := c.Get(requestIDKey); ok {
		return logger.WithField("request_id", id)
	}
	return logger
}
