package utils

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// GenerateTraceId returns a fresh trace ID for a request.
func GenerateTraceId() string {
	return uuid.New().String()
}

// ExtractServiceName returns the service label attached to every log entry.
func ExtractServiceName() string {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "cu2m-backend"
	}
	return service
}

// LogEntry dispatches a message to the entry at the requested level.
func LogEntry(entry *log.Entry, level, message string) {
	switch level {
	case "debug":
		entry.Debug(message)
	case "info":
		entry.Info(message)
	case "warn":
		entry.Warn(message)
	case "error":
		entry.Error(message)
	case "fatal":
		entry.Fatal(message)
	case "panic":
		entry.Panic(message)
	default:
		entry.Info(message)
	}
}

func requestEntry(c *gin.Context) *log.Entry {
	fields := log.Fields{
		"service": ExtractServiceName(),
	}
	if traceId, ok := c.Value(TraceIdKey.String()).(string); ok {
		fields["traceId"] = traceId
	}
	return log.WithFields(fields)
}

// LogMessageWithFields logs a message enriched with the request's trace ID.
func LogMessageWithFields(c *gin.Context, level, message string) {
	LogEntry(requestEntry(c), level, message)
}

// LogMessageWithFieldsAndError logs a message plus the underlying error.
func LogMessageWithFieldsAndError(c *gin.Context, level, message string, err error) {
	LogEntry(requestEntry(c).WithError(err), level, message)
}
