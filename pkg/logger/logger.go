package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LogLevel string

const (
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

var levelRank = map[LogLevel]int{LevelInfo: 0, LevelWarn: 1, LevelError: 2}

// ParseLevel maps a configured level name to a LogLevel. Unknown names
// select LevelInfo.
func ParseLevel(name string) LogLevel {
	level := LogLevel(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := levelRank[level]; !ok {
		return LevelInfo
	}
	return level
}

type LogEntry struct {
	Timestamp  time.Time              `json:"timestamp"`
	Level      LogLevel               `json:"level"`
	CustomerID *string                `json:"customer_id,omitempty"`
	Action     string                 `json:"action"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Caller     string                 `json:"caller,omitempty"`
}

// Logger writes one JSON object per line. Entries below min are dropped.
type Logger struct {
	mu     sync.Mutex
	output io.Writer
	min    LogLevel
}

var globalLogger *Logger

func New(output io.Writer, min LogLevel) *Logger {
	if output == nil {
		output = os.Stdout
	}
	return &Logger{output: output, min: ParseLevel(string(min))}
}

// Init routes the global logger to stdout, keeping entries at or above level.
func Init(level string) {
	globalLogger = New(os.Stdout, LogLevel(level))
}

// InitWithWriter routes the global logger to w at info level. Tests use it
// to capture output.
func InitWithWriter(w io.Writer) {
	globalLogger = New(w, LevelInfo)
}

func (l *Logger) write(level LogLevel, customerID *string, action string, err error, details map[string]interface{}) {
	if levelRank[level] < levelRank[l.min] {
		return
	}

	entry := LogEntry{
		Timestamp:  time.Now().UTC(),
		Level:      level,
		CustomerID: customerID,
		Action:     action,
		Details:    details,
		Caller:     caller(),
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		data, _ = json.Marshal(LogEntry{Timestamp: entry.Timestamp, Level: level, Action: action, Error: marshalErr.Error()})
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write(append(data, '\n'))
}

func emit(level LogLevel, customerID *string, action string, err error, details map[string]interface{}) {
	if globalLogger != nil {
		globalLogger.write(level, customerID, action, err, details)
	}
}

func Info(action string, details map[string]interface{}) {
	emit(LevelInfo, nil, action, nil, details)
}

func InfoWithCustomer(customerID string, action string, details map[string]interface{}) {
	emit(LevelInfo, &customerID, action, nil, details)
}

func Warn(action string, details map[string]interface{}) {
	emit(LevelWarn, nil, action, nil, details)
}

func WarnWithCustomer(customerID string, action string, details map[string]interface{}) {
	emit(LevelWarn, &customerID, action, nil, details)
}

func Error(action string, err error, details map[string]interface{}) {
	emit(LevelError, nil, action, err, details)
}

func ErrorWithCustomer(customerID string, action string, err error, details map[string]interface{}) {
	emit(LevelError, &customerID, action, err, details)
}

// GetCustomerIDFromContext returns the tenant id a handler stored in the
// request locals, if any.
func GetCustomerIDFromContext(c *fiber.Ctx) *string {
	if id, ok := c.Locals("customerID").(string); ok {
		return &id
	}
	return nil
}

// caller skips write, emit and the exported helper.
func caller() string {
	if _, file, line, ok := runtime.Caller(4); ok {
		return fmt.Sprintf("%s:%d", file, line)
	}
	return ""
}

const (
	summaryLimit   = 1024
	summaryPreview = 200
)

// RequestBodySummary describes a request body for the access log. Small JSON
// bodies are echoed in compact form, truncated to a short preview.
func RequestBodySummary(body []byte) string {
	if short, done := sizeSummary(body); done {
		return short
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Sprintf("binary (%d bytes)", len(body))
	}
	compact, err := json.Marshal(decoded)
	if err != nil {
		return fmt.Sprintf("binary (%d bytes)", len(body))
	}
	if len(compact) > summaryPreview {
		return string(compact[:summaryPreview]) + "..."
	}
	return string(compact)
}

// ResponseBodySummary reports only the size class of a response body.
func ResponseBodySummary(body []byte) string {
	if short, done := sizeSummary(body); done {
		return short
	}
	return fmt.Sprintf("small (%d bytes)", len(body))
}

func sizeSummary(body []byte) (string, bool) {
	switch {
	case len(body) == 0:
		return "empty", true
	case len(body) > summaryLimit:
		return fmt.Sprintf("large (%d bytes)", len(body)), true
	}
	return "", false
}

func GenerateRequestID() string {
	return uuid.New().String()
}
