package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// LogType groups log entries by the part of the service producing them.
var LogType = struct {
	Startup string
	CLI     string
	Web     string
	Codec   string
	Metrics string
}{
	Startup: "startup",
	CLI:     "cli",
	Web:     "web",
	Codec:   "codec",
	Metrics: "metrics",
}

// LoggingFormat describes a single structured log entry. A zero Level logs at
// info.
type LoggingFormat struct {
	Type     string
	Path     string
	Function string
	Level    logrus.Level
	Message  string
	Error    error
	fields   logrus.Fields
}

// AddField attaches a key/value pair to the entry.
func (l *LoggingFormat) AddField(key string, value interface{}) {
	if l.fields == nil {
		l.fields = logrus.Fields{}
	}
	l.fields[key] = value
}

// Print writes the entry to the standard logrus logger.
func (l *LoggingFormat) Print() {
	fields := logrus.Fields{}
	for k, v := range l.fields {
		fields[k] = v
	}
	if l.Type != "" {
		fields["type"] = l.Type
	}
	if l.Path != "" {
		fields["path"] = l.Path
	}
	if l.Function != "" {
		fields["function"] = l.Function
	}

	entry := logrus.WithFields(fields)
	if l.Error != nil {
		entry = entry.WithError(l.Error)
	}

	level := l.Level
	if level == logrus.PanicLevel {
		level = logrus.InfoLevel
	}
	entry.Log(level, l.Message)
}

// setupLogging configures the standard logger from the service config.
func setupLogging(cfg ServiceConfig) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	logrus.SetLevel(level)

	switch strings.ToLower(cfg.LogFormat) {
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	if cfg.LokiURL != "" {
		client := NewLokiClient(cfg.LokiURL, cfg.LokiUsername, cfg.LokiPassword)
		logrus.AddHook(NewLokiHook(client, map[string]string{"job": "gsm7"}))
	}
	return nil
}

// LokiClient is the transport behind LokiHook: one POST to the push API per
// log entry. Basic auth is sent only when both credentials are set.
type LokiClient struct {
	PushURL  string
	Username string
	Password string
	client   *http.Client
}

// LogEntry is a formatted logrus entry and the time it was logged.
type LogEntry struct {
	Timestamp time.Time
	Line      string
}

// LokiPushData is the push API body. The hook always sends one stream.
type LokiPushData struct {
	Streams []LokiStream `json:"streams"`
}

// LokiStream carries the hook labels plus the entry level, and
// [unix nanoseconds, line] pairs.
type LokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

// NewLokiClient returns a client whose pushes time out after five seconds.
func NewLokiClient(pushURL, username, password string) *LokiClient {
	return &LokiClient{
		PushURL:  pushURL,
		Username: username,
		Password: password,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// PushLog sends entry as a single-stream push labelled with labels.
func (c *LokiClient) PushLog(labels map[string]string, entry LogEntry) error {
	payload := LokiPushData{
		Streams: []LokiStream{
			{
				Stream: labels,
				Values: [][2]string{{strconv.FormatInt(entry.Timestamp.UnixNano(), 10), entry.Line}},
			},
		},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling json: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.PushURL, bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Username != "" && c.Password != "" {
		req.SetBasicAuth(c.Username, c.Password)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request to Loki: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("received unexpected response status: %d", resp.StatusCode)
	}
	return nil
}

// LokiHook ships every logrus entry to Loki.
type LokiHook struct {
	client *LokiClient
	labels map[string]string
}

// NewLokiHook returns a hook pushing entries with the given stream labels.
func NewLokiHook(client *LokiClient, labels map[string]string) *LokiHook {
	return &LokiHook{client: client, labels: labels}
}

func (h *LokiHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *LokiHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	labels := make(map[string]string, len(h.labels)+1)
	for k, v := range h.labels {
		labels[k] = v
	}
	labels["level"] = entry.Level.String()
	return h.client.PushLog(labels, LogEntry{Timestamp: entry.Time, Line: strings.TrimRight(line, "\n")})
}
