package aria2

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"assethunt-engine/internal/domain"

	"github.com/google/uuid"
)

const (
	DefaultProbeTimeout  = 5 * time.Second
	DefaultSubmitTimeout = 10 * time.Second
	DefaultSplit         = 16
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	Endpoint string
	Token    string
	// Timeout bounds every call except the probe.
	Timeout      time.Duration
	ProbeTimeout time.Duration
	// Split and MaxConnectionPerServer are sent with every addUri.
	Split                  int
	MaxConnectionPerServer int
}

// Client talks JSON-RPC 2.0 to an aria2-compatible download manager
// (aria2c, Motrix). It never retries.
type Client struct {
	cfg      Config
	hc       HTTPDoer
	logger   *slog.Logger
	mkdirAll func(string, fs.FileMode) error
}

func New(cfg Config, hc HTTPDoer, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultSubmitTimeout
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.Split <= 0 {
		cfg.Split = DefaultSplit
	}
	if cfg.MaxConnectionPerServer <= 0 {
		cfg.MaxConnectionPerServer = DefaultSplit
	}
	if hc == nil {
		hc = &http.Client{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		cfg:      cfg,
		hc:       hc,
		logger:   logger.With("component", "aria2"),
		mkdirAll: os.MkdirAll,
	}
}

func (c *Client) Endpoint() string { return c.cfg.Endpoint }

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type response struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// call performs one RPC. The token is prepended to params.
func (c *Client) call(ctx context.Context, timeout time.Duration, method string, params []any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	all := make([]any, 0, len(params)+1)
	if c.cfg.Token != "" {
		all = append(all, "token:"+c.cfg.Token)
	}
	all = append(all, params...)

	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  method,
		Params:  all,
	})
	if err != nil {
		return fmt.Errorf("aria2 %s encode: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("aria2 %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("aria2 %s: %w", method, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return &StatusError{Method: method, StatusCode: res.StatusCode}
	}

	var rpc response
	if err := json.NewDecoder(res.Body).Decode(&rpc); err != nil {
		return fmt.Errorf("aria2 %s decode: %w", method, err)
	}
	if rpc.Error != nil {
		return rpc.Error
	}
	if len(rpc.Result) == 0 || string(rpc.Result) == "null" {
		return ErrMissingResult
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rpc.Result, out); err != nil {
		return fmt.Errorf("aria2 %s result: %w", method, err)
	}
	return nil
}

type VersionInfo struct {
	Version         string   `json:"version"`
	EnabledFeatures []string `json:"enabledFeatures"`
}

func (c *Client) Version(ctx context.Context) (VersionInfo, error) {
	var v VersionInfo
	err := c.call(ctx, c.cfg.ProbeTimeout, "aria2.getVersion", nil, &v)
	return v, err
}

// Probe reports whether the download manager answers a version request.
func (c *Client) Probe(ctx context.Context) bool {
	v, err := c.Version(ctx)
	if err != nil {
		c.logger.Warn("probe failed", "endpoint", c.cfg.Endpoint, "error", err)
		return false
	}
	c.logger.Info("download manager reachable", "endpoint", c.cfg.Endpoint, "version", v.Version)
	return true
}

// Submit creates the job's target directory and adds its URL. It returns the
// task id (gid) assigned by the download manager.
func (c *Client) Submit(ctx context.Context, job domain.DownloadJob) (string, error) {
	if strings.TrimSpace(job.Resource.DownloadURL) == "" {
		return "", fmt.Errorf("aria2 submit %q: empty download url", job.Resource.Title)
	}
	if job.Dir != "" {
		if err := c.mkdirAll(job.Dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", job.Dir, err)
		}
	}

	opts := map[string]string{
		"dir":                       job.Dir,
		"out":                       job.OutName,
		"max-connection-per-server": strconv.Itoa(c.cfg.MaxConnectionPerServer),
		"split":                     strconv.Itoa(c.cfg.Split),
	}
	var gid string
	if err := c.call(ctx, c.cfg.Timeout, "aria2.addUri", []any{[]string{job.Resource.DownloadURL}, opts}, &gid); err != nil {
		return "", err
	}
	c.logger.Debug("job added", "gid", gid, "title", job.Resource.Title, "dir", job.Dir)
	return gid, nil
}

// task is the wire shape of tellActive/tellStatus entries; numbers are strings.
type task struct {
	GID             string `json:"gid"`
	Status          string `json:"status"`
	CompletedLength string `json:"completedLength"`
	TotalLength     string `json:"totalLength"`
	DownloadSpeed   string `json:"downloadSpeed"`
	ErrorMessage    string `json:"errorMessage"`
	Files           []struct {
		Path string `json:"path"`
	} `json:"files"`
}

var statusKeys = []string{"gid", "status", "completedLength", "totalLength", "downloadSpeed", "errorMessage", "files"}

func (t task) toStatus() domain.JobStatus {
	s := domain.JobStatus{
		GID:             t.GID,
		Status:          t.Status,
		CompletedLength: parseInt(t.CompletedLength),
		TotalLength:     parseInt(t.TotalLength),
		DownloadSpeed:   parseInt(t.DownloadSpeed),
		ErrorMessage:    t.ErrorMessage,
	}
	if len(t.Files) > 0 {
		s.Path = t.Files[0].Path
	}
	return s
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func (c *Client) ActiveJobs(ctx context.Context) ([]domain.JobStatus, error) {
	var tasks []task
	if err := c.call(ctx, c.cfg.Timeout, "aria2.tellActive", []any{statusKeys}, &tasks); err != nil {
		return nil, err
	}
	out := make([]domain.JobStatus, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.toStatus())
	}
	return out, nil
}

func (c *Client) TellStatus(ctx context.Context, gid string) (domain.JobStatus, error) {
	var t task
	if err := c.call(ctx, c.cfg.Timeout, "aria2.tellStatus", []any{gid, statusKeys}, &t); err != nil {
		return domain.JobStatus{}, err
	}
	return t.toStatus(), nil
}

func (c *Client) Pause(ctx context.Context, gid string) error {
	return c.call(ctx, c.cfg.Timeout, "aria2.pause", []any{gid}, nil)
}

func (c *Client) Unpause(ctx context.Context, gid string) error {
	return c.call(ctx, c.cfg.Timeout, "aria2.unpause", []any{gid}, nil)
}

func (c *Client) Remove(ctx context.Context, gid string) error {
	return c.call(ctx, c.cfg.Timeout, "aria2.remove", []any{gid}, nil)
}
