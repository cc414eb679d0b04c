// File path: internal/transport/telegram/client.go

// Package telegram implements the chat transport against the Telegram Bot
// API: long-polled update intake plus message and document delivery. Only
// the narrow surface the bot core needs is covered.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dca-labs/reportbot/internal/common"
	"github.com/dca-labs/reportbot/internal/transport"
)

const (
	defaultBaseURL     = "https://api.telegram.org"
	defaultPollTimeout = 30 * time.Second
)

// Client talks to the Bot API for a single bot token.
type Client struct {
	token       string
	baseURL     string
	pollTimeout time.Duration
	httpClient  *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL points the client at an alternate API host, used in tests.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(strings.TrimSpace(raw), "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient builds a Bot API client.
func NewClient(token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("telegram token required")
	}
	c := &Client{
		token:       strings.TrimSpace(token),
		baseURL:     defaultBaseURL,
		pollTimeout: defaultPollTimeout,
		httpClient:  &http.Client{Timeout: defaultPollTimeout + 10*time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type apiUpdate struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

// Poll long-polls getUpdates until the context is cancelled, handing every
// text message to the handler. Updates are dispatched in arrival order; the
// handler is responsible for per-conversation serialization.
func (c *Client) Poll(ctx context.Context, handler transport.Handler) error {
	logger := common.Logger()
	logger.Info("telegram: polling started")
	var offset int64
	for {
		select {
		case <-ctx.Done():
			logger.Info("telegram: polling stopped")
			return ctx.Err()
		default:
		}
		updates, err := c.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("telegram: getUpdates failed", "error", err)
			time.Sleep(time.Second)
			continue
		}
		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			if upd.Message == nil || strings.TrimSpace(upd.Message.Text) == "" {
				continue
			}
			handler.HandleUpdate(ctx, transport.ParseMessage(upd.Message.Chat.ID, upd.Message.Text))
		}
	}
}

func (c *Client) getUpdates(ctx context.Context, offset int64) ([]apiUpdate, error) {
	params := url.Values{}
	params.Set("timeout", strconv.Itoa(int(c.pollTimeout/time.Second)))
	if offset > 0 {
		params.Set("offset", strconv.FormatInt(offset, 10))
	}
	raw, err := c.call(ctx, "getUpdates", params)
	if err != nil {
		return nil, err
	}
	var updates []apiUpdate
	if err := json.Unmarshal(raw, &updates); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	return updates, nil
}

// SendMessage delivers a text prompt to a conversation.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	params := url.Values{}
	params.Set("chat_id", strconv.FormatInt(chatID, 10))
	params.Set("text", text)
	_, err := c.call(ctx, "sendMessage", params)
	return err
}

// SendDocument uploads the file at path as a document attachment.
func (c *Client) SendDocument(ctx context.Context, chatID int64, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return fmt.Errorf("write chat_id field: %w", err)
	}
	part, err := writer.CreateFormFile("document", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create document part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy document: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendDocument"), &body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	defer resp.Body.Close()
	if _, err := decodeResponse(resp); err != nil {
		return err
	}
	return nil
}

func (c *Client) call(ctx context.Context, method string, params url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method),
		strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp)
}

func decodeResponse(resp *http.Response) (json.RawMessage, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var envelope apiResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if !envelope.OK {
		return nil, fmt.Errorf("api error (status %d): %s", resp.StatusCode, envelope.Description)
	}
	return envelope.Result, nil
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}
