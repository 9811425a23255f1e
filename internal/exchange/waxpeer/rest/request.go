package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) post(ctx context.Context, path string, params url.Values, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, params, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values, body any, out any) error {
	path = strings.TrimPrefix(path, "/")
	entry := c.log.WithRequestID(uuid.NewString()).WithFields(logrus.Fields{
		"component": "rest",
		"method":    method,
		"path":      path,
	})

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("Не удалось подготовить тело запроса: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	urlStr := c.baseURL + "/" + path + "?api=" + url.QueryEscape(c.apiKey)
	if len(params) > 0 {
		urlStr += "&" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, bodyReader)
	if err != nil {
		return fmt.Errorf("Не удалось создать запрос: %w", c.redact(err, path))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		entry.WithError(c.redact(err, path)).Debug("REST запрос не выполнен.")
		return fmt.Errorf("Ошибка запроса: %w", c.redact(err, path))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("Не удалось прочитать ответ: %w", err)
	}

	entry.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("REST ответ.")

	var env envelope
	envErr := json.Unmarshal(data, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Msg
		if envErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Msg: msg, Body: data}
	}

	if envErr == nil && env.Success != nil && !*env.Success {
		return &APIError{StatusCode: resp.StatusCode, Msg: env.Msg, Body: data}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("Не удалось разобрать ответ: %w", err)
	}
	return nil
}

// redact strips the api key that net/http embeds into *url.Error.
func (c *Client) redact(err error, path string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = c.baseURL + "/" + path
	}
	return err
}

func setString(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}

func setInt(params url.Values, key string, value int64) {
	if value != 0 {
		params.Set(key, strconv.FormatInt(value, 10))
	}
}

func setFlag(params url.Values, key string, value bool) {
	if value {
		params.Set(key, "1")
	} else {
		params.Set(key, "0")
	}
}

func addAll(params url.Values, key string, values []string) {
	for _, v := range values {
		params.Add(key, v)
	}
}
