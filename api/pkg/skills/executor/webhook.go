package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/params"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

const (
	userAgent             = "Syllabi-Skills/2.0"
	defaultWebhookTimeout = 30 * time.Second

	errWebhookURLMissing = "Webhook URL not configured"
	errRequestTimeout    = "Request timeout"
)

// WebhookConfig is the single internal shape of a custom skill's webhook
type WebhookConfig struct {
	URL     string
	Method  string
	Headers map[string]string
	Timeout time.Duration
}

// NormalizeWebhookConfig reads a merged skill configuration in either the
// nested {"webhook_config": {...}} shape or the legacy flat shape, where the
// same keys live at the top level and the URL may be named webhook_url.
func NormalizeWebhookConfig(config map[string]any, defaultTimeout time.Duration) WebhookConfig {
	source := config
	if nested, ok := config["webhook_config"].(map[string]any); ok && len(nested) > 0 {
		source = nested
	}

	hook := WebhookConfig{
		URL:     strings.TrimSpace(stringValue(source["url"])),
		Method:  strings.ToUpper(strings.TrimSpace(stringValue(source["method"]))),
		Headers: map[string]string{},
		Timeout: defaultTimeout,
	}
	if hook.URL == "" {
		hook.URL = strings.TrimSpace(stringValue(config["webhook_url"]))
	}
	if hook.Method == "" {
		hook.Method = http.MethodPost
	}
	if hook.Timeout <= 0 {
		hook.Timeout = defaultWebhookTimeout
	}
	if ms := params.Params(source).Int("timeout_ms", 0); ms > 0 {
		hook.Timeout = time.Duration(ms) * time.Millisecond
	}

	if headers, ok := source["headers"].(map[string]any); ok {
		for k, v := range headers {
			// non-string values are ignored
			if s, ok := v.(string); ok {
				hook.Headers[k] = s
			}
		}
	}

	return hook
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func (e *Executor) executeCustomSkill(ctx context.Context, skill *types.ChatbotSkill, parameters map[string]any) (types.SkillExecutionResult, types.SkillExecutionStatus) {
	hook := NormalizeWebhookConfig(skill.EffectiveConfiguration(), e.cfg.WebhookTimeout)
	if hook.URL == "" {
		return types.ErrorResult(errWebhookURLMissing), types.SkillExecutionStatusError
	}

	ctx, cancel := context.WithTimeout(ctx, hook.Timeout)
	defer cancel()

	req := e.webhooks.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", userAgent).
		SetHeaders(hook.Headers)

	switch {
	case hasBody(hook.Method):
		body, err := encodeBody(parameters)
		if err != nil {
			return types.ErrorResult(err.Error()), types.SkillExecutionStatusError
		}
		req.SetBody(body)
	case hook.Method == http.MethodGet:
		req.SetQueryParamsFromValues(queryValues(parameters))
	}

	log.Ctx(ctx).Debug().Str("method", hook.Method).Str("url", hook.URL).Msg("calling skill webhook")

	resp, err := req.Execute(hook.Method, hook.URL)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return types.ErrorResult(errRequestTimeout), types.SkillExecutionStatusTimeout
		}
		return types.ErrorResult(err.Error()), types.SkillExecutionStatusError
	}

	if !resp.IsSuccess() {
		return types.ErrorResult(fmt.Sprintf("HTTP %d: %s", resp.StatusCode(), statusText(resp.StatusCode(), resp.Status()))), types.SkillExecutionStatusError
	}

	return types.SuccessResult(decodeResponse(resp.Header().Get("Content-Type"), resp.Body())), types.SkillExecutionStatusSuccess
}

// encodeBody matches JSON.stringify output, HTML characters are not escaped
func encodeBody(parameters map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(parameters); err != nil {
		return nil, fmt.Errorf("failed to encode webhook parameters: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// queryValues skips nil parameters; lists and objects are sent as JSON
func queryValues(parameters map[string]any) url.Values {
	values := url.Values{}
	for k, v := range parameters {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			values.Add(k, val)
		case float64:
			values.Add(k, strconv.FormatFloat(val, 'f', -1, 64))
		case bool, int, int64, json.Number:
			values.Add(k, fmt.Sprint(val))
		default:
			bts, err := json.Marshal(val)
			if err != nil {
				values.Add(k, fmt.Sprint(val))
				continue
			}
			values.Add(k, string(bts))
		}
	}
	return values
}

// statusText is the reason phrase the server sent, "404 Not Found" -> "Not Found"
func statusText(code int, status string) string {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if text == "" {
		return http.StatusText(code)
	}
	return text
}

func decodeResponse(contentType string, body []byte) any {
	if strings.Contains(contentType, "application/json") {
		var data any
		if err := json.Unmarshal(body, &data); err == nil {
			return data
		}
	}
	return string(body)
}
