package openai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultRetries      = 3
	delayBetweenRetries = time.Second
)

//go:generate mockgen -source $GOFILE -destination openai_client_mocks.go -package $GOPACKAGE

type Client interface {
	CreateEmbeddings(ctx context.Context, request openai.EmbeddingRequest) (openai.EmbeddingResponse, error)
}

func New(apiKey string, baseURL string, retries uint) *RetryableClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if retries == 0 {
		retries = defaultRetries
	}

	return &RetryableClient{
		apiClient: openai.NewClientWithConfig(config),
		retries:   retries,
		delay:     delayBetweenRetries,
	}
}

type RetryableClient struct {
	apiClient *openai.Client
	retries   uint
	delay     time.Duration
}

var _ Client = &RetryableClient{}

func (c *RetryableClient) CreateEmbeddings(ctx context.Context, request openai.EmbeddingRequest) (resp openai.EmbeddingResponse, err error) {
	err = retry.Do(func() error {
		resp, err = c.apiClient.CreateEmbeddings(ctx, request)
		if err != nil {
			if isAuthError(err) {
				// Do not retry on auth failures
				return retry.Unrecoverable(err)
			}
			return err
		}
		return nil
	},
		retry.Attempts(c.retries),
		retry.Delay(c.delay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)

	return
}

func isAuthError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusUnauthorized {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusUnauthorized {
		return true
	}
	return false
}
