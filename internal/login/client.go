package login

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type UpstreamInterface interface {
	Login(ctx context.Context, email, senha string) (LoginUpstreamResponse, error)
}

type Client struct {
	httpClient *resty.Client
}

func NewClient(baseURL string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{httpClient: httpClient}
}

func (c *Client) Login(ctx context.Context, email, senha string) (LoginUpstreamResponse, error) {
	var response LoginUpstreamResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(LoginUpstreamRequest{Email: email, Senha: senha}).
		SetResult(&response).
		Post("promotor/login")
	if err != nil {
		return LoginUpstreamResponse{}, err
	}
	if resp.IsError() {
		if resp.StatusCode() == 401 || resp.StatusCode() == 403 {
			return LoginUpstreamResponse{}, ErrInvalidCredentials
		}
		return LoginUpstreamResponse{}, fmt.Errorf("login: upstream respondeu %d", resp.StatusCode())
	}
	return response, nil
}
