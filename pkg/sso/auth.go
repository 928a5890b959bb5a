package sso

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

type GoogleTokenInterface interface {
	Validation(ctx context.Context, token string) (*oauth2.Tokeninfo, error)
}

type GoogleToken struct{}

func NewGoogleToken() *GoogleToken {
	return &GoogleToken{}
}

func (g *GoogleToken) Validation(ctx context.Context, token string) (*oauth2.Tokeninfo, error) {
	oauth2Service, err := oauth2.NewService(ctx, option.WithHTTPClient(http.DefaultClient))
	if err != nil {
		return nil, errors.New("error to create oauth service")
	}

	tokenInfo, err := oauth2Service.Tokeninfo().IdToken(token).Do()
	if err != nil {
		return nil, errors.New("invalid token info")
	}

	return tokenInfo, nil
}
