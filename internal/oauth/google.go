package oauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const googleUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

type Google struct {
	Config      *oauth2.Config
	UserinfoURL string // 测试可指向 fake server
}

func NewGoogle(clientID, clientSecret, redirectURL string) *Google {
	return &Google{
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoints.Google,
		},
		UserinfoURL: googleUserinfoURL,
	}
}

func (g *Google) Name() string { return "google" }

func (g *Google) LoginURL(state string) string {
	return g.Config.AuthCodeURL(state)
}

func (g *Google) Exchange(ctx context.Context, code string) (Profile, error) {
	tok, err := g.Config.Exchange(ctx, code)
	if err != nil {
		return Profile{}, fmt.Errorf("google exchange: %w", err)
	}
	var info struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := getJSON(ctx, g.Config.Client(ctx, tok), g.UserinfoURL, &info); err != nil {
		return Profile{}, fmt.Errorf("google userinfo: %w", err)
	}
	return Profile{Email: info.Email, Subject: info.Sub, Name: info.Name}, nil
}
