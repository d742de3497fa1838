package oauth

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const githubAPIBase = "https://api.github.com"

type GitHub struct {
	Config  *oauth2.Config
	APIBase string
}

func NewGitHub(clientID, clientSecret, redirectURL string) *GitHub {
	return &GitHub{
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"user:email"},
			Endpoint:     endpoints.GitHub,
		},
		APIBase: githubAPIBase,
	}
}

func (g *GitHub) Name() string { return "github" }

func (g *GitHub) LoginURL(state string) string {
	return g.Config.AuthCodeURL(state)
}

func (g *GitHub) Exchange(ctx context.Context, code string) (Profile, error) {
	tok, err := g.Config.Exchange(ctx, code)
	if err != nil {
		return Profile{}, fmt.Errorf("github exchange: %w", err)
	}
	client := g.Config.Client(ctx, tok)

	var gu struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := getJSON(ctx, client, g.APIBase+"/user", &gu); err != nil {
		return Profile{}, fmt.Errorf("github user: %w", err)
	}

	email := gu.Email
	if email == "" {
		// 公开邮箱没填的账号，再取一次邮箱列表挑 primary
		var emails []struct {
			Email   string `json:"email"`
			Primary bool   `json:"primary"`
		}
		if err := getJSON(ctx, client, g.APIBase+"/user/emails", &emails); err != nil {
			return Profile{}, fmt.Errorf("github emails: %w", err)
		}
		for _, e := range emails {
			if e.Primary {
				email = e.Email
				break
			}
		}
	}

	name := gu.Name
	if name == "" {
		name = gu.Login
	}
	return Profile{
		Email:   email,
		Subject: strconv.FormatInt(gu.ID, 10),
		Name:    name,
	}, nil
}
