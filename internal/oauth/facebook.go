package oauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const facebookGraphBase = "https://graph.facebook.com"

type Facebook struct {
	Config    *oauth2.Config
	GraphBase string
}

func NewFacebook(clientID, clientSecret, redirectURL string) *Facebook {
	return &Facebook{
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"email"},
			Endpoint:     endpoints.Facebook,
		},
		GraphBase: facebookGraphBase,
	}
}

func (f *Facebook) Name() string { return "facebook" }

func (f *Facebook) LoginURL(state string) string {
	return f.Config.AuthCodeURL(state)
}

func (f *Facebook) Exchange(ctx context.Context, code string) (Profile, error) {
	tok, err := f.Config.Exchange(ctx, code)
	if err != nil {
		return Profile{}, fmt.Errorf("facebook exchange: %w", err)
	}
	var fu struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	url := f.GraphBase + "/me?fields=id,name,email"
	if err := getJSON(ctx, f.Config.Client(ctx, tok), url, &fu); err != nil {
		return Profile{}, fmt.Errorf("facebook me: %w", err)
	}
	return Profile{Email: fu.Email, Subject: fu.ID, Name: fu.Name}, nil
}
