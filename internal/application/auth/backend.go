package auth

import (
	"context"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/session"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
)

// backend adapts the REST auth endpoints to session.Backend
type backend struct {
	auth *api.AuthService
}

// NewBackend returns a session.Backend over the REST auth endpoints
func NewBackend(authAPI *api.AuthService) session.Backend {
	return &backend{auth: authAPI}
}

func (b *backend) Validate(ctx context.Context, token string) (bool, error) {
	res := b.auth.Validate(ctx, token)
	if !res.OK() {
		return false, res.Error()
	}
	return res.Data, nil
}

func (b *backend) Login(ctx context.Context, username, password string) (string, error) {
	res := b.auth.Login(ctx, username, password)
	if !res.OK() {
		return "", res.Error()
	}
	return res.Data, nil
}
