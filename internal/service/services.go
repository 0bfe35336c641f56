package service

import (
	"github.com/devconnect/devconnect-api/internal/config"
	"github.com/devconnect/devconnect-api/internal/repository"
)

type Services struct {
	Token   *TokenService
	Auth    *AuthService
	Profile *ProfileService
	Github  *GithubService
}

func NewServices(repos *repository.Repositories, repoCache RepoCache, cfg *config.Config) *Services {
	tokens := NewTokenService(cfg)
	return &Services{
		Token:   tokens,
		Auth:    NewAuthService(repos.User, tokens),
		Profile: NewProfileService(repos.Profile, repos.User),
		Github:  NewGithubService(cfg, repoCache),
	}
}
