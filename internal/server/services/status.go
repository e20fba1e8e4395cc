package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/sessions"
)

// Status reports liveness of the session store and the catalog database.
type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// Healthy is true when every dependency answered.
func (s Status) Healthy() bool { return s.Redis && s.DB }

type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

type StatusService struct {
	repos    repomanager.RepositoryManager
	sessions sessions.Store
}

func NewStatusService(repos repomanager.RepositoryManager, s sessions.Store) *StatusService {
	return &StatusService{repos: repos, sessions: s}
}

// Alive pings both dependencies. It never fails; a dead dependency is
// reported as false.
func (s *StatusService) Alive(ctx context.Context) Status {
	return Status{
		Redis: s.sessions.Ping(ctx) == nil,
		DB:    s.repos.Ping(ctx) == nil,
	}
}

func (s *StatusService) Stats(ctx context.Context) (Stats, error) {
	nUsers, errUsers := s.repos.Users().Count(ctx)
	nFiles, errFiles := s.repos.Files().Count(ctx)
	if err := errors.Join(errUsers, errFiles); err != nil {
		return Stats{}, err
	}
	return Stats{Users: nUsers, Files: nFiles}, nil
}
