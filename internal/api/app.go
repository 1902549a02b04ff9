package api

import (
	"github.com/rowestoli/QuackLog/internal"
	"github.com/rowestoli/QuackLog/internal/config"
	"github.com/rowestoli/QuackLog/internal/storage"
)

type App interface {
	Logger() internal.Logger
	SubmissionRepo() storage.SubmissionRepository
	Config() *config.Config
}
