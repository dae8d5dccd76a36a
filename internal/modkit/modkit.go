// Package modkit wires API modules: shared deps, build options and route mounting
package modkit

import (
	"github.com/redis/go-redis/v9"

	"github.com/Vagvedi/gitrekt/internal/modkit/module"
	"github.com/Vagvedi/gitrekt/internal/modkit/repokit"
	"github.com/Vagvedi/gitrekt/internal/platform/config"
	"github.com/Vagvedi/gitrekt/internal/platform/logger"
)

// Module is the surface the api mounts, see module.Module
type Module = module.Module

// Deps holds the shared dependencies handed to every module
// any of them may be zero, modules nil check the stores they use
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	PG    repokit.TxRunner
	Redis *redis.Client
}
