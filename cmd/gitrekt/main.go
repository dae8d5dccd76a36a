// Command gitrekt roasts a GitHub user from the terminal
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Vagvedi/gitrekt/internal/platform/config/raw"
	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	"github.com/Vagvedi/gitrekt/internal/platform/logger"
)

func main() {
	_ = godotenv.Load()

	// stdout carries the report, logs stay on stderr and quiet unless asked
	opt := logger.FromEnv()
	opt.Writer = os.Stderr
	opt.Level = raw.New().Get("LOG_LEVEL", "warn")
	logger.Init(opt)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", perr.WireFrom(err).Message)
		os.Exit(1)
	}
}
