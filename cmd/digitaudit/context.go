package main

import (
	"github.com/petrzlen/digitaudit/internal/config"
	"github.com/petrzlen/digitaudit/internal/utils"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	cfg    *config.Config
	loaded bool
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, logLevelFlag: logLevelFlag}
}

// ensureConfig loads the configuration once and sets up logging from it.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.loaded {
		return c.cfg, nil
	}
	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}
	if *c.logLevelFlag != "" {
		cfg.LogLevel = *c.logLevelFlag
	}
	utils.SetupZerolog(cfg.LogLevel)
	c.cfg = &cfg
	c.loaded = true
	return c.cfg, nil
}
