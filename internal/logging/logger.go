package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the process logger: production JSON in production, development console otherwise.
// level overrides the preset's default when set.
func New(environment, level string) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if environment == "production" {
		zcfg = zap.NewProductionConfig()
	}
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
		}
		zcfg.Level = lvl
	}
	return zcfg.Build()
}
