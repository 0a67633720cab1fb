package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/rigging/logging"
)

// Read reads a rig from the given file. Environment variables in the file are expanded first.
func Read(ctx context.Context, filePath string, logger logging.Logger) (*Rig, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(ctx, filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a rig from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(ctx context.Context, originalPath string, r io.Reader, logger logging.Logger) (*Rig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := Rig{ConfigFilePath: originalPath}
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode rig from json")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debugw("read rig", "path", originalPath, "transforms", len(cfg.Transforms), "constraints", len(cfg.Constraints))
	return &cfg, nil
}
