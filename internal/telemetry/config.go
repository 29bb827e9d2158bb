package telemetry

import "codeberg.org/mutker/armoryd/internal/errors"

const (
	defaultDirPerm = 0o755
	defaultDBPath  = "/var/lib/armoryd/armoryd.db"
)

type Config struct {
	DBPath  string
	Enabled bool
}

func DefaultConfig() Config {
	return Config{
		DBPath:  defaultDBPath,
		Enabled: false,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	// Only validate DBPath when history storage is enabled
	if c.Enabled && c.DBPath == "" {
		return errFactory.New(ErrInvalidDBPath)
	}

	return nil
}
