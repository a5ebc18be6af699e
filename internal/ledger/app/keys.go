package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tabledger/pkg/cryptox"
	"github.com/aussiebroadwan/tabledger/pkg/jwtx"
)

// LoadAdminKeys reads the public keys that admin tokens must be signed with.
//
// Without a JWKS file the service still starts, with an empty key set: every
// admin call is refused and /readyz reports the gap. Tenant endpoints keep
// working.
func LoadAdminKeys(cfg Config, logger *slog.Logger) (*jwtx.KeySet, error) {
	if cfg.AdminJWKSFile == "" {
		logger.Warn("LEDGER_ADMIN_JWKS_FILE not set, admin endpoints will refuse every token")
		return jwtx.NewKeySet(), nil
	}

	keys, err := jwtx.LoadKeySetFile(cfg.AdminJWKSFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin keys: %w", err)
	}

	logger.Info("admin verification keys loaded",
		"path", cfg.AdminJWKSFile,
		"num_keys", len(keys.PublicJWKS().Keys),
		"issuer", cfg.AdminIssuer,
	)
	return keys, nil
}

// InitKeySealer builds the sealer for tenant signer private keys.
//
// Key sources, in order: LEDGER_MASTER_KEY_PATH, LEDGER_MASTER_KEY, and
// finally a random key. The random key is refused outside dev because
// every sealed key becomes unreadable on restart.
func InitKeySealer(cfg Config, logger *slog.Logger) (*cryptox.KeySealer, error) {
	material, ephemeral, err := cryptox.LoadMasterKey(cfg.MasterKeyPath)
	if err != nil {
		return nil, err
	}

	if ephemeral {
		if cfg.Env != "dev" && cfg.Env != "test" {
			return nil, errors.New("no master key configured: set LEDGER_MASTER_KEY_PATH or LEDGER_MASTER_KEY")
		}
		logger.Warn("using an ephemeral master key, tenant signer keys will not survive a restart")
	} else {
		logger.Info("master key loaded", "from_file", cfg.MasterKeyPath != "")
	}

	return cryptox.NewKeySealer(material)
}
