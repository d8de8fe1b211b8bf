// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if strings.TrimSpace(cfg.Auth.TokenSignKey) == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAuthConfigs)
	}
	if cfg.Auth.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAuthConfigs)
	}
	switch cfg.Auth.AdminPolicy {
	case AdminPolicyAuthenticated, AdminPolicyRole:
	default:
		return fmt.Errorf("%w: unknown admin policy %q", ErrInvalidAuthConfigs, cfg.Auth.AdminPolicy)
	}
	switch cfg.Auth.OrderPolicy {
	case OrderPolicyOptional, OrderPolicyRequired:
	default:
		return fmt.Errorf("%w: unknown order policy %q", ErrInvalidAuthConfigs, cfg.Auth.OrderPolicy)
	}
	if (cfg.Auth.AdminEmail == "") != (cfg.Auth.AdminPassword == "") {
		return fmt.Errorf("%w: admin email and password must be set together", ErrInvalidAuthConfigs)
	}

	switch cfg.Storage.Driver {
	case DriverPostgres, DriverSQLite:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: database uri is required", ErrInvalidStorageConfigs)
		}
	case DriverMongo:
		if cfg.Storage.Mongo.URI == "" || cfg.Storage.Mongo.Database == "" {
			return fmt.Errorf("%w: mongo uri and database are required", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Mail.PostmarkServerToken != "" && (cfg.Mail.From == "" || cfg.Mail.NotifyTo == "") {
		return ErrInvalidMailConfigs
	}

	return nil
}
