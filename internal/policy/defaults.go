package policy

import "botguard/internal/config"

// botIdentity is the account the deployment runs as in production and
// staging.
var botIdentity = OwnerRule{User: "tradebot", Group: "tradebot"}

// Default returns the compiled-in policy for an environment, used when no
// policy file is present. Development keeps the same mode tables but has no
// ownership enforcement.
func Default(env config.Environment) Policy {
	p := Policy{
		Environment: env,
		Dirs: []ModeRule{
			{Path: "secrets", Mode: 0o700},
			{Path: "wallets", Mode: 0o700},
			{Path: "config", Mode: 0o755},
			{Path: "logs", Mode: 0o755},
			{Path: "reports", Mode: 0o755},
		},
		Files: []ModeRule{
			{Path: "secrets/.env", Mode: 0o600},
			{Path: "secrets/.env." + string(env), Mode: 0o600},
			{Path: "wallets/registry.json", Mode: 0o600},
			{Path: "config/integrity.db", Mode: 0o600},
			{Path: "config/settings.cfg", Mode: 0o644},
		},
	}

	if env != config.Development {
		owner := botIdentity
		p.Owner = &owner
	}

	return p
}
