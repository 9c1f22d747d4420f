// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: "sqlite" (default) or "postgres"
  - DatabaseURL: Connection string (default "voting.db" for sqlite, required for postgres)
  - CallerKeySalt: Secret for caller key HMAC (required)
  - EnvFile: Optional .env file with fallback values

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-caller-salt  Caller key salt
	-env          Path to a .env file

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	CALLER_KEY_SALT → -caller-salt
	ENV_FILE        → -env

CLI flags take precedence over environment variables, which take precedence
over the env file. The env file is read with godotenv and never written into
the process environment.

# Validation

ParseFlags returns an error if:

  - CALLER_KEY_SALT is missing
  - DATABASE_TYPE is neither sqlite nor postgres
  - DATABASE_TYPE is postgres and DATABASE_URL is missing
  - the env file cannot be read
*/
package cliparse
