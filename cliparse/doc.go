// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first when present.

# Config Fields

  - Port: Server listen port (default: 3320)
  - DatabaseURL: PostgreSQL connection string (required)

# CLI Flags

	-p  Server port
	-d  Database URL

# Environment Variables

	PORT          Server port
	DATABASE_URL  PostgreSQL connection string

Flags take precedence over environment variables.
*/
package cliparse
