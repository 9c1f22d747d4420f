// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the voting-session API server.

A voting session walks a whitelisted group of addresses through a fixed
workflow: voter registration, proposal registration, voting, and a final
tally that seals the winning proposal. Every accepted state change is
emitted as an event and appended to a per-session journal.

# Starting the Server

With the default embedded SQLite journal:

	CALLER_KEY_SALT=secret go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..." -caller-salt secret

# Configuration

Required settings:

  - CALLER_KEY_SALT (-caller-salt): Secret for caller key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: voting.db for sqlite)
  - ENV_FILE (-env): dotenv file consulted after the process environment

# Architecture

  - voting: Session state machine, events, and tally
  - registry: In-memory sessions with per-session locking
  - handlers: HTTP request handlers (sessions, voters, proposals, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Address parsing and caller keys
  - db: Schema and event journal
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
