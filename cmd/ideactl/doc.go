// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Ideactl is a command line client for a onewave server.

Usage:

	ideactl login --email you@example.com --password ...
	ideactl feed list --sort popular --category FINTECH
	ideactl feed like 12
	ideactl apply 12 --stack Backend
	ideactl applications approve 12 34
	ideactl idea create --title ... --problem ...
	ideactl roadmap plan --team small --budget low --period 3months

# Configuration

Settings come from flags, then ONEWAVE_* environment variables, then
~/.onewave/config.yaml:

	api_url: http://localhost:3318
	token_file: /home/you/.onewave/token

The access token is stored in token_file with mode 0600. "roadmap plan"
runs entirely offline.
*/
package main
