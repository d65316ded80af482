// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

/*
Package supervisor runs the serve-mode services under suture v4.

	bienestar
	├── refresh-layer
	│   └── dashboard-refresher   GET /api/stats every server.refresh_interval
	└── api-layer
	    └── http-server           internal/api router on server.addr

Crashed services restart with suture's backoff. Supervisor events are
logged through sutureslog into the zerolog logger:

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewServeTree(logger, &cfg.Server, handler)
	if err != nil {
		return err
	}
	return tree.Serve(ctx)

Cancelling ctx stops the refresher and shuts the HTTP server down within
server.shutdown_timeout.
*/
package supervisor
