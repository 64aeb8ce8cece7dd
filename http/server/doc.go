// Package server implements the HTTP API for the validation and storage of diagrams.
/*
server implements handlers for each store operation and the validation of diagrams, using the [net/http] package.

Run a Server

A server requires a store as well as a basic auth username and password.

A server is listening on "127.0.0.1:8080".
The TCP bind address as well as various timeouts can be configured by customizing the configuration.

	server, err := server.New(s, func(o *server.Options) {
		o.BasicAuthUsername = "username"
		o.BasicAuthPassword = "password"
	})
	if err != nil {
		log.Fatalf("failed to create HTTP server: %v", err)
	}

	server.ListenAndServe()

	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, os.Interrupt, syscall.SIGTERM)

	<-signalC

	server.Shutdown()

Diagrams are accepted as JSON (default), YAML ("application/yaml") or BPMN 2.0 XML ("application/xml" or "text/xml").
Errors are returned as problems (RFC 9457) with media type "application/problem+json".
*/
package server
