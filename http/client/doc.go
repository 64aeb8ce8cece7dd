// Package client is used to interact with a diagram server via HTTP.
/*
client implements the [store.Store] interface and provides access to the server side validation of diagrams.

Create a Client

A client requires the base URL of a HTTP server and an authorization string.
The server uses basic authentication.

	client, err := client.New("http://localhost:8080", "Basic dGVzdHVzZXJuYW1lOnRlc3RwYXNzd29yZA==")
	if err != nil {
		log.Fatalf("failed to create HTTP client: %v", err)
	}

	defer client.Shutdown()

Validate a diagram, enabling the opt-in condition rule:

	res, err := client.Validate(context.Background(), d, "condition")
*/
package client
