package client

import (
	"encoding/base64"
	"net/http/httptest"
	"testing"

	"github.com/gclaussn/go-bpmn-schema/http/server"
	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/gclaussn/go-bpmn-schema/store/mem"
)

// mustCreateClient creates a client, which is connected to a test server, backed by a mem store.
func mustCreateClient(t *testing.T) *Client {
	s, err := mem.New()
	if err != nil {
		t.Fatalf("failed to create mem store: %v", err)
	}

	srv, err := server.New(s, func(o *server.Options) {
		o.BasicAuthUsername = "test"
		o.BasicAuthPassword = "test"
	})
	if err != nil {
		t.Fatalf("failed to create HTTP server: %v", err)
	}

	httpServer := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		httpServer.Close()
		s.Shutdown()
	})

	authorization := "Basic " + base64.StdEncoding.EncodeToString([]byte("test:test"))

	client, err := New(httpServer.URL, authorization)
	if err != nil {
		t.Fatalf("failed to create HTTP client: %v", err)
	}

	t.Cleanup(client.Shutdown)
	return client
}

// mustCreateInvalidDiagram creates a diagram with a process, which has no start event.
func mustCreateInvalidDiagram(t *testing.T, id string) *model.Diagram {
	d := model.NewDiagram(id)
	p := model.NewProcess("p1")
	mustAdd(t, p.AddFlowObject(model.NewTask("t1", model.TaskUser)))
	mustAdd(t, d.AddProcess(p))
	return d
}

func mustAdd(t *testing.T, err error) {
	if err != nil {
		t.Fatalf("failed to add element: %v", err)
	}
}
