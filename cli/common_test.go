package cli

import (
	"bytes"
	"encoding/base64"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gclaussn/go-bpmn-schema/codec"
	"github.com/gclaussn/go-bpmn-schema/http/client"
	"github.com/gclaussn/go-bpmn-schema/http/server"
	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/gclaussn/go-bpmn-schema/store/mem"
)

// mustCreateClient creates a client, which is connected to a test server, backed by a mem store.
func mustCreateClient(t *testing.T) *client.Client {
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

	c, err := client.New(httpServer.URL, authorization)
	if err != nil {
		t.Fatalf("failed to create HTTP client: %v", err)
	}

	t.Cleanup(c.Shutdown)
	return c
}

// mustCreateInvalidDiagram creates a diagram with a process, which has neither a start nor an end event.
func mustCreateInvalidDiagram(t *testing.T, id string) *model.Diagram {
	d := model.NewDiagram(id)

	p := model.NewProcess(id + "_process")
	if err := p.AddFlowObject(model.NewTask("task", model.TaskUser)); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}
	if err := d.AddProcess(p); err != nil {
		t.Fatalf("failed to add process: %v", err)
	}

	return d
}

// mustExecute executes a command and returns its output.
func mustExecute(t *testing.T, c *client.Client, args []string) string {
	output, err := execute(c, args)
	if err != nil {
		t.Fatalf("failed to execute %v: %v\n%s", args, err, output)
	}
	return output
}

// mustWriteFile encodes a diagram and writes it to a temporary file.
func mustWriteFile(t *testing.T, d *model.Diagram, format codec.Format, fileName string) string {
	b, err := codec.Encode(format, d)
	if err != nil {
		t.Fatalf("failed to encode diagram: %v", err)
	}

	name := filepath.Join(t.TempDir(), fileName)
	if err := os.WriteFile(name, b, 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return name
}

func execute(c *client.Client, args []string) (string, error) {
	rootCmd := newRootCmd(&Cli{client: c})
	rootCmd.PersistentPostRun = nil

	var buffer bytes.Buffer
	rootCmd.SetOut(&buffer)
	rootCmd.SetErr(&buffer)

	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buffer.String(), err
}
