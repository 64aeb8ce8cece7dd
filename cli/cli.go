package cli

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gclaussn/go-bpmn-schema/http/client"
	"github.com/gclaussn/go-bpmn-schema/http/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	envLookupAllowed = "envLookupAllowed" // flag level annotation that allows an environment variable lookup
	envPrefix        = "GO_BPMN_SCHEMA_"
	noClientRequired = "noClientRequired" // annotation, indicating that no HTTP client is required to run the command
	program          = "go-bpmn-schema"

	envAuthorization         = envPrefix + "AUTHORIZATION"
	envHttpBasicAuthUsername = envPrefix + "HTTP_BASIC_AUTH_USERNAME"
	envHttpBasicAuthPassword = envPrefix + "HTTP_BASIC_AUTH_PASSWORD"
)

func New(version string) *Cli {
	cli := Cli{version: version}

	cli.rootCmd = newRootCmd(&cli)

	return &cli
}

type Cli struct {
	version string

	rootCmd *cobra.Command

	client       *client.Client
	debugEnabled bool
	timeout      time.Duration
	url          string
}

func (c *Cli) Execute() int {
	if err := c.rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// connect creates the HTTP client, used to access stored diagrams.
func (c *Cli) connect() error {
	if c.client != nil {
		return nil
	}

	authorization := os.Getenv(envAuthorization)
	if authorization == "" {
		username := os.Getenv(envHttpBasicAuthUsername)
		password := os.Getenv(envHttpBasicAuthPassword)

		if username == "" || password == "" {
			return fmt.Errorf(
				"no authorization set.\n\nuse environment variable %s or %s and %s\n ",
				envAuthorization,
				envHttpBasicAuthUsername,
				envHttpBasicAuthPassword,
			)
		}

		usernamePassword := fmt.Sprintf("%s:%s", username, password)
		authorization = "Basic " + base64.StdEncoding.EncodeToString([]byte(usernamePassword))
	}

	httpClient, err := client.New(c.url, authorization, func(o *client.Options) {
		o.Timeout = c.timeout

		if c.debugEnabled {
			o.OnRequest = debugRequest
			o.OnResponse = debugResponse
		}
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP client: %v", err)
	}

	c.client = httpClient
	return nil
}

func (c *Cli) help(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

func newRootCmd(cli *Cli) *cobra.Command {
	c := cobra.Command{
		Use:   program,
		Short: "Validate, convert and manage BPMN diagrams",
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			c.SilenceUsage = true

			c.Flags().VisitAll(func(f *pflag.Flag) {
				if f.Changed {
					return
				}
				if _, ok := f.Annotations[envLookupAllowed]; !ok {
					return
				}

				// e.g. url -> GO_BPMN_SCHEMA_URL
				key := envPrefix + strings.ReplaceAll(strings.ToUpper(f.Name), "-", "_")

				if value, ok := os.LookupEnv(key); ok {
					f.Value.Set(value)
				}
			})

			if _, ok := c.Annotations[noClientRequired]; ok {
				return nil
			}

			return cli.connect()
		},
		RunE: cli.help,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cli.client != nil {
				cli.client.Shutdown()
			}
		},
		Annotations: map[string]string{noClientRequired: ""},
	}

	c.PersistentFlags().StringVar(&cli.url, "url", "", "HTTP server URL")
	c.PersistentFlags().DurationVar(&cli.timeout, "timeout", 40*time.Second, "Time limit for requests made by the HTTP client")
	c.PersistentFlags().BoolVar(&cli.debugEnabled, "debug", false, "Log HTTP requests and responses")

	c.PersistentFlags().SetAnnotation("url", envLookupAllowed, nil)
	c.PersistentFlags().SetAnnotation("timeout", envLookupAllowed, nil)
	c.PersistentFlags().SetAnnotation("debug", envLookupAllowed, nil)

	c.AddCommand(newConvertCmd(cli))
	c.AddCommand(newDiagramCmd(cli))
	c.AddCommand(newSampleCmd(cli))
	c.AddCommand(newStatsCmd(cli))
	c.AddCommand(newValidateCmd(cli))
	c.AddCommand(newVersionCmd(cli))

	return &c
}

func newVersionCmd(cli *Cli) *cobra.Command {
	c := cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(c *cobra.Command, _ []string) {
			c.Println(cli.version)
		},
		Annotations: map[string]string{noClientRequired: ""},
	}

	return &c
}

func debugRequest(req *http.Request) error {
	log.Printf("%s %s", req.Method, req.URL)

	if req.Body == nil {
		return nil
	}

	b, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}

	var reqBodyStr string

	buf := &bytes.Buffer{}
	if err := json.Indent(buf, b, "", "  "); err != nil {
		reqBodyStr = string(b)
	} else {
		reqBodyStr = buf.String()
	}

	req.Body = io.NopCloser(bytes.NewReader(b)) // make body readable again

	log.Printf("request body:\n%s", reqBodyStr)
	return nil
}

func debugResponse(res *http.Response) error {
	log.Printf("status code: %d", res.StatusCode)

	log.Println("response headers:")
	for name, values := range res.Header {
		log.Printf("%s: %s", name, strings.Join(values, ", "))
	}

	resBody := res.Body
	defer resBody.Close()

	b, err := io.ReadAll(resBody)
	if err != nil {
		log.Printf("failed to read response body: %v", err)
		return err
	}

	res.Body = nil

	var resBodyStr string

	contentType := res.Header.Get(common.HeaderContentType)
	if contentType == common.ContentTypeJson || contentType == common.ContentTypeProblemJson {
		buf := &bytes.Buffer{}
		if err := json.Indent(buf, b, "", "  "); err == nil {
			resBodyStr = buf.String()
			res.Body = io.NopCloser(buf) // make body readable again
		}
	}

	if res.Body == nil {
		resBodyStr = string(b)
		res.Body = io.NopCloser(bytes.NewReader(b)) // make body readable again
	}

	if resBodyStr != "" && contentType != common.ContentTypeXml {
		log.Printf("response body:\n%s", resBodyStr)
	}
	return nil
}
