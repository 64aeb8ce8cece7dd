package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gclaussn/go-bpmn-schema/codec"
	"github.com/gclaussn/go-bpmn-schema/http/common"
	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/gclaussn/go-bpmn-schema/store"
)

func New(url string, authorization string, customizers ...func(*Options)) (*Client, error) {
	if url == "" {
		return nil, errors.New("URL is empty")
	}
	if authorization == "" {
		return nil, errors.New("authorization is empty")
	}

	options := NewOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	httpClient := http.Client{}

	if options.Configure != nil {
		options.Configure(&httpClient)
	}

	client := Client{
		httpClient:    &httpClient,
		url:           url,
		authorization: authorization,
		options:       options,
	}

	return &client, nil
}

func NewOptions() Options {
	return Options{
		Timeout: 40 * time.Second,
	}
}

type Options struct {
	Timeout time.Duration // Time limit for requests made by the HTTP client, utilized when no external context is provided.

	// OnRequest is an optional function that accepts a [*http.Request]. It is called before a HTTP request is send.
	OnRequest func(*http.Request) error
	// OnResponse is an optional function that accepts a [*http.Response]. It is called after a HTTP response is returned.
	OnResponse func(*http.Response) error

	Configure func(*http.Client) // Optional function, used to configure the underlying HTTP client.
}

func (o Options) Validate() error {
	if o.Timeout <= 0 {
		return errors.New("timeout must be greater than 0")
	}
	return nil
}

// Client implements [store.Store] on top of a diagram server.
// In addition it provides access to the server side validation.
type Client struct {
	httpClient    *http.Client
	url           string
	authorization string
	options       Options
}

func (c *Client) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, c.options.Timeout)
	defer cancel()

	return c.do(ctx, http.MethodDelete, resolve(common.PathDiagramsId, id), "", nil, nil)
}

// Findings validates the stored diagram with the given ID.
// Opt-in rules are enabled by their names - see [common.RuleNames].
func (c *Client) Findings(ctx context.Context, id string, rules ...string) (common.FindingsRes, error) {
	ctx, cancel := context.WithTimeout(ctx, c.options.Timeout)
	defer cancel()

	path := resolve(common.PathDiagramsFindings, id) + encodeRules(rules)

	var resBody common.FindingsRes
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resBody); err != nil {
		return common.FindingsRes{}, err
	}
	return resBody, nil
}

func (c *Client) Load(ctx context.Context, id string) (*model.Diagram, store.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.options.Timeout)
	defer cancel()

	var resBody common.DiagramRes
	if err := c.do(ctx, http.MethodGet, resolve(common.PathDiagramsId, id), "", nil, &resBody); err != nil {
		return nil, store.Record{}, err
	}
	if resBody.Diagram == nil {
		return nil, store.Record{}, fmt.Errorf("GET %s: response body contains no diagram", resolve(common.PathDiagramsId, id))
	}

	d, err := resBody.Diagram.Diagram()
	if err != nil {
		return nil, store.Record{}, err
	}

	return d, resBody.Record, nil
}

func (c *Client) Query(ctx context.Context, criteria store.Criteria) ([]store.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.options.Timeout)
	defer cancel()

	b, err := json.Marshal(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to create JSON request body: %v", err)
	}

	var resBody common.RecordRes
	if err := c.do(ctx, http.MethodPost, common.PathDiagramsQuery, common.ContentTypeJson, b, &resBody); err != nil {
		return nil, err
	}
	return resBody.Results, nil
}

func (c *Client) Save(ctx context.Context, cmd store.SaveCmd) (store.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.options.Timeout)
	defer cancel()

	if cmd.Diagram == nil {
		return store.Record{}, model.Error{
			Type:   model.ErrorValidation,
			Title:  "failed to save diagram",
			Detail: "diagram is nil",
		}
	}

	b, err := codec.EncodeJSON(cmd.Diagram)
	if err != nil {
		return store.Record{}, err
	}

	path := common.PathDiagrams
	if cmd.Revision != 0 {
		path = fmt.Sprintf("%s?%s=%s", path, common.QueryRevision, strconv.Itoa(cmd.Revision))
	}

	var record store.Record
	if err := c.do(ctx, http.MethodPost, path, common.ContentTypeJson, b, &record); err != nil {
		return store.Record{}, err
	}
	return record, nil
}

// Validate validates a diagram on the server side, without storing it.
// Opt-in rules are enabled by their names - see [common.RuleNames].
func (c *Client) Validate(ctx context.Context, d *model.Diagram, rules ...string) (common.FindingsRes, error) {
	ctx, cancel := context.WithTimeout(ctx, c.options.Timeout)
	defer cancel()

	if d == nil {
		return common.FindingsRes{}, model.Error{
			Type:   model.ErrorValidation,
			Title:  "failed to validate diagram",
			Detail: "diagram is nil",
		}
	}

	b, err := codec.EncodeJSON(d)
	if err != nil {
		return common.FindingsRes{}, err
	}

	var resBody common.FindingsRes
	if err := c.do(ctx, http.MethodPost, common.PathDiagramsValidate+encodeRules(rules), common.ContentTypeJson, b, &resBody); err != nil {
		return common.FindingsRes{}, err
	}
	return resBody, nil
}

func (c *Client) Shutdown() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) do(ctx context.Context, method string, path string, contentType string, reqBody []byte, resBody any) error {
	var body io.Reader
	if reqBody != nil {
		body = bytes.NewReader(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, body)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %v", method, err)
	}

	if c.options.OnRequest != nil {
		if err := c.options.OnRequest(req); err != nil {
			return err
		}
	}

	req.Header.Add(common.HeaderAuthorization, c.authorization)
	if contentType != "" {
		req.Header.Add(common.HeaderContentType, contentType)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute %v", err)
	}

	if c.options.OnResponse != nil {
		if err := c.options.OnResponse(res); err != nil {
			res.Body.Close()
			return err
		}
	}

	return decodeJSONResponseBody(res, resBody)
}
