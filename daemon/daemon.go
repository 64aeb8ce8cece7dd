package daemon

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gclaussn/go-bpmn-schema/http/server"
	"github.com/gclaussn/go-bpmn-schema/store"
)

const (
	envPrefix = "GO_BPMN_SCHEMA_"

	optStoreDefaultQueryLimit = "STORE_DEFAULT_QUERY_LIMIT"
	optStoreRejectInvalid     = "STORE_REJECT_INVALID"

	optHttpBasicAuthPassword = "HTTP_BASIC_AUTH_PASSWORD"
	optHttpBasicAuthUsername = "HTTP_BASIC_AUTH_USERNAME"
	optHttpBindAddress       = "HTTP_BIND_ADDRESS"
	optHttpHandlerTimeout    = "HTTP_HANDLER_TIMEOUT"
	optHttpReadTimeout       = "HTTP_READ_TIMEOUT"
	optHttpWriteTimeout      = "HTTP_WRITE_TIMEOUT"
)

var (
	version = "unknown-version"
)

func newConf() *conf {
	env := env{}
	for _, value := range os.Environ() {
		env.Set(value)
	}

	conf := conf{
		envFile: envFile{env},
		opts:    make(map[string]*confOpt),
	}

	conf.addStoreOption(
		optStoreDefaultQueryLimit,
		"limit of queries, which specify no limit",
		func(o store.Options) string {
			return strconv.Itoa(o.DefaultQueryLimit)
		},
		func(o *store.Options, co *confOpt) error {
			defaultQueryLimit, err := strconv.ParseInt(co.value(), 10, 32)
			if err != nil {
				return err
			}
			if defaultQueryLimit < 1 || defaultQueryLimit > 10000 {
				return errors.New("must be between 1 and 10000")
			}

			o.DefaultQueryLimit = int(defaultQueryLimit)
			return nil
		},
	)
	conf.addStoreOption(
		optStoreRejectInvalid,
		"reject diagrams with validation errors, when saved",
		func(o store.Options) string {
			return strconv.FormatBool(o.RejectInvalid)
		},
		func(o *store.Options, co *confOpt) error {
			rejectInvalid, err := strconv.ParseBool(co.value())
			o.RejectInvalid = rejectInvalid
			return err
		},
	)

	httpBasicAuthUsername := conf.addServerOption(
		optHttpBasicAuthUsername,
		"username for basic authentication",
		func(o server.Options) string {
			return ""
		},
		func(o *server.Options, co *confOpt) error {
			username := co.value()
			if username == "" {
				return errors.New("is empty")
			}

			o.BasicAuthUsername = username
			return nil
		},
	)
	httpBasicAuthUsername.required = true

	httpBasicAuthPassword := conf.addServerOption(
		optHttpBasicAuthPassword,
		"password for basic authentication",
		func(o server.Options) string {
			return ""
		},
		func(o *server.Options, co *confOpt) error {
			password := co.value()
			if password == "" {
				return errors.New("is empty")
			}

			o.BasicAuthPassword = password
			return nil
		},
	)
	httpBasicAuthPassword.required = true

	conf.addServerOption(
		optHttpBindAddress,
		"TCP address of the HTTP API to listen on",
		func(o server.Options) string {
			return o.BindAddress
		},
		func(o *server.Options, co *confOpt) error {
			bindAddress := co.value()
			if bindAddress == "" {
				return errors.New("is empty")
			}

			o.BindAddress = bindAddress
			return nil
		},
	)
	conf.addServerOption(
		optHttpHandlerTimeout,
		"time limit for handling a request, before HTTP 503 is returned",
		func(o server.Options) string {
			return o.HandlerTimeout.String()
		},
		func(o *server.Options, co *confOpt) error {
			handlerTimeout, err := time.ParseDuration(co.value())
			if err != nil {
				return err
			}
			if handlerTimeout <= 0 {
				return errors.New("must be greater than 0")
			}

			o.HandlerTimeout = handlerTimeout
			return nil
		},
	)
	conf.addServerOption(
		optHttpReadTimeout,
		"maximum duration for reading the entire request - see http.Server#ReadTimeout",
		func(o server.Options) string {
			return o.ReadTimeout.String()
		},
		func(o *server.Options, co *confOpt) error {
			readTimeout, err := time.ParseDuration(co.value())
			o.ReadTimeout = readTimeout
			return err
		},
	)
	conf.addServerOption(
		optHttpWriteTimeout,
		"maximum duration before timing out writing the response - see http.Server#WriteTimeout",
		func(o server.Options) string {
			return o.WriteTimeout.String()
		},
		func(o *server.Options, co *confOpt) error {
			writeTimeout, err := time.ParseDuration(co.value())
			o.WriteTimeout = writeTimeout
			return err
		},
	)

	return &conf
}

// newFlagSet creates the flag set, which is shared by all daemons.
func newFlagSet(name string, conf *conf) (*flag.FlagSet, *flags) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(log.Writer())

	flagSet.Var(&conf.envFile.env, "env", "set environment variables")
	flagSet.Var(&conf.envFile, "env-file", "read in a file of environment variables")

	var f flags
	flagSet.BoolVar(&f.listConfOpts, "list-conf-opts", false, "list configuration options")
	flagSet.BoolVar(&f.listConf, "list-conf", false, "list configuration")
	flagSet.BoolVar(&f.version, "version", false, "show version")

	return flagSet, &f
}

type flags struct {
	listConfOpts bool
	listConf     bool
	version      bool
}

// run handles the informational flags. ok is false, if the daemon should not be started.
func (f *flags) run(conf *conf) (code int, ok bool) {
	switch {
	case f.listConfOpts:
		return listConfOpts(conf), false
	case f.listConf:
		return listConf(conf), false
	case f.version:
		return showVersion(), false
	default:
		return 0, true
	}
}

// serve starts the HTTP server and blocks until an interrupt or termination signal is received.
func serve(s store.Store, serverOptions server.Options) int {
	httpServer, err := server.New(s, func(o *server.Options) {
		*o = serverOptions
	})
	if err != nil {
		log.Printf("failed to create HTTP server: %v", err)
		return 1
	}

	httpServer.ListenAndServe()

	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, os.Interrupt, syscall.SIGTERM)

	<-signalC

	httpServer.Shutdown()
	return 0
}

func listConf(conf *conf) int {
	opts := make([]*confOpt, len(conf.opts))

	i := 0
	for _, opt := range conf.opts {
		opts[i] = opt
		i++
	}

	slices.SortFunc(opts, func(a *confOpt, b *confOpt) int {
		return strings.Compare(a.key, b.key)
	})

	log.SetFlags(0)
	for _, opt := range opts {
		log.Printf("%s=%s", opt.key, opt.value())
	}

	return 0
}

func listConfErrors(conf *conf) int {
	var opts []*confOpt

	for _, opt := range conf.opts {
		if opt.err != nil {
			opts = append(opts, opt)
		}
	}

	if len(opts) == 0 {
		return 0
	}

	slices.SortFunc(opts, func(a *confOpt, b *confOpt) int {
		return strings.Compare(a.key, b.key)
	})

	log.SetFlags(0)
	for _, opt := range opts {
		value := opt.value()
		if value == "" {
			log.Printf("%s: %v", opt.key, opt.err)
		} else {
			log.Printf("%s=%s: %v", opt.key, value, opt.err)
		}
	}

	return 1
}

func listConfOpts(conf *conf) int {
	opts := make([]*confOpt, len(conf.opts))

	i := 0
	for _, opt := range conf.opts {
		opts[i] = opt
		i++
	}

	slices.SortFunc(opts, func(a *confOpt, b *confOpt) int {
		return strings.Compare(a.key, b.key)
	})

	maxKeyLength := 0
	for _, opt := range opts {
		keyLength := len(opt.key)
		if opt.required {
			keyLength++
		}

		if keyLength > maxKeyLength {
			maxKeyLength = keyLength
		}
	}

	var sb strings.Builder
	for _, opt := range opts {
		sb.WriteString(opt.key)

		l := len(opt.key)
		if opt.required {
			sb.WriteRune('*')
			l++
		}

		sb.WriteString(strings.Repeat(" ", maxKeyLength-l))
		sb.WriteString("   ")
		sb.WriteString(opt.description)

		if opt.defaultValue != "" {
			sb.WriteString(fmt.Sprintf(" - default: %s", opt.defaultValue))
		}

		sb.WriteRune('\n')
	}

	log.SetFlags(0)
	log.Print(sb.String())

	return 0
}

func showVersion() int {
	log.Println(version)
	return 0
}

type conf struct {
	envFile envFile
	opts    map[string]*confOpt
}

func (c *conf) addOption(key string, description string) *confOpt {
	co := confOpt{
		env:         c.envFile.env,
		key:         envPrefix + key,
		description: description,
	}

	c.opts[key] = &co
	return &co
}

func (c *conf) addServerOption(
	key string,
	description string,
	getOption func(server.Options) string,
	setOption func(*server.Options, *confOpt) error,
) *confOpt {
	co := confOpt{
		env:         c.envFile.env,
		key:         envPrefix + key,
		description: description,

		getServerOption: getOption,
		setServerOption: setOption,
	}

	c.opts[key] = &co
	return &co
}

func (c *conf) addStoreOption(
	key string,
	description string,
	getOption func(store.Options) string,
	setOption func(*store.Options, *confOpt) error,
) *confOpt {
	co := confOpt{
		env:         c.envFile.env,
		key:         envPrefix + key,
		description: description,

		getStoreOption: getOption,
		setStoreOption: setOption,
	}

	c.opts[key] = &co
	return &co
}

func (c *conf) getServerOptions(options *server.Options) {
	for _, opt := range c.opts {
		if opt.setServerOption != nil {
			if err := opt.setServerOption(options, opt); err != nil {
				opt.err = err
			}
		}
	}
}

func (c *conf) getStoreOptions(options *store.Options) {
	for _, opt := range c.opts {
		if opt.setStoreOption != nil {
			if err := opt.setStoreOption(options, opt); err != nil {
				opt.err = err
			}
		}
	}
}

func (c *conf) setServerOptions(options server.Options) {
	for _, opt := range c.opts {
		if opt.getServerOption != nil {
			opt.defaultValue = opt.getServerOption(options)
		}
	}
}

func (c *conf) setStoreOptions(options store.Options) {
	for _, opt := range c.opts {
		if opt.getStoreOption != nil {
			opt.defaultValue = opt.getStoreOption(options)
		}
	}
}

type confOpt struct {
	env env

	key          string
	description  string
	required     bool
	defaultValue string

	getServerOption func(server.Options) string
	getStoreOption  func(store.Options) string
	setServerOption func(*server.Options, *confOpt) error
	setStoreOption  func(*store.Options, *confOpt) error

	err error
}

func (o *confOpt) value() string {
	value := o.env[o.key]
	if value != "" {
		return value
	} else {
		return o.defaultValue
	}
}

type env map[string]string

func (v env) Set(value string) error {
	s := strings.SplitN(value, "=", 2)
	if len(s) != 2 {
		return fmt.Errorf("required format %s", v)
	}
	v[s[0]] = s[1]
	return nil
}

func (v env) String() string {
	return "<key>=<value>"
}

type envFile struct {
	env env
}

func (v envFile) Set(value string) error {
	file, err := os.Open(value)
	if err != nil {
		return err
	}

	defer file.Close()

	scanner := bufio.NewScanner(file)

	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Text()
		if err := v.env.Set(line); err != nil {
			return fmt.Errorf("wrong format in line %d: required format %s", i, v.env)
		}
	}

	return nil
}

func (v envFile) String() string {
	return "<file>"
}
