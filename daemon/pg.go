package daemon

import (
	"errors"
	"flag"
	"log"
	"time"

	"github.com/gclaussn/go-bpmn-schema/http/server"
	"github.com/gclaussn/go-bpmn-schema/store/pg"
)

func RunPg(args []string) int {
	storeOptions := pg.NewOptions()
	serverOptions := server.NewOptions()

	conf := newConf()

	pgDatabaseUrl := conf.addOption("PG_DATABASE_URL", "format: postgres://<username>:<password>@<host>:<port>/<database>?search_path=<schema>")
	pgDatabaseUrl.required = true

	pgTimeout := conf.addOption("PG_TIMEOUT", "time limit for database transactions")
	pgTimeout.defaultValue = storeOptions.Timeout.String()

	conf.setStoreOptions(storeOptions.Common)
	conf.setServerOptions(serverOptions)

	flagSet, flags := newFlagSet("go-bpmn-schema-pgd", conf)
	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		} else {
			return 1
		}
	}

	if code, ok := flags.run(conf); !ok {
		return code
	}

	conf.getStoreOptions(&storeOptions.Common)
	conf.getServerOptions(&serverOptions)

	if pgDatabaseUrl.value() == "" {
		pgDatabaseUrl.err = errors.New("is empty")
	}

	if timeout, err := time.ParseDuration(pgTimeout.value()); err != nil {
		pgTimeout.err = err
	} else if timeout <= 0 {
		pgTimeout.err = errors.New("must be greater than 0")
	} else {
		storeOptions.Timeout = timeout
	}

	if code := listConfErrors(conf); code != 0 {
		return code
	}

	storeStartTime := time.Now()

	s, err := pg.New(pgDatabaseUrl.value(), func(o *pg.Options) {
		*o = storeOptions
	})
	if err != nil {
		log.Printf("failed to create pg store: %v", err)
		return 1
	}

	log.Printf("pg store started in %dms", time.Since(storeStartTime).Milliseconds())

	return serve(s, serverOptions)
}
