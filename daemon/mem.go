package daemon

import (
	"flag"
	"log"

	"github.com/gclaussn/go-bpmn-schema/http/server"
	"github.com/gclaussn/go-bpmn-schema/store/mem"
)

func RunMem(args []string) int {
	storeOptions := mem.NewOptions()
	serverOptions := server.NewOptions()

	conf := newConf()

	conf.setStoreOptions(storeOptions.Common)
	conf.setServerOptions(serverOptions)

	flagSet, flags := newFlagSet("go-bpmn-schema-memd", conf)
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

	if code := listConfErrors(conf); code != 0 {
		return code
	}

	s, err := mem.New(func(o *mem.Options) {
		*o = storeOptions
	})
	if err != nil {
		log.Printf("failed to create mem store: %v", err)
		return 1
	}

	return serve(s, serverOptions)
}
