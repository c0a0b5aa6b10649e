package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/user-none/lanegrid/standalone"
)

// importList collects repeated or comma separated -import values
type importList []string

func (l *importList) String() string {
	return strings.Join(*l, ",")
}

func (l *importList) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			*l = append(*l, p)
		}
	}
	return nil
}

func main() {
	var imports importList
	catalog := flag.String("catalog", "", "Catalog file to open (default: catalog.json in the data directory)")
	reset := flag.Bool("config-reset", false, "Delete config.json and start with defaults")
	flag.Var(&imports, "import", "Folder or archive of posters to add as a lane (repeatable)")
	flag.Parse()

	opts := standalone.Options{
		CatalogPath: *catalog,
		Import:      imports,
		ResetConfig: *reset,
	}
	if err := standalone.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "lanegrid: %v\n", err)
		os.Exit(1)
	}
}
