// Command ksuid generates and inspects KSUIDs.
//
// With no arguments it prints freshly generated IDs, one per line. Any
// arguments are parsed as KSUID strings and printed back, which makes
// the command double as a validator; -v prints the components of each
// ID instead.
package main

import (
	"flag"
	"fmt"
	"os"

	ksuid "github.com/jjatria/data-ksuid"
)

var (
	count   = flag.Int("n", 1, "number of KSUIDs to generate")
	verbose = flag.Bool("v", false, "print the components of each KSUID")
	version = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("%s %s\n", ksuid.Name, ksuid.Version)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		generated, err := ksuid.GenerateBatch(*count)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ksuid: %v\n", err)
			os.Exit(1)
		}
		for _, id := range generated {
			args = append(args, id.String())
		}
	}

	exit := 0
	for _, arg := range args {
		id, err := ksuid.Parse(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ksuid: %v\n", err)
			exit = 1
			continue
		}
		printID(id)
	}
	os.Exit(exit)
}

func printID(id ksuid.KSUID) {
	if !*verbose {
		fmt.Println(id)
		return
	}

	fmt.Printf("%s\n", id)
	fmt.Printf("  Time:      %v\n", id.Time().UTC())
	fmt.Printf("  Timestamp: %d\n", id.Timestamp())
	fmt.Printf("  Payload:   %x\n", id.Payload())
	fmt.Printf("  Raw:       %X\n", id.Bytes())
}
