package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"pitchbase.org/internal/database"
)

func main() {
	log.SetFlags(0)
	dsn := flag.String("dsn", os.Getenv("PITCHBASE_PG_DSN"), "PostgreSQL DSN")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("missing DSN: provide via -dsn or PITCHBASE_PG_DSN")
	}
	if len(flag.Args()) == 0 {
		log.Fatal("usage: migrate [up|down|version]")
	}

	var err error
	switch flag.Arg(0) {
	case "up":
		err = database.Up(*dsn)
	case "down":
		err = database.Down(*dsn)
	case "version":
		var v uint
		var dirty bool
		v, dirty, err = database.Version(*dsn)
		if err == nil {
			fmt.Printf("version %d dirty=%v\n", v, dirty)
		}
	default:
		log.Fatalf("unknown command %q", flag.Arg(0))
	}
	if err != nil {
		log.Fatalf("migrate %s: %v", flag.Arg(0), err)
	}
}
