// Command libzkp-srs pre-generates the Groth16 structured reference
// string for both circuits (equality, membership) and persists the
// proving/verifying keys to a directory, so a later process using
// pkg/srs with the same directory loads them instead of re-running
// setup (§4.10, §6).
package main

import (
	"flag"
	"log"

	"github.com/Lumina-Group/libzkp/pkg/srs"
)

func main() {
	dir := flag.String("dir", "", "directory to write SNARK proving/verifying keys to (required)")
	flag.Parse()

	if *dir == "" {
		log.Fatal("libzkp-srs: -dir is required")
	}

	logger := log.New(log.Writer(), "libzkp-srs: ", log.LstdFlags)

	if err := srs.Default.SetKeyDir(*dir); err != nil {
		logger.Fatalf("set key dir: %v", err)
	}

	logger.Printf("generating equality circuit SRS in %s", *dir)
	if _, _, _, err := srs.Default.Equality(); err != nil {
		logger.Fatalf("equality setup: %v", err)
	}

	logger.Printf("generating membership circuit SRS in %s", *dir)
	if _, _, _, err := srs.Default.Membership(); err != nil {
		logger.Fatalf("membership setup: %v", err)
	}

	logger.Printf("done")
}
