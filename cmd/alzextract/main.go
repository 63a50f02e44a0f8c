package main

import (
	"flag"
	"fmt"
	"os"

	alzkit "github.com/bgrewell/alz-kit"
	"github.com/bgrewell/alz-kit/pkg/logging"
	"golang.org/x/term"
)

func main() {
	debug := flag.Bool("v", false, "Enable verbose (debug) logging")
	outputDir := flag.String("o", "./extracted", "Output directory for extracted files")
	askPassword := flag.Bool("p", false, "Prompt for a password before extracting")
	strictCRC := flag.Bool("strict-crc", true, "Fail extraction on a CRC-32 mismatch")

	flag.Parse()

	var opts []alzkit.Option
	if *debug {
		opts = append(opts, alzkit.WithLogger(logging.NewSimpleLogger(os.Stderr, logging.LEVEL_DEBUG, true)))
	}

	if flag.NArg() < 1 {
		fmt.Println("Usage: alzextract [options] <path-to-archive>")
		fmt.Println("  -v               Enable verbose logging")
		fmt.Println("  -o <directory>   Output directory (default './extracted')")
		fmt.Println("  -p               Prompt for a password before extracting")
		fmt.Println("  -strict-crc      Fail extraction on a CRC-32 mismatch (default: true)")
		os.Exit(1)
	}
	archivePath := flag.Arg(0)

	var password string
	if *askPassword {
		fmt.Fprint(os.Stderr, "Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read password: %v\n", err)
			os.Exit(1)
		}
		password = string(pwBytes)
	}

	opts = append(opts, alzkit.WithStrictCRC(*strictCRC))
	archive, err := alzkit.Open(archivePath, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open archive: %v\n", err)
		os.Exit(1)
	}
	defer archive.Close()

	if archive.IsEncrypted() && password == "" {
		fmt.Fprintln(os.Stderr, "Archive contains encrypted entries; re-run with -p to supply a password.")
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, e := range archive.Entries() {
		fmt.Fprintf(os.Stderr, "extracting: %s (%d bytes) ", e.Name, e.UncompressedSize)
		if err := archive.ExtractEntry(*outputDir, e, password); err != nil {
			fmt.Fprintf(os.Stderr, ".. failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, ".. ok")
	}

	fmt.Printf("Extraction completed successfully to '%s'.\n", *outputDir)
}
