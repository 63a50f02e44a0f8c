package main

import (
	"fmt"
	"os"
	"time"

	alzkit "github.com/bgrewell/alz-kit"
	"github.com/bgrewell/usage"
	"github.com/theckman/yacspin"
)

func newSpinner(message string) *yacspin.Spinner {
	cfg := yacspin.Config{
		Frequency:       100 * time.Millisecond,
		CharSet:         yacspin.CharSets[9],
		Suffix:          " ",
		Message:         message,
		StopCharacter:   "✓",
		StopColors:      []string{"fgGreen"},
		StopFailMessage: "failed",
	}
	s, err := yacspin.New(cfg)
	if err != nil {
		return nil
	}
	return s
}

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("alzlist"),
		usage.WithApplicationDescription("alzlist inspects an ALZ archive, listing its entries, sizes, compression methods, and encryption status without extracting anything."),
	)

	help := u.AddBooleanOption("h", "help", false, "Show this help message", "optional", nil)
	verbose := u.AddBooleanOption("v", "verbose", false, "Print per-entry attribute flags", "", nil)
	path := u.AddArgument(1, "archive-path", "Path to the .alz archive to list", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}
	if *help {
		u.PrintUsage()
		os.Exit(0)
	}
	if path == nil || *path == "" {
		u.PrintError(fmt.Errorf("path to the .alz archive must be provided"))
		os.Exit(1)
	}

	spinner := newSpinner("scanning " + *path)
	if spinner != nil {
		_ = spinner.Start()
	}

	archive, err := alzkit.Open(*path)
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		u.PrintError(fmt.Errorf("failed to open archive: %w", err))
		os.Exit(1)
	}
	defer archive.Close()

	entries := archive.Entries()
	var totalUncompressed, totalCompressed uint64
	for _, e := range entries {
		totalUncompressed += e.UncompressedSize
		totalCompressed += e.CompressedSize
	}

	fmt.Printf("Archive: %s\n", *path)
	fmt.Printf("Entries: %d\n", len(entries))
	fmt.Printf("Encrypted: %t\n", archive.IsEncrypted())
	fmt.Println("=========================")

	for _, e := range entries {
		kind := "file"
		if e.IsDir() {
			kind = "dir "
		} else if e.IsSymlink() {
			kind = "link"
		}
		fmt.Printf("%s  %10d  %10d  %-8s  %s  %s\n",
			kind, e.UncompressedSize, e.CompressedSize, e.Method.String(),
			encryptedMark(e.DescriptorFlags.Encrypted), e.Name)
		if *verbose {
			fmt.Printf("    attrs: %s\n", e.Attributes.String())
			fmt.Printf("    descr: %s\n", e.DescriptorFlags.String())
		}
	}

	fmt.Println("=========================")
	fmt.Printf("Total uncompressed: %d bytes\n", totalUncompressed)
	fmt.Printf("Total compressed:   %d bytes\n", totalCompressed)
}

func encryptedMark(encrypted bool) string {
	if encrypted {
		return "*"
	}
	return " "
}
