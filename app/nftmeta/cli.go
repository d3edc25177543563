package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/domain"
	"github.com/x-xyz/nftmeta/domain/metadata"
)

const defaultTimeout = 10 * time.Second

const usage = `usage: nftmeta [flags] <command> [args]

commands:
  normalize <file|->            decode a document and print it in canonical form
  fetch [--contract] <uri>...   fetch and decode token or contract metadata
  pin [--name n] <file|->       pin a document to ipfs and print its ipfs:// uri

flags:
`

// exit codes
const (
	exitOk     = 0
	exitFailed = 1
	exitUsage  = 2
)

type cli struct {
	metadata domain.MetadataUseCase
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

func (c *cli) run(bc ctx.Ctx, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(c.stderr, usage)
		return exitUsage
	}
	switch args[0] {
	case "normalize":
		return c.normalize(bc, args[1:])
	case "fetch":
		return c.fetch(bc, args[1:])
	case "pin":
		return c.pin(bc, args[1:])
	}
	fmt.Fprintf(c.stderr, "unknown command %q\n%s", args[0], usage)
	return exitUsage
}

func (c *cli) normalize(bc ctx.Ctx, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(c.stderr, "normalize takes exactly one file, or - for stdin")
		return exitUsage
	}
	data, err := c.readInput(args[0])
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return exitFailed
	}
	out, err := c.metadata.Normalize(bc, data)
	if err != nil {
		fmt.Fprintf(c.stderr, "%s: %v\n", args[0], err)
		return exitFailed
	}
	fmt.Fprintf(c.stdout, "%s\n", out)
	return exitOk
}

func (c *cli) fetch(bc ctx.Ctx, args []string) int {
	flags := pflag.NewFlagSet("fetch", pflag.ContinueOnError)
	flags.SetOutput(c.stderr)
	contract := flags.Bool("contract", false, "decode contract level metadata")
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}
	uris := flags.Args()
	if len(uris) == 0 {
		fmt.Fprintln(c.stderr, "fetch needs at least one uri")
		return exitUsage
	}

	if *contract {
		code := exitOk
		for _, uri := range uris {
			m, err := c.metadata.GetContractFromUrl(bc, uri)
			if err != nil {
				fmt.Fprintf(c.stderr, "%s: %v\n", uri, err)
				code = exitFailed
				continue
			}
			c.printJson(m)
		}
		return code
	}

	results, err := c.metadata.GetManyFromUrls(bc, uris)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return exitFailed
	}
	code := exitOk
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(c.stderr, "%s: %v\n", r.Uri, r.Err)
			code = exitFailed
			continue
		}
		c.printJson(r.Metadata)
	}
	return code
}

func (c *cli) pin(bc ctx.Ctx, args []string) int {
	flags := pflag.NewFlagSet("pin", pflag.ContinueOnError)
	flags.SetOutput(c.stderr)
	name := flags.String("name", "", "pin name, defaults to the file name")
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(c.stderr, "pin takes exactly one file, or - for stdin")
		return exitUsage
	}
	src := flags.Arg(0)
	if *name == "" && src != "-" {
		*name = filepath.Base(src)
	} else if *name == "" {
		*name = "metadata.json"
	}

	data, err := c.readInput(src)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return exitFailed
	}
	m, err := metadata.Deserialize(data)
	if err != nil {
		fmt.Fprintf(c.stderr, "%s: %v\n", src, err)
		return exitFailed
	}
	uri, err := c.metadata.Pin(bc, *name, m)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return exitFailed
	}
	fmt.Fprintln(c.stdout, uri)
	return exitOk
}

func (c *cli) readInput(src string) ([]byte, error) {
	if src == "-" {
		return io.ReadAll(c.stdin)
	}
	return os.ReadFile(src)
}

func (c *cli) printJson(v json.Marshaler) {
	out, err := v.MarshalJSON()
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return
	}
	c.stdout.Write(bytes.TrimSpace(out))
	fmt.Fprintln(c.stdout)
}
