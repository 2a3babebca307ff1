package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"tecsoqr/internal/engine/bulk"
	"tecsoqr/internal/engine/payload"
	"tecsoqr/internal/engine/render"
	"tecsoqr/internal/platform/auth"
)

const usage = `usage: qrgen <command> [flags]

commands:
  encode          encode a content record into a QR payload
  validate        check a quick-entry value for a content type
  bulk            render one code per input line into a ZIP archive
  hash-admin-key  print the bcrypt hash for auth.admin_key_hash
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	args := os.Args[2:]
	switch os.Args[1] {
	case "encode":
		err = runEncode(args, os.Stdin, os.Stdout)
	case "validate":
		err = runValidate(args, os.Stdout)
	case "bulk":
		err = runBulk(args, os.Stdin)
	case "hash-admin-key":
		err = runHashAdminKey(args, os.Stdout)
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "qrgen %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

// runEncode reads a JSON content record (or builds one from --type/--value)
// and prints its payload.
func runEncode(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	input := fs.StringP("input", "i", "-", "JSON content file, - for stdin")
	typ := fs.StringP("type", "t", "", "Content type for quick entry")
	value := fs.StringP("value", "v", "", "Quick-entry value, used with --type")
	pngPath := fs.String("png", "", "Also write a PNG image to this path")
	size := fs.Int("size", render.DefaultSize, "PNG size in pixels")
	level := fs.String("level", string(render.LevelMedium), "Error correction level (L, M, Q, H)")
	terminal := fs.Bool("terminal", false, "Draw the code in the terminal")
	if err := fs.Parse(args); err != nil {
		return err
	}

	content, err := readContent(*input, *typ, *value, stdin)
	if err != nil {
		return err
	}

	p, err := payload.Encode(content)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, p)

	lvl := render.Level(strings.ToUpper(*level))
	if *terminal {
		art, err := render.Text(p, lvl, false)
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, art)
	}

	if *pngPath != "" {
		out := render.DefaultOutput()
		out.Size = *size
		out.Level = lvl
		img, err := render.Image(p, render.DefaultCustomization(), out)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*pngPath, img, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func readContent(input, typ, value string, stdin io.Reader) (payload.Content, error) {
	if typ != "" {
		t, err := payload.ParseType(typ)
		if err != nil {
			return nil, err
		}
		return payload.FromQuickEntry(t, value)
	}

	var (
		data []byte
		err  error
	)
	if input == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return nil, err
	}
	return payload.Decode(data)
}

func runValidate(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("validate", pflag.ContinueOnError)
	typ := fs.StringP("type", "t", string(payload.TypeURL), "Content type")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected exactly one value")
	}

	if !payload.IsValid(payload.Type(*typ), fs.Arg(0)) {
		return fmt.Errorf("%q is not a valid %s value", fs.Arg(0), *typ)
	}
	fmt.Fprintln(stdout, "valid")
	return nil
}

func runBulk(args []string, stdin io.Reader) error {
	fs := pflag.NewFlagSet("bulk", pflag.ContinueOnError)
	input := fs.StringP("input", "i", "-", "File with one URL or text per line, - for stdin")
	output := fs.StringP("output", "o", "qr-codes.zip", "ZIP archive to write")
	concurrency := fs.Int("concurrency", 4, "Parallel renders")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if *input == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(*input)
	}
	if err != nil {
		return err
	}

	f, err := os.Create(*output)
	if err != nil {
		return err
	}

	opts := bulk.DefaultOptions()
	opts.Concurrency = *concurrency
	n, err := bulk.Build(context.Background(), f, string(data), opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(*output)
		return err
	}

	fmt.Fprintf(os.Stderr, "wrote %d codes to %s\n", n, *output)
	return nil
}

func runHashAdminKey(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("hash-admin-key", pflag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected the admin secret as the only argument")
	}

	hash, err := auth.HashAdminKey(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, hash)
	return nil
}
