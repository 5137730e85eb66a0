package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kbdl/kbdl/driver"
	"github.com/kbdl/kbdl/keymap"
)

// readSource reads the description named by args, or stdin when args is empty.
func readSource(args []string) (string, []byte, error) {
	if len(args) == 0 {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", nil, fmt.Errorf("cannot read stdin: %w", err)
		}
		return "stdin", src, nil
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("cannot read the description %v: %w", args[0], err)
	}
	return args[0], src, nil
}

func resolveOptions(ctx context.Context) ([]keymap.ResolveOption, error) {
	defaults, err := configFromContext(ctx).DefaultOptions()
	if err != nil {
		return nil, err
	}
	return []keymap.ResolveOption{
		keymap.WithDefaultOptions(defaults),
	}, nil
}

func load(ctx context.Context, name string, src []byte) (*keymap.Metadata, error) {
	logger := loggerFromContext(ctx)
	opts, err := resolveOptions(ctx)
	if err != nil {
		return nil, err
	}
	meta, err := driver.Load(name, src, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("layout resolved", "source", name, "width", meta.Layout.Width, "height", meta.Layout.Height)
	logger.Debug("layers resolved", "source", name, "layers", len(meta.Layers.Layers))
	return meta, nil
}

// generate compiles the description named by args and writes the artifact to path, or to stdout
// when path is empty.
func generate(ctx context.Context, args []string, t driver.Target, path string) error {
	name, src, err := readSource(args)
	if err != nil {
		return err
	}
	meta, err := load(ctx, name, src)
	if err != nil {
		return err
	}
	var b bytes.Buffer
	if err := driver.Emit(&b, meta, t); err != nil {
		return driver.WithSource(err, name, src)
	}
	return writeOutput(ctx, b.Bytes(), path)
}

func writeOutput(ctx context.Context, out []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	err := os.WriteFile(path, out, 0644)
	if err != nil {
		return fmt.Errorf("cannot write an output file %v: %w", path, err)
	}
	loggerFromContext(ctx).Info("written", "path", path, "bytes", len(out))
	return nil
}
