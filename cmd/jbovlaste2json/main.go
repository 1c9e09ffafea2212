// Command jbovlaste2json converts the jbovlaste dictionary export to
// JSON.
//
// By default the export is downloaded from jbovlaste using the
// credentials in JBOVLASTE_USERNAME and JBOVLASTE_PASSWORD; -input reads
// a previously saved export instead. The JSON document is written to
// stdout or to -output.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/andaru/jbovlaste/config"
	"github.com/andaru/jbovlaste/dictionary"
	"github.com/andaru/jbovlaste/export"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var (
	configFile = flag.String("config", "", "YAML configuration file")
	input      = flag.String("input", "", "read the export from this file instead of downloading it")
	output     = flag.String("output", "", "write JSON to this file instead of stdout")
	indent     = flag.String("indent", "", "indent JSON output with this string")
)

func main() {
	// progress goes to stderr unless the glog flags say otherwise
	_ = flag.Set("logtostderr", "true")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags]\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\nEnvironment:\n%s\n", config.Help())
	}
	flag.Parse()
	defer glog.Flush()

	cfg, err := config.Load(*configFile, flagOverrides)
	if err != nil {
		glog.Exitf("%v", err)
	}
	if err := run(cfg); err != nil {
		glog.Exitf("%v", err)
	}
}

// flagOverrides applies the flags set on the command line
func flagOverrides(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "output":
			cfg.Output = *output
		case "indent":
			cfg.Indent = *indent
		}
	})
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	data, err := readExport(ctx, cfg)
	if err != nil {
		return err
	}
	glog.Info("export done, parsing and converting")

	d, err := dictionary.Parse(data)
	if err != nil {
		return errors.Wrap(err, "parse export")
	}
	glog.Infof("parsed %d valsi and %d nlword entries", len(d.LojbanToEnglish), len(d.EnglishToLojban))

	return writeJSON(d, cfg)
}

func readExport(ctx context.Context, cfg *config.Config) ([]byte, error) {
	if cfg.Input != "" {
		glog.Infof("reading export from %s", cfg.Input)
		data, err := os.ReadFile(cfg.Input)
		return data, errors.Wrap(err, "read export")
	}
	c, err := export.New(cfg.BaseURL, cfg.Lang, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	glog.Infof("logging in to %s", cfg.BaseURL)
	if err := c.Login(ctx, cfg.Username, cfg.Password); err != nil {
		return nil, err
	}
	glog.Info("login done, exporting")
	return c.Fetch(ctx)
}

func writeJSON(d *dictionary.Dictionary, cfg *config.Config) (err error) {
	var out io.Writer = os.Stdout
	if cfg.Output != "" {
		f, cerr := os.Create(cfg.Output)
		if cerr != nil {
			return errors.Wrap(cerr, "create output")
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = errors.Wrap(cerr, "close output")
			}
		}()
		out = f
	}
	bw := bufio.NewWriter(out)
	if err := d.WriteJSON(bw, cfg.Indent); err != nil {
		return err
	}
	return errors.Wrap(bw.Flush(), "write output")
}
