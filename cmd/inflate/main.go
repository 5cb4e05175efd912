// Copyright 2016 CoreOS, Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command inflate decompresses a raw DEFLATE (RFC 1951) stream.
//
//	inflate [flags] [input [output]]
//
// Input and output default to stdin and stdout. Every flag may also be given
// as an INFLATE_<FLAG> environment variable or as a <FLAG> key in the YAML
// file named by -config; flags on the command line take precedence, then the
// environment, then the config file.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/coreos/pkg/capnslog"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/coreos/inflate/bitio"
	"github.com/coreos/inflate/flagutil"
	"github.com/coreos/inflate/flate"
)

const (
	repo      = "github.com/coreos/inflate"
	envPrefix = "INFLATE"
)

var plog = capnslog.NewPackageLogger(repo, "main")

type config struct {
	configFile       string
	dict             string
	maxOutput        flagutil.ByteSizeFlag
	permissiveStored bool
	blocks           bool
	force            bool
	logLevel         *flagutil.LogLevelFlag
}

func newFlagSet(cfg *config) *flag.FlagSet {
	fs := flag.NewFlagSet("inflate", flag.ExitOnError)
	cfg.logLevel = flagutil.NewLogLevelFlag("INFO")

	fs.StringVar(&cfg.configFile, "config", "", "YAML file to read flag values from")
	fs.StringVar(&cfg.dict, "dict", "", "file holding a preset dictionary")
	fs.Var(&cfg.maxOutput, "max-output", "fail if output exceeds this size, e.g. 64MiB (0 = no limit)")
	fs.BoolVar(&cfg.permissiveStored, "permissive-stored", false, "do not verify the NLEN field of stored blocks")
	fs.BoolVar(&cfg.blocks, "blocks", false, "log a summary of every block")
	fs.BoolVar(&cfg.force, "force", false, "write output even if stdout is a terminal")
	fs.Var(cfg.logLevel, "log-level", "log level (CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG, TRACE)")
	return fs
}

func main() {
	var cfg config
	fs := newFlagSet(&cfg)
	fs.Parse(os.Args[1:])

	if err := loadConfig(fs, &cfg); err != nil {
		fmt.Fprintln(os.Stderr, "inflate:", err)
		os.Exit(2)
	}
	setupLogging(cfg.logLevel.Level())

	if err := run(&cfg, fs.Args(), os.Stdin, os.Stdout); err != nil {
		plog.Errorf("%v", err)
		os.Exit(1)
	}
}

// loadConfig fills flags not given on the command line from the environment
// and then from the config file.
func loadConfig(fs *flag.FlagSet, cfg *config) error {
	if err := flagutil.SetFlagsFromEnv(fs, envPrefix); err != nil {
		return err
	}
	if cfg.configFile == "" {
		return nil
	}
	return flagutil.SetFlagsFromYamlFile(fs, cfg.configFile)
}

func setupLogging(level capnslog.LogLevel) {
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(os.Stderr, level >= capnslog.DEBUG))
	// Under systemd, stderr is the journal; log there with structured fields.
	if os.Getenv("JOURNAL_STREAM") != "" && journal.Enabled() {
		if f, err := capnslog.NewJournaldFormatter(); err == nil {
			capnslog.SetFormatter(f)
		}
	}
	capnslog.MustRepoLogger(repo).SetRepoLogLevel(level)
}

func run(cfg *config, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) > 2 {
		return errors.New("usage: inflate [flags] [input [output]]")
	}

	name := "stdin"
	in := stdin
	if len(args) > 0 && args[0] != "-" {
		name = args[0]
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrap(err, "opening input")
		}
		defer f.Close()
		in = f
	}
	src, err := ioutil.ReadAll(in)
	if err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}

	opts := flate.DefaultOptions()
	opts.VerifyStoredLength = !cfg.permissiveStored
	opts.MaxOutput = cfg.maxOutput.Bytes()
	if cfg.dict != "" {
		if opts.Dict, err = ioutil.ReadFile(cfg.dict); err != nil {
			return errors.Wrap(err, "reading dictionary")
		}
		plog.Debugf("using %d byte dictionary from %s", len(opts.Dict), cfg.dict)
	}

	br := bitio.NewReader(src)
	s, err := flate.Decode(br, opts)
	if err != nil {
		return errors.Wrapf(err, "decoding %s", name)
	}
	br.AlignToByte()
	if n := br.Remaining() / 8; n > 0 {
		plog.Warningf("%s: ignoring %d bytes after the final block", name, n)
	}
	plog.Infof("%s: %d blocks, %d -> %d bytes", name, len(s.Blocks), len(src), len(s.Data))
	if cfg.blocks {
		logBlocks(s)
	}

	out := stdout
	if len(args) > 1 && args[1] != "-" {
		f, err := os.Create(args[1])
		if err != nil {
			return errors.Wrap(err, "creating output")
		}
		defer f.Close()
		out = f
	} else if f, ok := stdout.(*os.File); ok && !cfg.force && terminal.IsTerminal(int(f.Fd())) {
		return errors.New("refusing to write decompressed data to a terminal (use -force)")
	}

	if _, err := out.Write(s.Data); err != nil {
		return errors.Wrap(err, "writing output")
	}
	if f, ok := out.(*os.File); ok && f != stdout {
		return errors.Wrap(f.Close(), "closing output")
	}
	return nil
}

func logBlocks(s *flate.Stream) {
	for i, blk := range s.Blocks {
		var refs, lits int
		for _, sym := range blk.Symbols {
			switch sym.Kind {
			case flate.Literal:
				lits++
			case flate.Reference:
				refs++
			}
		}
		plog.Infof("block %d: type=%v final=%v literals=%d references=%d", i, blk.Type, blk.Final, lits, refs)
		switch {
		case blk.Stored != nil:
			plog.Infof("  len=%d nlen=%#04x", blk.Stored.Len, blk.Stored.NLen)
		case blk.Dynamic != nil:
			d := blk.Dynamic
			plog.Infof("  hlit=%d hdist=%d hclen=%d", d.HLit, d.HDist, d.HCLen)
		}
	}
}
