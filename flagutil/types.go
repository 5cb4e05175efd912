package flagutil

import (
	"strconv"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// LogLevelFlag parses a capnslog level name such as "INFO" or "D".
// This type implements the flag.Value interface.
type LogLevelFlag struct {
	val  capnslog.LogLevel
	name string
}

// NewLogLevelFlag returns a LogLevelFlag holding def.
func NewLogLevelFlag(def string) *LogLevelFlag {
	f := &LogLevelFlag{}
	if err := f.Set(def); err != nil {
		panic(err)
	}
	return f
}

func (f *LogLevelFlag) Level() capnslog.LogLevel {
	return f.val
}

func (f *LogLevelFlag) Set(v string) error {
	name := strings.ToUpper(strings.TrimSpace(v))
	l, err := capnslog.ParseLevel(name)
	if err != nil {
		return err
	}
	f.val, f.name = l, name
	return nil
}

func (f *LogLevelFlag) String() string {
	return f.name
}

// ByteSizeFlag parses a byte count with an optional unit suffix, such as
// "1048576", "512KiB" or "64MB". This type implements the flag.Value
// interface.
type ByteSizeFlag struct {
	val uint64
}

func (f *ByteSizeFlag) Bytes() int64 {
	return int64(f.val)
}

func (f *ByteSizeFlag) Set(v string) error {
	n, err := humanize.ParseBytes(v)
	if err != nil {
		return errors.Wrapf(err, "invalid byte size %q", v)
	}
	if n > 1<<62 {
		return errors.Errorf("byte size %q too large", v)
	}
	f.val = n
	return nil
}

func (f *ByteSizeFlag) String() string {
	return strconv.FormatUint(f.val, 10)
}
