package flagutil

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// SetFlagsFromEnv parses all registered flags in the given flagset,
// and if they are not already set it attempts to set their values from
// environment variables. Environment variables take the name of the flag but
// are UPPERCASE, have the given prefix and any dashes are replaced by
// underscores - for example: max-output => INFLATE_MAX_OUTPUT
func SetFlagsFromEnv(fs *flag.FlagSet, prefix string) error {
	return setUnsetFlags(fs, func(name string) (string, string, bool) {
		key := prefix + "_" + flagKey(name)
		val, ok := os.LookupEnv(key)
		return key, val, ok && val != ""
	})
}

// flagKey maps a flag name to its configuration key: some-flag => SOME_FLAG.
func flagKey(name string) string {
	return strings.ToUpper(strings.Replace(name, "-", "_", -1))
}

// setUnsetFlags sets every flag of fs that has not been set yet and for which
// lookup returns a value. It reports the last invalid value.
func setUnsetFlags(fs *flag.FlagSet, lookup func(name string) (key, val string, ok bool)) (err error) {
	alreadySet := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		alreadySet[f.Name] = true
	})
	fs.VisitAll(func(f *flag.Flag) {
		if alreadySet[f.Name] {
			return
		}
		key, val, ok := lookup(f.Name)
		if !ok {
			return
		}
		if serr := fs.Set(f.Name, val); serr != nil {
			err = fmt.Errorf("invalid value %q for %s: %v", val, key, serr)
		}
	})
	return
}
