package flagutil

import (
	"flag"
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// SetFlagsFromYaml goes through all registered flags in the given flagset,
// and if they are not already set it attempts to set their values from
// the YAML config. It will use the key REPLACE(UPPERCASE(flagname), '-', '_')
func SetFlagsFromYaml(fs *flag.FlagSet, rawYaml []byte) error {
	conf := make(map[string]string)
	if err := yaml.Unmarshal(rawYaml, &conf); err != nil {
		return errors.Wrap(err, "parsing yaml config")
	}
	return setUnsetFlags(fs, func(name string) (string, string, bool) {
		key := flagKey(name)
		val, ok := conf[key]
		return key, val, ok
	})
}

// SetFlagsFromYamlFile is SetFlagsFromYaml for the contents of path.
func SetFlagsFromYamlFile(fs *flag.FlagSet, path string) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}
	return errors.Wrapf(SetFlagsFromYaml(fs, raw), "config file %s", path)
}
