// Package flagx lets several independent loaders share os.Args: each one
// keeps only the flags it owns before handing them to its own flag.FlagSet.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args that belongs to allowedFlags,
// keeping values next to their flags.
//
// Recognised forms:
//
//	-c conf.json        flag and value as separate arguments
//	--config=conf.json  flag and value joined by '='
//
// Flags listed in boolFlags never consume the following argument, so
// "-reconcile -a :50051" does not swallow "-a".
func FilterArgs(args []string, allowedFlags []string, boolFlags ...string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags)+len(boolFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}
	isBool := make(map[string]struct{}, len(boolFlags))
	for _, f := range boolFlags {
		allowed[f] = struct{}{}
		isBool[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)

		if _, ok := isBool[arg]; ok {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// JsonConfigFlags returns the config file path given with -c or -config,
// or an empty string when neither is present.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
