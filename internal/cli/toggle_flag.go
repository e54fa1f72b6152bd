package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

const (
	toggleFlagTypeName       = "bool"
	toggleFlagImplicitValue  = "true"
	toggleFlagPrefix         = "--"
	toggleFlagAssignment     = "="
	toggleFlagArgumentFormat = "--%s=%s"
	toggleFlagTerminator     = "--"
	toggleValueErrorFormat   = "invalid value %q for --%s; use true/false, yes/no or on/off"
)

// toggleFlagNames lists the report switches that also accept a detached value ("--summary no").
var toggleFlagNames = map[string]struct{}{
	summaryFlagName: {},
	copyFlagName:    {},
}

// toggleWords extends strconv.ParseBool with the spoken forms the config file also accepts.
var toggleWords = map[string]bool{
	"yes": true,
	"y":   true,
	"on":  true,
	"no":  false,
	"n":   false,
	"off": false,
}

// parseToggle reads a switch value; an empty value turns the switch on.
func parseToggle(input string) (bool, bool) {
	literal := strings.ToLower(strings.TrimSpace(input))
	if literal == "" {
		return true, true
	}
	if parsed, parseError := strconv.ParseBool(literal); parseError == nil {
		return parsed, true
	}
	parsed, known := toggleWords[literal]
	return parsed, known
}

type toggleFlag struct {
	name   string
	target *bool
}

func (flag *toggleFlag) Set(input string) error {
	enabled, known := parseToggle(input)
	if !known {
		return fmt.Errorf(toggleValueErrorFormat, input, flag.name)
	}
	*flag.target = enabled
	return nil
}

func (flag *toggleFlag) String() string {
	if flag.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*flag.target)
}

func (flag *toggleFlag) Type() string {
	return toggleFlagTypeName
}

// registerToggleFlag adds an off-by-default report switch that also works bare ("--copy").
func registerToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, usage string) {
	*target = false
	flagSet.Var(&toggleFlag{name: name, target: target}, name, usage)
	registered := flagSet.Lookup(name)
	registered.DefValue = strconv.FormatBool(false)
	registered.NoOptDefVal = toggleFlagImplicitValue
}

// normalizeToggleArguments joins "--summary no" into "--summary=no" for the report switches,
// so a detached value is not taken as the scan path. Arguments after "--" are left alone.
func normalizeToggleArguments(arguments []string) []string {
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == toggleFlagTerminator {
			return append(normalized, arguments[index:]...)
		}
		name, isToggle := detachedToggleName(argument)
		if isToggle && index+1 < len(arguments) {
			if _, known := parseToggle(arguments[index+1]); known && arguments[index+1] != "" {
				normalized = append(normalized, fmt.Sprintf(toggleFlagArgumentFormat, name, arguments[index+1]))
				index++
				continue
			}
		}
		normalized = append(normalized, argument)
	}
	return normalized
}

func detachedToggleName(argument string) (string, bool) {
	if !strings.HasPrefix(argument, toggleFlagPrefix) || strings.Contains(argument, toggleFlagAssignment) {
		return "", false
	}
	name := strings.TrimPrefix(argument, toggleFlagPrefix)
	_, isToggle := toggleFlagNames[name]
	return name, isToggle
}
