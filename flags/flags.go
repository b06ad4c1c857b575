package flags

import (
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/Nextmidi/weburl/exchange"
	"github.com/Nextmidi/weburl/output"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
)

var reNumber = regexp.MustCompile(`^-?[0-9.]+$`)

type FlagSet interface {
	Args() []string
	PrintUsage(w io.Writer)
}

type OptionSet struct {
	ExchangeOptions exchange.Options
	OutputOptions   output.Options

	// Browse short-circuits the request: the URL is opened in the
	// default browser instead.
	Browse bool

	// PrintLicenses dumps the bundled license list and exits.
	PrintLicenses bool
}

type terminalInfo struct {
	stdoutIsTerminal bool
}

func Parse(args []string) (FlagSet, *OptionSet, error) {
	return parse(args, terminalInfo{
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
	})
}

func parse(args []string, terminal terminalInfo) (FlagSet, *OptionSet, error) {
	exchangeOptions := exchange.Options{}
	outputOptions := output.Options{}
	var browse bool
	var printLicenses bool
	var auth string
	var headers []string
	printFlag := "\000" // "\000" is a special value that indicates user did not specified --print
	timeout := "0"

	flagSet := getopt.New()
	flagSet.SetParameters("URL [ITEM [ITEM ...]]")
	flagSet.BoolVarLong(&exchangeOptions.UsePOST, "post", 'P', "send parameters as a POST body instead of in the URL")
	flagSet.ListVarLong(&headers, "header", 'H', "extra header line to send (may be repeated)")
	flagSet.StringVarLong(&auth, "auth", 'a', "basic auth credentials (USER or USER:PASSWORD)")
	flagSet.StringVarLong(&timeout, "timeout", 't', "connect timeout: seconds or a duration, 0 for the default, negative for none")
	flagSet.StringVarLong(&printFlag, "print", 'p', "specifies what the output should contain (hb)")
	flagSet.BoolVarLong(&exchangeOptions.FollowRedirects, "follow", 'F', "follow redirects")
	flagSet.BoolVarLong(&exchangeOptions.SkipVerify, "no-verify", 0, "skip TLS certificate verification")
	flagSet.BoolVarLong(&browse, "browse", 'b', "open the URL in the default browser instead of fetching it")
	flagSet.BoolVarLong(&printLicenses, "licenses", 0, "print license information and exit")
	flagSet.Parse(args)

	// Parse --print
	if err := parsePrintFlag(printFlag, &outputOptions, terminal); err != nil {
		return nil, nil, err
	}

	// Parse --timeout
	d, err := parseDurationOrSeconds(timeout)
	if err != nil {
		return nil, nil, err
	}
	exchangeOptions.ConnectTimeout = d

	// Parse --auth
	if auth != "" {
		username, password, err := parseAuth(auth)
		if err != nil {
			return nil, nil, err
		}
		exchangeOptions.Auth = exchange.AuthOptions{
			Enabled:  true,
			UserName: username,
			Password: password,
		}
	}

	exchangeOptions.ExtraHeaders = strings.Join(headers, "\n")

	// Color
	outputOptions.EnableColor = terminal.stdoutIsTerminal

	optionSet := &OptionSet{
		ExchangeOptions: exchangeOptions,
		OutputOptions:   outputOptions,
		Browse:          browse,
		PrintLicenses:   printLicenses,
	}
	return flagSet, optionSet, nil
}

func parsePrintFlag(printFlag string, outputOptions *output.Options, terminal terminalInfo) error {
	if printFlag == "\000" {
		// --print is not specified
		if terminal.stdoutIsTerminal {
			outputOptions.PrintResponseHeader = true
			outputOptions.PrintResponseBody = true
		} else {
			outputOptions.PrintResponseBody = true
		}
		return nil
	}
	for _, c := range printFlag {
		switch c {
		case 'h':
			outputOptions.PrintResponseHeader = true
		case 'b':
			outputOptions.PrintResponseBody = true
		default:
			return errors.Errorf("Invalid char in --print value (must be consist of hb): %c", c)
		}
	}
	return nil
}

// parseDurationOrSeconds accepts either a bare number of seconds or a
// Go duration string. The tri-state convention of
// exchange.Options.ConnectTimeout passes through: zero keeps the
// default, negative disables the timeout.
func parseDurationOrSeconds(timeout string) (time.Duration, error) {
	if reNumber.MatchString(timeout) {
		timeout += "s"
	}
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return time.Duration(0), errors.Errorf("Value of --timeout must be a number or duration string: %v", timeout)
	}
	return d, nil
}

// parseAuth splits USER:PASSWORD credentials. Without a colon the
// password is asked for on the terminal.
func parseAuth(auth string) (string, string, error) {
	if username, password, ok := strings.Cut(auth, ":"); ok {
		return username, password, nil
	}
	password, err := askPassword()
	if err != nil {
		return "", "", err
	}
	return auth, password, nil
}
