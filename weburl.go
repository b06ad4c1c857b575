// Package weburl wires the command line front end for the URL
// library: parse flags and request items, open a stream for the
// target, print the response.
package weburl

import (
	"bufio"
	"os"

	"github.com/Nextmidi/weburl/exchange"
	"github.com/Nextmidi/weburl/flags"
	"github.com/Nextmidi/weburl/output"
	"github.com/Nextmidi/weburl/version"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

func Main() error {
	// Parse flags
	flagSet, optionSet, err := flags.Parse(os.Args)
	if err != nil {
		return err
	}

	if optionSet.PrintLicenses {
		version.PrintLicenses(os.Stdout)
		return nil
	}

	// Parse positional arguments
	target, err := flags.ParseTarget(flagSet.Args())
	if _, ok := errors.Cause(err).(*flags.UsageError); ok {
		flagSet.PrintUsage(os.Stderr)
		return err
	}
	if err != nil {
		return err
	}

	if optionSet.Browse {
		if !target.LaunchInDefaultBrowser() {
			return errors.Errorf("failed to open '%s' in the default browser", target)
		}
		return nil
	}

	// Report upload progress on the terminal during a POST
	var meter *output.ProgressMeter
	if optionSet.ExchangeOptions.UsePOST && isatty.IsTerminal(os.Stderr.Fd()) {
		meter = output.NewProgressMeter(os.Stderr)
		optionSet.ExchangeOptions.Progress = meter.Update
	}

	// Send request and receive response
	resp, err := exchange.SendRequest(target, &optionSet.ExchangeOptions)
	if meter != nil {
		meter.Finish()
	}
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Print response
	writer := bufio.NewWriter(os.Stdout)
	defer writer.Flush()

	printer := output.NewPrettyPrinter(output.PrettyPrinterConfig{
		Writer:      writer,
		EnableColor: optionSet.OutputOptions.EnableColor,
	})

	if optionSet.OutputOptions.PrintResponseHeader {
		if err := printer.PrintStatusLine(resp); err != nil {
			return err
		}
		if err := printer.PrintHeader(resp); err != nil {
			return err
		}
		writer.Flush()
	}
	if optionSet.OutputOptions.PrintResponseBody {
		if err := printer.PrintBody(resp); err != nil {
			return err
		}
	}

	return nil
}
