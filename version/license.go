package version

import (
	"fmt"
	"io"
)

type License struct {
	ModuleName  string
	LicenseName string
	Link        string
}

var Licenses = []License{
	{
		ModuleName:  "weburl",
		LicenseName: "MIT License",
		Link:        "https://github.com/Nextmidi/weburl/blob/master/LICENSE",
	},
	{
		ModuleName:  "Go",
		LicenseName: "BSD License",
		Link:        "https://golang.org/LICENSE",
	},
	{
		ModuleName:  "aurora",
		LicenseName: "WTFPL",
		Link:        "https://github.com/logrusorgru/aurora/blob/master/LICENSE",
	},
	{
		ModuleName:  "go-isatty",
		LicenseName: "MIT License",
		Link:        "https://github.com/mattn/go-isatty/blob/master/LICENSE",
	},
	{
		ModuleName:  "getopt",
		LicenseName: "BSD License",
		Link:        "https://github.com/pborman/getopt/blob/master/LICENSE",
	},
	{
		ModuleName:  "errors",
		LicenseName: "BSD License",
		Link:        "https://github.com/pkg/errors/blob/master/LICENSE",
	},
	{
		ModuleName:  "bytefmt",
		LicenseName: "Apache License",
		Link:        "https://github.com/cloudfoundry/bytefmt/blob/master/LICENSE",
	},
	{
		ModuleName:  "browser",
		LicenseName: "BSD License",
		Link:        "https://github.com/pkg/browser/blob/master/LICENSE",
	},
	{
		ModuleName:  "etree",
		LicenseName: "BSD License",
		Link:        "https://github.com/beevik/etree/blob/master/LICENSE",
	},
	{
		ModuleName:  "uuid",
		LicenseName: "BSD License",
		Link:        "https://github.com/google/uuid/blob/master/LICENSE",
	},
	{
		ModuleName:  "mimetype",
		LicenseName: "MIT License",
		Link:        "https://github.com/gabriel-vasile/mimetype/blob/master/LICENSE",
	},
}

func PrintLicenses(w io.Writer) {
	for _, license := range Licenses {
		fmt.Fprintf(w, "%s:\n  %s\n  %s\n\n",
			license.ModuleName,
			license.LicenseName,
			license.Link,
		)
	}
}
