package output

import (
	"net/http"
)

type Printer interface {
	PrintStatusLine(response *http.Response) error
	PrintHeader(response *http.Response) error
	PrintBody(response *http.Response) error
}
