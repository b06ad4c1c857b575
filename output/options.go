package output

type Options struct {
	PrintResponseHeader bool
	PrintResponseBody   bool

	EnableColor bool
}
