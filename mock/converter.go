package mock

import "github.com/fwojciec/mnrules"

var _ mnrules.Converter = (*Converter)(nil)

// Converter is a mock implementation of mnrules.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
