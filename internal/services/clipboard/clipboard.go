// Package clipboard copies rendered reports to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available on the host.
var ErrUnsupported = errors.New("system clipboard unavailable")

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	unsupported func() bool
	writeAll    func(text string) error
}

// NewService constructs a clipboard service backed by the host clipboard.
func NewService() *Service {
	return &Service{
		unsupported: func() bool { return clipboard.Unsupported },
		writeAll:    clipboard.WriteAll,
	}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if service.unsupported() {
		return ErrUnsupported
	}
	return service.writeAll(text)
}

var _ Copier = (*Service)(nil)
