package infra

import (
	"net/http"
	"time"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/output"
)

// Infra holds runtime dependencies such as IO and HTTP clients.
type Infra struct {
	Output output.Printer
	HTTP   *http.Client
	Now    func() time.Time
}

// New builds Infra with default helpers.
func New(out output.Printer, httpClient *http.Client) *Infra {
	return &Infra{
		Output: out,
		HTTP:   httpClient,
		Now:    time.Now,
	}
}
