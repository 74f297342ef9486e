package download

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/cdsetool/cdsego/internal/log"
)

// Monitor observes download progress. Implementations must be safe for
// concurrent use; the pool starts transfers from many goroutines.
type Monitor interface {
	// Start registers a transfer of total bytes (total may be 0 when the
	// server does not announce a length) and returns its progress handle.
	Start(name string, total int64) Progress
}

// Progress is the per-transfer side of a Monitor.
type Progress interface {
	// Add records n transferred bytes.
	Add(n int64)
	// Done marks the transfer finished. err is nil on success.
	Done(err error)
}

// NoopMonitor discards all progress updates.
type NoopMonitor struct{}

func (NoopMonitor) Start(string, int64) Progress { return noopProgress{} }

type noopProgress struct{}

func (noopProgress) Add(int64)  {}
func (noopProgress) Done(error) {}

// LogMonitor reports transfer lifecycle events through the structured logger.
type LogMonitor struct {
	logger zerolog.Logger
}

// NewLogMonitor creates a monitor that logs transfer start and completion.
func NewLogMonitor() *LogMonitor {
	return &LogMonitor{logger: log.WithComponent("download")}
}

func (m *LogMonitor) Start(name string, total int64) Progress {
	m.logger.Info().
		Str(log.FieldProduct, name).
		Int64("total_bytes", total).
		Msg("download started")
	return &logProgress{monitor: m, name: name, total: total}
}

type logProgress struct {
	monitor *LogMonitor
	name    string
	total   int64

	mu          sync.Mutex
	transferred int64
}

func (p *logProgress) Add(n int64) {
	p.mu.Lock()
	p.transferred += n
	p.mu.Unlock()
}

func (p *logProgress) Done(err error) {
	p.mu.Lock()
	transferred := p.transferred
	p.mu.Unlock()

	if err != nil {
		p.monitor.logger.Warn().
			Err(err).
			Str(log.FieldProduct, p.name).
			Int64(log.FieldBytes, transferred).
			Msg("download failed")
		return
	}
	p.monitor.logger.Info().
		Str(log.FieldProduct, p.name).
		Int64(log.FieldBytes, transferred).
		Msg("download finished")
}

// progressWriter forwards byte counts to a Progress as data flows through.
type progressWriter struct {
	progress Progress
}

func (w *progressWriter) Write(b []byte) (int, error) {
	w.progress.Add(int64(len(b)))
	return len(b), nil
}
