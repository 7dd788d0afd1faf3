package newsgroups

import (
	"io"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/newsbayes/internal/logger"
)

// progressReader logs the number of bytes read at most once per interval.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	every rate.Sometimes
}

func newProgressReader(r io.Reader, total int64, interval time.Duration) *progressReader {
	return &progressReader{
		r:     r,
		total: total,
		every: rate.Sometimes{Interval: interval},
	}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	p.every.Do(p.report)
	if err == io.EOF {
		p.report()
	}
	return n, err
}

func (p *progressReader) report() {
	if p.total > 0 {
		logger.Info("Downloaded %.1f of %.1f MiB (%.0f%%)",
			mib(p.read), mib(p.total), 100*float64(p.read)/float64(p.total))
		return
	}
	logger.Info("Downloaded %.1f MiB", mib(p.read))
}

func mib(n int64) float64 {
	return float64(n) / (1 << 20)
}
