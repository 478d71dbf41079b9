package importer

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/kmellea/moneylens/internal/model"
)

// FileResult pairs one input file with its parse outcome.
type FileResult struct {
	Path    string
	Format  string
	Txns    []model.Transaction
	Skipped int
	Err     error
}

// ProgressFunc is called as files finish parsing. done is the number of
// files completed so far, total the batch size.
type ProgressFunc func(done, total int)

// Service parses batches of export files on a bounded worker pool.
type Service struct {
	registry *Registry
	logger   *log.Logger
}

// NewService builds a Service with the built-in parsers.
func NewService(logger *log.Logger) *Service {
	return &Service{registry: DefaultRegistry(), logger: logger}
}

// Formats lists the formats the service can parse.
func (s *Service) Formats() []string {
	return s.registry.Formats()
}

// ParseFiles parses all paths concurrently. An empty format means detect
// per file from the header row. Results keep the order of paths; per-file
// failures land in the result rather than aborting the batch.
func (s *Service) ParseFiles(paths []string, format string, progress ProgressFunc) []FileResult {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(paths) {
		numWorkers = len(paths)
	}

	work := make(chan int, len(paths))
	for i := range paths {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	var done atomic.Int64

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = s.parseFile(paths[idx], format)
				n := done.Add(1)
				if progress != nil {
					progress(int(n), len(paths))
				}
			}
		}()
	}
	wg.Wait()

	return results
}

func (s *Service) parseFile(path, format string) FileResult {
	fr := FileResult{Path: path, Format: format}

	data, err := os.ReadFile(path)
	if err != nil {
		fr.Err = fmt.Errorf("reading file: %w", err)
		return fr
	}

	var p Parser
	if format != "" {
		if p = s.registry.Get(format); p == nil {
			fr.Err = fmt.Errorf("unknown format %q", format)
			return fr
		}
	} else {
		header, err := readHeader(data)
		if err != nil {
			fr.Err = fmt.Errorf("reading header: %w", err)
			return fr
		}
		if p = s.registry.Detect(header); p == nil {
			fr.Err = fmt.Errorf("unrecognized header, pass --format explicitly")
			return fr
		}
		fr.Format = p.Format()
		s.logger.Debug("detected format", "path", path, "format", fr.Format)
	}

	res, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		fr.Err = err
		return fr
	}

	fr.Txns = res.Txns
	fr.Skipped = res.Skipped
	s.logger.Debug("parsed file", "path", path, "format", fr.Format,
		"rows", len(fr.Txns), "skipped", fr.Skipped)
	return fr
}

// Totals sums the parsed rows by direction for the import summary line.
func (fr FileResult) Totals() (income, expenses decimal.Decimal) {
	for _, t := range fr.Txns {
		switch t.Kind {
		case model.KindIncome:
			income = income.Add(t.Amount)
		case model.KindExpense:
			expenses = expenses.Add(t.Amount)
		}
	}
	return income, expenses
}
