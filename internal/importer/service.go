package importer

import (
	"io"
	"time"

	"github.com/yufj-331/ordershare/internal/income"
	"github.com/yufj-331/ordershare/internal/invoice"
	"github.com/yufj-331/ordershare/internal/sales"
)

// Service turns uploaded spreadsheets into domain import rows. Rows that
// cannot be parsed are reported as warnings rather than failing the file.
type Service struct {
	loc *time.Location
}

func NewService(loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}

	return &Service{loc: loc}
}

func (s *Service) table(filename string, r io.Reader) ([][]string, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}

	return readTable(format, r)
}

func (s *Service) Sales(filename string, r io.Reader) ([]sales.ImportRow, []string, error) {
	rows, err := s.table(filename, r)
	if err != nil {
		return nil, nil, err
	}

	return parseSales(rows)
}

func (s *Service) Incomes(filename string, r io.Reader) ([]income.ImportRow, []string, error) {
	rows, err := s.table(filename, r)
	if err != nil {
		return nil, nil, err
	}

	return parseIncomes(rows)
}

func (s *Service) Invoices(filename string, r io.Reader) ([]invoice.ImportRow, []string, error) {
	rows, err := s.table(filename, r)
	if err != nil {
		return nil, nil, err
	}

	return parseInvoices(rows, s.loc)
}
