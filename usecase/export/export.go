// Package export serialises point-in-time lead snapshots as CSV.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/salesboard/domain"
	"github.com/fastygo/salesboard/repository"
)

const (
	ContentType = "text/csv; charset=utf-8"
	dateLayout  = "2006-01-02"
)

// utf8BOM lets spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var header = []string{"ID", "Name", "Company", "Email", "Phone", "Value", "Stage", "Created At"}

// File is a rendered export ready to be served as a download.
type File struct {
	Name    string
	Rows    int
	Content []byte
}

type Exporter struct {
	leads  repository.LeadRepository
	lists  repository.ListRepository
	stages repository.StageRepository
	logger *zap.Logger
}

func New(leads repository.LeadRepository, lists repository.ListRepository, stages repository.StageRepository, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		leads:  leads,
		lists:  lists,
		stages: stages,
		logger: logger,
	}
}

// ExportList renders every lead of the list. An empty list is an error so
// callers can tell the user there is nothing to download.
func (e *Exporter) ExportList(ctx context.Context, listID string) (*File, error) {
	list, err := e.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	leads, err := e.leads.List(ctx, repository.LeadFilter{ListID: listID})
	if err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return nil, domain.ErrNothingToExport
	}
	return e.render(ctx, fileName(list.Title), leads)
}

// ExportLeads renders the leads matching filter.
func (e *Exporter) ExportLeads(ctx context.Context, filter repository.LeadFilter) (*File, error) {
	leads, err := e.leads.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return nil, domain.ErrNothingToExport
	}
	return e.render(ctx, "leads_export.csv", leads)
}

func (e *Exporter) render(ctx context.Context, name string, leads []domain.Lead) (*File, error) {
	titles, err := e.stageTitles(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "csv header", err)
	}
	for _, lead := range leads {
		stage := lead.StageID
		if title, ok := titles[lead.StageID]; ok {
			stage = title
		}
		record := []string{
			lead.ID,
			lead.Name,
			lead.Company,
			lead.Email,
			lead.Phone,
			strconv.FormatFloat(lead.Value, 'f', -1, 64),
			stage,
			lead.CreatedAt.Format(dateLayout),
		}
		if err := w.Write(record); err != nil {
			return nil, domain.WrapError(domain.ErrCodeInternal, "csv row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "csv flush", err)
	}

	e.logger.Info("leads exported", zap.String("file", name), zap.Int("rows", len(leads)))
	return &File{Name: name, Rows: len(leads), Content: buf.Bytes()}, nil
}

func (e *Exporter) stageTitles(ctx context.Context) (map[string]string, error) {
	stages, err := e.stages.List(ctx)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(stages))
	for _, s := range stages {
		titles[s.ID] = s.Title
	}
	return titles, nil
}

func fileName(title string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if clean == "" {
		clean = "list"
	}
	return clean + "_export.csv"
}
