package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/rewired-gh/launchdash/internal/dashboard"
	"github.com/rewired-gh/launchdash/internal/logger"
	"github.com/rewired-gh/launchdash/internal/models"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"kg": func(v float64) string { return humanize.Commaf(v) + " kg" },
}).ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	Title     string
	Records   int
	Layout    dashboard.Layout
	Selection models.Selection
	SiteID    string
	PayloadID string
	PieID     string
	ScatterID string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Title:     s.opts.Title,
		Records:   s.dataset.Len(),
		Layout:    s.layout,
		Selection: sess.shell.Selection(),
		SiteID:    string(dashboard.ControlSite),
		PayloadID: string(dashboard.ControlPayload),
		PieID:     string(dashboard.OutputPie),
		ScatterID: string(dashboard.OutputScatter),
	})
	if err != nil {
		logger.Error("Failed to render page: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		logger.Debug("Failed to write page: %v", err)
	}
}
