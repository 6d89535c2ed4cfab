// ABOUTME: Web UI server with embedded templates
// ABOUTME: Provides a read-only deal dashboard at localhost:8080
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/yasunobu-co-ltd-coder/matip/deals"
	"github.com/yasunobu-co-ltd-coder/matip/models"
	"github.com/yasunobu-co-ltd-coder/matip/viz"
)

//go:embed templates/*
var templatesFS embed.FS

type Server struct {
	service   *deals.Service
	session   deals.Session
	templates *template.Template
}

func NewServer(service *deals.Service, sess deals.Session) (*Server, error) {
	funcMap := template.FuncMap{
		"overdue": func(d models.Deal) bool {
			return d.Status == models.StatusOpen && d.DueDate < sess.Today
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		service:   service,
		session:   sess,
		templates: tmpl,
	}, nil
}

func (s *Server) Start(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/deals", s.handleDeals)
	mux.HandleFunc("/matrix", s.handleMatrix)

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting web server at http://localhost%s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if err := s.service.Refresh(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	stats := viz.GenerateDashboardStats(s.service.WorkingSet(), s.session.Today)

	data := map[string]interface{}{
		"Title": "Dashboard",
		"Stats": stats,
		"Me":    s.session.Me,
	}
	s.renderTemplate(w, "dashboard.html", data)
}

func (s *Server) handleDeals(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Refresh(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	tab, err := deals.ParseTab(r.URL.Query().Get("tab"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	filter, err := deals.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sortKey, err := deals.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := deals.Query{
		Tab:    tab,
		Search: r.URL.Query().Get("q"),
		Filter: filter,
		Sort:   sortKey,
	}

	data := map[string]interface{}{
		"Title":  "Deals",
		"Deals":  s.service.View(query, s.session),
		"Query":  query,
		"Me":     s.session.Me,
		"IsDone": query.Tab == deals.TabDone,
	}
	s.renderTemplate(w, "deals.html", data)
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Refresh(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	generator := viz.NewGraphGenerator(s.service.WorkingSet())
	dot, err := generator.GeneratePriorityMatrix()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(dot)); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Template error rendering %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
