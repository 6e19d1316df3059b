package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eknkc/pug"
	"github.com/patrickmn/go-cache"
	"k8s.io/klog/v2"

	"photo-portfolio/pkg/config"
	"photo-portfolio/pkg/models"
	"photo-portfolio/pkg/services"
)

// Handlers serves the generated site, the originals and on-the-fly
// category pages
type Handlers struct {
	cfg   *config.Config
	svc   *services.Service
	pages *cache.Cache
}

// New returns handlers reading through svc
func New(cfg *config.Config, svc *services.Service) *Handlers {
	return &Handlers{
		cfg:   cfg,
		svc:   svc,
		pages: cache.New(30*time.Second, time.Minute),
	}
}

// Routes registers every route on a new mux
func (h *Handlers) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.IndexHandler)
	mux.HandleFunc("GET /{category}", h.CategoryHandler)
	mux.HandleFunc("GET /feed", h.FeedHandler)
	mux.HandleFunc("GET /admin", h.AdminHandler)
	mux.HandleFunc("GET /admin/status", h.StatusHandler)

	mux.Handle("GET /photos/", http.StripPrefix("/photos/", http.FileServer(http.Dir(h.cfg.PhotoRoot))))
	assets := http.FileServer(http.Dir(h.cfg.AssetsDir))
	mux.Handle("GET /css/", assets)
	mux.Handle("GET /js/", assets)

	// generated trees, both bare and under the base URL the pages link to
	site := http.FileServer(http.Dir(h.cfg.OutputRoot))
	for _, dir := range []string{h.cfg.PagesDir, h.cfg.WebDir, h.cfg.IncludesDir, h.cfg.DataDir} {
		mux.Handle("GET /"+strings.Trim(filepath.ToSlash(dir), "/")+"/", site)
	}
	mux.Handle("GET /recent_photos.json", site)
	if base := strings.Trim(h.cfg.BaseURL, "/"); base != "" {
		mux.Handle("GET /"+base+"/", http.StripPrefix("/"+base, site))
	}

	return mux
}

// IndexHandler serves the landing page, or a listing of the categories when
// no landing page has been written
func (h *Handlers) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(h.cfg.LandingPath()); err == nil {
		http.ServeFile(w, r, h.cfg.LandingPath())
		return
	}

	klog.V(1).Info("Generating Index")
	categories, err := h.svc.Categories()
	if err != nil {
		klog.Errorf("List categories: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "index.pug", models.Index{
		Title:      "Photography",
		Categories: categories,
	})
}

// CategoryHandler renders the originals of one top-level folder
func (h *Handlers) CategoryHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("category")

	if page, ok := h.pages.Get(name); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page.([]byte))
		return
	}

	g, err := h.svc.Category(name)
	if errors.Is(err, services.ErrGalleryNotFound) {
		klog.V(1).Infof("Category not found: %s", name)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, "Category '%s' not found", name)
		return
	}
	if err != nil {
		klog.Errorf("Load category %s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	klog.V(1).Infof("Generating Gallery Page: %s", name)

	var buf bytes.Buffer
	if !h.execute(&buf, w, "gallery.pug", models.GalleryPage{
		Title:      g.Title + " Gallery",
		Heading:    g.Title,
		Stylesheet: "/css/style.css",
		Nav:        h.svc.NavFragment(),
		Photos:     h.svc.Originals(g, "/photos"),
	}) {
		return
	}

	h.pages.SetDefault(name, buf.Bytes())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// FeedHandler handles requests for the gallery feed (JSON)
func (h *Handlers) FeedHandler(w http.ResponseWriter, _ *http.Request) {
	klog.V(1).Info("Generating Feed")

	galleries, err := h.svc.Galleries()
	if err != nil {
		klog.Errorf("Discover galleries: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(galleries); err != nil {
		klog.Errorf("Write feed: %v", err)
	}
}

func (h *Handlers) render(w http.ResponseWriter, view string, data interface{}) {
	var buf bytes.Buffer
	if h.execute(&buf, w, view, data) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	}
}

// execute renders view into buf, answering 500 on w when it cannot
func (h *Handlers) execute(buf *bytes.Buffer, w http.ResponseWriter, view string, data interface{}) bool {
	template, err := pug.CompileFile(filepath.Join(h.cfg.ViewsDir, view), pug.Options{})
	if err != nil {
		klog.Errorf("Template error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return false
	}

	if err := template.Execute(buf, data); err != nil {
		klog.Errorf("Template execution error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return false
	}
	return true
}
