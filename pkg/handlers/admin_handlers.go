package handlers

import (
	"encoding/json"
	"net/http"

	"k8s.io/klog/v2"

	"photo-portfolio/pkg/models"
)

// AdminHandler handles requests for the build status page
func (h *Handlers) AdminHandler(w http.ResponseWriter, _ *http.Request) {
	klog.V(1).Info("Generating Admin Page")

	galleries, err := h.svc.Status()
	if err != nil {
		klog.Errorf("Gallery status: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "admin.pug", models.Admin{
		Title:     "Build Status",
		Galleries: galleries,
	})
}

// StatusHandler reports the build status as JSON
func (h *Handlers) StatusHandler(w http.ResponseWriter, _ *http.Request) {
	galleries, err := h.svc.Status()
	if err != nil {
		klog.Errorf("Gallery status: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	missing := 0
	for _, g := range galleries {
		missing += g.Missing
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"galleries": galleries,
		"missing":   missing,
	})
}
