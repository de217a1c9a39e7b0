package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mizuiro-games/gamedata/pkg/buildinfo"
	"github.com/mizuiro-games/gamedata/pkg/graph"
	"github.com/mizuiro-games/gamedata/pkg/integrity"
	"github.com/mizuiro-games/gamedata/pkg/schema"
)

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	endpoints := make(map[string]string, len(schema.Kinds())+2)
	for _, kind := range schema.Kinds() {
		endpoints[string(kind)] = "/api/data/" + string(kind)
	}
	endpoints["validation"] = "/api/data/validation/references"
	endpoints["graph"] = "/api/data/graph/dependencies"

	writeJSON(w, http.StatusOK, map[string]any{
		"name":      "Game Data Manager",
		"version":   buildinfo.Version,
		"endpoints": endpoints,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"types": schema.Kinds()})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := s.svc.GetAll(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	typeName := chi.URLParam(r, "type")
	id := chi.URLParam(r, "id")

	rec, found, err := s.svc.GetByID(typeName, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, notFound(typeName, id))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var raw schema.Record
	if err := decodeJSON(r, &raw); err != nil {
		writeError(w, err)
		return
	}

	rec, err := s.svc.Create(chi.URLParam(r, "type"), raw)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleBulkCreate(w http.ResponseWriter, r *http.Request) {
	var raws []schema.Record
	if err := decodeJSON(r, &raws); err != nil {
		writeError(w, err)
		return
	}

	records, err := s.svc.BulkCreate(chi.URLParam(r, "type"), raws)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, records)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var raw schema.Record
	if err := decodeJSON(r, &raw); err != nil {
		writeError(w, err)
		return
	}

	rec, err := s.svc.Update(chi.URLParam(r, "type"), chi.URLParam(r, "id"), raw)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	typeName := chi.URLParam(r, "type")
	id := chi.URLParam(r, "id")

	deleted, err := s.svc.Delete(typeName, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, notFound(typeName, id))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleValidateReferences(w http.ResponseWriter, _ *http.Request) {
	report, err := integrity.Check(s.svc.Store())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleGraph(w http.ResponseWriter, _ *http.Request) {
	g, err := graph.Build(s.svc.Store())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleGraphDOT(w http.ResponseWriter, _ *http.Request) {
	g, err := graph.Build(s.svc.Store())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(graph.ToDOT(g)))
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	payload, err := s.svc.ExportAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var payload map[string][]schema.Record
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	counts, err := s.svc.ImportAll(payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
