package ui

import (
	"encoding/json"
	"log"
	"net/http"

	"ideagate/app"
	"ideagate/domain/core"
	"ideagate/domain/rules"
	apperrors "ideagate/internal/errors"
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req app.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := a.service.Evaluate(r.Context(), req)
	if err != nil {
		if core.IsValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[ui] evaluate failed: %v", err)
		respondFailure(w, err, "evaluation failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (a *App) handleListRules(w http.ResponseWriter, r *http.Request) {
	defs, err := a.store.List(r.Context())
	if err != nil {
		log.Printf("[ui] list rules failed: %v", err)
		respondFailure(w, err, "failed to list rules")
		return
	}
	respondJSON(w, http.StatusOK, defs)
}

func (a *App) handleUpsertRule(w http.ResponseWriter, r *http.Request) {
	var def rules.Definition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		respondError(w, http.StatusBadRequest, "invalid rule definition")
		return
	}

	actor := r.Header.Get("X-Actor")
	if actor == "" {
		actor = "anonymous"
	}

	if err := a.store.Upsert(r.Context(), def, actor); err != nil {
		if core.IsValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[ui] upsert rule failed: %v", err)
		respondFailure(w, err, "failed to store rule")
		return
	}
	respondJSON(w, http.StatusOK, def)
}

func (a *App) handleRuleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := a.store.History(r.Context())
	if err != nil {
		log.Printf("[ui] rule history failed: %v", err)
		respondFailure(w, err, "failed to load history")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[ui] response encoding failed: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondFailure reports an internal error with its machine-readable code so
// callers can distinguish backend failures without parsing messages.
func respondFailure(w http.ResponseWriter, err error, message string) {
	respondJSON(w, http.StatusInternalServerError, map[string]string{
		"error": message,
		"code":  apperrors.CodeOf(err),
	})
}
