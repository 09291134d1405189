package server

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"
)

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := AuditLogEntry{
			Timestamp: time.Now(),
			Method:    r.Method,
			Path:      r.URL.Path,
			Handler:   handlerName(r.URL.Path, r.Method),
		}

		if username, _, ok := r.BasicAuth(); ok {
			entry.StaffID = username
		}

		// PUT /packages/{id} carries the record id in the path.
		if r.Method == http.MethodPut {
			if rest, ok := strings.CutPrefix(r.URL.Path, "/packages/"); ok && !strings.Contains(rest, "/") {
				entry.PackageID = rest
			}
		}

		if r.Body != nil {
			requestBody, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			// Signature images blow up the audit stream; keep bodies
			// bounded and whole.
			if len(requestBody) <= maxAuditedBodyBytes {
				entry.Request = string(requestBody)
			}
		}

		rec := newResponseRecorder(w)
		next.ServeHTTP(rec, r)

		entry.StatusCode = rec.status
		if rec.body.Len() <= maxAuditedBodyBytes {
			entry.Response = rec.body.String()
		}

		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

const maxAuditedBodyBytes = 4 * 1024

func handlerName(path string, method string) string {
	switch {
	case path == "/packages" && method == http.MethodPost:
		return "handleLogPackage"
	case path == "/packages/groups":
		return "handleGroups"
	case path == "/packages/room":
		return "handleRoomPackages"
	case path == "/packages/history":
		return "handleHistory"
	case strings.HasPrefix(path, "/packages/") && method == http.MethodPut:
		return "handleUpdatePackage"
	case path == "/student/lookup":
		return "handleStudentLookup"
	case path == "/pickup":
		return "handlePickup"
	case path == "/settings" && method == http.MethodGet:
		return "handleGetSettings"
	case path == "/settings/items" && method == http.MethodPost:
		return "handleAddItem"
	case path == "/settings/items" && method == http.MethodDelete:
		return "handleRemoveItem"
	case path == "/settings/buildings" && method == http.MethodPost:
		return "handleAddBuilding"
	case path == "/settings/buildings" && method == http.MethodDelete:
		return "handleRemoveBuilding"
	}
	return "unknown"
}
