// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-movie-favorites/internal/utils"
)

// notFound replaces chi's plain-text 404 so that every error the API returns
// has the same JSON shape.
func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, errRouteNotFound.Error(), http.StatusNotFound)
}

// methodNotAllowed answers requests whose path exists but whose method is
// not registered for it.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, errMethodNotAllowed.Error(), http.StatusMethodNotAllowed)
}
