package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

var idQueryParams = []string{"serviceId", "staffId"}

// ValidateIDs answers 404 when a path variable ending in "Id", or one of the
// id query parameters, is not a UUID.
func ValidateIDs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for name, value := range mux.Vars(r) {
			if strings.HasSuffix(name, "Id") && handlers.IsMalformedID(value) {
				handlers.RespondNotFound(w, resourceName(name)+" not found")
				return
			}
		}
		query := r.URL.Query()
		for _, name := range idQueryParams {
			if handlers.IsMalformedID(query.Get(name)) {
				handlers.RespondNotFound(w, resourceName(name)+" not found")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func resourceName(param string) string {
	switch param {
	case "staffId":
		return "staff member"
	default:
		return strings.TrimSuffix(param, "Id")
	}
}
