package middleware

import (
	"net/http"

	"facility-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserIDHeader carries the authenticated caller's identifier. Credential
// verification happens in the gateway in front of this service; the booking
// engine trusts the ID it is handed.
const UserIDHeader = "X-User-ID"

// Identity extracts the authenticated renter/owner ID and puts it on the
// request context. Requests without a valid ID are rejected.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(UserIDHeader)
			if header == "" {
				utils.ResponseUnauthorized(w, "Missing authenticated user identity")
				return
			}

			userID, err := uuid.Parse(header)
			if err != nil {
				logger.Warn("Malformed user identity header",
					zap.String("header", header),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseUnauthorized(w, "Invalid user identity")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
