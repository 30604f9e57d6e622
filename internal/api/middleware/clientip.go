package middleware

import (
	"net"
	"net/http"
)

// ClientIP возвращает адрес клиента из RemoteAddr (без порта).
// За reverse proxy RemoteAddr предварительно переписывается chi middleware.RealIP.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
