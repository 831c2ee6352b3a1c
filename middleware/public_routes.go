package middleware

// IsPublicRoute проверяет, доступен ли маршрут без токена
func IsPublicRoute(path string) bool {
	switch path {
	case "/health", "/api/auth/login":
		return true
	}
	return false
}
