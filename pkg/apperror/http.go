package apperror

import "net/http"

func HTTPStatus(err error) int {
	return GetHTTPStatus(KindOf(err))
}

func GetHTTPStatus(kind Kind) int {

	switch kind {
	case InvalidInput:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case NotPublic:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	case RequestTimeout:
		return http.StatusGatewayTimeout
	case Dependency:
		return http.StatusBadGateway
	case Internal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
