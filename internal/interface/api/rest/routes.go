package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth   = RouteApiV1 + "/auth"
	RouteSignUp = RouteAuth + "/signup"
	RouteLogin  = RouteAuth + "/login"
	RouteLogout = RouteAuth + "/logout"
	RouteMe     = RouteApiV1 + "/me"

	RouteResources        = RouteApiV1 + "/resources"
	RouteResource         = RouteResources + "/:id"
	RouteResourceDownload = RouteResource + "/download"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
