package common

// RequestIDHeaderName is the HTTP header carrying the per-request
// correlation id, generated by the server when the caller omits it.
const RequestIDHeaderName = "X-Request-ID"
