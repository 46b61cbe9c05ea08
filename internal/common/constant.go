package common

// AuthorizationHeaderName carries the bearer access token on HTTP requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the access token inside the Authorization header.
const BearerPrefix = "Bearer "
