package apierror

// Error type URIs following the urn:psysom:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:psysom:error:validation"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:psysom:error:not_found"

	// TypeConflict indicates a resource conflict (409)
	TypeConflict = "urn:psysom:error:conflict"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:psysom:error:rate_limit"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "urn:psysom:error:unauthorized"

	// TypeForbidden indicates insufficient permissions (403)
	TypeForbidden = "urn:psysom:error:forbidden"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:psysom:error:internal"

	// TypeInvalidUUID indicates an invalid UUID format in request (400)
	TypeInvalidUUID = "urn:psysom:error:invalid_uuid"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:psysom:error:bad_request"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation   = "Validation Error"
	TitleNotFound     = "Resource Not Found"
	TitleConflict     = "Resource Conflict"
	TitleRateLimit    = "Rate Limit Exceeded"
	TitleUnauthorized = "Authentication Required"
	TitleForbidden    = "Permission Denied"
	TitleInternal     = "Internal Server Error"
	TitleInvalidUUID  = "Invalid UUID Format"
	TitleBadRequest   = "Bad Request"
)
