package constants

// Centralized constants for routes, env keys, JSON keys and log fields.
const (
	// Environment variable keys (server)
	EnvConfigPath    = "HEARTBREAKER_CONFIG"
	EnvAddress       = "HEARTBREAKER_ADDR"
	EnvDatabasePath  = "HEARTBREAKER_DB"
	EnvGameTTL       = "HEARTBREAKER_GAME_TTL"
	EnvLogLevel      = "HEARTBREAKER_LOG_LEVEL"
	EnvSweepInterval = "HEARTBREAKER_SWEEP_INTERVAL"
	EnvSolveTimeout  = "HEARTBREAKER_SOLVE_TIMEOUT"

	// Environment variable keys (client)
	EnvServerURL     = "HEARTBREAKER_URL"
	EnvClientTimeout = "HEARTBREAKER_TIMEOUT"
	EnvClientRetries = "HEARTBREAKER_RETRIES"

	// Defaults
	DefaultConfigPath   = "heartbreaker.json"
	DefaultAddress      = ":8080"
	DefaultDatabasePath = "heartbreaker.db"
	DefaultServerURL    = "http://localhost:8080"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Routes used by the backend router and the client
const (
	RouteAPIPrefix          = "/api"
	RouteHealth             = "/healthz"
	RouteVersion            = "/version"
	RouteGameNew            = "/game/new"
	RouteGameState          = "/game/:gameID/state"
	RouteCheckEnemy         = "/game/:gameID/check-enemy"
	RouteValidateExpression = "/game/:gameID/validate-expression"
	RouteDefeatEnemy        = "/game/:gameID/defeat-enemy"
	RouteDiscard            = "/game/:gameID/discard"
	RouteHandValues         = "/game/:gameID/hand-values"

	// ParamGameID is the path parameter holding the game id.
	ParamGameID = "gameID"
)

// Common JSON response keys
const (
	JSONKeyError      = "error"
	JSONKeyStatus     = "status"
	JSONKeyHandValues = "hand_values"

	StatusOK = "ok"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest        = "Invalid request"
	ErrInvalidGameID         = "Invalid game ID"
	ErrGameNotFound          = "Game not found"
	ErrGameOver              = "Game is over"
	ErrGameModified          = "Game was modified by another request; refresh and retry"
	ErrInvalidEnemyIndex     = "Invalid enemy index"
	ErrInvalidCardIndex      = "Invalid card index"
	ErrSpadeKingProtected    = "The spade king cannot be discarded"
	ErrCannotDefeat          = "This enemy cannot be defeated with the current hand"
	ErrMissingExpression     = "An expression is required when skipping validation"
	ErrFailedCreateGame      = "Failed to create game"
	ErrFailedFetchGame       = "Failed to fetch game"
	ErrFailedUpdateGame      = "Failed to update game"
	ErrFailedFetchHandValues = "Failed to fetch hand values"
	ErrFailedCheckEnemy      = "Failed to check enemy"
	ErrFailedValidateExpr    = "Failed to validate expression"
	ErrSolveTimeout          = "Searching for a solution took too long, try again"
)

// Logging field names
const (
	LogFieldGameID     = "game_id"
	LogFieldEnemyIndex = "enemy_index"
	LogFieldCardIndex  = "card_index"
	LogFieldCard       = "card"
	LogFieldKings      = "kings_defeated"
	LogFieldVictory    = "victory"
	LogFieldMode       = "mode"
	LogFieldState      = "state"
	LogFieldEvent      = "event"
	LogFieldCount      = "count"
	LogFieldMethod     = "method"
	LogFieldPath       = "path"
	LogFieldStatus     = "status"
	LogFieldLatency    = "latency_ms"
	LogFieldAttempt    = "attempt"
	LogFieldAddr       = "addr"
	LogFieldURL        = "url"
)
