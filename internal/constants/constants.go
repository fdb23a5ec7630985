package constants

// Centralized constants for env keys, routes, response keys and log fields.
const (
	// Environment variable keys
	EnvAddress            = "TECHNONOMICON_ADDR"
	EnvCatalogPath        = "TECHNONOMICON_CATALOG"
	EnvDBPath             = "TECHNONOMICON_DB"
	EnvSeed               = "TECHNONOMICON_SEED"
	EnvEvolutionThreshold = "TECHNONOMICON_EVOLUTION_THRESHOLD"
	EnvLogLevel           = "TECHNONOMICON_LOG_LEVEL"
	EnvGinMode            = "GIN_MODE"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Skill names passed to the character modifier service.
const (
	SkillSpellcraft = "spellcraft"
	SkillRitual     = "ritual"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteVersion       = "/version"
	RouteRegistry      = "/registry/:kind"
	RouteSessions      = "/sessions"
	RouteSession       = "/sessions/:sessionID"
	RouteCraft         = "/sessions/:sessionID/craft"
	RouteSummon        = "/sessions/:sessionID/summon"
	RouteHarvest       = "/sessions/:sessionID/harvest"
	RouteItems         = "/sessions/:sessionID/items"
	RouteSurveillance  = "/sessions/:sessionID/surveillance"
	RouteSpells        = "/sessions/:sessionID/spells"
	RouteRituals       = "/sessions/:sessionID/rituals"
	RouteHistory       = "/sessions/:sessionID/history"
	RouteAllies        = "/sessions/:sessionID/allies"
	RouteAlly          = "/sessions/:sessionID/allies/:allyID"
	RouteAllyBattle    = "/sessions/:sessionID/allies/:allyID/battle"
	RouteWarden        = "/sessions/:sessionID/warden"
	RouteExport        = "/sessions/:sessionID/export"
	RouteImport        = "/sessions/:sessionID/import"
	RouteSave          = "/sessions/:sessionID/save"
	ParamSessionID     = "sessionID"
	ParamAllyID        = "allyID"
	ParamRegistryKind  = "kind"
	RegistryKindSpell  = "spells"
	RegistryKindRitual = "rituals"
	RegistryKindElem   = "elements"
	RegistryKindBits   = "code-bits"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyDetails = "details"
	JSONKeySession = "session_id"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest        = "Invalid request"
	ErrSessionNotFound       = "Session not found"
	ErrFailedCreateSession   = "Failed to create session"
	ErrAllyNotFound          = "Ally not found"
	ErrUnknownRegistryKind   = "Unknown registry kind"
	ErrUnknownCollectorItem  = "Unknown collector item"
	ErrUnknownDataSource     = "Unknown data source"
	ErrSurveillanceInactive  = "Surveillance system is not active"
	ErrNoPendingWarden       = "No Technonomicon Warden has been defeated"
	ErrCharacterLevelInvalid = "Character level must be at least 1"
	ErrInvalidComposition    = "Invalid composition"
	ErrInsufficientData      = "Insufficient data"
	ErrInvalidAmount         = "Amounts must not be negative"
	ErrStorageDisabled       = "Session storage is not configured"
	ErrUnsupportedState      = "Unsupported session state"
	ErrInvalidState          = "Invalid session state"
	ErrInternal              = "Internal error"
)

// Logging field names
const (
	LogFieldSession     = "session_id"
	LogFieldComposition = "composition"
	LogFieldQuality     = "quality"
	LogFieldRoll        = "roll"
	LogFieldModifier    = "modifier"
	LogFieldEntry       = "entry"
	LogFieldKind        = "kind"
	LogFieldOutcome     = "outcome"
	LogFieldDataCost    = "data_cost"
	LogFieldBalance     = "balance"
	LogFieldSource      = "source"
	LogFieldAmount      = "amount"
	LogFieldVersion     = "library_version"
	LogFieldName        = "name"
	LogFieldKey         = "key"
	LogFieldAddr        = "addr"
	LogFieldPath        = "path"
	LogFieldStatus      = "status"
	LogFieldMethod      = "method"
)
