package model

// ResponseCode is the "_code" tag carried by every Dynalist API response.
type ResponseCode string

const (
	CodeOK              ResponseCode = "Ok"
	CodeInvalidToken    ResponseCode = "InvalidToken"
	CodeTooManyRequests ResponseCode = "TooManyRequests"
	CodeNoInbox         ResponseCode = "NoInbox"
	CodeUnauthorized    ResponseCode = "Unauthorized"
	CodeNotFound        ResponseCode = "NotFound"
	CodeNodeNotFound    ResponseCode = "NodeNotFound"
	CodeInvalid         ResponseCode = "Invalid"
	CodeLockFail        ResponseCode = "LockFail"
)

// AuthState is the state of the authentication gate.
type AuthState string

const (
	AuthStateUnauthenticated AuthState = "unauthenticated"
	AuthStateAwaitingInput   AuthState = "awaiting_input"
	AuthStateValidating      AuthState = "validating"
	AuthStateAuthenticated   AuthState = "authenticated"
)

// InsertPosition selects where new items land among a location's children.
type InsertPosition string

const (
	InsertPositionTop    InsertPosition = "top"
	InsertPositionBottom InsertPosition = "bottom"
)

// Index returns the Dynalist child index for the position: 0 inserts first,
// -1 appends.
func (p InsertPosition) Index() int {
	if p == InsertPositionTop {
		return 0
	}
	return -1
}
