package component

// EndSessionRequest asks the session system to shut the entity's controller
// down. It is removed once handled.
type EndSessionRequest struct {
	Reason string
}

var EndSessionRequestComponent = NewComponent[EndSessionRequest]()
