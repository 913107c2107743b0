package conversation

import "errors"

// ErrMalformedUpdate marks an update whose shape matches no recognized
// case; the transport should answer bad-input. Every other failure is
// handled inside the invocation and surfaces to the user as a reply, not
// to the transport.
var ErrMalformedUpdate = errors.New("malformed update")
