package translate

import "errors"

// ErrUnsupported marks a node the target dialect cannot express. The whole
// translation aborts; no partial dialect text is ever returned.
var ErrUnsupported = errors.New("unsupported in target dialect")
